package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/dzdedup/internal/tasks"
)

var styles = NewPalette("#A238FF", "#04B575", "#FF0000", "#FFA500", "#626262")

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title lipgloss.Style
	ok    lipgloss.Style
	err   lipgloss.Style
	warn  lipgloss.Style
	help  lipgloss.Style
}

func NewPalette(t, s, e, w, h string) *Palette {
	return &Palette{
		title: NewBold(t).MarginBottom(1),
		ok:    NewBold(s),
		err:   NewBold(e),
		warn:  NewStyle(w),
		help:  NewEm(h),
	}
}

// outcome picks the style for a result line.
func (p *Palette) outcome(o tasks.Outcome) lipgloss.Style {
	switch o {
	case tasks.Removed:
		return p.ok
	case tasks.Identified:
		return p.warn
	case tasks.FetchFailed, tasks.RemovalFailed:
		return p.err
	default:
		return p.help
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}

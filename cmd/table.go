package main

import (
	"strconv"

	"github.com/desertthunder/dzdedup/internal/models"
	"github.com/desertthunder/dzdedup/internal/tasks"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type column struct {
	title string
	right bool
}

// renderTable draws rows under the given columns; short rows are padded with empty cells.
func renderTable(columns []column, rows [][]string, footer []string) string {
	if len(columns) == 0 {
		return ""
	}

	tw := table.NewWriter()
	style := table.StyleRounded
	style.Format.Header = text.FormatDefault
	style.Format.Footer = text.FormatDefault
	tw.SetStyle(style)

	tw.AppendHeader(tableRow(len(columns), headerCells(columns)))
	for _, row := range rows {
		tw.AppendRow(tableRow(len(columns), row))
	}
	if len(footer) > 0 {
		tw.AppendFooter(tableRow(len(columns), footer))
	}

	configs := make([]table.ColumnConfig, 0, len(columns))
	for i, c := range columns {
		align := text.AlignLeft
		if c.right {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
			AlignFooter: align,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

func headerCells(columns []column) []string {
	cells := make([]string, len(columns))
	for i, c := range columns {
		cells[i] = c.title
	}
	return cells
}

func tableRow(width int, cells []string) table.Row {
	row := make(table.Row, width)
	for i := range width {
		if i < len(cells) {
			row[i] = cells[i]
		} else {
			row[i] = ""
		}
	}
	return row
}

// playlistsTable lists playlists with the index used by `dedupe --select`.
func playlistsTable(playlists []models.Playlist) string {
	rows := make([][]string, 0, len(playlists))
	total := 0
	for _, p := range playlists {
		title := p.Title
		if p.Favorites {
			title += " ♥"
		}
		rows = append(rows, []string{strconv.Itoa(p.Index), title, strconv.Itoa(p.TrackCount), p.ID})
		total += p.TrackCount
	}

	return renderTable(
		[]column{{title: "#", right: true}, {title: "Playlist"}, {title: "Songs", right: true}, {title: "ID"}},
		rows,
		[]string{"", strconv.Itoa(len(playlists)) + " playlists", strconv.Itoa(total), ""},
	)
}

// resultsTable summarises one row per playlist result.
func resultsTable(results []tasks.PlaylistResult) string {
	rows := make([][]string, 0, len(results))
	duplicates := 0
	for _, res := range results {
		errText := ""
		if res.Err != nil {
			errText = res.Err.Error()
		}
		rows = append(rows, []string{
			res.PlaylistTitle,
			res.Outcome.String(),
			strconv.Itoa(res.Fetched),
			strconv.Itoa(len(res.Duplicates)),
			errText,
		})
		duplicates += len(res.Duplicates)
	}

	return renderTable(
		[]column{{title: "Playlist"}, {title: "Outcome"}, {title: "Songs", right: true}, {title: "Duplicates", right: true}, {title: "Error"}},
		rows,
		[]string{"", "", "", strconv.Itoa(duplicates), ""},
	)
}

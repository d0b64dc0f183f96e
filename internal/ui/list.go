package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/dzdedup/internal/models"
)

var _ list.Item = playlistItem{}

// playlistItem wraps [models.Playlist] to implement [list.Item] with a selection mark.
type playlistItem struct {
	playlist models.Playlist
	selected bool
}

func (i playlistItem) FilterValue() string { return i.playlist.Title }
func (i playlistItem) Title() string {
	mark := "[ ]"
	if i.selected {
		mark = "[x]"
	}
	return fmt.Sprintf("%s %d - %s", mark, i.playlist.Index, i.playlist.Title)
}
func (i playlistItem) Description() string {
	desc := fmt.Sprintf("%d songs", i.playlist.TrackCount)
	if i.playlist.Favorites {
		desc = fmt.Sprintf("%s • favourites", desc)
	}
	return desc
}

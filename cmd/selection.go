package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/desertthunder/dzdedup/internal/models"
	"github.com/desertthunder/dzdedup/internal/shared"
)

// parseIndexes parses a comma separated list of playlist indexes, or ALL.
//
// Indexes must lie in [0, count). Repeated indexes are collapsed and the result is sorted.
func parseIndexes(s string, count int) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	if strings.EqualFold(s, "all") {
		indexes := make([]int, count)
		for i := range indexes {
			indexes[i] = i
		}
		return indexes, nil
	}

	seen := make([]bool, count)
	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a playlist index", shared.ErrInvalidInput, part)
		}
		if n < 0 || n >= count {
			return nil, fmt.Errorf("%w: index %d out of range 0-%d", shared.ErrInvalidInput, n, count-1)
		}
		seen[n] = true
	}

	var indexes []int
	for i, ok := range seen {
		if ok {
			indexes = append(indexes, i)
		}
	}
	return indexes, nil
}

// selectPlaylists picks playlists by index list, ID or exact title, in listing order.
//
// Returns no playlists and no error when nothing was requested.
func selectPlaylists(playlists []models.Playlist, indexes string, ids, names []string) ([]models.Playlist, error) {
	chosen := make([]bool, len(playlists))

	parsed, err := parseIndexes(indexes, len(playlists))
	if err != nil {
		return nil, err
	}
	for _, i := range parsed {
		chosen[i] = true
	}

	for _, id := range ids {
		i := findPlaylist(playlists, func(p models.Playlist) bool { return p.ID == id })
		if i < 0 {
			return nil, fmt.Errorf("%w: no playlist with ID %s", shared.ErrPlaylistNotFound, id)
		}
		chosen[i] = true
	}

	for _, name := range names {
		i := findPlaylist(playlists, func(p models.Playlist) bool { return p.Title == name })
		if i < 0 {
			i = findPlaylist(playlists, func(p models.Playlist) bool { return strings.EqualFold(p.Title, name) })
		}
		if i < 0 {
			return nil, fmt.Errorf("%w: no playlist named %q", shared.ErrPlaylistNotFound, name)
		}
		chosen[i] = true
	}

	var selected []models.Playlist
	for i, ok := range chosen {
		if ok {
			selected = append(selected, playlists[i])
		}
	}
	return selected, nil
}

func findPlaylist(playlists []models.Playlist, match func(models.Playlist) bool) int {
	for i, p := range playlists {
		if match(p) {
			return i
		}
	}
	return -1
}

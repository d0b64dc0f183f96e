// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for playlist deduplication:
//  1. [PlaylistListView] : Browse playlists and mark the ones to check (space toggles, a toggles all)
//  2. [PolicyView] : Pick how duplicates are detected (1 ISRC, 2 song name + artist, 3 both)
//  3. [ModeView] : Choose between only showing duplicates (y) and removing them (n)
//  4. [RunView] : Monitor real-time progress updates
//  5. [ResultView] : Display one summary line per playlist with the duplicate titles
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Progress updates flow through a channel from the deduplication engine, providing non-blocking status reporting during runs.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui

package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/dzdedup/internal/dedupe"
	"github.com/desertthunder/dzdedup/internal/models"
	"github.com/desertthunder/dzdedup/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	PlaylistListView ViewState = iota
	PolicyView
	ModeView
	RunView
	ResultView
)

// PlaylistLister lists the playlists offered for selection.
type PlaylistLister interface {
	GetPlaylists(ctx context.Context) ([]models.Playlist, error)
}

// Deduplicator runs the selected jobs.
type Deduplicator interface {
	Run(ctx context.Context, jobs []tasks.PlaylistJob, progress chan<- tasks.ProgressUpdate) ([]tasks.PlaylistResult, error)
}

// RunLocker takes the exclusive lock held while playlists are modified and returns its release func.
type RunLocker func() (release func() error, err error)

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	source       PlaylistLister
	engine       Deduplicator
	locker       RunLocker
	release      func() error
	width        int
	height       int
	ready        bool
	playlistList list.Model
	policy       dedupe.Policy
	dryRun       bool
	progressChan chan tasks.ProgressUpdate
	done         chan Msg
	progress     tasks.ProgressUpdate
	completed    []string
	results      []tasks.PlaylistResult
	notice       string
	err          error
	spinner      spinner.Model
	help         help.Model
	keys         keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, source PlaylistLister, engine Deduplicator) *Model {
	return &Model{
		ctx:     ctx,
		view:    PlaylistListView,
		source:  source,
		engine:  engine,
		policy:  dedupe.Both,
		dryRun:  true,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:    help.New(),
		keys:    newKeyMap(),
	}
}

// WithRunLock makes removal runs hold the lock returned by locker until they complete.
func (m *Model) WithRunLock(locker RunLocker) *Model {
	m.locker = locker
	return m
}

// Init initializes the TUI by fetching the user's playlists.
func (m *Model) Init() tea.Cmd {
	return m.fetchPlaylists()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.ready {
			m.playlistList.SetSize(max(0, msg.Width-4), max(0, msg.Height-8))
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case PlaylistListView:
			return m.handlePlaylistListKeys(msg)
		case PolicyView:
			return m.handlePolicyKeys(msg)
		case ModeView:
			return m.handleModeKeys(msg)
		case RunView:
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			return m, nil
		case ResultView:
			return m.handleResultKeys(msg)
		}

	case spinner.TickMsg:
		if m.view != RunView {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case Msg:
		return m.handleMsg(msg)
	}

	return m.updateList(msg)
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgPlaylistsFetched:
		data := msg.data.(playlistsFetched)
		if data.err != nil {
			m.err = data.err
			return m, nil
		}
		items := make([]list.Item, len(data.playlists))
		for i, pl := range data.playlists {
			items[i] = playlistItem{playlist: pl}
		}
		m.playlistList = list.New(items, list.NewDefaultDelegate(), max(0, m.width-4), max(0, m.height-8))
		m.playlistList.Title = "Deezer Playlists"
		m.playlistList.SetFilteringEnabled(false)
		m.ready = true
		return m, nil

	case MsgProgressUpdate:
		update := msg.data.(tasks.ProgressUpdate)
		m.progress = update
		if update.Phase == tasks.PlaylistDone {
			m.completed = append(m.completed, update.Message)
		}
		return m, waitForProgress(m.progressChan, m.done)

	case MsgRunComplete:
		data := msg.data.(runComplete)
		m.results = data.results
		m.err = data.err
		if err := m.releaseLock(); err != nil && m.err == nil {
			m.err = err
		}
		m.progressChan = nil
		m.done = nil
		m.view = ResultView
		return m, nil
	}
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view != ResultView {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case PlaylistListView:
		return m.renderPlaylistList()
	case PolicyView:
		return m.renderPolicy()
	case ModeView:
		return m.renderMode()
	case RunView:
		return m.renderRun()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handlePlaylistListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		m.toggleCurrent()
		return m, nil
	case "a":
		m.toggleAll()
		return m, nil
	case "enter":
		if len(m.selectedPlaylists()) == 0 {
			m.notice = "Select at least one playlist"
			return m, nil
		}
		m.notice = ""
		m.view = PolicyView
		return m, nil
	}

	return m.updateList(msg)
}

func (m *Model) handlePolicyKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = PlaylistListView
	case "1", "2", "3":
		p, _ := dedupe.ParsePolicy(msg.String())
		m.policy = p
		m.view = ModeView
	}
	return m, nil
}

func (m *Model) handleModeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = PolicyView
	case "y":
		m.dryRun = true
		m.view = RunView
		return m, m.startRun()
	case "n":
		m.dryRun = false
		if err := m.acquireLock(); err != nil {
			m.err = err
			m.view = ResultView
			return m, nil
		}
		m.view = RunView
		return m, m.startRun()
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r":
		m.view = PlaylistListView
		m.results = nil
		m.completed = nil
		m.err = nil
		m.clearSelection()
		return m, m.fetchPlaylists()
	}
	return m, nil
}

func (m *Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.view != PlaylistListView || !m.ready {
		return m, nil
	}
	var cmd tea.Cmd
	m.playlistList, cmd = m.playlistList.Update(msg)
	return m, cmd
}

func (m *Model) toggleCurrent() {
	items := m.playlistList.Items()
	idx := m.playlistList.Index()
	if idx < 0 || idx >= len(items) {
		return
	}
	item := items[idx].(playlistItem)
	item.selected = !item.selected
	m.playlistList.SetItem(idx, item)
}

// toggleAll selects every playlist, or clears the selection when all are already selected.
func (m *Model) toggleAll() {
	items := m.playlistList.Items()
	target := len(m.selectedPlaylists()) != len(items)
	for i, it := range items {
		item := it.(playlistItem)
		item.selected = target
		m.playlistList.SetItem(i, item)
	}
}

func (m *Model) clearSelection() {
	for i, it := range m.playlistList.Items() {
		item := it.(playlistItem)
		item.selected = false
		m.playlistList.SetItem(i, item)
	}
}

func (m *Model) selectedPlaylists() []models.Playlist {
	var selected []models.Playlist
	for _, it := range m.playlistList.Items() {
		if item := it.(playlistItem); item.selected {
			selected = append(selected, item.playlist)
		}
	}
	return selected
}

func (m *Model) jobs() []tasks.PlaylistJob {
	playlists := m.selectedPlaylists()
	jobs := make([]tasks.PlaylistJob, len(playlists))
	for i, pl := range playlists {
		jobs[i] = tasks.PlaylistJob{
			PlaylistID:    pl.ID,
			PlaylistTitle: pl.Title,
			Policy:        m.policy,
			DryRun:        m.dryRun,
		}
	}
	return jobs
}

func (m *Model) fetchPlaylists() tea.Cmd {
	source, ctx := m.source, m.ctx
	return func() tea.Msg {
		playlists, err := source.GetPlaylists(ctx)
		return playlistsFetchedMsg(playlists, err)
	}
}

func (m *Model) acquireLock() error {
	if m.locker == nil {
		return nil
	}
	release, err := m.locker()
	if err != nil {
		return err
	}
	m.release = release
	return nil
}

func (m *Model) releaseLock() error {
	if m.release == nil {
		return nil
	}
	release := m.release
	m.release = nil
	return release()
}

func (m *Model) startRun() tea.Cmd {
	jobs := m.jobs()
	progress := make(chan tasks.ProgressUpdate, 64)
	done := make(chan Msg, 1)
	m.progressChan, m.done = progress, done
	m.progress = tasks.ProgressUpdate{}
	m.completed = nil

	engine, ctx := m.engine, m.ctx
	go func() {
		results, err := engine.Run(ctx, jobs, progress)
		done <- runCompleteMsg(results, err)
		close(progress)
	}()

	return tea.Batch(m.spinner.Tick, waitForProgress(progress, done))
}

// waitForProgress yields the next progress update, then the completion message once the channel closes.
func waitForProgress(progress <-chan tasks.ProgressUpdate, done <-chan Msg) tea.Cmd {
	return func() tea.Msg {
		update, ok := <-progress
		if !ok {
			return <-done
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) renderPlaylistList() string {
	if !m.ready {
		return fmt.Sprintf("%s Loading playlists...", m.spinner.View())
	}
	helpKeys := []key.Binding{m.keys.toggle, m.keys.all, m.keys.enter, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	var b strings.Builder
	b.WriteString(m.playlistList.View())
	b.WriteString("\n\n")
	if m.notice != "" {
		b.WriteString(styles.warn.Render(m.notice))
		b.WriteString("\n")
	}
	b.WriteString(helpView)
	return b.String()
}

func (m *Model) renderPolicy() string {
	title := styles.title.Render(fmt.Sprintf("Find duplicates in %d playlist(s) by:", len(m.selectedPlaylists())))

	var b strings.Builder
	for _, p := range dedupe.Policies() {
		fmt.Fprintf(&b, "  %d) %s\n", int(p), p.Describe())
	}

	helpKeys := []key.Binding{m.keys.isrc, m.keys.name, m.keys.both, m.keys.back, m.keys.quit}
	return fmt.Sprintf("%s\n%s\n%s", title, b.String(), m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderMode() string {
	title := styles.title.Render("Only show duplicates without removing them?")
	info := fmt.Sprintf("Policy: %s\nPlaylists: %d\n", m.policy.Describe(), len(m.selectedPlaylists()))
	warning := styles.warn.Render("Answering n removes duplicate songs from your Deezer playlists.")

	helpKeys := []key.Binding{m.keys.yes, m.keys.no, m.keys.back, m.keys.quit}
	return fmt.Sprintf("%s\n%s\n%s\n\n%s", title, info, warning, m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderRun() string {
	heading := "Finding duplicates"
	if !m.dryRun {
		heading = "Removing duplicates"
	}
	title := styles.title.Render(heading)

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", m.spinner.View(), m.progress.Message)
	for _, line := range m.completed {
		fmt.Fprintf(&b, "%s\n", line)
	}
	return fmt.Sprintf("%s\n%s", title, b.String())
}

func (m *Model) renderResult() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Deduplication failed: %v\n\nPress r to restart, q to quit", m.err))
	}

	title := styles.ok.Render("✓ Done")
	if m.dryRun {
		title = styles.ok.Render("✓ Done (nothing was removed)")
	}

	var b strings.Builder
	for _, r := range m.results {
		b.WriteString(styles.outcome(r.Outcome).Render(r.Summary()))
		b.WriteString("\n")
		for _, d := range r.Duplicates {
			fmt.Fprintf(&b, "  • %s\n", d.FullTitle())
		}
	}

	helpKeys := []key.Binding{m.keys.restart, m.keys.quit}
	return fmt.Sprintf("%s\n\n%s\n%s", title, b.String(), m.help.ShortHelpView(helpKeys))
}

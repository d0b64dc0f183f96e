// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/dzdedup/internal/models"
)

// MockService is a test double for [services.Service].
//
// Tracks are keyed by playlist ID. Removals are recorded so tests can assert on the batch that was sent.
type MockService struct {
	mu sync.Mutex

	User      *models.User
	Playlists []models.Playlist
	Tracks    map[string][]models.Track

	AuthErr      error
	PlaylistsErr error
	TracksErr    map[string]error
	RemoveErr    map[string]error

	Credentials map[string]string
	Removed     map[string][]string
}

// NewMockService creates a [MockService] with an authenticated user.
func NewMockService() *MockService {
	return &MockService{
		User:      &models.User{ID: "4242", Name: "listener"},
		Tracks:    make(map[string][]models.Track),
		TracksErr: make(map[string]error),
		RemoveErr: make(map[string]error),
		Removed:   make(map[string][]string),
	}
}

func (m *MockService) Authenticate(ctx context.Context, credentials map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Credentials = credentials
	return m.AuthErr
}

func (m *MockService) CurrentUser() (*models.User, error) {
	if m.User == nil {
		return nil, errors.New("not authenticated")
	}
	return m.User, nil
}

func (m *MockService) GetPlaylists(ctx context.Context) ([]models.Playlist, error) {
	if m.PlaylistsErr != nil {
		return nil, m.PlaylistsErr
	}
	return m.Playlists, nil
}

func (m *MockService) GetTracks(ctx context.Context, playlistID string) ([]models.Track, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.TracksErr[playlistID]; err != nil {
		return nil, err
	}
	return m.Tracks[playlistID], nil
}

func (m *MockService) RemoveTracks(ctx context.Context, playlistID string, trackIDs []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.RemoveErr[playlistID]; err != nil {
		return err
	}
	if m.Removed == nil {
		m.Removed = make(map[string][]string)
	}
	m.Removed[playlistID] = append(m.Removed[playlistID], trackIDs...)
	return nil
}

// RemovedFrom returns the track IDs removed from a playlist so far.
func (m *MockService) RemovedFrom(playlistID string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.Removed[playlistID]...)
}

func (m *MockService) Name() string { return "mock" }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) *LimitedWriter {
	return &LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

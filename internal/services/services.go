// package services defines interface Service for interacting with HTTP APIs
//
// Deezer (gw-light)
package services

import (
	"context"

	"github.com/desertthunder/dzdedup/internal/models"
)

// Service defines the interface for music service providers whose playlists can be deduplicated.
//
// Implementations must be safe for concurrent use: deduplication runs fetch and modify several playlists at once.
type Service interface {
	// Authenticate validates the session credentials with the service.
	// Returns an error if authentication fails.
	Authenticate(ctx context.Context, credentials map[string]string) error

	// CurrentUser returns the account resolved by the last successful Authenticate call.
	CurrentUser() (*models.User, error)

	// GetPlaylists retrieves all playlists for the authenticated user.
	GetPlaylists(ctx context.Context) ([]models.Playlist, error)

	// GetTracks retrieves the tracks of a playlist in the order the service returns them.
	GetTracks(ctx context.Context, playlistID string) ([]models.Track, error)

	// RemoveTracks deletes the given tracks from a playlist in a single request.
	RemoveTracks(ctx context.Context, playlistID string, trackIDs []string) error

	// Name returns the name of the service (e.g., "Deezer")
	Name() string
}

package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Authentication errors
	ErrAuthFailed       = fmt.Errorf("authentication failed")
	ErrNotAuthenticated = fmt.Errorf("not authenticated")
	ErrSessionNotFound  = fmt.Errorf("no stored session")
	ErrTimeout          = fmt.Errorf("operation timed out")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrPlaylistNotFound   = fmt.Errorf("playlist not found")

	// Deduplication errors
	ErrFetchFailed   = fmt.Errorf("fetching tracks failed")
	ErrEmptyPlaylist = fmt.Errorf("playlist returned no tracks")
	ErrRemovalFailed = fmt.Errorf("removing duplicates failed")
	ErrNoInput       = fmt.Errorf("no playlists provided for deduplication")
	ErrRunLocked     = fmt.Errorf("another run is modifying playlists")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)

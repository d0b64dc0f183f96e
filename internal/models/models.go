// package models defines the data model for the playlist deduplication tool
package models

import (
	"time"
)

// Model defines the base interface for all persistent models.
type Model interface {
	ID() string           // ID returns the unique identifier for this model
	CreatedAt() time.Time // CreatedAt returns when this model was created
	UpdatedAt() time.Time // UpdatedAt returns when this model was last updated
	Validate() error      // Validate checks if the model's data is valid and returns an error if not
}

// Repository defines the interface for data access operations.
// Implementations handle database interactions for specific model types.
type Repository[T Model] interface {
	Create(model T) error                      // Create inserts a new model into the database
	Get(id string) (T, error)                  // Get retrieves a model by its ID
	Update(model T) error                      // Update modifies an existing model in the database
	Delete(id string) error                    // Delete removes a model from the database by its ID
	List(criteria map[string]any) ([]T, error) // List retrieves all models matching the given criteria
}

// User is the account a service session belongs to.
type User struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Playlist represents a playlist in the user's library
type Playlist struct {
	Index      int    `json:"index" yaml:"index"` // Position in the listing, favourites first
	ID         string `json:"id" yaml:"id"`
	Title      string `json:"title" yaml:"title"`
	TrackCount int    `json:"track_count" yaml:"track_count"`
	Favorites  bool   `json:"favorites,omitempty" yaml:"favorites,omitempty"`
}

// Track represents a song as returned by a playlist fetch.
//
// ISRC and ArtistID are optional; the empty string means the service did not send one.
type Track struct {
	ID       string `json:"id" yaml:"id"`
	Title    string `json:"title" yaml:"title"`
	Version  string `json:"version,omitempty" yaml:"version,omitempty"` // Suffix such as " (Live)", appended verbatim
	ISRC     string `json:"isrc,omitempty" yaml:"isrc,omitempty"`
	ArtistID string `json:"artist_id,omitempty" yaml:"artist_id,omitempty"`
	Artist   string `json:"artist,omitempty" yaml:"artist,omitempty"`
	Album    string `json:"album,omitempty" yaml:"album,omitempty"`
	Duration int    `json:"duration,omitempty" yaml:"duration,omitempty"` // Duration in seconds
}

// FullTitle returns the title with its version suffix, exactly as received.
func (t Track) FullTitle() string {
	return t.Title + t.Version
}

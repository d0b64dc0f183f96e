package dedupe

import "github.com/desertthunder/dzdedup/internal/models"

// NameKey identifies a song by its full title and artist.
type NameKey struct {
	Title    string
	ArtistID string
}

// Keys holds the equivalence keys a track yields under a policy.
//
// A nil field means the axis is inactive or the track lacks the source field.
type Keys struct {
	ISRC *string
	Name *NameKey
}

// Len returns the number of keys produced, 0 to 2.
func (k Keys) Len() int {
	n := 0
	if k.ISRC != nil {
		n++
	}
	if k.Name != nil {
		n++
	}
	return n
}

// BuildKeys computes the keys of t for the axes active in p.
func BuildKeys(t models.Track, p Policy) Keys {
	var k Keys
	if p.ISRC() && t.ISRC != "" {
		isrc := t.ISRC
		k.ISRC = &isrc
	}
	if p.Name() && t.ArtistID != "" {
		k.Name = &NameKey{Title: t.FullTitle(), ArtistID: t.ArtistID}
	}
	return k
}

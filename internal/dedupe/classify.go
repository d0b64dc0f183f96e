package dedupe

import "github.com/desertthunder/dzdedup/internal/models"

// Axis names the key axis on which a duplicate matched.
type Axis int

const (
	AxisISRC Axis = iota + 1
	AxisName
)

func (a Axis) String() string {
	switch a {
	case AxisISRC:
		return "isrc"
	case AxisName:
		return "name"
	default:
		return ""
	}
}

// Duplicate is a track that repeats a key already held by an earlier track.
type Duplicate struct {
	models.Track
	Position int          // Index of the duplicate in the fetched list
	Axis     Axis         // Axis the match was found on
	Original models.Track // Kept track that first held the key
}

// Classification is the outcome of scanning one playlist.
type Classification struct {
	Kept       []models.Track
	Duplicates []Duplicate
}

// Tracks returns the duplicate tracks in encounter order.
func (c Classification) Tracks() []models.Track {
	tracks := make([]models.Track, len(c.Duplicates))
	for i, d := range c.Duplicates {
		tracks[i] = d.Track
	}
	return tracks
}

// IDs returns the ids of the duplicate tracks in encounter order.
func (c Classification) IDs() []string {
	ids := make([]string, len(c.Duplicates))
	for i, d := range c.Duplicates {
		ids[i] = d.ID
	}
	return ids
}

// Classify separates tracks into kept copies and duplicates under p.
//
// Track order is significant and preserved in both outputs.
func Classify(tracks []models.Track, p Policy) Classification {
	var (
		isrcs map[string]models.Track
		names map[NameKey]models.Track
	)
	if p.ISRC() {
		isrcs = make(map[string]models.Track)
	}
	if p.Name() {
		names = make(map[NameKey]models.Track)
	}

	result := Classification{Kept: make([]models.Track, 0, len(tracks))}

	for i, track := range tracks {
		keys := BuildKeys(track, p)

		if keys.ISRC != nil {
			if original, seen := isrcs[*keys.ISRC]; seen {
				result.Duplicates = append(result.Duplicates, Duplicate{Track: track, Position: i, Axis: AxisISRC, Original: original})
				continue
			}
		}

		if keys.Name != nil {
			if original, seen := names[*keys.Name]; seen {
				result.Duplicates = append(result.Duplicates, Duplicate{Track: track, Position: i, Axis: AxisName, Original: original})
				continue
			}
		}

		if keys.ISRC != nil {
			isrcs[*keys.ISRC] = track
		}
		if keys.Name != nil {
			names[*keys.Name] = track
		}
		result.Kept = append(result.Kept, track)
	}

	return result
}

package dedupe

import (
	"fmt"
	"strconv"
	"strings"
)

// Policy selects the key axes used to detect duplicates.
type Policy int

const (
	ByISRC           Policy = 1
	ByTitleAndArtist Policy = 2
	Both             Policy = 3
)

// ISRC reports whether the ISRC axis is active.
func (p Policy) ISRC() bool {
	return p == ByISRC || p == Both
}

// Name reports whether the title + artist axis is active.
func (p Policy) Name() bool {
	return p == ByTitleAndArtist || p == Both
}

// Valid reports whether p is one of the three known policies.
func (p Policy) Valid() bool {
	return p >= ByISRC && p <= Both
}

func (p Policy) String() string {
	switch p {
	case ByISRC:
		return "isrc"
	case ByTitleAndArtist:
		return "name"
	case Both:
		return "both"
	default:
		return "unknown"
	}
}

// Describe returns the label shown in interactive prompts.
func (p Policy) Describe() string {
	switch p {
	case ByISRC:
		return "ISRC"
	case ByTitleAndArtist:
		return "Song name if it's from the same artist"
	case Both:
		return "Both"
	default:
		return "Unknown"
	}
}

// ParsePolicy accepts the numeric choices 1, 2 and 3 as well as their names.
func ParsePolicy(s string) (Policy, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		if p := Policy(n); p.Valid() {
			return p, nil
		}
		return 0, fmt.Errorf("invalid policy %d: choose 1, 2 or 3", n)
	}

	switch s {
	case "isrc":
		return ByISRC, nil
	case "name", "title", "title-artist", "name-artist":
		return ByTitleAndArtist, nil
	case "both", "all":
		return Both, nil
	}
	return 0, fmt.Errorf("invalid policy %q: choose isrc, name or both", s)
}

// Policies lists every policy in menu order.
func Policies() []Policy {
	return []Policy{ByISRC, ByTitleAndArtist, Both}
}

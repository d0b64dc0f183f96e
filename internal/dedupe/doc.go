// Package dedupe classifies the tracks of a single playlist into kept copies and duplicates.
//
// # Equivalence Keys
//
// A [Policy] activates one or both key axes:
//   - ISRC axis: the raw ISRC string
//   - Name axis: [NameKey], the title with its version suffix appended verbatim, paired with the artist id
//
// A track without an ISRC or without an artist id produces no key on that axis, so it can neither match nor be matched there.
// Keys are compared for exact equality. There is no case folding, trimming or other normalisation.
//
// # Classification
//
// [Classify] walks the tracks in the order they were fetched. The first track holding a key is kept; every later track
// whose key was already seen is a [Duplicate]. The ISRC axis is checked first and a hit skips the name axis for that track.
// Only tracks that were not classified as duplicates register their keys.
//
// Classification is pure: it performs no I/O and running it twice over the same input gives the same result.
package dedupe

// Package textutil provides text processing utilities for track metadata:
// tokenization, search-noise stripping, combined title/artist splitting, and
// filename sanitization.
//
// The primary use cases are:
//   - Tokenizing titles and artist names for overlap scoring
//   - Removing bracketed qualifiers ("(Official Video)") that hurt search
//     recall while preserving variant markers ("nightcore", "slowed") that
//     identify the version of a song the listener actually asked for
//   - Splitting consumer-export titles that embed the artist name
//   - Sanitizing names for safe filesystem use
package textutil

// Package matching ranks search candidates against imported tracks.
//
// For each track it generates an ordered list of query variants (most
// specific first), pools the deduplicated candidates every variant returns,
// scores each candidate with a multi-factor heuristic (duration closeness,
// token overlap, channel authority, variant-term consistency), and decides
// whether the top candidate is trustworthy enough to auto-select or the track
// must be deferred to manual review.
//
// Scoring is a pure function of (track, candidate); all I/O happens behind
// the SearchProvider interface so backends remain interchangeable.
package matching

package matching

import "context"

// Candidate is a single search result. Artists holds the artist names when
// the backend distinguishes them, otherwise the uploading channel name.
type Candidate struct {
	VideoID         string
	Title           string
	Artists         string
	DurationSeconds int
}

// SearchProvider is the capability the ranker consumes. An empty result set
// is not an error; providers return a non-nil error only for genuine
// failures (network, malformed response) so the two remain distinguishable.
type SearchProvider interface {
	Search(ctx context.Context, query string, limit int) ([]Candidate, error)
}

// ScoredCandidate annotates a candidate with its confidence score.
type ScoredCandidate struct {
	Candidate
	Score float64
}

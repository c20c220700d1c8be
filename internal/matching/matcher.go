package matching

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"tunepull/internal/library"
	"tunepull/internal/logging"
)

// Defaults for matcher tuning knobs. All are overridable through Options.
const (
	DefaultConfidenceMin = 0.6
	DefaultSearchLimit   = 12
	DefaultRateLimit     = 350 * time.Millisecond
)

// Options tunes a Matcher. Zero values fall back to the defaults above.
type Options struct {
	// ConfidenceMin is the minimum score required to auto-select a candidate.
	ConfidenceMin float64
	// SearchLimit is the per-query candidate cap requested from the provider.
	SearchLimit int
	// RateLimit is the pacing delay between per-track matches in a batch.
	RateLimit time.Duration
	Logger    *slog.Logger
}

// Matcher runs candidate retrieval, scoring, and match decisions for tracks.
type Matcher struct {
	provider      SearchProvider
	confidenceMin float64
	searchLimit   int
	rateLimit     time.Duration
	logger        *slog.Logger
}

// New constructs a Matcher around the provided search backend.
func New(provider SearchProvider, opts Options) (*Matcher, error) {
	if provider == nil {
		return nil, errors.New("search provider required")
	}
	matcher := &Matcher{
		provider:      provider,
		confidenceMin: opts.ConfidenceMin,
		searchLimit:   opts.SearchLimit,
		rateLimit:     opts.RateLimit,
		logger:        opts.Logger,
	}
	if matcher.confidenceMin <= 0 {
		matcher.confidenceMin = DefaultConfidenceMin
	}
	if matcher.searchLimit <= 0 {
		matcher.searchLimit = DefaultSearchLimit
	}
	if matcher.rateLimit <= 0 {
		matcher.rateLimit = DefaultRateLimit
	}
	if matcher.logger == nil {
		matcher.logger = logging.NewNop()
	}
	return matcher, nil
}

// Rank retrieves candidates across all query variants, deduplicates them by
// video id (first occurrence wins), scores every unique candidate, and
// returns them in descending score order. Ties keep retrieval order (stable
// sort). A provider failure aborts the ranking; the error signal is never
// coerced into an empty list here.
func (m *Matcher) Rank(ctx context.Context, track library.Track, limit int) ([]ScoredCandidate, error) {
	if limit <= 0 {
		limit = m.searchLimit
	}

	seen := make(map[string]struct{})
	var pool []Candidate
	for _, query := range QueryVariants(track) {
		candidates, err := m.provider.Search(ctx, query, limit)
		if err != nil {
			return nil, err
		}
		for _, candidate := range candidates {
			if candidate.VideoID == "" {
				continue
			}
			if _, dup := seen[candidate.VideoID]; dup {
				continue
			}
			seen[candidate.VideoID] = struct{}{}
			pool = append(pool, candidate)
		}
	}

	scored := make([]ScoredCandidate, 0, len(pool))
	for _, candidate := range pool {
		scored = append(scored, ScoredCandidate{
			Candidate: candidate,
			Score:     Score(track, candidate),
		})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored, nil
}

// FindBest ranks all candidates for a track and applies the confidence gate.
// The best candidate is nil when nothing clears the threshold; confidence is
// the top score regardless (0 with no candidates), and options always holds
// the full ranked list so a caller can offer manual selection.
func (m *Matcher) FindBest(ctx context.Context, track library.Track) (*ScoredCandidate, float64, []ScoredCandidate, error) {
	options, err := m.Rank(ctx, track, m.searchLimit)
	if err != nil {
		return nil, 0, nil, err
	}
	if len(options) == 0 {
		return nil, 0, nil, nil
	}
	top := options[0]
	if top.Score >= m.confidenceMin {
		return &top, top.Score, options, nil
	}
	return nil, top.Score, options, nil
}

// MoreCandidates re-runs ranking with a larger limit for manual resolution,
// filtering out ids the caller has already shown. A limit of zero doubles
// the configured search limit.
func (m *Matcher) MoreCandidates(ctx context.Context, track library.Track, excludeIDs []string, limit int) ([]ScoredCandidate, error) {
	if limit <= 0 {
		limit = m.searchLimit * 2
	}
	exclude := make(map[string]struct{}, len(excludeIDs))
	for _, id := range excludeIDs {
		exclude[id] = struct{}{}
	}

	options, err := m.Rank(ctx, track, limit)
	if err != nil {
		return nil, err
	}
	fresh := make([]ScoredCandidate, 0, len(options))
	for _, option := range options {
		if _, shown := exclude[option.VideoID]; shown {
			continue
		}
		fresh = append(fresh, option)
	}
	return fresh, nil
}

// Decide resolves a single track to a match result. Provider failures become
// a skipped result with the error string attached; the track is never
// dropped from the output.
func (m *Matcher) Decide(ctx context.Context, track library.Track) Result {
	result := Result{Track: track}

	best, confidence, options, err := m.FindBest(ctx, track)
	if err != nil {
		result.Skipped = true
		result.Err = err.Error()
		m.logger.Warn("search failed",
			logging.String("track", track.Display()),
			logging.Error(err))
		return result
	}

	result.Confidence = confidence
	result.Options = options
	if best == nil {
		result.Skipped = true
		m.logger.Debug("no trusted candidate",
			logging.String("track", track.Display()),
			logging.Float64("confidence", confidence),
			logging.Int("options", len(options)))
		return result
	}

	result.Best = best
	m.logger.Debug("candidate matched",
		logging.String("track", track.Display()),
		logging.String("video_id", best.VideoID),
		logging.Float64("confidence", best.Score))
	return result
}

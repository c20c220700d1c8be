package matching

import (
	"context"
	"time"

	"tunepull/internal/library"
	"tunepull/internal/logging"
)

// Result is the match outcome for one track. Exactly one of three skip
// shapes applies when Skipped is true: a search error (Err non-empty), zero
// candidates (Confidence 0, empty Options), or a below-threshold best match
// (Confidence > 0, Options populated).
type Result struct {
	Track      library.Track
	Best       *ScoredCandidate
	Confidence float64
	Options    []ScoredCandidate
	Skipped    bool
	Err        string
}

// Progress reports batch advancement after each track decision.
type Progress struct {
	Done    int
	Total   int
	Matched int
	Skipped int
	Track   library.Track
	Result  Result
}

// MatchAll applies Decide to every track sequentially, in input order, with
// the configured pacing delay between tracks. The delay applies after failed
// and skipped matches too so the search backend sees a steady request rate.
// Cancellation is honored at track-loop granularity: an in-flight
// track completes before the loop stops. The results accumulated so far are
// returned alongside the context error.
func (m *Matcher) MatchAll(ctx context.Context, tracks []library.Track, progress func(Progress)) ([]Result, error) {
	results := make([]Result, 0, len(tracks))
	matched, skipped := 0, 0

	for idx, track := range tracks {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		result := m.Decide(ctx, track)
		results = append(results, result)
		if result.Skipped {
			skipped++
		} else {
			matched++
		}

		if progress != nil {
			progress(Progress{
				Done:    idx + 1,
				Total:   len(tracks),
				Matched: matched,
				Skipped: skipped,
				Track:   track,
				Result:  result,
			})
		}

		if idx < len(tracks)-1 {
			if err := m.pace(ctx); err != nil {
				return results, err
			}
		}
	}

	m.logger.Info("batch match complete",
		logging.Int("tracks", len(tracks)),
		logging.Int("matched", matched),
		logging.Int("skipped", skipped))
	return results, nil
}

func (m *Matcher) pace(ctx context.Context) error {
	timer := time.NewTimer(m.rateLimit)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

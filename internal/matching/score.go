package matching

import (
	"strings"

	"tunepull/internal/library"
	"tunepull/internal/textutil"
)

// Scoring weights and bounds. The variant magnitudes are asymmetric on
// purpose: returning the wrong variant (+0.25) is recoverable by a human,
// but silently substituting a plain recording for a requested variant
// (+0.50) defeats the request, while an exact variant agreement (+0.45) is
// the strongest signal the candidate is the right rendition.
const (
	// MaxScore leaves headroom below 1.0; no search result is ever certain.
	MaxScore = 0.99

	overlapWeight  = 0.45
	durationWeight = 0.5

	// neutralDuration applies when either side has no known duration.
	neutralDuration = 0.7

	channelBoost = 0.15

	unwantedVariantPenalty = 0.25
	missingVariantPenalty  = 0.50
	variantMatchBoost      = 0.45
	remasterDampening      = 0.6
)

// Score computes the confidence that candidate is the recording the track
// asks for. Deterministic, side-effect free, bounded to [0, MaxScore].
func Score(track library.Track, candidate Candidate) float64 {
	overlap := tokenOverlap(track, candidate)
	duration := durationScore(track.DurationSeconds(), candidate.DurationSeconds)

	channel := 0.0
	author := strings.ToLower(candidate.Artists)
	if strings.Contains(author, "topic") || strings.Contains(author, "official") {
		channel = channelBoost
	}

	boost, penalty := variantConsistency(track, candidate)

	total := duration*durationWeight + overlap*overlapWeight + channel + boost - penalty
	if total < 0 {
		return 0
	}
	if total > MaxScore {
		return MaxScore
	}
	return total
}

// tokenOverlap measures how much of the track's title+artist vocabulary the
// candidate covers, normalized by the track's own token count.
func tokenOverlap(track library.Track, candidate Candidate) float64 {
	trackTokens := textutil.MergeTokenSets(track.Title, track.Artists)
	candTokens := textutil.MergeTokenSets(candidate.Title, candidate.Artists)

	shared := 0
	for token := range trackTokens {
		if _, ok := candTokens[token]; ok {
			shared++
		}
	}
	denominator := len(trackTokens)
	if denominator < 1 {
		denominator = 1
	}
	return float64(shared) / float64(denominator)
}

// durationScore maps the absolute duration delta onto fixed breakpoints.
// Without both durations there is no evidence either way, so the neutral
// baseline applies.
func durationScore(trackSeconds, candidateSeconds int) float64 {
	if trackSeconds <= 0 || candidateSeconds <= 0 {
		return neutralDuration
	}
	delta := trackSeconds - candidateSeconds
	if delta < 0 {
		delta = -delta
	}
	switch {
	case delta <= 6:
		return 1.0
	case delta <= 12:
		return 0.9
	case delta <= 20:
		return 0.78
	case delta <= 30:
		return 0.62
	default:
		return 0.45
	}
}

// variantConsistency compares version qualifiers between the track request
// and the candidate. Terms present on both sides accumulate a boost per term;
// one-sided terms accumulate penalties. A "remaster" tag only the candidate
// carries softens the accumulated penalty: remastered reissues are a milder
// mismatch than other variants.
func variantConsistency(track library.Track, candidate Candidate) (boost, penalty float64) {
	trackBlob := strings.ToLower(track.Title + " " + track.Artists)
	candBlob := strings.ToLower(candidate.Title + " " + candidate.Artists)

	for _, term := range textutil.PenaltyTerms() {
		inTrack := strings.Contains(trackBlob, term)
		inCandidate := strings.Contains(candBlob, term)
		switch {
		case inTrack && inCandidate:
			boost += variantMatchBoost
		case inCandidate:
			penalty += unwantedVariantPenalty
		case inTrack:
			penalty += missingVariantPenalty
		}
	}

	if strings.Contains(candBlob, "remaster") && !strings.Contains(trackBlob, "remaster") {
		penalty *= remasterDampening
	}
	return boost, penalty
}

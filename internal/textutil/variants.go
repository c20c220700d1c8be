package textutil

import "strings"

// variantTerms are version qualifiers that identify an alternate rendition of
// a song. They are meaningful content, not noise: when one appears in a track
// request it must survive cleaning so search can find the right rendition.
var variantTerms = []string{
	"nightcore",
	"nightstep",
	"sped",
	"slowed",
	"reverb",
	"8d",
	"remix",
	"cover",
}

// penaltyTerms are version qualifiers the scorer treats as mismatches when a
// candidate and the requested track disagree about them.
var penaltyTerms = []string{
	"live",
	"remix",
	"cover",
	"sped",
	"slowed",
	"nightcore",
	"8d",
	"reverb",
	"extended",
	"mashup",
	"edit",
	"karaoke",
	"instrumental",
	"demo",
}

// preservedTerms is the union of variant and penalty terms. Any of these found
// inside a bracket slated for removal is re-appended after stripping.
var preservedTerms = func() []string {
	seen := make(map[string]struct{}, len(variantTerms)+len(penaltyTerms))
	merged := make([]string, 0, len(variantTerms)+len(penaltyTerms))
	for _, term := range variantTerms {
		if _, ok := seen[term]; !ok {
			seen[term] = struct{}{}
			merged = append(merged, term)
		}
	}
	for _, term := range penaltyTerms {
		if _, ok := seen[term]; !ok {
			seen[term] = struct{}{}
			merged = append(merged, term)
		}
	}
	return merged
}()

// PenaltyTerms returns the version qualifiers the scorer penalizes or boosts.
// The returned slice must not be modified.
func PenaltyTerms() []string {
	return penaltyTerms
}

// IsVariantTerm reports whether text contains a version qualifier such as
// "nightcore" or "slowed". Used by the splitter to keep "Nightcore - Song"
// intact instead of treating "Nightcore" as an artist.
func IsVariantTerm(text string) bool {
	lowered := strings.ToLower(strings.TrimSpace(text))
	for _, term := range variantTerms {
		if strings.Contains(lowered, term) {
			return true
		}
	}
	return false
}

// fakeArtists are channel or label names that consumer exports mistake for an
// artist field. Matching is exact after lowercasing and trimming.
var fakeArtists = map[string]struct{}{
	"lyrics":         {},
	"lyric video":    {},
	"official video": {},
	"audio":          {},
	"official audio": {},
	"music video":    {},
}

// IsFakeArtist reports whether the parsed artist is actually a channel or
// label name rather than a performer.
func IsFakeArtist(artist string) bool {
	if artist == "" {
		return false
	}
	_, ok := fakeArtists[strings.ToLower(strings.TrimSpace(artist))]
	return ok
}

package matching

import (
	"regexp"
	"strings"

	"tunepull/internal/library"
	"tunepull/internal/textutil"
)

var wholeWordAnd = regexp.MustCompile(`(?i)\band\b`)

// QueryVariants generates the ordered search queries for a track, most
// specific first: an ISRC-qualified variant when the export carried one, the
// raw title+artist, the noise-stripped form, conjunction swaps ("&" vs
// "and"), and a hyphen-removed fallback. Duplicates and empty variants are
// dropped, preserving first-seen order.
func QueryVariants(track library.Track) []string {
	base := textutil.JoinForSearch(track.Title, track.Artists)
	clean := textutil.JoinForSearch(textutil.StripNoise(track.Title), track.Artists)

	var variants []string
	if isrc := strings.TrimSpace(track.ISRC); isrc != "" {
		variants = append(variants, isrc+" "+clean)
	}

	variants = append(variants, base)
	if clean != base {
		variants = append(variants, clean)
	}

	if strings.Contains(base, "&") {
		variants = append(variants, strings.ReplaceAll(base, "&", "and"))
	}
	if wholeWordAnd.MatchString(base) {
		variants = append(variants, wholeWordAnd.ReplaceAllString(base, "&"))
	}

	if strings.Contains(base, "-") {
		variants = append(variants, strings.ReplaceAll(base, "-", " "))
	}

	seen := make(map[string]struct{}, len(variants))
	out := make([]string, 0, len(variants))
	for _, variant := range variants {
		variant = textutil.CollapseWhitespace(variant)
		if variant == "" {
			continue
		}
		if _, dup := seen[variant]; dup {
			continue
		}
		seen[variant] = struct{}{}
		out = append(out, variant)
	}
	return out
}

package textutil

import (
	"regexp"
	"strings"
)

// exportMetadataPatterns remove video-platform annotations that exports leave
// inside the title field. Order matters: specific patterns run before the bare
// end-of-string ones so "(Official Lyric Video)" is consumed whole instead of
// leaving "(Official" behind.
var exportMetadataPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\s*[(\[]+\s*official\s+lyrics?(\s+video)?\s*[)\]]+`),
	regexp.MustCompile(`(?i)\s*[(\[]+\s*official\s+video\s*[)\]]+`),
	regexp.MustCompile(`(?i)\s*[(\[]+\s*official\s+audio\s*[)\]]+`),
	regexp.MustCompile(`(?i)\s*[(\[]+\s*lyrics?(\s+video)?\s*[)\]]+`),
	regexp.MustCompile(`(?i)\s*[(\[]+\s*audio\s*[)\]]+`),
	regexp.MustCompile(`(?i)\s*official\s+lyrics?\s*$`),
	regexp.MustCompile(`(?i)\s*official\s+video\s*$`),
	regexp.MustCompile(`(?i)\s*official\s*$`),
	regexp.MustCompile(`(?i)\s*lyrics?\s+video\s*$`),
	regexp.MustCompile(`(?i)\s*//\s*lyrics?\s*$`),
	regexp.MustCompile(`(?i)\s*\|\|?\s*lyrics?\s*$`),
	regexp.MustCompile(`(?i)\s*lyrics?\s*$`),
}

// StripExportMetadata removes lyrics/official-video/audio annotations from a
// combined export title.
func StripExportMetadata(combined string) string {
	cleaned := combined
	for _, pattern := range exportMetadataPatterns {
		cleaned = pattern.ReplaceAllString(cleaned, " ")
	}
	return CollapseWhitespace(cleaned)
}

// SplitCombinedTitle separates a combined "title" field into title and artist.
// Exports from video platforms often pack both into one field ("Artist - Song
// (Lyrics)"), and sometimes in reversed order or with a variant prefix that is
// not an artist at all ("Nightcore - Song").
//
// The rules are mutually exclusive but order-sensitive; they run in this
// priority order:
//
//  1. No " - " separator, or an empty half: the cleaned string is the title.
//  2. Left half is a variant term: keep the whole string as the title.
//  3. Left half is a middle-dot artist list whose first name is real:
//     right is the title, middle dots become commas in the artist list.
//  4. Left half is a fake artist label: right is the title, artist unknown.
//  5. Right half looks like a trailing artist (3-6 chars, no space, left at
//     least 3x longer, not a fake artist): "Title - Artist" order.
//  6. Right half is a fake artist label: left is the title, artist unknown.
//  7. Default: "Artist - Title" order.
func SplitCombinedTitle(combined string) (title, artist string) {
	combined = strings.TrimSpace(combined)
	if combined == "" {
		return "", ""
	}

	cleaned := StripExportMetadata(combined)

	idx := strings.Index(cleaned, " - ")
	if idx < 0 {
		// Let the search backend resolve it.
		return cleaned, ""
	}
	left := strings.TrimSpace(cleaned[:idx])
	right := strings.TrimSpace(cleaned[idx+3:])

	if left == "" || right == "" {
		return cleaned, ""
	}

	// A variant prefix is part of the title, not an artist.
	if IsVariantTerm(left) {
		return cleaned, ""
	}

	if strings.Contains(left, "·") && !IsFakeArtist(strings.TrimSpace(strings.SplitN(left, "·", 2)[0])) {
		return right, strings.ReplaceAll(left, "·", ",")
	}

	if IsFakeArtist(left) {
		return right, ""
	}

	// Reversed "Title - Artist" order: catches "Pretty Rave Girl 2010 - S3RL"
	// without tripping on "Basshunter - DotA".
	if len(right) >= 3 && len(right) <= 6 &&
		!strings.Contains(right, " ") &&
		len(left) >= 3*len(right) &&
		!IsFakeArtist(right) {
		return left, right
	}

	if IsFakeArtist(right) {
		return left, ""
	}

	return right, left
}

package textutil

import (
	"regexp"
	"strings"
)

// noisePatterns match bracketed qualifiers that hurt search recall, such as
// "(feat. Someone)", "[Official Video]", "(Live at ...)", "(Remix)". Each
// pattern anchors on the opening bracket so mid-text qualifiers are left alone.
var noisePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)[(\[][^)\]]*feat[^)\]]*[)\]]`),
	regexp.MustCompile(`(?i)[(\[]official[^)\]]*[)\]]`),
	regexp.MustCompile(`(?i)[(\[]live[^)\]]*[)\]]`),
	regexp.MustCompile(`(?i)[(\[]remix[^)\]]*[)\]]`),
}

var (
	bracketLeftovers  = regexp.MustCompile(`[()\[\]]`)
	whitespaceRuns    = regexp.MustCompile(`\s+`)
	dashSeparatorRuns = strings.NewReplacer(" - ", " ", "–", " ", "—", " ")
)

// CollapseWhitespace folds whitespace runs into single spaces and trims.
func CollapseWhitespace(text string) string {
	return strings.TrimSpace(whitespaceRuns.ReplaceAllString(text, " "))
}

// StripNoise removes bracketed feat./official/live/remix qualifiers from a
// title. Variant terms found inside a removed bracket are re-appended after
// stripping so they survive into search queries: "(Nightcore Remix)" loses the
// bracket but keeps "nightcore" and "remix" in the cleaned title.
func StripNoise(title string) string {
	var preserved []string
	seen := make(map[string]struct{})

	cleaned := title
	for _, pattern := range noisePatterns {
		cleaned = pattern.ReplaceAllStringFunc(cleaned, func(match string) string {
			matchTokens := TokenSet(match)
			for _, term := range preservedTerms {
				if _, dup := seen[term]; dup {
					continue
				}
				if _, ok := matchTokens[term]; ok {
					seen[term] = struct{}{}
					preserved = append(preserved, term)
				}
			}
			return " "
		})
	}

	cleaned = bracketLeftovers.ReplaceAllString(cleaned, " ")
	cleaned = CollapseWhitespace(cleaned)
	if len(preserved) > 0 {
		cleaned = strings.TrimSpace(cleaned + " " + strings.Join(preserved, " "))
	}
	return cleaned
}

// JoinForSearch builds a flat search string from a title and artist blob.
// Dash separators (including en and em dashes) become spaces and whitespace
// runs collapse, matching how queries are issued against the search backend.
func JoinForSearch(title, artists string) string {
	joined := strings.TrimSpace(title + " " + artists)
	joined = CollapseWhitespace(joined)
	return CollapseWhitespace(dashSeparatorRuns.Replace(joined))
}

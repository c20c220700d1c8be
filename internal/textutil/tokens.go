package textutil

import (
	"regexp"
	"strings"
)

// tokenPattern matches runs of lowercase alphanumerics; everything else is a
// separator and is discarded entirely.
var tokenPattern = regexp.MustCompile(`[a-z0-9]+`)

// Tokenize splits text into lowercase alphanumeric tokens in document order.
func Tokenize(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(text), -1)
}

// TokenSet returns the set of lowercase alphanumeric tokens in text.
func TokenSet(text string) map[string]struct{} {
	tokens := Tokenize(text)
	set := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		set[token] = struct{}{}
	}
	return set
}

// MergeTokenSets unions the token sets of the provided texts.
func MergeTokenSets(texts ...string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, text := range texts {
		for _, token := range Tokenize(text) {
			set[token] = struct{}{}
		}
	}
	return set
}

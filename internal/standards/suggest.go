package standards

import (
	"fmt"
	"regexp"
	"strings"

	"planfairy/internal/domain"
)

// Tuning constants for keyword matching. The values are carried over from
// the legacy tool; change them here, not inline.
const (
	// MinKeywordLen is the shortest corpus word considered a keyword.
	MinKeywordLen = 4
	// MaxKeywords caps how many keywords one text contributes.
	MaxKeywords = 50
	// FallbackSuggestions is how many pool entries to return when no entry
	// matches the search.
	FallbackSuggestions = 12
)

var keywordPattern = regexp.MustCompile(fmt.Sprintf(`[a-z]{%d,}`, MinKeywordLen))

// Keywords extracts lowercased alphabetic tokens of MinKeywordLen or more
// from text, capped at MaxKeywords, in order of first appearance.
func Keywords(text string) []string {
	words := keywordPattern.FindAllString(strings.ToLower(text), -1)
	if len(words) > MaxKeywords {
		words = words[:MaxKeywords]
	}
	return words
}

// Suggest resolves the candidate pool for the key and filters it by the
// search term. An empty term matches everything. A non-empty term keeps
// entries whose text contains it (case-insensitive) or whose tags intersect
// the keyword set derived from the free-text corpus and the term itself.
// When the filter matches nothing, the first FallbackSuggestions entries of
// the pool are returned instead of an empty list.
func Suggest(cat *Catalog, key domain.CatalogKey, corpus, searchTerm string) []string {
	pool := cat.Pool(key)

	keys := map[string]bool{}
	for _, w := range Keywords(corpus) {
		keys[w] = true
	}
	for _, w := range Keywords(searchTerm) {
		keys[w] = true
	}

	term := strings.ToLower(strings.TrimSpace(searchTerm))
	var hits []string
	for _, e := range pool {
		if term == "" || strings.Contains(strings.ToLower(e.Text), term) || tagsIntersect(e.Tags, keys) {
			hits = append(hits, e.Display())
		}
	}
	if len(hits) > 0 {
		return hits
	}

	n := len(pool)
	if n > FallbackSuggestions {
		n = FallbackSuggestions
	}
	out := make([]string, 0, n)
	for _, e := range pool[:n] {
		out = append(out, e.Display())
	}
	return out
}

func tagsIntersect(tags []string, keys map[string]bool) bool {
	for _, t := range tags {
		if keys[t] {
			return true
		}
	}
	return false
}

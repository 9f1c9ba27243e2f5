// Package match implements the case-insensitive substring matching shared by
// the notification policy and the item store search.
package match

import (
	"strings"

	"golang.org/x/text/cases"
)

// Fold returns s in a canonical case-folded form. Folding is Unicode aware,
// so Cyrillic and other non-ASCII titles compare the same way ASCII does.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// NormalizeTerms trims and folds every term, dropping empty ones and
// duplicates. Order of first occurrence is kept.
func NormalizeTerms(terms []string) []string {
	normalized := make([]string, 0, len(terms))
	seen := make(map[string]struct{}, len(terms))
	for _, term := range terms {
		term = Fold(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}
		normalized = append(normalized, term)
	}
	return normalized
}

// FirstIn returns the first term contained in text. Terms must already be
// folded (see NormalizeTerms).
func FirstIn(text string, terms []string) (string, bool) {
	if text == "" || len(terms) == 0 {
		return "", false
	}

	folded := Fold(text)
	for _, term := range terms {
		if strings.Contains(folded, term) {
			return term, true
		}
	}
	return "", false
}

// AnyIn reports whether any folded term is contained in text.
func AnyIn(text string, terms []string) bool {
	_, ok := FirstIn(text, terms)
	return ok
}

package tags

import (
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Matching selects the name equivalence rule for lookups.
type Matching string

const (
	// MatchingStrict folds case only: "Alpha" matches "ALPHA" but
	// "café" does not match "Cafe".
	MatchingStrict Matching = "strict"
	// MatchingAccent folds case and strips diacritics, so "café"
	// matches "Cafe".
	MatchingAccent Matching = "accent"
)

// IsValid returns true if the matching mode is a known value.
func (m Matching) IsValid() bool {
	switch m {
	case MatchingStrict, MatchingAccent:
		return true
	default:
		return false
	}
}

// Key returns the comparison key for a tag name under the given rule.
// Two names are equivalent exactly when their keys are equal.
func Key(m Matching, name string) string {
	s := name
	if m == MatchingAccent {
		s = stripMarks(s)
	}
	// Caser values are stateful and not safe for reuse across goroutines,
	// so build one per call.
	return cases.Fold().String(s)
}

// stripMarks decomposes the string and removes combining marks, then
// recomposes. Base letters survive, so non-Latin names stay distinct.
func stripMarks(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

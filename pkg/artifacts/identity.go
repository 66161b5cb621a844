package artifacts

import (
	"strings"

	"golang.org/x/text/cases"
)

// folder is a Unicode-aware case folder shared by the normalizers.
// cases.Caser values are not safe for concurrent use, so each call
// takes a fresh one.
func folder() cases.Caser {
	return cases.Fold()
}

// Normalize produces the canonical form of a product name or identifier
// used to correlate the same physical product across artifacts: case
// folded, trimmed, with interior whitespace runs collapsed to single
// spaces.
func Normalize(s string) string {
	folded := folder().String(strings.TrimSpace(s))
	return strings.Join(strings.Fields(folded), " ")
}

// MatchKey produces the aggressive matching key used when folding
// comparison-table rows into products: Normalize, then drop spaces and
// hyphens entirely. "Dolphin E-10" and "dolphin e10" collapse to the
// same key.
func MatchKey(s string) string {
	normalized := Normalize(s)
	normalized = strings.ReplaceAll(normalized, " ", "")
	return strings.ReplaceAll(normalized, "-", "")
}

// SameIdentity reports whether two raw names refer to the same product
// under Normalize.
func SameIdentity(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// Package match holds the name normalization used to compare crop and market
// names across the dataset, the live API and user input.
package match

import (
	"strings"

	"golang.org/x/text/cases"
)

// Fold trims surrounding whitespace and case-folds s. A fresh Caser is used per
// call because cases.Caser is not safe for concurrent use.
func Fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// Exact reports whether a and b are equal after folding.
func Exact(a, b string) bool {
	return Fold(a) == Fold(b)
}

// Loose reports whether either folded name contains the other. It tolerates
// naming variants such as "Onion Green" vs "Onion" and, by the same token,
// matches "Tomato" against "Cherry Tomato". Empty names never match.
func Loose(query, candidate string) bool {
	q, c := Fold(query), Fold(candidate)
	if q == "" || c == "" {
		return false
	}
	return strings.Contains(c, q) || strings.Contains(q, c)
}

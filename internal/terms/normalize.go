package terms

import (
	"strings"
	"unicode"

	"golang.org/x/text/width"
)

// NormalizeRune folds a single rune into its matching form: East Asian
// full-width and half-width variants collapse onto their canonical narrow
// counterpart before lowercasing, so ＧＯ, Go and go all normalize to go.
func NormalizeRune(r rune) rune {
	if folded := width.LookupRune(r).Folded(); folded != 0 {
		r = folded
	}
	return unicode.ToLower(r)
}

// Normalize produces the matching form of a surface string. The same function
// runs over both the term corpus and content text, so matches compare
// normalized-to-normalized.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		b.WriteRune(NormalizeRune(r))
	}
	return b.String()
}

// NormalizeTracked normalizes raw and returns, alongside the normalized
// string, a byte offset table mapping every normalized byte position to the
// byte position in raw where the originating rune starts. The table carries
// one extra entry mapping len(normalized) to len(raw) so half-open spans on
// the normalized string translate directly to half-open spans on raw.
func NormalizeTracked(raw string) (string, []int) {
	var b strings.Builder
	b.Grow(len(raw))
	offsets := make([]int, 0, len(raw)+1)

	for i, r := range raw {
		folded := NormalizeRune(r)
		start := b.Len()
		b.WriteRune(folded)
		for j := start; j < b.Len(); j++ {
			offsets = append(offsets, i)
		}
	}
	offsets = append(offsets, len(raw))
	return b.String(), offsets
}

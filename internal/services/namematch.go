package services

import (
	"strings"
	"unicode"
)

// NormalizeName lowercases, keeps letters (including the German umlauts and
// eszett that show up in Zoom display names) and spaces, and collapses runs
// of whitespace.
func NormalizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r == 'ä', r == 'ö', r == 'ü', r == 'ß':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// NamesSimilar reports whether two display names refer to the same person:
// after normalization, every word of one name appears in the other. That
// covers middle initials and extra name parts ("Jane A. Doe" vs "Jane Doe")
// without matching unrelated people.
func NamesSimilar(a, b string) bool {
	ta := strings.Fields(NormalizeName(a))
	tb := strings.Fields(NormalizeName(b))
	if len(ta) == 0 || len(tb) == 0 {
		return false
	}
	return tokensContain(ta, tb) || tokensContain(tb, ta)
}

func tokensContain(haystack, needles []string) bool {
	set := make(map[string]bool, len(haystack))
	for _, tok := range haystack {
		set[tok] = true
	}
	for _, tok := range needles {
		if !set[tok] {
			return false
		}
	}
	return true
}

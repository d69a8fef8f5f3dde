// Package natsort orders strings so that embedded runs of digits compare by
// numeric value instead of character by character ("file2" < "file10").
package natsort

import (
	"slices"
	"strings"
)

// chunk is one run of a split string. Runs alternate between text and
// digits, starting with a (possibly empty) text run.
type chunk struct {
	text    string
	numeric bool
}

// split breaks s into alternating text and digit runs. The first run is
// always text so that two split strings line up run for run.
func split(s string) []chunk {
	chunks := make([]chunk, 0, 4)
	start := 0
	numeric := false
	for i := 0; i < len(s); i++ {
		d := isDigit(s[i])
		if d == numeric {
			continue
		}
		chunks = append(chunks, chunk{text: s[start:i], numeric: numeric})
		start = i
		numeric = d
	}
	chunks = append(chunks, chunk{text: s[start:], numeric: numeric})
	return chunks
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// compareDigits compares two digit runs by value without converting them,
// so arbitrarily long runs never overflow.
func compareDigits(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

// Compare returns -1, 0 or +1 depending on whether a sorts before, equal to
// or after b. Digit runs compare numerically, text runs case-insensitively,
// and a run sequence that is a prefix of another sorts first. Strings equal
// under those rules fall back to byte order, so Compare returns 0 only for
// identical strings.
func Compare(a, b string) int {
	ca, cb := split(a), split(b)
	for i := 0; i < len(ca) && i < len(cb); i++ {
		var c int
		if ca[i].numeric && cb[i].numeric {
			c = compareDigits(ca[i].text, cb[i].text)
		} else {
			c = strings.Compare(strings.ToLower(ca[i].text), strings.ToLower(cb[i].text))
		}
		if c != 0 {
			return c
		}
	}
	switch {
	case len(ca) < len(cb):
		return -1
	case len(ca) > len(cb):
		return 1
	}
	return strings.Compare(a, b)
}

// Sort sorts names in place in natural order.
func Sort(names []string) {
	slices.SortStableFunc(names, Compare)
}

// SortFunc sorts items in place in natural order of the key returned by key.
func SortFunc[T any](items []T, key func(T) string) {
	slices.SortStableFunc(items, func(a, b T) int {
		return Compare(key(a), key(b))
	})
}

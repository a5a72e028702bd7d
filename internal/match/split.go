// Package match implements the case-insensitive substring matching used by the
// typeahead: filtering an option list and splitting an option into highlight spans.
package match

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Split breaks text into alternating non-matching and matching spans for query.
//
// The result always starts with a non-matching span (possibly empty) and ends with
// the remaining suffix (possibly empty), so odd indexes hold the matches. Matching
// spans are taken from text, not from its lower-cased form, and the concatenation
// of all spans equals text. An empty query yields []string{text}.
func Split(text, query string) []string {
	if query == "" {
		return []string{text}
	}

	folded, offsets := foldWithOffsets(text)
	needle := Fold(query)

	var spans []string
	last := 0 // byte offset in text of the unscanned suffix
	pos := 0  // byte offset in folded
	for pos <= len(folded) {
		idx := strings.Index(folded[pos:], needle)
		if idx < 0 {
			break
		}
		start, end := pos+idx, pos+idx+len(needle)
		if offsets[start] < 0 || offsets[end] < 0 {
			// match does not line up with rune boundaries of text
			pos = start + 1
			continue
		}
		spans = append(spans, text[last:offsets[start]], text[offsets[start]:offsets[end]])
		last = offsets[end]
		pos = end
	}

	return append(spans, text[last:])
}

// Fold returns the case-folded form used for all comparisons in this package.
func Fold(s string) string {
	folded, _ := foldWithOffsets(s)
	return folded
}

// foldWithOffsets lower-cases s rune by rune and returns, for every byte offset of
// the folded string that starts a rune (plus its end), the matching byte offset in s.
// Offsets inside a folded rune are -1.
func foldWithOffsets(s string) (string, []int) {
	var b strings.Builder
	b.Grow(len(s))
	offsets := make([]int, 0, len(s)+1)

	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		before := b.Len()
		if r == utf8.RuneError && size == 1 {
			b.WriteByte(s[i])
		} else {
			b.WriteRune(unicode.ToLower(r))
		}
		offsets = append(offsets, i)
		for j := before + 1; j < b.Len(); j++ {
			offsets = append(offsets, -1)
		}
		i += size
	}
	offsets = append(offsets, len(s))

	return b.String(), offsets
}

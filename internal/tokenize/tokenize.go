// Package tokenize splits document text into an ordered token sequence
// using UAX#29 word segmentation.
package tokenize

import (
	"strings"
	"unicode"

	"github.com/clipperhouse/uax29/v2/words"
)

// Tokens segments text into words, dropping whitespace and punctuation
// segments. Lowercase normalization is applied iff lowercase is set.
func Tokens(text string, lowercase bool) []string {
	var out []string
	seg := words.FromString(text)
	for seg.Next() {
		tok := seg.Value()
		if !isWord(tok) {
			continue
		}
		if lowercase {
			tok = strings.ToLower(tok)
		}
		out = append(out, tok)
	}
	return out
}

// isWord reports whether the segment carries at least one letter or digit.
// UAX#29 emits spaces and punctuation as their own segments.
func isWord(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

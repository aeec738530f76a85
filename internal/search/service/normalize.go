package service

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// decompose, drop combining marks, recompose
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases, strips diacritics and trims: "  Café " -> "cafe".
// Idempotent. Never fails: on a transform error the lowercased input is kept.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	out := strings.ToLower(s)
	if t, _, err := transform.String(stripMarks, out); err == nil {
		out = t
	}
	return strings.TrimSpace(out)
}

var nonWord = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// fieldKey is Normalize plus punctuation folding, used for header names:
// "Ref_Article" and "ref article" give the same key.
func fieldKey(s string) string {
	s = nonWord.ReplaceAllString(Normalize(s), " ")
	return strings.Join(strings.Fields(s), " ")
}

// splitWords cuts a normalized value on whitespace only. Punctuation stays
// inside the word: "xlsph-1104" is one reference, not two words.
func splitWords(s string) []string {
	return strings.Fields(s)
}

func runeLen(s string) int { return len([]rune(s)) }

// Package util provides text normalization for tags, category names and descriptions.
package util

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// NormalizeTagSlug converts a user-entered tag label to its canonical slug.
// The slug is the identity of a tag: "Go Lang", "go_lang" and "GO-LANG" all
// name the same tag. Letters and digits of every script are kept; accents on
// Latin letters fold away. A label with no letters or digits keys on its
// case-folded text, so only a blank label yields "".
//
//	"Slow Burn"    → "slow-burn"
//	"Café Notes"   → "cafe-notes"
//	"🐉 Dragons!"  → "dragons"
//	"Книги"        → "книги"
//	"日本語"        → "日本語"
//	"🎵"           → "🎵"
//	"--leading--"  → "leading"
func NormalizeTagSlug(input string) string {
	var b strings.Builder
	var base rune
	dash := false

	for _, r := range norm.NFKD.String(input) {
		switch {
		case unicode.IsMark(r):
			// Marks on Latin letters are accents; elsewhere they are part of the letter.
			if base == 0 || unicode.Is(unicode.Latin, base) {
				continue
			}
			b.WriteRune(r)
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			base = r
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '_' || r == '/' || r == '-':
			dash = true
			base = 0
		default:
			base = 0
		}
	}

	if b.Len() > 0 {
		return norm.NFC.String(cases.Fold().String(b.String()))
	}
	return strings.ReplaceAll(NameKey(input), " ", "-")
}

// Package normalize builds comparison keys from raw bibliographic text.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// shortTitleLen is the prefix length of the coarse-match key.
const shortTitleLen = 25

var fold = cases.Fold()

// Key normalizes text into a comparison key: Unicode NFC composition, case
// folding, punctuation and whitespace runs collapsed to single spaces, and
// " & " expanded to " and ".
func Key(s string) string {
	s = norm.NFC.String(s)
	s = fold.String(s)
	s = strings.ReplaceAll(s, " & ", " and ")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// ShortTitle returns the normalized title truncated to a fixed prefix,
// used as a cheap coarse-match key.
func ShortTitle(title string) string {
	key := Key(title)
	if len(key) <= shortTitleLen {
		return key
	}
	cut := shortTitleLen
	for cut > 0 && !utf8Start(key[cut]) {
		cut--
	}
	return key[:cut]
}

func utf8Start(b byte) bool { return b&0xc0 != 0x80 }

var trailingParen = regexp.MustCompile(`\s*\([^)]*\)\s*$`)

// TitleForms returns the set of comparison variants of a title: the
// normalized form, the form with a leading article stripped, and, when the
// title carries a trailing parenthetical, the stripped form and its
// normalization. Matchers test any variant against any.
func TitleForms(title string) []string {
	seen := make(map[string]bool)
	var forms []string
	add := func(s string) {
		if s != "" && !seen[s] {
			seen[s] = true
			forms = append(forms, s)
		}
	}

	key := Key(title)
	add(key)
	add(strings.TrimPrefix(key, "the "))
	add(strings.TrimPrefix(key, "a "))

	if stripped := trailingParen.ReplaceAllString(title, ""); stripped != title {
		add(strings.TrimSpace(stripped))
		add(Key(stripped))
	}
	return forms
}

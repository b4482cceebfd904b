// Package names decides whether two catalog-convention name strings
// ("Surname, Given Middle") denote the same person, tolerating
// abbreviation, missing parts, and embedded honorific titles.
package names

import (
	"strings"

	"github.com/lehigh-university-libraries/marcmatch/internal/normalize"
)

// honorifics are titles that may appear as an extra leading or trailing
// token on either side of a comparison without breaking a match.
var honorifics = map[string]bool{
	"sir": true, "dame": true, "lady": true, "lord": true, "baron": true,
	"dr": true, "prof": true, "professor": true, "rev": true, "reverend": true,
	"mr": true, "mrs": true, "ms": true, "miss": true,
	"capt": true, "captain": true, "col": true, "colonel": true,
	"hon": true, "saint": true, "st": true,
}

// Match reports whether a and b denote the same person. Rules run in
// order, first satisfied wins:
//
//  1. equal normalized keys (covers organizations and events),
//  2. equal keys with spaces removed,
//  3. surname + given-name comparison after splitting on the first comma,
//     with a commaless multi-token side reinterpreted as "Given Surname",
//  4. a surname mismatch that is not a bounded suffix rejects outright,
//  5. given tokens compared prefix-tolerantly (abbreviation either way),
//  6. ordered-subsequence and honorific-stripped retries.
//
// A side reduced to surname only matches solely when lastNameOnlyOK is set.
func Match(a, b string, lastNameOnlyOK bool) bool {
	ka, kb := normalize.Key(a), normalize.Key(b)
	if ka == "" || kb == "" {
		return false
	}
	if ka == kb {
		return true
	}
	if strings.ReplaceAll(ka, " ", "") == strings.ReplaceAll(kb, " ", "") {
		return true
	}

	surA, givenA := split(a)
	surB, givenB := split(b)

	if surA != surB && !surnameSuffix(surA, surB) {
		return false
	}

	if len(givenA) == 0 || len(givenB) == 0 {
		return lastNameOnlyOK
	}

	if tokensMatch(givenA, givenB) || subsequenceMatch(givenA, givenB) {
		return true
	}

	strippedA, okA := stripHonorifics(givenA)
	strippedB, okB := stripHonorifics(givenB)
	if okA || okB {
		if len(strippedA) == 0 || len(strippedB) == 0 {
			return lastNameOnlyOK
		}
		return tokensMatch(strippedA, strippedB) || subsequenceMatch(strippedA, strippedB)
	}
	return false
}

// MatchFlipped is a convenience entry that additionally recognizes the
// 30/31-character fixed-width "Surname   Initials" form seen in some
// secondary-source name fields, flipping it into catalog convention
// before matching. Last-name-only matches are allowed.
func MatchFlipped(a, b string) bool {
	for _, x := range []string{a, flip(a)} {
		for _, y := range []string{b, flip(b)} {
			if Match(x, y, true) {
				return true
			}
		}
	}
	return false
}

func flip(s string) string {
	if (len(s) != 30 && len(s) != 31) || strings.Contains(s, ",") || !strings.Contains(s, "  ") {
		return s
	}
	fields := strings.Fields(s)
	if len(fields) < 2 {
		return s
	}
	return fields[0] + ", " + strings.Join(fields[1:], " ")
}

// split breaks a name into a surname key and given-name tokens. Catalog
// names split on the first comma; a commaless name with several tokens is
// read as "Given ... Surname", and a single token is surname only.
func split(name string) (surname string, given []string) {
	if i := strings.IndexByte(name, ','); i >= 0 {
		return normalize.Key(name[:i]), strings.Fields(normalize.Key(name[i+1:]))
	}
	tokens := strings.Fields(normalize.Key(name))
	if len(tokens) == 0 {
		return "", nil
	}
	return tokens[len(tokens)-1], tokens[:len(tokens)-1]
}

// surnameSuffix reports whether one surname is a whitespace-bounded suffix
// of the other, as with "de la Cruz" against "Cruz". Keys have already
// folded periods to spaces, so the boundary check is a single space.
func surnameSuffix(a, b string) bool {
	if len(a) < len(b) {
		a, b = b, a
	}
	return b != "" && strings.HasSuffix(a, " "+b)
}

// prefixMatch tolerates abbreviation in either direction: "j" matches
// "james" and vice versa.
func prefixMatch(a, b string) bool {
	return a != "" && b != "" && (strings.HasPrefix(a, b) || strings.HasPrefix(b, a))
}

func tokensMatch(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !prefixMatch(a[i], b[i]) {
			return false
		}
	}
	return true
}

// subsequenceMatch reports whether every token of the shorter list appears,
// in order, somewhere in the longer list.
func subsequenceMatch(a, b []string) bool {
	if len(a) > len(b) {
		a, b = b, a
	}
	j := 0
	for _, want := range a {
		for j < len(b) && !prefixMatch(b[j], want) {
			j++
		}
		if j == len(b) {
			return false
		}
		j++
	}
	return true
}

// stripHonorifics removes honorific tokens from the ends of a token list.
// ok reports whether anything was removed.
func stripHonorifics(tokens []string) (out []string, ok bool) {
	out = tokens
	for len(out) > 0 && honorifics[out[0]] {
		out = out[1:]
		ok = true
	}
	for len(out) > 0 && honorifics[out[len(out)-1]] {
		out = out[:len(out)-1]
		ok = true
	}
	return out, ok
}

// Package dedupe decides whether two bibliographic records describe the
// same physical book, using a weighted multi-factor fuzzy scorer over
// flattened candidate projections.
package dedupe

import (
	"regexp"
	"strings"

	"github.com/lehigh-university-libraries/marcmatch/internal/catalog"
	"github.com/lehigh-university-libraries/marcmatch/internal/marc"
	"github.com/lehigh-university-libraries/marcmatch/internal/normalize"
)

// Author is one author entry of a candidate.
type Author struct {
	Name      string
	NormName  string
	BirthDate string
	DeathDate string
}

// Candidate is the flat comparison projection of a bibliographic record.
// It is built fresh for every comparison and never persisted; it has no
// identity beyond the comparison it participates in.
type Candidate struct {
	FullTitle  string
	NormTitle  string
	ShortTitle string
	Titles     []string // variant set, tested any-vs-any

	Authors     []Author
	ISBNs       []string
	PublishDate string
	Publishers  []string
	PageCount   int
}

// MARC fields consulted by the builder. Everything else in a record is
// irrelevant to the match decision.
var authorTags = []string{"100", "110", "111", "700", "710", "711"}

// BuildCandidate projects a parsed MARC record into a Candidate. cache may
// be nil; a batch driver passes one NameCache per import run so repeated
// author strings are parsed once.
func BuildCandidate(rec *marc.Record, cache *NameCache) *Candidate {
	c := &Candidate{}

	var title, subtitle string
	// A repeated 245 is invalid but occurs in the wild; the first one wins
	// rather than losing the title entirely.
	if fields := rec.Fields("245"); len(fields) > 0 {
		title = cleanTitle(strings.Join(fields[0].Values('a'), " "))
		subtitle = cleanTitle(strings.Join(fields[0].Values('b'), " "))
	}
	c.setTitles(title, subtitle)

	for _, tag := range authorTags {
		for _, f := range rec.Fields(tag) {
			name := cleanName(strings.Join(f.Values('a'), " "))
			if name == "" {
				continue
			}
			birth, death := splitLifeDates(strings.Join(f.Values('d'), " "))
			c.Authors = append(c.Authors, cache.author(name, birth, death))
		}
	}

	for _, f := range rec.Fields("020") {
		for _, v := range f.Values('a') {
			if isbn := NormalizeISBN(v); isbn != "" {
				c.ISBNs = append(c.ISBNs, isbn)
			}
		}
	}

	for _, tag := range []string{"260", "264"} {
		for _, f := range rec.Fields(tag) {
			for _, v := range f.Values('b') {
				if p := strings.TrimRight(v, " ,:;"); p != "" {
					c.Publishers = append(c.Publishers, p)
				}
			}
			if c.PublishDate == "" {
				if v := strings.Join(f.Values('c'), " "); v != "" {
					c.PublishDate = strings.Trim(v, " .,[]c")
				}
			}
		}
	}

	if f, err := rec.One("300"); err == nil {
		c.PageCount = pageCount(strings.Join(f.Values('a'), " "))
	}

	return c
}

// BuildCandidateFromEdition projects an existing catalog edition through
// the same normalization as a parsed record, so both sides of a comparison
// are produced identically.
func BuildCandidateFromEdition(ed catalog.EditionView, cache *NameCache) *Candidate {
	c := &Candidate{
		PublishDate: ed.PublishDate,
		PageCount:   ed.NumberOfPages,
	}
	c.setTitles(cleanTitle(ed.Title), cleanTitle(ed.Subtitle))

	for _, a := range ed.Authors {
		if name := cleanName(a.Name); name != "" {
			c.Authors = append(c.Authors, cache.author(name, a.BirthDate, a.DeathDate))
		}
	}
	for _, v := range append(append([]string{}, ed.ISBN10...), ed.ISBN13...) {
		if isbn := NormalizeISBN(v); isbn != "" {
			c.ISBNs = append(c.ISBNs, isbn)
		}
	}
	for _, p := range ed.Publishers {
		if p = strings.TrimRight(p, " ,:;"); p != "" {
			c.Publishers = append(c.Publishers, p)
		}
	}
	return c
}

// setTitles fills the title fields and the variant set.
func (c *Candidate) setTitles(title, subtitle string) {
	full := title
	if subtitle != "" {
		full = strings.TrimSpace(title + " " + subtitle)
	}
	c.FullTitle = full
	c.NormTitle = normalize.Key(full)
	// The coarse key deliberately ignores the subtitle: records that agree
	// on the title proper but differ in subtitle should still coarse-match.
	c.ShortTitle = normalize.ShortTitle(title)
	c.Titles = normalize.TitleForms(full)
}

var isbnJunk = regexp.MustCompile(`[^0-9Xx]`)

// NormalizeISBN strips hyphens and qualifiers from an ISBN string and
// uppercases a trailing X check digit. The first token carrying digits is
// the ISBN, which skips both prefix labels ("ISBN 0747532699") and
// trailing qualifiers ("0747532699 (pbk.)"). It does NOT convert between
// the 10- and 13-digit forms: "0747532699" and "9780747532699" stay
// distinct, and the scorer treats them as an ISBN mismatch. Callers
// wanting ISBN-10/ISBN-13 equivalence must convert before building
// candidates.
func NormalizeISBN(s string) string {
	for _, tok := range strings.Fields(s) {
		isbn := strings.ToUpper(isbnJunk.ReplaceAllString(tok, ""))
		if strings.ContainsAny(isbn, "0123456789") {
			return isbn
		}
	}
	return ""
}

func cleanTitle(s string) string {
	return strings.TrimSpace(strings.TrimRight(s, " /:;,"))
}

func cleanName(s string) string {
	return strings.TrimSpace(strings.TrimRight(s, " ,"))
}

// splitLifeDates splits a 100$d style "1879-1955" into birth and death
// years. Open ranges ("1923-") leave the other side empty.
func splitLifeDates(d string) (birth, death string) {
	d = strings.Trim(d, " .,")
	if d == "" {
		return "", ""
	}
	parts := strings.SplitN(d, "-", 2)
	birth = strings.TrimSpace(parts[0])
	if len(parts) == 2 {
		death = strings.TrimSpace(parts[1])
	}
	return birth, death
}

var digits = regexp.MustCompile(`\d+`)

// pageCount pulls the page count out of a 300$a physical description such
// as "xii, 345 p. :". The largest numeral wins, which skips roman-numeral
// prefaces and volume counts like "2 v. (345 p.)".
func pageCount(s string) int {
	best := 0
	for _, m := range digits.FindAllString(s, -1) {
		n := 0
		for _, c := range m {
			n = n*10 + int(c-'0')
		}
		if n > best {
			best = n
		}
	}
	return best
}

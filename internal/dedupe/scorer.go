package dedupe

import (
	"regexp"
	"strings"

	"github.com/lehigh-university-libraries/marcmatch/internal/names"
	"github.com/lehigh-university-libraries/marcmatch/internal/normalize"
)

// Entry is one factor's contribution to a comparison.
type Entry struct {
	Factor  string `yaml:"factor" json:"factor"`
	Verdict string `yaml:"verdict" json:"verdict"`
	Points  int    `yaml:"points" json:"points"`
}

// Report is the ordered score breakdown of one comparison plus its sum.
// It exists for the duration of the accept/reject decision; callers may
// log it for audit.
type Report struct {
	Entries []Entry `yaml:"entries" json:"entries"`
	Total   int     `yaml:"total" json:"total"`
}

func (r *Report) add(factor, verdict string, points int) {
	r.Entries = append(r.Entries, Entry{Factor: factor, Verdict: verdict, Points: points})
	r.Total += points
}

func (r *Report) append(entries ...Entry) {
	for _, e := range entries {
		r.Entries = append(r.Entries, e)
		r.Total += e.Points
	}
}

// Scorer runs weighted comparisons between candidate records.
type Scorer struct {
	w Weights
}

// NewScorer returns a scorer using the given weights.
func NewScorer(w Weights) *Scorer {
	return &Scorer{w: w}
}

// Compare runs the default-weight scorer. See Scorer.Compare.
func Compare(a, b *Candidate, threshold int) (bool, Report) {
	return NewScorer(DefaultWeights()).Compare(a, b, threshold)
}

// Compare decides whether a and b describe the same book. It never fails:
// the result is always a decision plus the full breakdown, even when every
// factor is neutral.
//
// Scoring is two-tier, cheap first. Tier 1 runs short-title, date and ISBN
// comparison; if its total already reaches the threshold the expensive
// battery is skipped. Otherwise tier 2 reuses those three entries without
// re-running them (each factor counts once, the tier totals are never
// summed together) and adds full-title, publisher, author and pagination
// factors; its own total decides. Ties at exactly the threshold accept.
func (s *Scorer) Compare(a, b *Candidate, threshold int) (bool, Report) {
	shortEntry := Entry{"short-title", "mismatch", 0}
	if a.ShortTitle != "" && a.ShortTitle == b.ShortTitle {
		shortEntry = Entry{"short-title", "match", s.w.ShortTitleMatch}
	}
	dateEntry := s.compareDate(a, b)
	isbnEntry := s.compareISBN(a, b)

	var tier1 Report
	tier1.append(shortEntry, dateEntry, isbnEntry)

	if tier1.Total >= threshold {
		return true, tier1
	}

	var tier2 Report
	tier2.append(shortEntry, dateEntry, isbnEntry)
	tier2.append(s.compareFullTitle(a, b))
	tier2.append(s.comparePublisher(a, b))
	tier2.append(s.compareAuthors(a, b))
	tier2.append(s.comparePagination(a, b))

	return tier2.Total >= threshold, tier2
}

var yearRE = regexp.MustCompile(`\d{4}`)

// compareDate compares publication years. Missing dates are neutral;
// unparseable ones count as a mismatch rather than a crash.
func (s *Scorer) compareDate(a, b *Candidate) Entry {
	if a.PublishDate == "" || b.PublishDate == "" {
		return Entry{"publish-date", "missing", 0}
	}
	ya, yb := yearRE.FindString(a.PublishDate), yearRE.FindString(b.PublishDate)
	if ya == "" || yb == "" {
		return Entry{"publish-date", "unparseable", s.w.DateMismatch}
	}
	diff := yearInt(ya) - yearInt(yb)
	if diff < 0 {
		diff = -diff
	}
	switch {
	case diff == 0:
		return Entry{"publish-date", "exact match", s.w.DateExact}
	case diff == 1:
		return Entry{"publish-date", "within one year", s.w.DateWithinOne}
	case diff == 2:
		return Entry{"publish-date", "within two years", s.w.DateWithinTwo}
	default:
		return Entry{"publish-date", "mismatch", s.w.DateMismatch}
	}
}

func yearInt(s string) int {
	n := 0
	for _, c := range s {
		n = n*10 + int(c-'0')
	}
	return n
}

// compareISBN compares normalized ISBN sets literally: the 10- and
// 13-digit forms of the same book do not match here.
func (s *Scorer) compareISBN(a, b *Candidate) Entry {
	if len(a.ISBNs) == 0 || len(b.ISBNs) == 0 {
		return Entry{"isbn", "missing", 0}
	}
	for _, x := range a.ISBNs {
		for _, y := range b.ISBNs {
			if x == y {
				return Entry{"isbn", "match", s.w.ISBNMatch}
			}
		}
	}
	return Entry{"isbn", "mismatch", s.w.ISBNMismatch}
}

// shortFullTitle is the length under which a failed keyword comparison is
// neutral instead of a penalty: very short titles carry too little signal.
const shortFullTitle = 9

// keywordCutoff is the minimum token-overlap ratio that counts as a
// keyword match between full titles.
const keywordCutoff = 0.75

var titleStopwords = map[string]bool{
	"a": true, "an": true, "and": true, "in": true, "of": true,
	"on": true, "the": true, "to": true,
}

func (s *Scorer) compareFullTitle(a, b *Candidate) Entry {
	for _, x := range a.Titles {
		for _, y := range b.Titles {
			if x == y {
				return Entry{"full-title", "exact match", s.w.TitleExact}
			}
		}
	}
	for _, x := range a.Titles {
		for _, y := range b.Titles {
			if strings.Contains(x, y) || strings.Contains(y, x) {
				return Entry{"full-title", "contained within other title", s.w.TitleContained}
			}
		}
	}

	ta := keywords(a.NormTitle, titleStopwords)
	tb := keywords(b.NormTitle, titleStopwords)
	ratio, ordered := overlap(ta, tb)
	if ratio >= keywordCutoff {
		points := int(ratio * float64(s.w.TitleKeywordScale))
		if ordered {
			points += s.w.TitleOrderBonus
		}
		return Entry{"full-title", "keyword match", points}
	}

	if len(a.NormTitle) < shortFullTitle || len(b.NormTitle) < shortFullTitle {
		return Entry{"full-title", "short title", 0}
	}
	return Entry{"full-title", "mismatch", s.w.TitleMismatch}
}

// smallPageCount separates pamphlet-sized counts, where an exact match
// means much less, from book-sized ones.
const smallPageCount = 10

func (s *Scorer) comparePagination(a, b *Candidate) Entry {
	if a.PageCount == 0 || b.PageCount == 0 {
		return Entry{"pagination", "missing", 0}
	}
	diff := a.PageCount - b.PageCount
	if diff < 0 {
		diff = -diff
	}
	small := a.PageCount <= smallPageCount || b.PageCount <= smallPageCount
	switch {
	case diff == 0 && !small:
		return Entry{"pagination", "match", s.w.PageExact}
	case diff == 0:
		return Entry{"pagination", "match (short)", s.w.PageExactSmall}
	case diff <= 10 && !small:
		return Entry{"pagination", "close", s.w.PageClose}
	case diff <= 10:
		return Entry{"pagination", "close (short)", s.w.PageCloseSmall}
	default:
		return Entry{"pagination", "mismatch", s.w.PageMismatch}
	}
}

func (s *Scorer) comparePublisher(a, b *Candidate) Entry {
	if len(a.Publishers) == 0 || len(b.Publishers) == 0 {
		return Entry{"publisher", "missing", 0}
	}
	for _, x := range a.Publishers {
		for _, y := range b.Publishers {
			if publishersAgree(x, y) {
				return Entry{"publisher", "match", s.w.PublisherMatch}
			}
		}
	}
	return Entry{"publisher", "mismatch", s.w.PublisherMismatch}
}

// publishersAgree tolerates the usual catalog variation: "Bloomsbury"
// against "Bloomsbury Pub.", "Harper Collins" against "HarperCollins",
// and word-reordered imprint statements.
func publishersAgree(x, y string) bool {
	kx, ky := normalize.Key(x), normalize.Key(y)
	if kx == "" || ky == "" {
		return false
	}
	if kx == ky || strings.Contains(kx, ky) || strings.Contains(ky, kx) {
		return true
	}
	if strings.ReplaceAll(kx, " ", "") == strings.ReplaceAll(ky, " ", "") {
		return true
	}
	return wordsContained(kx, ky) || wordsContained(ky, kx)
}

// wordsContained reports whether every word of inner appears in outer.
func wordsContained(inner, outer string) bool {
	outerWords := make(map[string]bool)
	for _, w := range strings.Fields(outer) {
		outerWords[w] = true
	}
	for _, w := range strings.Fields(inner) {
		if !outerWords[w] {
			return false
		}
	}
	return true
}

// authorOverlapCutoff is the minimum name-token overlap that still scores
// when no pair of authors passes the name matcher.
const authorOverlapCutoff = 0.5

func (s *Scorer) compareAuthors(a, b *Candidate) Entry {
	switch {
	case len(a.Authors) == 0 && len(b.Authors) == 0:
		return Entry{"authors", "both missing", s.w.AuthorBothMissing}
	case len(a.Authors) == 0 || len(b.Authors) == 0:
		return Entry{"authors", "one missing", s.w.AuthorOneMissing}
	}

	for _, x := range a.Authors {
		for _, y := range b.Authors {
			if names.Match(x.Name, y.Name, true) {
				return Entry{"authors", "exact match", s.w.AuthorExact}
			}
		}
	}

	best, bestOrdered := 0.0, false
	for _, x := range a.Authors {
		for _, y := range b.Authors {
			ratio, ordered := overlap(strings.Fields(x.NormName), strings.Fields(y.NormName))
			if ratio > best {
				best, bestOrdered = ratio, ordered
			}
		}
	}
	if best > authorOverlapCutoff {
		points := int(best * float64(s.w.AuthorKeywordScale))
		if bestOrdered {
			points += s.w.AuthorOrderBonus
		}
		return Entry{"authors", "keyword match", points}
	}
	return Entry{"authors", "mismatch", s.w.AuthorMismatch}
}

func keywords(key string, stopwords map[string]bool) []string {
	var out []string
	for _, w := range strings.Fields(key) {
		if !stopwords[w] {
			out = append(out, w)
		}
	}
	return out
}

// overlap computes the shared-token ratio of two token lists (shared over
// union) and whether the shared tokens appear in the same relative order
// on both sides.
func overlap(a, b []string) (ratio float64, sameOrder bool) {
	if len(a) == 0 || len(b) == 0 {
		return 0, false
	}
	inA := make(map[string]bool, len(a))
	for _, w := range a {
		inA[w] = true
	}
	inB := make(map[string]bool, len(b))
	for _, w := range b {
		inB[w] = true
	}

	union, shared := len(inB), 0
	for w := range inA {
		if inB[w] {
			shared++
		} else {
			union++
		}
	}
	if shared == 0 {
		return 0, false
	}

	// Order is judged on the first occurrence sequence of shared tokens.
	var sharedA, sharedB []string
	seenA := make(map[string]bool)
	for _, w := range a {
		if inB[w] && !seenA[w] {
			seenA[w] = true
			sharedA = append(sharedA, w)
		}
	}
	seenB := make(map[string]bool)
	for _, w := range b {
		if inA[w] && !seenB[w] {
			seenB[w] = true
			sharedB = append(sharedB, w)
		}
	}

	sameOrder = len(sharedA) == len(sharedB)
	if sameOrder {
		for i := range sharedA {
			if sharedA[i] != sharedB[i] {
				sameOrder = false
				break
			}
		}
	}
	return float64(shared) / float64(union), sameOrder
}

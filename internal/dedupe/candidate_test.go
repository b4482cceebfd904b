package dedupe

import (
	"reflect"
	"testing"

	"github.com/lehigh-university-libraries/marcmatch/internal/catalog"
	"github.com/lehigh-university-libraries/marcmatch/internal/marc"
)

func spytimeRecord() *marc.Record {
	r := &marc.Record{ControlNumber: "ocm43176642"}
	r.AddField(marc.Field{Tag: "001", Value: "ocm43176642"})
	r.AddField(marc.Field{Tag: "020", Indicator1: ' ', Indicator2: ' ', Subfields: []marc.Subfield{
		{Code: 'a', Value: "0151004293 (alk. paper)"},
	}})
	r.AddField(marc.Field{Tag: "100", Indicator1: '1', Indicator2: ' ', Subfields: []marc.Subfield{
		{Code: 'a', Value: "Buckley, William F."},
		{Code: 'd', Value: "1925-2008."},
	}})
	r.AddField(marc.Field{Tag: "245", Indicator1: '1', Indicator2: '0', Subfields: []marc.Subfield{
		{Code: 'a', Value: "Spytime :"},
		{Code: 'b', Value: "the undoing of James Jesus Angleton : a novel /"},
	}})
	r.AddField(marc.Field{Tag: "260", Indicator1: ' ', Indicator2: ' ', Subfields: []marc.Subfield{
		{Code: 'a', Value: "New York :"},
		{Code: 'b', Value: "Harcourt,"},
		{Code: 'c', Value: "c2000."},
	}})
	r.AddField(marc.Field{Tag: "300", Indicator1: ' ', Indicator2: ' ', Subfields: []marc.Subfield{
		{Code: 'a', Value: "xii, 335 p. ;"},
	}})
	return r
}

func TestBuildCandidate(t *testing.T) {
	c := BuildCandidate(spytimeRecord(), nil)

	if want := "Spytime the undoing of James Jesus Angleton : a novel"; c.FullTitle != want {
		t.Errorf("FullTitle = %q, want %q", c.FullTitle, want)
	}
	if c.ShortTitle != "spytime" {
		t.Errorf("ShortTitle = %q, want %q", c.ShortTitle, "spytime")
	}
	if want := []string{"0151004293"}; !reflect.DeepEqual(c.ISBNs, want) {
		t.Errorf("ISBNs = %v, want %v", c.ISBNs, want)
	}
	if c.PublishDate != "2000" {
		t.Errorf("PublishDate = %q, want %q", c.PublishDate, "2000")
	}
	if want := []string{"Harcourt"}; !reflect.DeepEqual(c.Publishers, want) {
		t.Errorf("Publishers = %v, want %v", c.Publishers, want)
	}
	if c.PageCount != 335 {
		t.Errorf("PageCount = %d, want 335", c.PageCount)
	}

	if len(c.Authors) != 1 {
		t.Fatalf("Authors = %v, want one entry", c.Authors)
	}
	a := c.Authors[0]
	if a.Name != "Buckley, William F." {
		t.Errorf("author name = %q", a.Name)
	}
	if a.NormName != "buckley william f" {
		t.Errorf("author norm name = %q", a.NormName)
	}
	if a.BirthDate != "1925" || a.DeathDate != "2008" {
		t.Errorf("author dates = %q-%q, want 1925-2008", a.BirthDate, a.DeathDate)
	}
}

// Both projection paths must produce the same candidate for the same book,
// since existing catalog entries and fresh records meet in one comparison.
func TestBuildCandidateFromEditionMatchesRecordProjection(t *testing.T) {
	fromRecord := BuildCandidate(spytimeRecord(), nil)

	fromEdition := BuildCandidateFromEdition(catalog.EditionView{
		Key:      "/books/OL24279B",
		Title:    "Spytime",
		Subtitle: "the undoing of James Jesus Angleton : a novel",
		Authors: []catalog.AuthorView{
			{Name: "Buckley, William F.", BirthDate: "1925", DeathDate: "2008"},
		},
		ISBN10:        []string{"0-15-100429-3"},
		PublishDate:   "2000",
		Publishers:    []string{"Harcourt,"},
		NumberOfPages: 335,
	}, nil)

	if fromEdition.NormTitle != fromRecord.NormTitle {
		t.Errorf("NormTitle: edition %q, record %q", fromEdition.NormTitle, fromRecord.NormTitle)
	}
	if fromEdition.ShortTitle != fromRecord.ShortTitle {
		t.Errorf("ShortTitle: edition %q, record %q", fromEdition.ShortTitle, fromRecord.ShortTitle)
	}
	if !reflect.DeepEqual(fromEdition.ISBNs, fromRecord.ISBNs) {
		t.Errorf("ISBNs: edition %v, record %v", fromEdition.ISBNs, fromRecord.ISBNs)
	}
	if !reflect.DeepEqual(fromEdition.Publishers, fromRecord.Publishers) {
		t.Errorf("Publishers: edition %v, record %v", fromEdition.Publishers, fromRecord.Publishers)
	}
	if !reflect.DeepEqual(fromEdition.Authors, fromRecord.Authors) {
		t.Errorf("Authors: edition %v, record %v", fromEdition.Authors, fromRecord.Authors)
	}

	accepted, report := Compare(fromRecord, fromEdition, DefaultThreshold)
	if !accepted {
		t.Errorf("identical book projected two ways did not match: %+v", report)
	}
}

// A record with a duplicated 245 is invalid, but the candidate must still
// carry a title (the first one) instead of guaranteeing a rejection.
func TestBuildCandidateRepeatedTitleField(t *testing.T) {
	r := spytimeRecord()
	r.AddField(marc.Field{Tag: "245", Indicator1: '1', Indicator2: '0', Subfields: []marc.Subfield{
		{Code: 'a', Value: "Spytime (duplicate entry)"},
	}})

	c := BuildCandidate(r, nil)
	if c.ShortTitle != "spytime" {
		t.Errorf("ShortTitle = %q, want %q from the first 245", c.ShortTitle, "spytime")
	}
	if want := "Spytime the undoing of James Jesus Angleton : a novel"; c.FullTitle != want {
		t.Errorf("FullTitle = %q, want %q", c.FullTitle, want)
	}
}

func TestNormalizeISBN(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"0-7475-3269-9", "0747532699"},
		{"0747532699 (pbk.)", "0747532699"},
		{"978-0-7475-3269-9", "9780747532699"},
		{"074753269x", "074753269X"},
		{"ISBN 0747532699", "0747532699"},
		{"ISBN", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeISBN(tt.input); got != tt.want {
			t.Errorf("NormalizeISBN(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestPageCount(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"xii, 335 p. ;", 335},
		{"2 v. (345 p.)", 345},
		{"48 pages", 48},
		{"no pagination", 0},
	}
	for _, tt := range tests {
		if got := pageCount(tt.input); got != tt.want {
			t.Errorf("pageCount(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestNameCacheMemoizes(t *testing.T) {
	cache := NewNameCache()
	a := cache.author("Buckley, William F.", "1925", "2008")
	b := cache.author("Buckley, William F.", "1925", "2008")
	if a != b {
		t.Errorf("cache returned different entries for the same name: %+v vs %+v", a, b)
	}
	if len(cache.authors) != 1 {
		t.Errorf("cache holds %d entries after repeated lookups, want 1", len(cache.authors))
	}
	cache.author("Buckley, William F.", "", "")
	if len(cache.authors) != 2 {
		t.Errorf("entries with different dates must not collide; cache holds %d", len(cache.authors))
	}

	var nilCache *NameCache
	got := nilCache.author("Brontë, Charlotte", "1816", "1855")
	if got.NormName != "brontë charlotte" {
		t.Errorf("nil cache NormName = %q", got.NormName)
	}
}

package catalog

// EditionView is the flat view of an existing catalog edition, the shape
// the persistence layer hands to the matcher. It carries exactly the
// fields the comparison needs; both it and freshly parsed MARC records
// are projected through the same candidate builder so the two sides of a
// comparison are produced identically.
type EditionView struct {
	// Key identifies the edition in the owning catalog (opaque here).
	Key string `json:"key" parquet:"key"`

	Title    string `json:"title" parquet:"title"`
	Subtitle string `json:"subtitle" parquet:"subtitle"`

	Authors []AuthorView `json:"authors" parquet:"authors,list"`

	// ISBN10 and ISBN13 are carried as found. The matcher does not equate
	// the 10- and 13-digit forms of the same book; callers wanting that
	// equivalence convert upstream.
	ISBN10 []string `json:"isbn_10" parquet:"isbn_10,list"`
	ISBN13 []string `json:"isbn_13" parquet:"isbn_13,list"`

	PublishDate   string   `json:"publish_date" parquet:"publish_date"`
	Publishers    []string `json:"publishers" parquet:"publishers,list"`
	NumberOfPages int      `json:"number_of_pages" parquet:"number_of_pages"`
}

// AuthorView is one author of an edition as the catalog records it,
// name in "Surname, Given" convention where known.
type AuthorView struct {
	Name      string `json:"name" parquet:"name"`
	BirthDate string `json:"birth_date" parquet:"birth_date"`
	DeathDate string `json:"death_date" parquet:"death_date"`
}

package dedupe

import "github.com/lehigh-university-libraries/marcmatch/internal/normalize"

// NameCache memoizes parsed author entries across the candidates of one
// import run, since catalog dumps repeat the same author strings over and
// over. It is owned by the caller (one cache per run, no eviction) and is
// not safe for concurrent use; batch drivers build candidates before
// fanning comparisons out to workers.
type NameCache struct {
	authors map[string]Author
}

// NewNameCache returns an empty cache.
func NewNameCache() *NameCache {
	return &NameCache{authors: make(map[string]Author)}
}

// author returns the parsed entry for a name, building and remembering it
// on first sight. A nil cache simply builds every time.
func (c *NameCache) author(name, birth, death string) Author {
	if c == nil {
		return Author{Name: name, NormName: normalize.Key(name), BirthDate: birth, DeathDate: death}
	}
	key := name + "\x00" + birth + "\x00" + death
	if a, ok := c.authors[key]; ok {
		return a
	}
	a := Author{Name: name, NormName: normalize.Key(name), BirthDate: birth, DeathDate: death}
	c.authors[key] = a
	return a
}

package dedupe

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultThreshold is the acceptance threshold a comparison's tier total
// must reach (>=, ties accept).
const DefaultThreshold = 875

// Weights holds every scoring constant of the merge scorer. The defaults
// are empirically tuned values inherited from the production matcher with
// no documented derivation; changing any of them is a behavior change that
// needs sign-off, which is why they are configuration rather than code.
type Weights struct {
	Threshold int `yaml:"threshold"`

	ShortTitleMatch int `yaml:"short_title_match"`

	DateExact     int `yaml:"date_exact"`
	DateWithinOne int `yaml:"date_within_one"`
	DateWithinTwo int `yaml:"date_within_two"`
	DateMismatch  int `yaml:"date_mismatch"`

	ISBNMatch    int `yaml:"isbn_match"`
	ISBNMismatch int `yaml:"isbn_mismatch"`

	TitleExact        int `yaml:"title_exact"`
	TitleContained    int `yaml:"title_contained"`
	TitleKeywordScale int `yaml:"title_keyword_scale"`
	TitleOrderBonus   int `yaml:"title_order_bonus"`
	TitleMismatch     int `yaml:"title_mismatch"`

	PageExact      int `yaml:"page_exact"`
	PageExactSmall int `yaml:"page_exact_small"`
	PageClose      int `yaml:"page_close"`
	PageCloseSmall int `yaml:"page_close_small"`
	PageMismatch   int `yaml:"page_mismatch"`

	PublisherMatch    int `yaml:"publisher_match"`
	PublisherMismatch int `yaml:"publisher_mismatch"`

	AuthorExact        int `yaml:"author_exact"`
	AuthorKeywordScale int `yaml:"author_keyword_scale"`
	AuthorOrderBonus   int `yaml:"author_order_bonus"`
	AuthorBothMissing  int `yaml:"author_both_missing"`
	AuthorOneMissing   int `yaml:"author_one_missing"`
	AuthorMismatch     int `yaml:"author_mismatch"`
}

// DefaultWeights returns the production scoring constants.
func DefaultWeights() Weights {
	return Weights{
		Threshold: DefaultThreshold,

		ShortTitleMatch: 450,

		DateExact:     200,
		DateWithinOne: 100,
		DateWithinTwo: -25,
		DateMismatch:  -250,

		ISBNMatch:    85,
		ISBNMismatch: -225,

		TitleExact:        600,
		TitleContained:    350,
		TitleKeywordScale: 450,
		TitleOrderBonus:   50,
		TitleMismatch:     -600,

		PageExact:      100,
		PageExactSmall: 50,
		PageClose:      50,
		PageCloseSmall: 20,
		PageMismatch:   -225,

		PublisherMatch:    100,
		PublisherMismatch: -25,

		AuthorExact:        125,
		AuthorKeywordScale: 80,
		AuthorOrderBonus:   10,
		AuthorBothMissing:  75,
		AuthorOneMissing:   -25,
		AuthorMismatch:     -200,
	}
}

// LoadWeights reads a YAML weights file over the defaults, so a file only
// needs to name the constants it overrides.
func LoadWeights(path string) (Weights, error) {
	w := DefaultWeights()

	data, err := os.ReadFile(path)
	if err != nil {
		return w, fmt.Errorf("failed to read weights file: %w", err)
	}
	if err := yaml.Unmarshal(data, &w); err != nil {
		return w, fmt.Errorf("failed to parse weights file: %w", err)
	}
	return w, nil
}

package matchcmd

import (
	"fmt"
	"os"

	"github.com/lehigh-university-libraries/marcmatch/internal/dedupe"
	"github.com/lehigh-university-libraries/marcmatch/internal/marc"
	"github.com/spf13/cobra"
)

// NewCompareCmd creates the compare command
func NewCompareCmd() *cobra.Command {
	var threshold int
	var weightsPath string

	cmd := &cobra.Command{
		Use:   "compare <a.mrc> <b.mrc>",
		Short: "Compare two MARC records and print the match score breakdown",
		Long: `Compare the first record of two binary MARC21 files with the merge
scorer and print each factor's contribution plus the accept/reject verdict.

The scorer is two-tier: a cheap short-title/date/ISBN pass accepts
immediately when it reaches the threshold, otherwise the full battery
(title keywords, publisher, authors, pagination) decides.`,
		Example: `  # Score two records against the default threshold
  marcmatch compare a.mrc b.mrc

  # Custom threshold and scoring weights
  marcmatch compare a.mrc b.mrc --threshold 800 --weights weights.yaml`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeCompare(args[0], args[1], threshold, weightsPath)
		},
	}

	cmd.Flags().IntVar(&threshold, "threshold", dedupe.DefaultThreshold, "Acceptance threshold (ties accept)")
	cmd.Flags().StringVar(&weightsPath, "weights", "", "Optional YAML file overriding scoring weights")

	return cmd
}

func executeCompare(pathA, pathB string, threshold int, weightsPath string) error {
	weights := dedupe.DefaultWeights()
	if weightsPath != "" {
		var err error
		if weights, err = dedupe.LoadWeights(weightsPath); err != nil {
			return err
		}
	}

	cache := dedupe.NewNameCache()
	a, err := firstCandidate(pathA, cache)
	if err != nil {
		return err
	}
	b, err := firstCandidate(pathB, cache)
	if err != nil {
		return err
	}

	accepted, report := dedupe.NewScorer(weights).Compare(a, b, threshold)

	for _, e := range report.Entries {
		fmt.Printf("%-14s %-28s %+d\n", e.Factor, e.Verdict, e.Points)
	}
	fmt.Printf("%-14s %-28s %d (threshold %d)\n", "total", "", report.Total, threshold)
	if accepted {
		fmt.Println("MATCH")
	} else {
		fmt.Println("NO MATCH")
	}
	return nil
}

func firstCandidate(path string, cache *dedupe.NameCache) (*dedupe.Candidate, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open MARC file: %w", err)
	}
	defer f.Close()

	rec, err := marc.NewReader(f).Next()
	if err != nil {
		return nil, fmt.Errorf("failed to read record from %s: %w", path, err)
	}
	return dedupe.BuildCandidate(rec, cache), nil
}

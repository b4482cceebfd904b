package matchcmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"sync"

	"github.com/lehigh-university-libraries/marcmatch/internal/catalog"
	"github.com/lehigh-university-libraries/marcmatch/internal/dedupe"
	"github.com/lehigh-university-libraries/marcmatch/internal/marc"
	"github.com/lehigh-university-libraries/marcmatch/internal/results"
	"github.com/spf13/cobra"
)

// NewDedupeCmd creates the dedupe command for batch matching
func NewDedupeCmd() *cobra.Command {
	var recordsPath string
	var catalogPath string
	var outputPath string
	var weightsPath string
	var threshold int
	var concurrency int
	var sampleSize int
	var verbose bool

	cmd := &cobra.Command{
		Use:   "dedupe",
		Short: "Match incoming MARC records against a catalog dump",
		Long: `Run every record of a binary MARC21 file through the merge scorer
against an existing catalog dump (.parquet or .jsonl of edition views) and
report, per record, the best-scoring edition and whether it clears the
acceptance threshold.

Malformed records are logged with their byte offset and skipped; one bad
record never stops the batch.`,
		Example: `  # Dedupe an import file against a parquet catalog dump
  marcmatch dedupe --records import.mrc --catalog editions.parquet

  # Limit the catalog sample and write a YAML report
  marcmatch dedupe --records import.mrc --catalog editions.jsonl \
    --sample 1000 --output results/run.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logLevel := slog.LevelInfo
			if verbose {
				logLevel = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
			slog.SetDefault(logger)

			return executeDedupe(recordsPath, catalogPath, outputPath, weightsPath, threshold, concurrency, sampleSize)
		},
	}

	cmd.Flags().StringVar(&recordsPath, "records", "", "Path to a binary MARC21 file of candidate records (required)")
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "Path to a parquet or jsonl catalog dump (required)")
	cmd.Flags().StringVar(&outputPath, "output", "", "Write a YAML results report to this path")
	cmd.Flags().StringVar(&weightsPath, "weights", "", "Optional YAML file overriding scoring weights")
	cmd.Flags().IntVar(&threshold, "threshold", dedupe.DefaultThreshold, "Acceptance threshold (ties accept)")
	cmd.Flags().IntVar(&concurrency, "concurrency", 4, "Number of concurrent comparisons")
	cmd.Flags().IntVar(&sampleSize, "sample", 0, "Limit catalog editions loaded (0 for all)")

	cmd.Flags().BoolVar(&verbose, "verbose", false, "Enable debug logging")

	_ = cmd.MarkFlagRequired("records")
	_ = cmd.MarkFlagRequired("catalog")

	return cmd
}

// candidateAt pairs a built candidate with where its record came from.
type candidateAt struct {
	offset        int64
	controlNumber string
	candidate     *dedupe.Candidate
}

func executeDedupe(recordsPath, catalogPath, outputPath, weightsPath string, threshold, concurrency, sampleSize int) error {
	slog.Info("Starting dedupe run", "records", recordsPath, "catalog", catalogPath, "threshold", threshold)

	weights := dedupe.DefaultWeights()
	if weightsPath != "" {
		var err error
		if weights, err = dedupe.LoadWeights(weightsPath); err != nil {
			return err
		}
	}

	slog.Info("Loading catalog dump...")
	loader := catalog.NewLoader(catalogPath)
	editions, err := loader.LoadSample(sampleSize)
	if err != nil {
		return fmt.Errorf("failed to load catalog dump: %w", err)
	}
	slog.Info("Catalog loaded", "editions", len(editions))

	// Candidates are built sequentially with a per-run name cache; only
	// the pure comparisons fan out to workers.
	cache := dedupe.NewNameCache()
	existing := make([]*dedupe.Candidate, len(editions))
	for i, ed := range editions {
		existing[i] = dedupe.BuildCandidateFromEdition(ed, cache)
	}

	incoming, err := readCandidates(recordsPath, cache)
	if err != nil {
		return err
	}
	slog.Info("Candidate records parsed", "records", len(incoming))

	scorer := dedupe.NewScorer(weights)

	slog.Info("Scoring", "concurrency", concurrency)

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, concurrency)
	resultsChan := make(chan results.MatchResult, len(incoming))

	for i, cand := range incoming {
		wg.Add(1)
		go func(idx int, cand candidateAt) {
			defer wg.Done()
			semaphore <- struct{}{}        // Acquire
			defer func() { <-semaphore }() // Release

			slog.Debug("Scoring record", "offset", cand.offset, "progress", fmt.Sprintf("%d/%d", idx+1, len(incoming)))

			resultsChan <- bestMatch(scorer, cand, editions, existing, threshold)
		}(i, cand)
	}

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	var runResults []results.MatchResult
	accepted := 0
	for result := range resultsChan {
		if result.Accepted {
			accepted++
		}
		runResults = append(runResults, result)
	}
	sort.Slice(runResults, func(i, j int) bool { return runResults[i].Offset < runResults[j].Offset })

	slog.Info("Dedupe run finished", "records", len(runResults), "accepted", accepted, "rejected", len(runResults)-accepted)

	if outputPath != "" {
		slog.Info("Saving results", "output", outputPath)
		config := results.RunConfig{
			RecordsPath: recordsPath,
			CatalogPath: catalogPath,
			Threshold:   threshold,
			WeightsPath: weightsPath,
		}
		if err := results.SaveToYAML(outputPath, config, runResults); err != nil {
			return err
		}
	}

	return nil
}

// bestMatch scores one incoming candidate against every existing edition
// and keeps the highest-scoring breakdown.
func bestMatch(scorer *dedupe.Scorer, cand candidateAt, editions []catalog.EditionView, existing []*dedupe.Candidate, threshold int) results.MatchResult {
	result := results.MatchResult{
		Offset:        cand.offset,
		ControlNumber: cand.controlNumber,
		Title:         cand.candidate.FullTitle,
	}

	first := true
	for i, ex := range existing {
		ok, report := scorer.Compare(cand.candidate, ex, threshold)
		if first || report.Total > result.Score {
			first = false
			result.Accepted = ok
			result.Score = report.Total
			result.Breakdown = report
			result.BestEdition = editions[i].Key
		}
		if ok {
			break // first acceptance wins, matching import behavior
		}
	}
	return result
}

// readCandidates parses every well-formed record of a MARC file into a
// candidate, skipping structurally broken records with a diagnostic.
func readCandidates(path string, cache *dedupe.NameCache) ([]candidateAt, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open MARC file: %w", err)
	}
	defer f.Close()

	reader := marc.NewReader(f)
	var out []candidateAt
	for {
		offset := reader.Offset()
		rec, err := reader.Next()
		if err == io.EOF {
			return out, nil
		}
		var se *marc.StructuralError
		if errors.As(err, &se) {
			slog.Warn("Skipping malformed record", "offset", se.Offset, "reason", se.Reason)
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, candidateAt{
			offset:        offset,
			controlNumber: rec.ControlNumber,
			candidate:     dedupe.BuildCandidate(rec, cache),
		})
	}
}

package results

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lehigh-university-libraries/marcmatch/internal/dedupe"
	"gopkg.in/yaml.v3"
)

// RunConfig represents the configuration section of the results YAML
type RunConfig struct {
	RecordsPath string `yaml:"recordspath"`
	CatalogPath string `yaml:"catalogpath"`
	Threshold   int    `yaml:"threshold"`
	WeightsPath string `yaml:"weightspath,omitempty"`
	Timestamp   string `yaml:"timestamp"`
}

// MatchResult represents one candidate record's best match
type MatchResult struct {
	Offset        int64         `yaml:"offset"`
	ControlNumber string        `yaml:"controlnumber,omitempty"`
	Title         string        `yaml:"title"`
	BestEdition   string        `yaml:"bestedition,omitempty"`
	Accepted      bool          `yaml:"accepted"`
	Score         int           `yaml:"score"`
	Breakdown     dedupe.Report `yaml:"breakdown"`
}

// RunSpec represents the complete deduplication run output
type RunSpec struct {
	Config  RunConfig     `yaml:"config"`
	Results []MatchResult `yaml:"results"`
}

// SaveToYAML saves deduplication results to a YAML file
func SaveToYAML(path string, config RunConfig, results []MatchResult) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	config.Timestamp = time.Now().Format(time.RFC3339)
	spec := RunSpec{Config: config, Results: results}

	data, err := yaml.Marshal(&spec)
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write results file: %w", err)
	}

	return nil
}

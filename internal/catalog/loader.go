package catalog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"
)

// Loader reads catalog edition dumps for batch deduplication runs.
type Loader struct {
	datasetPath string
}

// NewLoader creates a loader for the given dump file.
func NewLoader(datasetPath string) *Loader {
	return &Loader{
		datasetPath: datasetPath,
	}
}

// Load loads every edition from the dump (JSONL or Parquet).
func (l *Loader) Load() ([]EditionView, error) {
	return l.load(0)
}

// LoadSample loads at most limit editions (useful for testing).
func (l *Loader) LoadSample(limit int) ([]EditionView, error) {
	if limit <= 0 {
		return l.load(0)
	}
	return l.load(limit)
}

func (l *Loader) load(limit int) ([]EditionView, error) {
	ext := strings.ToLower(filepath.Ext(l.datasetPath))

	switch ext {
	case ".parquet":
		return l.loadParquet(limit)
	case ".jsonl", ".json":
		return l.loadJSONL(limit)
	default:
		return nil, fmt.Errorf("unsupported file format: %s (supported: .parquet, .jsonl)", ext)
	}
}

// loadJSONL loads editions from a JSONL file, one edition per line.
func (l *Loader) loadJSONL(limit int) ([]EditionView, error) {
	slog.Debug("Opening JSONL catalog dump", "path", l.datasetPath)

	file, err := os.Open(l.datasetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog dump: %w", err)
	}
	defer file.Close()

	var editions []EditionView
	scanner := bufio.NewScanner(file)

	// Editions with many ISBNs and publishers can produce long lines
	const maxCapacity = 1024 * 1024
	buf := make([]byte, maxCapacity)
	scanner.Buffer(buf, maxCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()

		if len(line) == 0 {
			continue
		}

		var edition EditionView
		if err := json.Unmarshal(line, &edition); err != nil {
			return nil, fmt.Errorf("failed to parse JSON at line %d: %w", lineNum, err)
		}

		editions = append(editions, edition)
		if limit > 0 && len(editions) >= limit {
			break
		}

		if lineNum%1000 == 0 {
			slog.Debug("Reading JSONL", "lines_read", lineNum)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading catalog dump: %w", err)
	}

	slog.Debug("Finished reading JSONL catalog dump", "total_editions", len(editions))

	return editions, nil
}

// loadParquet loads editions from a Parquet file.
func (l *Loader) loadParquet(limit int) ([]EditionView, error) {
	slog.Debug("Opening Parquet catalog dump", "path", l.datasetPath)

	file, err := os.Open(l.datasetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	slog.Debug("Parquet file opened", "num_rows", pf.NumRows(), "num_row_groups", len(pf.RowGroups()))

	reader := parquet.NewGenericReader[EditionView](pf)
	defer reader.Close()

	var editions []EditionView
	rows := make([]EditionView, 128) // Read in batches

	for {
		n, err := reader.Read(rows)
		if n > 0 {
			editions = append(editions, rows[:n]...)
			if limit > 0 && len(editions) >= limit {
				editions = editions[:limit]
				break
			}
		}
		if err != nil {
			break
		}
	}

	slog.Debug("Finished reading Parquet catalog dump", "total_editions", len(editions))

	return editions, nil
}

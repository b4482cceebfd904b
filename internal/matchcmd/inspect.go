package matchcmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/lehigh-university-libraries/marcmatch/internal/marc"
	"github.com/spf13/cobra"
)

// NewInspectCmd creates the inspect command
func NewInspectCmd() *cobra.Command {
	var file string
	var limit int

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Inspect records in a MARC21 transmission file",
		Long: `Inspect records from a binary MARC21 (ISO 2709) file.

Each record is printed in a human-readable breaker-like form: the leader,
then one line per field. Structurally broken records are reported with
their byte offset and skipped, so a corrupt record in the middle of a
file does not hide the rest.`,
		Example: `  # Show the first 10 records
  marcmatch inspect --file records.mrc

  # Show every record
  marcmatch inspect --file records.mrc --limit 0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeInspect(file, limit)
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Path to a binary MARC21 file (required)")
	cmd.Flags().IntVar(&limit, "limit", 10, "Number of records to show (0 for all)")

	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func executeInspect(path string, limit int) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open MARC file: %w", err)
	}
	defer f.Close()

	reader := marc.NewReader(f)
	shown := 0
	for limit <= 0 || shown < limit {
		offset := reader.Offset()
		rec, err := reader.Next()
		if err == io.EOF {
			break
		}
		var se *marc.StructuralError
		if errors.As(err, &se) {
			slog.Warn("Skipping malformed record", "offset", se.Offset, "reason", se.Reason)
			continue
		}
		if err != nil {
			return err
		}

		printRecord(rec, offset)
		shown++
	}

	fmt.Printf("%d record(s)\n", shown)
	return nil
}

func printRecord(rec *marc.Record, offset int64) {
	fmt.Printf("=== record at offset %d\n", offset)
	fmt.Printf("LDR %s\n", rec.Leader)
	for _, tag := range rec.Tags() {
		for _, f := range rec.Fields(tag) {
			if f.IsControl() {
				fmt.Printf("%s    %s\n", f.Tag, f.Value)
				continue
			}
			fmt.Printf("%s %s", f.Tag, indicators(f))
			for _, sf := range f.Subfields {
				fmt.Printf(" $%c %s", sf.Code, sf.Value)
			}
			fmt.Println()
		}
	}
	fmt.Println()
}

func indicators(f marc.Field) string {
	pretty := func(b byte) byte {
		if b == ' ' {
			return '\\'
		}
		return b
	}
	return string([]byte{pretty(f.Indicator1), pretty(f.Indicator2)})
}

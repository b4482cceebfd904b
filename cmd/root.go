package cmd

import (
	"github.com/joho/godotenv"
	"github.com/lehigh-university-libraries/marcmatch/internal/matchcmd"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "marcmatch",
		Short: "MARC21 record parsing and duplicate detection toolkit",
		Long: `Marcmatch parses binary MARC21 (ISO 2709) records, including legacy
MARC-8 encoded text, and decides whether an incoming record describes the
same physical book as an existing catalog edition using a weighted,
multi-factor fuzzy scorer.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	// Add subcommands
	cmd.AddCommand(matchcmd.NewInspectCmd())
	cmd.AddCommand(matchcmd.NewCompareCmd())
	cmd.AddCommand(matchcmd.NewDedupeCmd())

	return cmd
}

package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"equiptrack/internal/service"

	"github.com/spf13/cobra"
)

var importSkipSeen bool

var importCmd = &cobra.Command{
	Use:   "import <csv>...",
	Short: "Import location event logs",
	Long: `Import one or more CSV event logs (device, location, status, in, out).

Rows are normalized to room codes, paired into movements and deduplicated.
Malformed rows are reported and skipped.

Examples:
  equipctl import logs/2024-01.csv
  equipctl import --skip-seen logs/*.csv`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&importSkipSeen, "skip-seen", false, "skip files whose content was imported before")
}

func runImport(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	for _, path := range args {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		res, err := application.Imports.ImportCSV(cmd.Context(), filepath.Base(path), f, service.ImportOptions{SkipSeen: importSkipSeen})
		f.Close()
		if errors.Is(err, service.ErrAlreadyImported) {
			fmt.Fprintf(out, "%s: already imported, skipped\n", path)
			continue
		}
		if err != nil {
			return fmt.Errorf("import %s: %w", path, err)
		}

		fmt.Fprintf(out, "%s: %d rows, %d movements, %d duplicates, %d row errors\n",
			path, res.Rows, res.Movements, res.Duplicates, len(res.Errors))
		if len(res.UnknownLocations) > 0 {
			fmt.Fprintf(out, "  unknown locations: %v\n", res.UnknownLocations)
		}
		if verbose {
			for _, e := range res.Errors {
				fmt.Fprintf(out, "  line %d: %s\n", e.Line, e.Error)
			}
		}
	}
	return nil
}

package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	resetForce   bool
	exportOutput string
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Remove all devices, locations, movements, recommendations and imports",
	Long: `Remove every stored record.

Requires confirmation unless --force is used.`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

var exportUnknownCmd = &cobra.Command{
	Use:   "export-unknown",
	Short: "Export movements that touch an unknown location as CSV",
	Long: `Write every movement with an unresolved room as CSV, so the labels can be
added to the alias table or the location graph.

Examples:
  equipctl export-unknown > unknown.csv
  equipctl export-unknown -o unknown.csv`,
	Args: cobra.NoArgs,
	RunE: runExportUnknown,
}

func init() {
	resetCmd.Flags().BoolVarP(&resetForce, "force", "f", false, "skip confirmation")
	exportUnknownCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to file instead of stdout")
}

func runReset(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if !resetForce {
		fmt.Fprint(out, "This removes all stored data. Continue? [y/N] ")
		answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		answer = strings.TrimSpace(strings.ToLower(answer))
		if answer != "y" && answer != "yes" {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	if err := application.Recommendations.Reset(cmd.Context()); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	fmt.Fprintln(out, "All data removed.")
	return nil
}

func runExportUnknown(cmd *cobra.Command, args []string) error {
	var w io.Writer = cmd.OutOrStdout()
	if exportOutput != "" {
		f, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("create %s: %w", exportOutput, err)
		}
		defer f.Close()
		w = f
	}

	n, err := application.Inventory.ExportUnknown(cmd.Context(), w)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if exportOutput != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d movements to %s\n", n, exportOutput)
	}
	return nil
}

package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"equiptrack/internal/models"
	"equiptrack/internal/repository"

	"github.com/spf13/cobra"
)

var (
	listType   string
	listDevice string
	listLimit  int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List devices, locations, movements, recommendations or imports",
	Long: `List stored records.

Subcommands:
  devices          Devices and their current state (default)
  locations        Rooms referenced by movements
  movements        Movements, newest first
  recommendations  The current recommendation set
  imports          Import runs, newest first

Examples:
  equipctl list devices --type Ventilator
  equipctl list movements --device Ventilator-1 -n 20
  equipctl list recommendations --type placement`,
	RunE: runListDevices,
}

var listDevicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List devices",
	RunE:  runListDevices,
}

var listLocationsCmd = &cobra.Command{
	Use:   "locations",
	Short: "List locations",
	RunE:  runListLocations,
}

var listMovementsCmd = &cobra.Command{
	Use:   "movements",
	Short: "List movements",
	RunE:  runListMovements,
}

var listRecommendationsCmd = &cobra.Command{
	Use:   "recommendations",
	Short: "List recommendations",
	RunE:  runListRecommendations,
}

var listImportsCmd = &cobra.Command{
	Use:   "imports",
	Short: "List import runs",
	RunE:  runListImports,
}

func init() {
	listCmd.PersistentFlags().StringVarP(&listType, "type", "t", "", "filter by device or recommendation type")
	listCmd.PersistentFlags().StringVarP(&listDevice, "device", "d", "", "filter by device id")
	listCmd.PersistentFlags().IntVarP(&listLimit, "limit", "n", 50, "max results")

	listCmd.AddCommand(listDevicesCmd)
	listCmd.AddCommand(listLocationsCmd)
	listCmd.AddCommand(listMovementsCmd)
	listCmd.AddCommand(listRecommendationsCmd)
	listCmd.AddCommand(listImportsCmd)
}

func runListDevices(cmd *cobra.Command, args []string) error {
	devices, err := application.Inventory.Devices(cmd.Context(), repository.DeviceFilter{
		DeviceID:   listDevice,
		DeviceType: listType,
	})
	if err != nil {
		return fmt.Errorf("list devices: %w", err)
	}
	out := cmd.OutOrStdout()
	if len(devices) == 0 {
		fmt.Fprintln(out, "No devices found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DEVICE\tTYPE\tSTATUS\tLOCATION\tHOURS\tUSAGE%\tSERVICED")
	for _, d := range devices {
		serviced := "-"
		if d.LastMaintenance != nil {
			serviced = d.LastMaintenance.Format(time.DateOnly)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.1f\t%.1f\t%s\n",
			d.DeviceID, d.DeviceType, d.Status, d.CurrentLocation, d.TotalUsageHours, d.UsagePercentage, serviced)
	}
	return w.Flush()
}

func runListLocations(cmd *cobra.Command, args []string) error {
	locations, err := application.Inventory.Locations(cmd.Context(), repository.LocationFilter{})
	if err != nil {
		return fmt.Errorf("list locations: %w", err)
	}
	out := cmd.OutOrStdout()
	if len(locations) == 0 {
		fmt.Fprintln(out, "No locations found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ROOM\tNAME\tSTORAGE\tKNOWN")
	for _, loc := range locations {
		fmt.Fprintf(w, "%s\t%s\t%t\t%t\n", loc.ID, loc.DisplayName, loc.IsStorageType, loc.IsKnown)
	}
	return w.Flush()
}

func runListMovements(cmd *cobra.Command, args []string) error {
	limit := listLimit
	if limit < 0 {
		limit = 0
	}
	movements, err := application.Inventory.Movements(cmd.Context(), repository.MovementFilter{
		DeviceID: listDevice,
		Limit:    uint64(limit),
	})
	if err != nil {
		return fmt.Errorf("list movements: %w", err)
	}
	out := cmd.OutOrStdout()
	if len(movements) == 0 {
		fmt.Fprintln(out, "No movements found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DEVICE\tFROM\tTO\tIN\tOUT\tSTATUS\tFEET")
	for _, m := range movements {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%.1f\n",
			m.DeviceID, m.FromLocation, m.ToLocation,
			m.TimeIn.Format(time.DateTime), m.TimeOut.Format(time.DateTime), m.Status, m.DistanceTraveled)
	}
	return w.Flush()
}

func runListRecommendations(cmd *cobra.Command, args []string) error {
	recs, err := application.Recommendations.List(cmd.Context(), repository.RecommendationFilter{
		Type:     models.RecommendationType(listType),
		DeviceID: listDevice,
	})
	if err != nil {
		return fmt.Errorf("list recommendations: %w", err)
	}
	out := cmd.OutOrStdout()
	if len(recs) == 0 {
		fmt.Fprintln(out, "No recommendations found.")
		return nil
	}

	fmt.Fprintf(out, "Recommendations (%d):\n\n", len(recs))
	for i, rec := range recs {
		if listLimit > 0 && i == listLimit {
			break
		}
		printRecommendation(out, rec)
	}
	return nil
}

func runListImports(cmd *cobra.Command, args []string) error {
	limit := listLimit
	if limit < 0 {
		limit = 0
	}
	runs, err := application.Imports.ListImports(cmd.Context(), uint64(limit))
	if err != nil {
		return fmt.Errorf("list imports: %w", err)
	}
	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No imports found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FILE\tROWS\tMOVEMENTS\tDUPLICATES\tERRORS\tUNKNOWN\tIMPORTED")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%d\t%s\n",
			r.FileName, r.Rows, r.Movements, r.Duplicates, r.Errors, r.UnknownLocations, r.CreatedAt.Format(time.DateTime))
	}
	return w.Flush()
}

func printRecommendation(out io.Writer, rec *models.Recommendation) {
	fmt.Fprintf(out, "- [%s] %s\n", rec.Type, rec.Title)
	fmt.Fprintf(out, "  id: %s\n", rec.ID)
	if verbose {
		fmt.Fprintf(out, "  %s\n", rec.Description)
	}
	if rec.SavingsText != "" {
		fmt.Fprintf(out, "  %s\n", rec.SavingsText)
	}
}

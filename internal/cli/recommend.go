package cli

import (
	"fmt"

	"equiptrack/internal/models"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate recommendations from stored movements",
	Long: `Recompute placement, purchase and maintenance recommendations.
The previous set is replaced as a whole.`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

var applyCmd = &cobra.Command{
	Use:   "apply <id>",
	Short: "Apply one recommendation",
	Args:  cobra.ExactArgs(1),
	RunE:  runApply,
}

var applyAllCmd = &cobra.Command{
	Use:   "apply-all",
	Short: "Apply every stored recommendation",
	Args:  cobra.NoArgs,
	RunE:  runApplyAll,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	res, err := application.Recommendations.Generate(cmd.Context())
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	if res.Declined {
		fmt.Fprintf(out, "Nothing generated: %s\n", res.Reason)
		return nil
	}

	fmt.Fprintf(out, "Generated %d recommendations (placement %d, purchase %d, maintenance %d)\n\n",
		len(res.Recommendations),
		res.ByType[string(models.RecommendationPlacement)],
		res.ByType[string(models.RecommendationPurchase)],
		res.ByType[string(models.RecommendationMaintenance)])
	for _, rec := range res.Recommendations {
		printRecommendation(out, rec)
	}
	if len(res.SkippedDevices) > 0 {
		fmt.Fprintf(out, "\nSkipped devices: %v\n", res.SkippedDevices)
	}
	return nil
}

func runApply(cmd *cobra.Command, args []string) error {
	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid recommendation id %q", args[0])
	}

	res, err := application.Recommendations.Apply(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("apply: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Applied: %s\n", res.Recommendation.Title)
	if res.Device != nil {
		fmt.Fprintf(out, "  %s now at %s\n", res.Device.DeviceID, res.Device.CurrentLocation)
	}
	return nil
}

func runApplyAll(cmd *cobra.Command, args []string) error {
	res, err := application.Recommendations.ApplyAll(cmd.Context())
	if err != nil {
		return fmt.Errorf("apply all: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Applied %d, removed %d\n", res.ImplementedCount, res.NumRemoved)
	for _, id := range res.Failed {
		fmt.Fprintf(out, "  failed: %s\n", id)
	}
	return nil
}

// Package cli provides the equipctl command-line interface.
package cli

import (
	"context"
	"fmt"

	"equiptrack/internal/app"
	"equiptrack/pkg/config"
	"equiptrack/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	verbose     bool
	storeDriver string

	application *app.App

	// openApp builds the application for a command run.
	openApp = func(ctx context.Context) (*app.App, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		if storeDriver != "" {
			cfg.Store.Driver = storeDriver
			cfg.Database.Driver = storeDriver
			if err := config.Validate(cfg); err != nil {
				return nil, err
			}
		}
		level := "warn"
		if verbose {
			level = "debug"
		}
		log, err := logger.New(level, "console")
		if err != nil {
			return nil, err
		}
		return app.New(ctx, cfg, log.With(zap.String("component", "equipctl")))
	}
)

var rootCmd = &cobra.Command{
	Use:   "equipctl",
	Short: "Operate the equipment movement analytics store",
	Long: `equipctl imports location event logs, generates placement, purchase and
maintenance recommendations, and applies them against device state.

Configuration is read from the environment (and .env), the same as the server.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}
		var err error
		application, err = openApp(cmd.Context())
		if err != nil {
			return fmt.Errorf("initialize: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if application != nil {
			application.Close()
			application = nil
		}
	},
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&storeDriver, "store", "", "store driver override (postgres or memory)")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(applyAllCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(exportUnknownCmd)
}

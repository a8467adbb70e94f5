// Package main provides the entry point for the anthrokit CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/anthrokit/anthrokit/internal/log"
)

// NewRootCmd creates the root command for anthrokit.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "anthrokit",
		Short: "Body composition estimation from anthropometric measurements",
		Long: `anthrokit estimates body composition from surface anthropometry.

Given skinfolds, girths, breadths and basic measurements it fractionates
body mass into skin, adipose, muscle, bone and residual components using
the Phantom stratagem. When the full measurement set is unavailable it
degrades gracefully through skinfold-density formulas down to a BMI
estimate, always reporting which method ran and how much to trust it.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewAssessCmd())
	cmd.AddCommand(NewValidateCmd())
	cmd.AddCommand(NewTEMCmd())
	cmd.AddCommand(NewCompareCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates a structured logger based on verbosity setting.
// All log output passes through the privacy handler so patient
// identifiers never reach the terminal or log files.
func setupLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	handler := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	})
	return slog.New(log.NewPrivacyHandler(handler))
}

package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/anthrokit/anthrokit/internal/config"
	"github.com/anthrokit/anthrokit/internal/database"
	"github.com/anthrokit/anthrokit/internal/input"
	"github.com/anthrokit/anthrokit/internal/model"
	"github.com/anthrokit/anthrokit/internal/tem"
)

// NewTEMCmd creates the tem command.
func NewTEMCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tem [replicate-file...]",
		Short: "Rate measurement reliability from replicate readings",
		Long: `Tem computes the Dahlberg Technical Error of Measurement from repeated
readings at each site and rates the measurer's precision.

Each site needs 2-3 replicate readings. The rating thresholds depend on
the instrument: caliper skinfolds tolerate more relative error than
tapes and bone calipers.

The command also reports the value to record for each site (mean of two
readings, median of three) and flags site pairs that disagree enough to
need a third reading.

Examples:
  # Rate one replicate session
  anthrokit tem session.yaml

  # JSON output for quality tracking
  anthrokit tem --json session.yaml

  # Store the session for longitudinal precision tracking
  anthrokit tem --save session.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: runTEMCmd,
	}

	cmd.Flags().BoolP("json", "j", false,
		"Output reliability report in JSON format")
	cmd.Flags().BoolP("save", "s", false,
		"Save the reliability report to the history database")
	cmd.Flags().String("db-dir", "",
		"History database directory (default: XDG data directory)")

	return cmd
}

// runTEMCmd executes the tem command.
func runTEMCmd(cmd *cobra.Command, args []string) error {
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	db, err := openTEMDatabase(cmd)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	for _, path := range args {
		session, err := input.LoadReplicates(path)
		if err != nil {
			return err
		}

		results := make([]model.TEMResult, 0, len(session.Sites))
		for _, site := range session.Sites {
			result, err := tem.Analyze(site.Site, site.Category, site.Readings)
			if err != nil {
				return fmt.Errorf("%s: site %s: %w", path, site.Site, err)
			}
			results = append(results, result)
		}

		reliability := tem.Aggregate(results)

		if db != nil {
			id, err := db.SaveReliability(cmd.Context(), session.Measurer, reliability)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved reliability session %d\n", id)
		}

		if jsonOutput {
			if err := printTEMJSON(cmd, reliability); err != nil {
				return err
			}
			continue
		}
		printTEMReport(cmd, path, session, reliability)
	}

	return nil
}

// openTEMDatabase opens the history database when --save is set.
func openTEMDatabase(cmd *cobra.Command) (*database.HistoryDB, error) {
	save, err := cmd.Flags().GetBool("save")
	if err != nil {
		return nil, err
	}
	if !save {
		return nil, nil
	}

	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return nil, err
	}
	if dbDir == "" {
		dbDir = config.XDGDataDir()
	}

	db, err := database.Open(dbDir, database.DefaultOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// printTEMJSON writes the reliability report as indented JSON.
func printTEMJSON(cmd *cobra.Command, reliability model.ReliabilityReport) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(reliability)
}

// printTEMReport writes the human-readable per-site table.
func printTEMReport(cmd *cobra.Command, path string, session *input.ReplicateSession, reliability model.ReliabilityReport) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Reliability report: %s\n", path)
	if session.Measurer != "" {
		fmt.Fprintf(out, "Measurer: %s\n", session.Measurer)
	}
	fmt.Fprintln(out)

	fmt.Fprintf(out, "  %-16s %-9s %9s %9s %8s  %s\n",
		"Site", "Category", "Mean", "TEM", "TEM%", "Rating")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 64))

	for _, r := range reliability.Sites {
		fmt.Fprintf(out, "  %-16s %-9s %9.2f %9.3f %7.2f%%  %s\n",
			r.Site, r.Category, r.Mean, r.TEM, r.TEMPercent, r.Rating)
	}
	fmt.Fprintln(out)

	for _, r := range reliability.Sites {
		if len(r.Readings) != 2 {
			continue
		}
		if tem.NeedsThirdMeasurement(r.Category, r.Readings[0], r.Readings[1]) {
			fmt.Fprintf(out, "  note: %s readings disagree; take a third measurement\n", r.Site)
		}
	}

	for _, r := range reliability.Sites {
		if value, err := tem.FinalValue(r.Readings); err == nil {
			fmt.Fprintf(out, "  record %s = %.2f\n", r.Site, value)
		}
	}
	fmt.Fprintln(out)

	fmt.Fprintf(out, "Overall rating: %s\n\n", reliability.Overall)
}

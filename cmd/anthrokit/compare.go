package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cobra"

	"github.com/anthrokit/anthrokit/internal/config"
	"github.com/anthrokit/anthrokit/internal/database"
	"github.com/anthrokit/anthrokit/internal/model"
)

// Direction labels for longitudinal changes.
const (
	directionIncreased = "increased"
	directionDecreased = "decreased"
	directionUnchanged = "unchanged"
)

// NewCompareCmd creates the compare command.
// This command compares assessments with historical data stored in the database.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [patient-id]",
		Short: "Compare assessments with historical data",
		Long: `Compare displays differences between a patient's assessments over time.

This command retrieves historical assessments from the database and shows:
- Change in fat percentage, fat mass and lean mass
- Change in body weight
- Whether the calculation tier or confidence changed between visits

The comparison requires at least two saved assessments for the patient.
Use 'anthrokit assess --save' to store assessment results.

Examples:
  # Compare the latest two assessments for a patient
  anthrokit compare P-1042

  # List assessment history for a patient
  anthrokit compare --list P-1042

  # Compare with a specific historical assessment by ID
  anthrokit compare --with-id 5 P-1042

  # Output comparison in JSON format
  anthrokit compare --json P-1042

  # List all patients in the database
  anthrokit compare --list-patients`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCompareCmd,
	}

	// History listing flags
	cmd.Flags().BoolP("list", "l", false,
		"List assessment history for the specified patient")
	cmd.Flags().BoolP("list-patients", "L", false,
		"List all patients in the database")

	// Comparison target flags
	cmd.Flags().Int64P("with-id", "i", 0,
		"Compare with a specific assessment by ID (use --list to see available IDs)")

	// Output format flags
	cmd.Flags().BoolP("json", "j", false,
		"Output comparison result in JSON format")

	// Database location
	cmd.Flags().String("db-dir", "",
		"History database directory (default: XDG data directory)")

	return cmd
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, args []string) error {
	listPatients, err := cmd.Flags().GetBool("list-patients")
	if err != nil {
		return err
	}

	// Validate arguments before opening the database so an obviously bad
	// invocation never touches the file.
	var patientID string
	if !listPatients {
		if len(args) == 0 {
			return errors.New("patient ID is required (use --list-patients to see available patients)")
		}
		patientID = args[0]
	}

	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return err
	}
	if dbDir == "" {
		dbDir = config.XDGDataDir()
	}

	opts := database.DefaultOptions()
	opts.CreateIfNotExists = false
	db, err := database.Open(dbDir, opts)
	if err != nil {
		return fmt.Errorf("failed to open database (did you run 'anthrokit assess --save'?): %w", err)
	}
	defer db.Close()

	ctx := context.Background()

	if listPatients {
		return listKnownPatients(ctx, cmd, db)
	}

	listHistory, err := cmd.Flags().GetBool("list")
	if err != nil {
		return err
	}
	if listHistory {
		return listAssessmentHistory(ctx, cmd, db, patientID)
	}

	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	withID, err := cmd.Flags().GetInt64("with-id")
	if err != nil {
		return err
	}

	return runComparison(ctx, cmd, db, patientID, withID, jsonOutput)
}

// listKnownPatients lists all patients with assessment records.
func listKnownPatients(ctx context.Context, cmd *cobra.Command, db *database.HistoryDB) error {
	patients, err := db.ListPatients(ctx)
	if err != nil {
		return fmt.Errorf("failed to list patients: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(patients) == 0 {
		fmt.Fprintln(out, "No patients found in the database.")
		fmt.Fprintln(out, "\nUse 'anthrokit assess --save <file>' to store an assessment.")
		return nil
	}

	fmt.Fprintf(out, "Patients (%d):\n\n", len(patients))
	for _, id := range patients {
		fmt.Fprintf(out, "  • %s\n", id)
	}
	fmt.Fprintln(out, "\nUse 'anthrokit compare --list <patient-id>' to see assessment history.")

	return nil
}

// listAssessmentHistory lists all assessment records for a patient.
func listAssessmentHistory(ctx context.Context, cmd *cobra.Command, db *database.HistoryDB, patientID string) error {
	history, err := db.GetHistoryMetadata(ctx, patientID)
	if err != nil {
		return fmt.Errorf("failed to get assessment history: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(history) == 0 {
		fmt.Fprintf(out, "No assessment history found for %s\n", patientID)
		fmt.Fprintln(out, "\nUse 'anthrokit assess --save' to store an assessment.")
		return nil
	}

	fmt.Fprintf(out, "Assessment history for %s (%d assessments):\n\n", patientID, len(history))
	fmt.Fprintf(out, "  %-6s  %-17s  %-15s  %-5s  %-7s  %-8s  %s\n",
		"ID", "Date", "Method", "Conf", "Fat%", "Weight", "Findings")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 76))

	for _, meta := range history {
		fmt.Fprintf(out, "  %-6d  %-17s  %-15s  %-5d  %6.1f%%  %6.1fkg  %s\n",
			meta.ID,
			meta.AssessedAt.Format("2006-01-02 15:04"),
			meta.Tier,
			meta.Confidence,
			meta.FatPercent,
			meta.WeightKg,
			formatFindingSummary(meta.FindingSummary),
		)
	}

	fmt.Fprintln(out, "\nUse 'anthrokit compare <patient-id>' to compare the latest two assessments.")
	fmt.Fprintln(out, "Use 'anthrokit compare --with-id <id> <patient-id>' to compare with a specific assessment.")

	return nil
}

// formatFindingSummary formats the severity counts into a compact string.
func formatFindingSummary(summary map[string]int) string {
	if summary == nil {
		return "N/A"
	}

	var parts []string
	if v := summary["critical"]; v > 0 {
		parts = append(parts, fmt.Sprintf("C:%d", v))
	}
	if v := summary["error"]; v > 0 {
		parts = append(parts, fmt.Sprintf("E:%d", v))
	}
	if v := summary["warning"]; v > 0 {
		parts = append(parts, fmt.Sprintf("W:%d", v))
	}
	if v := summary["info"]; v > 0 {
		parts = append(parts, fmt.Sprintf("I:%d", v))
	}

	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, " ")
}

// Comparison summarizes the change between two assessments.
type Comparison struct {
	// PatientID is the compared subject.
	PatientID string `json:"patient_id"`

	// Current is the newer assessment's headline numbers.
	Current ComparisonSide `json:"current"`

	// Previous is the older assessment's headline numbers.
	Previous ComparisonSide `json:"previous"`

	// FatPercentDelta is current minus previous fat percentage.
	FatPercentDelta float64 `json:"fat_percent_delta"`

	// FatMassDeltaKg is current minus previous fat mass.
	FatMassDeltaKg float64 `json:"fat_mass_delta_kg"`

	// LeanMassDeltaKg is current minus previous lean mass.
	LeanMassDeltaKg float64 `json:"lean_mass_delta_kg"`

	// WeightDeltaKg is current minus previous body weight.
	WeightDeltaKg float64 `json:"weight_delta_kg"`

	// TierChanged reports whether a different calculation method ran.
	// Deltas across different tiers mix methodological error with real
	// change and should be read cautiously.
	TierChanged bool `json:"tier_changed"`
}

// ComparisonSide is one assessment's headline numbers.
type ComparisonSide struct {
	Date       string  `json:"date"`
	Tier       string  `json:"tier"`
	Confidence int     `json:"confidence"`
	FatPercent float64 `json:"fat_percent"`
	FatMassKg  float64 `json:"fat_mass_kg"`
	LeanMassKg float64 `json:"lean_mass_kg"`
	WeightKg   float64 `json:"weight_kg"`
}

// runComparison compares the latest assessment against an earlier one.
func runComparison(ctx context.Context, cmd *cobra.Command, db *database.HistoryDB, patientID string, withID int64, jsonOutput bool) error {
	history, err := db.GetAssessmentHistory(ctx, patientID, 0)
	if err != nil {
		return fmt.Errorf("failed to get assessment history: %w", err)
	}
	if len(history) == 0 {
		return fmt.Errorf("no assessment history found for %s", patientID)
	}

	current := history[0]

	var previous *model.Assessment
	if withID > 0 {
		previous, err = db.GetAssessmentByID(ctx, withID)
		if err != nil {
			return err
		}
		if previous == nil {
			return fmt.Errorf("no assessment with ID %d", withID)
		}
	} else {
		if len(history) < 2 {
			return fmt.Errorf("at least 2 assessments are required for comparison (found %d)", len(history))
		}
		previous = history[1]
	}

	comparison := buildComparison(patientID, current, previous)

	if jsonOutput {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(comparison)
	}

	printComparison(cmd, comparison)
	return nil
}

// buildComparison computes the deltas between two assessments.
func buildComparison(patientID string, current, previous *model.Assessment) Comparison {
	c := Comparison{
		PatientID: patientID,
		Current:   comparisonSide(current),
		Previous:  comparisonSide(previous),
	}
	c.FatPercentDelta = c.Current.FatPercent - c.Previous.FatPercent
	c.FatMassDeltaKg = c.Current.FatMassKg - c.Previous.FatMassKg
	c.LeanMassDeltaKg = c.Current.LeanMassKg - c.Previous.LeanMassKg
	c.WeightDeltaKg = c.Current.WeightKg - c.Previous.WeightKg
	c.TierChanged = c.Current.Tier != c.Previous.Tier
	return c
}

// comparisonSide extracts one assessment's headline numbers.
func comparisonSide(a *model.Assessment) ComparisonSide {
	side := ComparisonSide{
		Date:     a.Date.Format("2006-01-02 15:04"),
		Tier:     model.TierNone.String(),
		WeightKg: a.Input.WeightKg,
	}
	if r := a.Result; r != nil {
		side.Tier = r.Tier.String()
		side.Confidence = r.Confidence
		side.FatPercent = r.FatPercent
		side.FatMassKg = r.FatMassKg
		side.LeanMassKg = r.LeanMassKg
	}
	return side
}

// printComparison writes the human-readable comparison.
func printComparison(cmd *cobra.Command, c Comparison) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Comparison for %s\n\n", c.PatientID)
	fmt.Fprintf(out, "  %-12s  %-17s  %-17s\n", "", "Previous", "Current")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 50))
	fmt.Fprintf(out, "  %-12s  %-17s  %-17s\n", "Date", c.Previous.Date, c.Current.Date)
	fmt.Fprintf(out, "  %-12s  %-17s  %-17s\n", "Method", c.Previous.Tier, c.Current.Tier)
	fmt.Fprintf(out, "  %-12s  %-17d  %-17d\n", "Confidence", c.Previous.Confidence, c.Current.Confidence)
	fmt.Fprintf(out, "  %-12s  %-17.1f  %-17.1f\n", "Fat %", c.Previous.FatPercent, c.Current.FatPercent)
	fmt.Fprintf(out, "  %-12s  %-17.1f  %-17.1f\n", "Fat kg", c.Previous.FatMassKg, c.Current.FatMassKg)
	fmt.Fprintf(out, "  %-12s  %-17.1f  %-17.1f\n", "Lean kg", c.Previous.LeanMassKg, c.Current.LeanMassKg)
	fmt.Fprintf(out, "  %-12s  %-17.1f  %-17.1f\n", "Weight kg", c.Previous.WeightKg, c.Current.WeightKg)
	fmt.Fprintln(out)

	fmt.Fprintf(out, "  Fat %%  %s by %.1f points\n", direction(c.FatPercentDelta), math.Abs(c.FatPercentDelta))
	fmt.Fprintf(out, "  Fat    %s by %.1f kg\n", direction(c.FatMassDeltaKg), math.Abs(c.FatMassDeltaKg))
	fmt.Fprintf(out, "  Lean   %s by %.1f kg\n", direction(c.LeanMassDeltaKg), math.Abs(c.LeanMassDeltaKg))
	fmt.Fprintf(out, "  Weight %s by %.1f kg\n", direction(c.WeightDeltaKg), math.Abs(c.WeightDeltaKg))

	if c.TierChanged {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Note: the two assessments used different calculation methods.")
		fmt.Fprintln(out, "  Part of the change may reflect the method switch rather than the body.")
	}
	fmt.Fprintln(out)
}

// direction labels the sign of a delta.
func direction(delta float64) string {
	switch {
	case delta > 0.05:
		return directionIncreased
	case delta < -0.05:
		return directionDecreased
	default:
		return directionUnchanged
	}
}

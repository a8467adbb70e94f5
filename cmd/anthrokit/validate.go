package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/anthrokit/anthrokit/internal/input"
	"github.com/anthrokit/anthrokit/internal/model"
	"github.com/anthrokit/anthrokit/internal/validate"
)

// NewValidateCmd creates the validate command.
func NewValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [measurement-file...]",
		Short: "Check measurement files without calculating",
		Long: `Validate checks measurement records against physiological bounds and
anatomical consistency without running any calculation.

Useful at the measurement station: the anthropometrist can confirm the
record is clean while the subject is still present, rather than
discovering a transposed digit after they have left.

Exit status is non-zero when any record has blocking errors.

Examples:
  # Validate a single record
  anthrokit validate subject.yaml

  # Validate a whole session
  anthrokit validate clinic/*.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: runValidateCmd,
	}

	return cmd
}

// runValidateCmd executes the validate command.
func runValidateCmd(cmd *cobra.Command, args []string) error {
	invalid := 0

	for _, path := range args {
		m, err := input.LoadMeasurement(path)
		if err != nil {
			return err
		}

		outcome := validate.Check(m)
		printOutcome(cmd, path, outcome)
		if !outcome.Valid() {
			invalid++
		}
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d record(s) failed validation", invalid, len(args))
	}
	return nil
}

// printOutcome prints one record's validation result.
func printOutcome(cmd *cobra.Command, path string, outcome model.ValidationOutcome) {
	out := cmd.OutOrStdout()

	status := "OK"
	if !outcome.Valid() {
		status = "INVALID"
	} else if len(outcome.Warnings) > 0 {
		status = "OK (with warnings)"
	}
	fmt.Fprintf(out, "%s: %s\n", path, status)

	for _, f := range outcome.Errors {
		fmt.Fprintf(out, "  error: %s\n", formatFinding(f))
	}
	for _, f := range outcome.Warnings {
		fmt.Fprintf(out, "  warning: %s\n", formatFinding(f))
	}
	if len(outcome.All()) > 0 {
		fmt.Fprintln(out)
	}
}

// formatFinding renders a finding as one line with its bound context.
func formatFinding(f model.Finding) string {
	var sb strings.Builder
	sb.WriteString(f.Message)
	if f.Field != "" && f.Bound != "" {
		fmt.Fprintf(&sb, " [%s=%g, expected %s]", f.Field, f.Value, f.Bound)
	}
	if f.Recommendation != "" {
		sb.WriteString(" - ")
		sb.WriteString(f.Recommendation)
	}
	return sb.String()
}

package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/anthrokit/anthrokit/internal/model"
)

// SimpleWriter outputs human-readable text reports for terminal display.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors because it works in all terminals and pipes cleanly to
// files; color belongs to the logging layer.
type SimpleWriter struct {
	baseWriter

	// verbose enables recommendations and downgrade detail.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the assessment in human-readable format.
func (w *SimpleWriter) Write(assessment *model.Assessment) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, assessment)
	w.writeResult(&sb, assessment)
	w.writeFindings(&sb, assessment)
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report header with subject information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, a *model.Assessment) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                  BODY COMPOSITION ASSESSMENT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	if a.PatientID != "" {
		fmt.Fprintf(sb, "Patient:        %s\n", a.PatientID)
	}
	fmt.Fprintf(sb, "Date:           %s\n", a.Date.Format("2006-01-02 15:04"))
	fmt.Fprintf(sb, "Subject:        %s, %.0f y, %.1f kg, %.1f cm (BMI %.1f)\n",
		a.Input.Sex, a.Input.AgeYears, a.Input.WeightKg, a.Input.HeightCm, a.Input.BMI())

	switch {
	case a.ErrorMessage != "":
		fmt.Fprintf(sb, "Status:         ERROR - %s\n", a.ErrorMessage)
	case !a.Valid():
		sb.WriteString("Status:         INVALID (see findings)\n")
	default:
		sb.WriteString("Status:         Valid\n")
	}
	sb.WriteString("\n")
}

// writeResult writes the tier, confidence and composition numbers.
func (w *SimpleWriter) writeResult(sb *strings.Builder, a *model.Assessment) {
	result := a.Result
	if result == nil {
		sb.WriteString("No calculation was performed.\n\n")
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\nRESULT\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	fmt.Fprintf(sb, "  Method:       %s\n", result.Tier.Label())
	fmt.Fprintf(sb, "  Confidence:   %d/100\n", result.Confidence)
	if result.Downgraded {
		fmt.Fprintf(sb, "  Downgraded:   yes (%d tier(s) skipped)\n", len(result.DowngradeReasons))
		if w.verbose {
			for _, reason := range result.DowngradeReasons {
				fmt.Fprintf(sb, "                - %s\n", reason)
			}
		}
	}
	sb.WriteString("\n")

	if result.Tier != model.TierNone {
		fmt.Fprintf(sb, "  Fat:          %5.1f %%   (%.1f kg)\n", result.FatPercent, result.FatMassKg)
		fmt.Fprintf(sb, "  Lean:         %5.1f %%   (%.1f kg)\n", 100-result.FatPercent, result.LeanMassKg)
		sb.WriteString("\n")
	}

	if frac := result.Fractionation; frac != nil && frac.Valid {
		sb.WriteString("  Five-component fractionation:\n")
		for _, c := range model.Components {
			mass := frac.Mass(c)
			fmt.Fprintf(sb, "    %-9s %6.2f kg  (%4.1f %%)\n", string(c)+":", mass.Kg, mass.Percent)
		}
		fmt.Fprintf(sb, "    %-9s %6.2f kg\n", "total:", frac.TotalKg())
		if frac.ResidualEstimated {
			sb.WriteString("    note: residual mass estimated from other components (weaker)\n")
		}
		fmt.Fprintf(sb, "    model deviation before balancing: %.1f %%\n", frac.PreScaleDeviationPercent)
		if frac.Cormic != nil {
			fmt.Fprintf(sb, "    cormic index: %.1f (%s)\n", frac.Cormic.Index, frac.Cormic.Class)
		}
		sb.WriteString("\n")
	}

	if comp := result.Composition; comp != nil && comp.Valid {
		fmt.Fprintf(sb, "  Body density (%s formula): %.4f g/cm³\n\n", comp.Variant, comp.Density)
	}

	if d := a.Density; d != nil {
		switch {
		case d.Valid:
			fmt.Fprintf(sb, "  Preferred variant (%s): density %.4f g/cm³, fat %.1f %%\n\n",
				d.Variant, d.Density, d.FatPercent)
		case w.verbose && len(d.MissingSites) > 0:
			fmt.Fprintf(sb, "  Preferred variant (%s): not computable, missing %s\n\n",
				d.Variant, strings.Join(d.MissingSites, ", "))
		}
	}

	if a.Audit != nil && a.Audit.MassBalancePercent != 0 {
		fmt.Fprintf(sb, "  Mass balance: %.1f %% of measured weight\n\n", a.Audit.MassBalancePercent)
	}
}

// writeFindings writes all findings grouped by severity, critical first.
func (w *SimpleWriter) writeFindings(sb *strings.Builder, a *model.Assessment) {
	findings := a.AllFindings()
	if len(findings) == 0 {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\nFINDINGS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	severities := []model.Severity{
		model.SeverityCritical,
		model.SeverityError,
		model.SeverityWarning,
		model.SeverityInfo,
	}

	for _, severity := range severities {
		var group []model.Finding
		for _, f := range findings {
			if f.Severity == severity {
				group = append(group, f)
			}
		}
		if len(group) == 0 {
			continue
		}

		fmt.Fprintf(sb, "[%s] %s\n", severityIndicator(severity), severity)
		for _, f := range group {
			fmt.Fprintf(sb, "  * %s\n", f.Message)
			if f.Field != "" && f.Bound != "" {
				fmt.Fprintf(sb, "    %s: %g (expected %s)\n", fieldLabel(f.Field), f.Value, f.Bound)
			}
			if w.verbose && f.Recommendation != "" {
				fmt.Fprintf(sb, "    Recommendation: %s\n", f.Recommendation)
			}
		}
		sb.WriteString("\n")
	}
}

// severityIndicator returns a visual indicator for the severity level.
func severityIndicator(severity model.Severity) string {
	switch severity {
	case model.SeverityCritical:
		return "!!!"
	case model.SeverityError:
		return "!!"
	case model.SeverityWarning:
		return "!"
	case model.SeverityInfo:
		return "i"
	default:
		return "?"
	}
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("Report generated by anthrokit\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}

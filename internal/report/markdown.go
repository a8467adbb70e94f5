package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/anthrokit/anthrokit/internal/model"
)

// MarkdownWriter outputs assessments in Markdown format.
// This format is designed for documentation and sharing with colleagues.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the assessment in Markdown format.
func (w *MarkdownWriter) Write(assessment *model.Assessment) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, assessment)
	w.writeResult(md, assessment)
	w.writeFractionation(md, assessment)
	w.writeFindings(md, assessment)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with subject information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, a *model.Assessment) {
	md.H1("Body Composition Assessment")
	md.PlainText("")

	rows := [][]string{
		{"Date", a.Date.Format("2006-01-02 15:04")},
		{"Sex", string(a.Input.Sex)},
		{"Age", fmt.Sprintf("%.0f y", a.Input.AgeYears)},
		{"Weight", fmt.Sprintf("%.1f kg", a.Input.WeightKg)},
		{"Height", fmt.Sprintf("%.1f cm", a.Input.HeightCm)},
		{"BMI", fmt.Sprintf("%.1f", a.Input.BMI())},
		{"Status", w.statusText(a)},
	}
	if a.PatientID != "" {
		rows = append([][]string{{"Patient", "`" + a.PatientID + "`"}}, rows...)
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

// statusText returns the status cell based on assessment state.
func (w *MarkdownWriter) statusText(a *model.Assessment) string {
	if a.ErrorMessage != "" {
		return "❌ Error - " + a.ErrorMessage
	}
	if !a.Valid() {
		return "⚠️ Invalid (see findings)"
	}
	return "✅ Valid"
}

// writeResult writes the calculation tier and composition numbers.
func (w *MarkdownWriter) writeResult(md *markdown.Markdown, a *model.Assessment) {
	md.H2("Result")
	md.PlainText("")

	result := a.Result
	if result == nil {
		md.PlainText("No calculation was performed.")
		md.PlainText("")
		return
	}

	rows := [][]string{
		{"Method", result.Tier.Label()},
		{"Confidence", strconv.Itoa(result.Confidence) + "/100"},
	}
	if result.Tier != model.TierNone {
		rows = append(rows,
			[]string{"Fat", fmt.Sprintf("%.1f %% (%.1f kg)", result.FatPercent, result.FatMassKg)},
			[]string{"Lean", fmt.Sprintf("%.1f %% (%.1f kg)", 100-result.FatPercent, result.LeanMassKg)},
		)
	}
	if comp := result.Composition; comp != nil && comp.Valid {
		rows = append(rows, []string{"Body density", fmt.Sprintf("%.4f g/cm³ (%s formula)", comp.Density, comp.Variant)})
	}
	if d := a.Density; d != nil && d.Valid {
		rows = append(rows, []string{"Preferred variant", fmt.Sprintf("%.4f g/cm³, %.1f %% fat (%s formula)", d.Density, d.FatPercent, d.Variant)})
	}
	if a.Audit != nil && a.Audit.MassBalancePercent != 0 {
		rows = append(rows, []string{"Mass balance", fmt.Sprintf("%.1f %% of measured weight", a.Audit.MassBalancePercent)})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")

	if result.Downgraded {
		md.Importantf(
			"The preferred method could not run; results come from a lower tier (%d downgrade(s)).",
			len(result.DowngradeReasons),
		)
		md.PlainText("")
		md.BulletList(result.DowngradeReasons...)
		md.PlainText("")
	}
}

// writeFractionation writes the five-component mass table when present.
func (w *MarkdownWriter) writeFractionation(md *markdown.Markdown, a *model.Assessment) {
	if a.Result == nil {
		return
	}
	frac := a.Result.Fractionation
	if frac == nil || !frac.Valid {
		return
	}

	md.H2("Five-Component Fractionation")
	md.PlainText("")

	rows := make([][]string, 0, len(model.Components)+1)
	for _, c := range model.Components {
		mass := frac.Mass(c)
		rows = append(rows, []string{
			titleCaser.String(string(c)),
			fmt.Sprintf("%.2f", mass.Kg),
			fmt.Sprintf("%.1f", mass.Percent),
		})
	}
	rows = append(rows, []string{"**Total**", fmt.Sprintf("**%.2f**", frac.TotalKg()), ""})

	md.Table(markdown.TableSet{
		Header: []string{"Component", "Mass (kg)", "% of weight"},
		Rows:   rows,
	})
	md.PlainText("")

	if frac.ResidualEstimated {
		md.Note("Residual mass was estimated from the other components because trunk measurements were missing. Treat the residual figure as weaker than the rest.")
		md.PlainText("")
	}

	md.PlainTextf("Model deviation before mass balancing: %.1f %%", frac.PreScaleDeviationPercent)
	md.PlainText("")
	if frac.Cormic != nil {
		md.PlainTextf("Cormic index: %.1f (%s)", frac.Cormic.Index, frac.Cormic.Class)
		md.PlainText("")
	}
}

// writeFindings writes the severity summary, pie chart and finding lists.
func (w *MarkdownWriter) writeFindings(md *markdown.Markdown, a *model.Assessment) {
	md.H2("Findings")
	md.PlainText("")

	findings := a.AllFindings()
	if len(findings) == 0 {
		md.Tip("No findings. All measurements and results passed every check.")
		md.PlainText("")
		return
	}

	counts := map[model.Severity]int{}
	for _, f := range findings {
		counts[f.Severity]++
	}

	md.Table(markdown.TableSet{
		Header: []string{"Severity", "Count"},
		Rows: [][]string{
			{"🔴 Critical", strconv.Itoa(counts[model.SeverityCritical])},
			{"🟠 Error", strconv.Itoa(counts[model.SeverityError])},
			{"🟡 Warning", strconv.Itoa(counts[model.SeverityWarning])},
			{"⚪ Info", strconv.Itoa(counts[model.SeverityInfo])},
			{"**Total**", "**" + strconv.Itoa(len(findings)) + "**"},
		},
	})
	md.PlainText("")

	w.writePieChart(md, counts)
	w.writeAlert(md, counts)

	severities := []model.Severity{
		model.SeverityCritical,
		model.SeverityError,
		model.SeverityWarning,
		model.SeverityInfo,
	}
	for _, severity := range severities {
		if counts[severity] == 0 {
			continue
		}
		md.H3(titleCaser.String(severity.String()))
		md.PlainText("")
		for _, f := range findings {
			if f.Severity != severity {
				continue
			}
			line := f.Message
			if f.Field != "" && f.Bound != "" {
				line += fmt.Sprintf(" (%s: %g, expected %s)", fieldLabel(f.Field), f.Value, f.Bound)
			}
			if f.Recommendation != "" {
				line += " — " + f.Recommendation
			}
			md.BulletList(line)
		}
		md.PlainText("")
	}
}

// writePieChart writes a mermaid pie chart of the severity distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, counts map[model.Severity]int) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Finding Severity Distribution"),
		piechart.WithShowData(true),
	)

	order := []model.Severity{
		model.SeverityCritical,
		model.SeverityError,
		model.SeverityWarning,
		model.SeverityInfo,
	}
	for _, severity := range order {
		if counts[severity] > 0 {
			chart.LabelAndIntValue(titleCaser.String(severity.String()), uint64(counts[severity]))
		}
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an appropriate alert based on severity counts.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, counts map[model.Severity]int) {
	switch {
	case counts[model.SeverityCritical] > 0:
		md.Cautionf(
			"Result failed sanity checks: %d critical finding(s). Do not use clinically without re-measurement.",
			counts[model.SeverityCritical],
		)
	case counts[model.SeverityError] > 0:
		md.Warningf(
			"%d blocking finding(s) detected. Review the flagged measurements before trusting this result.",
			counts[model.SeverityError],
		)
	case counts[model.SeverityWarning] > 0:
		md.Importantf(
			"%d warning(s) raised. The result is usable but the flagged values deserve a second look.",
			counts[model.SeverityWarning],
		)
	default:
		md.Note("Only informational findings were raised.")
	}
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("Report generated by anthrokit")
}

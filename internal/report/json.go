package report

import (
	"encoding/json"
	"io"

	"github.com/anthrokit/anthrokit/internal/model"
)

// JSONWriter outputs assessments in JSON format.
// This format is designed for tool integration and programmatic processing.
//
// Design decision: We use standard encoding/json rather than a third-party
// JSON library because:
// 1. It's part of the standard library (no extra dependencies)
// 2. It's sufficient for our needs
// 3. It provides consistent behavior across Go versions
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	// When false, output is compact (no extra whitespace).
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with default indentation.
// This is a convenience wrapper for WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = ""
		w.indentString = "  "
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// JSONReport wraps an assessment with output-level metadata.
//
// Design decision: We wrap the assessment rather than adding fields to
// model.Assessment because these fields only matter at serialization
// time and would pollute the core data structure.
type JSONReport struct {
	// Version is the anthrokit version that generated this report.
	Version string `json:"version,omitempty"`

	// Assessment is the full assessment record.
	Assessment *model.Assessment `json:"assessment"`

	// Summary repeats the headline numbers for quick access.
	Summary JSONSummary `json:"summary"`
}

// JSONSummary is the headline view of an assessment for consumers that
// do not want to walk the full record.
type JSONSummary struct {
	PatientID  string  `json:"patient_id,omitempty"`
	Valid      bool    `json:"valid"`
	Tier       string  `json:"tier"`
	Confidence int     `json:"confidence"`
	FatPercent float64 `json:"fat_percent,omitempty"`
	FatMassKg  float64 `json:"fat_mass_kg,omitempty"`
	LeanMassKg float64 `json:"lean_mass_kg,omitempty"`
	Downgraded bool    `json:"downgraded,omitempty"`
	Findings   int     `json:"findings"`
}

// Version is stamped by the command layer before reports are written.
// It stays empty in library use.
var Version string

// Write outputs the assessment wrapped in a JSONReport.
func (w *JSONWriter) Write(assessment *model.Assessment) (int, error) {
	return w.writeJSON(&JSONReport{
		Version:    Version,
		Assessment: assessment,
		Summary:    newSummary(assessment),
	})
}

// newSummary extracts the headline numbers from an assessment.
func newSummary(a *model.Assessment) JSONSummary {
	s := JSONSummary{
		PatientID: a.PatientID,
		Valid:     a.Valid(),
		Tier:      model.TierNone.String(),
		Findings:  len(a.AllFindings()),
	}
	if r := a.Result; r != nil {
		s.Tier = r.Tier.String()
		s.Confidence = r.Confidence
		s.FatPercent = r.FatPercent
		s.FatMassKg = r.FatMassKg
		s.LeanMassKg = r.LeanMassKg
		s.Downgraded = r.Downgraded
	}
	return s
}

// writeJSON marshals the given value and writes it to the output.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return 0, err
	}

	// Trailing newline for better terminal output.
	data = append(data, '\n')

	return w.output.Write(data)
}

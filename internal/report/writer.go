package report

import (
	"io"

	"github.com/anthrokit/anthrokit/internal/model"
)

// Writer defines the interface for assessment report output.
// Implementations write results in various formats.
type Writer interface {
	// Write outputs the assessment to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(assessment *model.Assessment) (int, error)
}

// MultiWriter writes to multiple Writers simultaneously. Useful for
// outputting to both terminal and file.
//
// Design decision: We implement this as a separate type rather than
// using io.MultiWriter because our Writer interface is different from
// io.Writer - we write assessments, not raw bytes.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the assessment to all configured Writers. Returns the
// total bytes written across all writers; stops on first error.
func (m *MultiWriter) Write(assessment *model.Assessment) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(assessment)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// Package log provides a privacy-aware slog handler for clinical use.
// Patient-identifying attributes (names, identifiers, contact details)
// are redacted before records reach the underlying handler, so log
// output can be shared for debugging without leaking who was measured.
package log

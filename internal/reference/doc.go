// Package reference holds the immutable scientific constant tables the
// calculators depend on: the Phantom reference population means and
// standard deviations, physiological plausibility bounds per measurement
// field, skinfold-to-density formula coefficients, and the fixed
// thresholds used by the TEM analyzer and the sanity auditor.
//
// Everything in this package is pure data initialized at process start
// and never mutated. Calculators read these tables; nothing writes them.
//
// Design decision: Constants live in one package rather than next to each
// calculator so that a reviewer can audit every hardcoded clinical value
// in one place, and so the validator and auditor share the same bounds.
package reference

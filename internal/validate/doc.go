// Package validate checks raw measurement records before any calculation
// is attempted. It applies per-field physiological bounds (hard errors
// plus a softer unusual band) and cross-field anatomical consistency
// rules, producing a model.ValidationOutcome that separates blocking
// errors from warnings.
//
// All functions are pure: they never mutate the input record and have
// no side effects.
package validate

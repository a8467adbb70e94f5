package config

import "errors"

// Configuration validation errors.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoInput is returned when no measurement file is specified.
	ErrNoInput = errors.New("no input specified: provide at least one measurement file")

	// ErrInvalidVariant is returned when the configured density formula
	// variant is not one of the supported names.
	ErrInvalidVariant = errors.New("invalid density variant: use general, control, fitness, athlete or rapid")

	// ErrInvalidConcurrency is returned when the batch concurrency is
	// not positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrConflictingReportFormats is returned when both --json and
	// --markdown are specified. Only one output format can be used.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidTier is returned when the forced tier is not one of the
	// known tier identifiers.
	ErrInvalidTier = errors.New("invalid tier: use five_component, four_skinfold, rapid_two_skinfold or bmi_only")
)

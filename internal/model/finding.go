package model

// Severity represents how strongly a finding affects trust in a result.
//
// Design decision: We use iota-based constants rather than string constants
// for efficiency in comparisons and sorting. The String() method provides
// human-readable output when needed.
type Severity int

const (
	// SeverityInfo indicates informational findings with no impact on
	// validity. Examples: Cormic index classification notes, milder
	// skinfold-sum precision notes.
	SeverityInfo Severity = iota

	// SeverityWarning indicates findings that reduce confidence but keep
	// the result usable. Examples: unusual-band values, obesity precision
	// warnings, model deviation above 5%.
	SeverityWarning

	// SeverityError indicates hard findings that invalidate the affected
	// calculation. Examples: values outside hard physiological bounds,
	// anatomical contradictions, skinfold sum above 300 mm.
	SeverityError

	// SeverityCritical indicates findings that are incompatible with a
	// correct measurement or with life. Examples: mass balance outside
	// [95,105]%, non-positive component mass, fat percentage below 1%.
	SeverityCritical
)

// String returns a human-readable representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	case SeverityCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// Blocking reports whether the severity invalidates the calculation it
// is attached to. Warnings and notes never block; errors always do.
func (s Severity) Blocking() bool {
	return s >= SeverityError
}

// FindingKind classifies what a finding is about. The kind is machine
// readable so callers (UI forms, report renderers) can branch on it
// without parsing messages.
type FindingKind string

const (
	// KindBelowMin marks a value below its hard physiological minimum.
	KindBelowMin FindingKind = "below_min"

	// KindAboveMax marks a value above its hard physiological maximum.
	KindAboveMax FindingKind = "above_max"

	// KindAnatomicallyImpossible marks a cross-field contradiction, such
	// as a femur breadth smaller than the humerus breadth.
	KindAnatomicallyImpossible FindingKind = "anatomically_impossible"

	// KindUnusual marks a value inside the hard bounds but outside the
	// expected clinical band. The calculation proceeds.
	KindUnusual FindingKind = "unusual"

	// KindMissingData marks an absent or non-positive field required by
	// the attempted formula or tier.
	KindMissingData FindingKind = "missing_data"

	// KindImplausibleResult marks a post-hoc audit finding about the
	// computed result rather than the inputs.
	KindImplausibleResult FindingKind = "implausible_result"

	// KindModelDeviation marks an informational model-fit finding, such
	// as pre-scaling Phantom deviation above 5%.
	KindModelDeviation FindingKind = "model_deviation"

	// KindDowngrade marks a precision-tier downgrade applied by the
	// graceful degradation router.
	KindDowngrade FindingKind = "downgrade"
)

// Finding is a single structured validation, calculation, or audit finding.
// All errors and warnings travel through return values as findings; the
// engine never panics for expected data problems.
type Finding struct {
	// Code identifies the finding type, e.g. "femur_below_humerus".
	Code string `json:"code"`

	// Kind is the machine-readable classification.
	Kind FindingKind `json:"kind"`

	// Severity is the impact level of the finding.
	Severity Severity `json:"severity"`

	// Field names the offending input field, when one exists.
	Field string `json:"field,omitempty"`

	// Value is the offending value, when one exists.
	Value float64 `json:"value,omitempty"`

	// Bound describes the violated bound, e.g. "min 0.2 mm".
	Bound string `json:"bound,omitempty"`

	// Message is a human-readable description of the finding.
	Message string `json:"message"`

	// Recommendation suggests what the measurer or clinician should do.
	Recommendation string `json:"recommendation,omitempty"`
}

// ValidationOutcome separates blocking errors from non-blocking warnings.
// Any non-empty error list makes the associated calculation invalid.
type ValidationOutcome struct {
	// Errors are blocking findings (SeverityError or above).
	Errors []Finding `json:"errors,omitempty"`

	// Warnings are non-blocking findings; calculation proceeds.
	Warnings []Finding `json:"warnings,omitempty"`
}

// Valid reports whether the validated record may be used for calculation.
func (v *ValidationOutcome) Valid() bool {
	return len(v.Errors) == 0
}

// Add routes a finding to the errors or warnings list by its severity.
func (v *ValidationOutcome) Add(f Finding) {
	if f.Severity.Blocking() {
		v.Errors = append(v.Errors, f)
		return
	}
	v.Warnings = append(v.Warnings, f)
}

// All returns errors followed by warnings as a single slice.
func (v *ValidationOutcome) All() []Finding {
	all := make([]Finding, 0, len(v.Errors)+len(v.Warnings))
	all = append(all, v.Errors...)
	all = append(all, v.Warnings...)
	return all
}

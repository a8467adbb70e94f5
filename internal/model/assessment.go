package model

import "time"

// AuditReport is the sanity auditor's verdict on a composition result.
type AuditReport struct {
	// Valid is false when any critical or error finding was raised.
	Valid bool `json:"valid"`

	// Confidence is the post-audit score: 100 minus the fixed penalty of
	// every triggered check, floored at 0.
	Confidence int `json:"confidence"`

	// MassBalancePercent is the recomputed component sum over measured
	// weight × 100. Only meaningful for five-component results.
	MassBalancePercent float64 `json:"mass_balance_percent,omitempty"`

	// Findings are the triggered checks.
	Findings []Finding `json:"findings,omitempty"`
}

// Assessment is the record that flows through the engine pipeline:
// validate, route, audit, persist. Each step reads what earlier steps
// produced and fills in its own section.
//
// Design decision: We use a single accumulating struct rather than
// threading separate values between steps because it keeps the Step
// interface uniform and serializes naturally for storage and reports.
type Assessment struct {
	// PatientID identifies the subject, copied from the input record.
	PatientID string `json:"patient_id,omitempty"`

	// Date is when the assessment ran.
	Date time.Time `json:"date"`

	// Input is the raw measurement record under assessment.
	Input RawMeasurement `json:"input"`

	// Validation is the input validator's outcome.
	Validation *ValidationOutcome `json:"validation,omitempty"`

	// Result is the router's output, when validation allowed calculation.
	Result *GracefulResult `json:"result,omitempty"`

	// Audit is the sanity auditor's verdict on Result.
	Audit *AuditReport `json:"audit,omitempty"`

	// Density is the supplementary estimate in the clinic's preferred
	// density variant, absent when the routed tier already used it.
	Density *BodyComposition `json:"density,omitempty"`

	// PerformedSteps lists the pipeline steps that ran, in order.
	PerformedSteps []string `json:"performed_steps,omitempty"`

	// Err holds a genuinely exceptional failure (not insufficient data).
	Err error `json:"-"`

	// ErrorMessage is the string form of Err for serialization.
	ErrorMessage string `json:"error,omitempty"`
}

// NewAssessment creates an assessment for the given measurement record.
func NewAssessment(input RawMeasurement) *Assessment {
	return &Assessment{
		PatientID: input.PatientID,
		Date:      time.Now(),
		Input:     input,
	}
}

// Valid reports whether the assessment produced a trustworthy result:
// validation passed, a tier ran, and the audit raised nothing blocking.
func (a *Assessment) Valid() bool {
	if a.Err != nil {
		return false
	}
	if a.Validation != nil && !a.Validation.Valid() {
		return false
	}
	if a.Result == nil || !a.Result.Valid {
		return false
	}
	if a.Audit != nil && !a.Audit.Valid {
		return false
	}
	return true
}

// Confidence returns the final confidence score: the audit score when an
// audit ran, otherwise the router's tier confidence, otherwise 0.
func (a *Assessment) Confidence() int {
	if a.Result == nil {
		return 0
	}
	return a.Result.Confidence
}

// AllFindings gathers validation, calculation and audit findings in
// pipeline order.
func (a *Assessment) AllFindings() []Finding {
	var all []Finding
	if a.Validation != nil {
		all = append(all, a.Validation.All()...)
	}
	if a.Result != nil {
		all = append(all, a.Result.Findings...)
	}
	if a.Audit != nil {
		all = append(all, a.Audit.Findings...)
	}
	return all
}

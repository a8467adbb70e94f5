package engine

import (
	"context"
	"log/slog"

	"github.com/anthrokit/anthrokit/internal/audit"
	"github.com/anthrokit/anthrokit/internal/density"
	"github.com/anthrokit/anthrokit/internal/model"
	"github.com/anthrokit/anthrokit/internal/reference"
	"github.com/anthrokit/anthrokit/internal/router"
	"github.com/anthrokit/anthrokit/internal/validate"
)

// ValidateStep runs the input validator. A record that fails validation
// stops the assessment here: later steps check the outcome and skip
// themselves, so the pipeline still completes without error.
type ValidateStep struct{}

// Name returns the step name.
func (ValidateStep) Name() string { return "validate" }

// Do executes the validation step.
func (ValidateStep) Do(_ context.Context, assessment *model.Assessment) error {
	outcome := validate.Check(&assessment.Input)
	assessment.Validation = &outcome
	return nil
}

// RouteStep runs the graceful degradation router over validated input.
type RouteStep struct {
	router *router.Router
}

// NewRouteStep creates a routing step. A nil router gets the default
// four-tier chain.
func NewRouteStep(r *router.Router) *RouteStep {
	if r == nil {
		r = router.New()
	}
	return &RouteStep{router: r}
}

// Name returns the step name.
func (s *RouteStep) Name() string { return "route" }

// Do executes the routing step. Skipped when validation found blocking
// errors: calculating from known-bad input would only produce findings
// the validator already explained better.
func (s *RouteStep) Do(_ context.Context, assessment *model.Assessment) error {
	if assessment.Validation != nil && !assessment.Validation.Valid() {
		return nil
	}
	assessment.Result = s.router.Route(&assessment.Input)
	return nil
}

// DensityStep computes a standalone density estimate in the clinic's
// preferred formula variant. The routed tiers fix their own variants, so
// this is the place a "fitness" or "athlete" preference takes effect.
type DensityStep struct {
	variant model.DensityVariant
}

// NewDensityStep creates a density step for the given variant.
func NewDensityStep(variant model.DensityVariant) *DensityStep {
	return &DensityStep{variant: variant}
}

// Name returns the step name.
func (s *DensityStep) Name() string { return "density" }

// Do executes the density step. Skipped for invalid input, for an unset
// variant, and when the routed tier already computed the same variant.
func (s *DensityStep) Do(_ context.Context, assessment *model.Assessment) error {
	if !s.variant.IsValid() {
		return nil
	}
	if assessment.Validation != nil && !assessment.Validation.Valid() {
		return nil
	}
	if r := assessment.Result; r != nil && r.Composition != nil && r.Composition.Variant == s.variant {
		return nil
	}

	comp := density.Compute(&assessment.Input, s.variant)
	assessment.Density = &comp
	return nil
}

// AuditStep runs the result sanity auditor and folds its confidence
// verdict back into the routed result.
type AuditStep struct {
	logger *slog.Logger

	// strictBalance escalates the five-component pre-scaling deviation
	// warning into a hard error. Clinic policy; default off.
	strictBalance bool
}

// AuditStepOption configures an AuditStep.
type AuditStepOption func(*AuditStep)

// WithStrictBalance makes a pre-scaling Phantom deviation above the
// warning threshold invalidate the result instead of only warning.
func WithStrictBalance(strict bool) AuditStepOption {
	return func(s *AuditStep) {
		s.strictBalance = strict
	}
}

// NewAuditStep creates an audit step.
func NewAuditStep(logger *slog.Logger, opts ...AuditStepOption) *AuditStep {
	if logger == nil {
		logger = slog.Default()
	}
	s := &AuditStep{logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *AuditStep) Name() string { return "audit" }

// Do executes the audit step. Runs on any valid routed result regardless
// of which tier produced it.
func (s *AuditStep) Do(_ context.Context, assessment *model.Assessment) error {
	if assessment.Result == nil || !assessment.Result.Valid {
		return nil
	}

	report := audit.Inspect(&assessment.Input, assessment.Result)

	if s.strictBalance {
		if frac := assessment.Result.Fractionation; frac != nil &&
			frac.PreScaleDeviationPercent > reference.MassDeviationWarnPercent {
			report.Valid = false
			report.Findings = append(report.Findings, model.Finding{
				Code:     "phantom_deviation_strict",
				Kind:     model.KindModelDeviation,
				Severity: model.SeverityError,
				Field:    "weight_kg",
				Value:    frac.PreScaleDeviationPercent,
				Message:  "strict balance policy: pre-scaling Phantom deviation exceeds the warning threshold",
			})
			if report.Confidence > 0 {
				report.Confidence -= reference.AuditPenaltyError
				if report.Confidence < 0 {
					report.Confidence = 0
				}
			}
		}
	}

	assessment.Audit = &report

	// The audit caps the tier confidence: a Tier 1 result with audit
	// findings must not outrank a clean Tier 2 result by tier alone.
	if report.Confidence < assessment.Result.Confidence {
		assessment.Result.Confidence = report.Confidence
	}
	if !report.Valid {
		assessment.Result.Valid = false
		s.logger.Warn("audit invalidated result",
			"patient_id", assessment.PatientID,
			"confidence", report.Confidence,
		)
	}
	return nil
}

// DefaultPipeline assembles the standard validate → route → density →
// audit chain. The variant selects the preferred formula for the
// supplementary density estimate; the routed tier chain is unaffected.
func DefaultPipeline(logger *slog.Logger, variant model.DensityVariant, auditOpts ...AuditStepOption) *Pipeline {
	return buildPipeline(logger, router.New(router.WithLogger(logger)), variant, auditOpts)
}

// SingleTierPipeline assembles the standard chain with the router pinned
// to one tier. When the pinned tier cannot run, the result is the tier's
// downgrade finding plus the exhaustion error rather than a fall through
// to a lower tier.
func SingleTierPipeline(logger *slog.Logger, tier model.Tier, variant model.DensityVariant, auditOpts ...AuditStepOption) *Pipeline {
	r := router.New(router.WithLogger(logger))
	if s, ok := router.ForTier(tier); ok {
		r = router.New(router.WithLogger(logger), router.WithStrategies(s))
	}
	return buildPipeline(logger, r, variant, auditOpts)
}

func buildPipeline(logger *slog.Logger, r *router.Router, variant model.DensityVariant, auditOpts []AuditStepOption) *Pipeline {
	var opts []Option
	if logger != nil {
		opts = append(opts, WithLogger(logger))
	}
	p := New(opts...)
	p.AddSteps(
		ValidateStep{},
		NewRouteStep(r),
		NewDensityStep(variant),
		NewAuditStep(logger, auditOpts...),
	)
	return p
}

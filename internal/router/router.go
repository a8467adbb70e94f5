package router

import (
	"log/slog"

	"github.com/anthrokit/anthrokit/internal/model"
)

// Router walks an ordered strategy chain and computes through the first
// tier that succeeds.
type Router struct {
	strategies []Strategy
	logger     *slog.Logger
}

// Option configures a Router.
type Option func(*Router)

// WithLogger sets a custom logger for tier selection logging.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		r.logger = logger
	}
}

// WithStrategies replaces the default tier chain. Strategies are tried
// in the order given.
func WithStrategies(strategies ...Strategy) Option {
	return func(r *Router) {
		r.strategies = strategies
	}
}

// New creates a Router with the default four-tier chain: five-component,
// four-skinfold, rapid two-skinfold, BMI.
func New(opts ...Option) *Router {
	r := &Router{
		strategies: []Strategy{
			FiveComponentStrategy{},
			NewFourSkinfoldStrategy(),
			NewRapidStrategy(),
			BMIStrategy{},
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// Route selects and computes the best calculable tier for the record.
// Every skipped tier appends a downgrade reason. When all tiers are
// exhausted the result is invalid with Tier = TierNone, which callers
// can distinguish from a low-confidence success.
func (r *Router) Route(m *model.RawMeasurement) *model.GracefulResult {
	result := &model.GracefulResult{Tier: model.TierNone}

	for _, s := range r.strategies {
		ok, reason := s.CanAttempt(m)
		if !ok {
			r.logger.Debug("tier skipped",
				"tier", s.Tier().String(),
				"reason", reason,
			)
			r.downgrade(result, s.Tier(), reason)
			continue
		}

		tr := s.Compute(m)
		if !tr.valid {
			r.logger.Debug("tier failed",
				"tier", s.Tier().String(),
				"reason", tr.reason,
			)
			r.downgrade(result, s.Tier(), tr.reason)
			continue
		}

		r.logger.Info("tier selected",
			"tier", s.Tier().String(),
			"confidence", s.Tier().Confidence(),
			"downgraded", len(result.DowngradeReasons) > 0,
		)

		result.Valid = true
		result.Tier = s.Tier()
		result.Confidence = s.Tier().Confidence()
		result.Downgraded = len(result.DowngradeReasons) > 0
		result.FatPercent = tr.fatPercent
		result.FatMassKg = m.WeightKg * tr.fatPercent / 100
		result.LeanMassKg = m.WeightKg - result.FatMassKg
		result.Fractionation = tr.fractionation
		result.Composition = tr.composition
		for _, f := range tr.findings {
			result.AddFinding(f)
		}
		return result
	}

	// Exhausted: even the BMI tier could not run. This is an error-level
	// outcome, not a degraded estimate.
	result.AddFinding(model.Finding{
		Code:     "no_tier_calculable",
		Kind:     model.KindMissingData,
		Severity: model.SeverityError,
		Message:  "no precision tier could run; weight, height, age and sex are the minimum input",
	})
	return result
}

// downgrade records why a tier was skipped.
func (r *Router) downgrade(result *model.GracefulResult, tier model.Tier, reason string) {
	result.DowngradeReasons = append(result.DowngradeReasons, reason)
	result.AddFinding(model.Finding{
		Code:           "tier_downgrade",
		Kind:           model.KindDowngrade,
		Severity:       model.SeverityWarning,
		Field:          tier.String(),
		Message:        tier.Label() + " skipped: " + reason,
		Recommendation: "Collect the missing measurements to restore the higher precision tier.",
	})
}

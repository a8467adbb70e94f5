package router

import (
	"fmt"
	"strings"

	"github.com/anthrokit/anthrokit/internal/density"
	"github.com/anthrokit/anthrokit/internal/fraction"
	"github.com/anthrokit/anthrokit/internal/model"
	"github.com/anthrokit/anthrokit/internal/reference"
)

// Strategy is one precision tier of the degradation chain.
//
// Design decision: We use an interface rather than function types because
// it keeps each tier's prerequisite check next to its computation, lets
// strategies carry configuration, and makes the router a plain ordered
// walk instead of nested conditionals.
type Strategy interface {
	// Tier identifies the precision tier this strategy implements.
	Tier() model.Tier

	// CanAttempt reports whether the record satisfies the tier's
	// prerequisites, and when it does not, a human-readable reason
	// used as the downgrade message.
	CanAttempt(m *model.RawMeasurement) (bool, string)

	// Compute runs the tier's calculator. It is only called after
	// CanAttempt returned true, but may still produce an invalid
	// result (e.g. a density outside the plausible band); the router
	// then falls through to the next tier.
	Compute(m *model.RawMeasurement) tierResult
}

// tierResult is the uniform output a strategy hands back to the router.
type tierResult struct {
	valid         bool
	reason        string // why the computation failed, when invalid
	fatPercent    float64
	fractionation *model.FractionationResult
	composition   *model.BodyComposition
	findings      []model.Finding
}

// ForTier returns the standalone strategy for one tier, used when a
// caller forces a tier instead of walking the chain.
func ForTier(t model.Tier) (Strategy, bool) {
	switch t {
	case model.TierFiveComponent:
		return FiveComponentStrategy{}, true
	case model.TierFourSkinfold:
		return NewFourSkinfoldStrategy(), true
	case model.TierRapid:
		return NewRapidStrategy(), true
	case model.TierBMI:
		return BMIStrategy{}, true
	}
	return nil, false
}

// FiveComponentStrategy is Tier 1: the Kerr fractionation.
type FiveComponentStrategy struct{}

// Tier implements Strategy.
func (FiveComponentStrategy) Tier() model.Tier { return model.TierFiveComponent }

// CanAttempt implements Strategy. The full battery must be present and
// the skinfold sum must not exceed the compressibility cutoff.
func (FiveComponentStrategy) CanAttempt(m *model.RawMeasurement) (bool, string) {
	if missing := fraction.MissingData(m); len(missing) > 0 {
		return false, "five-component fractionation needs " + strings.Join(missing, "; ")
	}
	if sum := m.SkinfoldSum(); sum > reference.Tier1MaxSkinfoldSumMm {
		return false, fmt.Sprintf(
			"skinfold sum %.1f mm exceeds %g mm; folds this compressible cannot support the fractionation",
			sum, float64(reference.Tier1MaxSkinfoldSumMm))
	}
	return true, ""
}

// Compute implements Strategy.
func (FiveComponentStrategy) Compute(m *model.RawMeasurement) tierResult {
	frac := fraction.Compute(m)
	if !frac.Valid {
		return tierResult{reason: "fractionation prerequisites missing: " + strings.Join(frac.MissingData, "; ")}
	}
	return tierResult{
		valid:         true,
		fatPercent:    frac.LipidFatPercent,
		fractionation: &frac,
		findings:      frac.Findings,
	}
}

// DensityStrategy runs one density formula variant as a tier. Tier 2
// uses the four-skinfold control variant, Tier 3 the rapid two-skinfold
// variant.
type DensityStrategy struct {
	tier    model.Tier
	variant model.DensityVariant
}

// NewFourSkinfoldStrategy creates the Tier 2 strategy.
func NewFourSkinfoldStrategy() DensityStrategy {
	return DensityStrategy{tier: model.TierFourSkinfold, variant: model.VariantControl}
}

// NewRapidStrategy creates the Tier 3 strategy.
func NewRapidStrategy() DensityStrategy {
	return DensityStrategy{tier: model.TierRapid, variant: model.VariantRapid}
}

// Tier implements Strategy.
func (s DensityStrategy) Tier() model.Tier { return s.tier }

// CanAttempt implements Strategy.
func (s DensityStrategy) CanAttempt(m *model.RawMeasurement) (bool, string) {
	if missing := density.MissingSites(m, s.variant); len(missing) > 0 {
		return false, fmt.Sprintf("%s formula needs %s", s.variant, strings.Join(missing, ", "))
	}
	return true, ""
}

// Compute implements Strategy.
func (s DensityStrategy) Compute(m *model.RawMeasurement) tierResult {
	comp := density.Compute(m, s.variant)
	if !comp.Valid {
		if len(comp.MissingSites) > 0 {
			return tierResult{reason: fmt.Sprintf("%s formula missing %s", s.variant, strings.Join(comp.MissingSites, ", "))}
		}
		return tierResult{reason: fmt.Sprintf("%s formula produced an implausible body density", s.variant)}
	}
	return tierResult{
		valid:       true,
		fatPercent:  comp.FatPercent,
		composition: &comp,
		findings:    comp.Findings,
	}
}

// BMIStrategy is Tier 4, the Deurenberg regression last resort. It needs
// only weight, height, age and sex.
type BMIStrategy struct{}

// Tier implements Strategy.
func (BMIStrategy) Tier() model.Tier { return model.TierBMI }

// CanAttempt implements Strategy.
func (BMIStrategy) CanAttempt(m *model.RawMeasurement) (bool, string) {
	if !m.HasBasics() {
		return false, "weight, height and age are required for any estimate"
	}
	if !m.Sex.IsValid() {
		return false, "sex is required for the BMI estimate"
	}
	return true, ""
}

// Compute implements Strategy. fatPercent = 1.20×BMI + 0.23×age −
// 10.8×sexFactor − 5.4, clamped to [3, 60].
func (BMIStrategy) Compute(m *model.RawMeasurement) tierResult {
	sexFactor := reference.DeurenbergSexFemale
	if m.Sex == model.SexMale {
		sexFactor = reference.DeurenbergSexMale
	}

	pct := reference.DeurenbergBMIFactor*m.BMI() +
		reference.DeurenbergAgeFactor*m.AgeYears -
		reference.DeurenbergSexFactor*sexFactor -
		reference.DeurenbergIntercept

	if pct < reference.DeurenbergFatPctMin {
		pct = reference.DeurenbergFatPctMin
	}
	if pct > reference.DeurenbergFatPctMax {
		pct = reference.DeurenbergFatPctMax
	}

	return tierResult{valid: true, fatPercent: pct}
}

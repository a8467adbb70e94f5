package density

import (
	"fmt"
	"math"

	"github.com/anthrokit/anthrokit/internal/model"
	"github.com/anthrokit/anthrokit/internal/reference"
)

// skinfold returns the named skinfold site from the record, nil when the
// site name is unknown.
func skinfold(m *model.RawMeasurement, site string) *float64 {
	switch site {
	case "triceps":
		return m.Skinfolds.Triceps
	case "subscapular":
		return m.Skinfolds.Subscapular
	case "biceps":
		return m.Skinfolds.Biceps
	case "suprailiac":
		return m.Skinfolds.Suprailiac
	case "supraspinal":
		return m.Skinfolds.Supraspinal
	case "abdominal":
		return m.Skinfolds.Abdominal
	case "thigh":
		return m.Skinfolds.Thigh
	case "calf":
		return m.Skinfolds.Calf
	default:
		return nil
	}
}

// MissingSites returns the required skinfold sites of the given variant
// that are absent or non-positive in the record. An empty slice means
// the variant can run. The router uses this for tier selection without
// computing anything.
func MissingSites(m *model.RawMeasurement, variant model.DensityVariant) []string {
	coeffs, ok := reference.DensityTable[variant][m.Sex]
	if !ok {
		return []string{"sex"}
	}

	var missing []string
	for _, site := range coeffs.Required {
		if !model.Present(skinfold(m, site)) {
			missing = append(missing, "skinfolds_mm."+site)
		}
	}
	return missing
}

// Compute estimates body density and the two-component composition for
// the given formula variant. Missing required sites produce an explicit
// invalid result listing them; the calculator never substitutes zeros.
func Compute(m *model.RawMeasurement, variant model.DensityVariant) model.BodyComposition {
	result := model.BodyComposition{Variant: variant}

	if !variant.IsValid() {
		result.MissingSites = []string{"variant"}
		return result
	}
	if missing := MissingSites(m, variant); len(missing) > 0 {
		result.MissingSites = missing
		return result
	}
	if m.WeightKg <= 0 {
		result.MissingSites = []string{"weight_kg"}
		return result
	}

	coeffs := reference.DensityTable[variant][m.Sex]

	d := bodyDensity(m, coeffs)
	if d < reference.DensityMin || d > reference.DensityMax {
		// The regression was extrapolated outside its calibration range.
		// A nonsensical density must not propagate into fat mass.
		result.Density = 0
		return result
	}

	fatPct := SiriFatPercent(d)

	result.Valid = true
	result.Density = d
	result.FatPercent = fatPct
	result.FatMassKg = m.WeightKg * fatPct / 100
	result.LeanMassKg = m.WeightKg - result.FatMassKg
	result.Findings = survivalFindings(m.Sex, fatPct)
	return result
}

// bodyDensity evaluates the regression for the already-verified record.
func bodyDensity(m *model.RawMeasurement, coeffs reference.DensityCoefficients) float64 {
	var sum float64
	for _, site := range coeffs.Required {
		sum += model.Value(skinfold(m, site))
	}

	d := coeffs.Intercept +
		coeffs.LinearSum*sum +
		coeffs.QuadraticSum*sum*sum +
		coeffs.Age*m.AgeYears

	if coeffs.Log10Sum != 0 && sum > 0 {
		d += coeffs.Log10Sum * math.Log10(sum)
	}
	for site, c := range coeffs.PerSite {
		d += c * model.Value(skinfold(m, site))
	}
	return d
}

// SiriFatPercent converts whole-body density to fat percentage via the
// Siri equation, clamped to [0, 60]. Strictly decreasing in density.
func SiriFatPercent(density float64) float64 {
	pct := reference.SiriNumerator/density - reference.SiriOffset
	return math.Min(reference.FatPercentMax, math.Max(reference.FatPercentMin, pct))
}

// InverseSiriDensity backs out the body density that would yield the
// given fat percentage. Used by the fractionation calculator for
// cross-comparison with the density tiers.
func InverseSiriDensity(fatPercent float64) float64 {
	return reference.SiriNumerator / (fatPercent + reference.SiriOffset)
}

// survivalFindings flags fat percentages outside the biological survival
// band. Flags never block the result: an extreme but computable estimate
// is still returned, with the flag attached for the caller to surface.
func survivalFindings(sex model.Sex, fatPct float64) []model.Finding {
	minPct := reference.SurvivalFatMinMale
	maxPct := reference.RiskFatMaxMale
	if sex == model.SexFemale {
		minPct = reference.SurvivalFatMinFemale
		maxPct = reference.RiskFatMaxFemale
	}

	switch {
	case fatPct < minPct:
		return []model.Finding{{
			Code:     "fat_percent_below_survival",
			Kind:     model.KindImplausibleResult,
			Severity: model.SeverityWarning,
			Field:    "fat_percent",
			Value:    fatPct,
			Bound:    fmt.Sprintf(">= %g%%", minPct),
			Message: fmt.Sprintf("estimated fat percentage %.1f%% is below the essential minimum %.0f%% and incompatible with life; the measurements are almost certainly wrong",
				fatPct, minPct),
			Recommendation: "Re-measure all skinfold sites before accepting this estimate.",
		}}
	case fatPct > maxPct:
		return []model.Finding{{
			Code:     "fat_percent_metabolic_risk",
			Kind:     model.KindImplausibleResult,
			Severity: model.SeverityWarning,
			Field:    "fat_percent",
			Value:    fatPct,
			Bound:    fmt.Sprintf("<= %g%%", maxPct),
			Message: fmt.Sprintf("estimated fat percentage %.1f%% indicates severe metabolic risk", fatPct),
			Recommendation: "Flag the result for clinical review.",
		}}
	default:
		return nil
	}
}

package audit

import (
	"fmt"

	"github.com/anthrokit/anthrokit/internal/model"
	"github.com/anthrokit/anthrokit/internal/reference"
)

// Inspect audits a graceful result against the measurement record that
// produced it. It works on any tier's output: the fractionation checks
// only run when a fractionation is present, the fat and skinfold checks
// run for every tier.
func Inspect(m *model.RawMeasurement, result *model.GracefulResult) model.AuditReport {
	report := model.AuditReport{Valid: true, Confidence: 100}
	if result == nil {
		report.Valid = false
		report.Confidence = 0
		return report
	}

	if frac := result.Fractionation; frac != nil && frac.Valid {
		auditFractionation(&report, m, frac)
	}
	auditFatPercent(&report, m.Sex, result.FatPercent)
	auditSkinfoldSum(&report, m)

	for _, f := range report.Findings {
		if f.Severity.Blocking() {
			report.Valid = false
			break
		}
	}
	return report
}

// add records a finding and subtracts its severity's penalty.
func add(report *model.AuditReport, f model.Finding) {
	report.Findings = append(report.Findings, f)

	penalty := reference.AuditPenaltyWarning
	switch f.Severity {
	case model.SeverityCritical:
		penalty = reference.AuditPenaltyCritical
	case model.SeverityError:
		penalty = reference.AuditPenaltyError
	}
	report.Confidence -= penalty
	if report.Confidence < 0 {
		report.Confidence = 0
	}
}

// auditFractionation checks mass conservation, component positivity,
// bone share and the muscle-to-bone ratio.
func auditFractionation(report *model.AuditReport, m *model.RawMeasurement, frac *model.FractionationResult) {
	balance := frac.TotalKg() / m.WeightKg * 100
	report.MassBalancePercent = balance
	if balance < reference.AuditMassBalanceMinPercent || balance > reference.AuditMassBalanceMaxPercent {
		add(report, model.Finding{
			Code:     "mass_balance_violated",
			Kind:     model.KindImplausibleResult,
			Severity: model.SeverityCritical,
			Field:    "weight_kg",
			Value:    balance,
			Bound: fmt.Sprintf("%g-%g%%",
				float64(reference.AuditMassBalanceMinPercent), float64(reference.AuditMassBalanceMaxPercent)),
			Message: fmt.Sprintf("component masses sum to %.1f%% of measured weight; mass conservation is violated", balance),
		})
	}

	for _, c := range model.Components {
		if mass := frac.Mass(c); mass.Kg <= 0 {
			add(report, model.Finding{
				Code:     string(c) + "_mass_not_positive",
				Kind:     model.KindImplausibleResult,
				Severity: model.SeverityCritical,
				Field:    string(c),
				Value:    mass.Kg,
				Bound:    "> 0 kg",
				Message:  fmt.Sprintf("%s mass %.2f kg is not positive", c, mass.Kg),
			})
		}
	}

	bonePct := frac.Bone.Percent
	switch {
	case bonePct > reference.AuditBoneMaxPercent:
		add(report, model.Finding{
			Code:     "bone_percent_high",
			Kind:     model.KindImplausibleResult,
			Severity: model.SeverityError,
			Field:    "bone",
			Value:    bonePct,
			Bound:    fmt.Sprintf("<= %g%%", float64(reference.AuditBoneMaxPercent)),
			Message:  fmt.Sprintf("bone mass is %.1f%% of body weight; no human skeleton reaches this share", bonePct),
		})
	case bonePct < reference.AuditBoneMinPercent:
		add(report, model.Finding{
			Code:     "bone_percent_low",
			Kind:     model.KindImplausibleResult,
			Severity: model.SeverityWarning,
			Field:    "bone",
			Value:    bonePct,
			Bound:    fmt.Sprintf(">= %g%%", float64(reference.AuditBoneMinPercent)),
			Message:  fmt.Sprintf("bone mass is only %.1f%% of body weight; verify the breadth measurements", bonePct),
		})
	}

	if frac.Bone.Kg > 0 {
		ratio := frac.Muscle.Kg / frac.Bone.Kg
		if ratio < reference.AuditMuscleBoneRatioMin || ratio > reference.AuditMuscleBoneRatioMax {
			add(report, model.Finding{
				Code:     "muscle_bone_ratio_unusual",
				Kind:     model.KindImplausibleResult,
				Severity: model.SeverityWarning,
				Field:    "muscle",
				Value:    ratio,
				Bound: fmt.Sprintf("%g-%g",
					float64(reference.AuditMuscleBoneRatioMin), float64(reference.AuditMuscleBoneRatioMax)),
				Message: fmt.Sprintf("muscle-to-bone ratio %.2f is outside the plausible range", ratio),
			})
		}
	}
}

// auditFatPercent applies the fat percentage bands. Below 1% is
// physiologically impossible regardless of sex; the essential minimum
// and obesity ceiling are sex-specific and only warn.
func auditFatPercent(report *model.AuditReport, sex model.Sex, fatPct float64) {
	essentialMin := reference.SurvivalFatMinMale
	ceiling := reference.RiskFatMaxMale
	if sex == model.SexFemale {
		essentialMin = reference.SurvivalFatMinFemale
		ceiling = reference.RiskFatMaxFemale
	}

	switch {
	case fatPct < reference.AuditFatPercentFloor:
		add(report, model.Finding{
			Code:     "fat_percent_impossible",
			Kind:     model.KindImplausibleResult,
			Severity: model.SeverityCritical,
			Field:    "fat_percent",
			Value:    fatPct,
			Bound:    fmt.Sprintf(">= %g%%", float64(reference.AuditFatPercentFloor)),
			Message:  fmt.Sprintf("fat percentage %.2f%% is physiologically impossible", fatPct),
		})
	case fatPct < essentialMin:
		add(report, model.Finding{
			Code:     "fat_percent_below_essential",
			Kind:     model.KindImplausibleResult,
			Severity: model.SeverityWarning,
			Field:    "fat_percent",
			Value:    fatPct,
			Bound:    fmt.Sprintf(">= %g%%", essentialMin),
			Message:  fmt.Sprintf("fat percentage %.1f%% is below the essential minimum for this sex", fatPct),
		})
	case fatPct > ceiling:
		add(report, model.Finding{
			Code:     "fat_percent_above_ceiling",
			Kind:     model.KindImplausibleResult,
			Severity: model.SeverityWarning,
			Field:    "fat_percent",
			Value:    fatPct,
			Bound:    fmt.Sprintf("<= %g%%", ceiling),
			Message:  fmt.Sprintf("fat percentage %.1f%% is above the obesity ceiling for this sex", fatPct),
		})
	}
}

// auditSkinfoldSum re-checks the total skinfold sum post hoc. Above
// 300 mm the readings cannot be trusted at all; above 200 mm precision
// is degraded.
func auditSkinfoldSum(report *model.AuditReport, m *model.RawMeasurement) {
	sum := m.SkinfoldSum()
	switch {
	case sum > reference.AuditSkinfoldSumErrorMm:
		add(report, model.Finding{
			Code:     "skinfold_sum_excessive",
			Kind:     model.KindImplausibleResult,
			Severity: model.SeverityError,
			Field:    "skinfolds_mm",
			Value:    sum,
			Bound:    fmt.Sprintf("<= %g mm", float64(reference.AuditSkinfoldSumErrorMm)),
			Message:  fmt.Sprintf("total skinfold sum %.1f mm exceeds %d mm; caliper readings at this level are unusable", sum, int(reference.AuditSkinfoldSumErrorMm)),
		})
	case sum > reference.AuditSkinfoldSumWarnMm:
		add(report, model.Finding{
			Code:     "skinfold_sum_high",
			Kind:     model.KindImplausibleResult,
			Severity: model.SeverityWarning,
			Field:    "skinfolds_mm",
			Value:    sum,
			Bound:    fmt.Sprintf("<= %g mm", float64(reference.AuditSkinfoldSumWarnMm)),
			Message:  fmt.Sprintf("total skinfold sum %.1f mm exceeds %d mm; measurement reliability is reduced", sum, int(reference.AuditSkinfoldSumWarnMm)),
		})
	}
}

package reference

import "github.com/anthrokit/anthrokit/internal/model"

// TEMThresholds are the %TEM cut points for one instrument category.
// A %TEM at or below Excellent is excellent; at or below Acceptable is
// acceptable; anything above is poor.
type TEMThresholds struct {
	Excellent  float64
	Acceptable float64
}

// TEMTable maps instrument categories to their cut points. Skinfold
// calipers tolerate far larger relative error than tapes or sliding
// calipers, so the bands differ by category rather than by site.
var TEMTable = map[model.MeasurementCategory]TEMThresholds{
	model.CategorySkinfold: {Excellent: 2.5, Acceptable: 5.0},
	model.CategoryGirth:    {Excellent: 1.0, Acceptable: 1.5},
	model.CategoryBreadth:  {Excellent: 1.0, Acceptable: 1.5},
	model.CategoryBasic:    {Excellent: 0.5, Acceptable: 1.0},
}

// Router thresholds.
const (
	// Tier1MaxSkinfoldSumMm is the skinfold sum above which the
	// five-component tier is skipped: heavily compressible tissue makes
	// caliper readings unreliable enough that the density tiers are the
	// safer estimate.
	Tier1MaxSkinfoldSumMm = 200.0
)

// Fractionation warning thresholds.
const (
	// FractionObesityWarnMm is the skinfold sum above which an obesity
	// precision warning recommends alternative formulas.
	FractionObesityWarnMm = 150.0

	// FractionObesityNoteMm is the skinfold sum above which a milder
	// informational note is attached.
	FractionObesityNoteMm = 120.0

	// MassDeviationWarnPercent is the pre-scaling deviation between the
	// raw component sum and measured weight above which a model
	// deviation warning is raised. The result is still force-balanced.
	MassDeviationWarnPercent = 5.0
)

// Cormic index cut points (sitting height / stature × 100).
const (
	CormicBrachycormicMax = 51.0
	CormicMetriocormicMax = 53.0
)

// Sanity auditor thresholds and penalties.
const (
	// AuditMassBalanceMinPercent and AuditMassBalanceMaxPercent bound
	// the recomputed component sum over measured weight × 100.
	AuditMassBalanceMinPercent = 95.0
	AuditMassBalanceMaxPercent = 105.0

	// AuditFatPercentFloor is the fat percentage below which the result
	// is physiologically impossible.
	AuditFatPercentFloor = 1.0

	// AuditBoneMinPercent and AuditBoneMaxPercent bound plausible bone
	// mass as a share of body weight.
	AuditBoneMinPercent = 5.0
	AuditBoneMaxPercent = 20.0

	// AuditMuscleBoneRatioMin and AuditMuscleBoneRatioMax bound the
	// muscle-to-bone mass ratio.
	AuditMuscleBoneRatioMin = 3.0
	AuditMuscleBoneRatioMax = 8.0

	// AuditSkinfoldSumWarnMm and AuditSkinfoldSumErrorMm are the
	// post-hoc skinfold sum bands.
	AuditSkinfoldSumWarnMm  = 200.0
	AuditSkinfoldSumErrorMm = 300.0

	// Confidence penalties per triggered check, subtracted from 100 and
	// floored at 0.
	AuditPenaltyCritical = 40
	AuditPenaltyError    = 30
	AuditPenaltyWarning  = 10
)

package model

// Component names one of the five Kerr fractionation components.
type Component string

const (
	// ComponentSkin is the dermis mass derived from body surface area.
	ComponentSkin Component = "skin"

	// ComponentAdipose is the adipose tissue mass from skinfold Z-scores.
	ComponentAdipose Component = "adipose"

	// ComponentMuscle is the skeletal muscle mass from corrected girths.
	ComponentMuscle Component = "muscle"

	// ComponentBone is the skeletal mass from bone breadths.
	ComponentBone Component = "bone"

	// ComponentResidual is the organ and viscera remainder.
	ComponentResidual Component = "residual"
)

// Components lists the five fractionation components in reporting order.
var Components = []Component{
	ComponentSkin, ComponentAdipose, ComponentMuscle,
	ComponentBone, ComponentResidual,
}

// ComponentMass is one fractionated mass, absolute and relative to the
// subject's measured weight.
type ComponentMass struct {
	// Kg is the component mass in kilograms after mass-balance rescaling.
	Kg float64 `json:"kg"`

	// Percent is the share of total body weight, 0-100.
	Percent float64 `json:"percent"`
}

// DensityVariant names one of the supported skinfold-to-density formulas.
// Each variant declares its own required skinfold set per sex; the
// calculator refuses to run with missing sites rather than computing
// with zeros.
type DensityVariant string

const (
	// VariantGeneral is the general-population two-skinfold formula
	// (triceps + subscapular).
	VariantGeneral DensityVariant = "general"

	// VariantControl is the Durnin-Womersley four-skinfold log-linear
	// formula (triceps, biceps, subscapular, suprailiac).
	VariantControl DensityVariant = "control"

	// VariantFitness is the three-skinfold quadratic formula for active
	// adults.
	VariantFitness DensityVariant = "fitness"

	// VariantAthlete is the seven-skinfold formula for athletic
	// populations; log-linear for females.
	VariantAthlete DensityVariant = "athlete"

	// VariantRapid is the two-skinfold rapid formula with a
	// sex-dependent site pair (thigh + subscapular for males,
	// suprailiac + triceps for females).
	VariantRapid DensityVariant = "rapid"
)

// DensityVariants lists all supported variants in precision order.
var DensityVariants = []DensityVariant{
	VariantAthlete, VariantControl, VariantFitness, VariantGeneral, VariantRapid,
}

// IsValid reports whether the variant is one of the supported constants.
func (v DensityVariant) IsValid() bool {
	switch v {
	case VariantGeneral, VariantControl, VariantFitness, VariantAthlete, VariantRapid:
		return true
	}
	return false
}

// BodyComposition is the result of the density-based two-component
// calculator. Created fresh on every call and never mutated after return.
type BodyComposition struct {
	// Valid is false when required sites are missing or the computed
	// density fell outside the plausible [0.9, 1.2] g/cm³ range.
	Valid bool `json:"valid"`

	// Variant is the formula that produced this result.
	Variant DensityVariant `json:"variant"`

	// MissingSites lists the required skinfold sites that were absent or
	// non-positive. Non-empty only when Valid is false.
	MissingSites []string `json:"missing_sites,omitempty"`

	// Density is the estimated whole-body density in g/cm³.
	Density float64 `json:"density"`

	// FatPercent is the Siri-derived fat percentage, clamped to [0, 60].
	FatPercent float64 `json:"fat_percent"`

	// FatMassKg is the absolute fat mass.
	FatMassKg float64 `json:"fat_mass_kg"`

	// LeanMassKg is the fat-free mass.
	LeanMassKg float64 `json:"lean_mass_kg"`

	// Findings carries survival-band flags and other non-blocking notes.
	Findings []Finding `json:"findings,omitempty"`
}

// ZScores are the mean Phantom Z-scores per component used by the
// fractionation. Skin mass is surface-area based and has no Z-score.
// A nil entry means no site yielded a usable score and the component
// decayed to the reference mass.
type ZScores struct {
	Adipose  *float64 `json:"adipose,omitempty"`
	Muscle   *float64 `json:"muscle,omitempty"`
	Bone     *float64 `json:"bone,omitempty"`
	Residual *float64 `json:"residual,omitempty"`
}

// CormicClass classifies trunk-to-stature proportion from the Cormic
// index (sitting height / stature × 100).
type CormicClass string

const (
	// CormicBrachycormic means a relatively short trunk (index < 51).
	CormicBrachycormic CormicClass = "brachycormic"

	// CormicMetriocormic means a medium trunk (51 <= index < 53).
	CormicMetriocormic CormicClass = "metriocormic"

	// CormicMacrocormic means a relatively long trunk (index >= 53).
	CormicMacrocormic CormicClass = "macrocormic"
)

// CormicResult is the skeletal proportion classification, only computed
// when sitting height was supplied.
type CormicResult struct {
	// Index is sitting height / stature × 100.
	Index float64 `json:"index"`

	// Class is the proportion classification.
	Class CormicClass `json:"class"`
}

// FractionationResult is the five-component fractionation output.
// Immutable value object: created fresh on every call, never mutated
// after return.
type FractionationResult struct {
	// Valid is false when the prerequisite measurement sets were not met.
	// All masses are zero in that case.
	Valid bool `json:"valid"`

	// MissingData lists the prerequisite categories or fields that were
	// absent when Valid is false.
	MissingData []string `json:"missing_data,omitempty"`

	// Skin, Adipose, Muscle, Bone and Residual are the five component
	// masses. Across the five, Kg values sum to the subject's measured
	// weight, enforced by rescaling.
	Skin     ComponentMass `json:"skin"`
	Adipose  ComponentMass `json:"adipose"`
	Muscle   ComponentMass `json:"muscle"`
	Bone     ComponentMass `json:"bone"`
	Residual ComponentMass `json:"residual"`

	// ZScores are the mean Z-scores underlying the masses.
	ZScores ZScores `json:"z_scores"`

	// ResidualEstimated is true when no head or trunk measurement was
	// available and residual mass fell back to the mean of the other
	// components' Z-scores. A materially weaker estimate; callers must
	// surface this.
	ResidualEstimated bool `json:"residual_estimated"`

	// PreScaleDeviationPercent is how far the raw component sum deviated
	// from measured weight before rescaling, as a percentage.
	PreScaleDeviationPercent float64 `json:"pre_scale_deviation_percent"`

	// BodyDensity is the equivalent density backed out of the adipose
	// estimate via the inverse Siri equation, for cross-comparison with
	// the two-component calculator.
	BodyDensity float64 `json:"body_density"`

	// LipidFatPercent is the estimated lipid fraction, 80% of the
	// adipose percentage (adipose tissue is not pure lipid).
	LipidFatPercent float64 `json:"lipid_fat_percent"`

	// Cormic is the skeletal proportion classification, when sitting
	// height was supplied.
	Cormic *CormicResult `json:"cormic,omitempty"`

	// Findings carries model-deviation and obesity-precision findings.
	Findings []Finding `json:"findings,omitempty"`
}

// Mass returns the named component mass.
func (r *FractionationResult) Mass(c Component) ComponentMass {
	switch c {
	case ComponentSkin:
		return r.Skin
	case ComponentAdipose:
		return r.Adipose
	case ComponentMuscle:
		return r.Muscle
	case ComponentBone:
		return r.Bone
	case ComponentResidual:
		return r.Residual
	default:
		return ComponentMass{}
	}
}

// TotalKg returns the sum of the five component masses.
func (r *FractionationResult) TotalKg() float64 {
	return r.Skin.Kg + r.Adipose.Kg + r.Muscle.Kg + r.Bone.Kg + r.Residual.Kg
}

// GracefulResult is the router's unified output. Whatever tier actually
// ran, it exposes a comparable fat/lean view plus the tier, confidence
// and downgrade trail.
type GracefulResult struct {
	// Valid is false only when no tier could run at all (missing
	// weight/height/age) or the auditor found critical problems.
	Valid bool `json:"valid"`

	// Tier is the precision tier that produced the numbers.
	Tier Tier `json:"tier"`

	// Downgraded is true when the ideal tier (five-component) was not
	// usable and a lower tier ran instead.
	Downgraded bool `json:"downgraded"`

	// DowngradeReasons lists, in order, why each higher tier was skipped.
	DowngradeReasons []string `json:"downgrade_reasons,omitempty"`

	// Confidence is the 0-100 score: the tier's base confidence minus
	// audit penalties.
	Confidence int `json:"confidence"`

	// FatPercent, FatMassKg and LeanMassKg form the unified view
	// available from every tier.
	FatPercent float64 `json:"fat_percent"`
	FatMassKg  float64 `json:"fat_mass_kg"`
	LeanMassKg float64 `json:"lean_mass_kg"`

	// Fractionation is set when Tier is TierFiveComponent.
	Fractionation *FractionationResult `json:"fractionation,omitempty"`

	// Composition is set when a density tier ran (2-4) .
	Composition *BodyComposition `json:"composition,omitempty"`

	// Findings accumulates warnings and recommendations from every stage
	// the record passed through: validator, calculator, router, auditor.
	Findings []Finding `json:"findings,omitempty"`
}

// AddFinding appends a finding, skipping exact duplicates by code and field.
func (r *GracefulResult) AddFinding(f Finding) {
	for _, existing := range r.Findings {
		if existing.Code == f.Code && existing.Field == f.Field && existing.Value == f.Value {
			return
		}
	}
	r.Findings = append(r.Findings, f)
}

// CountBySeverity returns how many findings carry the given severity.
func (r *GracefulResult) CountBySeverity(s Severity) int {
	count := 0
	for _, f := range r.Findings {
		if f.Severity == s {
			count++
		}
	}
	return count
}

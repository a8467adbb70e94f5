package model

// Tier identifies a precision tier of the graceful degradation router.
// Lower numeric tiers are more precise. The router walks tiers in order
// and uses the first one whose prerequisites are satisfied.
type Tier int

const (
	// TierNone means no tier could be computed. Only possible when the
	// basic weight/height/age requirement is not met.
	TierNone Tier = iota

	// TierFiveComponent is the Kerr five-component fractionation.
	// Requires the full anthropometric battery.
	TierFiveComponent

	// TierFourSkinfold is the Durnin-Womersley four-skinfold density
	// estimate (triceps, biceps, subscapular, suprailiac).
	TierFourSkinfold

	// TierRapid is the two-skinfold rapid density estimate with a
	// sex-dependent site pair.
	TierRapid

	// TierBMI is the Deurenberg BMI-based last resort. Requires only
	// weight, height, age and sex.
	TierBMI
)

// ParseTier converts a stable tier identifier (as produced by String)
// back into a Tier. The "none" identifier is not parseable: it is an
// outcome, not a tier a caller can request.
func ParseTier(s string) (Tier, bool) {
	switch s {
	case "five_component":
		return TierFiveComponent, true
	case "four_skinfold":
		return TierFourSkinfold, true
	case "rapid_two_skinfold":
		return TierRapid, true
	case "bmi_only":
		return TierBMI, true
	}
	return TierNone, false
}

// String returns a stable identifier for the tier, used in reports and
// database rows.
func (t Tier) String() string {
	switch t {
	case TierFiveComponent:
		return "five_component"
	case TierFourSkinfold:
		return "four_skinfold"
	case TierRapid:
		return "rapid_two_skinfold"
	case TierBMI:
		return "bmi_only"
	default:
		return "none"
	}
}

// Label returns a human-readable tier name for report output.
func (t Tier) Label() string {
	switch t {
	case TierFiveComponent:
		return "Five-Component Fractionation (Kerr)"
	case TierFourSkinfold:
		return "Four-Skinfold Density (Durnin-Womersley)"
	case TierRapid:
		return "Rapid Two-Skinfold Density"
	case TierBMI:
		return "BMI Estimate (Deurenberg)"
	default:
		return "No Calculation Possible"
	}
}

// Confidence returns the base confidence score (0-100) assigned to the
// tier before the sanity auditor applies penalties.
func (t Tier) Confidence() int {
	switch t {
	case TierFiveComponent:
		return 95
	case TierFourSkinfold:
		return 80
	case TierRapid:
		return 60
	case TierBMI:
		return 30
	default:
		return 0
	}
}

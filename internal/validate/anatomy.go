package validate

import (
	"fmt"

	"github.com/anthrokit/anthrokit/internal/model"
	"github.com/anthrokit/anthrokit/internal/reference"
)

// checkAnatomy applies cross-field consistency rules. Contradictions
// between sites are always hard errors: the engine never guesses which
// of the two readings is the wrong one.
func checkAnatomy(out *model.ValidationOutcome, m *model.RawMeasurement) {
	// The waist wraps the trunk; it cannot be narrower than the flexed
	// upper arm.
	if model.Present(m.Girths.Waist) && model.Present(m.Girths.FlexedArm) &&
		*m.Girths.Waist < *m.Girths.FlexedArm {
		out.Add(model.Finding{
			Code:     "waist_below_flexed_arm",
			Kind:     model.KindAnatomicallyImpossible,
			Severity: model.SeverityError,
			Field:    "girths_cm.waist",
			Value:    *m.Girths.Waist,
			Bound:    fmt.Sprintf(">= flexed arm girth %g", *m.Girths.FlexedArm),
			Message: fmt.Sprintf("waist girth %g cm is smaller than flexed arm girth %g cm; one of the two readings is wrong",
				*m.Girths.Waist, *m.Girths.FlexedArm),
		})
	}

	// The thigh is always the larger limb segment.
	if model.Present(m.Girths.Thigh) && model.Present(m.Girths.Calf) &&
		*m.Girths.Thigh <= *m.Girths.Calf {
		out.Add(model.Finding{
			Code:     "thigh_not_above_calf",
			Kind:     model.KindAnatomicallyImpossible,
			Severity: model.SeverityError,
			Field:    "girths_cm.thigh",
			Value:    *m.Girths.Thigh,
			Bound:    fmt.Sprintf("> calf girth %g", *m.Girths.Calf),
			Message: fmt.Sprintf("thigh girth %g cm does not exceed calf girth %g cm; one of the two readings is wrong",
				*m.Girths.Thigh, *m.Girths.Calf),
		})
	}

	// The femur condyles are wider than the humerus condyles in every
	// human skeleton.
	if model.Present(m.Breadths.Femur) && model.Present(m.Breadths.Humerus) &&
		*m.Breadths.Femur < *m.Breadths.Humerus {
		out.Add(model.Finding{
			Code:     "femur_below_humerus",
			Kind:     model.KindAnatomicallyImpossible,
			Severity: model.SeverityError,
			Field:    "breadths_cm.femur",
			Value:    *m.Breadths.Femur,
			Bound:    fmt.Sprintf(">= humerus breadth %g", *m.Breadths.Humerus),
			Message: fmt.Sprintf("femur breadth %g cm is smaller than humerus breadth %g cm; one of the two readings is wrong",
				*m.Breadths.Femur, *m.Breadths.Humerus),
		})
	}

	// Sitting height cannot exceed stature.
	if model.Present(m.SittingHeightCm) && m.HeightCm > 0 &&
		*m.SittingHeightCm >= m.HeightCm {
		out.Add(model.Finding{
			Code:     "sitting_height_above_stature",
			Kind:     model.KindAnatomicallyImpossible,
			Severity: model.SeverityError,
			Field:    "sitting_height_cm",
			Value:    *m.SittingHeightCm,
			Bound:    fmt.Sprintf("< height %g", m.HeightCm),
			Message: fmt.Sprintf("sitting height %g cm is not below stature %g cm",
				*m.SittingHeightCm, m.HeightCm),
		})
	}

	// Very high total skinfold sums compress unevenly under the caliper.
	// Warning only; the router applies its own tier-level cutoff.
	if sum := m.SkinfoldSum(); sum > reference.SkinfoldSumCompressibilityMm {
		out.Add(model.Finding{
			Code:     "skinfold_sum_compressibility",
			Kind:     model.KindUnusual,
			Severity: model.SeverityWarning,
			Field:    "skinfolds_mm",
			Value:    sum,
			Bound:    fmt.Sprintf("<= %g mm total", float64(reference.SkinfoldSumCompressibilityMm)),
			Message: fmt.Sprintf("total skinfold sum %.1f mm exceeds %d mm; tissue compressibility reduces caliper accuracy",
				sum, int(reference.SkinfoldSumCompressibilityMm)),
			Recommendation: "Prefer girth-based or clinical estimates for subjects at this adiposity level.",
		})
	}
}

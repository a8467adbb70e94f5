package validate

import (
	"fmt"

	"github.com/anthrokit/anthrokit/internal/model"
	"github.com/anthrokit/anthrokit/internal/reference"
)

// Check validates a raw measurement record against the per-field bound
// table and the anatomical consistency rules. Any error in the outcome
// blocks calculation; warnings flag the record but let it proceed.
func Check(m *model.RawMeasurement) model.ValidationOutcome {
	var out model.ValidationOutcome

	// Basics are required for every tier. Absence of a basic is an
	// error here, not a downgrade.
	checkRequired(&out, "weight_kg", m.WeightKg)
	checkRequired(&out, "height_cm", m.HeightCm)
	checkRequired(&out, "age_years", m.AgeYears)

	if !m.Sex.IsValid() {
		out.Add(model.Finding{
			Code:     "sex_missing",
			Kind:     model.KindMissingData,
			Severity: model.SeverityError,
			Field:    "sex",
			Message:  `sex must be "male" or "female"; every formula carries sex-specific coefficients`,
		})
	}

	checkOptional(&out, "sitting_height_cm", m.SittingHeightCm)
	checkOptional(&out, "head_circumference_cm", m.HeadCircumferenceCm)

	for _, f := range optionalFields(m) {
		checkOptional(&out, f.name, f.value)
	}

	checkAnatomy(&out, m)

	return out
}

// optionalField pairs a bound-table field name with the record's value.
type optionalField struct {
	name  string
	value *float64
}

// optionalFields lists the record's optional measurements in a fixed
// order so identical input always produces identically ordered findings.
func optionalFields(m *model.RawMeasurement) []optionalField {
	return []optionalField{
		{"skinfolds_mm.triceps", m.Skinfolds.Triceps},
		{"skinfolds_mm.subscapular", m.Skinfolds.Subscapular},
		{"skinfolds_mm.biceps", m.Skinfolds.Biceps},
		{"skinfolds_mm.suprailiac", m.Skinfolds.Suprailiac},
		{"skinfolds_mm.supraspinal", m.Skinfolds.Supraspinal},
		{"skinfolds_mm.abdominal", m.Skinfolds.Abdominal},
		{"skinfolds_mm.thigh", m.Skinfolds.Thigh},
		{"skinfolds_mm.calf", m.Skinfolds.Calf},

		{"girths_cm.flexed_arm", m.Girths.FlexedArm},
		{"girths_cm.forearm", m.Girths.Forearm},
		{"girths_cm.waist", m.Girths.Waist},
		{"girths_cm.hip", m.Girths.Hip},
		{"girths_cm.thigh", m.Girths.Thigh},
		{"girths_cm.calf", m.Girths.Calf},

		{"breadths_cm.humerus", m.Breadths.Humerus},
		{"breadths_cm.femur", m.Breadths.Femur},
		{"breadths_cm.wrist", m.Breadths.Wrist},
		{"breadths_cm.ankle", m.Breadths.Ankle},
		{"breadths_cm.biacromial", m.Breadths.Biacromial},
		{"breadths_cm.biiliocristal", m.Breadths.Biiliocristal},
	}
}

// checkRequired validates a required basic. Absent or non-positive values
// are errors because no tier can run without them.
func checkRequired(out *model.ValidationOutcome, field string, value float64) {
	if value <= 0 {
		out.Add(model.Finding{
			Code:     field + "_missing",
			Kind:     model.KindMissingData,
			Severity: model.SeverityError,
			Field:    field,
			Value:    value,
			Message:  fmt.Sprintf("%s is required and must be positive", field),
		})
		return
	}
	checkBounds(out, field, value)
}

// checkOptional validates an optional measurement. Absence is fine; a
// present value still has to sit inside its bounds.
func checkOptional(out *model.ValidationOutcome, field string, value *float64) {
	if value == nil {
		return
	}
	if *value <= 0 {
		out.Add(model.Finding{
			Code:     field + "_not_positive",
			Kind:     model.KindBelowMin,
			Severity: model.SeverityError,
			Field:    field,
			Value:    *value,
			Bound:    "> 0",
			Message:  fmt.Sprintf("%s was recorded but is not positive; a measured zero is not a valid reading", field),
		})
		return
	}
	checkBounds(out, field, *value)
}

// checkBounds applies the two-band envelope from the reference table.
func checkBounds(out *model.ValidationOutcome, field string, value float64) {
	bound, ok := reference.Bounds[field]
	if !ok {
		return
	}

	switch {
	case value < bound.HardMin:
		out.Add(model.Finding{
			Code:     field + "_below_min",
			Kind:     model.KindBelowMin,
			Severity: model.SeverityError,
			Field:    field,
			Value:    value,
			Bound:    fmt.Sprintf("min %g", bound.HardMin),
			Message:  fmt.Sprintf("%s = %g is below the physiological minimum %g", field, value, bound.HardMin),
		})
	case value > bound.HardMax:
		out.Add(model.Finding{
			Code:     field + "_above_max",
			Kind:     model.KindAboveMax,
			Severity: model.SeverityError,
			Field:    field,
			Value:    value,
			Bound:    fmt.Sprintf("max %g", bound.HardMax),
			Message:  fmt.Sprintf("%s = %g is above the physiological maximum %g", field, value, bound.HardMax),
		})
	case value < bound.UsualMin || value > bound.UsualMax:
		out.Add(model.Finding{
			Code:     field + "_unusual",
			Kind:     model.KindUnusual,
			Severity: model.SeverityWarning,
			Field:    field,
			Value:    value,
			Bound:    fmt.Sprintf("usual %g-%g", bound.UsualMin, bound.UsualMax),
			Message:  fmt.Sprintf("%s = %g is outside the usual clinical band %g-%g; verify the reading", field, value, bound.UsualMin, bound.UsualMax),
			Recommendation: "Re-measure the site or confirm the recorded value before trusting derived results.",
		})
	}
}

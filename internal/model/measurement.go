package model

// Sex is the subject's biological sex as recorded for formula selection.
// Several regression formulas carry sex-specific coefficients, so this is
// a required input for every calculation tier.
type Sex string

const (
	// SexMale selects male formula coefficients.
	SexMale Sex = "male"

	// SexFemale selects female formula coefficients.
	SexFemale Sex = "female"
)

// IsValid reports whether the sex value is one of the supported constants.
func (s Sex) IsValid() bool {
	return s == SexMale || s == SexFemale
}

// Skinfolds holds skinfold thickness measurements in millimeters.
// A nil field means the site was not measured.
//
// Sites follow ISAK nomenclature. Up to eight standard sites are supported;
// different formulas require different subsets.
type Skinfolds struct {
	// Triceps is the vertical fold at the mid-acromiale-radiale line.
	Triceps *float64 `json:"triceps,omitempty" yaml:"triceps"`

	// Subscapular is the oblique fold below the inferior angle of the scapula.
	Subscapular *float64 `json:"subscapular,omitempty" yaml:"subscapular"`

	// Biceps is the vertical fold on the anterior arm.
	Biceps *float64 `json:"biceps,omitempty" yaml:"biceps"`

	// Suprailiac is the oblique fold immediately above the iliac crest.
	Suprailiac *float64 `json:"suprailiac,omitempty" yaml:"suprailiac"`

	// Supraspinal is the fold above the anterior superior iliac spine.
	Supraspinal *float64 `json:"supraspinal,omitempty" yaml:"supraspinal"`

	// Abdominal is the vertical fold 5 cm lateral to the umbilicus.
	Abdominal *float64 `json:"abdominal,omitempty" yaml:"abdominal"`

	// Thigh is the vertical fold at the front thigh midpoint.
	Thigh *float64 `json:"thigh,omitempty" yaml:"thigh"`

	// Calf is the vertical fold at the medial calf.
	Calf *float64 `json:"calf,omitempty" yaml:"calf"`
}

// Girths holds circumference measurements in centimeters.
// A nil field means the site was not measured.
type Girths struct {
	// FlexedArm is the arm girth with the biceps flexed and tensed.
	FlexedArm *float64 `json:"flexed_arm,omitempty" yaml:"flexed_arm"`

	// Forearm is the maximum forearm girth, arm relaxed.
	Forearm *float64 `json:"forearm,omitempty" yaml:"forearm"`

	// Waist is the minimum waist girth.
	Waist *float64 `json:"waist,omitempty" yaml:"waist"`

	// Hip is the maximum gluteal girth.
	Hip *float64 `json:"hip,omitempty" yaml:"hip"`

	// Thigh is the girth 1 cm below the gluteal fold.
	Thigh *float64 `json:"thigh,omitempty" yaml:"thigh"`

	// Calf is the maximum calf girth.
	Calf *float64 `json:"calf,omitempty" yaml:"calf"`
}

// Breadths holds bone breadth measurements in centimeters.
// A nil field means the site was not measured.
type Breadths struct {
	// Humerus is the biepicondylar humerus breadth.
	Humerus *float64 `json:"humerus,omitempty" yaml:"humerus"`

	// Femur is the biepicondylar femur breadth.
	Femur *float64 `json:"femur,omitempty" yaml:"femur"`

	// Wrist is the bistyloid wrist breadth.
	Wrist *float64 `json:"wrist,omitempty" yaml:"wrist"`

	// Ankle is the bimalleolar ankle breadth.
	Ankle *float64 `json:"ankle,omitempty" yaml:"ankle"`

	// Biacromial is the shoulder breadth between acromiale landmarks.
	Biacromial *float64 `json:"biacromial,omitempty" yaml:"biacromial"`

	// Biiliocristal is the pelvis breadth between iliocristale landmarks.
	Biiliocristal *float64 `json:"biiliocristal,omitempty" yaml:"biiliocristal"`
}

// RawMeasurement is a subject's anthropometric record as collected at a
// single session. All units are explicit and metric: kg, cm, mm, years.
// The engine never converts units; callers supply metric values.
//
// Design decision: Optional measurements are pointers rather than zero
// sentinels. "Not measured" and "measured as zero" are different states:
// the first triggers tier degradation, the second is a range violation
// that must be reported against the offending field.
type RawMeasurement struct {
	// PatientID identifies the subject. Used for persistence and
	// comparison only; the calculators never read it.
	PatientID string `json:"patient_id,omitempty" yaml:"patient_id"`

	// Sex is the subject's biological sex ("male" or "female").
	Sex Sex `json:"sex" yaml:"sex"`

	// AgeYears is the subject's age in years.
	AgeYears float64 `json:"age_years" yaml:"age_years"`

	// WeightKg is body mass in kilograms.
	WeightKg float64 `json:"weight_kg" yaml:"weight_kg"`

	// HeightCm is standing stature in centimeters.
	HeightCm float64 `json:"height_cm" yaml:"height_cm"`

	// SittingHeightCm is the sitting stature in centimeters, if measured.
	// Enables the Cormic index classification.
	SittingHeightCm *float64 `json:"sitting_height_cm,omitempty" yaml:"sitting_height_cm"`

	// HeadCircumferenceCm is the head girth in centimeters, if measured.
	// Improves the residual mass estimate in the five-component model.
	HeadCircumferenceCm *float64 `json:"head_circumference_cm,omitempty" yaml:"head_circumference_cm"`

	// Skinfolds are skinfold thicknesses in millimeters.
	Skinfolds Skinfolds `json:"skinfolds_mm" yaml:"skinfolds_mm"`

	// Girths are circumference measurements in centimeters.
	Girths Girths `json:"girths_cm" yaml:"girths_cm"`

	// Breadths are bone breadth measurements in centimeters.
	Breadths Breadths `json:"breadths_cm" yaml:"breadths_cm"`
}

// HasBasics reports whether weight, height and age are all present and
// positive. This is the minimum requirement for any calculation tier.
func (m *RawMeasurement) HasBasics() bool {
	return m.WeightKg > 0 && m.HeightCm > 0 && m.AgeYears > 0
}

// BMI returns the body mass index (kg/m²), or 0 if height is not positive.
func (m *RawMeasurement) BMI() float64 {
	if m.HeightCm <= 0 {
		return 0
	}
	hm := m.HeightCm / 100
	return m.WeightKg / (hm * hm)
}

// Present reports whether an optional measurement is present and positive.
// Non-positive measured values are treated as unusable here; the validator
// reports them against the specific field separately.
func Present(v *float64) bool {
	return v != nil && *v > 0
}

// Value returns the dereferenced measurement or 0 when absent.
func Value(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// SkinfoldSum returns the sum of all present skinfolds in millimeters.
// Absent sites contribute nothing.
func (m *RawMeasurement) SkinfoldSum() float64 {
	var sum float64
	for _, v := range []*float64{
		m.Skinfolds.Triceps, m.Skinfolds.Subscapular, m.Skinfolds.Biceps,
		m.Skinfolds.Suprailiac, m.Skinfolds.Supraspinal, m.Skinfolds.Abdominal,
		m.Skinfolds.Thigh, m.Skinfolds.Calf,
	} {
		if Present(v) {
			sum += *v
		}
	}
	return sum
}

// CoreSkinfoldCount returns how many of the six adipose-model skinfolds
// (triceps, subscapular, supraspinal, abdominal, thigh, calf) are present.
func (m *RawMeasurement) CoreSkinfoldCount() int {
	count := 0
	for _, v := range []*float64{
		m.Skinfolds.Triceps, m.Skinfolds.Subscapular, m.Skinfolds.Supraspinal,
		m.Skinfolds.Abdominal, m.Skinfolds.Thigh, m.Skinfolds.Calf,
	} {
		if Present(v) {
			count++
		}
	}
	return count
}

// CoreGirthCount returns how many of the three muscle-model girths
// (flexed arm, thigh, calf) are present.
func (m *RawMeasurement) CoreGirthCount() int {
	count := 0
	for _, v := range []*float64{m.Girths.FlexedArm, m.Girths.Thigh, m.Girths.Calf} {
		if Present(v) {
			count++
		}
	}
	return count
}

// HasCoreBreadths reports whether both required bone breadths
// (humerus and femur) are present.
func (m *RawMeasurement) HasCoreBreadths() bool {
	return Present(m.Breadths.Humerus) && Present(m.Breadths.Femur)
}

package reference

// FieldBound is the two-band plausibility envelope for one measurement
// field. Values outside the hard band are errors that block calculation;
// values inside the hard band but outside the usual band are warnings
// and calculation proceeds.
type FieldBound struct {
	// HardMin and HardMax are the physiological survival bounds.
	HardMin float64
	HardMax float64

	// UsualMin and UsualMax delimit the expected clinical band.
	UsualMin float64
	UsualMax float64
}

// Bounds maps field names to their plausibility envelopes. Field names
// match the YAML/JSON tags of model.RawMeasurement: basics by name,
// skinfolds as "skinfolds_mm.<site>", girths as "girths_cm.<site>",
// breadths as "breadths_cm.<site>".
var Bounds = map[string]FieldBound{
	// Basics. Hard bounds are survival limits, not clinical norms:
	// a 400 kg weight is recordable, a 450 kg weight is a typo.
	"weight_kg":             {HardMin: 20, HardMax: 400, UsualMin: 35, UsualMax: 250},
	"height_cm":             {HardMin: 100, HardMax: 250, UsualMin: 140, UsualMax: 220},
	"age_years":             {HardMin: 1, HardMax: 130, UsualMin: 10, UsualMax: 100},
	"sitting_height_cm":     {HardMin: 40, HardMax: 150, UsualMin: 60, UsualMax: 110},
	"head_circumference_cm": {HardMin: 40, HardMax: 70, UsualMin: 50, UsualMax: 63},

	// Skinfolds (mm). The caliper jaw cannot close below ~0.5 mm and
	// folds above 80 mm exceed instrument range.
	"skinfolds_mm.triceps":     {HardMin: 0.5, HardMax: 80, UsualMin: 2, UsualMax: 45},
	"skinfolds_mm.subscapular": {HardMin: 0.5, HardMax: 80, UsualMin: 2, UsualMax: 45},
	"skinfolds_mm.biceps":      {HardMin: 0.5, HardMax: 80, UsualMin: 1.5, UsualMax: 40},
	"skinfolds_mm.suprailiac":  {HardMin: 0.5, HardMax: 80, UsualMin: 2, UsualMax: 50},
	"skinfolds_mm.supraspinal": {HardMin: 0.5, HardMax: 80, UsualMin: 2, UsualMax: 45},
	"skinfolds_mm.abdominal":   {HardMin: 0.5, HardMax: 80, UsualMin: 3, UsualMax: 55},
	"skinfolds_mm.thigh":       {HardMin: 0.5, HardMax: 80, UsualMin: 3, UsualMax: 55},
	"skinfolds_mm.calf":        {HardMin: 0.5, HardMax: 80, UsualMin: 2, UsualMax: 45},

	// Girths (cm).
	"girths_cm.flexed_arm": {HardMin: 15, HardMax: 60, UsualMin: 20, UsualMax: 50},
	"girths_cm.forearm":    {HardMin: 12, HardMax: 45, UsualMin: 18, UsualMax: 35},
	"girths_cm.waist":      {HardMin: 40, HardMax: 200, UsualMin: 55, UsualMax: 140},
	"girths_cm.hip":        {HardMin: 50, HardMax: 200, UsualMin: 70, UsualMax: 160},
	"girths_cm.thigh":      {HardMin: 30, HardMax: 100, UsualMin: 40, UsualMax: 80},
	"girths_cm.calf":       {HardMin: 20, HardMax: 60, UsualMin: 25, UsualMax: 50},

	// Bone breadths (cm). Narrow hard bands: the skeleton does not vary
	// much, so a value outside these is a transcription error.
	"breadths_cm.humerus":       {HardMin: 4, HardMax: 9, UsualMin: 5, UsualMax: 8},
	"breadths_cm.femur":         {HardMin: 6, HardMax: 13, UsualMin: 7.5, UsualMax: 11},
	"breadths_cm.wrist":         {HardMin: 3.5, HardMax: 7.5, UsualMin: 4.5, UsualMax: 6.5},
	"breadths_cm.ankle":         {HardMin: 5, HardMax: 10, UsualMin: 5.5, UsualMax: 8.5},
	"breadths_cm.biacromial":    {HardMin: 25, HardMax: 50, UsualMin: 30, UsualMax: 45},
	"breadths_cm.biiliocristal": {HardMin: 18, HardMax: 40, UsualMin: 22, UsualMax: 35},
}

// Cross-field anatomical thresholds used by the validator.
const (
	// SkinfoldSumCompressibilityMm is the total skinfold sum above which
	// tissue compressibility degrades caliper accuracy. Warning only.
	SkinfoldSumCompressibilityMm = 250
)

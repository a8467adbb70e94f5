package reference

import "math"

// Phantom reference body (Ross & Wilson). Every linear measurement is
// normalized against this fixed unisex reference before being converted
// into a mass contribution, which keeps subjects of different statures
// comparable.
const (
	// PhantomHeightCm is the Phantom stature. All height adjustment and
	// geometric rescaling is done against this value.
	PhantomHeightCm = 170.18

	// PhantomWeightKg is the Phantom body mass.
	PhantomWeightKg = 64.58
)

// Skin mass constants. Skin is the one component that is not Z-score
// based: it is body surface area (Du Bois) times a fixed dermis layer.
const (
	// DuBoisCoefficient, DuBoisWeightExp and DuBoisHeightExp parameterize
	// the Du Bois & Du Bois surface area formula
	// (weight^0.425 × height^0.725 × 71.84, result in cm²).
	DuBoisCoefficient = 71.84
	DuBoisWeightExp   = 0.425
	DuBoisHeightExp   = 0.725

	// DermisThicknessMm is the assumed uniform dermis thickness.
	DermisThicknessMm = 2.07

	// DermisDensity is the dermis tissue density in g/cm³.
	DermisDensity = 1.05
)

// SiteReference is a (mean, standard deviation) pair for one measurement
// site in the Phantom reference population.
type SiteReference struct {
	// Mean is the Phantom population mean, in the site's native unit.
	Mean float64

	// SD is the Phantom population standard deviation.
	SD float64
}

// PhantomSkinfolds maps skinfold site names to Phantom references (mm).
var PhantomSkinfolds = map[string]SiteReference{
	"triceps":     {Mean: 15.4, SD: 4.47},
	"subscapular": {Mean: 17.2, SD: 5.07},
	"biceps":      {Mean: 8.0, SD: 2.00},
	"suprailiac":  {Mean: 22.4, SD: 6.80},
	"supraspinal": {Mean: 15.2, SD: 4.60},
	"abdominal":   {Mean: 25.4, SD: 7.78},
	"thigh":       {Mean: 27.0, SD: 8.33},
	"calf":        {Mean: 16.0, SD: 4.67},
}

// PhantomGirths maps girth site names to Phantom references (cm).
var PhantomGirths = map[string]SiteReference{
	"flexed_arm": {Mean: 29.41, SD: 2.37},
	"forearm":    {Mean: 25.13, SD: 1.41},
	"waist":      {Mean: 71.91, SD: 4.45},
	"hip":        {Mean: 94.67, SD: 5.58},
	"thigh":      {Mean: 55.82, SD: 4.23},
	"calf":       {Mean: 35.25, SD: 2.30},
	"head":       {Mean: 56.00, SD: 1.44},
}

// PhantomBreadths maps bone breadth site names to Phantom references (cm).
var PhantomBreadths = map[string]SiteReference{
	"humerus":       {Mean: 6.48, SD: 0.35},
	"femur":         {Mean: 9.52, SD: 0.48},
	"wrist":         {Mean: 5.21, SD: 0.28},
	"ankle":         {Mean: 6.68, SD: 0.36},
	"biacromial":    {Mean: 38.04, SD: 1.92},
	"biiliocristal": {Mean: 28.84, SD: 1.75},
}

// PhantomCorrectedGirths maps the muscle-model girths to Phantom
// references after subcutaneous fat correction. The mean is the Phantom
// girth minus π times the corresponding Phantom skinfold in cm; the SD
// is carried over from the uncorrected girth.
var PhantomCorrectedGirths = map[string]SiteReference{
	"flexed_arm": {Mean: 29.41 - math.Pi*1.54, SD: 2.37},
	"thigh":      {Mean: 55.82 - math.Pi*2.70, SD: 4.23},
	"calf":       {Mean: 35.25 - math.Pi*1.60, SD: 2.30},
}

// PhantomComponentMasses maps fractionation components to their Phantom
// reference masses (kg). The Z-score of a subject's sites is converted
// back to kilograms through these values and rescaled geometrically to
// the subject's stature.
var PhantomComponentMasses = map[string]SiteReference{
	"skin":     {Mean: 3.25, SD: 0.20},
	"adipose":  {Mean: 12.13, SD: 3.25},
	"muscle":   {Mean: 24.50, SD: 3.44},
	"bone":     {Mean: 6.70, SD: 1.34},
	"residual": {Mean: 16.41, SD: 1.90},
}

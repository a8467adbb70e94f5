package reference

import "github.com/anthrokit/anthrokit/internal/model"

// Siri equation constants: fatPercent = 495/density − 450.
const (
	SiriNumerator = 495.0
	SiriOffset    = 450.0

	// FatPercentMin and FatPercentMax clamp the Siri output.
	FatPercentMin = 0.0
	FatPercentMax = 60.0

	// DensityMin and DensityMax delimit plausible whole-body density in
	// g/cm³. A density outside this band means the regression was fed
	// values it was never calibrated for; the result is discarded.
	DensityMin = 0.9
	DensityMax = 1.2
)

// Survival and risk bands for computed fat percentage, by sex. Results
// outside these bands are flagged but not blocked by the calculator;
// the sanity auditor applies its own penalties separately.
const (
	SurvivalFatMinMale   = 3.0
	SurvivalFatMinFemale = 8.0
	RiskFatMaxMale       = 45.0
	RiskFatMaxFemale     = 55.0
)

// Deurenberg BMI regression constants for the last-resort tier:
// fatPercent = 1.20×BMI + 0.23×age − 10.8×sexFactor − 5.4, with
// sexFactor 1 for males and 0 for females, clamped to [3, 60].
const (
	DeurenbergBMIFactor  = 1.20
	DeurenbergAgeFactor  = 0.23
	DeurenbergSexFactor  = 10.8
	DeurenbergIntercept  = 5.4
	DeurenbergFatPctMin  = 3.0
	DeurenbergFatPctMax  = 60.0
	DeurenbergSexMale    = 1.0
	DeurenbergSexFemale  = 0.0
)

// DensityCoefficients parameterize one skinfold-to-density regression
// for one sex:
//
//	density = Intercept + LinearSum×S + QuadraticSum×S² + Log10Sum×log10(S)
//	          + Age×age + Σ PerSite[site]×skinfold(site)
//
// where S is the sum of the required skinfolds in mm. Formulas use
// either the sum terms or the per-site terms, never both.
type DensityCoefficients struct {
	Intercept    float64
	LinearSum    float64
	QuadraticSum float64
	Log10Sum     float64
	Age          float64
	PerSite      map[string]float64

	// Required lists the skinfold sites the formula needs, by model
	// field name. Every one must be present and positive.
	Required []string
}

// DensityTable maps formula variant and sex to regression coefficients.
//
// Variant sources: "control" is Durnin & Womersley's four-skinfold
// log-linear equation; "fitness" and the male "athlete" equation follow
// the Jackson & Pollock quadratic form; the female "athlete" equation is
// log-linear; "rapid" is Sloan's two-site equation with its original
// per-site coefficients; "general" is a two-site screening equation for
// unselected adults.
var DensityTable = map[model.DensityVariant]map[model.Sex]DensityCoefficients{
	model.VariantGeneral: {
		model.SexMale: {
			Intercept: 1.0913,
			LinearSum: -0.00116,
			Required:  []string{"triceps", "subscapular"},
		},
		model.SexFemale: {
			Intercept: 1.0897,
			LinearSum: -0.00133,
			Required:  []string{"triceps", "subscapular"},
		},
	},
	model.VariantControl: {
		model.SexMale: {
			Intercept: 1.1765,
			Log10Sum:  -0.0744,
			Required:  []string{"triceps", "biceps", "subscapular", "suprailiac"},
		},
		model.SexFemale: {
			Intercept: 1.1567,
			Log10Sum:  -0.0717,
			Required:  []string{"triceps", "biceps", "subscapular", "suprailiac"},
		},
	},
	model.VariantFitness: {
		model.SexMale: {
			Intercept:    1.10938,
			LinearSum:    -0.0008267,
			QuadraticSum: 0.0000016,
			Age:          -0.0002574,
			Required:     []string{"abdominal", "thigh", "triceps"},
		},
		model.SexFemale: {
			Intercept:    1.0994921,
			LinearSum:    -0.0009929,
			QuadraticSum: 0.0000023,
			Age:          -0.0001392,
			Required:     []string{"triceps", "suprailiac", "thigh"},
		},
	},
	model.VariantAthlete: {
		model.SexMale: {
			Intercept:    1.112,
			LinearSum:    -0.00043499,
			QuadraticSum: 0.00000055,
			Age:          -0.00028826,
			Required: []string{
				"triceps", "subscapular", "suprailiac", "supraspinal",
				"abdominal", "thigh", "calf",
			},
		},
		model.SexFemale: {
			Intercept: 1.20953,
			Log10Sum:  -0.08294,
			Required: []string{
				"triceps", "subscapular", "suprailiac", "supraspinal",
				"abdominal", "thigh", "calf",
			},
		},
	},
	model.VariantRapid: {
		model.SexMale: {
			Intercept: 1.1043,
			PerSite: map[string]float64{
				"thigh":       -0.001327,
				"subscapular": -0.00131,
			},
			Required: []string{"thigh", "subscapular"},
		},
		model.SexFemale: {
			Intercept: 1.0764,
			PerSite: map[string]float64{
				"suprailiac": -0.0008,
				"triceps":    -0.00088,
			},
			Required: []string{"suprailiac", "triceps"},
		},
	},
}

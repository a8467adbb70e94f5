package fraction

import (
	"fmt"
	"math"

	"github.com/anthrokit/anthrokit/internal/density"
	"github.com/anthrokit/anthrokit/internal/model"
	"github.com/anthrokit/anthrokit/internal/reference"
)

// LipidFractionOfAdipose is the assumed lipid share of adipose tissue.
// Adipose tissue is not pure lipid; the conventional factor is 0.8.
const LipidFractionOfAdipose = 0.8

// MissingData returns the prerequisite categories the record lacks for a
// five-component fractionation: basics (weight/height/age), at least 4
// of the 6 core skinfolds, at least 2 of the 3 core girths, and both
// core bone breadths. Empty means the fractionation can run.
func MissingData(m *model.RawMeasurement) []string {
	var missing []string
	if !m.HasBasics() {
		missing = append(missing, "weight_kg/height_cm/age_years")
	}
	if n := m.CoreSkinfoldCount(); n < 4 {
		missing = append(missing, fmt.Sprintf("skinfolds (%d of 6 core sites, need 4)", n))
	}
	if n := m.CoreGirthCount(); n < 2 {
		missing = append(missing, fmt.Sprintf("girths (%d of 3 core sites, need 2)", n))
	}
	if !m.HasCoreBreadths() {
		missing = append(missing, "breadths (humerus and femur required)")
	}
	return missing
}

// Compute fractionates the subject's body mass into the five Kerr
// components. When prerequisites are missing it returns an invalid
// result with all masses zeroed and the missing categories listed; it
// never returns a partially computed, silently wrong answer.
func Compute(m *model.RawMeasurement) model.FractionationResult {
	result := model.FractionationResult{}

	if missing := MissingData(m); len(missing) > 0 {
		result.MissingData = missing
		return result
	}

	h := m.HeightCm
	sf := &m.Skinfolds

	// Skin: Du Bois surface area times a fixed dermis layer. The one
	// component that is subject-geometric rather than Z-score based.
	surfaceCm2 := reference.DuBoisCoefficient *
		math.Pow(m.WeightKg, reference.DuBoisWeightExp) *
		math.Pow(h, reference.DuBoisHeightExp)
	skinKg := surfaceCm2 * (reference.DermisThicknessMm / 10) * reference.DermisDensity / 1000

	// Adipose: six skinfolds.
	adiposeZ, adiposeOK := meanZ([]*float64{
		PhantomZ(model.Value(sf.Triceps), h, reference.PhantomSkinfolds["triceps"]),
		PhantomZ(model.Value(sf.Subscapular), h, reference.PhantomSkinfolds["subscapular"]),
		PhantomZ(model.Value(sf.Supraspinal), h, reference.PhantomSkinfolds["supraspinal"]),
		PhantomZ(model.Value(sf.Abdominal), h, reference.PhantomSkinfolds["abdominal"]),
		PhantomZ(model.Value(sf.Thigh), h, reference.PhantomSkinfolds["thigh"]),
		PhantomZ(model.Value(sf.Calf), h, reference.PhantomSkinfolds["calf"]),
	})

	// Muscle: girths corrected for the subcutaneous fat layer before
	// scoring, plus the uncorrected forearm when present.
	muscleZ, muscleOK := meanZ([]*float64{
		correctedGirthZ(m.Girths.FlexedArm, sf.Triceps, h, reference.PhantomCorrectedGirths["flexed_arm"]),
		correctedGirthZ(m.Girths.Thigh, sf.Thigh, h, reference.PhantomCorrectedGirths["thigh"]),
		correctedGirthZ(m.Girths.Calf, sf.Calf, h, reference.PhantomCorrectedGirths["calf"]),
		PhantomZ(model.Value(m.Girths.Forearm), h, reference.PhantomGirths["forearm"]),
	})

	// Bone: humerus and femur (guaranteed present by the gate) plus the
	// optional small-caliper and trunk breadths.
	boneZ, boneOK := meanZ([]*float64{
		PhantomZ(model.Value(m.Breadths.Humerus), h, reference.PhantomBreadths["humerus"]),
		PhantomZ(model.Value(m.Breadths.Femur), h, reference.PhantomBreadths["femur"]),
		PhantomZ(model.Value(m.Breadths.Wrist), h, reference.PhantomBreadths["wrist"]),
		PhantomZ(model.Value(m.Breadths.Ankle), h, reference.PhantomBreadths["ankle"]),
		PhantomZ(model.Value(m.Breadths.Biacromial), h, reference.PhantomBreadths["biacromial"]),
		PhantomZ(model.Value(m.Breadths.Biiliocristal), h, reference.PhantomBreadths["biiliocristal"]),
	})

	// Residual: prefer direct head or trunk measurements. Falling back
	// to the mean of the other components is materially weaker, so the
	// flag must reach the caller.
	residualZ, residualDirect := meanZ([]*float64{
		PhantomZ(model.Value(m.HeadCircumferenceCm), h, reference.PhantomGirths["head"]),
		PhantomZ(model.Value(m.Breadths.Biacromial), h, reference.PhantomBreadths["biacromial"]),
		PhantomZ(model.Value(m.Breadths.Biiliocristal), h, reference.PhantomBreadths["biiliocristal"]),
	})
	if !residualDirect {
		residualZ = (adiposeZ + muscleZ + boneZ) / 3
	}

	// Convert mean Z-scores back into kilograms at the subject's
	// stature, then force the five to balance against measured weight.
	scale3 := math.Pow(h/reference.PhantomHeightCm, 3)
	adiposeKg := massFromZ(adiposeZ, reference.PhantomComponentMasses["adipose"], scale3)
	muscleKg := massFromZ(muscleZ, reference.PhantomComponentMasses["muscle"], scale3)
	boneKg := massFromZ(boneZ, reference.PhantomComponentMasses["bone"], scale3)
	residualKg := massFromZ(residualZ, reference.PhantomComponentMasses["residual"], scale3)

	rawSum := skinKg + adiposeKg + muscleKg + boneKg + residualKg
	deviation := math.Abs(rawSum-m.WeightKg) / m.WeightKg * 100
	balance := m.WeightKg / rawSum

	result.Valid = true
	result.Skin = componentMass(skinKg*balance, m.WeightKg)
	result.Adipose = componentMass(adiposeKg*balance, m.WeightKg)
	result.Muscle = componentMass(muscleKg*balance, m.WeightKg)
	result.Bone = componentMass(boneKg*balance, m.WeightKg)
	result.Residual = componentMass(residualKg*balance, m.WeightKg)
	result.PreScaleDeviationPercent = deviation
	result.ResidualEstimated = !residualDirect

	result.ZScores = model.ZScores{}
	if adiposeOK {
		result.ZScores.Adipose = ptr(adiposeZ)
	}
	if muscleOK {
		result.ZScores.Muscle = ptr(muscleZ)
	}
	if boneOK {
		result.ZScores.Bone = ptr(boneZ)
	}
	result.ZScores.Residual = ptr(residualZ)

	// Lipid fat and equivalent density for cross-comparison with the
	// two-component tiers.
	result.LipidFatPercent = result.Adipose.Percent * LipidFractionOfAdipose
	result.BodyDensity = density.InverseSiriDensity(result.LipidFatPercent)

	if model.Present(m.SittingHeightCm) {
		result.Cormic = cormic(*m.SittingHeightCm, h)
	}

	result.Findings = findings(m, deviation)
	return result
}

// correctedGirthZ scores a girth after removing the subcutaneous fat
// layer: correctedGirth = girth − π × (skinfold mm / 10). Both the girth
// and its paired skinfold must be present; otherwise the site is
// excluded from the muscle mean.
func correctedGirthZ(girth, skinfold *float64, heightCm float64, ref reference.SiteReference) *float64 {
	if !model.Present(girth) || !model.Present(skinfold) {
		return nil
	}
	corrected := *girth - math.Pi*(*skinfold/10)
	return PhantomZ(corrected, heightCm, ref)
}

// massFromZ converts a component's mean Z-score to kilograms:
// max(0, z×sd + mean) scaled geometrically to the subject's stature.
func massFromZ(z float64, ref reference.SiteReference, scale3 float64) float64 {
	return math.Max(0, z*ref.SD+ref.Mean) * scale3
}

func componentMass(kg, weightKg float64) model.ComponentMass {
	return model.ComponentMass{Kg: kg, Percent: kg / weightKg * 100}
}

func cormic(sittingHeightCm, heightCm float64) *model.CormicResult {
	index := sittingHeightCm / heightCm * 100
	class := model.CormicMacrocormic
	switch {
	case index < reference.CormicBrachycormicMax:
		class = model.CormicBrachycormic
	case index < reference.CormicMetriocormicMax:
		class = model.CormicMetriocormic
	}
	return &model.CormicResult{Index: index, Class: class}
}

// findings collects the model-fit and precision findings for a valid
// fractionation.
func findings(m *model.RawMeasurement, deviation float64) []model.Finding {
	var fs []model.Finding

	if deviation > reference.MassDeviationWarnPercent {
		fs = append(fs, model.Finding{
			Code:     "phantom_deviation_high",
			Kind:     model.KindModelDeviation,
			Severity: model.SeverityWarning,
			Field:    "weight_kg",
			Value:    deviation,
			Bound:    fmt.Sprintf("<= %g%% pre-scaling deviation", float64(reference.MassDeviationWarnPercent)),
			Message: fmt.Sprintf("raw Phantom components deviate %.1f%% from measured weight before rescaling; the model fits this subject poorly",
				deviation),
			Recommendation: "Verify the measurements; the balanced output may mask a recording error.",
		})
	}

	sum := coreSkinfoldSum(m)
	switch {
	case sum > reference.FractionObesityWarnMm:
		fs = append(fs, model.Finding{
			Code:     "skinfold_sum_obesity",
			Kind:     model.KindUnusual,
			Severity: model.SeverityWarning,
			Field:    "skinfolds_mm",
			Value:    sum,
			Bound:    fmt.Sprintf("<= %g mm", float64(reference.FractionObesityWarnMm)),
			Message: fmt.Sprintf("core skinfold sum %.1f mm exceeds %d mm; fractionation precision degrades at this adiposity",
				sum, int(reference.FractionObesityWarnMm)),
			Recommendation: "Consider a density-based or clinical estimate alongside the fractionation.",
		})
	case sum > reference.FractionObesityNoteMm:
		fs = append(fs, model.Finding{
			Code:     "skinfold_sum_elevated",
			Kind:     model.KindUnusual,
			Severity: model.SeverityInfo,
			Field:    "skinfolds_mm",
			Value:    sum,
			Message: fmt.Sprintf("core skinfold sum %.1f mm is elevated; interpret adipose mass with care", sum),
		})
	}

	return fs
}

// coreSkinfoldSum sums the six adipose-model skinfolds that are present.
func coreSkinfoldSum(m *model.RawMeasurement) float64 {
	var sum float64
	for _, v := range []*float64{
		m.Skinfolds.Triceps, m.Skinfolds.Subscapular, m.Skinfolds.Supraspinal,
		m.Skinfolds.Abdominal, m.Skinfolds.Thigh, m.Skinfolds.Calf,
	} {
		if model.Present(v) {
			sum += *v
		}
	}
	return sum
}

func ptr(v float64) *float64 { return &v }

package router

import (
	"io"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/anthrokit/anthrokit/internal/model"
)

// f64 returns a pointer to the given value, for optional measurement fields.
func f64(v float64) *float64 { return &v }

// discardLogger returns a logger that drops everything.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// tier1Record returns a record satisfying the full fractionation battery.
func tier1Record() model.RawMeasurement {
	return model.RawMeasurement{
		Sex:      model.SexMale,
		AgeYears: 30,
		WeightKg: 70,
		HeightCm: 175,
		Skinfolds: model.Skinfolds{
			Triceps:     f64(10),
			Subscapular: f64(12),
			Biceps:      f64(5),
			Suprailiac:  f64(14),
			Supraspinal: f64(8),
			Abdominal:   f64(18),
			Thigh:       f64(14),
			Calf:        f64(9),
		},
		Girths: model.Girths{
			FlexedArm: f64(32),
			Forearm:   f64(27),
			Thigh:     f64(55),
			Calf:      f64(37),
		},
		Breadths: model.Breadths{
			Humerus: f64(7.0),
			Femur:   f64(9.5),
		},
		HeadCircumferenceCm: f64(56),
	}
}

// TestRoute tests tier selection down the degradation chain.
func TestRoute(t *testing.T) {
	t.Parallel()

	r := New(WithLogger(discardLogger()))

	t.Run("full battery runs the five component tier", func(t *testing.T) {
		t.Parallel()

		m := tier1Record()
		got := r.Route(&m)

		if !got.Valid {
			t.Fatalf("expected valid result, got %+v", got)
		}
		if got.Tier != model.TierFiveComponent {
			t.Errorf("Tier = %v, want five_component", got.Tier)
		}
		if got.Confidence != 95 {
			t.Errorf("Confidence = %d, want 95", got.Confidence)
		}
		if got.Downgraded {
			t.Error("first tier success must not be marked downgraded")
		}
		if got.Fractionation == nil {
			t.Error("five component tier must attach the fractionation")
		}
		if math.Abs(got.FatMassKg+got.LeanMassKg-70) > 1e-9 {
			t.Errorf("fat %f + lean %f should equal body mass", got.FatMassKg, got.LeanMassKg)
		}
	})

	t.Run("four skinfolds route to tier two", func(t *testing.T) {
		t.Parallel()

		m := model.RawMeasurement{
			Sex:      model.SexFemale,
			AgeYears: 28,
			WeightKg: 60,
			HeightCm: 165,
			Skinfolds: model.Skinfolds{
				Triceps:     f64(16),
				Biceps:      f64(8),
				Subscapular: f64(13),
				Suprailiac:  f64(17),
			},
		}

		got := r.Route(&m)
		if !got.Valid {
			t.Fatalf("expected valid result, got %+v", got)
		}
		if got.Tier != model.TierFourSkinfold {
			t.Errorf("Tier = %v, want four_skinfold", got.Tier)
		}
		if !got.Downgraded {
			t.Error("skipping tier one must mark the result downgraded")
		}
		if len(got.DowngradeReasons) != 1 {
			t.Errorf("DowngradeReasons = %v, want one entry", got.DowngradeReasons)
		}
		if got.Composition == nil {
			t.Error("density tiers must attach the composition")
		}
	})

	t.Run("two skinfolds route to the rapid tier", func(t *testing.T) {
		t.Parallel()

		m := model.RawMeasurement{
			Sex:      model.SexMale,
			AgeYears: 25,
			WeightKg: 72,
			HeightCm: 180,
			Skinfolds: model.Skinfolds{
				Thigh:       f64(12),
				Subscapular: f64(14),
			},
		}

		got := r.Route(&m)
		if !got.Valid {
			t.Fatalf("expected valid result, got %+v", got)
		}
		if got.Tier != model.TierRapid {
			t.Errorf("Tier = %v, want rapid_two_skinfold", got.Tier)
		}
		if got.Confidence != 60 {
			t.Errorf("Confidence = %d, want 60", got.Confidence)
		}
		if len(got.DowngradeReasons) != 2 {
			t.Errorf("DowngradeReasons = %v, want two entries", got.DowngradeReasons)
		}
	})

	t.Run("basics alone fall to the BMI tier", func(t *testing.T) {
		t.Parallel()

		m := model.RawMeasurement{
			Sex:      model.SexMale,
			AgeYears: 30,
			WeightKg: 70,
			HeightCm: 175,
		}

		got := r.Route(&m)
		if !got.Valid {
			t.Fatalf("expected valid result, got %+v", got)
		}
		if got.Tier != model.TierBMI {
			t.Errorf("Tier = %v, want bmi_only", got.Tier)
		}

		// 1.20×22.857 + 0.23×30 − 10.8 − 5.4
		bmi := 70 / (1.75 * 1.75)
		want := 1.20*bmi + 0.23*30 - 10.8 - 5.4
		if math.Abs(got.FatPercent-want) > 1e-9 {
			t.Errorf("FatPercent = %f, want %f", got.FatPercent, want)
		}
		if len(got.DowngradeReasons) != 3 {
			t.Errorf("DowngradeReasons = %v, want three entries", got.DowngradeReasons)
		}
	})

	t.Run("compressed skinfolds skip tier one with an explicit reason", func(t *testing.T) {
		t.Parallel()

		m := tier1Record()
		m.Skinfolds = model.Skinfolds{
			Triceps:     f64(30),
			Subscapular: f64(30),
			Biceps:      f64(30),
			Suprailiac:  f64(30),
			Supraspinal: f64(30),
			Abdominal:   f64(30),
			Thigh:       f64(30),
			Calf:        f64(30),
		}

		got := r.Route(&m)
		if !got.Valid {
			t.Fatalf("expected valid result, got %+v", got)
		}
		if got.Tier != model.TierFourSkinfold {
			t.Errorf("Tier = %v, want four_skinfold", got.Tier)
		}
		if len(got.DowngradeReasons) != 1 || !strings.Contains(got.DowngradeReasons[0], "skinfold sum") {
			t.Errorf("DowngradeReasons = %v, want a skinfold sum reason", got.DowngradeReasons)
		}
	})

	t.Run("implausible density falls through to the next tier", func(t *testing.T) {
		t.Parallel()

		m := model.RawMeasurement{
			Sex:      model.SexMale,
			AgeYears: 40,
			WeightKg: 160,
			HeightCm: 180,
			Skinfolds: model.Skinfolds{
				Thigh:       f64(80),
				Subscapular: f64(80),
			},
		}

		got := r.Route(&m)
		if !got.Valid {
			t.Fatalf("expected valid result, got %+v", got)
		}
		if got.Tier != model.TierBMI {
			t.Errorf("Tier = %v, want bmi_only after the rapid tier failed", got.Tier)
		}

		found := false
		for _, reason := range got.DowngradeReasons {
			if strings.Contains(reason, "implausible") {
				found = true
			}
		}
		if !found {
			t.Errorf("expected an implausible density reason, got %v", got.DowngradeReasons)
		}
	})

	t.Run("exhausted chain returns tier none", func(t *testing.T) {
		t.Parallel()

		m := model.RawMeasurement{Sex: model.SexMale}
		got := r.Route(&m)

		if got.Valid {
			t.Error("expected invalid result")
		}
		if got.Tier != model.TierNone {
			t.Errorf("Tier = %v, want none", got.Tier)
		}

		found := false
		for _, f := range got.Findings {
			if f.Code == "no_tier_calculable" && f.Severity == model.SeverityError {
				found = true
			}
		}
		if !found {
			t.Errorf("expected no_tier_calculable error, got %+v", got.Findings)
		}
	})

	t.Run("every skipped tier leaves a downgrade finding", func(t *testing.T) {
		t.Parallel()

		m := model.RawMeasurement{
			Sex:      model.SexMale,
			AgeYears: 30,
			WeightKg: 70,
			HeightCm: 175,
		}
		got := r.Route(&m)

		downgrades := 0
		for _, f := range got.Findings {
			if f.Code == "tier_downgrade" {
				downgrades++
			}
		}
		if downgrades != 3 {
			t.Errorf("expected 3 tier_downgrade findings, got %d", downgrades)
		}
	})
}

// stubStrategy lets tests control the chain directly.
type stubStrategy struct {
	tier    model.Tier
	attempt bool
	valid   bool
}

func (s stubStrategy) Tier() model.Tier { return s.tier }

func (s stubStrategy) CanAttempt(_ *model.RawMeasurement) (bool, string) {
	if !s.attempt {
		return false, "stubbed out"
	}
	return true, ""
}

func (s stubStrategy) Compute(_ *model.RawMeasurement) tierResult {
	if !s.valid {
		return tierResult{reason: "stub failure"}
	}
	return tierResult{valid: true, fatPercent: 20}
}

// TestRouteCustomChain tests that WithStrategies replaces the chain and
// preserves order.
func TestRouteCustomChain(t *testing.T) {
	t.Parallel()

	r := New(
		WithLogger(discardLogger()),
		WithStrategies(
			stubStrategy{tier: model.TierFiveComponent, attempt: true, valid: false},
			stubStrategy{tier: model.TierRapid, attempt: true, valid: true},
		),
	)

	m := model.RawMeasurement{Sex: model.SexMale, AgeYears: 30, WeightKg: 70, HeightCm: 175}
	got := r.Route(&m)

	if !got.Valid {
		t.Fatalf("expected valid result, got %+v", got)
	}
	if got.Tier != model.TierRapid {
		t.Errorf("Tier = %v, want the second strategy's tier", got.Tier)
	}
	if !got.Downgraded {
		t.Error("a failed first strategy must mark the result downgraded")
	}
	if got.FatPercent != 20 {
		t.Errorf("FatPercent = %f, want 20", got.FatPercent)
	}
}

// TestForTier tests the standalone strategy lookup.
func TestForTier(t *testing.T) {
	t.Parallel()

	for _, tier := range []model.Tier{
		model.TierFiveComponent,
		model.TierFourSkinfold,
		model.TierRapid,
		model.TierBMI,
	} {
		s, ok := ForTier(tier)
		if !ok {
			t.Errorf("ForTier(%v) should succeed", tier)
			continue
		}
		if s.Tier() != tier {
			t.Errorf("ForTier(%v).Tier() = %v", tier, s.Tier())
		}
	}

	if _, ok := ForTier(model.TierNone); ok {
		t.Error("ForTier(TierNone) should fail")
	}
}

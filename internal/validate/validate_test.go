package validate

import (
	"reflect"
	"testing"

	"github.com/anthrokit/anthrokit/internal/model"
)

// f64 returns a pointer to the given value, for optional measurement fields.
func f64(v float64) *float64 { return &v }

// basicsOnly returns a record with plausible basics and nothing else.
func basicsOnly() model.RawMeasurement {
	return model.RawMeasurement{
		Sex:      model.SexMale,
		AgeYears: 30,
		WeightKg: 75,
		HeightCm: 178,
	}
}

// hasCode reports whether the outcome contains a finding with the code.
func hasCode(out model.ValidationOutcome, code string) bool {
	for _, f := range out.All() {
		if f.Code == code {
			return true
		}
	}
	return false
}

// TestCheckBasics tests required-field and sex validation.
func TestCheckBasics(t *testing.T) {
	t.Parallel()

	t.Run("plausible basics pass clean", func(t *testing.T) {
		t.Parallel()

		m := basicsOnly()
		out := Check(&m)

		if !out.Valid() {
			t.Errorf("expected valid outcome, got errors: %+v", out.Errors)
		}
		if len(out.Warnings) != 0 {
			t.Errorf("expected no warnings, got %+v", out.Warnings)
		}
	})

	t.Run("missing weight is an error", func(t *testing.T) {
		t.Parallel()

		m := basicsOnly()
		m.WeightKg = 0
		out := Check(&m)

		if out.Valid() {
			t.Error("expected invalid outcome")
		}
		if !hasCode(out, "weight_kg_missing") {
			t.Errorf("expected weight_kg_missing, got %+v", out.Errors)
		}
	})

	t.Run("unknown sex is an error", func(t *testing.T) {
		t.Parallel()

		m := basicsOnly()
		m.Sex = ""
		out := Check(&m)

		if !hasCode(out, "sex_missing") {
			t.Errorf("expected sex_missing, got %+v", out.Errors)
		}
	})
}

// TestCheckBounds tests the two-band envelope.
func TestCheckBounds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		mutate   func(m *model.RawMeasurement)
		wantCode string
		wantErr  bool
	}{
		{
			name:     "weight below hard minimum",
			mutate:   func(m *model.RawMeasurement) { m.WeightKg = 15 },
			wantCode: "weight_kg_below_min",
			wantErr:  true,
		},
		{
			name:     "weight above hard maximum",
			mutate:   func(m *model.RawMeasurement) { m.WeightKg = 450 },
			wantCode: "weight_kg_above_max",
			wantErr:  true,
		},
		{
			name:     "weight outside usual band warns only",
			mutate:   func(m *model.RawMeasurement) { m.WeightKg = 28 },
			wantCode: "weight_kg_unusual",
			wantErr:  false,
		},
		{
			name:     "height outside usual band warns only",
			mutate:   func(m *model.RawMeasurement) { m.HeightCm = 230 },
			wantCode: "height_cm_unusual",
			wantErr:  false,
		},
		{
			name:     "skinfold above hard maximum",
			mutate:   func(m *model.RawMeasurement) { m.Skinfolds.Triceps = f64(95) },
			wantCode: "skinfolds_mm.triceps_above_max",
			wantErr:  true,
		},
		{
			name:     "measured zero skinfold is an error",
			mutate:   func(m *model.RawMeasurement) { m.Skinfolds.Calf = f64(0) },
			wantCode: "skinfolds_mm.calf_not_positive",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := basicsOnly()
			tt.mutate(&m)
			out := Check(&m)

			if !hasCode(out, tt.wantCode) {
				t.Fatalf("expected finding %q, got %+v", tt.wantCode, out.All())
			}
			if tt.wantErr && out.Valid() {
				t.Error("expected outcome to be invalid")
			}
			if !tt.wantErr && !out.Valid() {
				t.Errorf("expected outcome to stay valid, got errors %+v", out.Errors)
			}
		})
	}

	t.Run("absent optional sites are not findings", func(t *testing.T) {
		t.Parallel()

		m := basicsOnly()
		out := Check(&m)

		if len(out.All()) != 0 {
			t.Errorf("expected no findings for absent optionals, got %+v", out.All())
		}
	})
}

// TestCheckDeterministic tests that identical input yields identically
// ordered findings across repeated calls.
func TestCheckDeterministic(t *testing.T) {
	t.Parallel()

	// Every optional site below its hard minimum, so the outcome carries
	// findings from all three measurement groups at once.
	build := func() model.RawMeasurement {
		m := basicsOnly()
		m.Skinfolds = model.Skinfolds{
			Triceps:     f64(0.1),
			Subscapular: f64(0.1),
			Biceps:      f64(0.1),
			Suprailiac:  f64(0.1),
			Supraspinal: f64(0.1),
			Abdominal:   f64(0.1),
			Thigh:       f64(0.1),
			Calf:        f64(0.1),
		}
		m.Girths = model.Girths{
			FlexedArm: f64(0.1),
			Forearm:   f64(0.1),
			Waist:     f64(0.1),
			Hip:       f64(0.1),
			Thigh:     f64(0.1),
			Calf:      f64(0.1),
		}
		m.Breadths = model.Breadths{
			Humerus:       f64(0.1),
			Femur:         f64(0.1),
			Wrist:         f64(0.1),
			Ankle:         f64(0.1),
			Biacromial:    f64(0.1),
			Biiliocristal: f64(0.1),
		}
		return m
	}

	m := build()
	first := Check(&m)
	if got := len(first.All()); got < 20 {
		t.Fatalf("expected at least 20 findings to compare, got %d", got)
	}

	for i := 0; i < 50; i++ {
		n := build()
		if got := Check(&n); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d produced a differently ordered outcome:\ngot  %+v\nwant %+v", i, got, first)
		}
	}
}

// TestCheckAnatomy tests the cross-field consistency rules.
func TestCheckAnatomy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		mutate   func(m *model.RawMeasurement)
		wantCode string
	}{
		{
			name: "waist narrower than flexed arm",
			mutate: func(m *model.RawMeasurement) {
				m.Girths.Waist = f64(28)
				m.Girths.FlexedArm = f64(33)
			},
			wantCode: "waist_below_flexed_arm",
		},
		{
			name: "thigh equal to calf",
			mutate: func(m *model.RawMeasurement) {
				m.Girths.Thigh = f64(37)
				m.Girths.Calf = f64(37)
			},
			wantCode: "thigh_not_above_calf",
		},
		{
			name: "femur narrower than humerus",
			mutate: func(m *model.RawMeasurement) {
				m.Breadths.Femur = f64(6.5)
				m.Breadths.Humerus = f64(7.2)
			},
			wantCode: "femur_below_humerus",
		},
		{
			name: "sitting height at stature",
			mutate: func(m *model.RawMeasurement) {
				m.SittingHeightCm = f64(178)
			},
			wantCode: "sitting_height_above_stature",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := basicsOnly()
			tt.mutate(&m)
			out := Check(&m)

			if !hasCode(out, tt.wantCode) {
				t.Fatalf("expected finding %q, got %+v", tt.wantCode, out.All())
			}
			if out.Valid() {
				t.Error("anatomical contradictions must invalidate the record")
			}
		})
	}

	t.Run("consistent sites pass", func(t *testing.T) {
		t.Parallel()

		m := basicsOnly()
		m.Girths.Waist = f64(82)
		m.Girths.FlexedArm = f64(33)
		m.Girths.Thigh = f64(55)
		m.Girths.Calf = f64(37)
		m.Breadths.Humerus = f64(7.0)
		m.Breadths.Femur = f64(9.6)
		m.SittingHeightCm = f64(92)

		out := Check(&m)
		if !out.Valid() {
			t.Errorf("expected valid outcome, got errors %+v", out.Errors)
		}
	})

	t.Run("extreme skinfold sum warns on compressibility", func(t *testing.T) {
		t.Parallel()

		m := basicsOnly()
		m.Skinfolds = model.Skinfolds{
			Triceps:     f64(40),
			Subscapular: f64(40),
			Biceps:      f64(25),
			Suprailiac:  f64(40),
			Supraspinal: f64(35),
			Abdominal:   f64(40),
			Thigh:       f64(40),
			Calf:        f64(35),
		}

		out := Check(&m)
		if !hasCode(out, "skinfold_sum_compressibility") {
			t.Errorf("expected skinfold_sum_compressibility, got %+v", out.All())
		}
		if !out.Valid() {
			t.Errorf("compressibility alone must not invalidate, got errors %+v", out.Errors)
		}
	})
}

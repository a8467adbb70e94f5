package model

import (
	"math"
	"testing"
)

// f64 returns a pointer to the given value, for optional measurement fields.
func f64(v float64) *float64 { return &v }

// TestSeverityString tests the severity string representation.
func TestSeverityString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		severity Severity
		want     string
	}{
		{name: "info", severity: SeverityInfo, want: "INFO"},
		{name: "warning", severity: SeverityWarning, want: "WARNING"},
		{name: "error", severity: SeverityError, want: "ERROR"},
		{name: "critical", severity: SeverityCritical, want: "CRITICAL"},
		{name: "unknown", severity: Severity(99), want: "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.severity.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestSeverityBlocking tests that only errors and above block.
func TestSeverityBlocking(t *testing.T) {
	t.Parallel()

	if SeverityInfo.Blocking() {
		t.Error("info should not block")
	}
	if SeverityWarning.Blocking() {
		t.Error("warning should not block")
	}
	if !SeverityError.Blocking() {
		t.Error("error should block")
	}
	if !SeverityCritical.Blocking() {
		t.Error("critical should block")
	}
}

// TestValidationOutcome tests error/warning routing and validity.
func TestValidationOutcome(t *testing.T) {
	t.Parallel()

	t.Run("empty outcome is valid", func(t *testing.T) {
		t.Parallel()

		var out ValidationOutcome
		if !out.Valid() {
			t.Error("expected empty outcome to be valid")
		}
	})

	t.Run("warning keeps outcome valid", func(t *testing.T) {
		t.Parallel()

		var out ValidationOutcome
		out.Add(Finding{Code: "x", Severity: SeverityWarning})

		if !out.Valid() {
			t.Error("expected outcome with only warnings to be valid")
		}
		if len(out.Warnings) != 1 || len(out.Errors) != 0 {
			t.Errorf("expected 1 warning and 0 errors, got %d/%d", len(out.Warnings), len(out.Errors))
		}
	})

	t.Run("error invalidates outcome", func(t *testing.T) {
		t.Parallel()

		var out ValidationOutcome
		out.Add(Finding{Code: "x", Severity: SeverityError})

		if out.Valid() {
			t.Error("expected outcome with errors to be invalid")
		}
	})

	t.Run("All returns errors before warnings", func(t *testing.T) {
		t.Parallel()

		var out ValidationOutcome
		out.Add(Finding{Code: "w", Severity: SeverityWarning})
		out.Add(Finding{Code: "e", Severity: SeverityError})

		all := out.All()
		if len(all) != 2 {
			t.Fatalf("expected 2 findings, got %d", len(all))
		}
		if all[0].Code != "e" || all[1].Code != "w" {
			t.Errorf("expected error first, got %q then %q", all[0].Code, all[1].Code)
		}
	})
}

// TestTier tests tier identifiers, labels and base confidence ordering.
func TestTier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		tier       Tier
		wantString string
		confidence int
	}{
		{name: "none", tier: TierNone, wantString: "none", confidence: 0},
		{name: "five component", tier: TierFiveComponent, wantString: "five_component", confidence: 95},
		{name: "four skinfold", tier: TierFourSkinfold, wantString: "four_skinfold", confidence: 80},
		{name: "rapid", tier: TierRapid, wantString: "rapid_two_skinfold", confidence: 60},
		{name: "bmi", tier: TierBMI, wantString: "bmi_only", confidence: 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.tier.String(); got != tt.wantString {
				t.Errorf("String() = %q, want %q", got, tt.wantString)
			}
			if got := tt.tier.Confidence(); got != tt.confidence {
				t.Errorf("Confidence() = %d, want %d", got, tt.confidence)
			}
			if tt.tier.Label() == "" {
				t.Error("Label() should not be empty")
			}
		})
	}

	t.Run("confidence decreases down the chain", func(t *testing.T) {
		t.Parallel()

		chain := []Tier{TierFiveComponent, TierFourSkinfold, TierRapid, TierBMI}
		for i := 1; i < len(chain); i++ {
			if chain[i].Confidence() >= chain[i-1].Confidence() {
				t.Errorf("tier %s confidence %d should be below %s's %d",
					chain[i], chain[i].Confidence(), chain[i-1], chain[i-1].Confidence())
			}
		}
	})

	t.Run("parse round trips every calculable tier", func(t *testing.T) {
		t.Parallel()

		for _, tier := range []Tier{TierFiveComponent, TierFourSkinfold, TierRapid, TierBMI} {
			got, ok := ParseTier(tier.String())
			if !ok || got != tier {
				t.Errorf("ParseTier(%q) = %v, %v; want %v, true", tier.String(), got, ok, tier)
			}
		}
	})

	t.Run("parse rejects none and unknown identifiers", func(t *testing.T) {
		t.Parallel()

		for _, s := range []string{"none", "", "tier1", "five component"} {
			if _, ok := ParseTier(s); ok {
				t.Errorf("ParseTier(%q) should fail", s)
			}
		}
	})
}

// TestRawMeasurementBMI tests BMI calculation.
func TestRawMeasurementBMI(t *testing.T) {
	t.Parallel()

	t.Run("computes kg per square meter", func(t *testing.T) {
		t.Parallel()

		m := RawMeasurement{WeightKg: 70, HeightCm: 175}
		want := 70 / (1.75 * 1.75)
		if got := m.BMI(); math.Abs(got-want) > 1e-9 {
			t.Errorf("BMI() = %f, want %f", got, want)
		}
	})

	t.Run("returns zero for non-positive height", func(t *testing.T) {
		t.Parallel()

		m := RawMeasurement{WeightKg: 70}
		if got := m.BMI(); got != 0 {
			t.Errorf("BMI() = %f, want 0", got)
		}
	})
}

// TestRawMeasurementHelpers tests the presence counting helpers.
func TestRawMeasurementHelpers(t *testing.T) {
	t.Parallel()

	t.Run("HasBasics requires all three positives", func(t *testing.T) {
		t.Parallel()

		m := RawMeasurement{WeightKg: 70, HeightCm: 175, AgeYears: 30}
		if !m.HasBasics() {
			t.Error("expected basics to be present")
		}

		m.AgeYears = 0
		if m.HasBasics() {
			t.Error("expected missing age to fail basics")
		}
	})

	t.Run("SkinfoldSum ignores absent sites", func(t *testing.T) {
		t.Parallel()

		m := RawMeasurement{
			Skinfolds: Skinfolds{Triceps: f64(10), Calf: f64(8)},
		}
		if got := m.SkinfoldSum(); got != 18 {
			t.Errorf("SkinfoldSum() = %f, want 18", got)
		}
	})

	t.Run("CoreSkinfoldCount excludes biceps and suprailiac", func(t *testing.T) {
		t.Parallel()

		m := RawMeasurement{
			Skinfolds: Skinfolds{
				Triceps:    f64(10),
				Biceps:     f64(5),
				Suprailiac: f64(12),
				Abdominal:  f64(20),
			},
		}
		// Only triceps and abdominal are core adipose sites here.
		if got := m.CoreSkinfoldCount(); got != 2 {
			t.Errorf("CoreSkinfoldCount() = %d, want 2", got)
		}
	})

	t.Run("CoreGirthCount counts flexed arm thigh calf", func(t *testing.T) {
		t.Parallel()

		m := RawMeasurement{
			Girths: Girths{FlexedArm: f64(32), Waist: f64(80), Calf: f64(37)},
		}
		if got := m.CoreGirthCount(); got != 2 {
			t.Errorf("CoreGirthCount() = %d, want 2", got)
		}
	})

	t.Run("HasCoreBreadths needs humerus and femur", func(t *testing.T) {
		t.Parallel()

		m := RawMeasurement{Breadths: Breadths{Humerus: f64(7)}}
		if m.HasCoreBreadths() {
			t.Error("expected missing femur to fail core breadths")
		}

		m.Breadths.Femur = f64(9.5)
		if !m.HasCoreBreadths() {
			t.Error("expected both breadths present to pass")
		}
	})

	t.Run("Present distinguishes absent from zero", func(t *testing.T) {
		t.Parallel()

		if Present(nil) {
			t.Error("nil should not be present")
		}
		if Present(f64(0)) {
			t.Error("measured zero should not count as present")
		}
		if !Present(f64(0.5)) {
			t.Error("positive value should be present")
		}
	})
}

// TestGracefulResultAddFinding tests duplicate suppression.
func TestGracefulResultAddFinding(t *testing.T) {
	t.Parallel()

	r := GracefulResult{}
	f := Finding{Code: "tier_downgrade", Field: "five_component", Severity: SeverityWarning}

	r.AddFinding(f)
	r.AddFinding(f)

	if len(r.Findings) != 1 {
		t.Errorf("expected duplicate to be suppressed, got %d findings", len(r.Findings))
	}

	// Different field is a different finding.
	f.Field = "four_skinfold"
	r.AddFinding(f)
	if len(r.Findings) != 2 {
		t.Errorf("expected 2 findings, got %d", len(r.Findings))
	}

	if got := r.CountBySeverity(SeverityWarning); got != 2 {
		t.Errorf("CountBySeverity(warning) = %d, want 2", got)
	}
	if got := r.CountBySeverity(SeverityCritical); got != 0 {
		t.Errorf("CountBySeverity(critical) = %d, want 0", got)
	}
}

// TestFractionationResultAccessors tests component mass lookup and total.
func TestFractionationResultAccessors(t *testing.T) {
	t.Parallel()

	r := FractionationResult{
		Skin:     ComponentMass{Kg: 3},
		Adipose:  ComponentMass{Kg: 15},
		Muscle:   ComponentMass{Kg: 28},
		Bone:     ComponentMass{Kg: 7},
		Residual: ComponentMass{Kg: 17},
	}

	if got := r.TotalKg(); got != 70 {
		t.Errorf("TotalKg() = %f, want 70", got)
	}
	if got := r.Mass(ComponentMuscle); got.Kg != 28 {
		t.Errorf("Mass(muscle).Kg = %f, want 28", got.Kg)
	}
	if got := r.Mass(Component("bogus")); got.Kg != 0 {
		t.Errorf("Mass(bogus).Kg = %f, want 0", got.Kg)
	}
}

// TestAssessmentValid tests the combined validity check.
func TestAssessmentValid(t *testing.T) {
	t.Parallel()

	t.Run("valid when all stages pass", func(t *testing.T) {
		t.Parallel()

		a := NewAssessment(RawMeasurement{PatientID: "p1"})
		a.Validation = &ValidationOutcome{}
		a.Result = &GracefulResult{Valid: true, Tier: TierBMI}
		a.Audit = &AuditReport{Valid: true, Confidence: 100}

		if !a.Valid() {
			t.Error("expected assessment to be valid")
		}
	})

	t.Run("invalid without result", func(t *testing.T) {
		t.Parallel()

		a := NewAssessment(RawMeasurement{})
		if a.Valid() {
			t.Error("expected assessment without result to be invalid")
		}
	})

	t.Run("audit failure invalidates", func(t *testing.T) {
		t.Parallel()

		a := NewAssessment(RawMeasurement{})
		a.Result = &GracefulResult{Valid: true}
		a.Audit = &AuditReport{Valid: false}

		if a.Valid() {
			t.Error("expected failed audit to invalidate assessment")
		}
	})
}

// TestAssessmentAllFindings tests gathering across stages.
func TestAssessmentAllFindings(t *testing.T) {
	t.Parallel()

	a := NewAssessment(RawMeasurement{})
	a.Validation = &ValidationOutcome{
		Warnings: []Finding{{Code: "v"}},
	}
	a.Result = &GracefulResult{Findings: []Finding{{Code: "r"}}}
	a.Audit = &AuditReport{Findings: []Finding{{Code: "a"}}}

	all := a.AllFindings()
	if len(all) != 3 {
		t.Fatalf("expected 3 findings, got %d", len(all))
	}
	if all[0].Code != "v" || all[1].Code != "r" || all[2].Code != "a" {
		t.Errorf("findings out of pipeline order: %v", all)
	}
}

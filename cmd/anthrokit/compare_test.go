package main

import (
	"bytes"
	"context"
	"math"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/anthrokit/anthrokit/internal/database"
	"github.com/anthrokit/anthrokit/internal/model"
)

// storedAssessment builds a saveable assessment for one patient.
func storedAssessment(patientID string, date time.Time, fatPercent float64) *model.Assessment {
	a := model.NewAssessment(model.RawMeasurement{
		PatientID: patientID,
		Sex:       model.SexMale,
		AgeYears:  30,
		WeightKg:  70,
		HeightCm:  175,
	})
	a.Date = date
	a.Validation = &model.ValidationOutcome{}
	a.Result = &model.GracefulResult{
		Valid:      true,
		Tier:       model.TierFourSkinfold,
		Confidence: 80,
		FatPercent: fatPercent,
		FatMassKg:  70 * fatPercent / 100,
		LeanMassKg: 70 - 70*fatPercent/100,
	}
	a.Audit = &model.AuditReport{Valid: true, Confidence: 100}
	return a
}

// seedHistory stores two assessments for p-1 and returns the db directory.
func seedHistory(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	db, err := database.Open(dir, database.DefaultOptions())
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	older := storedAssessment("p-1", time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC), 24)
	newer := storedAssessment("p-1", time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC), 22)
	for _, a := range []*model.Assessment{older, newer} {
		if _, err := db.SaveAssessment(ctx, a); err != nil {
			t.Fatalf("SaveAssessment() error: %v", err)
		}
	}
	return dir
}

// TestNewCompareCmd tests the compare command creation.
func TestNewCompareCmd(t *testing.T) {
	t.Parallel()

	cmd := NewCompareCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "compare [patient-id]" {
			t.Errorf("unexpected use %q", cmd.Use)
		}
	})

	t.Run("has history flags", func(t *testing.T) {
		t.Parallel()
		for _, name := range []string{"list", "list-patients", "with-id", "json", "db-dir"} {
			if cmd.Flags().Lookup(name) == nil {
				t.Errorf("expected %s flag", name)
			}
		}
	})
}

// TestRunCompareCmd tests comparison against a seeded history database.
func TestRunCompareCmd(t *testing.T) {
	t.Parallel()

	t.Run("compares the latest two assessments", func(t *testing.T) {
		t.Parallel()

		dir := seedHistory(t)

		var buf bytes.Buffer
		cmd := NewCompareCmd()
		cmd.SetOut(&buf)
		cmd.SetArgs([]string{"--db-dir", dir, "p-1"})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		out := buf.String()
		for _, want := range []string{
			"Comparison for p-1",
			"Previous",
			"Current",
			// Fat went from 24% to 22%.
			"Fat %  decreased by 2.0 points",
			"Weight unchanged by 0.0 kg",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q", want)
			}
		}
	})

	t.Run("json comparison parses", func(t *testing.T) {
		t.Parallel()

		dir := seedHistory(t)

		var buf bytes.Buffer
		cmd := NewCompareCmd()
		cmd.SetOut(&buf)
		cmd.SetArgs([]string{"--db-dir", dir, "--json", "p-1"})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		out := buf.String()
		if !strings.Contains(out, `"fat_percent_delta": -2`) {
			t.Errorf("expected the fat delta in JSON output, got %q", out)
		}
	})

	t.Run("lists assessment history", func(t *testing.T) {
		t.Parallel()

		dir := seedHistory(t)

		var buf bytes.Buffer
		cmd := NewCompareCmd()
		cmd.SetOut(&buf)
		cmd.SetArgs([]string{"--db-dir", dir, "--list", "p-1"})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		out := buf.String()
		if !strings.Contains(out, "Assessment history for p-1 (2 assessments)") {
			t.Errorf("expected the history header, got %q", out)
		}
		if !strings.Contains(out, "four_skinfold") {
			t.Errorf("expected the tier column, got %q", out)
		}
	})

	t.Run("lists patients", func(t *testing.T) {
		t.Parallel()

		dir := seedHistory(t)

		var buf bytes.Buffer
		cmd := NewCompareCmd()
		cmd.SetOut(&buf)
		cmd.SetArgs([]string{"--db-dir", dir, "--list-patients"})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "p-1") {
			t.Errorf("expected p-1 in the patient list, got %q", buf.String())
		}
	})

	t.Run("requires a patient id", func(t *testing.T) {
		t.Parallel()

		cmd := NewCompareCmd()
		cmd.SetOut(new(bytes.Buffer))
		cmd.SetErr(new(bytes.Buffer))
		cmd.SetArgs([]string{"--db-dir", t.TempDir()})

		err := cmd.Execute()
		if err == nil {
			t.Fatal("expected an error without a patient id")
		}
		if !strings.Contains(err.Error(), "patient ID is required") {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("missing database is a helpful error", func(t *testing.T) {
		t.Parallel()

		cmd := NewCompareCmd()
		cmd.SetOut(new(bytes.Buffer))
		cmd.SetErr(new(bytes.Buffer))
		cmd.SetArgs([]string{"--db-dir", filepath.Join(t.TempDir(), "nowhere"), "p-1"})

		err := cmd.Execute()
		if err == nil {
			t.Fatal("expected an error for a missing database")
		}
		if !strings.Contains(err.Error(), "assess --save") {
			t.Errorf("expected the save hint, got %v", err)
		}
	})

	t.Run("single assessment cannot be compared", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		db, err := database.Open(dir, database.DefaultOptions())
		if err != nil {
			t.Fatalf("Open() error: %v", err)
		}
		if _, err := db.SaveAssessment(context.Background(), storedAssessment("p-1", time.Now(), 20)); err != nil {
			t.Fatalf("SaveAssessment() error: %v", err)
		}
		_ = db.Close()

		cmd := NewCompareCmd()
		cmd.SetOut(new(bytes.Buffer))
		cmd.SetErr(new(bytes.Buffer))
		cmd.SetArgs([]string{"--db-dir", dir, "p-1"})

		err = cmd.Execute()
		if err == nil {
			t.Fatal("expected an error with a single assessment")
		}
		if !strings.Contains(err.Error(), "at least 2 assessments") {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

// TestBuildComparison tests delta computation.
func TestBuildComparison(t *testing.T) {
	t.Parallel()

	current := storedAssessment("p-1", time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC), 22)
	previous := storedAssessment("p-1", time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC), 24)
	previous.Result.Tier = model.TierBMI

	c := buildComparison("p-1", current, previous)

	if c.FatPercentDelta != -2 {
		t.Errorf("FatPercentDelta = %g, want -2", c.FatPercentDelta)
	}
	if math.Abs(c.FatMassDeltaKg-(-1.4)) > 1e-9 {
		t.Errorf("FatMassDeltaKg = %g, want -1.4", c.FatMassDeltaKg)
	}
	if math.Abs(c.LeanMassDeltaKg-1.4) > 1e-9 {
		t.Errorf("LeanMassDeltaKg = %g, want 1.4", c.LeanMassDeltaKg)
	}
	if c.WeightDeltaKg != 0 {
		t.Errorf("WeightDeltaKg = %g, want 0", c.WeightDeltaKg)
	}
	if !c.TierChanged {
		t.Error("TierChanged should be true across different tiers")
	}
}

// TestDirection tests delta sign labelling.
func TestDirection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		delta float64
		want  string
	}{
		{name: "positive", delta: 1.2, want: directionIncreased},
		{name: "negative", delta: -0.3, want: directionDecreased},
		{name: "noise stays unchanged", delta: 0.04, want: directionUnchanged},
		{name: "zero", delta: 0, want: directionUnchanged},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := direction(tt.delta); got != tt.want {
				t.Errorf("direction(%g) = %q, want %q", tt.delta, got, tt.want)
			}
		})
	}
}

// TestFormatFindingSummary tests the compact severity string.
func TestFormatFindingSummary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		summary map[string]int
		want    string
	}{
		{name: "nil", summary: nil, want: "N/A"},
		{name: "empty", summary: map[string]int{}, want: "none"},
		{name: "zero counts", summary: map[string]int{"warning": 0}, want: "none"},
		{name: "mixed", summary: map[string]int{"critical": 1, "warning": 2}, want: "C:1 W:2"},
		{name: "all severities", summary: map[string]int{"critical": 1, "error": 2, "warning": 3, "info": 4}, want: "C:1 E:2 W:3 I:4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := formatFindingSummary(tt.summary); got != tt.want {
				t.Errorf("formatFindingSummary() = %q, want %q", got, tt.want)
			}
		})
	}
}

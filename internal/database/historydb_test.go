package database

import (
	"context"
	"testing"
	"time"

	"github.com/anthrokit/anthrokit/internal/model"
)

// newTestDB opens a fresh database in a temp directory.
func newTestDB(t *testing.T) *HistoryDB {
	t.Helper()

	db, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// testAssessment builds a stored-shape assessment for one patient.
func testAssessment(patientID string, date time.Time, fatPercent float64) *model.Assessment {
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
		Findings: []model.Finding{{
			Code:     "tier_downgrade",
			Severity: model.SeverityWarning,
			Message:  "downgraded",
		}},
	}
	a.Audit = &model.AuditReport{Valid: true, Confidence: 100}
	return a
}

// TestOpen tests database creation policy.
func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates database when allowed", func(t *testing.T) {
		t.Parallel()

		db, err := Open(t.TempDir(), DefaultOptions())
		if err != nil {
			t.Fatalf("Open() error: %v", err)
		}
		defer db.Close()
	})

	t.Run("refuses to open a missing database", func(t *testing.T) {
		t.Parallel()

		opts := DefaultOptions()
		opts.CreateIfNotExists = false
		if _, err := Open(t.TempDir(), opts); err == nil {
			t.Error("expected an error for a missing database")
		}
	})

	t.Run("reopens an existing database", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		db, err := Open(dir, DefaultOptions())
		if err != nil {
			t.Fatalf("Open() error: %v", err)
		}
		if _, err := db.SaveAssessment(context.Background(), testAssessment("p1", time.Now(), 20)); err != nil {
			t.Fatalf("SaveAssessment() error: %v", err)
		}
		_ = db.Close()

		opts := DefaultOptions()
		opts.CreateIfNotExists = false
		reopened, err := Open(dir, opts)
		if err != nil {
			t.Fatalf("Open() reopen error: %v", err)
		}
		defer reopened.Close()

		latest, err := reopened.GetLatestAssessment(context.Background(), "p1")
		if err != nil {
			t.Fatalf("GetLatestAssessment() error: %v", err)
		}
		if latest == nil {
			t.Fatal("saved assessment should survive a reopen")
		}
	})
}

// TestSaveAndRetrieve tests the round trip through JSON storage.
func TestSaveAndRetrieve(t *testing.T) {
	t.Parallel()

	t.Run("round trips an assessment", func(t *testing.T) {
		t.Parallel()

		db := newTestDB(t)
		ctx := context.Background()

		saved := testAssessment("p1", time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC), 21.5)
		id, err := db.SaveAssessment(ctx, saved)
		if err != nil {
			t.Fatalf("SaveAssessment() error: %v", err)
		}
		if id <= 0 {
			t.Errorf("id = %d, want positive", id)
		}

		got, err := db.GetLatestAssessment(ctx, "p1")
		if err != nil {
			t.Fatalf("GetLatestAssessment() error: %v", err)
		}
		if got == nil {
			t.Fatal("expected the stored assessment")
		}
		if got.PatientID != "p1" {
			t.Errorf("PatientID = %q, want p1", got.PatientID)
		}
		if got.Result == nil || got.Result.FatPercent != 21.5 {
			t.Errorf("Result = %+v, want fat 21.5", got.Result)
		}
		if got.Result.Tier != model.TierFourSkinfold {
			t.Errorf("Tier = %v, want four_skinfold", got.Result.Tier)
		}
	})

	t.Run("unknown patient returns nil without error", func(t *testing.T) {
		t.Parallel()

		db := newTestDB(t)
		got, err := db.GetLatestAssessment(context.Background(), "nobody")
		if err != nil {
			t.Fatalf("GetLatestAssessment() error: %v", err)
		}
		if got != nil {
			t.Errorf("expected nil, got %+v", got)
		}
	})

	t.Run("missing patient id stores as anonymous", func(t *testing.T) {
		t.Parallel()

		db := newTestDB(t)
		ctx := context.Background()

		if _, err := db.SaveAssessment(ctx, testAssessment("", time.Now(), 18)); err != nil {
			t.Fatalf("SaveAssessment() error: %v", err)
		}

		patients, err := db.ListPatients(ctx)
		if err != nil {
			t.Fatalf("ListPatients() error: %v", err)
		}
		if len(patients) != 1 || patients[0] != "anonymous" {
			t.Errorf("ListPatients() = %v, want [anonymous]", patients)
		}
	})

	t.Run("fetch by id", func(t *testing.T) {
		t.Parallel()

		db := newTestDB(t)
		ctx := context.Background()

		id, err := db.SaveAssessment(ctx, testAssessment("p1", time.Now(), 19))
		if err != nil {
			t.Fatalf("SaveAssessment() error: %v", err)
		}

		got, err := db.GetAssessmentByID(ctx, id)
		if err != nil {
			t.Fatalf("GetAssessmentByID() error: %v", err)
		}
		if got == nil || got.PatientID != "p1" {
			t.Errorf("GetAssessmentByID() = %+v, want patient p1", got)
		}

		absent, err := db.GetAssessmentByID(ctx, id+999)
		if err != nil {
			t.Fatalf("GetAssessmentByID() error: %v", err)
		}
		if absent != nil {
			t.Errorf("expected nil for unknown id, got %+v", absent)
		}
	})
}

// TestAssessmentHistory tests ordered history retrieval.
func TestAssessmentHistory(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ctx := context.Background()

	dates := []time.Time{
		time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 5, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC),
	}
	for i, d := range dates {
		if _, err := db.SaveAssessment(ctx, testAssessment("p1", d, 20+float64(i))); err != nil {
			t.Fatalf("SaveAssessment() error: %v", err)
		}
	}
	if _, err := db.SaveAssessment(ctx, testAssessment("p2", dates[0], 25)); err != nil {
		t.Fatalf("SaveAssessment() error: %v", err)
	}

	t.Run("newest first", func(t *testing.T) {
		t.Parallel()

		history, err := db.GetAssessmentHistory(ctx, "p1", 0)
		if err != nil {
			t.Fatalf("GetAssessmentHistory() error: %v", err)
		}
		if len(history) != 3 {
			t.Fatalf("got %d records, want 3", len(history))
		}
		if history[0].Result.FatPercent != 22 || history[2].Result.FatPercent != 20 {
			t.Errorf("history out of order: %g then %g", history[0].Result.FatPercent, history[2].Result.FatPercent)
		}
	})

	t.Run("limit caps the result", func(t *testing.T) {
		t.Parallel()

		history, err := db.GetAssessmentHistory(ctx, "p1", 2)
		if err != nil {
			t.Fatalf("GetAssessmentHistory() error: %v", err)
		}
		if len(history) != 2 {
			t.Errorf("got %d records, want 2", len(history))
		}
	})

	t.Run("history is per patient", func(t *testing.T) {
		t.Parallel()

		history, err := db.GetAssessmentHistory(ctx, "p2", 0)
		if err != nil {
			t.Fatalf("GetAssessmentHistory() error: %v", err)
		}
		if len(history) != 1 {
			t.Errorf("got %d records, want 1", len(history))
		}
	})

	t.Run("list patients", func(t *testing.T) {
		t.Parallel()

		patients, err := db.ListPatients(ctx)
		if err != nil {
			t.Fatalf("ListPatients() error: %v", err)
		}
		if len(patients) != 2 || patients[0] != "p1" || patients[1] != "p2" {
			t.Errorf("ListPatients() = %v, want [p1 p2]", patients)
		}
	})

	t.Run("metadata mirrors the summary columns", func(t *testing.T) {
		t.Parallel()

		metas, err := db.GetHistoryMetadata(ctx, "p1")
		if err != nil {
			t.Fatalf("GetHistoryMetadata() error: %v", err)
		}
		if len(metas) != 3 {
			t.Fatalf("got %d metadata rows, want 3", len(metas))
		}

		newest := metas[0]
		if newest.Tier != "four_skinfold" {
			t.Errorf("Tier = %q, want four_skinfold", newest.Tier)
		}
		if newest.FatPercent != 22 {
			t.Errorf("FatPercent = %g, want 22", newest.FatPercent)
		}
		if !newest.Valid {
			t.Error("Valid should be true")
		}
		if newest.WeightKg != 70 {
			t.Errorf("WeightKg = %g, want 70", newest.WeightKg)
		}
		if newest.FindingSummary["warning"] != 1 {
			t.Errorf("FindingSummary = %v, want one warning", newest.FindingSummary)
		}
		if newest.AssessedAt.IsZero() {
			t.Error("AssessedAt should parse")
		}
	})
}

// TestParseTimestamp tests the format fallback chain.
func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		zero  bool
	}{
		{name: "sqlite default", input: "2026-03-10 09:00:00"},
		{name: "iso with z", input: "2026-03-10T09:00:00Z"},
		{name: "rfc3339", input: "2026-03-10T09:00:00+02:00"},
		{name: "garbage", input: "not a time", zero: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := parseTimestamp(tt.input)
			if got.IsZero() != tt.zero {
				t.Errorf("parseTimestamp(%q).IsZero() = %v, want %v", tt.input, got.IsZero(), tt.zero)
			}
		})
	}
}

// TestReliabilityHistory tests replicate-session storage.
func TestReliabilityHistory(t *testing.T) {
	t.Parallel()

	report := func(overall model.Reliability) model.ReliabilityReport {
		return model.ReliabilityReport{
			Sites: []model.TEMResult{{
				Site:     "triceps",
				Category: model.CategorySkinfold,
				Readings: []float64{10, 10.2},
				Mean:     10.1,
				Rating:   model.ReliabilityExcellent,
			}},
			Overall: overall,
		}
	}

	t.Run("round trips a session", func(t *testing.T) {
		t.Parallel()

		db := newTestDB(t)
		ctx := context.Background()

		id, err := db.SaveReliability(ctx, "tech-1", report(model.ReliabilityExcellent))
		if err != nil {
			t.Fatalf("SaveReliability() error: %v", err)
		}
		if id <= 0 {
			t.Errorf("id = %d, want positive", id)
		}

		sessions, err := db.GetReliabilityHistory(ctx, "tech-1", 0)
		if err != nil {
			t.Fatalf("GetReliabilityHistory() error: %v", err)
		}
		if len(sessions) != 1 {
			t.Fatalf("got %d sessions, want 1", len(sessions))
		}

		got := sessions[0]
		if got.Measurer != "tech-1" {
			t.Errorf("Measurer = %q, want tech-1", got.Measurer)
		}
		if got.Report.Overall != model.ReliabilityExcellent {
			t.Errorf("Overall = %v, want excellent", got.Report.Overall)
		}
		if len(got.Report.Sites) != 1 || got.Report.Sites[0].Site != "triceps" {
			t.Errorf("Sites = %+v, want the triceps site", got.Report.Sites)
		}
		if got.RecordedAt.IsZero() {
			t.Error("RecordedAt should parse")
		}
	})

	t.Run("history is per measurer with limit", func(t *testing.T) {
		t.Parallel()

		db := newTestDB(t)
		ctx := context.Background()

		for range 3 {
			if _, err := db.SaveReliability(ctx, "tech-1", report(model.ReliabilityAcceptable)); err != nil {
				t.Fatalf("SaveReliability() error: %v", err)
			}
		}
		if _, err := db.SaveReliability(ctx, "tech-2", report(model.ReliabilityPoor)); err != nil {
			t.Fatalf("SaveReliability() error: %v", err)
		}

		sessions, err := db.GetReliabilityHistory(ctx, "tech-1", 2)
		if err != nil {
			t.Fatalf("GetReliabilityHistory() error: %v", err)
		}
		if len(sessions) != 2 {
			t.Errorf("got %d sessions, want 2", len(sessions))
		}

		other, err := db.GetReliabilityHistory(ctx, "tech-2", 0)
		if err != nil {
			t.Fatalf("GetReliabilityHistory() error: %v", err)
		}
		if len(other) != 1 {
			t.Errorf("got %d sessions, want 1", len(other))
		}
	})

	t.Run("missing measurer stores as anonymous", func(t *testing.T) {
		t.Parallel()

		db := newTestDB(t)
		ctx := context.Background()

		if _, err := db.SaveReliability(ctx, "", report(model.ReliabilityExcellent)); err != nil {
			t.Fatalf("SaveReliability() error: %v", err)
		}

		sessions, err := db.GetReliabilityHistory(ctx, "", 0)
		if err != nil {
			t.Fatalf("GetReliabilityHistory() error: %v", err)
		}
		if len(sessions) != 1 || sessions[0].Measurer != "anonymous" {
			t.Errorf("sessions = %+v, want one anonymous session", sessions)
		}
	})
}

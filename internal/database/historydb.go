package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/anthrokit/anthrokit/internal/model"
)

// HistoryDB provides SQLite-based storage for assessment records.
// It manages connection pooling and provides methods for CRUD operations.
//
// Design decision: We use a single database file for all patients rather
// than one file per patient. This keeps longitudinal queries (history,
// comparison) simple and makes backup a single-file operation.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a HistoryDB at the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, "anthrokit.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection string: mode=rw prevents creating new
	// files, mode=rwc allows creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite supports only one writer; multiple connections just contend.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (hdb *HistoryDB) createTables() error {
	schema := `
	-- Patients store one row per assessed subject
	CREATE TABLE IF NOT EXISTS patients (
		patient_id TEXT PRIMARY KEY,
		sex TEXT NOT NULL,
		first_seen DATETIME DEFAULT CURRENT_TIMESTAMP,
		last_seen DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- Assessments store complete assessment records as JSON next to
	-- indexed summary columns for history queries
	CREATE TABLE IF NOT EXISTS assessments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		patient_id TEXT NOT NULL,
		assessed_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		tier TEXT NOT NULL,
		confidence INTEGER NOT NULL,
		valid INTEGER NOT NULL,
		fat_percent REAL,
		weight_kg REAL,
		assessment_json TEXT NOT NULL,
		finding_summary TEXT,
		FOREIGN KEY(patient_id) REFERENCES patients(patient_id)
	);

	CREATE INDEX IF NOT EXISTS idx_assessments_patient ON assessments(patient_id);
	CREATE INDEX IF NOT EXISTS idx_assessments_date ON assessments(assessed_at);

	-- Replicate sessions store per-measurer reliability reports so a
	-- clinic can track measurement precision over time
	CREATE TABLE IF NOT EXISTS replicate_sessions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		measurer TEXT NOT NULL,
		recorded_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		overall TEXT NOT NULL,
		site_count INTEGER NOT NULL,
		report_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_replicate_sessions_measurer ON replicate_sessions(measurer);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveAssessment stores a completed assessment, creating or touching the
// patient row first. Records without a patient ID are stored under the
// placeholder "anonymous" so batch runs without IDs still keep history.
func (hdb *HistoryDB) SaveAssessment(ctx context.Context, assessment *model.Assessment) (int64, error) {
	patientID := assessment.PatientID
	if patientID == "" {
		patientID = "anonymous"
	}

	upsertPatient := `
	INSERT INTO patients (patient_id, sex)
	VALUES (?, ?)
	ON CONFLICT(patient_id) DO UPDATE SET
		last_seen = CURRENT_TIMESTAMP
	`
	if _, err := hdb.db.ExecContext(ctx, upsertPatient, patientID, string(assessment.Input.Sex)); err != nil {
		return 0, fmt.Errorf("failed to upsert patient: %w", err)
	}

	assessmentJSON, err := json.Marshal(assessment)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize assessment: %w", err)
	}

	summary := map[string]int{
		"critical": 0,
		"error":    0,
		"warning":  0,
		"info":     0,
	}
	for _, f := range assessment.AllFindings() {
		summary[strings.ToLower(f.Severity.String())]++
	}
	summaryJSON, _ := json.Marshal(summary) //nolint:errcheck,errchkjson // summary is a simple map; Marshal won't fail

	tier := model.TierNone
	var fatPercent float64
	if assessment.Result != nil {
		tier = assessment.Result.Tier
		fatPercent = assessment.Result.FatPercent
	}

	insert := `
	INSERT INTO assessments (patient_id, assessed_at, tier, confidence, valid, fat_percent, weight_kg, assessment_json, finding_summary)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := hdb.db.ExecContext(ctx, insert,
		patientID,
		assessment.Date.UTC().Format("2006-01-02 15:04:05"),
		tier.String(),
		assessment.Confidence(),
		boolToInt(assessment.Valid()),
		fatPercent,
		assessment.Input.WeightKg,
		string(assessmentJSON),
		string(summaryJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save assessment: %w", err)
	}

	return result.LastInsertId()
}

// GetLatestAssessment retrieves the most recent assessment for a patient.
// Returns nil without error when the patient has no stored assessments.
func (hdb *HistoryDB) GetLatestAssessment(ctx context.Context, patientID string) (*model.Assessment, error) {
	query := `
	SELECT assessment_json FROM assessments
	WHERE patient_id = ?
	ORDER BY assessed_at DESC, id DESC
	LIMIT 1
	`

	var assessmentJSON string
	err := hdb.db.QueryRowContext(ctx, query, patientID).Scan(&assessmentJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}

	var assessment model.Assessment
	if err := json.Unmarshal([]byte(assessmentJSON), &assessment); err != nil {
		return nil, fmt.Errorf("failed to parse assessment: %w", err)
	}

	return &assessment, nil
}

// GetAssessmentHistory retrieves up to limit assessments for a patient,
// newest first. A limit of 0 or less returns the full history.
func (hdb *HistoryDB) GetAssessmentHistory(ctx context.Context, patientID string, limit int) ([]*model.Assessment, error) {
	query := `
	SELECT assessment_json FROM assessments
	WHERE patient_id = ?
	ORDER BY assessed_at DESC, id DESC
	`
	args := []any{patientID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := hdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get assessment history: %w", err)
	}
	defer rows.Close()

	var assessments []*model.Assessment
	for rows.Next() {
		var assessmentJSON string
		if err := rows.Scan(&assessmentJSON); err != nil {
			return nil, fmt.Errorf("failed to scan assessment: %w", err)
		}

		var assessment model.Assessment
		if err := json.Unmarshal([]byte(assessmentJSON), &assessment); err != nil {
			continue // Skip malformed records
		}
		assessments = append(assessments, &assessment)
	}

	return assessments, rows.Err()
}

// ListPatients returns all patient IDs with stored assessments.
func (hdb *HistoryDB) ListPatients(ctx context.Context) ([]string, error) {
	query := `
	SELECT DISTINCT patient_id FROM assessments
	ORDER BY patient_id
	`

	rows, err := hdb.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	defer rows.Close()

	var patients []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan patient: %w", err)
		}
		patients = append(patients, id)
	}

	return patients, rows.Err()
}

// AssessmentMetadata contains summary information about a stored
// assessment. Used for displaying history without loading full records.
type AssessmentMetadata struct {
	// ID is the unique identifier of the assessment in the database.
	ID int64

	// PatientID is the assessed subject.
	PatientID string

	// AssessedAt is when the assessment was performed.
	AssessedAt time.Time

	// Tier is the calculation tier that produced the result.
	Tier string

	// Confidence is the final confidence score.
	Confidence int

	// Valid reports whether the assessment passed all checks.
	Valid bool

	// FatPercent is the headline fat percentage.
	FatPercent float64

	// WeightKg is the measured weight at assessment time.
	WeightKg float64

	// FindingSummary counts findings by severity level.
	FindingSummary map[string]int
}

// GetHistoryMetadata retrieves assessment metadata for a patient, newest
// first. This is cheaper than GetAssessmentHistory when only summary
// information is needed.
func (hdb *HistoryDB) GetHistoryMetadata(ctx context.Context, patientID string) ([]AssessmentMetadata, error) {
	query := `
	SELECT id, patient_id, assessed_at, tier, confidence, valid, fat_percent, weight_kg, finding_summary
	FROM assessments
	WHERE patient_id = ?
	ORDER BY assessed_at DESC, id DESC
	`

	rows, err := hdb.db.QueryContext(ctx, query, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get history metadata: %w", err)
	}
	defer rows.Close()

	var results []AssessmentMetadata
	for rows.Next() {
		var meta AssessmentMetadata
		var assessedAt string
		var valid int
		var summaryJSON sql.NullString

		if err := rows.Scan(&meta.ID, &meta.PatientID, &assessedAt, &meta.Tier,
			&meta.Confidence, &valid, &meta.FatPercent, &meta.WeightKg, &summaryJSON); err != nil {
			return nil, fmt.Errorf("failed to scan metadata: %w", err)
		}

		meta.AssessedAt = parseTimestamp(assessedAt)
		meta.Valid = valid != 0

		if summaryJSON.Valid && summaryJSON.String != "" {
			if err := json.Unmarshal([]byte(summaryJSON.String), &meta.FindingSummary); err != nil {
				meta.FindingSummary = make(map[string]int)
			}
		} else {
			meta.FindingSummary = make(map[string]int)
		}

		results = append(results, meta)
	}

	return results, rows.Err()
}

// GetAssessmentByID retrieves a stored assessment by its database ID.
func (hdb *HistoryDB) GetAssessmentByID(ctx context.Context, id int64) (*model.Assessment, error) {
	query := `
	SELECT assessment_json FROM assessments
	WHERE id = ?
	`

	var assessmentJSON string
	err := hdb.db.QueryRowContext(ctx, query, id).Scan(&assessmentJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}

	var assessment model.Assessment
	if err := json.Unmarshal([]byte(assessmentJSON), &assessment); err != nil {
		return nil, fmt.Errorf("failed to parse assessment: %w", err)
	}

	return &assessment, nil
}

// boolToInt maps a bool to the 0/1 SQLite stores.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// SQLite may return timestamps in different formats depending on configuration.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

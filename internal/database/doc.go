// Package database provides SQLite-based storage for assessment history.
//
// Assessments are stored per patient so that longitudinal queries (the
// compare command, trend reports) can retrieve earlier results without
// re-running calculations. The full assessment is stored as JSON next to
// a few indexed summary columns.
package database

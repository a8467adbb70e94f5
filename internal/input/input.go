package input

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/anthrokit/anthrokit/internal/model"
)

// ErrEmptyFile is returned when a measurement file decodes to nothing.
var ErrEmptyFile = errors.New("input: file contains no measurement record")

// LoadMeasurement reads one measurement record from a YAML file.
func LoadMeasurement(path string) (*model.RawMeasurement, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided input path is intentional
	if err != nil {
		return nil, fmt.Errorf("input: read %s: %w", path, err)
	}

	var m model.RawMeasurement
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("input: parse %s: %w", path, err)
	}
	if m == (model.RawMeasurement{}) {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}
	return &m, nil
}

// LoadMeasurements reads several measurement files, preserving order.
// The first unreadable file aborts the load; a partially loaded batch
// would silently assess fewer subjects than the caller asked for.
func LoadMeasurements(paths []string) ([]model.RawMeasurement, error) {
	records := make([]model.RawMeasurement, 0, len(paths))
	for _, path := range paths {
		m, err := LoadMeasurement(path)
		if err != nil {
			return nil, err
		}
		records = append(records, *m)
	}
	return records, nil
}

// ReplicateSite is one site's repeated readings in a replicate session
// file.
type ReplicateSite struct {
	// Site names the measured site, e.g. "triceps".
	Site string `yaml:"site"`

	// Category is the instrument category: skinfold, girth, breadth or
	// basic.
	Category model.MeasurementCategory `yaml:"category"`

	// Readings are the 2-3 replicate values in the site's native unit.
	Readings []float64 `yaml:"readings"`
}

// ReplicateSession is a measurement-quality session: repeated readings
// at several sites by one measurer.
type ReplicateSession struct {
	// Measurer optionally identifies who took the readings.
	Measurer string `yaml:"measurer,omitempty"`

	// Sites are the per-site replicate readings.
	Sites []ReplicateSite `yaml:"sites"`
}

// LoadReplicates reads a replicate session from a YAML file.
func LoadReplicates(path string) (*ReplicateSession, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided input path is intentional
	if err != nil {
		return nil, fmt.Errorf("input: read %s: %w", path, err)
	}

	var session ReplicateSession
	if err := yaml.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("input: parse %s: %w", path, err)
	}
	if len(session.Sites) == 0 {
		return nil, fmt.Errorf("input: %s lists no replicate sites", path)
	}
	return &session, nil
}

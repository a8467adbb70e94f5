package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/anthrokit/anthrokit/internal/model"
)

// DefaultClinicFile is the default clinic preferences file name.
const DefaultClinicFile = "clinic.yaml"

// ErrClinicFileNotFound is returned when the preferences file does not
// exist. Callers should handle this based on whether the path was
// explicitly specified by the user.
var ErrClinicFileNotFound = errors.New("clinic preferences file not found")

// ClinicFile represents the clinic preferences file. Preferences are
// clinic policy, not engine state: the engine receives them as plain
// parameters.
type ClinicFile struct {
	// Variant is the clinic's preferred density formula variant.
	Variant model.DensityVariant `yaml:"variant,omitempty"`

	// StrictBalance escalates the five-component model-deviation
	// warning into a hard error for clinics that prefer surfacing
	// measurement problems over always getting a balanced answer.
	StrictBalance bool `yaml:"strict_balance,omitempty"`

	// Concurrency overrides the default batch concurrency.
	Concurrency int `yaml:"concurrency,omitempty"`

	// DBDir overrides the assessment history database directory.
	DBDir string `yaml:"db_dir,omitempty"`
}

// LoadClinicFile loads clinic preferences from a YAML file. If the file
// does not exist, it returns ErrClinicFileNotFound.
func LoadClinicFile(path string) (*ClinicFile, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrClinicFileNotFound
		}
		return nil, err
	}

	var cf ClinicFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}
	return &cf, nil
}

// ResolveClinicFile returns the preferences file path to use: the
// explicit path when given, otherwise the XDG config location.
func ResolveClinicFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	return filepath.Join(XDGConfigDir(), DefaultClinicFile)
}

// Apply merges file preferences into the config. CLI flags win: only
// unset config fields are filled from the file.
func (cf *ClinicFile) Apply(c *Config) {
	if cf.Variant != "" && c.Variant == DefaultVariant {
		c.Variant = cf.Variant
	}
	if cf.StrictBalance {
		c.StrictBalance = true
	}
	if cf.Concurrency > 0 && c.Concurrency == DefaultConcurrency {
		c.Concurrency = cf.Concurrency
	}
	if cf.DBDir != "" && c.DBDir == "" {
		c.DBDir = cf.DBDir
	}
}

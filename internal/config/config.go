package config

import (
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/anthrokit/anthrokit/internal/model"
)

// Default configuration values.
const (
	// DefaultConcurrency is the number of concurrent assessments when
	// processing multiple measurement files. Assessments are pure CPU
	// work in the microsecond range, so a small limit exists only to
	// bound file-reading parallelism.
	DefaultConcurrency = 4

	// DefaultVariant is the density formula a clinic gets without an
	// explicit preference. The four-skinfold control formula is the
	// best-validated general-purpose choice.
	DefaultVariant = model.VariantControl

	// AppName is the application name used for XDG directory paths.
	AppName = "anthrokit"
)

// Config holds all configuration options for anthrokit. It is populated
// from CLI flags and the optional clinic preferences file, then passed
// through the application via dependency injection rather than global
// state.
type Config struct {
	// Variant is the preferred density formula variant for the
	// supplementary density estimate (the routed tiers fix their own
	// variants).
	Variant model.DensityVariant

	// StrictBalance turns the five-component model-deviation warning
	// (pre-scaling deviation above 5%) into a hard error. The default
	// preserves the classical behavior: always rescale, but warn.
	StrictBalance bool

	// ForceTier pins the assessment to a single precision tier instead
	// of walking the degradation chain. Empty means automatic selection.
	// Holds a tier identifier as produced by model.Tier.String.
	ForceTier string

	// Concurrency is the number of concurrent assessments for batch
	// processing.
	Concurrency int

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// JSONReport enables JSON report output instead of the
	// human-readable format. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output instead of the
	// human-readable format. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report. When set, the
	// report is written to this file instead of stdout.
	ReportFile string

	// DBDir is the directory for the SQLite history database. When set,
	// assessments are saved for later comparison. Defaults to the XDG
	// data directory when saving is requested without a path.
	DBDir string

	// SaveToDB indicates whether to persist assessments.
	SaveToDB bool

	// InputFiles are the measurement YAML files to assess.
	InputFiles []string

	// ClinicFilePath is the path to the clinic preferences file. If
	// empty, the XDG config directory is searched.
	ClinicFilePath string
}

// NewConfig creates a Config with default values.
//
// Design decision: We use a constructor function instead of relying on
// zero values because several defaults are non-zero. This also serves
// as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		Variant:     DefaultVariant,
		Concurrency: DefaultConcurrency,
	}
}

// ForcedTier returns the pinned tier when one is configured.
func (c *Config) ForcedTier() (model.Tier, bool) {
	if c.ForceTier == "" {
		return model.TierNone, false
	}
	return model.ParseTier(c.ForceTier)
}

// XDGDataDir returns the XDG data directory for anthrokit.
// On Linux: ~/.local/share/anthrokit
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for anthrokit.
// On Linux: ~/.config/anthrokit
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid. It returns a specific
// sentinel error describing the first problem found; fixing one error
// often makes others irrelevant.
func (c *Config) Validate() error {
	if len(c.InputFiles) == 0 {
		return ErrNoInput
	}
	if !c.Variant.IsValid() {
		return ErrInvalidVariant
	}
	if c.ForceTier != "" {
		if _, ok := model.ParseTier(c.ForceTier); !ok {
			return ErrInvalidTier
		}
	}
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	return nil
}

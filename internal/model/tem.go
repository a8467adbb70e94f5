package model

// MeasurementCategory groups sites by instrument, because acceptable
// measurement error differs by an order of magnitude between calipers
// and tapes.
type MeasurementCategory string

const (
	// CategorySkinfold covers caliper skinfold sites.
	CategorySkinfold MeasurementCategory = "skinfold"

	// CategoryGirth covers tape circumference sites.
	CategoryGirth MeasurementCategory = "girth"

	// CategoryBreadth covers bone breadth (small sliding caliper) sites.
	CategoryBreadth MeasurementCategory = "breadth"

	// CategoryBasic covers stature and body mass.
	CategoryBasic MeasurementCategory = "basic"
)

// IsValid reports whether the category is a supported constant.
func (c MeasurementCategory) IsValid() bool {
	switch c {
	case CategorySkinfold, CategoryGirth, CategoryBreadth, CategoryBasic:
		return true
	}
	return false
}

// Reliability is the three-level rating of measurement precision.
type Reliability int

const (
	// ReliabilityExcellent means the TEM% is within the trained
	// anthropometrist target.
	ReliabilityExcellent Reliability = iota

	// ReliabilityAcceptable means the TEM% is within the beginner target.
	ReliabilityAcceptable

	// ReliabilityPoor means the replicates disagree too much to trust;
	// the site should be remeasured.
	ReliabilityPoor
)

// String returns a human-readable representation of the rating.
func (r Reliability) String() string {
	switch r {
	case ReliabilityExcellent:
		return "excellent"
	case ReliabilityAcceptable:
		return "acceptable"
	case ReliabilityPoor:
		return "poor"
	default:
		return "unknown"
	}
}

// TEMResult holds the Dahlberg Technical Error of Measurement for one
// site's replicate readings.
type TEMResult struct {
	// Site names the measured site, e.g. "triceps".
	Site string `json:"site"`

	// Category is the instrument category the thresholds were taken from.
	Category MeasurementCategory `json:"category"`

	// Readings are the 2-3 replicate values as supplied.
	Readings []float64 `json:"readings"`

	// Mean is the arithmetic mean of the replicates.
	Mean float64 `json:"mean"`

	// TEM is the absolute technical error, in the site's unit.
	TEM float64 `json:"tem"`

	// TEMPercent is TEM as a percentage of the mean reading.
	TEMPercent float64 `json:"tem_percent"`

	// Rating is the three-level classification against the category's
	// cut points.
	Rating Reliability `json:"rating"`
}

// ReliabilityReport rolls per-site TEM results into one session rating.
type ReliabilityReport struct {
	// Sites are the per-site results in input order.
	Sites []TEMResult `json:"sites"`

	// Overall is poor if any site is poor, acceptable if more than half
	// the sites are merely acceptable, and excellent otherwise.
	Overall Reliability `json:"overall"`
}

package tem

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/anthrokit/anthrokit/internal/model"
	"github.com/anthrokit/anthrokit/internal/reference"
)

// ErrTooFewReadings is returned when fewer than two replicates are
// supplied. One reading has no error to measure.
var ErrTooFewReadings = errors.New("tem: need at least 2 replicate readings")

// ErrTooManyReadings is returned when more than three replicates are
// supplied. The ISAK protocol collects at most three.
var ErrTooManyReadings = errors.New("tem: more than 3 replicate readings are not part of the protocol")

// ErrNonPositiveReading is returned when a replicate is not positive.
var ErrNonPositiveReading = errors.New("tem: replicate readings must be positive")

// Analyze computes the Dahlberg TEM for 2-3 replicate readings at one
// site:
//
//	TEM = sqrt( Σ d² / (2 × number of pairwise comparisons) )
//
// expressed absolutely and as a percentage of the mean reading, and
// rated against the category's cut points.
func Analyze(site string, category model.MeasurementCategory, readings []float64) (model.TEMResult, error) {
	if len(readings) < 2 {
		return model.TEMResult{}, ErrTooFewReadings
	}
	if len(readings) > 3 {
		return model.TEMResult{}, ErrTooManyReadings
	}
	for _, r := range readings {
		if r <= 0 {
			return model.TEMResult{}, fmt.Errorf("%w: got %g at %s", ErrNonPositiveReading, r, site)
		}
	}
	if !category.IsValid() {
		return model.TEMResult{}, fmt.Errorf("tem: unknown measurement category %q", category)
	}

	var sumSq float64
	comparisons := 0
	for i := 0; i < len(readings); i++ {
		for j := i + 1; j < len(readings); j++ {
			d := readings[i] - readings[j]
			sumSq += d * d
			comparisons++
		}
	}

	var sum float64
	for _, r := range readings {
		sum += r
	}
	mean := sum / float64(len(readings))

	t := math.Sqrt(sumSq / (2 * float64(comparisons)))
	pct := t / mean * 100

	return model.TEMResult{
		Site:       site,
		Category:   category,
		Readings:   append([]float64(nil), readings...),
		Mean:       mean,
		TEM:        t,
		TEMPercent: pct,
		Rating:     rate(category, pct),
	}, nil
}

// rate classifies a %TEM against the category's fixed cut points.
func rate(category model.MeasurementCategory, temPercent float64) model.Reliability {
	cuts := reference.TEMTable[category]
	switch {
	case temPercent <= cuts.Excellent:
		return model.ReliabilityExcellent
	case temPercent <= cuts.Acceptable:
		return model.ReliabilityAcceptable
	default:
		return model.ReliabilityPoor
	}
}

// NeedsThirdMeasurement reports whether two initial readings disagree by
// more than the category's acceptable threshold, signaling that the
// measurer should collect a third reading before settling on a value.
func NeedsThirdMeasurement(category model.MeasurementCategory, first, second float64) bool {
	if first <= 0 || second <= 0 {
		return true
	}
	mean := (first + second) / 2
	// TEM of a pair reduces to |d|/sqrt(2).
	pct := math.Abs(first-second) / math.Sqrt2 / mean * 100
	return pct > reference.TEMTable[category].Acceptable
}

// FinalValue returns the value to record for a site: the mean of two
// readings, or the median of three. The median discards the outlier the
// third reading was collected to resolve.
func FinalValue(readings []float64) (float64, error) {
	switch len(readings) {
	case 2:
		return (readings[0] + readings[1]) / 2, nil
	case 3:
		sorted := append([]float64(nil), readings...)
		sort.Float64s(sorted)
		return sorted[1], nil
	default:
		if len(readings) < 2 {
			return 0, ErrTooFewReadings
		}
		return 0, ErrTooManyReadings
	}
}

// Aggregate rolls per-site results into one session rating: poor if any
// site is poor, acceptable if more than half the sites are merely
// acceptable, excellent otherwise.
func Aggregate(sites []model.TEMResult) model.ReliabilityReport {
	report := model.ReliabilityReport{
		Sites:   append([]model.TEMResult(nil), sites...),
		Overall: model.ReliabilityExcellent,
	}

	acceptable := 0
	for _, s := range sites {
		switch s.Rating {
		case model.ReliabilityPoor:
			report.Overall = model.ReliabilityPoor
			return report
		case model.ReliabilityAcceptable:
			acceptable++
		}
	}
	if len(sites) > 0 && acceptable*2 > len(sites) {
		report.Overall = model.ReliabilityAcceptable
	}
	return report
}

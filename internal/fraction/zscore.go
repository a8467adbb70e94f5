package fraction

import "github.com/anthrokit/anthrokit/internal/reference"

// PhantomZ computes the height-adjusted Phantom Z-score for one raw
// measurement:
//
//	z = (v × 170.18/height − mean) / sd
//
// It returns nil when height, the value or the reference SD is not
// strictly positive. Excluding the site is the whole point: a division
// by zero here would corrupt the entire fractionation, and a negative
// or zero measurement is a recording error, not a datum.
func PhantomZ(value, heightCm float64, ref reference.SiteReference) *float64 {
	if heightCm <= 0 || value <= 0 || ref.SD <= 0 {
		return nil
	}
	adjusted := value * reference.PhantomHeightCm / heightCm
	z := (adjusted - ref.Mean) / ref.SD
	return &z
}

// meanZ averages the non-nil Z-scores. With no usable score it returns
// (0, false): a zero mean decays the component to the Phantom reference
// mass rather than aborting.
func meanZ(scores []*float64) (float64, bool) {
	var sum float64
	n := 0
	for _, z := range scores {
		if z == nil {
			continue
		}
		sum += *z
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

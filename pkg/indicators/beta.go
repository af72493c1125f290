package indicators

import (
	"errors"
	"math"
)

// ErrSeriesMismatch indicates the two return series have different lengths;
// callers must align them (inner join on date) before computing beta.
var ErrSeriesMismatch = errors.New("indicators: return series lengths differ")

// Beta computes the beta of return series a against benchmark return series
// b: covariance(a, b) / variance(b). Both series must be equal-length and
// date-aligned. A constant benchmark (zero variance) yields +Inf, not an
// error, so the degenerate case stays distinguishable from a failed fetch.
func Beta(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, ErrSeriesMismatch
	}
	if len(a) == 0 {
		return 0, ErrInsufficientData
	}

	meanA := mean(a)
	meanB := mean(b)

	var covariance, variance float64
	for i := range a {
		covariance += (a[i] - meanA) * (b[i] - meanB)
		d := b[i] - meanB
		variance += d * d
	}
	covariance /= float64(len(a))
	variance /= float64(len(b))

	if variance == 0 {
		return math.Inf(1), nil
	}
	return covariance / variance, nil
}

// PctChange returns the day-over-day fractional change series; the output is
// one element shorter than the input.
func PctChange(values []float64) []float64 {
	if len(values) < 2 {
		return nil
	}
	changes := make([]float64, len(values)-1)
	for i := 1; i < len(values); i++ {
		changes[i-1] = (values[i] - values[i-1]) / values[i-1]
	}
	return changes
}

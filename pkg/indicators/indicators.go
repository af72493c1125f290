// Package indicators computes technical analytics over daily price series.
//
// Every function is a pure transform of an already-fetched, ascending-ordered
// series; no function performs I/O. Insufficient history and mathematically
// undefined results surface as typed errors instead of the zero sentinels the
// legacy API used (see pkg/analysis for the compatibility wrapper).
package indicators

import (
	"math"
	"time"
)

// Bar is one trading-day OHLCV observation, ordered ascending by date.
type Bar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Closes extracts the closing price series from bars.
func Closes(bars []Bar) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}

// Round rounds v to the given number of decimal digits.
func Round(v float64, digits int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	pow := math.Pow(10, float64(digits))
	return math.Round(v*pow) / pow
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// rollingMean returns the window-mean series aligned to the input. Positions
// before the first complete window, and windows containing NaN, are NaN.
func rollingMean(values []float64, window int) []float64 {
	result := nanSeries(len(values))
	if window <= 0 || len(values) < window {
		return result
	}
	for i := window - 1; i < len(values); i++ {
		result[i] = mean(values[i-window+1 : i+1])
	}
	return result
}

// rollingStd returns the window sample standard deviation series (ddof=1).
func rollingStd(values []float64, window int) []float64 {
	result := nanSeries(len(values))
	if window <= 1 || len(values) < window {
		return result
	}
	for i := window - 1; i < len(values); i++ {
		w := values[i-window+1 : i+1]
		m := mean(w)
		var ss float64
		for _, v := range w {
			d := v - m
			ss += d * d
		}
		result[i] = math.Sqrt(ss / float64(window-1))
	}
	return result
}

func rollingMax(values []float64, window int) []float64 {
	return rollingExtreme(values, window, math.Max)
}

func rollingMin(values []float64, window int) []float64 {
	return rollingExtreme(values, window, math.Min)
}

func rollingExtreme(values []float64, window int, pick func(a, b float64) float64) []float64 {
	result := nanSeries(len(values))
	if window <= 0 || len(values) < window {
		return result
	}
	for i := window - 1; i < len(values); i++ {
		extreme := values[i-window+1]
		for _, v := range values[i-window+2 : i+1] {
			extreme = pick(extreme, v)
		}
		result[i] = extreme
	}
	return result
}

// diff returns day-over-day differences; the first element is NaN to keep the
// series aligned with the input, matching the upstream dataframe semantics.
func diff(values []float64) []float64 {
	result := nanSeries(len(values))
	for i := 1; i < len(values); i++ {
		result[i] = values[i] - values[i-1]
	}
	return result
}

func nanSeries(n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = math.NaN()
	}
	return s
}

func lastValid(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	last := values[len(values)-1]
	if math.IsNaN(last) {
		return last, false
	}
	return last, true
}

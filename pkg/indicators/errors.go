package indicators

import "errors"

var (
	// ErrInsufficientData indicates the series is shorter than the lookback
	// window the indicator needs.
	ErrInsufficientData = errors.New("indicators: insufficient data for window")

	// ErrDegenerate indicates a mathematically undefined result, such as a
	// division by zero inside the indicator recurrence. The accompanying
	// value carries the raw float semantics (NaN or ±Inf) for callers that
	// opted into legacy behavior.
	ErrDegenerate = errors.New("indicators: degenerate computation")

	// ErrInvalidWindow indicates a non-positive window or span parameter.
	ErrInvalidWindow = errors.New("indicators: window must be positive")
)

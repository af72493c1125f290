package nse

import "errors"

var (
	// ErrInvalidInput indicates a malformed or out-of-domain caller-supplied
	// parameter (bad date format, unknown mode). Never retried.
	ErrInvalidInput = errors.New("nse: invalid input")

	// ErrNotFound indicates the requested symbol, expiry, strike or index has
	// no matching record in an otherwise well-formed payload.
	ErrNotFound = errors.New("nse: not found")

	// ErrUpstreamData indicates the fetched payload is missing an expected
	// field or is shaped unexpectedly.
	ErrUpstreamData = errors.New("nse: unexpected upstream payload")

	// ErrInvalidSymbol indicates the symbol is not part of the known equity
	// or derivative universe.
	ErrInvalidSymbol = errors.New("nse: invalid symbol")
)

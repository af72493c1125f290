// Package pricing implements closed-form Black-Scholes-Merton option
// pricing with a continuous dividend yield.
package pricing

import (
	"errors"
	"fmt"
	"math"
)

const sqrt2Pi = 2.5066282746310002

// DefaultTradingDaysPerYear is the annualization base used when Input leaves
// TradingDaysPerYear unset.
const DefaultTradingDaysPerYear = 365

// ErrInvalidInput indicates an out-of-domain pricing parameter (non-positive
// spot, strike, time to expiry or volatility).
var ErrInvalidInput = errors.New("pricing: invalid input")

// Input carries the pricing parameters. Volatility and dividend yield are
// percentages (as quoted, e.g. India VIX ~14.5); the rate is a decimal
// annual rate; time to expiry is in days.
type Input struct {
	Spot               float64
	Strike             float64
	TimeToExpiryDays   float64
	VolatilityPct      float64
	Rate               float64
	DividendYieldPct   float64
	TradingDaysPerYear float64
}

// Result holds premiums and Greeks for both legs computed from the shared
// d1/d2 terms. Theta is per trading day; vega and the rhos are per 1% move
// in volatility and rate respectively.
type Result struct {
	CallTheta   float64
	PutTheta    float64
	CallPremium float64
	PutPremium  float64
	CallDelta   float64
	PutDelta    float64
	Gamma       float64
	Vega        float64
	CallRho     float64
	PutRho      float64
}

// Price computes premiums and Greeks for a European option pair. It fails
// with ErrInvalidInput rather than silently returning NaN when a parameter
// is outside the model's domain.
func Price(in Input) (Result, error) {
	if in.TradingDaysPerYear <= 0 {
		in.TradingDaysPerYear = DefaultTradingDaysPerYear
	}
	switch {
	case in.Spot <= 0:
		return Result{}, fmt.Errorf("%w: spot %v must be positive", ErrInvalidInput, in.Spot)
	case in.Strike <= 0:
		return Result{}, fmt.Errorf("%w: strike %v must be positive", ErrInvalidInput, in.Strike)
	case in.TimeToExpiryDays <= 0:
		return Result{}, fmt.Errorf("%w: time to expiry %v must be positive", ErrInvalidInput, in.TimeToExpiryDays)
	case in.VolatilityPct <= 0:
		return Result{}, fmt.Errorf("%w: volatility %v must be positive", ErrInvalidInput, in.VolatilityPct)
	}

	s := in.Spot
	x := in.Strike
	sigma := in.VolatilityPct / 100
	r := in.Rate
	q := in.DividendYieldPct / 100
	td := in.TradingDaysPerYear
	t := in.TimeToExpiryDays / td

	sqrtT := math.Sqrt(t)
	d1 := (math.Log(s/x) + (r-q+0.5*sigma*sigma)*t) / (sigma * sqrtT)
	d2 := d1 - sigma*sqrtT

	discQ := math.Exp(-q * t)
	discR := math.Exp(-r * t)

	theta := func(sign float64) float64 {
		return (-(s*sigma*discQ)/(2*sqrtT)*normPDF(d1) -
			sign*r*x*discR*normCDF(sign*d2) +
			sign*q*discQ*s*normCDF(sign*d1)) / td
	}

	return Result{
		CallTheta:   theta(1),
		PutTheta:    theta(-1),
		CallPremium: discQ*s*normCDF(d1) - x*discR*normCDF(d2),
		PutPremium:  x*discR*normCDF(-d2) - discQ*s*normCDF(-d1),
		CallDelta:   discQ * normCDF(d1),
		PutDelta:    discQ * (normCDF(d1) - 1),
		Gamma:       discQ * normPDF(d1) / (s * sigma * sqrtT),
		Vega:        s * discQ * sqrtT * normPDF(d1) / 100,
		CallRho:     x * t * discR * normCDF(d2) / 100,
		PutRho:      -x * t * discR * normCDF(-d2) / 100,
	}, nil
}

// normPDF is the standard normal probability density at x.
func normPDF(x float64) float64 {
	return math.Exp(-0.5*x*x) / sqrt2Pi
}

// normCDF is the standard normal cumulative distribution at x, via the
// error function.
func normCDF(x float64) float64 {
	return 0.5 * (1.0 + math.Erf(x/math.Sqrt2))
}

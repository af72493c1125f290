package analysis

import (
	"context"
	"errors"

	"github.com/zeromicro/go-zero/core/logx"

	"stockfetch/pkg/indicators"
)

// Legacy wraps a Service with the historical error convention: failures are
// logged and surface as zero values instead of errors. New callers should
// use Service directly; this adapter exists for consumers ported from the
// old surface.
type Legacy struct {
	svc *Service
}

// NewLegacy wraps svc in the zero-on-error convention.
func NewLegacy(svc *Service) *Legacy {
	return &Legacy{svc: svc}
}

func (l *Legacy) zeroOnError(ctx context.Context, op string, v float64, err error) float64 {
	if err != nil {
		logx.WithContext(ctx).Errorf("%s: %v", op, err)
		return 0
	}
	return v
}

// MovingAverageAbsolute returns the windowless SMA between two dates, or 0.
func (l *Legacy) MovingAverageAbsolute(ctx context.Context, symbol, from, to string) float64 {
	v, err := l.svc.MovingAverageAbsolute(ctx, symbol, from, to)
	return l.zeroOnError(ctx, "moving average absolute", v, err)
}

// SimpleMovingAverage returns the SMA, or 0 on any failure.
func (l *Legacy) SimpleMovingAverage(ctx context.Context, symbol string, days int) float64 {
	v, err := l.svc.SimpleMovingAverage(ctx, symbol, days)
	return l.zeroOnError(ctx, "simple moving average", v, err)
}

// ExponentialMovingAverage returns the EMA, or 0 on any failure.
func (l *Legacy) ExponentialMovingAverage(ctx context.Context, symbol string, days int) float64 {
	v, err := l.svc.ExponentialMovingAverage(ctx, symbol, days)
	return l.zeroOnError(ctx, "exponential moving average", v, err)
}

// DoubleExponentialMovingAverage returns the DEMA, or 0 on any failure.
func (l *Legacy) DoubleExponentialMovingAverage(ctx context.Context, symbol string, days int) float64 {
	v, err := l.svc.DoubleExponentialMovingAverage(ctx, symbol, days)
	return l.zeroOnError(ctx, "double exponential moving average", v, err)
}

// TripleExponentialMovingAverage returns the TEMA, or 0 on any failure.
func (l *Legacy) TripleExponentialMovingAverage(ctx context.Context, symbol string, days int) float64 {
	v, err := l.svc.TripleExponentialMovingAverage(ctx, symbol, days)
	return l.zeroOnError(ctx, "triple exponential moving average", v, err)
}

// RelativeStrengthIndex returns the RSI, or 0 on any failure. A degenerate
// all-gain window still returns the raw value.
func (l *Legacy) RelativeStrengthIndex(ctx context.Context, symbol string, days int, wilder bool) float64 {
	v, err := l.svc.RelativeStrengthIndex(ctx, symbol, days, wilder)
	if errors.Is(err, indicators.ErrDegenerate) {
		return v
	}
	return l.zeroOnError(ctx, "relative strength index", v, err)
}

// MACD returns the latest MACD value, or 0 on any failure.
func (l *Legacy) MACD(ctx context.Context, symbol string) float64 {
	v, err := l.svc.MACD(ctx, symbol)
	return l.zeroOnError(ctx, "macd", v, err)
}

// MACDWithSignal returns the latest MACD and signal values, or (0, 0) on
// any failure.
func (l *Legacy) MACDWithSignal(ctx context.Context, symbol string) (float64, float64) {
	macd, signal, err := l.svc.MACDWithSignal(ctx, symbol)
	if err != nil {
		logx.WithContext(ctx).Errorf("macd with signal: %v", err)
		return 0, 0
	}
	return macd, signal
}

// StochasticOscillator returns %K, or 0 on any failure.
func (l *Legacy) StochasticOscillator(ctx context.Context, symbol string) float64 {
	v, err := l.svc.StochasticOscillator(ctx, symbol)
	return l.zeroOnError(ctx, "stochastic oscillator", v, err)
}

// BollingerBands returns (upper, middle, lower), or zeros on any failure.
func (l *Legacy) BollingerBands(ctx context.Context, symbol string) (float64, float64, float64) {
	bands, err := l.svc.BollingerBands(ctx, symbol)
	if err != nil {
		logx.WithContext(ctx).Errorf("bollinger bands: %v", err)
		return 0, 0, 0
	}
	return bands.Upper, bands.Middle, bands.Lower
}

// AverageDirectionalIndex returns the ADX, or 0 on any failure.
func (l *Legacy) AverageDirectionalIndex(ctx context.Context, symbol string, days int, method indicators.ADXMethod) float64 {
	v, err := l.svc.AverageDirectionalIndex(ctx, symbol, days, method)
	return l.zeroOnError(ctx, "average directional index", v, err)
}

// CommodityChannelIndex returns the CCI series, or nil on any failure.
func (l *Legacy) CommodityChannelIndex(ctx context.Context, symbol string, days int) []float64 {
	series, err := l.svc.CommodityChannelIndex(ctx, symbol, days)
	if err != nil {
		logx.WithContext(ctx).Errorf("commodity channel index: %v", err)
		return nil
	}
	return series
}

// IchimokuCloud returns the cloud components, or the zero value on any
// failure.
func (l *Legacy) IchimokuCloud(ctx context.Context, symbol string) indicators.IchimokuCloud {
	cloud, err := l.svc.IchimokuCloud(ctx, symbol)
	if err != nil {
		logx.WithContext(ctx).Errorf("ichimoku cloud: %v", err)
		return indicators.IchimokuCloud{}
	}
	return cloud
}

// FibonacciRetracement returns the five levels, or zeros on any failure.
func (l *Legacy) FibonacciRetracement(ctx context.Context, symbol string) [5]float64 {
	levels, err := l.svc.FibonacciRetracement(ctx, symbol)
	if err != nil {
		logx.WithContext(ctx).Errorf("fibonacci retracement: %v", err)
		return [5]float64{}
	}
	return levels
}

// SupportResistance returns (support, resistance), or (0, 0) on any failure.
func (l *Legacy) SupportResistance(ctx context.Context, symbol string, days int) (float64, float64) {
	support, resistance, err := l.svc.SupportResistance(ctx, symbol, days)
	if err != nil {
		logx.WithContext(ctx).Errorf("support resistance: %v", err)
		return 0, 0
	}
	return support, resistance
}

// Beta returns the beta versus the benchmark, or 0 on any failure.
func (l *Legacy) Beta(ctx context.Context, symbol string, days int, benchmark string) float64 {
	v, err := l.svc.Beta(ctx, symbol, days, benchmark)
	return l.zeroOnError(ctx, "beta", v, err)
}

package analysis

import (
	"context"

	"stockfetch/pkg/indicators"
)

// Default lookbacks for the indicator operations, in trading days.
const (
	DefaultMAWindow    = 50
	DefaultRSIWindow   = 14
	DefaultStochWindow = 14
	DefaultBandsWindow = 20
	DefaultADXWindow   = 14
	DefaultCCIWindow   = 20

	macdLookback     = 50
	ichimokuLookback = 78
	fibLookback      = 50

	resultDigits = 4
)

// MovingAverageAbsolute averages the closes between two explicit dates
// (dd-mm-yyyy), using every bar in the range as the window.
func (s *Service) MovingAverageAbsolute(ctx context.Context, symbol, from, to string) (float64, error) {
	bars, err := s.equityBars(ctx, symbol, from, to)
	if err != nil {
		return 0, err
	}
	v, err := indicators.SMAAll(indicators.Closes(bars))
	if err != nil {
		return 0, err
	}
	return indicators.Round(v, resultDigits), nil
}

// SimpleMovingAverage computes the SMA of the past `days` trading days.
func (s *Service) SimpleMovingAverage(ctx context.Context, symbol string, days int) (float64, error) {
	bars, err := s.equityBarsLookback(ctx, symbol, days)
	if err != nil {
		return 0, err
	}
	v, err := indicators.SMA(indicators.Closes(bars), days)
	if err != nil {
		return 0, err
	}
	return indicators.Round(v, resultDigits), nil
}

// ExponentialMovingAverage computes the EMA with span `days`.
func (s *Service) ExponentialMovingAverage(ctx context.Context, symbol string, days int) (float64, error) {
	bars, err := s.equityBarsLookback(ctx, symbol, days)
	if err != nil {
		return 0, err
	}
	v, err := indicators.EMA(indicators.Closes(bars), days)
	if err != nil {
		return 0, err
	}
	return indicators.Round(v, resultDigits), nil
}

// DoubleExponentialMovingAverage computes the DEMA with span `days`.
func (s *Service) DoubleExponentialMovingAverage(ctx context.Context, symbol string, days int) (float64, error) {
	bars, err := s.equityBarsLookback(ctx, symbol, days)
	if err != nil {
		return 0, err
	}
	v, err := indicators.DEMA(indicators.Closes(bars), days)
	if err != nil {
		return 0, err
	}
	return indicators.Round(v, resultDigits), nil
}

// TripleExponentialMovingAverage computes the TEMA with span `days`.
func (s *Service) TripleExponentialMovingAverage(ctx context.Context, symbol string, days int) (float64, error) {
	bars, err := s.equityBarsLookback(ctx, symbol, days)
	if err != nil {
		return 0, err
	}
	v, err := indicators.TEMA(indicators.Closes(bars), days)
	if err != nil {
		return 0, err
	}
	return indicators.Round(v, resultDigits), nil
}

// RelativeStrengthIndex computes the RSI over `days`, optionally with
// Wilder's smoothing. The extra bar covers the first price difference.
func (s *Service) RelativeStrengthIndex(ctx context.Context, symbol string, days int, wilder bool) (float64, error) {
	lookback := days + 1
	if wilder {
		lookback = 2 * days
	}
	bars, err := s.equityBarsLookback(ctx, symbol, lookback)
	if err != nil {
		return 0, err
	}
	v, err := indicators.RSI(indicators.Closes(bars), days, wilder)
	if err != nil {
		return indicators.Round(v, resultDigits), err
	}
	return indicators.Round(v, resultDigits), nil
}

// MACD computes the latest MACD value with the standard 12/26 spans.
func (s *Service) MACD(ctx context.Context, symbol string) (float64, error) {
	bars, err := s.equityBarsLookback(ctx, symbol, macdLookback)
	if err != nil {
		return 0, err
	}
	v, err := indicators.MACD(indicators.Closes(bars))
	if err != nil {
		return 0, err
	}
	return indicators.Round(v, resultDigits), nil
}

// MACDWithSignal computes the latest MACD value and its 9-span signal line.
func (s *Service) MACDWithSignal(ctx context.Context, symbol string) (macd, signal float64, err error) {
	bars, err := s.equityBarsLookback(ctx, symbol, macdLookback)
	if err != nil {
		return 0, 0, err
	}
	macd, signal, err = indicators.MACDWithSignal(indicators.Closes(bars))
	if err != nil {
		return 0, 0, err
	}
	return indicators.Round(macd, resultDigits), indicators.Round(signal, resultDigits), nil
}

// StochasticOscillator computes %K over the standard 14-day window.
func (s *Service) StochasticOscillator(ctx context.Context, symbol string) (float64, error) {
	bars, err := s.equityBarsLookback(ctx, symbol, DefaultStochWindow)
	if err != nil {
		return 0, err
	}
	v, err := indicators.Stochastic(bars, DefaultStochWindow)
	if err != nil {
		return indicators.Round(v, resultDigits), err
	}
	return indicators.Round(v, resultDigits), nil
}

// BollingerBands computes the 20-day, 2-sigma bands.
func (s *Service) BollingerBands(ctx context.Context, symbol string) (indicators.BollingerBands, error) {
	bars, err := s.equityBarsLookback(ctx, symbol, DefaultBandsWindow)
	if err != nil {
		return indicators.BollingerBands{}, err
	}
	bands, err := indicators.Bollinger(indicators.Closes(bars), DefaultBandsWindow, 2)
	if err != nil {
		return indicators.BollingerBands{}, err
	}
	bands.Upper = indicators.Round(bands.Upper, resultDigits)
	bands.Middle = indicators.Round(bands.Middle, resultDigits)
	bands.Lower = indicators.Round(bands.Lower, resultDigits)
	return bands, nil
}

// AverageDirectionalIndex computes the ADX over `days` using the requested
// smoothing method.
func (s *Service) AverageDirectionalIndex(ctx context.Context, symbol string, days int, method indicators.ADXMethod) (float64, error) {
	bars, err := s.equityBarsLookback(ctx, symbol, 2*days)
	if err != nil {
		return 0, err
	}
	v, err := indicators.ADX(bars, days, method)
	if err != nil {
		return 0, err
	}
	return indicators.Round(v, resultDigits), nil
}

// CommodityChannelIndex returns the full CCI series over `days`, fetching a
// doubled buffer so the rolling windows are populated.
func (s *Service) CommodityChannelIndex(ctx context.Context, symbol string, days int) ([]float64, error) {
	bars, err := s.equityBarsLookback(ctx, symbol, 2*days)
	if err != nil {
		return nil, err
	}
	series, err := indicators.CCI(bars, days)
	if err != nil {
		return nil, err
	}
	for i, v := range series {
		series[i] = indicators.Round(v, resultDigits)
	}
	return series, nil
}

// IchimokuCloud computes the five Ichimoku components.
func (s *Service) IchimokuCloud(ctx context.Context, symbol string) (indicators.IchimokuCloud, error) {
	bars, err := s.equityBarsLookback(ctx, symbol, ichimokuLookback)
	if err != nil {
		return indicators.IchimokuCloud{}, err
	}
	cloud, err := indicators.Ichimoku(bars)
	if err != nil {
		return indicators.IchimokuCloud{}, err
	}
	cloud.TenkanSen = indicators.Round(cloud.TenkanSen, resultDigits)
	cloud.KijunSen = indicators.Round(cloud.KijunSen, resultDigits)
	cloud.SenkouSpanA = indicators.Round(cloud.SenkouSpanA, resultDigits)
	cloud.SenkouSpanB = indicators.Round(cloud.SenkouSpanB, resultDigits)
	cloud.ChikouSpan = indicators.Round(cloud.ChikouSpan, resultDigits)
	return cloud, nil
}

// FibonacciRetracement computes the five projection levels from the latest
// bar's range.
func (s *Service) FibonacciRetracement(ctx context.Context, symbol string) ([5]float64, error) {
	bars, err := s.equityBarsLookback(ctx, symbol, fibLookback)
	if err != nil {
		return [5]float64{}, err
	}
	levels, err := indicators.Fibonacci(bars)
	if err != nil {
		return [5]float64{}, err
	}
	for i, v := range levels {
		levels[i] = indicators.Round(v, resultDigits)
	}
	return levels, nil
}

// SupportResistance computes classic pivot support and resistance from the
// latest bar of the lookback.
func (s *Service) SupportResistance(ctx context.Context, symbol string, days int) (support, resistance float64, err error) {
	bars, err := s.equityBarsLookback(ctx, symbol, days)
	if err != nil {
		return 0, 0, err
	}
	support, resistance, err = indicators.PivotLevels(bars)
	if err != nil {
		return 0, 0, err
	}
	return indicators.Round(support, resultDigits), indicators.Round(resistance, resultDigits), nil
}

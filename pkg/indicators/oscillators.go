package indicators

import "math"

// RSI computes the Relative Strength Index from day-over-day gains and
// losses. The default path uses simple rolling means of gains and losses;
// wilder switches to Wilder's recursive smoothing seeded with the first
// window's simple means.
//
// A window with zero average loss makes RS undefined; the raw float result
// (100 when gains are present, NaN when the window is completely flat) is
// returned alongside ErrDegenerate so legacy callers can keep it.
func RSI(values []float64, window int, wilder bool) (float64, error) {
	if window <= 0 {
		return 0, ErrInvalidWindow
	}
	if len(values) < window+1 {
		return 0, ErrInsufficientData
	}

	deltas := diff(values)
	gains := make([]float64, 0, len(deltas)-1)
	losses := make([]float64, 0, len(deltas)-1)
	for _, d := range deltas[1:] {
		gains = append(gains, math.Max(d, 0))
		losses = append(losses, math.Max(-d, 0))
	}

	var avgGain, avgLoss float64
	if wilder {
		avgGain = mean(gains[:window])
		avgLoss = mean(losses[:window])
		for i := window; i < len(gains); i++ {
			avgGain = (avgGain*float64(window-1) + gains[i]) / float64(window)
			avgLoss = (avgLoss*float64(window-1) + losses[i]) / float64(window)
		}
	} else {
		avgGain = mean(gains[len(gains)-window:])
		avgLoss = mean(losses[len(losses)-window:])
	}

	rs := avgGain / avgLoss
	rsi := 100 - 100/(1+rs)
	if avgLoss == 0 {
		return rsi, ErrDegenerate
	}
	return rsi, nil
}

// Stochastic computes the %K stochastic oscillator over the given window:
// 100 * (lastClose - lowestLow) / (highestHigh - lowestLow).
//
// When every bar in the window trades at the same level the denominator is
// zero; the raw NaN is returned alongside ErrDegenerate.
func Stochastic(bars []Bar, window int) (float64, error) {
	if window <= 0 {
		return 0, ErrInvalidWindow
	}
	if len(bars) < window {
		return 0, ErrInsufficientData
	}

	tail := bars[len(bars)-window:]
	low := tail[0].Low
	high := tail[0].High
	for _, b := range tail[1:] {
		low = math.Min(low, b.Low)
		high = math.Max(high, b.High)
	}

	lastClose := bars[len(bars)-1].Close
	k := 100 * (lastClose - low) / (high - low)
	if high == low {
		return k, ErrDegenerate
	}
	return k, nil
}

// CCI computes the Commodity Channel Index series over the given window:
// typical price (H+L+C)/3, its rolling mean, and the mean absolute deviation
// of each window from that window's own mean, combined as
// (TP - SMA(TP)) / (0.015 * MAD).
//
// Unlike the scalar indicators this returns the whole aligned series, with
// NaN for positions before the first complete window; the last element is
// the current reading.
func CCI(bars []Bar, window int) ([]float64, error) {
	if window <= 0 {
		return nil, ErrInvalidWindow
	}
	if len(bars) < window {
		return nil, ErrInsufficientData
	}

	tp := make([]float64, len(bars))
	for i, b := range bars {
		tp[i] = (b.High + b.Low + b.Close) / 3
	}

	sma := rollingMean(tp, window)
	cci := nanSeries(len(bars))
	for i := window - 1; i < len(tp); i++ {
		w := tp[i-window+1 : i+1]
		m := mean(w)
		var mad float64
		for _, v := range w {
			mad += math.Abs(v - m)
		}
		mad /= float64(window)
		cci[i] = (tp[i] - sma[i]) / (0.015 * mad)
	}
	return cci, nil
}

package indicators

// Ichimoku component windows.
const (
	tenkanWindow  = 9
	kijunWindow   = 26
	senkouWindow  = 52
	ichimokuShift = 26
)

// IchimokuCloud holds the five Ichimoku components as of the latest bar.
// SenkouSpanA and SenkouSpanB are the spans currently projected onto the
// latest bar (computed 26 periods ago); ChikouSpan is the latest close, the
// value the lagging line plots 26 periods back.
type IchimokuCloud struct {
	TenkanSen   float64
	KijunSen    float64
	SenkouSpanA float64
	SenkouSpanB float64
	ChikouSpan  float64
}

// Ichimoku computes the Ichimoku Cloud. Requires at least 78 bars
// (52-period span shifted forward 26 periods).
func Ichimoku(bars []Bar) (IchimokuCloud, error) {
	if len(bars) < senkouWindow+ichimokuShift {
		return IchimokuCloud{}, ErrInsufficientData
	}

	highs := make([]float64, len(bars))
	lows := make([]float64, len(bars))
	for i, b := range bars {
		highs[i] = b.High
		lows[i] = b.Low
	}

	midpoint := func(window, at int) float64 {
		high := highs[at]
		low := lows[at]
		for i := at - window + 1; i < at; i++ {
			if highs[i] > high {
				high = highs[i]
			}
			if lows[i] < low {
				low = lows[i]
			}
		}
		return (high + low) / 2
	}

	last := len(bars) - 1
	shifted := last - ichimokuShift
	return IchimokuCloud{
		TenkanSen:   midpoint(tenkanWindow, last),
		KijunSen:    midpoint(kijunWindow, last),
		SenkouSpanA: (midpoint(tenkanWindow, shifted) + midpoint(kijunWindow, shifted)) / 2,
		SenkouSpanB: midpoint(senkouWindow, shifted),
		ChikouSpan:  bars[last].Close,
	}, nil
}

// Fibonacci ratios applied to the last bar's range.
var fibonacciRatios = [5]float64{0.236, 0.382, 0.500, 0.618, 0.786}

// Fibonacci computes retracement levels anchored on the latest bar: each
// level is lastClose + ratio*(lastHigh - lastLow).
//
// This deliberately preserves the upstream formula, which anchors off the
// last close rather than retracing from the swing high as the textbook
// definition does.
func Fibonacci(bars []Bar) ([5]float64, error) {
	if len(bars) == 0 {
		return [5]float64{}, ErrInsufficientData
	}

	last := bars[len(bars)-1]
	span := last.High - last.Low
	var levels [5]float64
	for i, ratio := range fibonacciRatios {
		levels[i] = last.Close + ratio*span
	}
	return levels, nil
}

// PivotLevels computes classic pivot-point support and resistance from the
// latest bar: pivot = (H+L+C)/3, support = 2*pivot - H, resistance =
// 2*pivot - L.
func PivotLevels(bars []Bar) (support, resistance float64, err error) {
	if len(bars) == 0 {
		return 0, 0, ErrInsufficientData
	}

	last := bars[len(bars)-1]
	pivot := (last.High + last.Low + last.Close) / 3
	return 2*pivot - last.High, 2*pivot - last.Low, nil
}

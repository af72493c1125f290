package indicators

import "math"

// ADXMethod selects between the two supported ADX formulations.
type ADXMethod int

const (
	// ADXLegacy reproduces the upstream two-stage rolling-mean pipeline
	// verbatim, including its divergences from Wilder's definition (the
	// minus directional movement keeps its sign and DX is smoothed with a
	// plain rolling mean). Kept for output compatibility with existing
	// consumers.
	ADXLegacy ADXMethod = iota
	// ADXWilder is the standard Wilder ADX: smoothed TR and directional
	// movement, then recursive smoothing of DX.
	ADXWilder
)

// ADX computes the Average Directional Index over the given window using the
// selected method. Requires at least 2*window bars.
func ADX(bars []Bar, window int, method ADXMethod) (float64, error) {
	if window <= 0 {
		return 0, ErrInvalidWindow
	}
	if len(bars) < 2*window {
		return 0, ErrInsufficientData
	}
	switch method {
	case ADXLegacy:
		return adxLegacy(bars, window)
	case ADXWilder:
		return adxWilder(bars, window)
	default:
		return 0, ErrInvalidWindow
	}
}

func trueRange(bars []Bar) []float64 {
	tr := make([]float64, len(bars))
	for i, b := range bars {
		tr[i] = b.High - b.Low
		if i == 0 {
			continue
		}
		prevClose := bars[i-1].Close
		tr[i] = math.Max(tr[i], math.Max(math.Abs(b.High-prevClose), math.Abs(b.Low-prevClose)))
	}
	return tr
}

func adxLegacy(bars []Bar, window int) (float64, error) {
	n := len(bars)
	plusDM := nanSeries(n)
	minusDM := nanSeries(n)
	for i := 1; i < n; i++ {
		highDiff := bars[i].High - bars[i-1].High
		lowDiff := bars[i].Low - bars[i-1].Low
		plusDM[i] = math.Max(highDiff, 0)
		// Negative values are retained here, matching the original pipeline.
		minusDM[i] = math.Min(lowDiff, 0)
	}

	atr := rollingMean(trueRange(bars), window)
	plusSmooth := rollingMean(plusDM, window)
	minusSmooth := rollingMean(minusDM, window)

	dx := nanSeries(n)
	for i := range dx {
		plusDI := 100 * plusSmooth[i] / atr[i]
		minusDI := 100 * minusSmooth[i] / atr[i]
		dx[i] = 100 * math.Abs(plusDI-minusDI) / (plusDI + minusDI)
	}

	adx, ok := lastValid(rollingMean(dx, window))
	if !ok {
		return adx, ErrInsufficientData
	}
	if math.IsInf(adx, 0) {
		return adx, ErrDegenerate
	}
	return adx, nil
}

func adxWilder(bars []Bar, window int) (float64, error) {
	n := len(bars)
	tr := trueRange(bars)

	plusDM := make([]float64, n)
	minusDM := make([]float64, n)
	for i := 1; i < n; i++ {
		up := bars[i].High - bars[i-1].High
		down := bars[i-1].Low - bars[i].Low
		if up > down && up > 0 {
			plusDM[i] = up
		}
		if down > up && down > 0 {
			minusDM[i] = down
		}
	}

	var smoothTR, smoothPlus, smoothMinus float64
	for i := 1; i <= window; i++ {
		smoothTR += tr[i]
		smoothPlus += plusDM[i]
		smoothMinus += minusDM[i]
	}

	dxAt := func() float64 {
		if smoothTR == 0 {
			return math.NaN()
		}
		plusDI := 100 * smoothPlus / smoothTR
		minusDI := 100 * smoothMinus / smoothTR
		if plusDI+minusDI == 0 {
			return math.NaN()
		}
		return 100 * math.Abs(plusDI-minusDI) / (plusDI + minusDI)
	}

	dxSum := dxAt()
	count := 1
	var adx float64
	for i := window + 1; i < n; i++ {
		smoothTR = smoothTR - smoothTR/float64(window) + tr[i]
		smoothPlus = smoothPlus - smoothPlus/float64(window) + plusDM[i]
		smoothMinus = smoothMinus - smoothMinus/float64(window) + minusDM[i]

		dx := dxAt()
		count++
		if count < window {
			dxSum += dx
			continue
		}
		if count == window {
			adx = (dxSum + dx) / float64(window)
			continue
		}
		adx = (adx*float64(window-1) + dx) / float64(window)
	}

	if math.IsNaN(adx) {
		return adx, ErrDegenerate
	}
	return adx, nil
}

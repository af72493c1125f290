package indicators

// BollingerBands holds the three band values.
type BollingerBands struct {
	Upper  float64
	Middle float64
	Lower  float64
}

// Bollinger computes Bollinger Bands over the given window: middle is the
// rolling mean of closes, upper/lower are middle +/- k sample standard
// deviations.
func Bollinger(values []float64, window int, k float64) (BollingerBands, error) {
	if window <= 1 {
		return BollingerBands{}, ErrInvalidWindow
	}
	if len(values) < window {
		return BollingerBands{}, ErrInsufficientData
	}

	middle, err := SMA(values, window)
	if err != nil {
		return BollingerBands{}, err
	}
	std, _ := lastValid(rollingStd(values, window))
	return BollingerBands{
		Upper:  middle + k*std,
		Middle: middle,
		Lower:  middle - k*std,
	}, nil
}

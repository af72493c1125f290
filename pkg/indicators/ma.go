package indicators

// SMAAll returns the mean of the entire series, the "absolute" moving average
// over whatever range was fetched.
func SMAAll(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrInsufficientData
	}
	return mean(values), nil
}

// SMA returns the last value of the rolling window-mean of the series.
func SMA(values []float64, window int) (float64, error) {
	if window <= 0 {
		return 0, ErrInvalidWindow
	}
	if len(values) < window {
		return 0, ErrInsufficientData
	}
	return mean(values[len(values)-window:]), nil
}

// EWMA returns the full exponentially weighted series for the given span
// without bias adjustment: y[0] = x[0], y[i] = a*x[i] + (1-a)*y[i-1] where
// a = 2/(span+1).
func EWMA(values []float64, span int) ([]float64, error) {
	if span <= 0 {
		return nil, ErrInvalidWindow
	}
	if len(values) == 0 {
		return nil, ErrInsufficientData
	}
	alpha := 2.0 / float64(span+1)
	result := make([]float64, len(values))
	result[0] = values[0]
	for i := 1; i < len(values); i++ {
		result[i] = alpha*values[i] + (1-alpha)*result[i-1]
	}
	return result, nil
}

// EMA returns the last value of the exponentially weighted series.
func EMA(values []float64, span int) (float64, error) {
	series, err := EWMA(values, span)
	if err != nil {
		return 0, err
	}
	return series[len(series)-1], nil
}

// DEMA returns the last value of 2*EMA - EMA(EMA).
func DEMA(values []float64, span int) (float64, error) {
	ema, err := EWMA(values, span)
	if err != nil {
		return 0, err
	}
	ema2, err := EWMA(ema, span)
	if err != nil {
		return 0, err
	}
	last := len(values) - 1
	return 2*ema[last] - ema2[last], nil
}

// TEMA returns the last value of 3*(EMA - EMA2) + EMA3, where EMA2 = EMA(EMA)
// and EMA3 = EMA(EMA2).
func TEMA(values []float64, span int) (float64, error) {
	ema, err := EWMA(values, span)
	if err != nil {
		return 0, err
	}
	ema2, err := EWMA(ema, span)
	if err != nil {
		return 0, err
	}
	ema3, err := EWMA(ema2, span)
	if err != nil {
		return 0, err
	}
	last := len(values) - 1
	return 3*(ema[last]-ema2[last]) + ema3[last], nil
}

// Standard MACD spans.
const (
	macdFastSpan   = 12
	macdSlowSpan   = 26
	macdSignalSpan = 9
)

// MACD returns the last value of the 12/26 moving average convergence
// divergence line.
func MACD(values []float64) (float64, error) {
	macd, _, err := macdSeries(values)
	if err != nil {
		return 0, err
	}
	return macd[len(macd)-1], nil
}

// MACDWithSignal returns the last values of the MACD line and its 9-span
// signal line.
func MACDWithSignal(values []float64) (macd, signal float64, err error) {
	macdLine, signalLine, err := macdSeries(values)
	if err != nil {
		return 0, 0, err
	}
	last := len(macdLine) - 1
	return macdLine[last], signalLine[last], nil
}

func macdSeries(values []float64) ([]float64, []float64, error) {
	fast, err := EWMA(values, macdFastSpan)
	if err != nil {
		return nil, nil, err
	}
	slow, err := EWMA(values, macdSlowSpan)
	if err != nil {
		return nil, nil, err
	}
	macd := make([]float64, len(values))
	for i := range values {
		macd[i] = fast[i] - slow[i]
	}
	signal, err := EWMA(macd, macdSignalSpan)
	if err != nil {
		return nil, nil, err
	}
	return macd, signal, nil
}

package indicators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// trendingBars builds n bars in a steady uptrend with a fixed daily range.
func trendingBars(n int) []Bar {
	bars := make([]Bar, n)
	for i := range bars {
		base := 100 + float64(i)
		bars[i] = Bar{Open: base, High: base + 2, Low: base - 2, Close: base + 1}
	}
	return bars
}

func TestADXRequiresHistory(t *testing.T) {
	bars := trendingBars(10)

	_, err := ADX(bars, 14, ADXLegacy)
	assert.ErrorIs(t, err, ErrInsufficientData)

	_, err = ADX(bars, 0, ADXLegacy)
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestADXLegacyUptrend(t *testing.T) {
	// In a steady uptrend from bar 1 on: +DM = 1 every day, -DM = min(1, 0)
	// = 0, TR = 4. Rolling means give plusDI = 25, minusDI = 0, DX = 100,
	// smoothed to ADX = 100.
	bars := trendingBars(29)

	v, err := ADX(bars, 14, ADXLegacy)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, v, 1e-9)
}

func TestADXWilderUptrend(t *testing.T) {
	// Same uptrend: minusDM stays zero under Wilder's rules too, so every
	// DX is 100 and the recursive smoothing converges on 100.
	bars := trendingBars(40)

	v, err := ADX(bars, 14, ADXWilder)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, v, 1e-9)
}

func TestADXMethodsDivergeOnDowntrend(t *testing.T) {
	// On a downtrend the legacy pipeline keeps -DM negative while Wilder
	// flips it positive, so the two readings differ.
	n := 40
	bars := make([]Bar, n)
	for i := range bars {
		base := 200 - float64(i)
		bars[i] = Bar{Open: base, High: base + 2, Low: base - 2, Close: base - 1}
	}

	wilder, err := ADX(bars, 14, ADXWilder)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, wilder, 1e-9)

	// The retained sign makes plusDI+minusDI negative, so legacy DX and
	// therefore ADX come out at -100 on this series.
	legacy, err := ADX(bars, 14, ADXLegacy)
	require.NoError(t, err)
	assert.InDelta(t, -100.0, legacy, 1e-9)
}

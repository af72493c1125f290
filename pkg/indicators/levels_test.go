package indicators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIchimokuConstantSeries(t *testing.T) {
	// Every midpoint of a constant series is the series level itself.
	bars := make([]Bar, 80)
	for i := range bars {
		bars[i] = Bar{High: 105, Low: 95, Close: 100}
	}

	cloud, err := Ichimoku(bars)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, cloud.TenkanSen, 1e-9)
	assert.InDelta(t, 100.0, cloud.KijunSen, 1e-9)
	assert.InDelta(t, 100.0, cloud.SenkouSpanA, 1e-9)
	assert.InDelta(t, 100.0, cloud.SenkouSpanB, 1e-9)
	assert.InDelta(t, 100.0, cloud.ChikouSpan, 1e-9)
}

func TestIchimokuTrend(t *testing.T) {
	// Linear uptrend: the d-bar midpoint at index i is the average of the
	// window's endpoints, base(i) - (d-1)/2.
	bars := make([]Bar, 80)
	for i := range bars {
		base := 100 + float64(i)
		bars[i] = Bar{High: base + 1, Low: base - 1, Close: base}
	}

	cloud, err := Ichimoku(bars)
	require.NoError(t, err)
	last := 100.0 + 79
	shifted := last - 26
	assert.InDelta(t, last-4, cloud.TenkanSen, 1e-9)
	assert.InDelta(t, last-12.5, cloud.KijunSen, 1e-9)
	assert.InDelta(t, shifted-8.25, cloud.SenkouSpanA, 1e-9)
	assert.InDelta(t, shifted-25.5, cloud.SenkouSpanB, 1e-9)
	assert.InDelta(t, last, cloud.ChikouSpan, 1e-9)
}

func TestIchimokuInsufficientData(t *testing.T) {
	_, err := Ichimoku(make([]Bar, 77))
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestFibonacci(t *testing.T) {
	bars := []Bar{{High: 110, Low: 100, Close: 104}}

	levels, err := Fibonacci(bars)
	require.NoError(t, err)
	assert.InDelta(t, 104+0.236*10, levels[0], 1e-9)
	assert.InDelta(t, 104+0.382*10, levels[1], 1e-9)
	assert.InDelta(t, 104+0.500*10, levels[2], 1e-9)
	assert.InDelta(t, 104+0.618*10, levels[3], 1e-9)
	assert.InDelta(t, 104+0.786*10, levels[4], 1e-9)

	_, err = Fibonacci(nil)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestPivotLevels(t *testing.T) {
	bars := []Bar{{High: 112, Low: 100, Close: 106}}

	support, resistance, err := PivotLevels(bars)
	require.NoError(t, err)
	// pivot = (112+100+106)/3 = 106
	assert.InDelta(t, 100.0, support, 1e-9)
	assert.InDelta(t, 112.0, resistance, 1e-9)

	_, _, err = PivotLevels(nil)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

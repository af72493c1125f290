package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLegacyReturnsValues(t *testing.T) {
	fetcher := &stubFetcher{
		now:        wednesday,
		equityBars: dailyBars(wednesday.AddDate(0, 0, -7), 1, 2, 3, 4, 5),
	}
	legacy := NewLegacy(New(fetcher))
	ctx := context.Background()

	assert.InDelta(t, 3.0, legacy.SimpleMovingAverage(ctx, "SBIN", 5), 1e-9)
	assert.InDelta(t, 3.6944, legacy.ExponentialMovingAverage(ctx, "SBIN", 4), 1e-9)
}

func TestLegacyZeroOnError(t *testing.T) {
	fetcher := &stubFetcher{
		now:       wednesday,
		eqSymbols: map[string]bool{}, // nothing validates
	}
	legacy := NewLegacy(New(fetcher))
	ctx := context.Background()

	assert.Zero(t, legacy.SimpleMovingAverage(ctx, "NOPE", 5))
	assert.Zero(t, legacy.MACD(ctx, "NOPE"))
	assert.Zero(t, legacy.Beta(ctx, "NOPE", 30, "NIFTY 50"))

	upper, middle, lower := legacy.BollingerBands(ctx, "NOPE")
	assert.Zero(t, upper)
	assert.Zero(t, middle)
	assert.Zero(t, lower)

	macd, signal := legacy.MACDWithSignal(ctx, "NOPE")
	assert.Zero(t, macd)
	assert.Zero(t, signal)

	assert.Nil(t, legacy.CommodityChannelIndex(ctx, "NOPE", 20))
	assert.Zero(t, legacy.IchimokuCloud(ctx, "NOPE"))
	assert.Zero(t, legacy.FibonacciRetracement(ctx, "NOPE"))

	support, resistance := legacy.SupportResistance(ctx, "NOPE", 15)
	assert.Zero(t, support)
	assert.Zero(t, resistance)
}

func TestLegacySupportResistancePassThrough(t *testing.T) {
	fetcher := &stubFetcher{
		now:        wednesday,
		equityBars: dailyBars(wednesday.AddDate(0, 0, -7), 104, 105, 106),
	}
	legacy := NewLegacy(New(fetcher))

	support, resistance := legacy.SupportResistance(context.Background(), "SBIN", 3)
	assert.InDelta(t, 105.0, support, 1e-9)
	assert.InDelta(t, 107.0, resistance, 1e-9)
}

func TestLegacyKeepsDegenerateRSI(t *testing.T) {
	fetcher := &stubFetcher{
		now:        wednesday,
		equityBars: dailyBars(wednesday.AddDate(0, 0, -4), 100, 101, 102),
	}
	legacy := NewLegacy(New(fetcher))

	// A pure uptrend makes RS undefined; the raw 100 passes through rather
	// than collapsing to the zero sentinel.
	v := legacy.RelativeStrengthIndex(context.Background(), "SBIN", 2, false)
	assert.InDelta(t, 100.0, v, 1e-9)
}

func TestLegacyStochasticZeroOnInsufficientData(t *testing.T) {
	fetcher := &stubFetcher{
		now:        wednesday,
		equityBars: dailyBars(wednesday.AddDate(0, 0, -3), 100, 101),
	}
	legacy := NewLegacy(New(fetcher))

	require.Len(t, fetcher.equityBars, 2)
	assert.Zero(t, legacy.StochasticOscillator(context.Background(), "SBIN"))
}

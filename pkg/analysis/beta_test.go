package analysis

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockfetch/pkg/nse"
)

// betaFixture pairs equity bars whose daily returns are exactly twice the
// benchmark's on the same trade dates.
func betaFixture() *stubFetcher {
	return &stubFetcher{
		now: wednesday,
		equityBars: []nse.EquityBar{
			{Symbol: "SBIN", Date: "2025-09-01", Close: 100},
			{Symbol: "SBIN", Date: "2025-09-02", Close: 110},
			{Symbol: "SBIN", Date: "2025-09-03", Close: 132},
		},
		indexBars: []nse.IndexBar{
			{IndexName: "NIFTY 50", Date: "01 Sep 2025", Close: "100.00"},
			{IndexName: "NIFTY 50", Date: "02 Sep 2025", Close: "105.00"},
			{IndexName: "NIFTY 50", Date: "03 Sep 2025", Close: "115.50"},
		},
	}
}

func TestBeta(t *testing.T) {
	svc := New(betaFixture())

	// Equity returns {0.10, 0.20}, benchmark {0.05, 0.10}: beta is 2.
	beta, err := svc.Beta(context.Background(), "SBIN", 30, "NIFTY 50")
	require.NoError(t, err)
	assert.InDelta(t, 2.0, beta, 1e-9)
}

func TestBetaAlignsByDate(t *testing.T) {
	fetcher := betaFixture()
	// An extra benchmark session with no equity bar must be dropped by the
	// date join, leaving the aligned series untouched.
	fetcher.indexBars = append(fetcher.indexBars,
		nse.IndexBar{IndexName: "NIFTY 50", Date: "04 Sep 2025", Close: "999.99"})
	svc := New(fetcher)

	beta, err := svc.Beta(context.Background(), "SBIN", 30, "NIFTY 50")
	require.NoError(t, err)
	assert.InDelta(t, 2.0, beta, 1e-9)
}

func TestBetaRoundsToThreeDigits(t *testing.T) {
	fetcher := betaFixture()
	fetcher.equityBars[2].Close = 131 // returns {0.10, 0.190909...}
	svc := New(fetcher)

	beta, err := svc.Beta(context.Background(), "SBIN", 30, "NIFTY 50")
	require.NoError(t, err)
	assert.Equal(t, beta, math.Round(beta*1000)/1000)
}

func TestBetaFlatBenchmark(t *testing.T) {
	fetcher := betaFixture()
	for i := range fetcher.indexBars {
		fetcher.indexBars[i].Close = "100.00"
	}
	svc := New(fetcher)

	beta, err := svc.Beta(context.Background(), "SBIN", 30, "NIFTY 50")
	require.NoError(t, err)
	assert.True(t, math.IsInf(beta, 1))
}

func TestBetaDefaults(t *testing.T) {
	fetcher := betaFixture()
	svc := New(fetcher)

	// Zero days and empty benchmark fall back to the 365-day NIFTY 50 run.
	beta, err := svc.Beta(context.Background(), "SBIN", 0, "")
	require.NoError(t, err)
	assert.InDelta(t, 2.0, beta, 1e-9)
}

func TestBetaValidatesEquitySymbol(t *testing.T) {
	fetcher := betaFixture()
	fetcher.eqSymbols = map[string]bool{"SBIN": true}
	svc := New(fetcher)

	_, err := svc.Beta(context.Background(), "NOPE", 30, "NIFTY 50")
	assert.ErrorIs(t, err, nse.ErrInvalidSymbol)
}

func TestBetaParsesCommaSeparatedCloses(t *testing.T) {
	fetcher := betaFixture()
	fetcher.indexBars[0].Close = "22,100.00"
	fetcher.indexBars[1].Close = "22,321.00"
	fetcher.indexBars[2].Close = "22,652.50"
	svc := New(fetcher)

	_, err := svc.Beta(context.Background(), "SBIN", 30, "NIFTY 50")
	require.NoError(t, err)
}

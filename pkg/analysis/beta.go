package analysis

import (
	"context"
	"strings"
	"time"

	"stockfetch/pkg/indicators"
	"stockfetch/pkg/nse"
)

// DefaultBetaDays is the calendar lookback for beta when the caller does not
// choose one.
const DefaultBetaDays = 365

// DefaultBetaBenchmark is the index a beta is measured against by default.
const DefaultBetaBenchmark = "NIFTY 50"

// returnSeries is a date-aligned daily return series.
type returnSeries struct {
	dates   []time.Time
	changes []float64
}

// betaReturns fetches `days` calendar days of history for symbol and turns
// the closes into daily percent changes. Index symbols (anything containing
// "NIFTY") come from the index history endpoint, equities are validated
// against the listed universe first.
func (s *Service) betaReturns(ctx context.Context, symbol string, days int) (*returnSeries, error) {
	now := s.fetcher.Now()
	from := now.AddDate(0, 0, -days).Format(nse.QueryDateLayout)
	to := now.Format(nse.QueryDateLayout)

	var bars []indicators.Bar
	var err error
	if strings.Contains(strings.ToUpper(symbol), "NIFTY") {
		bars, err = s.indexCloses(ctx, symbol, from, to)
	} else {
		bars, err = s.equityBars(ctx, symbol, from, to)
	}
	if err != nil {
		return nil, err
	}

	closes := indicators.Closes(bars)
	changes := indicators.PctChange(closes)
	dates := make([]time.Time, len(changes))
	for i := range changes {
		dates[i] = bars[i+1].Date
	}
	return &returnSeries{dates: dates, changes: changes}, nil
}

// Beta measures the sensitivity of symbol's daily returns to the
// benchmark's over the past `days` calendar days. Return series are aligned
// by trade date before the covariance is taken; a flat benchmark yields
// +Inf. The result is rounded to three decimals.
func (s *Service) Beta(ctx context.Context, symbol string, days int, benchmark string) (float64, error) {
	if days <= 0 {
		days = DefaultBetaDays
	}
	if benchmark == "" {
		benchmark = DefaultBetaBenchmark
	}
	own, err := s.betaReturns(ctx, symbol, days)
	if err != nil {
		return 0, err
	}
	bench, err := s.betaReturns(ctx, benchmark, days)
	if err != nil {
		return 0, err
	}

	benchByDate := make(map[time.Time]float64, len(bench.dates))
	for i, d := range bench.dates {
		benchByDate[d] = bench.changes[i]
	}
	var x, y []float64
	for i, d := range own.dates {
		if bv, ok := benchByDate[d]; ok {
			x = append(x, own.changes[i])
			y = append(y, bv)
		}
	}

	beta, err := indicators.Beta(x, y)
	if err != nil {
		return 0, err
	}
	return indicators.Round(beta, 3), nil
}

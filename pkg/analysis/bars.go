package analysis

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"stockfetch/pkg/indicators"
	"stockfetch/pkg/nse"
)

// equityBars fetches daily bars for a validated equity symbol.
func (s *Service) equityBars(ctx context.Context, symbol, from, to string) ([]indicators.Bar, error) {
	if err := s.requireSymbol(ctx, symbol, false); err != nil {
		return nil, err
	}
	raw, err := s.fetcher.GetEquityHistory(ctx, symbol, from, to)
	if err != nil {
		return nil, err
	}
	bars := make([]indicators.Bar, 0, len(raw))
	for _, r := range raw {
		t, err := r.Time()
		if err != nil {
			return nil, err
		}
		bars = append(bars, indicators.Bar{
			Date:   t,
			Open:   r.Open,
			High:   r.High,
			Low:    r.Low,
			Close:  r.Close,
			Volume: r.Volume,
		})
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: no history for %s in %s..%s", nse.ErrUpstreamData, symbol, from, to)
	}
	return bars, nil
}

// equityBarsLookback fetches bars covering the past `days` trading days.
func (s *Service) equityBarsLookback(ctx context.Context, symbol string, days int) ([]indicators.Bar, error) {
	from, to, err := s.lookbackRange(ctx, days)
	if err != nil {
		return nil, err
	}
	return s.equityBars(ctx, symbol, from, to)
}

// indexCloses fetches index levels and parses the string-typed closes.
func (s *Service) indexCloses(ctx context.Context, index, from, to string) ([]indicators.Bar, error) {
	raw, err := s.fetcher.GetIndexHistory(ctx, index, from, to)
	if err != nil {
		return nil, err
	}
	bars := make([]indicators.Bar, 0, len(raw))
	for _, r := range raw {
		t, err := r.Time()
		if err != nil {
			return nil, err
		}
		closeVal, err := strconv.ParseFloat(strings.ReplaceAll(r.Close, ",", ""), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: index close %q", nse.ErrUpstreamData, r.Close)
		}
		bars = append(bars, indicators.Bar{Date: t, Close: closeVal})
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: no index history for %s in %s..%s", nse.ErrUpstreamData, index, from, to)
	}
	return bars, nil
}

// Package analysis composes the NSE client, option chain construction,
// pricing and the indicator engine into symbol-level operations.
package analysis

import (
	"context"
	"fmt"
	"sync"
	"time"

	"stockfetch/pkg/calendar"
	"stockfetch/pkg/nse"
)

// Fetcher is the slice of the NSE client the service depends on. *nse.Client
// satisfies it; tests substitute fixtures.
type Fetcher interface {
	IsValidSymbol(ctx context.Context, symbol string, fno bool) (bool, error)
	GetOptionChain(ctx context.Context, symbol string) (*nse.OptionChainPayload, error)
	GetDerivativeQuote(ctx context.Context, symbol string) (*nse.DerivativeQuote, error)
	GetEquityHistory(ctx context.Context, symbol, from, to string) ([]nse.EquityBar, error)
	GetIndexHistory(ctx context.Context, index, from, to string) ([]nse.IndexBar, error)
	GetHolidays(ctx context.Context, kind nse.HolidayType) (nse.HolidayCalendar, error)
	GetIndiaVIX(ctx context.Context) (float64, error)
	IsMarketOpenToday(ctx context.Context, segment string) (bool, error)
	Now() time.Time
}

// Service exposes symbol-level analytics over a Fetcher.
type Service struct {
	fetcher Fetcher

	calMu sync.Mutex
	cal   *calendar.Calendar
}

// New builds a Service on top of fetcher.
func New(fetcher Fetcher) *Service {
	return &Service{fetcher: fetcher}
}

// tradingCalendar lazily loads the F&O trading calendar, fetching the
// holiday list at most once per service.
func (s *Service) tradingCalendar(ctx context.Context) (*calendar.Calendar, error) {
	s.calMu.Lock()
	defer s.calMu.Unlock()
	if s.cal != nil {
		return s.cal, nil
	}
	hol, err := s.fetcher.GetHolidays(ctx, nse.HolidayTrading)
	if err != nil {
		return nil, err
	}
	s.cal = calendar.New(hol, "FO")
	return s.cal, nil
}

// lookbackRange computes the query range covering the past `days` trading
// days, anchored at the fetcher clock.
func (s *Service) lookbackRange(ctx context.Context, days int) (from, to string, err error) {
	if days <= 0 {
		return "", "", fmt.Errorf("%w: lookback of %d days", nse.ErrInvalidInput, days)
	}
	cal, err := s.tradingCalendar(ctx)
	if err != nil {
		return "", "", err
	}
	now := s.fetcher.Now()
	start := cal.PastTradingDate(now, days)
	return start.Format(nse.QueryDateLayout), now.Format(nse.QueryDateLayout), nil
}

// IsMarketOpenToday reports whether the given market segment trades today.
func (s *Service) IsMarketOpenToday(ctx context.Context, segment string) (bool, error) {
	return s.fetcher.IsMarketOpenToday(ctx, segment)
}

func (s *Service) requireSymbol(ctx context.Context, symbol string, fno bool) error {
	ok, err := s.fetcher.IsValidSymbol(ctx, symbol, fno)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %q", nse.ErrInvalidSymbol, symbol)
	}
	return nil
}

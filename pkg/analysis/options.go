package analysis

import (
	"context"
	"fmt"
	"time"

	"stockfetch/pkg/chain"
	"stockfetch/pkg/nse"
	"stockfetch/pkg/pricing"
)

// BuildOptionChain fetches the option chain for a validated F&O symbol and
// narrows it to one expiry and layout.
func (s *Service) BuildOptionChain(ctx context.Context, symbol string, sel chain.ExpirySelector, mode chain.Mode) (*chain.Chain, error) {
	if err := s.requireSymbol(ctx, symbol, true); err != nil {
		return nil, err
	}
	payload, err := s.fetcher.GetOptionChain(ctx, symbol)
	if err != nil {
		return nil, err
	}
	return chain.BuildAt(payload, symbol, sel, mode, s.fetcher.Now())
}

// PutCallRatio computes the open interest put/call ratio at the expiry with
// the given index in the payload's expiry list (0 is the nearest).
func (s *Service) PutCallRatio(ctx context.Context, symbol string, expiryIndex int) (float64, error) {
	if expiryIndex < 0 {
		return 0, fmt.Errorf("%w: expiry index %d", nse.ErrInvalidInput, expiryIndex)
	}
	if err := s.requireSymbol(ctx, symbol, true); err != nil {
		return 0, err
	}
	payload, err := s.fetcher.GetOptionChain(ctx, symbol)
	if err != nil {
		return 0, err
	}
	dates := payload.Records.ExpiryDates
	if expiryIndex >= len(dates) {
		return 0, fmt.Errorf("%w: expiry index %d, only %d expiries", nse.ErrInvalidInput, expiryIndex, len(dates))
	}
	built, err := chain.BuildAt(payload, symbol, chain.OnDate(dates[expiryIndex]), chain.ModeCompact, s.fetcher.Now())
	if err != nil {
		return 0, err
	}
	return built.PCR(), nil
}

// resolveQuoteExpiry maps "latest"/"next" onto the quote's filtered expiry
// list for the given instrument, or validates an explicit dd-MMM-yyyy date.
func (s *Service) resolveQuoteExpiry(quote *nse.DerivativeQuote, instrument, expiry string) (string, error) {
	switch expiry {
	case "latest", "next":
	default:
		if _, err := nse.ParseExpiryDate(expiry); err != nil {
			return "", err
		}
		return expiry, nil
	}
	dates, err := quote.InstrumentExpiryDates(instrument)
	if err != nil {
		return "", err
	}
	upcoming := nse.FilterExpiryDates(dates, s.fetcher.Now())
	idx := 0
	if expiry == "next" {
		idx = 1
	}
	if idx >= len(upcoming) {
		return "", fmt.Errorf("%w: no %s expiry for index %d", nse.ErrNotFound, instrument, idx)
	}
	return upcoming[idx], nil
}

// QuoteLTP returns the last traded price of one contract. expiry is
// "latest", "next" or an explicit dd-MMM-yyyy date; optionType is "CE",
// "PE", "FUT", or "-" for the underlying value itself.
func (s *Service) QuoteLTP(ctx context.Context, symbol, expiry, optionType string, strike float64) (float64, error) {
	quote, err := s.fetcher.GetDerivativeQuote(ctx, symbol)
	if err != nil {
		return 0, err
	}
	instrument := "Futures"
	switch optionType {
	case "CE", "PE":
		instrument = "Options"
	case "FUT":
	case "-", "":
		return quote.UnderlyingValue, nil
	default:
		return 0, fmt.Errorf("%w: option type %q", nse.ErrInvalidInput, optionType)
	}
	resolved, err := s.resolveQuoteExpiry(quote, instrument, expiry)
	if err != nil {
		return 0, err
	}
	return quote.LookupLTP(resolved, optionType, strike)
}

// ExpiryDetails returns the i-th upcoming expiry date for the instrument
// ("Futures" or "Options") and the days remaining until it.
func (s *Service) ExpiryDetails(ctx context.Context, symbol, instrument string, i int) (time.Time, int, error) {
	switch instrument {
	case "Futures", "Options":
	default:
		return time.Time{}, 0, fmt.Errorf("%w: instrument %q, must be Futures or Options", nse.ErrInvalidInput, instrument)
	}
	if i < 0 {
		return time.Time{}, 0, fmt.Errorf("%w: expiry index %d", nse.ErrInvalidInput, i)
	}
	quote, err := s.fetcher.GetDerivativeQuote(ctx, symbol)
	if err != nil {
		return time.Time{}, 0, err
	}
	dates, err := quote.InstrumentExpiryDates(instrument)
	if err != nil {
		return time.Time{}, 0, err
	}
	upcoming := nse.FilterExpiryDates(dates, s.fetcher.Now())
	if i >= len(upcoming) {
		return time.Time{}, 0, fmt.Errorf("%w: expiry index %d, only %d upcoming", nse.ErrInvalidInput, i, len(upcoming))
	}
	expiry, err := nse.ParseExpiryDate(upcoming[i])
	if err != nil {
		return time.Time{}, 0, err
	}
	now := s.fetcher.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	dte := int(expiry.Sub(today).Hours() / 24)
	return expiry, dte, nil
}

// BlackScholes prices an option. A zero volatility falls back to the
// current India VIX level.
func (s *Service) BlackScholes(ctx context.Context, in pricing.Input) (pricing.Result, error) {
	if in.VolatilityPct == 0 {
		vix, err := s.fetcher.GetIndiaVIX(ctx)
		if err != nil {
			return pricing.Result{}, err
		}
		in.VolatilityPct = vix
	}
	return pricing.Price(in)
}

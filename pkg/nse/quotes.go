package nse

import (
	"context"
	"fmt"
	"strings"
)

// GetOptionChain fetches the raw option chain for an underlying. Index
// underlyings route to the indices endpoint, everything else to equities.
func (c *Client) GetOptionChain(ctx context.Context, symbol string) (*OptionChainPayload, error) {
	up := strings.ToUpper(strings.TrimSpace(symbol))
	if up == "" {
		return nil, fmt.Errorf("%w: empty symbol", ErrInvalidInput)
	}
	endpoint := "option-chain-equities"
	if IsIndex(up) {
		endpoint = "option-chain-indices"
	}
	var payload OptionChainPayload
	u := fmt.Sprintf("%s/%s?symbol=%s", c.baseURL, endpoint, PurifySymbol(up))
	if err := c.fetchJSON(ctx, u, &payload); err != nil {
		return nil, err
	}
	if len(payload.Records.Data) == 0 && len(payload.Records.ExpiryDates) == 0 {
		return nil, fmt.Errorf("%w: empty option chain for %s", ErrUpstreamData, up)
	}
	return &payload, nil
}

// GetDerivativeQuote fetches the derivative quote for an F&O underlying,
// listing every active contract.
func (c *Client) GetDerivativeQuote(ctx context.Context, symbol string) (*DerivativeQuote, error) {
	up := strings.ToUpper(strings.TrimSpace(symbol))
	if up == "" {
		return nil, fmt.Errorf("%w: empty symbol", ErrInvalidInput)
	}
	var payload DerivativeQuote
	u := fmt.Sprintf("%s/quote-derivative?symbol=%s", c.baseURL, PurifySymbol(up))
	if err := c.fetchJSON(ctx, u, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// GetEquityQuote fetches the cash-market quote for a listed equity.
func (c *Client) GetEquityQuote(ctx context.Context, symbol string) (*EquityQuote, error) {
	up := strings.ToUpper(strings.TrimSpace(symbol))
	if up == "" {
		return nil, fmt.Errorf("%w: empty symbol", ErrInvalidInput)
	}
	var payload EquityQuote
	u := fmt.Sprintf("%s/quote-equity?symbol=%s", c.baseURL, PurifySymbol(up))
	if err := c.fetchJSON(ctx, u, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// ExpiryDates returns the option expiry dates of an F&O underlying, filtered
// to those on or after today and sorted ascending.
func (c *Client) ExpiryDates(ctx context.Context, symbol string) ([]string, error) {
	quote, err := c.GetDerivativeQuote(ctx, symbol)
	if err != nil {
		return nil, err
	}
	dates := quote.ExpiryDates
	if len(dates) == 0 {
		if byInstr := quote.ExpiryDatesByInstrument["OPTSTK"]; len(byInstr) > 0 {
			dates = byInstr
		} else if byInstr := quote.ExpiryDatesByInstrument["OPTIDX"]; len(byInstr) > 0 {
			dates = byInstr
		}
	}
	if len(dates) == 0 {
		return nil, fmt.Errorf("%w: no expiry dates for %s", ErrUpstreamData, symbol)
	}
	return FilterExpiryDates(dates, c.now()), nil
}

// InstrumentExpiryDates returns the expiry list for "Futures" or "Options"
// by scanning the instrument-keyed map for a key containing the instrument
// name.
func (q *DerivativeQuote) InstrumentExpiryDates(instrument string) ([]string, error) {
	needle := strings.ToLower(instrument)
	for key, dates := range q.ExpiryDatesByInstrument {
		if strings.Contains(strings.ToLower(key), needle) {
			return dates, nil
		}
	}
	return nil, fmt.Errorf("%w: no %s expiry dates", ErrNotFound, instrument)
}

// LookupLTP finds the last traded price of one contract inside the quote.
// optionType is "CE", "PE" or "FUT"; strike is ignored for futures. An
// optionType of "-" returns the underlying value instead.
func (q *DerivativeQuote) LookupLTP(expiryDate, optionType string, strike float64) (float64, error) {
	up := strings.ToUpper(optionType)
	switch up {
	case "CE", "PE", "FUT":
	case "-", "":
		return q.UnderlyingValue, nil
	default:
		return 0, fmt.Errorf("%w: option type %q", ErrInvalidInput, optionType)
	}
	instrument, want := "Futures", "Futures"
	switch up {
	case "CE":
		instrument, want = "Options", "Call"
	case "PE":
		instrument, want = "Options", "Put"
	}
	for _, stock := range q.Stocks {
		meta := stock.Metadata
		if !strings.Contains(meta.InstrumentType, instrument) {
			continue
		}
		if meta.ExpiryDate != expiryDate {
			continue
		}
		if want == "Futures" {
			return meta.LastPrice, nil
		}
		if strings.EqualFold(meta.OptionType, want) && meta.StrikePrice == strike {
			return meta.LastPrice, nil
		}
	}
	return 0, fmt.Errorf("%w: %s %s %.2f", ErrNotFound, expiryDate, up, strike)
}

// Package chain turns raw option chain payloads into per-strike tables for
// one expiry, in the two historical column layouts downstream consumers
// expect.
package chain

import (
	"fmt"
	"math"
	"time"

	"stockfetch/pkg/nse"
)

// Mode selects the table layout.
type Mode string

const (
	// ModeFull includes bid/ask depth and the chart placeholder columns.
	ModeFull Mode = "full"
	// ModeCompact carries only OI, volume, IV, LTP and net change.
	ModeCompact Mode = "compact"
)

// ExpirySelector picks one expiry out of a payload's expiry list.
type ExpirySelector struct {
	kind string // "latest", "next" or "date"
	date string
}

// Latest selects the nearest upcoming expiry.
func Latest() ExpirySelector { return ExpirySelector{kind: "latest"} }

// Next selects the expiry after the nearest one, falling back to the nearest
// when only one remains.
func Next() ExpirySelector { return ExpirySelector{kind: "next"} }

// OnDate selects a specific expiry in dd-MMM-yyyy format.
func OnDate(date string) ExpirySelector { return ExpirySelector{kind: "date", date: date} }

// Resolve applies the selector to the payload's expiry list. The candidate
// set for Latest and Next is every expiry on or after now, sorted ascending.
func (s ExpirySelector) Resolve(payload *nse.OptionChainPayload, now time.Time) (string, error) {
	dates := payload.Records.ExpiryDates
	switch s.kind {
	case "latest", "next":
		upcoming := nse.FilterExpiryDates(dates, now)
		if len(upcoming) == 0 {
			return "", fmt.Errorf("%w: payload has no upcoming expiry dates", nse.ErrUpstreamData)
		}
		if s.kind == "next" && len(upcoming) > 1 {
			return upcoming[1], nil
		}
		return upcoming[0], nil
	case "date":
		if _, err := nse.ParseExpiryDate(s.date); err != nil {
			return "", err
		}
		return s.date, nil
	default:
		return "", fmt.Errorf("%w: empty expiry selector", nse.ErrInvalidInput)
	}
}

// Leg is one side of a strike row. Quantities mirror the upstream leg quote.
type Leg struct {
	OI         float64
	ChangeInOI float64
	Volume     float64
	IV         float64
	LTP        float64
	NetChange  float64
	BidQty     float64
	BidPrice   float64
	AskPrice   float64
	AskQty     float64
}

// Row is one strike of the chain. A side with no quote is nil; zero-filling
// happens only when the row is rendered into a table.
type Row struct {
	Strike float64
	Call   *Leg
	Put    *Leg
}

// Chain is an option chain narrowed to a single expiry.
type Chain struct {
	Symbol          string
	Expiry          string
	Mode            Mode
	Rows            []Row
	UnderlyingValue float64
	Timestamp       string
}

// Build narrows payload to the expiry picked by sel, using the wall clock as
// the anchor for the Next selector.
func Build(payload *nse.OptionChainPayload, symbol string, sel ExpirySelector, mode Mode) (*Chain, error) {
	return BuildAt(payload, symbol, sel, mode, time.Now())
}

// BuildAt is Build with an explicit time anchor.
func BuildAt(payload *nse.OptionChainPayload, symbol string, sel ExpirySelector, mode Mode, now time.Time) (*Chain, error) {
	switch mode {
	case ModeFull, ModeCompact:
	default:
		return nil, fmt.Errorf("%w: oi mode %q, must be full or compact", nse.ErrInvalidInput, mode)
	}
	expiry, err := sel.Resolve(payload, now)
	if err != nil {
		return nil, err
	}

	var rows []Row
	for _, rec := range payload.Records.Data {
		if rec.ExpiryDate != expiry {
			continue
		}
		rows = append(rows, Row{
			Strike: rec.StrikePrice,
			Call:   legFromQuote(rec.CE),
			Put:    legFromQuote(rec.PE),
		})
	}

	return &Chain{
		Symbol:          symbol,
		Expiry:          expiry,
		Mode:            mode,
		Rows:            rows,
		UnderlyingValue: payload.Records.UnderlyingValue,
		Timestamp:       payload.Records.Timestamp,
	}, nil
}

func legFromQuote(q *nse.OptionLegQuote) *Leg {
	if q == nil {
		return nil
	}
	return &Leg{
		OI:         q.OpenInterest,
		ChangeInOI: q.ChangeInOpenInterest,
		Volume:     q.TotalTradedVolume,
		IV:         q.ImpliedVolatility,
		LTP:        q.LastPrice,
		NetChange:  q.Change,
		BidQty:     q.BidQty,
		BidPrice:   q.BidPrice,
		AskPrice:   q.AskPrice,
		AskQty:     q.AskQty,
	}
}

// PCR sums open interest across both sides of the chain and returns the
// put/call ratio. Zero call OI yields +Inf rather than an error, matching
// how the ratio has always been reported.
func (c *Chain) PCR() float64 {
	var ceOI, peOI float64
	for _, row := range c.Rows {
		if row.Call != nil {
			ceOI += row.Call.OI
		}
		if row.Put != nil {
			peOI += row.Put.OI
		}
	}
	if ceOI == 0 {
		return math.Inf(1)
	}
	return peOI / ceOI
}

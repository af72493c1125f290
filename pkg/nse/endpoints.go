package nse

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"
)

// HolidayType selects which holiday calendar to fetch.
type HolidayType string

const (
	HolidayTrading  HolidayType = "trading"
	HolidayClearing HolidayType = "clearing"
)

// GetHolidays fetches the holiday calendar for all market segments.
func (c *Client) GetHolidays(ctx context.Context, kind HolidayType) (HolidayCalendar, error) {
	switch kind {
	case HolidayTrading, HolidayClearing:
	default:
		return nil, fmt.Errorf("%w: holiday type %q", ErrInvalidInput, kind)
	}
	var cal HolidayCalendar
	u := fmt.Sprintf("%s/holiday-master?type=%s", c.baseURL, kind)
	if err := c.fetchJSON(ctx, u, &cal); err != nil {
		return nil, err
	}
	return cal, nil
}

// GetMarketStatus fetches the live status of every market segment.
func (c *Client) GetMarketStatus(ctx context.Context) (*MarketStatusPayload, error) {
	var payload MarketStatusPayload
	if err := c.fetchJSON(ctx, c.baseURL+"/marketStatus", &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// IsMarketOpenToday reports whether the given segment trades today. Weekends
// are closed; otherwise today must appear as a trade date in the segment's
// market state.
func (c *Client) IsMarketOpenToday(ctx context.Context, segment string) (bool, error) {
	today := c.now()
	switch today.Weekday() {
	case time.Saturday, time.Sunday:
		return false, nil
	}
	status, err := c.GetMarketStatus(ctx)
	if err != nil {
		return false, err
	}
	want := today.Format(ExpiryDateLayout)
	for _, state := range status.MarketState {
		if !strings.EqualFold(state.Market, segment) {
			continue
		}
		return state.TradeDate == want, nil
	}
	return false, fmt.Errorf("%w: market segment %q", ErrNotFound, segment)
}

func (c *Client) getAllIndices(ctx context.Context) (*AllIndicesPayload, error) {
	var payload AllIndicesPayload
	if err := c.fetchJSON(ctx, c.baseURL+"/allIndices", &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// GetAllIndices fetches the full index board.
func (c *Client) GetAllIndices(ctx context.Context) (*AllIndicesPayload, error) {
	return c.getAllIndices(ctx)
}

// GetIndexQuote returns the board row whose display name or symbol matches
// name, case-insensitively.
func (c *Client) GetIndexQuote(ctx context.Context, name string) (*IndexQuote, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: empty index name", ErrInvalidInput)
	}
	payload, err := c.getAllIndices(ctx)
	if err != nil {
		return nil, err
	}
	for i := range payload.Data {
		row := &payload.Data[i]
		if strings.EqualFold(row.Index, name) || strings.EqualFold(row.IndexSymbol, name) {
			return row, nil
		}
	}
	return nil, fmt.Errorf("%w: index %q", ErrNotFound, name)
}

// GetIndiaVIX returns the current India VIX level from the index board.
func (c *Client) GetIndiaVIX(ctx context.Context) (float64, error) {
	quote, err := c.GetIndexQuote(ctx, "INDIA VIX")
	if err != nil {
		return 0, err
	}
	return quote.Last, nil
}

// GetEquityIndex fetches the constituent board for one equity index, such as
// "NIFTY 50" or "SECURITIES IN F&O".
func (c *Client) GetEquityIndex(ctx context.Context, index string) (*EquityIndexPayload, error) {
	if strings.TrimSpace(index) == "" {
		return nil, fmt.Errorf("%w: empty index name", ErrInvalidInput)
	}
	var payload EquityIndexPayload
	u := c.baseURL + "/equity-stockIndices?index=" + url.QueryEscape(strings.ToUpper(index))
	if err := c.fetchJSON(ctx, u, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

const topMoversCount = 5

// TopGainers returns the five constituents of index with the largest
// positive percent change, best first.
func (c *Client) TopGainers(ctx context.Context, index string) ([]EquityIndexEntry, error) {
	return c.topMovers(ctx, index, true)
}

// TopLosers returns the five constituents of index with the largest negative
// percent change, worst first.
func (c *Client) TopLosers(ctx context.Context, index string) ([]EquityIndexEntry, error) {
	return c.topMovers(ctx, index, false)
}

func (c *Client) topMovers(ctx context.Context, index string, gainers bool) ([]EquityIndexEntry, error) {
	payload, err := c.GetEquityIndex(ctx, index)
	if err != nil {
		return nil, err
	}
	rows := append([]EquityIndexEntry(nil), payload.Data...)
	sort.SliceStable(rows, func(i, j int) bool {
		if gainers {
			return rows[i].PChange > rows[j].PChange
		}
		return rows[i].PChange < rows[j].PChange
	})
	if len(rows) > topMoversCount {
		rows = rows[:topMoversCount]
	}
	return rows, nil
}

// GetFnOEntry returns the F&O board row for one symbol.
func (c *Client) GetFnOEntry(ctx context.Context, symbol string) (*EquityIndexEntry, error) {
	up := strings.ToUpper(strings.TrimSpace(symbol))
	if up == "" {
		return nil, fmt.Errorf("%w: empty symbol", ErrInvalidInput)
	}
	payload, err := c.GetEquityIndex(ctx, "SECURITIES IN F&O")
	if err != nil {
		return nil, err
	}
	for i := range payload.Data {
		if payload.Data[i].Symbol == up {
			return &payload.Data[i], nil
		}
	}
	return nil, fmt.Errorf("%w: symbol %q not in F&O board", ErrNotFound, up)
}

// GetBlockDeals fetches the block and bulk deals snapshot.
func (c *Client) GetBlockDeals(ctx context.Context) (*BlockDealsPayload, error) {
	var payload BlockDealsPayload
	if err := c.fetchJSON(ctx, c.baseURL+"/snapshot-capital-market-largedeal", &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// GetFIIDII fetches the daily FII and DII trade report.
func (c *Client) GetFIIDII(ctx context.Context) ([]FIIDIIRecord, error) {
	var records []FIIDIIRecord
	if err := c.fetchJSON(ctx, c.baseURL+"/fiidiiTradeReact", &records); err != nil {
		return nil, err
	}
	return records, nil
}

package nse

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"
)

// historyChunkDays caps one historical request. The upstream silently
// truncates longer ranges, so wider queries are paginated.
const historyChunkDays = 40

// EquityBar is one daily cash-market row of the equity history endpoint.
type EquityBar struct {
	Symbol        string  `json:"CH_SYMBOL"`
	Series        string  `json:"CH_SERIES"`
	Open          float64 `json:"CH_OPENING_PRICE"`
	High          float64 `json:"CH_TRADE_HIGH_PRICE"`
	Low           float64 `json:"CH_TRADE_LOW_PRICE"`
	Close         float64 `json:"CH_CLOSING_PRICE"`
	LastTraded    float64 `json:"CH_LAST_TRADED_PRICE"`
	PreviousClose float64 `json:"CH_PREVIOUS_CLS_PRICE"`
	Volume        float64 `json:"CH_TOT_TRADED_QTY"`
	Turnover      float64 `json:"CH_TOT_TRADED_VAL"`
	VWAP          float64 `json:"VWAP"`
	Date          string  `json:"CH_TIMESTAMP"` // yyyy-mm-dd
}

// Time parses the bar's trade date.
func (b EquityBar) Time() (time.Time, error) {
	t, err := time.Parse("2006-01-02", b.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bar date %q", ErrUpstreamData, b.Date)
	}
	return t, nil
}

type equityHistoryPayload struct {
	Data []EquityBar `json:"data"`
}

// GetEquityHistory fetches daily EQ-series bars for symbol between from and
// to (dd-mm-yyyy, inclusive), paginating in 40-day chunks and returning bars
// in ascending date order.
func (c *Client) GetEquityHistory(ctx context.Context, symbol, from, to string) ([]EquityBar, error) {
	up := strings.ToUpper(strings.TrimSpace(symbol))
	if up == "" {
		return nil, fmt.Errorf("%w: empty symbol", ErrInvalidInput)
	}
	start, err := ParseQueryDate(from)
	if err != nil {
		return nil, err
	}
	end, err := ParseQueryDate(to)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: range %s..%s is reversed", ErrInvalidInput, from, to)
	}

	var bars []EquityBar
	for chunkStart := start; !chunkStart.After(end); {
		chunkEnd := chunkStart.AddDate(0, 0, historyChunkDays-1)
		if chunkEnd.After(end) {
			chunkEnd = end
		}
		u := fmt.Sprintf("%s/historical/cm/equity?symbol=%s&series=%s&from=%s&to=%s",
			c.baseURL, PurifySymbol(up), url.QueryEscape(`["EQ"]`),
			chunkStart.Format(QueryDateLayout), chunkEnd.Format(QueryDateLayout))
		var payload equityHistoryPayload
		if err := c.fetchJSON(ctx, u, &payload); err != nil {
			return nil, err
		}
		bars = append(bars, payload.Data...)
		chunkStart = chunkEnd.AddDate(0, 0, 1)
	}

	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Date < bars[j].Date })
	return bars, nil
}

// GetSecurityArchive fetches the price, volume and deliverable archive rows
// for symbol between from and to (dd-mm-yyyy). Rows are returned raw since
// the archive schema varies by data type.
func (c *Client) GetSecurityArchive(ctx context.Context, symbol, from, to, dataType string) ([]map[string]interface{}, error) {
	up := strings.ToUpper(strings.TrimSpace(symbol))
	if up == "" {
		return nil, fmt.Errorf("%w: empty symbol", ErrInvalidInput)
	}
	if _, err := ParseQueryDate(from); err != nil {
		return nil, err
	}
	if _, err := ParseQueryDate(to); err != nil {
		return nil, err
	}
	if dataType == "" {
		dataType = "priceVolumeDeliverable"
	}
	var payload struct {
		Data []map[string]interface{} `json:"data"`
	}
	u := fmt.Sprintf("%s/historical/securityArchives?from=%s&to=%s&symbol=%s&dataType=%s&series=ALL",
		c.baseURL, from, to, PurifySymbol(up), url.QueryEscape(dataType))
	if err := c.fetchJSON(ctx, u, &payload); err != nil {
		return nil, err
	}
	return payload.Data, nil
}

// IndexBar is one daily row of the niftyindices history table. Prices come
// over the wire as strings.
type IndexBar struct {
	IndexName string `json:"Index Name"`
	Date      string `json:"HistoricalDate"` // dd MMM yyyy
	Open      string `json:"OPEN"`
	High      string `json:"HIGH"`
	Low       string `json:"LOW"`
	Close     string `json:"CLOSE"`
}

// Time parses the bar's trade date.
func (b IndexBar) Time() (time.Time, error) {
	t, err := time.Parse(indexDateLayout, b.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: index bar date %q", ErrUpstreamData, b.Date)
	}
	return t, nil
}

// GetIndexHistory fetches daily index levels between from and to
// (dd-mm-yyyy) from the niftyindices backpage endpoint. The endpoint takes a
// POST whose body embeds a stringified parameter object and answers with the
// row array double-encoded under "d". Bars are returned ascending.
func (c *Client) GetIndexHistory(ctx context.Context, index, from, to string) ([]IndexBar, error) {
	name := strings.ToUpper(strings.TrimSpace(index))
	if name == "" {
		return nil, fmt.Errorf("%w: empty index name", ErrInvalidInput)
	}
	start, err := ParseQueryDate(from)
	if err != nil {
		return nil, err
	}
	end, err := ParseQueryDate(to)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: range %s..%s is reversed", ErrInvalidInput, from, to)
	}

	cinfo := fmt.Sprintf("{'name':'%s','startDate':'%s','endDate':'%s','indexName':'%s'}",
		name, start.Format(ExpiryDateLayout), end.Format(ExpiryDateLayout), name)
	var outer struct {
		D string `json:"d"`
	}
	u := c.indicesURL + "/Backpage.aspx/getHistoricaldatatabletoString"
	if err := c.postJSON(ctx, u, map[string]string{"cinfo": cinfo}, &outer); err != nil {
		return nil, err
	}
	var bars []IndexBar
	if err := json.Unmarshal([]byte(outer.D), &bars); err != nil {
		return nil, fmt.Errorf("%w: decode index history rows: %v", ErrUpstreamData, err)
	}

	sort.SliceStable(bars, func(i, j int) bool {
		ti, erri := bars[i].Time()
		tj, errj := bars[j].Time()
		if erri != nil || errj != nil {
			return false
		}
		return ti.Before(tj)
	})
	return bars, nil
}

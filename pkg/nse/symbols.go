package nse

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/url"
	"strings"
)

// indexSymbols are the index underlyings that route to the index option
// chain endpoint. Everything else in the F&O universe is an equity.
var indexSymbols = []string{"NIFTY", "NIFTYIT", "BANKNIFTY"}

// PurifySymbol uppercases and URL-escapes a raw symbol so names like "M&M"
// survive the query string.
func PurifySymbol(symbol string) string {
	return url.QueryEscape(strings.ToUpper(strings.TrimSpace(symbol)))
}

// IsIndex reports whether symbol is one of the option-chain index
// underlyings.
func IsIndex(symbol string) bool {
	up := strings.ToUpper(strings.TrimSpace(symbol))
	for _, s := range indexSymbols {
		if s == up {
			return true
		}
	}
	return false
}

// FnOSymbols returns the derivative universe: the index underlyings followed
// by every security in the F&O segment. The list is fetched once per client
// and served from memory afterwards.
func (c *Client) FnOSymbols(ctx context.Context) ([]string, error) {
	c.symbolsMu.RLock()
	cached := c.fnoSymbols
	c.symbolsMu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	c.symbolsMu.Lock()
	defer c.symbolsMu.Unlock()
	if c.fnoSymbols != nil {
		return c.fnoSymbols, nil
	}

	var payload EquityIndexPayload
	u := c.baseURL + "/equity-stockIndices?index=" + url.QueryEscape("SECURITIES IN F&O")
	if err := c.fetchJSON(ctx, u, &payload); err != nil {
		return nil, err
	}
	symbols := make([]string, 0, len(indexSymbols)+len(payload.Data))
	symbols = append(symbols, indexSymbols...)
	for _, row := range payload.Data {
		if row.Symbol != "" {
			symbols = append(symbols, row.Symbol)
		}
	}
	c.fnoSymbols = symbols
	return symbols, nil
}

// EquitySymbols returns the set of listed equity symbols, parsed from the
// EQUITY_L.csv archive. The set is fetched once per client.
func (c *Client) EquitySymbols(ctx context.Context) (map[string]struct{}, error) {
	c.symbolsMu.RLock()
	cached := c.eqSymbols
	c.symbolsMu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	c.symbolsMu.Lock()
	defer c.symbolsMu.Unlock()
	if c.eqSymbols != nil {
		return c.eqSymbols, nil
	}

	body, err := c.fetchBytes(ctx, c.archivesURL+"/content/equities/EQUITY_L.csv")
	if err != nil {
		return nil, err
	}
	reader := csv.NewReader(strings.NewReader(string(body)))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: parse EQUITY_L.csv: %v", ErrUpstreamData, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: empty EQUITY_L.csv", ErrUpstreamData)
	}
	col := -1
	for i, name := range records[0] {
		if strings.EqualFold(strings.TrimSpace(name), "SYMBOL") {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("%w: EQUITY_L.csv missing SYMBOL column", ErrUpstreamData)
	}
	set := make(map[string]struct{}, len(records)-1)
	for _, rec := range records[1:] {
		if col < len(rec) {
			sym := strings.TrimSpace(rec[col])
			if sym != "" {
				set[strings.ToUpper(sym)] = struct{}{}
			}
		}
	}
	c.eqSymbols = set
	return set, nil
}

// IsValidSymbol reports whether symbol belongs to the derivative universe
// when fno is true, or to the listed equity universe otherwise.
func (c *Client) IsValidSymbol(ctx context.Context, symbol string, fno bool) (bool, error) {
	up := strings.ToUpper(strings.TrimSpace(symbol))
	if up == "" {
		return false, fmt.Errorf("%w: empty symbol", ErrInvalidInput)
	}
	if fno {
		symbols, err := c.FnOSymbols(ctx)
		if err != nil {
			return false, err
		}
		for _, s := range symbols {
			if s == up {
				return true, nil
			}
		}
		return false, nil
	}
	set, err := c.EquitySymbols(ctx)
	if err != nil {
		return false, err
	}
	_, ok := set[up]
	return ok, nil
}

// IndexNames returns the display names of every index on the all-indices
// board, fetched once per client.
func (c *Client) IndexNames(ctx context.Context) ([]string, error) {
	c.symbolsMu.RLock()
	cached := c.indexNames
	c.symbolsMu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	c.symbolsMu.Lock()
	defer c.symbolsMu.Unlock()
	if c.indexNames != nil {
		return c.indexNames, nil
	}

	payload, err := c.getAllIndices(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(payload.Data))
	for _, row := range payload.Data {
		if row.Index != "" {
			names = append(names, row.Index)
		}
	}
	c.indexNames = names
	return names, nil
}

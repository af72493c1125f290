package nse

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHolidays(t *testing.T) {
	ts := newTestServer(t)
	ts.mux.HandleFunc("/api/holiday-master", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "trading", r.URL.Query().Get("type"))
		w.Write([]byte(`{"FO":[{"tradingDate":"15-Aug-2025","weekDay":"Friday","description":"Independence Day"}]}`))
	})

	client := newTestClient(t, ts)
	cal, err := client.GetHolidays(context.Background(), HolidayTrading)
	require.NoError(t, err)
	require.Len(t, cal["FO"], 1)
	assert.Equal(t, "15-Aug-2025", cal["FO"][0].TradingDate)
}

func TestGetHolidaysInvalidType(t *testing.T) {
	ts := newTestServer(t)
	client := newTestClient(t, ts)
	_, err := client.GetHolidays(context.Background(), HolidayType("weekly"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestIsMarketOpenToday(t *testing.T) {
	ts := newTestServer(t)
	ts.mux.HandleFunc("/api/marketStatus", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"marketState":[
			{"market":"Capital Market","marketStatus":"Open","tradeDate":"03-Sep-2025"},
			{"market":"Currency","marketStatus":"Closed","tradeDate":"02-Sep-2025"}
		]}`))
	})

	// Wednesday 3 Sep 2025.
	wednesday := time.Date(2025, time.September, 3, 11, 0, 0, 0, time.UTC)
	client := newTestClient(t, ts, WithClock(func() time.Time { return wednesday }))
	ctx := context.Background()

	open, err := client.IsMarketOpenToday(ctx, "Capital Market")
	require.NoError(t, err)
	assert.True(t, open)

	open, err = client.IsMarketOpenToday(ctx, "Currency")
	require.NoError(t, err)
	assert.False(t, open)

	_, err = client.IsMarketOpenToday(ctx, "Commodity")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIsMarketOpenTodayWeekend(t *testing.T) {
	ts := newTestServer(t)
	// No marketStatus handler: weekends short-circuit before any fetch.
	saturday := time.Date(2025, time.September, 6, 11, 0, 0, 0, time.UTC)
	client := newTestClient(t, ts, WithClock(func() time.Time { return saturday }))

	open, err := client.IsMarketOpenToday(context.Background(), "Capital Market")
	require.NoError(t, err)
	assert.False(t, open)
}

func allIndicesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[
			{"index":"NIFTY 50","indexSymbol":"NIFTY 50","last":24150.25,"percentChange":0.45},
			{"index":"INDIA VIX","indexSymbol":"INDIAVIX","last":13.72,"percentChange":-2.1}
		]}`))
	}
}

func TestGetIndexQuote(t *testing.T) {
	ts := newTestServer(t)
	ts.mux.HandleFunc("/api/allIndices", allIndicesHandler())

	client := newTestClient(t, ts)
	ctx := context.Background()

	quote, err := client.GetIndexQuote(ctx, "nifty 50")
	require.NoError(t, err)
	assert.Equal(t, 24150.25, quote.Last)

	// Symbol matches too.
	quote, err = client.GetIndexQuote(ctx, "indiavix")
	require.NoError(t, err)
	assert.Equal(t, 13.72, quote.Last)

	_, err = client.GetIndexQuote(ctx, "NIFTY NEXT 50")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = client.GetIndexQuote(ctx, "  ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetIndiaVIX(t *testing.T) {
	ts := newTestServer(t)
	ts.mux.HandleFunc("/api/allIndices", allIndicesHandler())

	client := newTestClient(t, ts)
	vix, err := client.GetIndiaVIX(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 13.72, vix)
}

func movingBoardHandler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "NIFTY 50", r.URL.Query().Get("index"))
		w.Write([]byte(`{"name":"NIFTY 50","data":[
			{"symbol":"A","pChange":1.2},
			{"symbol":"B","pChange":-3.4},
			{"symbol":"C","pChange":4.1},
			{"symbol":"D","pChange":0.3},
			{"symbol":"E","pChange":-0.8},
			{"symbol":"F","pChange":2.6},
			{"symbol":"G","pChange":-1.5}
		]}`))
	}
}

func TestTopGainers(t *testing.T) {
	ts := newTestServer(t)
	ts.mux.HandleFunc("/api/equity-stockIndices", movingBoardHandler(t))

	client := newTestClient(t, ts)
	rows, err := client.TopGainers(context.Background(), "nifty 50")
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, "C", rows[0].Symbol)
	assert.Equal(t, "F", rows[1].Symbol)
	assert.Equal(t, "A", rows[2].Symbol)
}

func TestTopLosers(t *testing.T) {
	ts := newTestServer(t)
	ts.mux.HandleFunc("/api/equity-stockIndices", movingBoardHandler(t))

	client := newTestClient(t, ts)
	rows, err := client.TopLosers(context.Background(), "nifty 50")
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, "B", rows[0].Symbol)
	assert.Equal(t, "G", rows[1].Symbol)
}

func TestGetFnOEntry(t *testing.T) {
	ts := newTestServer(t)
	ts.mux.HandleFunc("/api/equity-stockIndices", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "SECURITIES IN F&O", r.URL.Query().Get("index"))
		w.Write([]byte(`{"data":[{"symbol":"RELIANCE","lastPrice":2984.3},{"symbol":"SBIN","lastPrice":812.4}]}`))
	})

	client := newTestClient(t, ts)
	ctx := context.Background()

	entry, err := client.GetFnOEntry(ctx, "sbin")
	require.NoError(t, err)
	assert.Equal(t, 812.4, entry.LastPrice)

	_, err = client.GetFnOEntry(ctx, "TCS")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetBlockDeals(t *testing.T) {
	ts := newTestServer(t)
	ts.mux.HandleFunc("/api/snapshot-capital-market-largedeal", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"as_on_date":"03-Sep-2025","BLOCK_DEALS_DATA":[{"symbol":"SBIN","qty":500000,"tp":811.9}]}`))
	})

	client := newTestClient(t, ts)
	deals, err := client.GetBlockDeals(context.Background())
	require.NoError(t, err)
	require.Len(t, deals.BlockDealsData, 1)
	assert.Equal(t, "SBIN", deals.BlockDealsData[0].Symbol)
	assert.Equal(t, 811.9, deals.BlockDealsData[0].Price)
}

func TestGetFIIDII(t *testing.T) {
	ts := newTestServer(t)
	ts.mux.HandleFunc("/api/fiidiiTradeReact", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"category":"FII/FPI","date":"03-Sep-2025","buyValue":"12000.5","sellValue":"11850.2","netValue":"150.3"}]`))
	})

	client := newTestClient(t, ts)
	records, err := client.GetFIIDII(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "FII/FPI", records[0].Category)
	assert.Equal(t, "150.3", records[0].NetValue)
}

package nse

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEquityHistoryChunksRange(t *testing.T) {
	ts := newTestServer(t)
	type window struct{ from, to string }
	var windows []window
	ts.mux.HandleFunc("/api/historical/cm/equity", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		windows = append(windows, window{from: q.Get("from"), to: q.Get("to")})
		assert.Equal(t, "SBIN", q.Get("symbol"))
		assert.Equal(t, `["EQ"]`, q.Get("series"))
		// One bar per chunk, dated by the chunk's from parameter, served
		// newest-first to exercise the final sort.
		fmt.Fprintf(w, `{"data":[{"CH_SYMBOL":"SBIN","CH_TIMESTAMP":"2025-%s-%s","CH_CLOSING_PRICE":800}]}`,
			q.Get("from")[3:5], q.Get("from")[0:2])
	})

	client := newTestClient(t, ts)
	bars, err := client.GetEquityHistory(context.Background(), "sbin", "01-01-2025", "01-03-2025")
	require.NoError(t, err)

	// 60 calendar days split into inclusive 40-day windows.
	require.Equal(t, []window{
		{from: "01-01-2025", to: "09-02-2025"},
		{from: "10-02-2025", to: "01-03-2025"},
	}, windows)

	require.Len(t, bars, 2)
	assert.Equal(t, "2025-01-01", bars[0].Date)
	assert.Equal(t, "2025-02-10", bars[1].Date)
}

func TestGetEquityHistorySortsAscending(t *testing.T) {
	ts := newTestServer(t)
	ts.mux.HandleFunc("/api/historical/cm/equity", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[
			{"CH_SYMBOL":"SBIN","CH_TIMESTAMP":"2025-01-03","CH_CLOSING_PRICE":803},
			{"CH_SYMBOL":"SBIN","CH_TIMESTAMP":"2025-01-01","CH_CLOSING_PRICE":801},
			{"CH_SYMBOL":"SBIN","CH_TIMESTAMP":"2025-01-02","CH_CLOSING_PRICE":802}
		]}`))
	})

	client := newTestClient(t, ts)
	bars, err := client.GetEquityHistory(context.Background(), "SBIN", "01-01-2025", "05-01-2025")
	require.NoError(t, err)
	require.Len(t, bars, 3)
	assert.Equal(t, "2025-01-01", bars[0].Date)
	assert.Equal(t, "2025-01-02", bars[1].Date)
	assert.Equal(t, "2025-01-03", bars[2].Date)
	assert.Equal(t, 801.0, bars[0].Close)
}

func TestGetEquityHistoryValidation(t *testing.T) {
	ts := newTestServer(t)
	client := newTestClient(t, ts)
	ctx := context.Background()

	_, err := client.GetEquityHistory(ctx, "", "01-01-2025", "05-01-2025")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = client.GetEquityHistory(ctx, "SBIN", "2025-01-01", "05-01-2025")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = client.GetEquityHistory(ctx, "SBIN", "05-01-2025", "01-01-2025")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestEquityBarTime(t *testing.T) {
	bar := EquityBar{Date: "2025-01-02"}
	got, err := bar.Time()
	require.NoError(t, err)
	assert.Equal(t, 2025, got.Year())

	_, err = EquityBar{Date: "02-01-2025"}.Time()
	assert.ErrorIs(t, err, ErrUpstreamData)
}

func TestGetIndexHistory(t *testing.T) {
	ts := newTestServer(t)
	ts.mux.HandleFunc("/indices/Backpage.aspx/getHistoricaldatatabletoString", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t,
			`{'name':'NIFTY 50','startDate':'01-Jan-2025','endDate':'31-Jan-2025','indexName':'NIFTY 50'}`,
			req["cinfo"])

		// Rows come back double-encoded under "d", newest first.
		rows := `[{"Index Name":"NIFTY 50","HistoricalDate":"03 Jan 2025","CLOSE":"24150.25"},` +
			`{"Index Name":"NIFTY 50","HistoricalDate":"01 Jan 2025","CLOSE":"24010.10"},` +
			`{"Index Name":"NIFTY 50","HistoricalDate":"02 Jan 2025","CLOSE":"24080.55"}]`
		outer, _ := json.Marshal(map[string]string{"d": rows})
		w.Write(outer)
	})

	client := newTestClient(t, ts)
	bars, err := client.GetIndexHistory(context.Background(), "NIFTY 50", "01-01-2025", "31-01-2025")
	require.NoError(t, err)
	require.Len(t, bars, 3)
	assert.Equal(t, "01 Jan 2025", bars[0].Date)
	assert.Equal(t, "02 Jan 2025", bars[1].Date)
	assert.Equal(t, "03 Jan 2025", bars[2].Date)
	assert.Equal(t, "24010.10", bars[0].Close)
}

func TestGetIndexHistoryBadPayload(t *testing.T) {
	ts := newTestServer(t)
	ts.mux.HandleFunc("/indices/Backpage.aspx/getHistoricaldatatabletoString", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"d":"<html>error</html>"}`))
	})

	client := newTestClient(t, ts)
	_, err := client.GetIndexHistory(context.Background(), "NIFTY 50", "01-01-2025", "31-01-2025")
	assert.ErrorIs(t, err, ErrUpstreamData)
}

func TestGetIndexHistoryValidation(t *testing.T) {
	ts := newTestServer(t)
	client := newTestClient(t, ts)
	ctx := context.Background()

	_, err := client.GetIndexHistory(ctx, "", "01-01-2025", "31-01-2025")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = client.GetIndexHistory(ctx, "NIFTY 50", "31-01-2025", "01-01-2025")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetSecurityArchive(t *testing.T) {
	ts := newTestServer(t)
	ts.mux.HandleFunc("/api/historical/securityArchives", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "priceVolumeDeliverable", q.Get("dataType"))
		assert.Equal(t, "ALL", q.Get("series"))
		w.Write([]byte(`{"data":[{"CH_SYMBOL":"SBIN","COP_DELIV_PERC":61.5}]}`))
	})

	client := newTestClient(t, ts)
	rows, err := client.GetSecurityArchive(context.Background(), "SBIN", "01-01-2025", "05-01-2025", "")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "SBIN", rows[0]["CH_SYMBOL"])
}

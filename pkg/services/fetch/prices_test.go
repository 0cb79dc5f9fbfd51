package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fin-tools/stock-atlas/pkg/store/filecache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const priceResponse = `[
	{"date": "2024-01-02", "open": 10, "high": 11, "low": 9.5, "close": 10.5, "volume": 10000, "amount": 105000},
	{"date": "2024-01-03", "open": 10.5, "high": 12, "low": 10.4, "close": 11.8, "volume": 20000, "amount": 236000}
]`

func TestPriceFetcher_DailyBars(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "sh600000", r.URL.Query().Get("symbol"))
		assert.Equal(t, "20240101", r.URL.Query().Get("start_date"))
		_, _ = w.Write([]byte(priceResponse))
	}))
	defer server.Close()

	cache, err := filecache.New(t.TempDir())
	require.NoError(t, err)

	fetcher := NewPriceFetcher(
		NewClient(Options{BaseDelay: time.Millisecond}),
		cache,
		server.URL,
	)

	ctx := context.Background()
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	bars, err := fetcher.DailyBars(ctx, "sh600000", from, to)
	require.NoError(t, err)
	require.Len(t, bars, 2)

	assert.Equal(t, "sh600000", bars[0].Symbol)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), bars[0].TradeDate)
	assert.Equal(t, 10.5, bars[0].Close)
	assert.Equal(t, int64(20000), bars[1].Volume)

	// second call is served from cache
	again, err := fetcher.DailyBars(ctx, "sh600000", from, to)
	require.NoError(t, err)
	assert.Equal(t, bars, again)
	assert.Equal(t, int32(1), calls.Load())
}

func TestPriceFetcher_BadResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer server.Close()

	fetcher := NewPriceFetcher(NewClient(Options{BaseDelay: time.Millisecond}), nil, server.URL)

	_, err := fetcher.DailyBars(context.Background(), "sh600000",
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	assert.Error(t, err)
}

func TestPriceFetcher_BadTradeDate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"date": "01/02/2024", "close": 10}]`))
	}))
	defer server.Close()

	fetcher := NewPriceFetcher(NewClient(Options{BaseDelay: time.Millisecond}), nil, server.URL)

	_, err := fetcher.DailyBars(context.Background(), "sh600000",
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	assert.Error(t, err)
}

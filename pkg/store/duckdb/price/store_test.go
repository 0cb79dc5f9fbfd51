package price

import (
	"context"
	"testing"
	"time"

	"github.com/fin-tools/stock-atlas/pkg/models/store"
	"github.com/fin-tools/stock-atlas/pkg/store/duckdb"
	_ "github.com/marcboeker/go-duckdb/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) Store {
	db, err := duckdb.NewDB(duckdb.Settings{DbPath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s, err := NewStore(db)
	require.NoError(t, err)
	return s
}

func TestPriceStore_AddAndGetSeries(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	day := func(d int) time.Time {
		return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
	}

	err := s.Add(ctx, []store.PriceBar{
		{Symbol: "sh600000", TradeDate: day(2), Open: 10, High: 11, Low: 9.5, Close: 10.5, Volume: 10000, Amount: 105000},
		{Symbol: "sh600000", TradeDate: day(3), Open: 10.5, High: 12, Low: 10.4, Close: 11.8, Volume: 20000, Amount: 236000},
		{Symbol: "sz000001", TradeDate: day(2), Open: 5, High: 5, Low: 5, Close: 5, Volume: 100, Amount: 500},
	})
	require.NoError(t, err)

	bars, err := s.GetSeries(ctx, "sh600000", day(1), day(10))
	require.NoError(t, err)
	require.Len(t, bars, 2)

	assert.Equal(t, 10.5, bars[0].Close)
	assert.Equal(t, int64(20000), bars[1].Volume)
	assert.True(t, bars[0].TradeDate.Before(bars[1].TradeDate))

	none, err := s.GetSeries(ctx, "sh600000", day(4), day(10))
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestPriceStore_AddEmpty(t *testing.T) {
	s := setupStore(t)
	require.NoError(t, s.Add(context.Background(), nil))
}

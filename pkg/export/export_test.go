package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fin-tools/stock-atlas/pkg/models/domain"
	"github.com/segmentio/parquet-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleStatements() []domain.Statement {
	row := domain.Row{}
	row.Set("money_cap", decimal.RequireFromString("120.50"))
	row.Set("quick_assets", decimal.RequireFromString("150.50"))
	row["trad_asset"] = decimal.NullDecimal{}

	return []domain.Statement{
		{
			Symbol:     "sh600000",
			ReportDate: time.Date(2023, 3, 31, 0, 0, 0, 0, time.UTC),
			Fields:     row,
		},
	}
}

func TestWriteStatementsCSV(t *testing.T) {
	var buf bytes.Buffer
	err := WriteStatementsCSV(&buf, []string{"money_cap", "trad_asset", "quick_assets"}, sampleStatements())
	require.NoError(t, err)

	expected := "symbol,report_date,money_cap,trad_asset,quick_assets\n" +
		"sh600000,2023-03-31,120.5,,150.5\n"
	assert.Equal(t, expected, buf.String())
}

func TestRenderStatementsTable(t *testing.T) {
	var buf bytes.Buffer
	RenderStatementsTable(&buf, []string{"money_cap"}, sampleStatements())

	out := buf.String()
	assert.Contains(t, out, "sh600000")
	assert.Contains(t, out, "120.5")
	assert.Contains(t, out, "money_cap")
}

func TestWriteIndicatorsParquet_RoundTrip(t *testing.T) {
	ret := 0.1
	bars := []domain.IndicatorBar{
		{
			PriceBar: domain.PriceBar{
				Symbol:    "sh600000",
				TradeDate: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
				Open:      10, High: 11, Low: 9.5, Close: 10.5,
				Volume: 10000, Amount: 105000,
			},
		},
		{
			PriceBar: domain.PriceBar{
				Symbol:    "sh600000",
				TradeDate: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
				Open:      10.5, High: 12, Low: 10.4, Close: 11.55,
				Volume: 20000, Amount: 231000,
			},
			DailyReturn: &ret,
		},
	}

	path := filepath.Join(t.TempDir(), "indicators.parquet")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, WriteIndicatorsParquet(f, bars))
	require.NoError(t, f.Close())

	rows, err := parquet.ReadFile[IndicatorRow](path)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "2024-01-02", rows[0].TradeDate)
	assert.Nil(t, rows[0].DailyReturn)
	require.NotNil(t, rows[1].DailyReturn)
	assert.InDelta(t, 0.1, *rows[1].DailyReturn, 1e-9)
	assert.Equal(t, int64(20000), rows[1].Volume)
}

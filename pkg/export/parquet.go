package export

import (
	"fmt"
	"io"

	"github.com/fin-tools/stock-atlas/pkg/models/domain"
	"github.com/segmentio/parquet-go"
)

// IndicatorRow is the flat parquet shape of a cleaned price bar.
// Indicator columns are optional; they are null while the lookback
// window is incomplete.
type IndicatorRow struct {
	Symbol      string   `parquet:"symbol"`
	TradeDate   string   `parquet:"trade_date"`
	Open        float64  `parquet:"open"`
	High        float64  `parquet:"high"`
	Low         float64  `parquet:"low"`
	Close       float64  `parquet:"close"`
	Volume      int64    `parquet:"volume"`
	Amount      float64  `parquet:"amount"`
	DailyReturn *float64 `parquet:"daily_return,optional"`
	MA5         *float64 `parquet:"ma5,optional"`
	MA20        *float64 `parquet:"ma20,optional"`
}

// WriteIndicatorsParquet writes a cleaned price series as parquet for
// downstream dataframe tooling.
func WriteIndicatorsParquet(w io.Writer, bars []domain.IndicatorBar) error {
	rows := make([]IndicatorRow, len(bars))
	for i, bar := range bars {
		rows[i] = IndicatorRow{
			Symbol:      bar.Symbol,
			TradeDate:   bar.TradeDate.Format("2006-01-02"),
			Open:        bar.Open,
			High:        bar.High,
			Low:         bar.Low,
			Close:       bar.Close,
			Volume:      bar.Volume,
			Amount:      bar.Amount,
			DailyReturn: bar.DailyReturn,
			MA5:         bar.MA5,
			MA20:        bar.MA20,
		}
	}

	writer := parquet.NewGenericWriter[IndicatorRow](w)
	if _, err := writer.Write(rows); err != nil {
		return fmt.Errorf("write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return nil
}

package store

import "time"

// PriceBar is the storage shape of one daily OHLCV row.
type PriceBar struct {
	Symbol    string
	TradeDate time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    int64
	Amount    float64
}

package domain

import "time"

// PriceBar is one daily OHLCV observation for a symbol.
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

// IndicatorBar is a price bar augmented with rolling indicators.
// Indicator pointers are nil where the lookback window is incomplete.
type IndicatorBar struct {
	PriceBar
	DailyReturn *float64
	MA5         *float64
	MA20        *float64
}

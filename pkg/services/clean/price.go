package clean

import (
	"context"
	"math"
	"sort"

	"github.com/fin-tools/stock-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

const (
	maShortWindow = 5
	maLongWindow  = 20
	clipSigma     = 3.0
)

// PriceSeries normalizes a daily bar series and computes rolling
// indicators. Missing prices are forward-filled from the previous bar,
// OHLC outliers are clipped to mean ± 3σ, then daily return, MA5 and
// MA20 are derived from the cleaned closes. The input slice is not
// modified.
func PriceSeries(ctx context.Context, bars []domain.PriceBar) []domain.IndicatorBar {
	logger := zerolog.Ctx(ctx)

	if len(bars) == 0 {
		return []domain.IndicatorBar{}
	}

	cleaned := make([]domain.PriceBar, len(bars))
	copy(cleaned, bars)
	sort.Slice(cleaned, func(i, j int) bool {
		return cleaned[i].TradeDate.Before(cleaned[j].TradeDate)
	})

	filled := forwardFill(cleaned)
	for _, col := range []func(*domain.PriceBar) *float64{
		func(b *domain.PriceBar) *float64 { return &b.Open },
		func(b *domain.PriceBar) *float64 { return &b.High },
		func(b *domain.PriceBar) *float64 { return &b.Low },
		func(b *domain.PriceBar) *float64 { return &b.Close },
	} {
		clipColumn(cleaned, col)
	}

	if filled > 0 {
		logger.Debug().
			Str("symbol", cleaned[0].Symbol).
			Int("filled", filled).
			Msg("forward-filled missing prices")
	}

	out := make([]domain.IndicatorBar, len(cleaned))
	for i, bar := range cleaned {
		out[i] = domain.IndicatorBar{PriceBar: bar}

		if i > 0 && cleaned[i-1].Close != 0 {
			ret := (bar.Close - cleaned[i-1].Close) / cleaned[i-1].Close
			out[i].DailyReturn = &ret
		}
		out[i].MA5 = rollingMean(cleaned, i, maShortWindow)
		out[i].MA20 = rollingMean(cleaned, i, maLongWindow)
	}

	return out
}

// forwardFill replaces missing (zero or NaN) prices with the previous
// bar's value, column by column. Returns the number of filled cells.
func forwardFill(bars []domain.PriceBar) int {
	filled := 0
	for i := 1; i < len(bars); i++ {
		prev := bars[i-1]
		for _, f := range []struct{ cur, last *float64 }{
			{&bars[i].Open, &prev.Open},
			{&bars[i].High, &prev.High},
			{&bars[i].Low, &prev.Low},
			{&bars[i].Close, &prev.Close},
		} {
			if missing(*f.cur) && !missing(*f.last) {
				*f.cur = *f.last
				filled++
			}
		}
	}
	return filled
}

func missing(v float64) bool {
	return v == 0 || math.IsNaN(v)
}

func clipColumn(bars []domain.PriceBar, col func(*domain.PriceBar) *float64) {
	if len(bars) < 2 {
		return
	}

	var sum float64
	for i := range bars {
		sum += *col(&bars[i])
	}
	mean := sum / float64(len(bars))

	var variance float64
	for i := range bars {
		d := *col(&bars[i]) - mean
		variance += d * d
	}
	std := math.Sqrt(variance / float64(len(bars)-1))

	low, high := mean-clipSigma*std, mean+clipSigma*std
	for i := range bars {
		v := col(&bars[i])
		if *v < low {
			*v = low
		} else if *v > high {
			*v = high
		}
	}
}

func rollingMean(bars []domain.PriceBar, idx, window int) *float64 {
	if idx+1 < window {
		return nil
	}
	var sum float64
	for i := idx - window + 1; i <= idx; i++ {
		sum += bars[i].Close
	}
	mean := sum / float64(window)
	return &mean
}

package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/fin-tools/stock-atlas/pkg/models/domain"
	"github.com/fin-tools/stock-atlas/pkg/store/filecache"
	"github.com/rs/zerolog"
)

const priceCacheTTL = 24 * time.Hour

type providerBar struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
	Amount float64 `json:"amount"`
}

// PriceFetcher retrieves daily bars from an HTTP provider. Responses
// are cached for a day; daily bars for a closed period do not change.
type PriceFetcher struct {
	client  *Client
	cache   *filecache.Cache
	baseURL string
}

func NewPriceFetcher(client *Client, cache *filecache.Cache, baseURL string) *PriceFetcher {
	return &PriceFetcher{
		client:  client,
		cache:   cache,
		baseURL: baseURL,
	}
}

// DailyBars fetches the daily OHLCV series for a full symbol within
// [from, to). Symbols are expected to already carry their exchange
// prefix.
func (f *PriceFetcher) DailyBars(ctx context.Context, symbol string, from, to time.Time) ([]domain.PriceBar, error) {
	logger := zerolog.Ctx(ctx)

	key := fmt.Sprintf("prices_%s_%s_%s",
		symbol, from.Format("20060102"), to.Format("20060102"))

	var raw []providerBar
	if f.cache != nil {
		hit, err := f.cache.Get(key, &raw)
		if err != nil {
			return nil, err
		}
		if hit {
			logger.Debug().Str("symbol", symbol).Msg("price series served from cache")
			return f.toBars(symbol, raw)
		}
	}

	query := url.Values{}
	query.Set("symbol", symbol)
	query.Set("start_date", from.Format("20060102"))
	query.Set("end_date", to.Format("20060102"))

	body, err := f.client.Get(ctx, f.baseURL+"?"+query.Encode())
	if err != nil {
		return nil, fmt.Errorf("fetch prices for %s: %w", symbol, err)
	}

	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode price response for %s: %w", symbol, err)
	}

	if f.cache != nil {
		if err := f.cache.Set(key, raw, priceCacheTTL); err != nil {
			logger.Warn().Err(err).Str("symbol", symbol).Msg("failed to cache price series")
		}
	}

	return f.toBars(symbol, raw)
}

func (f *PriceFetcher) toBars(symbol string, raw []providerBar) ([]domain.PriceBar, error) {
	bars := make([]domain.PriceBar, 0, len(raw))
	for _, b := range raw {
		date, err := time.Parse("2006-01-02", b.Date)
		if err != nil {
			return nil, fmt.Errorf("bad trade date %q for %s: %w", b.Date, symbol, err)
		}
		bars = append(bars, domain.PriceBar{
			Symbol:    symbol,
			TradeDate: date,
			Open:      b.Open,
			High:      b.High,
			Low:       b.Low,
			Close:     b.Close,
			Volume:    b.Volume,
			Amount:    b.Amount,
		})
	}
	return bars, nil
}

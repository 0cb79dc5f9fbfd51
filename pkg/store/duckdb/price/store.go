package price

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fin-tools/stock-atlas/pkg/models/store"
	"github.com/fin-tools/stock-atlas/pkg/store/duckdb"
)

// Store holds daily OHLCV bars in DuckDB.
type Store interface {
	Add(ctx context.Context, bars []store.PriceBar) error
	GetSeries(ctx context.Context, symbol string, from, to time.Time) ([]store.PriceBar, error)
}

type priceStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &priceStore{db: db}, nil
}

func (p *priceStore) Add(ctx context.Context, bars []store.PriceBar) error {
	if len(bars) == 0 {
		return nil
	}

	query := `
		INSERT INTO stock_prices (symbol, trade_date, open, high, low, close, volume, amount)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	var stmt *sql.Stmt
	var err error
	if tx := duckdb.TxFrom(ctx); tx != nil {
		stmt, err = tx.PrepareContext(ctx, query)
	} else {
		stmt, err = p.db.PrepareContext(ctx, query)
	}
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, bar := range bars {
		_, err := stmt.ExecContext(ctx,
			bar.Symbol, bar.TradeDate,
			bar.Open, bar.High, bar.Low, bar.Close,
			bar.Volume, bar.Amount,
		)
		if err != nil {
			return fmt.Errorf("insert price bar %s/%s: %w",
				bar.Symbol, bar.TradeDate.Format("2006-01-02"), err)
		}
	}

	return nil
}

func (p *priceStore) GetSeries(ctx context.Context, symbol string, from, to time.Time) ([]store.PriceBar, error) {
	query := `
		SELECT symbol, trade_date, open, high, low, close, volume, amount
		FROM stock_prices
		WHERE symbol = ? AND trade_date >= ? AND trade_date < ?
		ORDER BY trade_date
	`

	rows, err := p.db.QueryContext(ctx, query, symbol, from, to)
	if err != nil {
		return nil, fmt.Errorf("query price series: %w", err)
	}
	defer rows.Close()

	bars := make([]store.PriceBar, 0)
	for rows.Next() {
		var bar store.PriceBar
		if err := rows.Scan(
			&bar.Symbol, &bar.TradeDate,
			&bar.Open, &bar.High, &bar.Low, &bar.Close,
			&bar.Volume, &bar.Amount,
		); err != nil {
			return nil, err
		}
		bars = append(bars, bar)
	}
	return bars, rows.Err()
}

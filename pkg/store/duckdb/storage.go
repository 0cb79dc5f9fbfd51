package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const BalanceSheetSchema = `
	CREATE TABLE IF NOT EXISTS balance_sheets (
		symbol VARCHAR NOT NULL,
		report_date DATE NOT NULL,
		comp_type VARCHAR,
		money_cap DOUBLE,
		trad_asset DOUBLE,
		notes_receiv DOUBLE,
		accounts_receiv DOUBLE,
		oth_receiv DOUBLE,
		prepayment DOUBLE,
		inventories DOUBLE,
		total_cur_assets DOUBLE,
		fix_assets DOUBLE,
		cip DOUBLE,
		intan_assets DOUBLE,
		r_and_d DOUBLE,
		goodwill DOUBLE,
		total_assets DOUBLE,
		st_borr DOUBLE,
		notes_payable DOUBLE,
		acct_payable DOUBLE,
		adv_receipts DOUBLE,
		non_cur_liab_due_1y DOUBLE,
		total_cur_liab DOUBLE,
		lt_borr DOUBLE,
		bond_payable DOUBLE,
		total_liab DOUBLE,
		total_hldr_eqy_exc_min_int DOUBLE,
		PRIMARY KEY (symbol, report_date)
	);
`

const StockPriceSchema = `
	CREATE TABLE IF NOT EXISTS stock_prices (
		symbol VARCHAR NOT NULL,
		trade_date DATE NOT NULL,
		open DOUBLE,
		high DOUBLE,
		low DOUBLE,
		close DOUBLE,
		volume BIGINT,
		amount DOUBLE,
		PRIMARY KEY (symbol, trade_date)
	);
`

var bootQueries = []string{
	BalanceSheetSchema,
	StockPriceSchema,
}

type Settings struct {
	DbPath string
}

func NewDB(settings Settings) (*sql.DB, error) {
	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=4", settings.DbPath), func(exec driver.ExecerContext) error {
		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(c)
	return db, nil
}

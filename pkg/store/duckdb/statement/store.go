package statement

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/fin-tools/stock-atlas/pkg/models/store"
	"github.com/fin-tools/stock-atlas/pkg/store/duckdb"
)

// NumericColumns lists the balance_sheets statement columns in schema
// order. Projections are validated against this list.
var NumericColumns = []string{
	"money_cap", "trad_asset", "notes_receiv", "accounts_receiv",
	"oth_receiv", "prepayment", "inventories", "total_cur_assets",
	"fix_assets", "cip", "intan_assets", "r_and_d", "goodwill",
	"total_assets",
	"st_borr", "notes_payable", "acct_payable", "adv_receipts",
	"non_cur_liab_due_1y", "total_cur_liab", "lt_borr", "bond_payable",
	"total_liab", "total_hldr_eqy_exc_min_int",
}

var knownColumns = func() map[string]struct{} {
	m := make(map[string]struct{}, len(NumericColumns))
	for _, c := range NumericColumns {
		m[c] = struct{}{}
	}
	return m
}()

// Store supports ingestion (Add) and range reads over balance-sheet
// rows held in DuckDB. Add joins an ambient transaction when the
// caller put one in the context.
type Store interface {
	Add(ctx context.Context, records []store.StatementRecord) error
	GetStatements(ctx context.Context, symbol string, fields []string, from, to time.Time) ([]store.StatementRecord, error)
	GetStats(ctx context.Context, symbol string) (*store.StatementStats, error)
}

type statementStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &statementStore{db: db}, nil
}

func (s *statementStore) Add(ctx context.Context, records []store.StatementRecord) error {
	if len(records) == 0 {
		return nil
	}

	columns := append([]string{"symbol", "report_date", "comp_type"}, NumericColumns...)
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	query := fmt.Sprintf(
		`INSERT INTO balance_sheets (%s) VALUES (%s)`,
		strings.Join(columns, ", "), placeholders,
	)

	var stmt *sql.Stmt
	var err error
	if tx := duckdb.TxFrom(ctx); tx != nil {
		stmt, err = tx.PrepareContext(ctx, query)
	} else {
		stmt, err = s.db.PrepareContext(ctx, query)
	}
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, record := range records {
		args := make([]interface{}, 0, len(columns))
		args = append(args, record.Symbol, record.ReportDate)
		if record.CompType == "" {
			args = append(args, nil)
		} else {
			args = append(args, record.CompType)
		}
		for _, col := range NumericColumns {
			if v, ok := record.Fields[col]; ok && v.Valid {
				args = append(args, v.Float64)
			} else {
				args = append(args, nil)
			}
		}

		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("insert balance sheet %s/%s: %w",
				record.Symbol, record.ReportDate.Format("2006-01-02"), err)
		}
	}

	return nil
}

func (s *statementStore) GetStatements(
	ctx context.Context,
	symbol string,
	fields []string,
	from, to time.Time,
) ([]store.StatementRecord, error) {
	if len(fields) == 0 {
		fields = NumericColumns
	}
	for _, f := range fields {
		if _, ok := knownColumns[f]; !ok {
			return nil, fmt.Errorf("unknown balance sheet column %q", f)
		}
	}

	query := fmt.Sprintf(`
		SELECT symbol, report_date, comp_type, %s
		FROM balance_sheets
		WHERE symbol = ? AND report_date >= ? AND report_date < ?
		ORDER BY report_date
	`, strings.Join(fields, ", "))

	rows, err := s.db.QueryContext(ctx, query, symbol, from, to)
	if err != nil {
		return nil, fmt.Errorf("query balance sheets: %w", err)
	}
	defer rows.Close()

	return scanStatementRows(rows, fields)
}

func (s *statementStore) GetStats(ctx context.Context, symbol string) (*store.StatementStats, error) {
	query := `SELECT COUNT(*), MIN(report_date) FROM balance_sheets WHERE symbol = ?`

	var total int64
	var earliest sql.NullTime
	if err := s.db.QueryRowContext(ctx, query, symbol).Scan(&total, &earliest); err != nil {
		return nil, fmt.Errorf("get statement stats: %w", err)
	}

	var first *time.Time
	if earliest.Valid {
		t := earliest.Time
		first = &t
	}
	return &store.StatementStats{RecordsCount: total, FirstReportDate: first}, nil
}

func scanStatementRows(rows *sql.Rows, fields []string) ([]store.StatementRecord, error) {
	records := make([]store.StatementRecord, 0)
	for rows.Next() {
		var (
			symbol     string
			reportDate time.Time
			compType   sql.NullString
		)
		values := make([]sql.NullFloat64, len(fields))

		dest := make([]interface{}, 0, 3+len(fields))
		dest = append(dest, &symbol, &reportDate, &compType)
		for i := range values {
			dest = append(dest, &values[i])
		}

		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}

		record := store.StatementRecord{
			Symbol:     symbol,
			ReportDate: reportDate,
			CompType:   compType.String,
			Fields:     make(map[string]sql.NullFloat64, len(fields)),
		}
		for i, f := range fields {
			record.Fields[f] = values[i]
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

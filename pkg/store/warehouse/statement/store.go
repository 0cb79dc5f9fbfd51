package statement

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/fin-tools/stock-atlas/pkg/models/store"
	duckdbstatement "github.com/fin-tools/stock-atlas/pkg/store/duckdb/statement"
	"github.com/rs/zerolog"
)

// Store reads balance-sheet rows from a remote warehouse. The
// warehouse is an opaque store; the table is expected to match the
// local balance_sheets schema.
type Store interface {
	GetStatements(ctx context.Context, symbol string, fields []string, from, to time.Time) ([]store.StatementRecord, error)
	GetStats(ctx context.Context, symbol string) (*store.StatementStats, error)
}

type statementStore struct {
	db    *sql.DB
	table string
}

func NewStore(db *sql.DB, table string) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	if table == "" {
		table = "balance_sheets"
	}
	return &statementStore{db: db, table: table}, nil
}

func (s *statementStore) GetStatements(
	ctx context.Context,
	symbol string,
	fields []string,
	from, to time.Time,
) ([]store.StatementRecord, error) {
	logger := zerolog.Ctx(ctx)

	if len(fields) == 0 {
		fields = duckdbstatement.NumericColumns
	}
	known := make(map[string]struct{}, len(duckdbstatement.NumericColumns))
	for _, c := range duckdbstatement.NumericColumns {
		known[c] = struct{}{}
	}
	for _, f := range fields {
		if _, ok := known[f]; !ok {
			return nil, fmt.Errorf("unknown balance sheet column %q", f)
		}
	}

	query := fmt.Sprintf(`
		SELECT symbol, report_date, comp_type, %s
		FROM %s
		WHERE symbol = ? AND report_date >= ? AND report_date < ?
		ORDER BY report_date
	`, strings.Join(fields, ", "), s.table)

	rows, err := s.db.QueryContext(ctx, query,
		symbol, from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("warehouse balance sheet query failed: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close balance sheet query rows")
		}
	}(rows)

	records := make([]store.StatementRecord, 0)
	for rows.Next() {
		var (
			sym        string
			reportDate time.Time
			compType   sql.NullString
		)
		values := make([]sql.NullFloat64, len(fields))

		dest := make([]interface{}, 0, 3+len(fields))
		dest = append(dest, &sym, &reportDate, &compType)
		for i := range values {
			dest = append(dest, &values[i])
		}

		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}

		record := store.StatementRecord{
			Symbol:     sym,
			ReportDate: reportDate,
			CompType:   compType.String,
			Fields:     make(map[string]sql.NullFloat64, len(fields)),
		}
		for i, f := range fields {
			record.Fields[f] = values[i]
		}
		records = append(records, record)
	}

	logger.Debug().
		Str("symbol", symbol).
		Int("records", len(records)).
		Msg("retrieved balance sheets from warehouse")

	return records, rows.Err()
}

func (s *statementStore) GetStats(ctx context.Context, symbol string) (*store.StatementStats, error) {
	query := fmt.Sprintf(
		`SELECT COUNT(*) AS total_records, MIN(report_date) AS earliest_record FROM %s WHERE symbol = ?`,
		s.table,
	)

	var total int64
	var earliest sql.NullTime
	if err := s.db.QueryRowContext(ctx, query, symbol).Scan(&total, &earliest); err != nil {
		return nil, fmt.Errorf("get statement stats failed: %w", err)
	}

	var first *time.Time
	if earliest.Valid {
		t := earliest.Time
		first = &t
	}
	return &store.StatementStats{RecordsCount: total, FirstReportDate: first}, nil
}

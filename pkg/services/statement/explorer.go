package statement

import (
	"context"
	"fmt"
	"time"

	"github.com/fin-tools/stock-atlas/pkg/models/domain"
	"github.com/fin-tools/stock-atlas/pkg/models/store"
	"github.com/fin-tools/stock-atlas/pkg/services/derive"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Store is the slice of a statement store the explorer needs.
type Store interface {
	GetStatements(ctx context.Context, symbol string, fields []string, from, to time.Time) ([]store.StatementRecord, error)
}

// Explorer resolves balance-sheet rows for a symbol and period and
// augments each with the configured derived totals.
type Explorer interface {
	GetDerived(ctx context.Context, symbol string, from, to time.Time) ([]domain.Statement, error)
	DerivedFields() []domain.DerivedField
}

type explorer struct {
	store  Store
	fields []domain.DerivedField
}

func NewExplorer(s Store, fields []domain.DerivedField) Explorer {
	if len(fields) == 0 {
		fields = derive.Defaults()
	}
	return &explorer{store: s, fields: fields}
}

func (e *explorer) DerivedFields() []domain.DerivedField {
	return e.fields
}

func (e *explorer) GetDerived(ctx context.Context, symbol string, from, to time.Time) ([]domain.Statement, error) {
	logger := zerolog.Ctx(ctx)

	records, err := e.store.GetStatements(ctx, symbol, nil, from, to)
	if err != nil {
		return nil, fmt.Errorf("resolve statements for %s: %w", symbol, err)
	}

	statements := make([]domain.Statement, 0, len(records))
	for _, record := range records {
		row := rowFromRecord(record)
		statements = append(statements, domain.Statement{
			Symbol:     record.Symbol,
			ReportDate: record.ReportDate,
			CompType:   record.CompType,
			Fields:     derive.Apply(row, e.fields),
		})
	}

	logger.Debug().
		Str("symbol", symbol).
		Int("statements", len(statements)).
		Int("derived_fields", len(e.fields)).
		Msg("evaluated derived fields")

	return statements, nil
}

func rowFromRecord(record store.StatementRecord) domain.Row {
	row := make(domain.Row, len(record.Fields))
	for name, v := range record.Fields {
		if v.Valid {
			row.Set(name, decimal.NewFromFloat(v.Float64))
		} else {
			row[name] = decimal.NullDecimal{}
		}
	}
	return row
}

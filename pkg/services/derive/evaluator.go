package derive

import (
	"github.com/fin-tools/stock-atlas/pkg/models/domain"
	"github.com/shopspring/decimal"
)

// Evaluate computes the null-safe sum of a derived field's sources over
// the given row. Absent or null source fields contribute zero, so the
// result is always defined. Decimal arithmetic keeps the sum exact and
// independent of source order.
func Evaluate(row domain.Row, field domain.DerivedField) decimal.Decimal {
	total := decimal.Zero
	for _, name := range field.Fields {
		if v, ok := row.Get(name); ok {
			total = total.Add(v)
		}
	}
	return total
}

// Apply returns a copy of the row augmented with every derived total.
// Totals are computed against the input row, so one derived field never
// observes another's output regardless of declaration order.
func Apply(row domain.Row, fields []domain.DerivedField) domain.Row {
	out := row.Clone()
	for _, f := range fields {
		out.Set(f.Name, Evaluate(row, f))
	}
	return out
}

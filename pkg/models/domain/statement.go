package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Row is one observation of named, possibly-missing numeric fields.
// A missing key and a key holding an invalid NullDecimal are equivalent:
// both read as "no value".
type Row map[string]decimal.NullDecimal

// Get returns the field value and whether it is present and non-null.
func (r Row) Get(field string) (decimal.Decimal, bool) {
	v, ok := r[field]
	if !ok || !v.Valid {
		return decimal.Decimal{}, false
	}
	return v.Decimal, true
}

// Set stores a non-null value under the given field name.
func (r Row) Set(field string, value decimal.Decimal) {
	r[field] = decimal.NullDecimal{Decimal: value, Valid: true}
}

// Clone returns an independent copy of the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// DerivedField names an aggregate defined as the null-safe sum of a
// fixed list of source fields. Instances are static configuration,
// defined once and reused across many rows.
type DerivedField struct {
	Name   string
	Label  string // optional human-readable label, e.g. the Chinese statement caption
	Fields []string
}

// Statement is one balance-sheet observation for a symbol and period.
type Statement struct {
	Symbol     string
	ReportDate time.Time
	CompType   string
	Fields     Row
}

package store

import (
	"database/sql"
	"time"
)

// StatementRecord is the storage shape of one balance-sheet row.
// Fields holds the numeric statement columns keyed by column name;
// columns absent from the map were not part of the projection.
type StatementRecord struct {
	Symbol     string
	ReportDate time.Time
	CompType   string
	Fields     map[string]sql.NullFloat64
}

// StatementStats summarizes what a store holds for one symbol.
type StatementStats struct {
	RecordsCount    int64
	FirstReportDate *time.Time
}

package duckdb

import (
	"context"
	"database/sql"
)

type txKey struct{}

// WithTx stores a transaction in the context so stores can join an
// ingest batch started by the caller.
func WithTx(ctx context.Context, tx *sql.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// TxFrom returns the ambient transaction, or nil when the caller did
// not start one.
func TxFrom(ctx context.Context) *sql.Tx {
	tx, _ := ctx.Value(txKey{}).(*sql.Tx)
	return tx
}

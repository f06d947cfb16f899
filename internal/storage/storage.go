// Package storage holds the narrow database surface repositories depend on,
// so tests can inject a pgxmock pool in place of a real pgxpool.Pool.
package storage

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the read/write surface shared by pgxpool.Pool, pgx.Tx and
// pgxmock pools.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// TxBeginner extends Querier with transaction support for repositories that
// perform multi-statement writes.
type TxBeginner interface {
	Querier
	Begin(ctx context.Context) (pgx.Tx, error)
}

// IsUniqueViolation reports whether err is a Postgres unique constraint
// violation (SQLSTATE 23505).
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// IsNoRows reports whether err means the query matched nothing.
func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

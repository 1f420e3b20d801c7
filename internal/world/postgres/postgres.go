// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatMUD Contributors

// Package postgres provides PostgreSQL implementations of the world
// repositories.
package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// querier abstracts query execution over *pgxpool.Pool, pgx.Tx, and
// pgxmock pools, so repository methods work inside and outside transactions.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// poolIface is the connection pool surface the repositories need. Both
// *pgxpool.Pool and pgxmock.PgxPoolIface satisfy it.
type poolIface interface {
	querier
	Begin(ctx context.Context) (pgx.Tx, error)
}

// q returns the transaction stored in ctx by Transactor.WithinTx, or the
// pool when no transaction is active.
func q(ctx context.Context, pool poolIface) querier {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return pool
}

package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type contextKey string

// DBConnKey carries a request-scoped database connection.
const DBConnKey contextKey = "db_conn"

// ConnFromContext retrieves the request-scoped database connection from
// context. Returns nil when none was acquired; repositories fall back to
// the shared pool.
func ConnFromContext(ctx context.Context) *pgxpool.Conn {
	conn, _ := ctx.Value(DBConnKey).(*pgxpool.Conn)
	return conn
}

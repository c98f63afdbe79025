// Package querier выполняет SQL в транзакции из контекста, если она открыта
// менеджером pkg/tx, иначе напрямую в пуле.
package querier

import (
	"context"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Querier struct {
	db     *pgxpool.Pool
	getter *pgxv5.CtxGetter
}

func New(db *pgxpool.Pool, getter *pgxv5.CtxGetter) *Querier {
	if getter == nil {
		getter = pgxv5.DefaultCtxGetter
	}
	return &Querier{
		db:     db,
		getter: getter,
	}
}

func (q *Querier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return q.executor(ctx).Exec(ctx, sql, args...)
}

func (q *Querier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return q.executor(ctx).Query(ctx, sql, args...)
}

// QueryRow ошибка отложена до Scan, как в pgx.
func (q *Querier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return q.executor(ctx).QueryRow(ctx, sql, args...)
}

func (q *Querier) executor(ctx context.Context) pgxv5.Tr {
	return q.getter.DefaultTrOrDB(ctx, q.db)
}

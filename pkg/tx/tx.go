package tx

import (
	"context"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/avito-tech/go-transaction-manager/trm/manager"
	"github.com/avito-tech/go-transaction-manager/trm/settings"
	"github.com/jackc/pgx/v5"
)

// Manager открывает транзакцию и кладёт её в контекст, откуда её берёт
// pkg/querier. Вложенный Do присоединяется к внешней транзакции.
type Manager struct {
	trm      *manager.Manager
	settings pgxv5.Settings
}

type Option func(*pgx.TxOptions)

// WithIsoLevel уровень изоляции для всех транзакций менеджера.
func WithIsoLevel(level pgx.TxIsoLevel) Option {
	return func(o *pgx.TxOptions) {
		o.IsoLevel = level
	}
}

// New по умолчанию READ COMMITTED. Гонки за посылку отсекает версия строки,
// за ячейку FOR UPDATE SKIP LOCKED, поэтому более строгий уровень не нужен.
func New(db pgxv5.Transactional, opts ...Option) *Manager {
	txOptions := pgx.TxOptions{IsoLevel: pgx.ReadCommitted}
	for _, opt := range opts {
		opt(&txOptions)
	}

	txSettings := pgxv5.MustSettings(
		settings.Must(),
		pgxv5.WithTxOptions(txOptions),
	)

	return &Manager{
		trm:      manager.Must(pgxv5.NewDefaultFactory(db)),
		settings: txSettings,
	}
}

func (m *Manager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.trm.DoWithSettings(ctx, m.settings, fn)
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/imprenta-pos/internal/application/ports"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL, con todos
// los repositorios atados a la misma tx. Es la unidad de atomicidad de las
// secuencias leer-validar-escribir del libro de stock (traslados, ajustes,
// consumo) y de los borrados en cascada.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos ports.TxRepos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := ports.TxRepos{
		Materials:   NewMaterialRepository(tx),
		Stores:      NewStoreRepository(tx),
		Stocks:      NewStockRepository(tx),
		Totals:      NewUsageTotalRepository(tx),
		Usage:       NewUsageEventRepository(tx),
		Adjustments: NewAdjustmentEventRepository(tx),
		Transfers:   NewTransferEventRepository(tx),
		Tasks:       NewUsageTaskRepository(tx),
	}

	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

package ports

import (
	"context"

	"github.com/tu-usuario/imprenta-pos/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción de BD.
type TxRepos struct {
	Materials   repository.MaterialRepository
	Stores      repository.StoreRepository
	Stocks      repository.StockRepository
	Totals      repository.UsageTotalRepository
	Usage       repository.UsageEventRepository
	Adjustments repository.AdjustmentEventRepository
	Transfers   repository.TransferEventRepository
	Tasks       repository.UsageTaskRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para las secuencias
// leer-validar-escribir del libro de stock (traslados, ajustes, consumo).
type TxRunner interface {
	Run(ctx context.Context, fn func(r TxRepos) error) error
}

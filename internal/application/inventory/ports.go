package inventory

import (
	"context"

	"github.com/jhoicas/ceramic-erp/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Cabecera, línea, stock y caja se confirman juntos o no se confirma nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		tiles repository.TileRepository,
		sales repository.SaleRepository,
		purchases repository.PurchaseRepository,
		cash repository.CashAccountRepository,
	) error) error
}

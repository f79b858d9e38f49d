package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ceramic-erp/internal/domain/entity"
)

// CashAccountRepository caja única.
type CashAccountRepository interface {
	// Get devuelve la caja o nil, nil si aún no existe.
	Get(ctx context.Context) (*entity.CashAccount, error)
	// Credit crea la caja con saldo cero si falta y le suma amount. Devuelve el nuevo saldo.
	Credit(ctx context.Context, amount decimal.Decimal) (decimal.Decimal, error)
}

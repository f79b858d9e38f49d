package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashAccountID la caja es una fila única.
const CashAccountID = 1

// CashAccount saldo de caja. Se crea en la primera venta con saldo cero.
type CashAccount struct {
	ID        int
	Balance   decimal.Decimal
	UpdatedAt time.Time
}

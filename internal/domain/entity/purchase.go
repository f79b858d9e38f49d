package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase compra a un proveedor. Invariante: PaidAmount + DueAmount == TotalAmount.
type Purchase struct {
	ID           string
	SupplierName string
	SupplierKey  string
	Date         time.Time
	TotalAmount  decimal.Decimal
	PaymentType  PaymentType
	PaidAmount   decimal.Decimal
	DueAmount    decimal.Decimal
	CreatedBy    string
	Items        []PurchaseItem
}

// PurchaseItem línea de una compra.
type PurchaseItem struct {
	ID         string
	PurchaseID string
	TileID     string
	TileName   string
	Quantity   int
	UnitPrice  decimal.Decimal
}

func (i PurchaseItem) LineAmount() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

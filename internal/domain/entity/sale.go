package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale venta a un cliente. Invariante: PaidAmount + DueAmount == TotalAmount.
type Sale struct {
	ID           string
	CustomerName string
	CustomerKey  string // nombre normalizado para agrupar el libro mayor por cliente
	Date         time.Time
	TotalAmount  decimal.Decimal
	PaymentType  PaymentType
	PaidAmount   decimal.Decimal
	DueAmount    decimal.Decimal
	CreatedBy    string
	Items        []SaleItem
}

// SaleItem línea de una venta. Pertenece a una única venta.
type SaleItem struct {
	ID        string
	SaleID    string
	TileID    string
	TileName  string // solo lectura
	Quantity  int
	UnitPrice decimal.Decimal
}

// LineAmount cantidad × precio unitario.
func (i SaleItem) LineAmount() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

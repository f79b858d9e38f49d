package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultLowStockThreshold umbral de stock bajo cuando no se indica otro.
const DefaultLowStockThreshold = 10

// Tile baldosa vendible (variante de producto cerámico). Precio por caja.
type Tile struct {
	ID                string
	Name              string
	CategoryID        string
	CategoryName      string // solo lectura, resuelto por JOIN
	Size              string
	Price             decimal.Decimal
	StockQuantity     int
	LowStockThreshold int
	IsDeleted         bool
	CreatedAt         time.Time
}

// IsLowStock stock igual o por debajo del umbral.
func (t *Tile) IsLowStock() bool {
	return t.StockQuantity <= t.LowStockThreshold
}

// InventoryValue stock × precio.
func (t *Tile) InventoryValue() decimal.Decimal {
	return t.Price.Mul(decimal.NewFromInt(int64(t.StockQuantity)))
}

package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ceramic-erp/internal/domain/entity"
)

// StockSummary totales de inventario sobre un conjunto de baldosas activas.
type StockSummary struct {
	TileCount      int
	TotalStock     int
	LowStockTiles  int
	InventoryValue decimal.Decimal
	AveragePrice   decimal.Decimal
}

// Summarize calcula totales ignorando baldosas eliminadas.
// AveragePrice es el promedio simple de precios (cero si no hay baldosas).
func Summarize(tiles []*entity.Tile) StockSummary {
	sum := StockSummary{InventoryValue: decimal.Zero, AveragePrice: decimal.Zero}
	priceSum := decimal.Zero
	for _, t := range tiles {
		if t == nil || t.IsDeleted {
			continue
		}
		sum.TileCount++
		sum.TotalStock += t.StockQuantity
		if t.IsLowStock() {
			sum.LowStockTiles++
		}
		sum.InventoryValue = sum.InventoryValue.Add(t.InventoryValue())
		priceSum = priceSum.Add(t.Price)
	}
	if sum.TileCount > 0 {
		sum.AveragePrice = priceSum.Div(decimal.NewFromInt(int64(sum.TileCount))).RoundBank(2)
	}
	return sum
}

// ApplyDelta aplica un movimiento de stock. Devuelve false si dejaría el stock negativo.
func ApplyDelta(current, delta int) (int, bool) {
	next := current + delta
	if next < 0 {
		return current, false
	}
	return next, true
}

package repository

import (
	"context"

	"github.com/jhoicas/ceramic-erp/internal/domain/ledger"
)

// LedgerRepository consultas de solo lectura sobre ventas y compras para reportes.
type LedgerRepository interface {
	// ListLines líneas de venta y compra del alcance (baldosa o categoría) dentro del rango.
	ListLines(ctx context.Context, f ledger.LineFilter) ([]ledger.LineRecord, error)
	// ListTransactions cabeceras de la contraparte (clave normalizada) dentro del rango.
	ListTransactions(ctx context.Context, f ledger.TransactionFilter) ([]ledger.TransactionRecord, error)
	Totals(ctx context.Context) (*ledger.Totals, error)
}

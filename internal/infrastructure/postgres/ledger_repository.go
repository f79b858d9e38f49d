package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/ceramic-erp/internal/domain/entity"
	"github.com/jhoicas/ceramic-erp/internal/domain/ledger"
	"github.com/jhoicas/ceramic-erp/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo consultas read-only de reportes sobre ventas y compras.
type LedgerRepo struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository construye el repositorio de lectura.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepo {
	return &LedgerRepo{pool: pool}
}

// ListLines une líneas de venta y compra; $1 baldosa, $2 categoría ('' = sin filtro), $3/$4 rango [desde, hasta).
func (r *LedgerRepo) ListLines(ctx context.Context, f ledger.LineFilter) ([]ledger.LineRecord, error) {
	query := `
		SELECT 'Sale', s.id, si.id, s.date, s.customer_name, s.payment_type, si.tile_id, t.name,
		       si.quantity, si.unit_price, s.total_amount, s.paid_amount, s.due_amount
		FROM sale_items si
		JOIN sales s ON s.id = si.sale_id
		JOIN tiles t ON t.id = si.tile_id
		WHERE ($1::text = '' OR si.tile_id::text = $1)
		  AND ($2::text = '' OR t.category_id::text = $2)
		  AND ($3::timestamptz IS NULL OR s.date >= $3)
		  AND ($4::timestamptz IS NULL OR s.date < $4)
		UNION ALL
		SELECT 'Purchase', p.id, pi.id, p.date, p.supplier_name, p.payment_type, pi.tile_id, t.name,
		       pi.quantity, pi.unit_price, p.total_amount, p.paid_amount, p.due_amount
		FROM purchase_items pi
		JOIN purchases p ON p.id = pi.purchase_id
		JOIN tiles t ON t.id = pi.tile_id
		WHERE ($1::text = '' OR pi.tile_id::text = $1)
		  AND ($2::text = '' OR t.category_id::text = $2)
		  AND ($3::timestamptz IS NULL OR p.date >= $3)
		  AND ($4::timestamptz IS NULL OR p.date < $4)
		ORDER BY 4 DESC`
	start, hasStart := f.Range.Start()
	end, hasEnd := f.Range.EndExclusive()
	from, to := rangeBounds(start, hasStart, end, hasEnd)

	rows, err := r.pool.Query(ctx, query, f.TileID, f.CategoryID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list ledger lines: %w", err)
	}
	defer rows.Close()

	var out []ledger.LineRecord
	for rows.Next() {
		var rec ledger.LineRecord
		var kind, pt string
		if err := rows.Scan(
			&kind, &rec.TransactionID, &rec.ItemID, &rec.Date, &rec.Counterparty, &pt, &rec.TileID, &rec.TileName,
			&rec.Quantity, &rec.UnitPrice, &rec.TransactionTotal, &rec.TransactionPaid, &rec.TransactionDue,
		); err != nil {
			return nil, fmt.Errorf("scan ledger line: %w", err)
		}
		rec.Kind = ledger.Kind(kind)
		rec.PaymentType = entity.PaymentType(pt)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// ListTransactions cabeceras de la contraparte con conteo de líneas y cantidad total.
func (r *LedgerRepo) ListTransactions(ctx context.Context, f ledger.TransactionFilter) ([]ledger.TransactionRecord, error) {
	query := `
		SELECT 'Sale', s.id, s.customer_name, s.date, s.payment_type, s.total_amount, s.paid_amount, s.due_amount,
		       COUNT(si.id), COALESCE(SUM(si.quantity), 0)
		FROM sales s LEFT JOIN sale_items si ON si.sale_id = s.id
		WHERE s.customer_key = $1
		  AND ($2::timestamptz IS NULL OR s.date >= $2)
		  AND ($3::timestamptz IS NULL OR s.date < $3)
		GROUP BY s.id
		UNION ALL
		SELECT 'Purchase', p.id, p.supplier_name, p.date, p.payment_type, p.total_amount, p.paid_amount, p.due_amount,
		       COUNT(pi.id), COALESCE(SUM(pi.quantity), 0)
		FROM purchases p LEFT JOIN purchase_items pi ON pi.purchase_id = p.id
		WHERE p.supplier_key = $1
		  AND ($2::timestamptz IS NULL OR p.date >= $2)
		  AND ($3::timestamptz IS NULL OR p.date < $3)
		GROUP BY p.id
		ORDER BY 4 DESC`
	start, hasStart := f.Range.Start()
	end, hasEnd := f.Range.EndExclusive()
	from, to := rangeBounds(start, hasStart, end, hasEnd)

	rows, err := r.pool.Query(ctx, query, f.CounterpartyKey, from, to)
	if err != nil {
		return nil, fmt.Errorf("list ledger transactions: %w", err)
	}
	defer rows.Close()

	var out []ledger.TransactionRecord
	for rows.Next() {
		var rec ledger.TransactionRecord
		var kind, pt string
		if err := rows.Scan(
			&kind, &rec.ID, &rec.Counterparty, &rec.Date, &pt, &rec.Total, &rec.Paid, &rec.Due,
			&rec.ItemsCount, &rec.TotalQuantity,
		); err != nil {
			return nil, fmt.Errorf("scan ledger transaction: %w", err)
		}
		rec.Kind = ledger.Kind(kind)
		rec.PaymentType = entity.PaymentType(pt)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Totals sumas globales de ventas y compras.
func (r *LedgerRepo) Totals(ctx context.Context) (*ledger.Totals, error) {
	var t ledger.Totals
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(total_amount), 0), COALESCE(SUM(paid_amount), 0),
		       COALESCE(SUM(due_amount), 0), COUNT(DISTINCT customer_key)
		FROM sales`,
	).Scan(&t.SalesCount, &t.SalesTotal, &t.SalesPaid, &t.SalesDue, &t.UniqueCustomers)
	if err != nil {
		return nil, fmt.Errorf("sales totals: %w", err)
	}
	err = r.pool.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(total_amount), 0), COALESCE(SUM(paid_amount), 0),
		       COALESCE(SUM(due_amount), 0), COUNT(DISTINCT supplier_key)
		FROM purchases`,
	).Scan(&t.PurchaseCount, &t.PurchaseTotal, &t.PurchasePaid, &t.PurchaseDue, &t.UniqueSuppliers)
	if err != nil {
		return nil, fmt.Errorf("purchase totals: %w", err)
	}
	return &t, nil
}

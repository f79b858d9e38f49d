package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ceramic-erp/internal/domain"
	"github.com/jhoicas/ceramic-erp/internal/domain/entity"
	"github.com/jhoicas/ceramic-erp/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

const purchaseColumns = `
	id, supplier_name, supplier_key, date, total_amount, payment_type, paid_amount, due_amount,
	COALESCE(created_by::text, '')
	FROM purchases`

// PurchaseRepo implementación de PurchaseRepository (usable con pool o tx).
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

// Create persiste cabecera y líneas. Debe ejecutarse dentro de la tx del caso de uso.
func (r *PurchaseRepo) Create(ctx context.Context, p *entity.Purchase) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO purchases (id, supplier_name, supplier_key, date, total_amount, payment_type, paid_amount, due_amount, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.SupplierName, p.SupplierKey, p.Date, p.TotalAmount, string(p.PaymentType),
		p.PaidAmount, p.DueAmount, nullIfEmpty(p.CreatedBy),
	)
	if err != nil {
		return fmt.Errorf("insert purchase: %w", err)
	}
	for i := range p.Items {
		it := &p.Items[i]
		it.PurchaseID = p.ID
		_, err := r.q.Exec(ctx, `
			INSERT INTO purchase_items (id, purchase_id, tile_id, quantity, unit_price)
			VALUES ($1, $2, $3, $4, $5)`,
			it.ID, it.PurchaseID, it.TileID, it.Quantity, it.UnitPrice,
		)
		if err != nil {
			if isForeignKeyViolation(err) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("insert purchase item: %w", err)
		}
	}
	return nil
}

func (r *PurchaseRepo) GetByID(ctx context.Context, id string) (*entity.Purchase, error) {
	p, err := scanPurchase(r.q.QueryRow(ctx, `SELECT `+purchaseColumns+` WHERE id = $1`, id))
	if err != nil {
		if noRow(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	if err := r.loadItems(ctx, []*entity.Purchase{p}); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PurchaseRepo) List(ctx context.Context, limit, offset int) ([]*entity.Purchase, error) {
	rows, err := r.q.Query(ctx, `SELECT `+purchaseColumns+` ORDER BY date DESC, id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	var list []*entity.Purchase
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		list = append(list, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	if err := r.loadItems(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// loadItems carga las líneas de todas las compras en una sola consulta.
func (r *PurchaseRepo) loadItems(ctx context.Context, purchases []*entity.Purchase) error {
	if len(purchases) == 0 {
		return nil
	}
	ids := make([]string, 0, len(purchases))
	byID := make(map[string]*entity.Purchase, len(purchases))
	for _, p := range purchases {
		ids = append(ids, p.ID)
		byID[p.ID] = p
	}
	rows, err := r.q.Query(ctx, `
		SELECT pi.id, pi.purchase_id, pi.tile_id, t.name, pi.quantity, pi.unit_price
		FROM purchase_items pi JOIN tiles t ON t.id = pi.tile_id
		WHERE pi.purchase_id = ANY($1::uuid[])
		ORDER BY pi.id`, ids)
	if err != nil {
		return fmt.Errorf("list purchase items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.PurchaseItem
		if err := rows.Scan(&it.ID, &it.PurchaseID, &it.TileID, &it.TileName, &it.Quantity, &it.UnitPrice); err != nil {
			return fmt.Errorf("scan purchase item: %w", err)
		}
		if p, ok := byID[it.PurchaseID]; ok {
			p.Items = append(p.Items, it)
		}
	}
	return rows.Err()
}

func scanPurchase(row pgx.Row) (*entity.Purchase, error) {
	var p entity.Purchase
	var pt string
	if err := row.Scan(
		&p.ID, &p.SupplierName, &p.SupplierKey, &p.Date, &p.TotalAmount, &pt,
		&p.PaidAmount, &p.DueAmount, &p.CreatedBy,
	); err != nil {
		return nil, err
	}
	p.PaymentType = entity.PaymentType(pt)
	return &p, nil
}

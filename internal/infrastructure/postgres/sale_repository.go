package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ceramic-erp/internal/domain"
	"github.com/jhoicas/ceramic-erp/internal/domain/entity"
	"github.com/jhoicas/ceramic-erp/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `
	id, customer_name, customer_key, date, total_amount, payment_type, paid_amount, due_amount,
	COALESCE(created_by::text, '')
	FROM sales`

// SaleRepo implementación de SaleRepository (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste cabecera y líneas. Debe ejecutarse dentro de la tx del caso de uso.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO sales (id, customer_name, customer_key, date, total_amount, payment_type, paid_amount, due_amount, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		s.ID, s.CustomerName, s.CustomerKey, s.Date, s.TotalAmount, string(s.PaymentType),
		s.PaidAmount, s.DueAmount, nullIfEmpty(s.CreatedBy),
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	for i := range s.Items {
		it := &s.Items[i]
		it.SaleID = s.ID
		_, err := r.q.Exec(ctx, `
			INSERT INTO sale_items (id, sale_id, tile_id, quantity, unit_price)
			VALUES ($1, $2, $3, $4, $5)`,
			it.ID, it.SaleID, it.TileID, it.Quantity, it.UnitPrice,
		)
		if err != nil {
			if isForeignKeyViolation(err) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("insert sale item: %w", err)
		}
	}
	return nil
}

func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx, `SELECT `+saleColumns+` WHERE id = $1`, id))
	if err != nil {
		if noRow(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	if err := r.loadItems(ctx, []*entity.Sale{s}); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SaleRepo) List(ctx context.Context, limit, offset int) ([]*entity.Sale, error) {
	rows, err := r.q.Query(ctx, `SELECT `+saleColumns+` ORDER BY date DESC, id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	var list []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	if err := r.loadItems(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// loadItems carga las líneas de todas las ventas en una sola consulta.
func (r *SaleRepo) loadItems(ctx context.Context, sales []*entity.Sale) error {
	if len(sales) == 0 {
		return nil
	}
	ids := make([]string, 0, len(sales))
	byID := make(map[string]*entity.Sale, len(sales))
	for _, s := range sales {
		ids = append(ids, s.ID)
		byID[s.ID] = s
	}
	rows, err := r.q.Query(ctx, `
		SELECT si.id, si.sale_id, si.tile_id, t.name, si.quantity, si.unit_price
		FROM sale_items si JOIN tiles t ON t.id = si.tile_id
		WHERE si.sale_id = ANY($1::uuid[])
		ORDER BY si.id`, ids)
	if err != nil {
		return fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.TileID, &it.TileName, &it.Quantity, &it.UnitPrice); err != nil {
			return fmt.Errorf("scan sale item: %w", err)
		}
		if s, ok := byID[it.SaleID]; ok {
			s.Items = append(s.Items, it)
		}
	}
	return rows.Err()
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	var pt string
	if err := row.Scan(
		&s.ID, &s.CustomerName, &s.CustomerKey, &s.Date, &s.TotalAmount, &pt,
		&s.PaidAmount, &s.DueAmount, &s.CreatedBy,
	); err != nil {
		return nil, err
	}
	s.PaymentType = entity.PaymentType(pt)
	return &s, nil
}

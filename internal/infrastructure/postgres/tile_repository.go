package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ceramic-erp/internal/domain"
	"github.com/jhoicas/ceramic-erp/internal/domain/entity"
	"github.com/jhoicas/ceramic-erp/internal/domain/repository"
)

var _ repository.TileRepository = (*TileRepo)(nil)

const tileColumns = `
	t.id, t.name, t.category_id, c.name, t.size, t.price, t.stock_quantity,
	t.low_stock_threshold, t.is_deleted, t.created_at
	FROM tiles t JOIN categories c ON c.id = t.category_id`

// TileRepo implementación de TileRepository sobre PostgreSQL (usable con pool o tx).
type TileRepo struct {
	q Querier
}

// NewTileRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTileRepository(q Querier) *TileRepo {
	return &TileRepo{q: q}
}

func (r *TileRepo) Create(ctx context.Context, t *entity.Tile) error {
	query := `
		INSERT INTO tiles (id, name, category_id, size, price, stock_quantity, low_stock_threshold, is_deleted, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.Name, t.CategoryID, t.Size, t.Price, t.StockQuantity, t.LowStockThreshold, t.IsDeleted, t.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert tile: %w", err)
	}
	return nil
}

func (r *TileRepo) GetByID(ctx context.Context, id string) (*entity.Tile, error) {
	return r.getOne(ctx, `SELECT `+tileColumns+` WHERE t.id = $1`, id)
}

// GetForUpdate bloquea la fila de la baldosa (SELECT FOR UPDATE) hasta el Commit/Rollback.
func (r *TileRepo) GetForUpdate(ctx context.Context, id string) (*entity.Tile, error) {
	return r.getOne(ctx, `SELECT `+tileColumns+` WHERE t.id = $1 FOR UPDATE OF t`, id)
}

func (r *TileRepo) getOne(ctx context.Context, query, id string) (*entity.Tile, error) {
	t, err := scanTile(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if noRow(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tile: %w", err)
	}
	return t, nil
}

func (r *TileRepo) ListActive(ctx context.Context) ([]*entity.Tile, error) {
	return r.list(ctx, `SELECT `+tileColumns+` WHERE NOT t.is_deleted ORDER BY t.name`)
}

func (r *TileRepo) ListActiveByCategory(ctx context.Context, categoryID string) ([]*entity.Tile, error) {
	return r.list(ctx, `SELECT `+tileColumns+` WHERE NOT t.is_deleted AND t.category_id = $1 ORDER BY t.name`, categoryID)
}

func (r *TileRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Tile, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tiles: %w", err)
	}
	defer rows.Close()
	var list []*entity.Tile
	for rows.Next() {
		t, err := scanTile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tile: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func (r *TileRepo) CountByCategory(ctx context.Context, categoryID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM tiles WHERE category_id = $1`, categoryID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count tiles: %w", err)
	}
	return n, nil
}

// Update modifica datos descriptivos. El stock solo cambia vía AdjustStock.
func (r *TileRepo) Update(ctx context.Context, t *entity.Tile) error {
	query := `
		UPDATE tiles SET name = $2, category_id = $3, size = $4, price = $5, low_stock_threshold = $6
		WHERE id = $1 AND NOT is_deleted`
	cmd, err := r.q.Exec(ctx, query, t.ID, t.Name, t.CategoryID, t.Size, t.Price, t.LowStockThreshold)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update tile: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AdjustStock actualización condicional: nunca deja stock negativo aunque el llamador no haya bloqueado la fila.
func (r *TileRepo) AdjustStock(ctx context.Context, id string, delta int) (int, error) {
	var qty int
	err := r.q.QueryRow(ctx, `
		UPDATE tiles SET stock_quantity = stock_quantity + $2
		WHERE id = $1 AND stock_quantity + $2 >= 0
		RETURNING stock_quantity`, id, delta,
	).Scan(&qty)
	if err == nil {
		return qty, nil
	}
	if isInvalidTextRepresentation(err) {
		return 0, domain.ErrNotFound
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("adjust stock: %w", err)
	}
	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM tiles WHERE id = $1)`, id).Scan(&exists); err != nil {
		return 0, fmt.Errorf("adjust stock: %w", err)
	}
	if !exists {
		return 0, domain.ErrNotFound
	}
	return 0, domain.ErrInsufficientStock
}

func (r *TileRepo) SoftDelete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE tiles SET is_deleted = true WHERE id = $1 AND NOT is_deleted`, id)
	if err != nil {
		if isInvalidTextRepresentation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("soft delete tile: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanTile(row pgx.Row) (*entity.Tile, error) {
	var t entity.Tile
	err := row.Scan(
		&t.ID, &t.Name, &t.CategoryID, &t.CategoryName, &t.Size, &t.Price, &t.StockQuantity,
		&t.LowStockThreshold, &t.IsDeleted, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

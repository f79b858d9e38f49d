package repository

import (
	"context"

	"github.com/jhoicas/ceramic-erp/internal/domain/entity"
)

// TileRepository puerto de persistencia para baldosas.
// GetByID y GetForUpdate devuelven nil, nil cuando no existe.
type TileRepository interface {
	Create(ctx context.Context, t *entity.Tile) error
	GetByID(ctx context.Context, id string) (*entity.Tile, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT ... FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Tile, error)
	ListActive(ctx context.Context) ([]*entity.Tile, error)
	ListActiveByCategory(ctx context.Context, categoryID string) ([]*entity.Tile, error)
	// CountByCategory cuenta también las eliminadas: siguen referenciando la categoría.
	CountByCategory(ctx context.Context, categoryID string) (int, error)
	Update(ctx context.Context, t *entity.Tile) error
	// AdjustStock suma delta al stock y devuelve el nuevo valor.
	// Devuelve domain.ErrInsufficientStock si el resultado sería negativo.
	AdjustStock(ctx context.Context, id string, delta int) (int, error)
	SoftDelete(ctx context.Context, id string) error
}

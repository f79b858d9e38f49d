package repository

import (
	"context"

	"github.com/jhoicas/ceramic-erp/internal/domain/entity"
)

// CategoryRepository puerto de persistencia para categorías.
type CategoryRepository interface {
	Create(ctx context.Context, c *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	List(ctx context.Context) ([]*entity.Category, error) // ordenadas por nombre
	Delete(ctx context.Context, id string) error
}

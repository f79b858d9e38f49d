package repository

import (
	"context"

	"github.com/jhoicas/ceramic-erp/internal/domain/entity"
)

// SaleRepository persiste cabecera y líneas de ventas.
type SaleRepository interface {
	Create(ctx context.Context, s *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	// List más recientes primero, con líneas.
	List(ctx context.Context, limit, offset int) ([]*entity.Sale, error)
}

package repository

import (
	"context"

	"github.com/jhoicas/ceramic-erp/internal/domain/entity"
)

// PurchaseRepository persiste cabecera y líneas de compras.
type PurchaseRepository interface {
	Create(ctx context.Context, p *entity.Purchase) error
	GetByID(ctx context.Context, id string) (*entity.Purchase, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Purchase, error)
}

package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/ceramic-erp/internal/domain"
	"github.com/jhoicas/ceramic-erp/internal/domain/entity"
	"github.com/jhoicas/ceramic-erp/internal/domain/repository"
)

// WithdrawInTx bloquea la baldosa (SELECT FOR UPDATE) y descuenta quantity.
// Usar solo con el repositorio recibido en TxRunner.Run. Devuelve la baldosa con el stock nuevo.
func WithdrawInTx(ctx context.Context, tiles repository.TileRepository, tileID string, quantity int) (*entity.Tile, error) {
	tile, err := lockActive(ctx, tiles, tileID)
	if err != nil {
		return nil, err
	}
	if tile.StockQuantity < quantity {
		return nil, &domain.ValidationError{
			Fields: map[string]string{"quantity": fmt.Sprintf("stock insuficiente: disponible %d, solicitado %d", tile.StockQuantity, quantity)},
			Cause:  domain.ErrInsufficientStock,
		}
	}
	return move(ctx, tiles, tile, -quantity)
}

// ReceiveInTx bloquea la baldosa y suma quantity (compras).
func ReceiveInTx(ctx context.Context, tiles repository.TileRepository, tileID string, quantity int) (*entity.Tile, error) {
	tile, err := lockActive(ctx, tiles, tileID)
	if err != nil {
		return nil, err
	}
	return move(ctx, tiles, tile, quantity)
}

// lockActive las baldosas eliminadas no admiten transacciones nuevas.
func lockActive(ctx context.Context, tiles repository.TileRepository, tileID string) (*entity.Tile, error) {
	tile, err := tiles.GetForUpdate(ctx, tileID)
	if err != nil {
		return nil, fmt.Errorf("lock tile: %w", err)
	}
	if tile == nil || tile.IsDeleted {
		return nil, domain.ErrNotFound
	}
	return tile, nil
}

func move(ctx context.Context, tiles repository.TileRepository, tile *entity.Tile, delta int) (*entity.Tile, error) {
	qty, err := tiles.AdjustStock(ctx, tile.ID, delta)
	if err != nil {
		return nil, err
	}
	tile.StockQuantity = qty
	return tile, nil
}

package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/ceramic-erp/internal/application/dto"
	"github.com/jhoicas/ceramic-erp/internal/application/ports"
	"github.com/jhoicas/ceramic-erp/internal/application/validation"
	"github.com/jhoicas/ceramic-erp/internal/domain"
	"github.com/jhoicas/ceramic-erp/internal/domain/entity"
	"github.com/jhoicas/ceramic-erp/internal/domain/inventory"
	"github.com/jhoicas/ceramic-erp/internal/domain/repository"
)

// TileUseCase casos de uso CRUD para baldosas. El stock solo cambia con ventas y compras.
type TileUseCase struct {
	repo             repository.TileRepository
	categoryRepo     repository.CategoryRepository
	validator        *validation.Validator
	cache            ports.ReportCache
	defaultThreshold int
}

// NewTileUseCase construye el caso de uso. defaultThreshold aplica a baldosas creadas sin umbral.
func NewTileUseCase(repo repository.TileRepository, categoryRepo repository.CategoryRepository, v *validation.Validator, cache ports.ReportCache, defaultThreshold int) *TileUseCase {
	if defaultThreshold < 0 {
		defaultThreshold = entity.DefaultLowStockThreshold
	}
	return &TileUseCase{repo: repo, categoryRepo: categoryRepo, validator: v, cache: cache, defaultThreshold: defaultThreshold}
}

// Create crea una baldosa con stock inicial.
func (uc *TileUseCase) Create(ctx context.Context, in dto.CreateTileRequest) (*dto.TileResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Size = strings.TrimSpace(in.Size)
	if err := uc.validator.Struct(in); err != nil {
		return nil, err
	}
	if in.Price.IsNegative() {
		return nil, domain.NewValidationError("price", "debe ser mayor o igual a 0")
	}
	cat, err := uc.categoryRepo.GetByID(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, domain.NewValidationError("category_id", "la categoría no existe")
	}
	threshold := uc.defaultThreshold
	if in.LowStockThreshold != nil {
		threshold = *in.LowStockThreshold
	}
	tile := &entity.Tile{
		ID:                uuid.New().String(),
		Name:              in.Name,
		CategoryID:        cat.ID,
		CategoryName:      cat.Name,
		Size:              in.Size,
		Price:             in.Price,
		StockQuantity:     in.StockQuantity,
		LowStockThreshold: threshold,
		CreatedAt:         time.Now().UTC(),
	}
	if err := uc.repo.Create(ctx, tile); err != nil {
		return nil, err
	}
	bump(ctx, uc.cache)
	return ToTileResponse(tile), nil
}

// Update cambia nombre, categoría, medida, precio y umbral.
func (uc *TileUseCase) Update(ctx context.Context, id string, in dto.UpdateTileRequest) (*dto.TileResponse, error) {
	if !validation.ID(id) {
		return nil, domain.ErrNotFound
	}
	in.Name = strings.TrimSpace(in.Name)
	in.Size = strings.TrimSpace(in.Size)
	if err := uc.validator.Struct(in); err != nil {
		return nil, err
	}
	if in.Price.IsNegative() {
		return nil, domain.NewValidationError("price", "debe ser mayor o igual a 0")
	}
	tile, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tile == nil || tile.IsDeleted {
		return nil, domain.ErrNotFound
	}
	cat, err := uc.categoryRepo.GetByID(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, domain.NewValidationError("category_id", "la categoría no existe")
	}
	tile.Name = in.Name
	tile.CategoryID = cat.ID
	tile.CategoryName = cat.Name
	tile.Size = in.Size
	tile.Price = in.Price
	tile.LowStockThreshold = in.LowStockThreshold
	if err := uc.repo.Update(ctx, tile); err != nil {
		return nil, err
	}
	bump(ctx, uc.cache)
	return ToTileResponse(tile), nil
}

// Delete baja lógica; las ventas y compras históricas siguen apuntando a la baldosa.
func (uc *TileUseCase) Delete(ctx context.Context, id string) error {
	if !validation.ID(id) {
		return domain.ErrNotFound
	}
	if err := uc.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	bump(ctx, uc.cache)
	return nil
}

// List baldosas activas ordenadas por nombre con el resumen de inventario.
func (uc *TileUseCase) List(ctx context.Context) (*dto.TileListResponse, error) {
	tiles, err := uc.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TileResponse, 0, len(tiles))
	for _, t := range tiles {
		items = append(items, *ToTileResponse(t))
	}
	sum := inventory.Summarize(tiles)
	return &dto.TileListResponse{
		Items: items,
		Summary: dto.StockSummaryResponse{
			TotalTiles:          sum.TileCount,
			TotalStock:          sum.TotalStock,
			LowStockTiles:       sum.LowStockTiles,
			TotalInventoryValue: sum.InventoryValue,
		},
	}, nil
}

// ToTileResponse mapea la entidad con sus valores derivados.
func ToTileResponse(t *entity.Tile) *dto.TileResponse {
	return &dto.TileResponse{
		ID:                t.ID,
		Name:              t.Name,
		CategoryID:        t.CategoryID,
		CategoryName:      t.CategoryName,
		Size:              t.Size,
		Price:             t.Price,
		StockQuantity:     t.StockQuantity,
		LowStockThreshold: t.LowStockThreshold,
		IsLowStock:        t.IsLowStock(),
		InventoryValue:    t.InventoryValue(),
		CreatedAt:         t.CreatedAt,
	}
}

package usecase

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/jhoicas/ceramic-erp/internal/application/dto"
	"github.com/jhoicas/ceramic-erp/internal/domain/repository"
)

// CatalogImportUseCase alta masiva de categorías y baldosas.
// Las categorías se buscan por nombre sin distinguir mayúsculas; una baldosa que ya
// existe con el mismo nombre en su categoría se omite, así que reimportar es idempotente.
type CatalogImportUseCase struct {
	categories   *CategoryUseCase
	tiles        *TileUseCase
	categoryRepo repository.CategoryRepository
	tileRepo     repository.TileRepository
}

// NewCatalogImportUseCase construye el caso de uso sobre los de catálogo.
func NewCatalogImportUseCase(categories *CategoryUseCase, tiles *TileUseCase, categoryRepo repository.CategoryRepository, tileRepo repository.TileRepository) *CatalogImportUseCase {
	return &CatalogImportUseCase{categories: categories, tiles: tiles, categoryRepo: categoryRepo, tileRepo: tileRepo}
}

// Import crea lo que falta. Se detiene en la primera fila inválida; lo creado antes queda.
func (uc *CatalogImportUseCase) Import(ctx context.Context, rows []dto.CatalogRow) (*dto.CatalogImportResult, error) {
	existing, err := uc.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	catByKey := make(map[string]string, len(existing))
	for _, c := range existing {
		catByKey[foldKey(c.Name)] = c.ID
	}

	tileKeys := make(map[string]bool)
	tiles, err := uc.tileRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	for _, t := range tiles {
		tileKeys[t.CategoryID+"|"+foldKey(t.Name)] = true
	}

	var res dto.CatalogImportResult
	for _, row := range rows {
		key := foldKey(row.Category)
		catID, ok := catByKey[key]
		if !ok {
			c, err := uc.categories.Create(ctx, dto.CreateCategoryRequest{Name: row.Category})
			if err != nil {
				return &res, fmt.Errorf("línea %d: categoría: %w", row.Line, err)
			}
			catID = c.ID
			catByKey[key] = catID
			res.CategoriesCreated++
		}

		tk := catID + "|" + foldKey(row.Name)
		if tileKeys[tk] {
			res.TilesSkipped++
			continue
		}
		_, err := uc.tiles.Create(ctx, dto.CreateTileRequest{
			Name:              row.Name,
			CategoryID:        catID,
			Size:              row.Size,
			Price:             row.Price,
			StockQuantity:     row.StockQuantity,
			LowStockThreshold: row.LowStockThreshold,
		})
		if err != nil {
			return &res, fmt.Errorf("línea %d: baldosa %q: %w", row.Line, row.Name, err)
		}
		tileKeys[tk] = true
		res.TilesCreated++
	}
	return &res, nil
}

func foldKey(s string) string {
	return cases.Fold().String(strings.Join(strings.Fields(s), " "))
}

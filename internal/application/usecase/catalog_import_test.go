package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ceramic-erp/internal/application/dto"
	"github.com/jhoicas/ceramic-erp/internal/application/usecase"
	"github.com/jhoicas/ceramic-erp/internal/domain"
	"github.com/jhoicas/ceramic-erp/internal/infrastructure/memory"
)

// ── Importación de catálogo ───────────────────────────────────────────────────

func TestCatalogImport_CreaYOmiteExistentes(t *testing.T) {
	store := memory.NewStore()
	cats, tiles := catalog(store)
	imp := usecase.NewCatalogImportUseCase(cats, tiles, store.Categories(), store.Tiles())
	ctx := context.Background()

	pre, err := cats.Create(ctx, dto.CreateCategoryRequest{Name: "Porcelanato"})
	require.NoError(t, err)

	rows := []dto.CatalogRow{
		{Line: 2, Category: "PORCELANATO", Name: "Blanco 60", Price: decimal.NewFromInt(20), StockQuantity: 30},
		{Line: 3, Category: "Azulejos", Name: "Azul  mate", Price: decimal.NewFromInt(8), StockQuantity: 4, LowStockThreshold: intPtr(2)},
		{Line: 4, Category: "azulejos", Name: "azul mate", Price: decimal.NewFromInt(9), StockQuantity: 1},
	}
	res, err := imp.Import(ctx, rows)
	require.NoError(t, err)
	assert.Equal(t, dto.CatalogImportResult{CategoriesCreated: 1, TilesCreated: 2, TilesSkipped: 1}, *res)

	list, err := tiles.List(ctx)
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	for _, it := range list.Items {
		if it.Name == "Blanco 60" {
			assert.Equal(t, pre.ID, it.CategoryID, "se reutiliza la categoría existente sin distinguir mayúsculas")
		}
	}

	again, err := imp.Import(ctx, rows)
	require.NoError(t, err)
	assert.Equal(t, dto.CatalogImportResult{TilesSkipped: 3}, *again, "reimportar no duplica")
}

func TestCatalogImport_SeDetieneEnFilaInvalida(t *testing.T) {
	store := memory.NewStore()
	cats, tiles := catalog(store)
	imp := usecase.NewCatalogImportUseCase(cats, tiles, store.Categories(), store.Tiles())

	res, err := imp.Import(context.Background(), []dto.CatalogRow{
		{Line: 2, Category: "Gres", Name: "Gres 45", Price: decimal.NewFromInt(5), StockQuantity: 1},
		{Line: 3, Category: "Gres", Name: "Gres caro", Price: decimal.NewFromInt(-5)},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "línea 3")
	var verr *domain.ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.Equal(t, 1, res.TilesCreated, "lo creado antes de la fila inválida se conserva")
}

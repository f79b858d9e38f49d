// Package analytics contiene los casos de uso de lectura: el panel principal y los
// reportes por categoría y por baldosa.
package analytics

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/ceramic-erp/internal/application/dto"
	"github.com/jhoicas/ceramic-erp/internal/application/ports"
	"github.com/jhoicas/ceramic-erp/internal/domain/entity"
	"github.com/jhoicas/ceramic-erp/internal/domain/inventory"
	"github.com/jhoicas/ceramic-erp/internal/domain/ledger"
	"github.com/jhoicas/ceramic-erp/internal/domain/repository"
)

// DashboardUseCase genera el resumen del panel principal.
//
// Fuente de datos: repositorios de catálogo, libro mayor y caja (solo lectura).
// El resultado completo se guarda en la caché de reportes; las cifras financieras
// se recortan después según el permiso del usuario.
type DashboardUseCase struct {
	categoryRepo repository.CategoryRepository
	tileRepo     repository.TileRepository
	ledgerRepo   repository.LedgerRepository
	cashRepo     repository.CashAccountRepository
	cache        ports.ReportCache
}

// NewDashboardUseCase construye el caso de uso. cache puede ser nil.
func NewDashboardUseCase(
	categoryRepo repository.CategoryRepository,
	tileRepo repository.TileRepository,
	ledgerRepo repository.LedgerRepository,
	cashRepo repository.CashAccountRepository,
	cache ports.ReportCache,
) *DashboardUseCase {
	return &DashboardUseCase{
		categoryRepo: categoryRepo,
		tileRepo:     tileRepo,
		ledgerRepo:   ledgerRepo,
		cashRepo:     cashRepo,
		cache:        cache,
	}
}

// Get devuelve el panel. includeFinancial corresponde al permiso view_dashboard_financial.
func (uc *DashboardUseCase) Get(ctx context.Context, includeFinancial bool) (*dto.DashboardResponse, error) {
	var out dto.DashboardResponse
	if uc.cache == nil {
		full, err := uc.compute(ctx)
		if err != nil {
			return nil, err
		}
		out = *full
	} else {
		key, err := uc.cache.Key(ctx, "dashboard")
		if err != nil {
			return nil, fmt.Errorf("dashboard: clave de caché: %w", err)
		}
		loader := func(ctx context.Context) (any, error) { return uc.compute(ctx) }
		if err := uc.cache.FetchJSON(ctx, key, &out, loader); err != nil {
			return nil, err
		}
	}
	if !includeFinancial {
		out.Financial = nil
	}
	return &out, nil
}

// compute cuatro lecturas en paralelo:
//  1. categorías      → TotalCategories
//  2. baldosas activas → stock, stock bajo, valor de inventario
//  3. totales globales de ventas y compras
//  4. saldo de caja
func (uc *DashboardUseCase) compute(ctx context.Context) (*dto.DashboardResponse, error) {
	var (
		categories []*entity.Category
		tiles      []*entity.Tile
		totals     *ledger.Totals
		cash       *entity.CashAccount
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		categories, err = uc.categoryRepo.List(gctx)
		if err != nil {
			return fmt.Errorf("dashboard: categorías: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		tiles, err = uc.tileRepo.ListActive(gctx)
		if err != nil {
			return fmt.Errorf("dashboard: baldosas: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		totals, err = uc.ledgerRepo.Totals(gctx)
		if err != nil {
			return fmt.Errorf("dashboard: totales: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		cash, err = uc.cashRepo.Get(gctx)
		if err != nil {
			return fmt.Errorf("dashboard: caja: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stock := inventory.Summarize(tiles)
	balance := decimal.Zero
	if cash != nil {
		balance = cash.Balance
	}
	return &dto.DashboardResponse{
		TotalCategories: len(categories),
		TotalTiles:      stock.TileCount,
		TotalStock:      stock.TotalStock,
		LowStockTiles:   stock.LowStockTiles,
		Financial: &dto.DashboardFinancial{
			TotalRevenue:        totals.SalesTotal,
			TotalPurchaseCost:   totals.PurchaseTotal,
			Profit:              totals.SalesTotal.Sub(totals.PurchaseTotal),
			CashBalance:         balance,
			Receivable:          totals.SalesDue,
			Payable:             totals.PurchaseDue,
			BusinessPosition:    balance.Add(totals.SalesDue).Sub(totals.PurchaseDue),
			TotalInventoryValue: stock.InventoryValue,
		},
	}, nil
}

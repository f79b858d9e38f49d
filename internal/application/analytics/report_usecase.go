package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/ceramic-erp/internal/application/dto"
	"github.com/jhoicas/ceramic-erp/internal/application/ports"
	"github.com/jhoicas/ceramic-erp/internal/application/usecase"
	"github.com/jhoicas/ceramic-erp/internal/application/validation"
	"github.com/jhoicas/ceramic-erp/internal/domain"
	"github.com/jhoicas/ceramic-erp/internal/domain/entity"
	"github.com/jhoicas/ceramic-erp/internal/domain/inventory"
	"github.com/jhoicas/ceramic-erp/internal/domain/ledger"
	"github.com/jhoicas/ceramic-erp/internal/domain/repository"
)

// ReportUseCase índice de categorías y detalle de categoría o baldosa con sus movimientos.
type ReportUseCase struct {
	categoryRepo repository.CategoryRepository
	tileRepo     repository.TileRepository
	ledgerRepo   repository.LedgerRepository
	cache        ports.ReportCache
}

// NewReportUseCase construye el caso de uso. cache puede ser nil.
func NewReportUseCase(categoryRepo repository.CategoryRepository, tileRepo repository.TileRepository, ledgerRepo repository.LedgerRepository, cache ports.ReportCache) *ReportUseCase {
	return &ReportUseCase{categoryRepo: categoryRepo, tileRepo: tileRepo, ledgerRepo: ledgerRepo, cache: cache}
}

// CategoryIndex resumen de inventario por categoría, ordenado por nombre.
func (uc *ReportUseCase) CategoryIndex(ctx context.Context) ([]dto.CategorySummaryResponse, error) {
	if uc.cache == nil {
		return uc.categoryIndex(ctx)
	}
	key, err := uc.cache.Key(ctx, "categories", "index")
	if err != nil {
		return nil, err
	}
	var out []dto.CategorySummaryResponse
	loader := func(ctx context.Context) (any, error) { return uc.categoryIndex(ctx) }
	if err := uc.cache.FetchJSON(ctx, key, &out, loader); err != nil {
		return nil, err
	}
	return out, nil
}

func (uc *ReportUseCase) categoryIndex(ctx context.Context) ([]dto.CategorySummaryResponse, error) {
	categories, err := uc.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	tiles, err := uc.tileRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tiles: %w", err)
	}
	byCategory := make(map[string][]*entity.Tile, len(categories))
	for _, t := range tiles {
		byCategory[t.CategoryID] = append(byCategory[t.CategoryID], t)
	}
	out := make([]dto.CategorySummaryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, toCategorySummary(c, inventory.Summarize(byCategory[c.ID])))
	}
	return out, nil
}

// CategoryDetails baldosas activas de la categoría y sus ventas/compras dentro de [from, to].
func (uc *ReportUseCase) CategoryDetails(ctx context.Context, id, from, to string) (*dto.CategoryDetailsResponse, error) {
	if !validation.ID(id) {
		return nil, domain.ErrNotFound
	}
	rng, err := ledger.ParseDateRange(from, to)
	if err != nil {
		return nil, err
	}
	c, err := uc.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	tiles, err := uc.tileRepo.ListActiveByCategory(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list category tiles: %w", err)
	}
	records, err := uc.ledgerRepo.ListLines(ctx, ledger.LineFilter{CategoryID: id, Range: rng})
	if err != nil {
		return nil, fmt.Errorf("list category lines: %w", err)
	}
	entries := ledger.BuildLineEntries(records)

	items := make([]dto.TileResponse, 0, len(tiles))
	for _, t := range tiles {
		items = append(items, *usecase.ToTileResponse(t))
	}
	fromStr, toStr := RangeStrings(rng)
	return &dto.CategoryDetailsResponse{
		Category:     toCategorySummary(c, inventory.Summarize(tiles)),
		FromDate:     fromStr,
		ToDate:       toStr,
		Totals:       toLineTotals(ledger.SummarizeLines(entries)),
		Tiles:        items,
		Transactions: toLineEntries(entries),
	}, nil
}

// TileDetails baldosa y sus ventas/compras dentro de [from, to].
func (uc *ReportUseCase) TileDetails(ctx context.Context, id, from, to string) (*dto.TileDetailsResponse, error) {
	if !validation.ID(id) {
		return nil, domain.ErrNotFound
	}
	rng, err := ledger.ParseDateRange(from, to)
	if err != nil {
		return nil, err
	}
	tile, err := uc.tileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tile == nil || tile.IsDeleted {
		return nil, domain.ErrNotFound
	}
	records, err := uc.ledgerRepo.ListLines(ctx, ledger.LineFilter{TileID: id, Range: rng})
	if err != nil {
		return nil, fmt.Errorf("list tile lines: %w", err)
	}
	entries := ledger.BuildLineEntries(records)
	fromStr, toStr := RangeStrings(rng)
	return &dto.TileDetailsResponse{
		Tile:         *usecase.ToTileResponse(tile),
		FromDate:     fromStr,
		ToDate:       toStr,
		Totals:       toLineTotals(ledger.SummarizeLines(entries)),
		Transactions: toLineEntries(entries),
	}, nil
}

// RangeStrings extremos del rango en formato YYYY-MM-DD; nil si faltan.
func RangeStrings(rng ledger.DateRange) (from, to *string) {
	if rng.From != nil {
		s := rng.From.Format(ledger.DateLayout)
		from = &s
	}
	if rng.To != nil {
		s := rng.To.Format(ledger.DateLayout)
		to = &s
	}
	return from, to
}

func toCategorySummary(c *entity.Category, s inventory.StockSummary) dto.CategorySummaryResponse {
	return dto.CategorySummaryResponse{
		ID:             c.ID,
		Name:           c.Name,
		TileCount:      s.TileCount,
		TotalStock:     s.TotalStock,
		LowStockTiles:  s.LowStockTiles,
		AveragePrice:   s.AveragePrice,
		InventoryValue: s.InventoryValue,
	}
}

func toLineTotals(t ledger.LineTotals) dto.LineTotalsResponse {
	return dto.LineTotalsResponse{
		SoldQuantity:      t.SoldQuantity,
		PurchasedQuantity: t.PurchasedQuantity,
		SalesValue:        t.SalesValue,
		PurchaseValue:     t.PurchaseValue,
		SalesReceived:     t.SalesReceived,
		SalesPending:      t.SalesPending,
		PurchasePaid:      t.PurchasePaid,
		PurchasePending:   t.PurchasePending,
	}
}

func toLineEntries(entries []ledger.LineEntry) []dto.LineEntryResponse {
	out := make([]dto.LineEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.LineEntryResponse{
			Type:          string(e.Kind),
			TransactionID: e.TransactionID,
			Date:          e.Date,
			Counterparty:  e.Counterparty,
			PaymentType:   string(e.PaymentType),
			TileID:        e.TileID,
			TileName:      e.TileName,
			Quantity:      e.Quantity,
			UnitPrice:     e.UnitPrice,
			LineAmount:    e.LineAmount,
			Settled:       e.Settled,
			Pending:       e.Pending,
		})
	}
	return out
}

package billing_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ceramic-erp/internal/application/billing"
	"github.com/jhoicas/ceramic-erp/internal/application/dto"
	"github.com/jhoicas/ceramic-erp/internal/application/purchasing"
	"github.com/jhoicas/ceramic-erp/internal/application/validation"
	"github.com/jhoicas/ceramic-erp/internal/domain"
	"github.com/jhoicas/ceramic-erp/internal/domain/entity"
	"github.com/jhoicas/ceramic-erp/internal/domain/ledger"
	"github.com/jhoicas/ceramic-erp/internal/infrastructure/memory"
)

// ── Helpers ───────────────────────────────────────────────────────────────────

func seedTile(t *testing.T, store *memory.Store, stock int, price string) *entity.Tile {
	t.Helper()
	ctx := context.Background()
	cat := &entity.Category{ID: uuid.New().String(), Name: "Porcelanato", CreatedAt: time.Now()}
	require.NoError(t, store.Categories().Create(ctx, cat))
	tile := &entity.Tile{
		ID:                uuid.New().String(),
		Name:              "Mármol Carrara 60x60",
		CategoryID:        cat.ID,
		Size:              "60x60",
		Price:             decimal.RequireFromString(price),
		StockQuantity:     stock,
		LowStockThreshold: entity.DefaultLowStockThreshold,
		CreatedAt:         time.Now(),
	}
	require.NoError(t, store.Tiles().Create(ctx, tile))
	return tile
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func stockOf(t *testing.T, store *memory.Store, id string) int {
	t.Helper()
	tile, err := store.Tiles().GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, tile)
	return tile.StockQuantity
}

func newSaleUC(store *memory.Store) *billing.RecordSaleUseCase {
	return billing.NewRecordSaleUseCase(store, validation.New(), nil, nil)
}

// ── Escenario completo ────────────────────────────────────────────────────────

func TestCompraYVentaParcial_StockPendienteYCaja(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	tile := seedTile(t, store, 0, "15")

	purchaseUC := purchasing.NewRecordPurchaseUseCase(store, validation.New(), nil, nil)
	p, err := purchaseUC.Execute(ctx, "u-1", dto.CreatePurchaseRequest{
		SupplierName: "Cerámicas del Valle",
		TileID:       tile.ID,
		Quantity:     50,
		UnitPrice:    dec("10"),
		PaymentType:  "Cash",
	})
	require.NoError(t, err)
	assert.True(t, p.TotalAmount.Equal(dec("500")))
	assert.Equal(t, 50, stockOf(t, store, tile.ID))

	cash, err := store.Cash().Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, cash, "las compras no tocan la caja")

	s, err := newSaleUC(store).Execute(ctx, "u-1", dto.CreateSaleRequest{
		CustomerName: "Acme Co",
		TileID:       tile.ID,
		Quantity:     20,
		UnitPrice:    dec("15"),
		PaymentType:  "Partial",
		PaidAmount:   decPtr("200"),
	})
	require.NoError(t, err)
	assert.True(t, s.TotalAmount.Equal(dec("300")))
	assert.True(t, s.PaidAmount.Equal(dec("200")))
	assert.True(t, s.DueAmount.Equal(dec("100")))
	assert.True(t, s.PaidAmount.Add(s.DueAmount).Equal(s.TotalAmount), "pagado + pendiente == total")
	require.NotNil(t, s.StockAfter)
	assert.Equal(t, 30, *s.StockAfter)
	assert.Equal(t, 30, stockOf(t, store, tile.ID))

	cash, err = store.Cash().Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, cash)
	assert.True(t, cash.Balance.Equal(dec("200")), "caja = %s", cash.Balance)
}

// ── Políticas de pago ─────────────────────────────────────────────────────────

func TestRecordSale_ContadoYCredito(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	tile := seedTile(t, store, 10, "20")
	uc := newSaleUC(store)

	cashSale, err := uc.Execute(ctx, "u-1", dto.CreateSaleRequest{
		CustomerName: "Acme", TileID: tile.ID, Quantity: 2, UnitPrice: dec("20"), PaymentType: "cash",
	})
	require.NoError(t, err)
	assert.Equal(t, "Cash", cashSale.PaymentType, "el tipo se guarda en forma canónica")
	assert.True(t, cashSale.DueAmount.IsZero())

	creditSale, err := uc.Execute(ctx, "u-1", dto.CreateSaleRequest{
		CustomerName: "Acme", TileID: tile.ID, Quantity: 3, UnitPrice: dec("20"), PaymentType: "Credit",
	})
	require.NoError(t, err)
	assert.True(t, creditSale.PaidAmount.IsZero())
	assert.True(t, creditSale.DueAmount.Equal(dec("60")))

	cash, err := store.Cash().Get(ctx)
	require.NoError(t, err)
	assert.True(t, cash.Balance.Equal(dec("40")), "solo lo cobrado entra en caja")
	assert.Equal(t, 5, stockOf(t, store, tile.ID))
}

func TestRecordSale_PrecioCeroNoUsaPrecioDeLista(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	tile := seedTile(t, store, 10, "15")

	s, err := newSaleUC(store).Execute(ctx, "u-1", dto.CreateSaleRequest{
		CustomerName: "Acme", TileID: tile.ID, Quantity: 2, UnitPrice: dec("0"), PaymentType: "Cash",
	})
	require.NoError(t, err)
	assert.True(t, s.TotalAmount.IsZero(), "total = cantidad × precio recibido, got %s", s.TotalAmount)
	assert.True(t, s.PaidAmount.IsZero())
	assert.True(t, s.Items[0].UnitPrice.IsZero())
	assert.Equal(t, 8, stockOf(t, store, tile.ID), "el stock se descuenta igual")

	cash, err := store.Cash().Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, cash)
	assert.True(t, cash.Balance.IsZero())
}

// ── Rechazos sin mutación ─────────────────────────────────────────────────────

func TestRecordSale_SinStockSuficiente(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	tile := seedTile(t, store, 5, "10")

	_, err := newSaleUC(store).Execute(ctx, "u-1", dto.CreateSaleRequest{
		CustomerName: "Acme", TileID: tile.ID, Quantity: 6, UnitPrice: dec("10"), PaymentType: "Cash",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.Equal(t, 5, stockOf(t, store, tile.ID))

	sales, err := store.Sales().List(ctx, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, sales)
	cash, err := store.Cash().Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, cash)
}

func TestRecordSale_ParcialInvalidoRevierteStock(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	tile := seedTile(t, store, 10, "10")

	_, err := newSaleUC(store).Execute(ctx, "u-1", dto.CreateSaleRequest{
		CustomerName: "Acme", TileID: tile.ID, Quantity: 2, UnitPrice: dec("10"),
		PaymentType: "Partial", PaidAmount: decPtr("25"),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ledger.ErrInvalidPartialPayment))
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Equal(t, 10, stockOf(t, store, tile.ID), "el descuento de stock se deshace")
}

func TestRecordSale_BaldosaEliminada(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	tile := seedTile(t, store, 10, "10")
	require.NoError(t, store.Tiles().SoftDelete(ctx, tile.ID))

	_, err := newSaleUC(store).Execute(ctx, "u-1", dto.CreateSaleRequest{
		CustomerName: "Acme", TileID: tile.ID, Quantity: 1, UnitPrice: dec("10"), PaymentType: "Cash",
	})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestRecordSale_ErroresDeValidacion(t *testing.T) {
	store := memory.NewStore()
	_, err := newSaleUC(store).Execute(context.Background(), "u-1", dto.CreateSaleRequest{
		CustomerName: "   ", TileID: uuid.New().String(), Quantity: 0, PaymentType: "Barter",
	})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "customer_name", "un nombre solo con espacios es vacío")
	assert.Contains(t, verr.Fields, "quantity")
	assert.Contains(t, verr.Fields, "payment_type")
}

func TestRecordSale_PrecioNegativo(t *testing.T) {
	store := memory.NewStore()
	tile := seedTile(t, store, 10, "10")
	_, err := newSaleUC(store).Execute(context.Background(), "u-1", dto.CreateSaleRequest{
		CustomerName: "Acme", TileID: tile.ID, Quantity: 1, UnitPrice: dec("-1"), PaymentType: "Cash",
	})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "unit_price")
}

// ── Concurrencia ──────────────────────────────────────────────────────────────

func TestRecordSale_VentasConcurrentes_NoSobrevenden(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	tile := seedTile(t, store, 10, "12.5")
	uc := newSaleUC(store)

	var (
		wg       sync.WaitGroup
		ok       atomic.Int32
		rejected atomic.Int32
		otros    atomic.Int32
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Execute(ctx, "u-1", dto.CreateSaleRequest{
				CustomerName: "Acme", TileID: tile.ID, Quantity: 1, UnitPrice: dec("12.5"), PaymentType: "Cash",
			})
			switch {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, domain.ErrInsufficientStock):
				rejected.Add(1)
			default:
				otros.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(10), ok.Load())
	assert.Equal(t, int32(10), rejected.Load())
	assert.Zero(t, otros.Load())
	assert.Equal(t, 0, stockOf(t, store, tile.ID))

	sales, err := store.Sales().List(ctx, 50, 0)
	require.NoError(t, err)
	assert.Len(t, sales, 10)

	cash, err := store.Cash().Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, cash)
	assert.True(t, cash.Balance.Equal(dec("125")), "caja = %s", cash.Balance)
}

// ── Índice ────────────────────────────────────────────────────────────────────

func TestListSales_Totales(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	tile := seedTile(t, store, 100, "10")
	uc := newSaleUC(store)

	for _, in := range []dto.CreateSaleRequest{
		{CustomerName: "Acme Co", TileID: tile.ID, Quantity: 10, UnitPrice: dec("10"), PaymentType: "Cash"},
		{CustomerName: "acme co ", TileID: tile.ID, Quantity: 5, UnitPrice: dec("10"), PaymentType: "Credit"},
		{CustomerName: "Beta", TileID: tile.ID, Quantity: 4, UnitPrice: dec("10"), PaymentType: "Partial", PaidAmount: decPtr("15")},
	} {
		_, err := uc.Execute(ctx, "u-1", in)
		require.NoError(t, err)
	}

	out, err := billing.NewListSalesUseCase(store.Sales(), store.Ledger()).List(ctx, 0, 0)
	require.NoError(t, err)
	assert.Len(t, out.Items, 3)
	assert.Equal(t, 50, out.Page.Limit)
	assert.True(t, out.Totals.TotalRevenue.Equal(dec("190")))
	assert.True(t, out.Totals.TotalReceived.Equal(dec("115")))
	assert.True(t, out.Totals.TotalPending.Equal(dec("75")))
	assert.Equal(t, 2, out.Totals.UniqueCustomers, "Acme Co y 'acme co ' son el mismo cliente")
}

package ledger_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appledger "github.com/jhoicas/ceramic-erp/internal/application/ledger"
	"github.com/jhoicas/ceramic-erp/internal/domain"
	"github.com/jhoicas/ceramic-erp/internal/domain/entity"
	"github.com/jhoicas/ceramic-erp/internal/domain/ledger"
	"github.com/jhoicas/ceramic-erp/internal/infrastructure/memory"
)

// ── Fixtures ──────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func at(s string) time.Time {
	t, err := time.Parse("2006-01-02 15:04:05", s)
	if err != nil {
		panic(err)
	}
	return t
}

// seed: Acme Co compra dos veces y nos vende una; Otra SA no debe aparecer.
func seed(t *testing.T) *memory.Store {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	cat := &entity.Category{ID: uuid.New().String(), Name: "Pisos"}
	require.NoError(t, store.Categories().Create(ctx, cat))
	tile := &entity.Tile{ID: uuid.New().String(), Name: "Gris 30", CategoryID: cat.ID, Price: dec("15"), StockQuantity: 100, LowStockThreshold: 10}
	require.NoError(t, store.Tiles().Create(ctx, tile))

	sale := func(id, customer string, date time.Time, qty int, pt entity.PaymentType, total, paid, due string) {
		require.NoError(t, store.Sales().Create(ctx, &entity.Sale{
			ID: id, CustomerName: customer, CustomerKey: ledger.NormalizeCounterparty(customer), Date: date,
			TotalAmount: dec(total), PaymentType: pt, PaidAmount: dec(paid), DueAmount: dec(due),
			Items: []entity.SaleItem{{ID: uuid.New().String(), TileID: tile.ID, Quantity: qty, UnitPrice: dec("15")}},
		}))
	}
	sale("s1", "Acme Co", at("2024-01-05 10:30:00"), 20, entity.PaymentPartial, "300", "200", "100")
	sale("s2", "ACME CO", at("2024-02-01 08:00:00"), 2, entity.PaymentCash, "30", "30", "0")
	sale("s3", "Otra SA", at("2024-01-06 09:00:00"), 1, entity.PaymentCash, "15", "15", "0")

	require.NoError(t, store.Purchases().Create(ctx, &entity.Purchase{
		ID: "p1", SupplierName: "acme co ", SupplierKey: ledger.NormalizeCounterparty("acme co "), Date: at("2024-01-01 09:00:00"),
		TotalAmount: dec("500"), PaymentType: entity.PaymentCredit, PaidAmount: dec("0"), DueAmount: dec("500"),
		Items: []entity.PurchaseItem{{ID: uuid.New().String(), TileID: tile.ID, Quantity: 50, UnitPrice: dec("10")}},
	}))
	return store
}

type fakeRenderer struct {
	got ledger.Statement
}

func (f *fakeRenderer) RenderStatement(_ context.Context, st ledger.Statement) ([]byte, error) {
	f.got = st
	return []byte("%PDF-fake"), nil
}

// ── Estado de cuenta ──────────────────────────────────────────────────────────

func TestGet_UneContraparteIgnorandoMayusculasYEspacios(t *testing.T) {
	uc := appledger.NewStatementUseCase(seed(t).Ledger(), nil, nil)

	out, err := uc.Get(context.Background(), "  acme co", "", "")
	require.NoError(t, err)
	assert.Equal(t, "acme co", out.EnterpriseName)
	assert.Nil(t, out.FromDate)
	assert.Equal(t, 2, out.SalesTransactions)
	assert.Equal(t, 1, out.PurchaseTransactions)
	assert.Equal(t, "330.00", out.TotalEarned.StringFixed(2))
	assert.Equal(t, "230.00", out.TotalReceived.StringFixed(2))
	assert.Equal(t, "100.00", out.PendingReceivable.StringFixed(2))
	assert.Equal(t, "500.00", out.TotalPurchaseCost.StringFixed(2))
	assert.True(t, out.TotalPaidOut.IsZero())
	assert.Equal(t, "500.00", out.PendingPayable.StringFixed(2))

	require.Len(t, out.Transactions, 3)
	assert.Equal(t, "s2", out.Transactions[0].ID, "más reciente primero")
	assert.Equal(t, "p1", out.Transactions[2].ID)
	assert.Equal(t, "Purchase", out.Transactions[2].Type)
	assert.Equal(t, 50, out.Transactions[2].TotalQuantity)
}

func TestGet_FiltraPorRango(t *testing.T) {
	uc := appledger.NewStatementUseCase(seed(t).Ledger(), nil, nil)

	out, err := uc.Get(context.Background(), "Acme Co", "2024-01-05", "2024-01-31")
	require.NoError(t, err)
	require.Len(t, out.Transactions, 1)
	assert.Equal(t, "s1", out.Transactions[0].ID)
	assert.Equal(t, "2024-01-05", *out.FromDate)
	assert.Equal(t, "2024-01-31", *out.ToDate)
	assert.Equal(t, 0, out.PurchaseTransactions)
}

func TestGet_ContraparteDesconocida_Vacio(t *testing.T) {
	uc := appledger.NewStatementUseCase(seed(t).Ledger(), nil, nil)

	out, err := uc.Get(context.Background(), "Nadie", "", "")
	require.NoError(t, err)
	assert.Empty(t, out.Transactions)
	assert.True(t, out.TotalEarned.IsZero())
}

func TestGet_Validacion(t *testing.T) {
	uc := appledger.NewStatementUseCase(seed(t).Ledger(), nil, nil)

	_, err := uc.Get(context.Background(), "   ", "2024-13-01", "")
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "enterpriseName")
	assert.Contains(t, verr.Fields, "fromDate")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

// ── Exportaciones ─────────────────────────────────────────────────────────────

func TestExportCSV_CronologicoConDosDecimales(t *testing.T) {
	uc := appledger.NewStatementUseCase(seed(t).Ledger(), nil, nil)

	file, err := uc.ExportCSV(context.Background(), "Acme Co", "2024-01-01", "")
	require.NoError(t, err)
	assert.Equal(t, "ledger_Acme Co_20240101_all.csv", file.Name)
	assert.Equal(t, appledger.ContentTypeCSV, file.ContentType)

	lines := strings.Split(strings.TrimRight(string(file.Content), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Date,Type,Payment Type,Total,Settled,Pending,Items,Quantity", lines[0])
	assert.Equal(t, "2024-01-01 09:00:00,Purchase,Credit,500.00,0.00,500.00,1,50", lines[1])
	assert.Equal(t, "2024-01-05 10:30:00,Sale,Partial,300.00,200.00,100.00,1,20", lines[2])
	assert.Equal(t, "2024-02-01 08:00:00,Sale,Cash,30.00,30.00,0.00,1,2", lines[3])
}

func TestExportCSV_RequiereNombre(t *testing.T) {
	uc := appledger.NewStatementUseCase(seed(t).Ledger(), nil, nil)

	_, err := uc.ExportCSV(context.Background(), "", "", "")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestExportPDF_GeneraDocumento(t *testing.T) {
	store := seed(t)
	ctx := context.Background()

	_, err := appledger.NewStatementUseCase(store.Ledger(), nil, nil).ExportPDF(ctx, "Acme Co", "", "")
	assert.ErrorIs(t, err, appledger.ErrPDFUnavailable)

	r := &fakeRenderer{}
	file, err := appledger.NewStatementUseCase(store.Ledger(), r, nil).ExportPDF(ctx, "Acme Co", "", "2024-01-31")
	require.NoError(t, err)
	assert.Equal(t, "ledger_Acme Co_all_20240131.pdf", file.Name)
	assert.Equal(t, appledger.ContentTypePDF, file.ContentType)
	assert.Equal(t, 2, len(r.got.Rows))
}

func TestFileName_NombreSeguro(t *testing.T) {
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "ledger_enterprise_all_all.csv", appledger.FileName("", ledger.DateRange{}, "csv"))
	assert.Equal(t, "ledger_A_B_20240301_20240331.csv", appledger.FileName("A/B", ledger.NewDateRange(&from, &to), "csv"))

	cases := map[string]string{
		`Acme: "Norte"`: "Acme_ _Norte",
		"a\\b|c?d*e":    "a_b_c_d_e",
		"<>:?":          "enterprise",
		"  Cerámicas ":  "Cerámicas",
		"línea\nnueva":  "línea_nueva",
	}
	for in, want := range cases {
		assert.Equal(t, want, appledger.SafeName(in), "entrada %q", in)
	}
}

package ledger_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ceramic-erp/internal/domain/entity"
	"github.com/jhoicas/ceramic-erp/internal/domain/ledger"
)

func TestNormalizeCounterparty_UneMayusculasYEspacios(t *testing.T) {
	assert.Equal(t, ledger.NormalizeCounterparty("Acme Co"), ledger.NormalizeCounterparty("acme co "))
	assert.Equal(t, ledger.NormalizeCounterparty("Acme Co"), ledger.NormalizeCounterparty("  ACME CO"))
	assert.NotEqual(t, ledger.NormalizeCounterparty("Acme Co"), ledger.NormalizeCounterparty("Acme Company"), "nombres distintos nunca se unen")
	assert.NotEqual(t, ledger.NormalizeCounterparty("Acme Co"), ledger.NormalizeCounterparty("Acme  Co"), "sin coincidencia difusa")
}

func TestBuildLineEntries_UnidasMasRecientePrimero(t *testing.T) {
	records := []ledger.LineRecord{
		{Kind: ledger.KindPurchase, ItemID: "p1", Date: day(2024, 1, 1), Quantity: 50, UnitPrice: dec("10"),
			TransactionTotal: dec("500"), TransactionPaid: dec("500"), TransactionDue: dec("0")},
		{Kind: ledger.KindSale, ItemID: "s1", Date: day(2024, 1, 5), Quantity: 20, UnitPrice: dec("15"),
			TransactionTotal: dec("300"), TransactionPaid: dec("200"), TransactionDue: dec("100")},
		{Kind: ledger.KindSale, ItemID: "s0", Date: day(2024, 1, 1), Quantity: 1, UnitPrice: dec("0"),
			TransactionTotal: dec("0"), TransactionPaid: dec("0"), TransactionDue: dec("0")},
	}

	entries := ledger.BuildLineEntries(records)
	require.Len(t, entries, 3)
	assert.Equal(t, "s1", entries[0].ItemID)
	assert.Equal(t, "s0", entries[1].ItemID, "en empate de fecha la venta va primero")
	assert.Equal(t, "p1", entries[2].ItemID)

	assert.Equal(t, "200.00", entries[0].Settled.StringFixed(2))
	assert.Equal(t, "100.00", entries[0].Pending.StringFixed(2))
	assert.True(t, entries[1].Settled.IsZero(), "total cero no divide")

	totals := ledger.SummarizeLines(entries)
	assert.Equal(t, 21, totals.SoldQuantity)
	assert.Equal(t, 50, totals.PurchasedQuantity)
	assert.Equal(t, "300.00", totals.SalesValue.StringFixed(2))
	assert.Equal(t, "500.00", totals.PurchaseValue.StringFixed(2))
	assert.Equal(t, "200.00", totals.SalesReceived.StringFixed(2))
	assert.Equal(t, "100.00", totals.SalesPending.StringFixed(2))
	assert.Equal(t, "500.00", totals.PurchasePaid.StringFixed(2))
	assert.True(t, totals.PurchasePending.IsZero())
}

func TestBuildStatement_SaldosYTotales(t *testing.T) {
	rng, err := ledger.ParseDateRange("2024-01-01", "2024-01-31")
	require.NoError(t, err)

	records := []ledger.TransactionRecord{
		{Kind: ledger.KindSale, ID: "s1", Counterparty: "Acme Co", Date: day(2024, 1, 5), PaymentType: entity.PaymentPartial,
			Total: dec("300"), Paid: dec("200"), Due: dec("100"), ItemsCount: 1, TotalQuantity: 20},
		{Kind: ledger.KindSale, ID: "s2", Counterparty: "acme co ", Date: day(2024, 1, 31).Add(10 * time.Hour), PaymentType: entity.PaymentCash,
			Total: dec("50"), Paid: dec("50"), Due: dec("0"), ItemsCount: 1, TotalQuantity: 2},
		{Kind: ledger.KindPurchase, ID: "p1", Counterparty: "ACME CO", Date: day(2024, 1, 2), PaymentType: entity.PaymentCredit,
			Total: dec("80"), Paid: dec("0"), Due: dec("80"), ItemsCount: 1, TotalQuantity: 8},
		{Kind: ledger.KindSale, ID: "s3", Counterparty: "Acme Co", Date: day(2024, 2, 1), PaymentType: entity.PaymentCash,
			Total: dec("999"), Paid: dec("999"), Due: dec("0"), ItemsCount: 1, TotalQuantity: 1},
	}

	st := ledger.BuildStatement("  Acme Co ", rng, records)

	assert.Equal(t, "Acme Co", st.EnterpriseName)
	assert.Equal(t, 2, st.SalesTransactions)
	assert.Equal(t, 1, st.PurchaseTransactions)
	assert.Equal(t, "350.00", st.TotalEarned.StringFixed(2))
	assert.Equal(t, "250.00", st.TotalReceived.StringFixed(2))
	assert.Equal(t, "100.00", st.PendingReceivable.StringFixed(2))
	assert.Equal(t, "80.00", st.TotalPurchaseCost.StringFixed(2))
	assert.True(t, st.TotalPaidOut.IsZero())
	assert.Equal(t, "80.00", st.PendingPayable.StringFixed(2))

	require.Len(t, st.Rows, 3, "la venta del 1 de febrero queda fuera del rango")
	assert.Equal(t, "s2", st.Rows[0].ID)
	assert.Equal(t, "s1", st.Rows[1].ID)
	assert.Equal(t, "p1", st.Rows[2].ID)

	chrono := st.Chronological()
	assert.Equal(t, "p1", chrono[0].ID)
	assert.Equal(t, "s2", chrono[2].ID)
	assert.Equal(t, "s2", st.Rows[0].ID, "Chronological no altera el orden original")
}

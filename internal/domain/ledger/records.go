package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ceramic-erp/internal/domain/entity"
)

// Kind tipo de transacción.
type Kind string

const (
	KindSale     Kind = "Sale"
	KindPurchase Kind = "Purchase"
)

// LineFilter alcance de lectura de líneas: una baldosa, una categoría o todo.
type LineFilter struct {
	TileID     string
	CategoryID string
	Range      DateRange
}

// TransactionFilter alcance de lectura de transacciones de una contraparte.
type TransactionFilter struct {
	CounterpartyKey string
	Range           DateRange
}

// LineRecord línea de venta o compra junto con los importes de su cabecera.
type LineRecord struct {
	Kind             Kind
	TransactionID    string
	ItemID           string
	Date             time.Time
	Counterparty     string
	PaymentType      entity.PaymentType
	TileID           string
	TileName         string
	Quantity         int
	UnitPrice        decimal.Decimal
	TransactionTotal decimal.Decimal
	TransactionPaid  decimal.Decimal
	TransactionDue   decimal.Decimal
}

// LineEntry línea con su parte prorrateada de lo pagado y lo pendiente.
type LineEntry struct {
	LineRecord
	LineAmount decimal.Decimal
	Settled    decimal.Decimal
	Pending    decimal.Decimal
}

// LineTotals totales de líneas dentro de un rango.
type LineTotals struct {
	SoldQuantity      int
	PurchasedQuantity int
	SalesValue        decimal.Decimal
	PurchaseValue     decimal.Decimal
	SalesReceived     decimal.Decimal
	SalesPending      decimal.Decimal
	PurchasePaid      decimal.Decimal
	PurchasePending   decimal.Decimal
}

// TransactionRecord cabecera de venta o compra con conteo de líneas.
type TransactionRecord struct {
	Kind          Kind
	ID            string
	Counterparty  string
	Date          time.Time
	PaymentType   entity.PaymentType
	Total         decimal.Decimal
	Paid          decimal.Decimal
	Due           decimal.Decimal
	ItemsCount    int
	TotalQuantity int
}

// Totals agregados globales de ventas y compras.
type Totals struct {
	SalesCount      int
	SalesTotal      decimal.Decimal
	SalesPaid       decimal.Decimal
	SalesDue        decimal.Decimal
	UniqueCustomers int
	PurchaseCount   int
	PurchaseTotal   decimal.Decimal
	PurchasePaid    decimal.Decimal
	PurchaseDue     decimal.Decimal
	UniqueSuppliers int
}

// BuildLineEntries prorratea cada línea y las ordena de la más reciente a la más antigua.
// En empate de fecha las ventas van primero y luego por id de línea.
func BuildLineEntries(records []LineRecord) []LineEntry {
	out := make([]LineEntry, 0, len(records))
	for _, r := range records {
		amount := LineTotal(r.Quantity, r.UnitPrice)
		settled, pending := ProRate(r.TransactionPaid, r.TransactionDue, amount, r.TransactionTotal)
		out = append(out, LineEntry{LineRecord: r, LineAmount: amount, Settled: settled, Pending: pending})
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		if a.Kind != b.Kind {
			return a.Kind == KindSale
		}
		return a.ItemID < b.ItemID
	})
	return out
}

// SummarizeLines suma cantidades e importes por tipo.
func SummarizeLines(entries []LineEntry) LineTotals {
	t := LineTotals{
		SalesValue:      decimal.Zero,
		PurchaseValue:   decimal.Zero,
		SalesReceived:   decimal.Zero,
		SalesPending:    decimal.Zero,
		PurchasePaid:    decimal.Zero,
		PurchasePending: decimal.Zero,
	}
	for _, e := range entries {
		switch e.Kind {
		case KindSale:
			t.SoldQuantity += e.Quantity
			t.SalesValue = t.SalesValue.Add(e.LineAmount)
			t.SalesReceived = t.SalesReceived.Add(e.Settled)
			t.SalesPending = t.SalesPending.Add(e.Pending)
		case KindPurchase:
			t.PurchasedQuantity += e.Quantity
			t.PurchaseValue = t.PurchaseValue.Add(e.LineAmount)
			t.PurchasePaid = t.PurchasePaid.Add(e.Settled)
			t.PurchasePending = t.PurchasePending.Add(e.Pending)
		}
	}
	return t
}

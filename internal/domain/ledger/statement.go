package ledger

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ceramic-erp/internal/domain/entity"
)

// StatementRow fila del estado de cuenta de una empresa.
type StatementRow struct {
	Kind          Kind
	ID            string
	Date          time.Time
	PaymentType   entity.PaymentType
	Total         decimal.Decimal
	Settled       decimal.Decimal
	Pending       decimal.Decimal
	ItemsCount    int
	TotalQuantity int
}

// Statement libro mayor de una contraparte: lo que nos compró (ventas) y lo que le compramos.
type Statement struct {
	EnterpriseName       string
	Range                DateRange
	TotalEarned          decimal.Decimal
	TotalPurchaseCost    decimal.Decimal
	TotalReceived        decimal.Decimal
	TotalPaidOut         decimal.Decimal
	PendingReceivable    decimal.Decimal
	PendingPayable       decimal.Decimal
	SalesTransactions    int
	PurchaseTransactions int
	Rows                 []StatementRow // más reciente primero
}

// BuildStatement agrega las transacciones de la contraparte. El nombre se muestra recortado.
// Las transacciones fuera del rango se descartan.
func BuildStatement(name string, rng DateRange, records []TransactionRecord) Statement {
	st := Statement{
		EnterpriseName:    strings.TrimSpace(name),
		Range:             rng,
		TotalEarned:       decimal.Zero,
		TotalPurchaseCost: decimal.Zero,
		TotalReceived:     decimal.Zero,
		TotalPaidOut:      decimal.Zero,
		PendingReceivable: decimal.Zero,
		PendingPayable:    decimal.Zero,
		Rows:              make([]StatementRow, 0, len(records)),
	}
	for _, r := range records {
		if !rng.Contains(r.Date) {
			continue
		}
		switch r.Kind {
		case KindSale:
			st.SalesTransactions++
			st.TotalEarned = st.TotalEarned.Add(r.Total)
			st.TotalReceived = st.TotalReceived.Add(r.Paid)
			st.PendingReceivable = st.PendingReceivable.Add(r.Due)
		case KindPurchase:
			st.PurchaseTransactions++
			st.TotalPurchaseCost = st.TotalPurchaseCost.Add(r.Total)
			st.TotalPaidOut = st.TotalPaidOut.Add(r.Paid)
			st.PendingPayable = st.PendingPayable.Add(r.Due)
		default:
			continue
		}
		st.Rows = append(st.Rows, StatementRow{
			Kind:          r.Kind,
			ID:            r.ID,
			Date:          r.Date,
			PaymentType:   r.PaymentType,
			Total:         r.Total,
			Settled:       r.Paid,
			Pending:       r.Due,
			ItemsCount:    r.ItemsCount,
			TotalQuantity: r.TotalQuantity,
		})
	}
	sort.SliceStable(st.Rows, func(i, j int) bool {
		a, b := st.Rows[i], st.Rows[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		return a.ID < b.ID
	})
	return st
}

// Chronological filas de la más antigua a la más reciente (exportaciones).
func (s Statement) Chronological() []StatementRow {
	rows := make([]StatementRow, len(s.Rows))
	copy(rows, s.Rows)
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		return a.ID < b.ID
	})
	return rows
}

package memory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ceramic-erp/internal/domain/ledger"
	"github.com/jhoicas/ceramic-erp/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo lecturas de reportes calculadas sobre el estado en memoria.
type LedgerRepo struct{ view }

func (r *LedgerRepo) ListLines(_ context.Context, f ledger.LineFilter) ([]ledger.LineRecord, error) {
	var out []ledger.LineRecord
	err := r.read(func(st *state) error {
		inScope := func(tileID string) (string, bool) {
			t, ok := st.tiles[tileID]
			if !ok {
				return "", false
			}
			if f.TileID != "" && tileID != f.TileID {
				return "", false
			}
			if f.CategoryID != "" && t.CategoryID != f.CategoryID {
				return "", false
			}
			return t.Name, true
		}
		for _, s := range st.sales {
			if !f.Range.Contains(s.Date) {
				continue
			}
			for _, it := range s.Items {
				name, ok := inScope(it.TileID)
				if !ok {
					continue
				}
				out = append(out, ledger.LineRecord{
					Kind: ledger.KindSale, TransactionID: s.ID, ItemID: it.ID, Date: s.Date,
					Counterparty: s.CustomerName, PaymentType: s.PaymentType,
					TileID: it.TileID, TileName: name, Quantity: it.Quantity, UnitPrice: it.UnitPrice,
					TransactionTotal: s.TotalAmount, TransactionPaid: s.PaidAmount, TransactionDue: s.DueAmount,
				})
			}
		}
		for _, p := range st.purchases {
			if !f.Range.Contains(p.Date) {
				continue
			}
			for _, it := range p.Items {
				name, ok := inScope(it.TileID)
				if !ok {
					continue
				}
				out = append(out, ledger.LineRecord{
					Kind: ledger.KindPurchase, TransactionID: p.ID, ItemID: it.ID, Date: p.Date,
					Counterparty: p.SupplierName, PaymentType: p.PaymentType,
					TileID: it.TileID, TileName: name, Quantity: it.Quantity, UnitPrice: it.UnitPrice,
					TransactionTotal: p.TotalAmount, TransactionPaid: p.PaidAmount, TransactionDue: p.DueAmount,
				})
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, err
}

func (r *LedgerRepo) ListTransactions(_ context.Context, f ledger.TransactionFilter) ([]ledger.TransactionRecord, error) {
	var out []ledger.TransactionRecord
	err := r.read(func(st *state) error {
		for _, s := range st.sales {
			if s.CustomerKey != f.CounterpartyKey || !f.Range.Contains(s.Date) {
				continue
			}
			qty := 0
			for _, it := range s.Items {
				qty += it.Quantity
			}
			out = append(out, ledger.TransactionRecord{
				Kind: ledger.KindSale, ID: s.ID, Counterparty: s.CustomerName, Date: s.Date, PaymentType: s.PaymentType,
				Total: s.TotalAmount, Paid: s.PaidAmount, Due: s.DueAmount, ItemsCount: len(s.Items), TotalQuantity: qty,
			})
		}
		for _, p := range st.purchases {
			if p.SupplierKey != f.CounterpartyKey || !f.Range.Contains(p.Date) {
				continue
			}
			qty := 0
			for _, it := range p.Items {
				qty += it.Quantity
			}
			out = append(out, ledger.TransactionRecord{
				Kind: ledger.KindPurchase, ID: p.ID, Counterparty: p.SupplierName, Date: p.Date, PaymentType: p.PaymentType,
				Total: p.TotalAmount, Paid: p.PaidAmount, Due: p.DueAmount, ItemsCount: len(p.Items), TotalQuantity: qty,
			})
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, err
}

func (r *LedgerRepo) Totals(_ context.Context) (*ledger.Totals, error) {
	t := &ledger.Totals{
		SalesTotal: decimal.Zero, SalesPaid: decimal.Zero, SalesDue: decimal.Zero,
		PurchaseTotal: decimal.Zero, PurchasePaid: decimal.Zero, PurchaseDue: decimal.Zero,
	}
	err := r.read(func(st *state) error {
		customers := map[string]struct{}{}
		for _, s := range st.sales {
			t.SalesCount++
			t.SalesTotal = t.SalesTotal.Add(s.TotalAmount)
			t.SalesPaid = t.SalesPaid.Add(s.PaidAmount)
			t.SalesDue = t.SalesDue.Add(s.DueAmount)
			customers[s.CustomerKey] = struct{}{}
		}
		suppliers := map[string]struct{}{}
		for _, p := range st.purchases {
			t.PurchaseCount++
			t.PurchaseTotal = t.PurchaseTotal.Add(p.TotalAmount)
			t.PurchasePaid = t.PurchasePaid.Add(p.PaidAmount)
			t.PurchaseDue = t.PurchaseDue.Add(p.DueAmount)
			suppliers[p.SupplierKey] = struct{}{}
		}
		t.UniqueCustomers = len(customers)
		t.UniqueSuppliers = len(suppliers)
		return nil
	})
	return t, err
}

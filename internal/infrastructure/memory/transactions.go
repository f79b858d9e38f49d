package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ceramic-erp/internal/domain"
	"github.com/jhoicas/ceramic-erp/internal/domain/entity"
	"github.com/jhoicas/ceramic-erp/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)
var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)
var _ repository.CashAccountRepository = (*CashAccountRepo)(nil)

// SaleRepo ventas en memoria.
type SaleRepo struct{ view }

func (r *SaleRepo) Create(_ context.Context, s *entity.Sale) error {
	return r.write(func(st *state) error {
		if _, ok := st.sales[s.ID]; ok {
			return domain.ErrDuplicate
		}
		items := make([]entity.SaleItem, len(s.Items))
		for i, it := range s.Items {
			if _, ok := st.tiles[it.TileID]; !ok {
				return domain.ErrNotFound
			}
			it.SaleID = s.ID
			items[i] = it
			s.Items[i].SaleID = s.ID
		}
		cp := *s
		cp.Items = items
		st.sales[s.ID] = cp
		return nil
	})
}

func (r *SaleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	var out *entity.Sale
	err := r.read(func(st *state) error {
		if s, ok := st.sales[id]; ok {
			out = st.saleCopy(s)
		}
		return nil
	})
	return out, err
}

func (r *SaleRepo) List(_ context.Context, limit, offset int) ([]*entity.Sale, error) {
	var all []*entity.Sale
	err := r.read(func(st *state) error {
		for _, s := range st.sales {
			all = append(all, st.saleCopy(s))
		}
		return nil
	})
	sort.Slice(all, func(i, j int) bool { return newerFirst(all[i].Date, all[j].Date, all[i].ID, all[j].ID) })
	return page(all, limit, offset), err
}

func (st *state) saleCopy(s entity.Sale) *entity.Sale {
	items := make([]entity.SaleItem, len(s.Items))
	for i, it := range s.Items {
		if t, ok := st.tiles[it.TileID]; ok {
			it.TileName = t.Name
		}
		items[i] = it
	}
	s.Items = items
	return &s
}

// PurchaseRepo compras en memoria.
type PurchaseRepo struct{ view }

func (r *PurchaseRepo) Create(_ context.Context, p *entity.Purchase) error {
	return r.write(func(st *state) error {
		if _, ok := st.purchases[p.ID]; ok {
			return domain.ErrDuplicate
		}
		items := make([]entity.PurchaseItem, len(p.Items))
		for i, it := range p.Items {
			if _, ok := st.tiles[it.TileID]; !ok {
				return domain.ErrNotFound
			}
			it.PurchaseID = p.ID
			items[i] = it
			p.Items[i].PurchaseID = p.ID
		}
		cp := *p
		cp.Items = items
		st.purchases[p.ID] = cp
		return nil
	})
}

func (r *PurchaseRepo) GetByID(_ context.Context, id string) (*entity.Purchase, error) {
	var out *entity.Purchase
	err := r.read(func(st *state) error {
		if p, ok := st.purchases[id]; ok {
			out = st.purchaseCopy(p)
		}
		return nil
	})
	return out, err
}

func (r *PurchaseRepo) List(_ context.Context, limit, offset int) ([]*entity.Purchase, error) {
	var all []*entity.Purchase
	err := r.read(func(st *state) error {
		for _, p := range st.purchases {
			all = append(all, st.purchaseCopy(p))
		}
		return nil
	})
	sort.Slice(all, func(i, j int) bool { return newerFirst(all[i].Date, all[j].Date, all[i].ID, all[j].ID) })
	return page(all, limit, offset), err
}

func (st *state) purchaseCopy(p entity.Purchase) *entity.Purchase {
	items := make([]entity.PurchaseItem, len(p.Items))
	for i, it := range p.Items {
		if t, ok := st.tiles[it.TileID]; ok {
			it.TileName = t.Name
		}
		items[i] = it
	}
	p.Items = items
	return &p
}

// CashAccountRepo caja en memoria.
type CashAccountRepo struct{ view }

func (r *CashAccountRepo) Get(_ context.Context) (*entity.CashAccount, error) {
	var out *entity.CashAccount
	err := r.read(func(st *state) error {
		if st.cash != nil {
			c := *st.cash
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *CashAccountRepo) Credit(_ context.Context, amount decimal.Decimal) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := r.write(func(st *state) error {
		if st.cash == nil {
			st.cash = &entity.CashAccount{ID: entity.CashAccountID, Balance: decimal.Zero}
		}
		st.cash.Balance = st.cash.Balance.Add(amount)
		st.cash.UpdatedAt = time.Now().UTC()
		balance = st.cash.Balance
		return nil
	})
	return balance, err
}

func newerFirst(a, b time.Time, idA, idB string) bool {
	if !a.Equal(b) {
		return a.After(b)
	}
	return idA < idB
}

func page[T any](all []T, limit, offset int) []T {
	if offset >= len(all) {
		return nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all
}

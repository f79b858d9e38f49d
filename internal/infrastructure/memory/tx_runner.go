package memory

import (
	"context"

	"github.com/jhoicas/ceramic-erp/internal/application/inventory"
	"github.com/jhoicas/ceramic-erp/internal/application/rbac"
	"github.com/jhoicas/ceramic-erp/internal/domain/repository"
)

var _ inventory.TxRunner = (*Store)(nil)
var _ rbac.TxRunner = (*Store)(nil)

// Run ejecuta fn de forma exclusiva; si fn falla el estado vuelve a la copia previa.
// Dentro de fn solo deben usarse los repositorios recibidos.
func (s *Store) Run(ctx context.Context, fn func(
	tiles repository.TileRepository,
	sales repository.SaleRepository,
	purchases repository.PurchaseRepository,
	cash repository.CashAccountRepository,
) error) error {
	return s.within(ctx, func(v view) error {
		return fn(&TileRepo{v}, &SaleRepo{v}, &PurchaseRepo{v}, &CashAccountRepo{v})
	})
}

// RunRBAC igual que Run para roles y usuarios.
func (s *Store) RunRBAC(ctx context.Context, fn func(
	roles repository.RoleRepository,
	users repository.UserRepository,
) error) error {
	return s.within(ctx, func(v view) error {
		return fn(&RoleRepo{v}, &UserRepo{v})
	})
}

func (s *Store) within(ctx context.Context, fn func(v view) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	if err := fn(view{s: s, inTx: true}); err != nil {
		s.data = snapshot
		return err
	}
	return nil
}

// Repositorios fuera de transacción.

func (s *Store) Categories() *CategoryRepo { return &CategoryRepo{view{s: s}} }
func (s *Store) Tiles() *TileRepo           { return &TileRepo{view{s: s}} }
func (s *Store) Sales() *SaleRepo           { return &SaleRepo{view{s: s}} }
func (s *Store) Purchases() *PurchaseRepo   { return &PurchaseRepo{view{s: s}} }
func (s *Store) Cash() *CashAccountRepo     { return &CashAccountRepo{view{s: s}} }
func (s *Store) Users() *UserRepo           { return &UserRepo{view{s: s}} }
func (s *Store) Roles() *RoleRepo           { return &RoleRepo{view{s: s}} }
func (s *Store) Ledger() *LedgerRepo        { return &LedgerRepo{view{s: s}} }

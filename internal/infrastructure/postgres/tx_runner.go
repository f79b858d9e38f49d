package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/ceramic-erp/internal/application/inventory"
	"github.com/jhoicas/ceramic-erp/internal/application/rbac"
	"github.com/jhoicas/ceramic-erp/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)
var _ rbac.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run ejecuta fn con los repositorios de stock, ventas, compras y caja atados a una única tx.
// Cualquier error de fn deshace cabecera, líneas, stock y caja.
func (r *TxRunner) Run(ctx context.Context, fn func(
	tiles repository.TileRepository,
	sales repository.SaleRepository,
	purchases repository.PurchaseRepository,
	cash repository.CashAccountRepository,
) error) error {
	return r.within(ctx, func(tx pgx.Tx) error {
		return fn(NewTileRepository(tx), NewSaleRepository(tx), NewPurchaseRepository(tx), NewCashAccountRepository(tx))
	})
}

// RunRBAC ejecuta la siembra de roles, permisos y usuarios en una única tx.
func (r *TxRunner) RunRBAC(ctx context.Context, fn func(
	roles repository.RoleRepository,
	users repository.UserRepository,
) error) error {
	return r.within(ctx, func(tx pgx.Tx) error {
		return fn(NewRoleRepository(tx), NewUserRepository(tx))
	})
}

func (r *TxRunner) within(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

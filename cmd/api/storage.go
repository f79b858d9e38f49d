package main

import (
	"context"
	"fmt"

	"github.com/jhoicas/ceramic-erp/internal/application/inventory"
	"github.com/jhoicas/ceramic-erp/internal/application/rbac"
	"github.com/jhoicas/ceramic-erp/internal/domain/repository"
	"github.com/jhoicas/ceramic-erp/internal/infrastructure/memory"
	"github.com/jhoicas/ceramic-erp/internal/infrastructure/postgres"
	"github.com/jhoicas/ceramic-erp/pkg/config"
	"github.com/jhoicas/ceramic-erp/pkg/logger"
)

// txRunner lo implementan postgres.TxRunner y memory.Store.
type txRunner interface {
	inventory.TxRunner
	rbac.TxRunner
}

// storage repositorios de la aplicación sobre PostgreSQL o en memoria.
type storage struct {
	tx         txRunner
	categories repository.CategoryRepository
	tiles      repository.TileRepository
	sales      repository.SaleRepository
	purchases  repository.PurchaseRepository
	cash       repository.CashAccountRepository
	users      repository.UserRepository
	roles      repository.RoleRepository
	ledger     repository.LedgerRepository
	close      func()
}

func openStorage(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*storage, error) {
	if cfg.InMemory() {
		log.Warn().Msg("DB_DRIVER=memory: los datos se pierden al reiniciar")
		store := memory.NewStore()
		return &storage{
			tx:         store,
			categories: store.Categories(),
			tiles:      store.Tiles(),
			sales:      store.Sales(),
			purchases:  store.Purchases(),
			cash:       store.Cash(),
			users:      store.Users(),
			roles:      store.Roles(),
			ledger:     store.Ledger(),
			close:      func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	if cfg.MigrateOnStart {
		if err := postgres.Migrate(pool, log); err != nil {
			pool.Close()
			return nil, err
		}
	}
	return &storage{
		tx:         postgres.NewTxRunner(pool),
		categories: postgres.NewCategoryRepository(pool),
		tiles:      postgres.NewTileRepository(pool),
		sales:      postgres.NewSaleRepository(pool),
		purchases:  postgres.NewPurchaseRepository(pool),
		cash:       postgres.NewCashAccountRepository(pool),
		users:      postgres.NewUserRepository(pool),
		roles:      postgres.NewRoleRepository(pool),
		ledger:     postgres.NewLedgerRepository(pool),
		close:      pool.Close,
	}, nil
}

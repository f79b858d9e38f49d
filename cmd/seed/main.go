// seed prepara una base de datos PostgreSQL: aplica las migraciones, siembra roles,
// permisos y cuentas iniciales y, opcionalmente, importa un catálogo de baldosas
// exportado desde una hoja de cálculo.
//
// Uso: go run ./cmd/seed [-catalog catalogo.csv] [-encoding auto|utf-8|latin1]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/ceramic-erp/internal/application/ports"
	"github.com/jhoicas/ceramic-erp/internal/application/rbac"
	"github.com/jhoicas/ceramic-erp/internal/application/usecase"
	"github.com/jhoicas/ceramic-erp/internal/application/validation"
	"github.com/jhoicas/ceramic-erp/internal/infrastructure/cache"
	"github.com/jhoicas/ceramic-erp/internal/infrastructure/catalogfile"
	"github.com/jhoicas/ceramic-erp/internal/infrastructure/postgres"
	"github.com/jhoicas/ceramic-erp/pkg/config"
	"github.com/jhoicas/ceramic-erp/pkg/logger"
)

func main() {
	catalogPath := flag.String("catalog", "", "CSV de catálogo a importar (opcional)")
	encoding := flag.String("encoding", "auto", "codificación del CSV: auto, utf-8 o latin1")
	flag.Parse()

	if err := run(*catalogPath, *encoding); err != nil {
		fmt.Fprintf(os.Stderr, "seed: %v\n", err)
		os.Exit(1)
	}
}

func run(catalogPath, encoding string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.DB.InMemory() {
		return fmt.Errorf("DB_DRIVER=memory: no hay base de datos que sembrar")
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	enc, err := catalogfile.ParseEncoding(encoding)
	if err != nil {
		return err
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	defer pool.Close()

	if err := postgres.Migrate(pool, log.Component("db")); err != nil {
		return err
	}

	users := rbac.DefaultBootstrapUsers(cfg.Seed.AdminPassword, cfg.Seed.UserPassword)
	rep, err := rbac.NewSeeder(postgres.NewTxRunner(pool), users, log.Component("seed")).Seed(ctx)
	if err != nil {
		return fmt.Errorf("siembra de roles: %w", err)
	}
	fmt.Printf("Roles y permisos: %+v\n", rep)

	if catalogPath == "" {
		return nil
	}
	f, err := os.Open(catalogPath)
	if err != nil {
		return fmt.Errorf("abrir catálogo: %w", err)
	}
	defer f.Close()

	rows, err := catalogfile.Read(f, enc)
	if err != nil {
		return fmt.Errorf("leer %s: %w", catalogPath, err)
	}

	// Con Redis configurado la importación invalida los reportes cacheados por la API.
	var reportCache ports.ReportCache = cache.Noop{}
	if cfg.Redis.Enabled() {
		rc := cache.NewRedisReportCache(cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB), cfg.Redis.TTL())
		defer rc.Close()
		reportCache = rc
	}
	categoryRepo := postgres.NewCategoryRepository(pool)
	tileRepo := postgres.NewTileRepository(pool)
	v := validation.New()
	imp := usecase.NewCatalogImportUseCase(
		usecase.NewCategoryUseCase(categoryRepo, tileRepo, v, reportCache),
		usecase.NewTileUseCase(tileRepo, categoryRepo, v, reportCache, cfg.App.LowStockDefault),
		categoryRepo,
		tileRepo,
	)
	res, err := imp.Import(ctx, rows)
	if res != nil {
		fmt.Printf("Catálogo: %d categorías nuevas, %d baldosas nuevas, %d omitidas\n",
			res.CategoriesCreated, res.TilesCreated, res.TilesSkipped)
	}
	return err
}

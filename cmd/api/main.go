package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jhoicas/ceramic-erp/internal/application/analytics"
	"github.com/jhoicas/ceramic-erp/internal/application/auth"
	"github.com/jhoicas/ceramic-erp/internal/application/billing"
	appledger "github.com/jhoicas/ceramic-erp/internal/application/ledger"
	"github.com/jhoicas/ceramic-erp/internal/application/ports"
	"github.com/jhoicas/ceramic-erp/internal/application/purchasing"
	"github.com/jhoicas/ceramic-erp/internal/application/rbac"
	"github.com/jhoicas/ceramic-erp/internal/application/usecase"
	"github.com/jhoicas/ceramic-erp/internal/application/validation"
	infracache "github.com/jhoicas/ceramic-erp/internal/infrastructure/cache"
	infrapdf "github.com/jhoicas/ceramic-erp/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/ceramic-erp/internal/interfaces/http"
	"github.com/jhoicas/ceramic-erp/pkg/config"
	"github.com/jhoicas/ceramic-erp/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := openStorage(ctx, cfg.DB, log.Component("db"))
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento")
	}
	defer store.close()

	if cfg.Seed.OnStart {
		users := rbac.DefaultBootstrapUsers(cfg.Seed.AdminPassword, cfg.Seed.UserPassword)
		if _, err := rbac.NewSeeder(store.tx, users, log.Component("seed")).Seed(ctx); err != nil {
			log.Fatal().Err(err).Msg("siembra de roles y permisos")
		}
	}

	// Caché de reportes: Redis si está configurado, si no Noop.
	var reportCache ports.ReportCache = infracache.Noop{}
	if cfg.Redis.Enabled() {
		rc := infracache.NewRedisReportCache(
			infracache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB),
			cfg.Redis.TTL(),
		)
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := rc.Ping(pingCtx)
		cancel()
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis no disponible, reportes sin caché")
			_ = rc.Close()
		} else {
			reportCache = rc
			defer rc.Close()
		}
	}

	v := validation.New()
	txLog := log.Component("tx")

	authUC := auth.NewAuthUseCase(store.users, store.roles, v, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	categoryUC := usecase.NewCategoryUseCase(store.categories, store.tiles, v, reportCache)
	tileUC := usecase.NewTileUseCase(store.tiles, store.categories, v, reportCache, cfg.App.LowStockDefault)
	userUC := usecase.NewUserUseCase(store.users, store.roles, v)

	recordSale := billing.NewRecordSaleUseCase(store.tx, v, reportCache, txLog)
	listSales := billing.NewListSalesUseCase(store.sales, store.ledger)
	recordPurchase := purchasing.NewRecordPurchaseUseCase(store.tx, v, reportCache, txLog)
	listPurchases := purchasing.NewListPurchasesUseCase(store.purchases, store.ledger)

	// PDF: estado de cuenta del libro mayor
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name)
	statementUC := appledger.NewStatementUseCase(store.ledger, pdfGenerator, reportCache)
	dashboardUC := appanalytics.NewDashboardUseCase(store.categories, store.tiles, store.ledger, store.cash, reportCache)
	reportUC := appanalytics.NewReportUseCase(store.categories, store.tiles, store.ledger, reportCache)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat("./docs/swagger.json"); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "Ceramic ERP API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		CategoryUC:     categoryUC,
		TileUC:         tileUC,
		UserUC:         userUC,
		RecordSale:     recordSale,
		ListSales:      listSales,
		RecordPurchase: recordPurchase,
		ListPurchases:  listPurchases,
		Statement:      statementUC,
		DashboardUC:    dashboardUC,
		ReportUC:       reportUC,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/ceramic-erp/internal/application/analytics"
	"github.com/jhoicas/ceramic-erp/internal/application/auth"
	"github.com/jhoicas/ceramic-erp/internal/application/billing"
	appledger "github.com/jhoicas/ceramic-erp/internal/application/ledger"
	"github.com/jhoicas/ceramic-erp/internal/application/purchasing"
	"github.com/jhoicas/ceramic-erp/internal/application/usecase"
	"github.com/jhoicas/ceramic-erp/internal/domain/authz"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	CategoryUC     *usecase.CategoryUseCase
	TileUC         *usecase.TileUseCase
	UserUC         *usecase.UserUseCase
	RecordSale     *billing.RecordSaleUseCase
	ListSales      *billing.ListSalesUseCase
	RecordPurchase *purchasing.RecordPurchaseUseCase
	ListPurchases  *purchasing.ListPurchasesUseCase
	Statement      *appledger.StatementUseCase
	DashboardUC    *appanalytics.DashboardUseCase
	ReportUC       *appanalytics.ReportUseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	need := RequirePermission

	// Auth (público salvo /me)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/roles", authHandler.Roles)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", need(authz.ViewDashboard), dashboardHandler.Get)

	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC, deps.ReportUC)
	categories.Get("/", need(authz.ViewInventory), categoryHandler.List)
	categories.Post("/", need(authz.ManageInventory), categoryHandler.Create)
	categories.Get("/:id", need(authz.ViewReports), categoryHandler.Details)
	categories.Delete("/:id", need(authz.ManageInventory), categoryHandler.Delete)

	tiles := protected.Group("/tiles")
	tileHandler := NewTileHandler(deps.TileUC, deps.ReportUC)
	tiles.Get("/", need(authz.ViewInventory), tileHandler.List)
	tiles.Post("/", need(authz.ManageInventory), tileHandler.Create)
	tiles.Get("/:id", need(authz.ViewReports), tileHandler.Details)
	tiles.Put("/:id", need(authz.ManageInventory), tileHandler.Update)
	tiles.Delete("/:id", need(authz.ManageInventory), tileHandler.Delete)

	sales := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.RecordSale, deps.ListSales)
	sales.Get("/", need(authz.ViewSales), saleHandler.List)
	sales.Post("/", need(authz.CreateSale), saleHandler.Create)

	purchases := protected.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.RecordPurchase, deps.ListPurchases)
	purchases.Get("/", need(authz.ViewPurchases), purchaseHandler.List)
	purchases.Post("/", need(authz.CreatePurchase), purchaseHandler.Create)

	ledger := protected.Group("/ledger")
	ledgerHandler := NewLedgerHandler(deps.Statement)
	ledger.Get("/", need(authz.ViewLedger), ledgerHandler.Get)
	ledger.Get("/export", need(authz.ExportLedger), ledgerHandler.ExportCSV)
	ledger.Get("/export/pdf", need(authz.ExportLedger), ledgerHandler.ExportPDF)

	userHandler := NewUserHandler(deps.UserUC)
	protected.Get("/users", need(authz.ManageUsers), userHandler.List)
	protected.Patch("/users/:id", need(authz.ManageUsers), userHandler.Update)
	protected.Get("/roles", need(authz.ManageUsers), userHandler.Roles)
}

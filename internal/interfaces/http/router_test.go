package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/ceramic-erp/internal/application/analytics"
	"github.com/jhoicas/ceramic-erp/internal/application/auth"
	"github.com/jhoicas/ceramic-erp/internal/application/billing"
	"github.com/jhoicas/ceramic-erp/internal/application/dto"
	appledger "github.com/jhoicas/ceramic-erp/internal/application/ledger"
	"github.com/jhoicas/ceramic-erp/internal/application/purchasing"
	"github.com/jhoicas/ceramic-erp/internal/application/rbac"
	"github.com/jhoicas/ceramic-erp/internal/application/usecase"
	"github.com/jhoicas/ceramic-erp/internal/application/validation"
	"github.com/jhoicas/ceramic-erp/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/ceramic-erp/internal/interfaces/http"
	"github.com/jhoicas/ceramic-erp/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Servidor de prueba sobre el almacenamiento en memoria
// ──────────────────────────────────────────────────────────────────────────────

func newServer(t *testing.T) *fiber.App {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	_, err := rbac.NewSeeder(store, rbac.DefaultBootstrapUsers("Admin@123", "User@123"), logger.Nop()).Seed(ctx)
	require.NoError(t, err)

	v := validation.New()
	app := fiber.New()
	app.Use(apphttp.RequestLogger(logger.Nop()))
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC: auth.NewAuthUseCase(store.Users(), store.Roles(), v, auth.JWTConfig{
			Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
		}),
		CategoryUC:     usecase.NewCategoryUseCase(store.Categories(), store.Tiles(), v, nil),
		TileUC:         usecase.NewTileUseCase(store.Tiles(), store.Categories(), v, nil, 10),
		UserUC:         usecase.NewUserUseCase(store.Users(), store.Roles(), v),
		RecordSale:     billing.NewRecordSaleUseCase(store, v, nil, nil),
		ListSales:      billing.NewListSalesUseCase(store.Sales(), store.Ledger()),
		RecordPurchase: purchasing.NewRecordPurchaseUseCase(store, v, nil, nil),
		ListPurchases:  purchasing.NewListPurchasesUseCase(store.Purchases(), store.Ledger()),
		Statement:      appledger.NewStatementUseCase(store.Ledger(), nil, nil),
		DashboardUC:    appanalytics.NewDashboardUseCase(store.Categories(), store.Tiles(), store.Ledger(), store.Cash(), nil),
		ReportUC:       appanalytics.NewReportUseCase(store.Categories(), store.Tiles(), store.Ledger(), nil),
		JWTSecret:      testJWTSecret,
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func login(t *testing.T, app *fiber.App, email, password string) string {
	t.Helper()
	resp := call(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return decode[dto.LoginResponse](t, resp).Token
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujo completo: catálogo → compra → venta → libro mayor
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_CompraVentaYLibroMayor(t *testing.T) {
	app := newServer(t)
	admin := login(t, app, " ADMIN@erp.com ", "Admin@123")

	resp := call(t, app, http.MethodPost, "/api/categories", admin, map[string]any{"name": "Porcelanato"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	category := decode[dto.CategoryResponse](t, resp)

	resp = call(t, app, http.MethodPost, "/api/tiles", admin, map[string]any{
		"name": "Blanco 60x60", "category_id": category.ID, "size": "60x60", "price": "18.50", "stock_quantity": 0,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	tile := decode[dto.TileResponse](t, resp)

	resp = call(t, app, http.MethodPost, "/api/purchases", admin, map[string]any{
		"supplier_name": "Acme Co", "tile_id": tile.ID, "quantity": 50, "unit_price": "10", "payment_type": "Cash",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	purchase := decode[dto.TransactionResponse](t, resp)
	require.NotNil(t, purchase.StockAfter)
	assert.Equal(t, 50, *purchase.StockAfter)

	resp = call(t, app, http.MethodPost, "/api/sales", admin, map[string]any{
		"customer_name": "acme co ", "tile_id": tile.ID, "quantity": 20, "unit_price": "15",
		"payment_type": "partial", "paid_amount": "200",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	sale := decode[dto.TransactionResponse](t, resp)
	assert.Equal(t, 30, *sale.StockAfter)
	assert.Equal(t, "100.00", sale.DueAmount.StringFixed(2))
	assert.Equal(t, "200.00", sale.CashBalance.StringFixed(2), "la compra no descuenta caja")

	resp = call(t, app, http.MethodPost, "/api/sales", admin, map[string]any{
		"customer_name": "Otro", "tile_id": tile.ID, "quantity": 31, "unit_price": "15", "payment_type": "Cash",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", decode[dto.ErrorResponse](t, resp).Code)

	resp = call(t, app, http.MethodGet, "/api/ledger?enterpriseName=ACME%20CO", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	st := decode[dto.StatementResponse](t, resp)
	assert.Equal(t, 1, st.SalesTransactions)
	assert.Equal(t, 1, st.PurchaseTransactions)
	assert.Equal(t, "300.00", st.TotalEarned.StringFixed(2))
	assert.Equal(t, "500.00", st.TotalPaidOut.StringFixed(2))

	resp = call(t, app, http.MethodGet, "/api/ledger/export?enterpriseName=Acme%20Co", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv", resp.Header.Get("Content-Type"))
	assert.Equal(t, `attachment; filename="ledger_Acme Co_all_all.csv"`, resp.Header.Get("Content-Disposition"))
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], ",Purchase,Cash,500.00,500.00,0.00,1,50")
	assert.Contains(t, lines[2], ",Sale,Partial,300.00,200.00,100.00,1,20")

	resp = call(t, app, http.MethodGet, "/api/ledger/export/pdf?enterpriseName=Acme%20Co", admin, nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode, "sin generador PDF configurado")

	resp = call(t, app, http.MethodGet, "/api/dashboard", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	dash := decode[dto.DashboardResponse](t, resp)
	require.NotNil(t, dash.Financial)
	assert.Equal(t, "-200.00", dash.Financial.Profit.StringFixed(2))
	assert.Equal(t, "300.00", dash.Financial.BusinessPosition.StringFixed(2))

	resp = call(t, app, http.MethodDelete, "/api/categories/"+category.ID, admin, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode, "la categoría aún tiene baldosas")

	resp = call(t, app, http.MethodGet, "/api/tiles/"+tile.ID+"?fromDate=2000-01-01", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	details := decode[dto.TileDetailsResponse](t, resp)
	assert.Len(t, details.Transactions, 2)
	assert.Equal(t, 30, details.Tile.StockQuantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Autenticación, permisos y errores
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_PermisosEjecutivoDeVentas(t *testing.T) {
	app := newServer(t)
	seller := login(t, app, "user@erp.com", "User@123")

	resp := call(t, app, http.MethodGet, "/api/sales", seller, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	for _, path := range []string{"/api/purchases", "/api/ledger?enterpriseName=x", "/api/users", "/api/roles"} {
		resp = call(t, app, http.MethodGet, path, seller, nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, path)
	}

	resp = call(t, app, http.MethodGet, "/api/dashboard", seller, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Nil(t, decode[dto.DashboardResponse](t, resp).Financial, "sin view_dashboard_financial")
}

func TestRouter_LoginYRegistro(t *testing.T) {
	app := newServer(t)

	resp := call(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "admin@erp.com", "password": "mala"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_CREDENTIALS", decode[dto.ErrorResponse](t, resp).Code)

	resp = call(t, app, http.MethodGet, "/api/auth/roles", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotContains(t, decode[[]string](t, resp), "Super Admin")

	resp = call(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Ana", "email": "ana@erp.com", "password": "secreto", "confirm_password": "otro", "role": "Accountant",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decode[dto.ErrorResponse](t, resp).Fields, "confirm_password")

	resp = call(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "  Ana   Pérez ", "email": "Ana@ERP.com", "password": "secreto", "confirm_password": "secreto", "role": "accountant",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	user := decode[dto.UserResponse](t, resp)
	assert.Equal(t, "Ana Pérez", user.Name)
	assert.Equal(t, "ana@erp.com", user.Email)

	token := login(t, app, "ana@erp.com", "secreto")
	resp = call(t, app, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	me := decode[dto.UserResponse](t, resp)
	assert.Equal(t, "Accountant", me.Role)
	assert.Contains(t, me.Permissions, "export_ledger")

	resp = call(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Ana", "email": "ana@erp.com", "password": "secreto", "confirm_password": "secreto", "role": "Accountant",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestRouter_ValidacionYNoEncontrado(t *testing.T) {
	app := newServer(t)
	admin := login(t, app, "admin@erp.com", "Admin@123")

	resp := call(t, app, http.MethodPost, "/api/sales", admin, map[string]any{
		"customer_name": "", "tile_id": "no-uuid", "quantity": 0, "payment_type": "Barter",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", body.Code)
	for _, f := range []string{"customer_name", "tile_id", "quantity", "payment_type"} {
		assert.Contains(t, body.Fields, f)
	}

	resp = call(t, app, http.MethodGet, "/api/ledger", admin, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decode[dto.ErrorResponse](t, resp).Fields, "enterpriseName")

	resp = call(t, app, http.MethodGet, "/api/tiles/00000000-0000-0000-0000-00000000dead", admin, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/categories", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRouter_IdMalFormado_Retorna404(t *testing.T) {
	app := newServer(t)
	admin := login(t, app, "admin@erp.com", "Admin@123")

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/tiles/abc"},
		{http.MethodDelete, "/api/tiles/abc"},
		{http.MethodGet, "/api/categories/abc?fromDate=2024-01-01"},
		{http.MethodDelete, "/api/categories/123"},
		{http.MethodPatch, "/api/users/no-uuid"},
	} {
		var body any
		if tc.method == http.MethodPatch {
			body = map[string]any{"is_active": true}
		}
		resp := call(t, app, tc.method, tc.path, admin, body)
		require.Equal(t, http.StatusNotFound, resp.StatusCode, "%s %s", tc.method, tc.path)
		assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, resp).Code, "%s %s", tc.method, tc.path)
	}
}

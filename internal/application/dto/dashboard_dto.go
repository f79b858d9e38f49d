package dto

import "github.com/shopspring/decimal"

// DashboardResponse respuesta de GET /api/dashboard.
// Financial es nil si el usuario no tiene view_dashboard_financial.
type DashboardResponse struct {
	TotalCategories int                 `json:"total_categories"`
	TotalTiles      int                 `json:"total_tiles"`
	TotalStock      int                 `json:"total_stock"`
	LowStockTiles   int                 `json:"low_stock_tiles"`
	Financial       *DashboardFinancial `json:"financial,omitempty"`
}

// DashboardFinancial cifras de dinero del panel.
type DashboardFinancial struct {
	TotalRevenue        decimal.Decimal `json:"total_revenue"`
	TotalPurchaseCost   decimal.Decimal `json:"total_purchase_cost"`
	Profit              decimal.Decimal `json:"profit"` // ingresos - costo de compras
	CashBalance         decimal.Decimal `json:"cash_balance"`
	Receivable          decimal.Decimal `json:"receivable"`
	Payable             decimal.Decimal `json:"payable"`
	BusinessPosition    decimal.Decimal `json:"business_position"` // caja + por cobrar - por pagar
	TotalInventoryValue decimal.Decimal `json:"total_inventory_value"`
}

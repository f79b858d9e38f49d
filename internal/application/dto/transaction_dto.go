package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleRequest cuerpo de POST /api/sales. PaidAmount solo aplica a Partial.
type CreateSaleRequest struct {
	CustomerName string           `json:"customer_name" validate:"required,max=200"`
	TileID       string           `json:"tile_id" validate:"required,uuid"`
	Quantity     int              `json:"quantity" validate:"gt=0"`
	UnitPrice    decimal.Decimal  `json:"unit_price"`
	PaymentType  string           `json:"payment_type" validate:"required,payment_type"`
	PaidAmount   *decimal.Decimal `json:"paid_amount"`
}

// CreatePurchaseRequest cuerpo de POST /api/purchases.
type CreatePurchaseRequest struct {
	SupplierName string           `json:"supplier_name" validate:"required,max=200"`
	TileID       string           `json:"tile_id" validate:"required,uuid"`
	Quantity     int              `json:"quantity" validate:"gt=0"`
	UnitPrice    decimal.Decimal  `json:"unit_price"`
	PaymentType  string           `json:"payment_type" validate:"required,payment_type"`
	PaidAmount   *decimal.Decimal `json:"paid_amount"`
}

// LineItemResponse línea de una venta o compra.
type LineItemResponse struct {
	ID         string          `json:"id"`
	TileID     string          `json:"tile_id"`
	TileName   string          `json:"tile_name"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	LineAmount decimal.Decimal `json:"line_amount"`
}

// TransactionResponse venta o compra registrada.
type TransactionResponse struct {
	ID           string             `json:"id"`
	Counterparty string             `json:"counterparty"`
	Date         time.Time          `json:"date"`
	TotalAmount  decimal.Decimal    `json:"total_amount"`
	PaymentType  string             `json:"payment_type"`
	PaidAmount   decimal.Decimal    `json:"paid_amount"`
	DueAmount    decimal.Decimal    `json:"due_amount"`
	Items        []LineItemResponse `json:"items"`
	StockAfter   *int               `json:"stock_after,omitempty"`
	CashBalance  *decimal.Decimal   `json:"cash_balance,omitempty"`
}

// SalesTotals totales globales del índice de ventas.
type SalesTotals struct {
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	TotalReceived   decimal.Decimal `json:"total_received"`
	TotalPending    decimal.Decimal `json:"total_pending"`
	UniqueCustomers int             `json:"unique_customers"`
	Count           int             `json:"count"`
}

// SaleListResponse índice de ventas.
type SaleListResponse struct {
	Items  []TransactionResponse `json:"items"`
	Totals SalesTotals           `json:"totals"`
	Page   PageResponse          `json:"page"`
}

// PurchaseTotals totales globales del índice de compras.
type PurchaseTotals struct {
	TotalCost       decimal.Decimal `json:"total_cost"`
	TotalPaid       decimal.Decimal `json:"total_paid"`
	TotalPending    decimal.Decimal `json:"total_pending"`
	UniqueSuppliers int             `json:"unique_suppliers"`
	Count           int             `json:"count"`
}

// PurchaseListResponse índice de compras.
type PurchaseListResponse struct {
	Items  []TransactionResponse `json:"items"`
	Totals PurchaseTotals        `json:"totals"`
	Page   PageResponse          `json:"page"`
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatementResponse libro mayor de una empresa (cliente y/o proveedor).
type StatementResponse struct {
	EnterpriseName       string                 `json:"enterprise_name"`
	FromDate             *string                `json:"from_date"`
	ToDate               *string                `json:"to_date"`
	TotalEarned          decimal.Decimal        `json:"total_earned"`
	TotalPurchaseCost    decimal.Decimal        `json:"total_purchase_cost"`
	TotalReceived        decimal.Decimal        `json:"total_received"`
	TotalPaidOut         decimal.Decimal        `json:"total_paid_out"`
	PendingReceivable    decimal.Decimal        `json:"pending_receivable"`
	PendingPayable       decimal.Decimal        `json:"pending_payable"`
	SalesTransactions    int                    `json:"sales_transactions"`
	PurchaseTransactions int                    `json:"purchase_transactions"`
	Transactions         []StatementRowResponse `json:"transactions"`
}

// StatementRowResponse transacción del libro mayor.
type StatementRowResponse struct {
	Type          string          `json:"type"`
	ID            string          `json:"id"`
	Date          time.Time       `json:"date"`
	PaymentType   string          `json:"payment_type"`
	Total         decimal.Decimal `json:"total"`
	Settled       decimal.Decimal `json:"settled"`
	Pending       decimal.Decimal `json:"pending"`
	ItemsCount    int             `json:"items_count"`
	TotalQuantity int             `json:"total_quantity"`
}

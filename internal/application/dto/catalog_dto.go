package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCategoryRequest cuerpo de POST /api/categories.
type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,max=120"`
}

// CategoryResponse categoría sin agregados.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// CategorySummaryResponse fila del índice de categorías.
type CategorySummaryResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	TileCount      int             `json:"tile_count"`
	TotalStock     int             `json:"total_stock"`
	LowStockTiles  int             `json:"low_stock_tiles"`
	AveragePrice   decimal.Decimal `json:"average_price"`
	InventoryValue decimal.Decimal `json:"inventory_value"`
}

// CategoryDetailsResponse detalle con baldosas y movimientos del rango.
type CategoryDetailsResponse struct {
	Category     CategorySummaryResponse `json:"category"`
	FromDate     *string                 `json:"from_date"`
	ToDate       *string                 `json:"to_date"`
	Totals       LineTotalsResponse      `json:"totals"`
	Tiles        []TileResponse          `json:"tiles"`
	Transactions []LineEntryResponse     `json:"transactions"`
}

// CreateTileRequest cuerpo de POST /api/tiles.
// LowStockThreshold nil usa el umbral por defecto.
type CreateTileRequest struct {
	Name              string          `json:"name" validate:"required,max=150"`
	CategoryID        string          `json:"category_id" validate:"required,uuid"`
	Size              string          `json:"size" validate:"max=50"`
	Price             decimal.Decimal `json:"price"`
	StockQuantity     int             `json:"stock_quantity" validate:"min=0"`
	LowStockThreshold *int            `json:"low_stock_threshold" validate:"omitempty,min=0"`
}

// UpdateTileRequest cuerpo de PUT /api/tiles/:id. El stock solo cambia con ventas y compras.
type UpdateTileRequest struct {
	Name              string          `json:"name" validate:"required,max=150"`
	CategoryID        string          `json:"category_id" validate:"required,uuid"`
	Size              string          `json:"size" validate:"max=50"`
	Price             decimal.Decimal `json:"price"`
	LowStockThreshold int             `json:"low_stock_threshold" validate:"min=0"`
}

// TileResponse baldosa.
type TileResponse struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	CategoryID        string          `json:"category_id"`
	CategoryName      string          `json:"category_name"`
	Size              string          `json:"size"`
	Price             decimal.Decimal `json:"price"`
	StockQuantity     int             `json:"stock_quantity"`
	LowStockThreshold int             `json:"low_stock_threshold"`
	IsLowStock        bool            `json:"is_low_stock"`
	InventoryValue    decimal.Decimal `json:"inventory_value"`
	CreatedAt         time.Time       `json:"created_at"`
}

// StockSummaryResponse totales de inventario.
type StockSummaryResponse struct {
	TotalTiles          int             `json:"total_tiles"`
	TotalStock          int             `json:"total_stock"`
	LowStockTiles       int             `json:"low_stock_tiles"`
	TotalInventoryValue decimal.Decimal `json:"total_inventory_value"`
}

// TileListResponse índice de baldosas activas.
type TileListResponse struct {
	Items   []TileResponse       `json:"items"`
	Summary StockSummaryResponse `json:"summary"`
}

// TileDetailsResponse baldosa con sus movimientos del rango.
type TileDetailsResponse struct {
	Tile         TileResponse        `json:"tile"`
	FromDate     *string             `json:"from_date"`
	ToDate       *string             `json:"to_date"`
	Totals       LineTotalsResponse  `json:"totals"`
	Transactions []LineEntryResponse `json:"transactions"`
}

// LineEntryResponse línea de venta o compra con su parte pagada/pendiente.
type LineEntryResponse struct {
	Type          string          `json:"type"`
	TransactionID string          `json:"transaction_id"`
	Date          time.Time       `json:"date"`
	Counterparty  string          `json:"counterparty"`
	PaymentType   string          `json:"payment_type"`
	TileID        string          `json:"tile_id"`
	TileName      string          `json:"tile_name"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	LineAmount    decimal.Decimal `json:"line_amount"`
	Settled       decimal.Decimal `json:"settled"`
	Pending       decimal.Decimal `json:"pending"`
}

// LineTotalsResponse totales de líneas del rango.
type LineTotalsResponse struct {
	SoldQuantity      int             `json:"sold_quantity"`
	PurchasedQuantity int             `json:"purchased_quantity"`
	SalesValue        decimal.Decimal `json:"sales_value"`
	PurchaseValue     decimal.Decimal `json:"purchase_value"`
	SalesReceived     decimal.Decimal `json:"sales_received"`
	SalesPending      decimal.Decimal `json:"sales_pending"`
	PurchasePaid      decimal.Decimal `json:"purchase_paid"`
	PurchasePending   decimal.Decimal `json:"purchase_pending"`
}

// CatalogRow fila de un catálogo importado (cmd/seed). Line es la línea del archivo.
type CatalogRow struct {
	Line              int
	Category          string
	Name              string
	Size              string
	Price             decimal.Decimal
	StockQuantity     int
	LowStockThreshold *int
}

// CatalogImportResult resumen de la importación.
type CatalogImportResult struct {
	CategoriesCreated int `json:"categories_created"`
	TilesCreated      int `json:"tiles_created"`
	TilesSkipped      int `json:"tiles_skipped"`
}

package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/ceramic-erp/internal/application/dto"
	"github.com/jhoicas/ceramic-erp/internal/domain/entity"
	"github.com/jhoicas/ceramic-erp/internal/domain/repository"
)

// ListSalesUseCase índice de ventas con totales globales.
type ListSalesUseCase struct {
	saleRepo   repository.SaleRepository
	ledgerRepo repository.LedgerRepository
}

// NewListSalesUseCase construye el caso de uso.
func NewListSalesUseCase(saleRepo repository.SaleRepository, ledgerRepo repository.LedgerRepository) *ListSalesUseCase {
	return &ListSalesUseCase{saleRepo: saleRepo, ledgerRepo: ledgerRepo}
}

// List devuelve una página (más recientes primero). Los totales cubren todas las ventas, no solo la página.
func (uc *ListSalesUseCase) List(ctx context.Context, limit, offset int) (*dto.SaleListResponse, error) {
	page := dto.NewPage(limit, offset)
	sales, err := uc.saleRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	totals, err := uc.ledgerRepo.Totals(ctx)
	if err != nil {
		return nil, fmt.Errorf("sales totals: %w", err)
	}
	items := make([]dto.TransactionResponse, 0, len(sales))
	for _, s := range sales {
		items = append(items, *toSaleResponse(s))
	}
	return &dto.SaleListResponse{
		Items: items,
		Totals: dto.SalesTotals{
			TotalRevenue:    totals.SalesTotal,
			TotalReceived:   totals.SalesPaid,
			TotalPending:    totals.SalesDue,
			UniqueCustomers: totals.UniqueCustomers,
			Count:           totals.SalesCount,
		},
		Page: page,
	}, nil
}

func toSaleResponse(s *entity.Sale) *dto.TransactionResponse {
	items := make([]dto.LineItemResponse, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, dto.LineItemResponse{
			ID:         it.ID,
			TileID:     it.TileID,
			TileName:   it.TileName,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			LineAmount: it.LineAmount(),
		})
	}
	return &dto.TransactionResponse{
		ID:           s.ID,
		Counterparty: s.CustomerName,
		Date:         s.Date,
		TotalAmount:  s.TotalAmount,
		PaymentType:  string(s.PaymentType),
		PaidAmount:   s.PaidAmount,
		DueAmount:    s.DueAmount,
		Items:        items,
	}
}

package purchasing

import (
	"context"
	"fmt"

	"github.com/jhoicas/ceramic-erp/internal/application/dto"
	"github.com/jhoicas/ceramic-erp/internal/domain/entity"
	"github.com/jhoicas/ceramic-erp/internal/domain/repository"
)

// ListPurchasesUseCase índice de compras con totales globales.
type ListPurchasesUseCase struct {
	purchaseRepo repository.PurchaseRepository
	ledgerRepo   repository.LedgerRepository
}

// NewListPurchasesUseCase construye el caso de uso.
func NewListPurchasesUseCase(purchaseRepo repository.PurchaseRepository, ledgerRepo repository.LedgerRepository) *ListPurchasesUseCase {
	return &ListPurchasesUseCase{purchaseRepo: purchaseRepo, ledgerRepo: ledgerRepo}
}

// List página de compras (más recientes primero) y totales de todas las compras.
func (uc *ListPurchasesUseCase) List(ctx context.Context, limit, offset int) (*dto.PurchaseListResponse, error) {
	page := dto.NewPage(limit, offset)
	purchases, err := uc.purchaseRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	totals, err := uc.ledgerRepo.Totals(ctx)
	if err != nil {
		return nil, fmt.Errorf("purchase totals: %w", err)
	}
	items := make([]dto.TransactionResponse, 0, len(purchases))
	for _, p := range purchases {
		items = append(items, *toPurchaseResponse(p))
	}
	return &dto.PurchaseListResponse{
		Items: items,
		Totals: dto.PurchaseTotals{
			TotalCost:       totals.PurchaseTotal,
			TotalPaid:       totals.PurchasePaid,
			TotalPending:    totals.PurchaseDue,
			UniqueSuppliers: totals.UniqueSuppliers,
			Count:           totals.PurchaseCount,
		},
		Page: page,
	}, nil
}

func toPurchaseResponse(p *entity.Purchase) *dto.TransactionResponse {
	items := make([]dto.LineItemResponse, 0, len(p.Items))
	for _, it := range p.Items {
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
		ID:           p.ID,
		Counterparty: p.SupplierName,
		Date:         p.Date,
		TotalAmount:  p.TotalAmount,
		PaymentType:  string(p.PaymentType),
		PaidAmount:   p.PaidAmount,
		DueAmount:    p.DueAmount,
		Items:        items,
	}
}

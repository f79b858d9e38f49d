// Package purchasing registra compras a proveedores: suma stock y deja constancia de lo pagado y lo adeudado.
package purchasing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/ceramic-erp/internal/application/dto"
	"github.com/jhoicas/ceramic-erp/internal/application/inventory"
	"github.com/jhoicas/ceramic-erp/internal/application/ports"
	"github.com/jhoicas/ceramic-erp/internal/application/validation"
	"github.com/jhoicas/ceramic-erp/internal/domain"
	"github.com/jhoicas/ceramic-erp/internal/domain/entity"
	"github.com/jhoicas/ceramic-erp/internal/domain/ledger"
	"github.com/jhoicas/ceramic-erp/internal/domain/repository"
	"github.com/jhoicas/ceramic-erp/pkg/logger"
)

// RecordPurchaseUseCase crea una compra de una línea y suma el stock en la misma transacción.
// Las compras no debitan la caja.
type RecordPurchaseUseCase struct {
	txRunner  inventory.TxRunner
	validator *validation.Validator
	cache     ports.ReportCache
	log       *logger.Logger
	now       func() time.Time
}

// NewRecordPurchaseUseCase construye el caso de uso. cache y log pueden ser nil.
func NewRecordPurchaseUseCase(txRunner inventory.TxRunner, v *validation.Validator, cache ports.ReportCache, log *logger.Logger) *RecordPurchaseUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &RecordPurchaseUseCase{txRunner: txRunner, validator: v, cache: cache, log: log, now: time.Now}
}

// Execute valida, resuelve el pago y dentro de la tx bloquea la baldosa, guarda cabecera + línea y suma stock.
func (uc *RecordPurchaseUseCase) Execute(ctx context.Context, userID string, in dto.CreatePurchaseRequest) (*dto.TransactionResponse, error) {
	in.SupplierName = strings.TrimSpace(in.SupplierName)
	if err := uc.validator.Struct(in); err != nil {
		return nil, err
	}
	if in.UnitPrice.IsNegative() {
		return nil, domain.NewValidationError("unit_price", "debe ser mayor o igual a 0")
	}
	pt, _ := entity.ParsePaymentType(in.PaymentType)

	total := ledger.LineTotal(in.Quantity, in.UnitPrice)
	paid, due, err := ledger.ResolvePayment(pt, total, in.PaidAmount)
	if err != nil {
		return nil, err
	}

	purchase := &entity.Purchase{
		ID:           uuid.New().String(),
		SupplierName: in.SupplierName,
		SupplierKey:  ledger.NormalizeCounterparty(in.SupplierName),
		Date:         uc.now().UTC(),
		TotalAmount:  total,
		PaymentType:  pt,
		PaidAmount:   paid,
		DueAmount:    due,
		CreatedBy:    userID,
	}

	var stockAfter int
	err = uc.txRunner.Run(ctx, func(
		tiles repository.TileRepository,
		_ repository.SaleRepository,
		purchases repository.PurchaseRepository,
		_ repository.CashAccountRepository,
	) error {
		tile, err := inventory.ReceiveInTx(ctx, tiles, in.TileID, in.Quantity)
		if err != nil {
			return err
		}
		purchase.Items = []entity.PurchaseItem{{
			ID:         uuid.New().String(),
			PurchaseID: purchase.ID,
			TileID:     tile.ID,
			TileName:   tile.Name,
			Quantity:   in.Quantity,
			UnitPrice:  in.UnitPrice,
		}}
		if err := purchases.Create(ctx, purchase); err != nil {
			return fmt.Errorf("create purchase: %w", err)
		}
		stockAfter = tile.StockQuantity
		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.Bump(ctx); err != nil {
			uc.log.Warn().Err(err).Str("purchase_id", purchase.ID).Msg("no se pudo invalidar la caché de reportes")
		}
	}
	resp := toPurchaseResponse(purchase)
	resp.StockAfter = &stockAfter
	return resp, nil
}

// Package billing registra ventas: valida el pago, descuenta stock y acredita la caja en una sola transacción.
package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

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

// RecordSaleUseCase crea una venta de una línea y descuenta el inventario en una sola transacción.
type RecordSaleUseCase struct {
	txRunner  inventory.TxRunner
	validator *validation.Validator
	cache     ports.ReportCache
	log       *logger.Logger
	now       func() time.Time
}

// NewRecordSaleUseCase construye el caso de uso. cache y log pueden ser nil.
func NewRecordSaleUseCase(txRunner inventory.TxRunner, v *validation.Validator, cache ports.ReportCache, log *logger.Logger) *RecordSaleUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &RecordSaleUseCase{txRunner: txRunner, validator: v, cache: cache, log: log, now: time.Now}
}

// Execute valida la petición, resuelve pagado/pendiente y dentro de la tx:
// bloquea la baldosa, comprueba stock, guarda cabecera + línea, descuenta stock y acredita la caja.
// Cualquier error deshace los cuatro efectos.
func (uc *RecordSaleUseCase) Execute(ctx context.Context, userID string, in dto.CreateSaleRequest) (*dto.TransactionResponse, error) {
	in.CustomerName = strings.TrimSpace(in.CustomerName)
	if err := uc.validator.Struct(in); err != nil {
		return nil, err
	}
	if in.UnitPrice.IsNegative() {
		return nil, domain.NewValidationError("unit_price", "debe ser mayor o igual a 0")
	}
	pt, _ := entity.ParsePaymentType(in.PaymentType)

	sale := &entity.Sale{
		ID:           uuid.New().String(),
		CustomerName: in.CustomerName,
		CustomerKey:  ledger.NormalizeCounterparty(in.CustomerName),
		Date:         uc.now().UTC(),
		PaymentType:  pt,
		CreatedBy:    userID,
	}

	var stockAfter int
	var balance decimal.Decimal
	err := uc.txRunner.Run(ctx, func(
		tiles repository.TileRepository,
		sales repository.SaleRepository,
		_ repository.PurchaseRepository,
		cash repository.CashAccountRepository,
	) error {
		tile, err := inventory.WithdrawInTx(ctx, tiles, in.TileID, in.Quantity)
		if err != nil {
			return err
		}
		total := ledger.LineTotal(in.Quantity, in.UnitPrice)
		paid, due, err := ledger.ResolvePayment(pt, total, in.PaidAmount)
		if err != nil {
			return err
		}
		sale.TotalAmount, sale.PaidAmount, sale.DueAmount = total, paid, due
		sale.Items = []entity.SaleItem{{
			ID:        uuid.New().String(),
			SaleID:    sale.ID,
			TileID:    tile.ID,
			TileName:  tile.Name,
			Quantity:  in.Quantity,
			UnitPrice: in.UnitPrice,
		}}
		if err := sales.Create(ctx, sale); err != nil {
			return fmt.Errorf("create sale: %w", err)
		}
		stockAfter = tile.StockQuantity

		balance, err = cash.Credit(ctx, paid)
		if err != nil {
			return fmt.Errorf("credit cash account: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.invalidate(ctx, sale.ID)
	resp := toSaleResponse(sale)
	resp.StockAfter = &stockAfter
	resp.CashBalance = &balance
	return resp, nil
}

func (uc *RecordSaleUseCase) invalidate(ctx context.Context, saleID string) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Bump(ctx); err != nil {
		uc.log.Warn().Err(err).Str("sale_id", saleID).Msg("no se pudo invalidar la caché de reportes")
	}
}

// Package ledger expone el libro mayor por empresa (cliente y/o proveedor) y sus exportaciones.
package ledger

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/ceramic-erp/internal/application/dto"
	"github.com/jhoicas/ceramic-erp/internal/application/ports"
	"github.com/jhoicas/ceramic-erp/internal/domain"
	domledger "github.com/jhoicas/ceramic-erp/internal/domain/ledger"
	"github.com/jhoicas/ceramic-erp/internal/domain/repository"
)

// PDFRenderer genera la representación PDF de un estado de cuenta.
type PDFRenderer interface {
	RenderStatement(ctx context.Context, st domledger.Statement) ([]byte, error)
}

// StatementUseCase estado de cuenta de una contraparte: ventas cuyo cliente coincide
// y compras cuyo proveedor coincide (comparación sin mayúsculas ni espacios extremos).
type StatementUseCase struct {
	ledgerRepo repository.LedgerRepository
	pdf        PDFRenderer
	cache      ports.ReportCache
}

// NewStatementUseCase construye el caso de uso. pdf y cache pueden ser nil.
func NewStatementUseCase(ledgerRepo repository.LedgerRepository, pdf PDFRenderer, cache ports.ReportCache) *StatementUseCase {
	return &StatementUseCase{ledgerRepo: ledgerRepo, pdf: pdf, cache: cache}
}

// Get devuelve el estado de cuenta de enterpriseName dentro de [from, to].
func (uc *StatementUseCase) Get(ctx context.Context, enterpriseName, from, to string) (*dto.StatementResponse, error) {
	name, rng, err := parseQuery(enterpriseName, from, to)
	if err != nil {
		return nil, err
	}
	if uc.cache == nil {
		st, err := uc.build(ctx, name, rng)
		if err != nil {
			return nil, err
		}
		return toStatementResponse(st), nil
	}
	fromStr, toStr := rangeKeyParts(rng)
	key, err := uc.cache.Key(ctx, "ledger", domledger.NormalizeCounterparty(name), fromStr, toStr)
	if err != nil {
		return nil, err
	}
	var out dto.StatementResponse
	loader := func(ctx context.Context) (any, error) {
		st, err := uc.build(ctx, name, rng)
		if err != nil {
			return nil, err
		}
		return toStatementResponse(st), nil
	}
	if err := uc.cache.FetchJSON(ctx, key, &out, loader); err != nil {
		return nil, err
	}
	return &out, nil
}

func (uc *StatementUseCase) build(ctx context.Context, name string, rng domledger.DateRange) (domledger.Statement, error) {
	records, err := uc.ledgerRepo.ListTransactions(ctx, domledger.TransactionFilter{
		CounterpartyKey: domledger.NormalizeCounterparty(name),
		Range:           rng,
	})
	if err != nil {
		return domledger.Statement{}, fmt.Errorf("ledger: transacciones: %w", err)
	}
	return domledger.BuildStatement(name, rng, records), nil
}

func parseQuery(enterpriseName, from, to string) (string, domledger.DateRange, error) {
	name := strings.TrimSpace(enterpriseName)
	rng, err := domledger.ParseDateRange(from, to)
	if name == "" {
		verr := domain.NewValidationError("enterpriseName", "es obligatorio")
		if ve, ok := err.(*domain.ValidationError); ok {
			for k, v := range ve.Fields {
				verr.Fields[k] = v
			}
		}
		return "", domledger.DateRange{}, verr
	}
	if err != nil {
		return "", domledger.DateRange{}, err
	}
	return name, rng, nil
}

func rangeKeyParts(rng domledger.DateRange) (string, string) {
	from, to := "all", "all"
	if rng.From != nil {
		from = rng.From.Format(domledger.DateLayout)
	}
	if rng.To != nil {
		to = rng.To.Format(domledger.DateLayout)
	}
	return from, to
}

func toStatementResponse(st domledger.Statement) *dto.StatementResponse {
	var fromStr, toStr *string
	if st.Range.From != nil {
		s := st.Range.From.Format(domledger.DateLayout)
		fromStr = &s
	}
	if st.Range.To != nil {
		s := st.Range.To.Format(domledger.DateLayout)
		toStr = &s
	}
	rows := make([]dto.StatementRowResponse, 0, len(st.Rows))
	for _, r := range st.Rows {
		rows = append(rows, dto.StatementRowResponse{
			Type:          string(r.Kind),
			ID:            r.ID,
			Date:          r.Date,
			PaymentType:   string(r.PaymentType),
			Total:         r.Total,
			Settled:       r.Settled,
			Pending:       r.Pending,
			ItemsCount:    r.ItemsCount,
			TotalQuantity: r.TotalQuantity,
		})
	}
	return &dto.StatementResponse{
		EnterpriseName:       st.EnterpriseName,
		FromDate:             fromStr,
		ToDate:               toStr,
		TotalEarned:          st.TotalEarned,
		TotalPurchaseCost:    st.TotalPurchaseCost,
		TotalReceived:        st.TotalReceived,
		TotalPaidOut:         st.TotalPaidOut,
		PendingReceivable:    st.PendingReceivable,
		PendingPayable:       st.PendingPayable,
		SalesTransactions:    st.SalesTransactions,
		PurchaseTransactions: st.PurchaseTransactions,
		Transactions:         rows,
	}
}

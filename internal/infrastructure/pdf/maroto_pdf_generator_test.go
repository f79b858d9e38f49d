package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ceramic-erp/internal/domain/entity"
	"github.com/jhoicas/ceramic-erp/internal/domain/ledger"
	"github.com/jhoicas/ceramic-erp/internal/infrastructure/pdf"
)

func TestRenderStatement_GeneraPDF(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	records := []ledger.TransactionRecord{
		{Kind: ledger.KindSale, ID: "s1", Date: from.Add(48 * time.Hour), PaymentType: entity.PaymentPartial,
			Total: decimal.NewFromInt(300), Paid: decimal.NewFromInt(200), Due: decimal.NewFromInt(100), ItemsCount: 1, TotalQuantity: 20},
		{Kind: ledger.KindPurchase, ID: "p1", Date: from.Add(time.Hour), PaymentType: entity.PaymentCash,
			Total: decimal.NewFromInt(1500000), Paid: decimal.NewFromInt(1500000), Due: decimal.Zero, ItemsCount: 1, TotalQuantity: 50},
	}
	st := ledger.BuildStatement("Acme Co", ledger.NewDateRange(&from, nil), records)

	out, err := pdf.NewMarotoPDFGenerator("ceramic-erp").RenderStatement(context.Background(), st)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "debe empezar con la firma PDF")
}

func TestRenderStatement_SinMovimientos(t *testing.T) {
	st := ledger.BuildStatement("Sin movimientos", ledger.DateRange{}, nil)

	out, err := pdf.NewMarotoPDFGenerator("ceramic-erp").RenderStatement(context.Background(), st)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

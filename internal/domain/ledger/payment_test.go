package ledger_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ceramic-erp/internal/domain"
	"github.com/jhoicas/ceramic-erp/internal/domain/entity"
	"github.com/jhoicas/ceramic-erp/internal/domain/ledger"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptr(d decimal.Decimal) *decimal.Decimal { return &d }

// ──────────────────────────────────────────────────────────────────────────────
// ResolvePayment
// ──────────────────────────────────────────────────────────────────────────────

func TestResolvePayment_Politicas(t *testing.T) {
	total := dec("300")

	cases := []struct {
		name     string
		pt       entity.PaymentType
		paid     *decimal.Decimal
		wantPaid string
		wantDue  string
	}{
		{"cash paga todo", entity.PaymentCash, nil, "300", "0"},
		{"cash ignora monto enviado", entity.PaymentCash, ptr(dec("5")), "300", "0"},
		{"credit deja todo pendiente", entity.PaymentCredit, nil, "0", "300"},
		{"partial", entity.PaymentPartial, ptr(dec("200")), "200", "100"},
		{"partial igual al total", entity.PaymentPartial, ptr(dec("300")), "300", "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			paid, due, err := ledger.ResolvePayment(tc.pt, total, tc.paid)
			require.NoError(t, err)
			assert.True(t, paid.Equal(dec(tc.wantPaid)), "paid=%s", paid)
			assert.True(t, due.Equal(dec(tc.wantDue)), "due=%s", due)
			assert.True(t, paid.Add(due).Equal(total), "paid + due debe ser igual al total")
		})
	}
}

func TestResolvePayment_ParcialInvalido(t *testing.T) {
	total := dec("100")
	for _, paid := range []*decimal.Decimal{nil, ptr(dec("0")), ptr(dec("-1")), ptr(dec("100.01"))} {
		_, _, err := ledger.ResolvePayment(entity.PaymentPartial, total, paid)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ledger.ErrInvalidPartialPayment))
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))

		var verr *domain.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Contains(t, verr.Fields, "paid_amount")
	}
}

func TestResolvePayment_TipoDesconocido(t *testing.T) {
	_, _, err := ledger.ResolvePayment(entity.PaymentType("Barter"), dec("10"), nil)
	assert.True(t, errors.Is(err, ledger.ErrUnknownPaymentType))
}

// ──────────────────────────────────────────────────────────────────────────────
// ProRate
// ──────────────────────────────────────────────────────────────────────────────

func TestProRate_RepartePagadoYPendiente(t *testing.T) {
	total, paid, due := dec("100"), dec("40"), dec("60")

	s1, p1 := ledger.ProRate(paid, due, dec("30"), total)
	s2, p2 := ledger.ProRate(paid, due, dec("70"), total)

	assert.Equal(t, "12.00", s1.StringFixed(2))
	assert.Equal(t, "28.00", s2.StringFixed(2))
	assert.Equal(t, "18.00", p1.StringFixed(2))
	assert.Equal(t, "42.00", p2.StringFixed(2))
	assert.Equal(t, "40.00", s1.Add(s2).StringFixed(2))
}

func TestProRate_TotalCero(t *testing.T) {
	s, p := ledger.ProRate(dec("10"), dec("5"), dec("3"), decimal.Zero)
	assert.True(t, s.IsZero())
	assert.True(t, p.IsZero())
}

func TestProRate_RedondeaADosDecimales(t *testing.T) {
	// 10 * 1/3 = 3.333…
	s, _ := ledger.ProRate(dec("10"), decimal.Zero, dec("1"), dec("3"))
	assert.Equal(t, "3.33", s.String())
}

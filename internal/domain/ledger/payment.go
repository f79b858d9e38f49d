// Package ledger reúne la aritmética del libro mayor: política de pago, prorrateo de líneas,
// rangos de fechas y normalización de contrapartes. No tiene dependencias de infraestructura.
package ledger

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ceramic-erp/internal/domain"
	"github.com/jhoicas/ceramic-erp/internal/domain/entity"
)

var (
	ErrUnknownPaymentType    = errors.New("tipo de pago desconocido")
	ErrInvalidPartialPayment = errors.New("monto de pago parcial inválido")
)

// ResolvePayment reparte el total entre pagado y pendiente según la forma de pago.
// Cash: todo pagado. Credit: todo pendiente. Partial: exige 0 < paid ≤ total.
// Siempre se cumple paid + due == total.
func ResolvePayment(pt entity.PaymentType, total decimal.Decimal, paidInput *decimal.Decimal) (paid, due decimal.Decimal, err error) {
	switch pt {
	case entity.PaymentCash:
		return total, decimal.Zero, nil
	case entity.PaymentCredit:
		return decimal.Zero, total, nil
	case entity.PaymentPartial:
		if paidInput == nil || !paidInput.IsPositive() || paidInput.GreaterThan(total) {
			return decimal.Zero, decimal.Zero, &domain.ValidationError{
				Fields: map[string]string{"paid_amount": ErrInvalidPartialPayment.Error()},
				Cause:  ErrInvalidPartialPayment,
			}
		}
		return *paidInput, total.Sub(*paidInput), nil
	}
	return decimal.Zero, decimal.Zero, &domain.ValidationError{
		Fields: map[string]string{"payment_type": fmt.Sprintf("%s: %q", ErrUnknownPaymentType.Error(), string(pt))},
		Cause:  ErrUnknownPaymentType,
	}
}

// LineTotal cantidad × precio unitario.
func LineTotal(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// ProRate reparte lo pagado y lo pendiente de una transacción sobre una de sus líneas,
// en proporción lineAmount/total, redondeado a 2 decimales (redondeo bancario).
// Un total cero produce proporción cero.
func ProRate(paid, due, lineAmount, total decimal.Decimal) (settled, pending decimal.Decimal) {
	if total.IsZero() {
		return decimal.Zero, decimal.Zero
	}
	settled = paid.Mul(lineAmount).Div(total).RoundBank(2)
	pending = due.Mul(lineAmount).Div(total).RoundBank(2)
	return settled, pending
}

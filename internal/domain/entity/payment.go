package entity

import "strings"

// PaymentType forma de pago de una venta o compra.
type PaymentType string

const (
	PaymentCash    PaymentType = "Cash"
	PaymentCredit  PaymentType = "Credit"
	PaymentPartial PaymentType = "Partial"
)

// ParsePaymentType acepta el nombre sin distinguir mayúsculas y devuelve la forma canónica.
func ParsePaymentType(s string) (PaymentType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cash":
		return PaymentCash, true
	case "credit":
		return PaymentCredit, true
	case "partial":
		return PaymentPartial, true
	}
	return "", false
}

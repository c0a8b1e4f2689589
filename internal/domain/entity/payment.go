package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

// PaymentMethod medio de pago registrado (no hay liquidación con pasarela).
type PaymentMethod string

const (
	PaymentMethodCreditCard PaymentMethod = "CREDIT_CARD"
	PaymentMethodCash       PaymentMethod = "CASH"
)

// PaymentStatusPending estado inicial de todo pago.
const PaymentStatusPending = "PENDING"

// ParsePaymentMethod acepta la forma del cliente ("credit-card", "cash") o la persistida.
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	m := PaymentMethod(strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_")))
	switch m {
	case PaymentMethodCreditCard, PaymentMethodCash:
		return m, true
	}
	return "", false
}

// Payment intención de pago creada en la misma transacción que el pedido. Amount == Order.Total.
type Payment struct {
	ID      string
	OrderID string
	Method  PaymentMethod
	Status  string
	Amount  decimal.Decimal
}

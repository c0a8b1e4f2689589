package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MenuItem plato o bebida de la carta. Price es el precio autoritativo del servidor:
// el checkout nunca acepta precios del cliente.
type MenuItem struct {
	ID          string
	Name        string
	Description string
	Currency    string
	Price       decimal.Decimal
	Available   bool
	Image       string // URL durable devuelta por el ImageStore
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest entrada del checkout. Los ids repetidos representan unidades repetidas
// del mismo plato; el precio nunca viene del cliente.
type CreateOrderRequest struct {
	MenuItemIDs   []string `json:"menu_item_ids" validate:"min=1,dive,required"`
	Address       string   `json:"address" validate:"required,min=6,max=500"`
	Phone         string   `json:"phone" validate:"required,min=6,max=30"`
	PaymentMethod string   `json:"payment_method" validate:"required,oneof=credit-card cash"`
}

// UpdateOrderStatusRequest entrada para cambiar el estado de un pedido.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// OrderItemResponse línea del pedido.
type OrderItemResponse struct {
	ID         string            `json:"id"`
	MenuItemID string            `json:"menu_item_id"`
	Quantity   int               `json:"quantity"`
	Subtotal   decimal.Decimal   `json:"subtotal"`
	MenuItem   *MenuItemResponse `json:"menu_item,omitempty"`
}

// PaymentResponse pago registrado del pedido.
type PaymentResponse struct {
	ID     string          `json:"id"`
	Method string          `json:"method"`
	Status string          `json:"status"`
	Amount decimal.Decimal `json:"amount"`
}

// OrderUserResponse datos del comprador en vistas de back-office.
type OrderUserResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// OrderResponse salida de un pedido. User, Items y Payment se incluyen según la vista.
type OrderResponse struct {
	ID        string              `json:"id"`
	UserID    string              `json:"user_id"`
	Status    string              `json:"status"`
	Address   string              `json:"address"`
	Phone     string              `json:"phone"`
	Total     decimal.Decimal     `json:"total"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
	User      *OrderUserResponse  `json:"user,omitempty"`
	Items     []OrderItemResponse `json:"items,omitempty"`
	Payment   *PaymentResponse    `json:"payment,omitempty"`
}

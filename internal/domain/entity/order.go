package entity

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus estado de un pedido.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusPreparing OrderStatus = "PREPARING"
	OrderStatusReady     OrderStatus = "READY"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// orderStatusTransitions grafo de transiciones legales. DELIVERED y CANCELLED no tienen salidas.
var orderStatusTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusPreparing, OrderStatusCancelled},
	OrderStatusPreparing: {OrderStatusReady, OrderStatusCancelled},
	OrderStatusReady:     {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered: nil,
	OrderStatusCancelled: nil,
}

// ParseOrderStatus convierte un string a OrderStatus.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	st := OrderStatus(s)
	if _, ok := orderStatusTransitions[st]; !ok {
		return "", false
	}
	return st, true
}

// IsTerminal indica si el estado no admite más transiciones.
func (s OrderStatus) IsTerminal() bool {
	next, ok := orderStatusTransitions[s]
	return ok && len(next) == 0
}

// CanTransitionTo indica si current → target es una arista del grafo.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	return slices.Contains(orderStatusTransitions[s], target)
}

// Order cabecera de un pedido. Total ya incluye el impuesto de servicio.
type Order struct {
	ID        string
	UserID    string
	Status    OrderStatus
	Address   string
	Phone     string
	Total     decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrderItem línea del pedido: una por plato distinto. Inmutable tras crear el pedido.
type OrderItem struct {
	ID         string
	OrderID    string
	MenuItemID string
	Quantity   int
	Subtotal   decimal.Decimal
}

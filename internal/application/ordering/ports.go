package ordering

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	"github.com/jhoicas/restaurante-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción, con repositorios atados a esa tx.
// Si fn devuelve error se hace rollback y nada queda persistido.
type TxRunner interface {
	RunOrdering(ctx context.Context, fn func(
		menuRepo repository.MenuItemRepository,
		orderRepo repository.OrderRepository,
	) error) error
}

// EventPublisher publica eventos de pedidos hacia otros servicios (cocina, notificaciones).
// La publicación ocurre después del commit y su fallo no revierte el pedido.
type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, evt OrderCreatedEvent) error
	PublishOrderStatusChanged(ctx context.Context, evt OrderStatusChangedEvent) error
}

// ReceiptGenerator genera el comprobante PDF de un pedido.
type ReceiptGenerator interface {
	GenerateOrderReceipt(ctx context.Context, order *entity.OrderDetail) ([]byte, error)
}

// OrderCreatedEvent mensaje order.created.
type OrderCreatedEvent struct {
	OrderID       string          `json:"order_id"`
	UserID        string          `json:"user_id"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"payment_method"`
	Items         []EventItem     `json:"items"`
	CreatedAt     time.Time       `json:"created_at"`
}

// EventItem línea incluida en order.created.
type EventItem struct {
	MenuItemID string `json:"menu_item_id"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
}

// OrderStatusChangedEvent mensaje order.status_changed.
type OrderStatusChangedEvent struct {
	OrderID   string    `json:"order_id"`
	OldStatus string    `json:"old_status"`
	NewStatus string    `json:"new_status"`
	ChangedBy string    `json:"changed_by"`
	ChangedAt time.Time `json:"changed_at"`
}

// NopPublisher descarta los eventos (RabbitMQ no configurado).
type NopPublisher struct{}

func (NopPublisher) PublishOrderCreated(context.Context, OrderCreatedEvent) error { return nil }
func (NopPublisher) PublishOrderStatusChanged(context.Context, OrderStatusChangedEvent) error {
	return nil
}

package repository

import (
	"context"
	"time"

	"github.com/jhoicas/restaurante-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para pedidos, sus líneas y su pago.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	CreateItem(ctx context.Context, item *entity.OrderItem) error
	CreatePayment(ctx context.Context, payment *entity.Payment) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	// UpdateStatus cambia el estado solo si el actual sigue siendo from; si otro proceso lo
	// cambió antes devuelve domain.ErrConflict.
	UpdateStatus(ctx context.Context, id string, from, to entity.OrderStatus, updatedAt time.Time) error
	// ListDetailed lista pedidos (más recientes primero) con usuario y líneas unidos.
	ListDetailed(ctx context.Context) ([]*entity.OrderDetail, error)
	// GetDetail devuelve el pedido con usuario, líneas y pago, o (nil, nil).
	GetDetail(ctx context.Context, id string) (*entity.OrderDetail, error)
}

package ordering

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/restaurante-api/internal/application/auth"
	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/application/validation"
	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	"github.com/jhoicas/restaurante-api/internal/domain/repository"
)

// CreateOrder convierte el carrito del cliente en un pedido valorado y persistido.
//
// Orden de pasos:
//  1. Gate authenticated (antes de cualquier lectura).
//  2. Validación del request (ErrValidation).
//  3. En una sola transacción: resolución de platos (ErrNotFound / ErrConflict), cálculo
//     por buckets con precios del servidor, total con impuesto y escritura de pedido,
//     líneas y pago. Cualquier error hace rollback completo.
//  4. Tras el commit, publica order.created (sin afectar el resultado).
func (uc *OrderUseCase) CreateOrder(ctx context.Context, principal *entity.Principal, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if err := auth.Authorize(principal, auth.TierAuthenticated); err != nil {
		return nil, err
	}

	in.Address = strings.TrimSpace(in.Address)
	in.Phone = strings.TrimSpace(in.Phone)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	method, ok := entity.ParsePaymentMethod(in.PaymentMethod)
	if !ok {
		return nil, fmt.Errorf("%w: método de pago no soportado", domain.ErrValidation)
	}

	now := uc.now()
	order := &entity.Order{
		ID:        uuid.New().String(),
		UserID:    principal.ID,
		Status:    entity.OrderStatusPending,
		Address:   in.Address,
		Phone:     in.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	var (
		lines   []entity.OrderLine
		payment *entity.Payment
	)

	err := uc.txRunner.RunOrdering(ctx, func(menuRepo repository.MenuItemRepository, orderRepo repository.OrderRepository) error {
		byID, err := resolveMenuItems(ctx, menuRepo, distinct(in.MenuItemIDs))
		if err != nil {
			return err
		}

		buckets := priceBuckets(in.MenuItemIDs, byID)
		_, order.Total = orderTotal(buckets)

		if err := orderRepo.Create(ctx, order); err != nil {
			return domain.Internal("crear pedido", err)
		}
		lines = make([]entity.OrderLine, 0, len(buckets))
		for _, b := range buckets {
			item := entity.OrderItem{
				ID:         uuid.New().String(),
				OrderID:    order.ID,
				MenuItemID: b.item.ID,
				Quantity:   b.quantity,
				Subtotal:   b.subtotal,
			}
			if err := orderRepo.CreateItem(ctx, &item); err != nil {
				return domain.Internal("crear línea de pedido", err)
			}
			lines = append(lines, entity.OrderLine{OrderItem: item, MenuItem: b.item})
		}

		payment = &entity.Payment{
			ID:      uuid.New().String(),
			OrderID: order.ID,
			Method:  method,
			Status:  entity.PaymentStatusPending,
			Amount:  order.Total,
		}
		if err := orderRepo.CreatePayment(ctx, payment); err != nil {
			return domain.Internal("crear pago", err)
		}
		return nil
	})
	if err != nil {
		return nil, domain.Internal("transacción de pedido", err)
	}

	uc.log.Info().
		Str("order_id", order.ID).
		Str("user_id", order.UserID).
		Str("total", order.Total.StringFixed(2)).
		Int("lines", len(lines)).
		Msg("pedido creado")

	uc.publishCreated(ctx, order, lines, payment)

	resp := toOrderResponse(order)
	resp.Items = make([]dto.OrderItemResponse, 0, len(lines))
	for _, l := range lines {
		resp.Items = append(resp.Items, toItemResponse(l.OrderItem, l.MenuItem))
	}
	resp.Payment = toPaymentResponse(payment)
	return resp, nil
}

// resolveMenuItems obtiene los platos en una sola consulta y falla si alguno no existe
// (ErrNotFound) o no está disponible (ErrConflict). No escribe nada.
func resolveMenuItems(ctx context.Context, menuRepo repository.MenuItemRepository, ids []string) (map[string]*entity.MenuItem, error) {
	items, err := menuRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, domain.Internal("obtener platos", err)
	}
	byID := make(map[string]*entity.MenuItem, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}

	var missing, unavailable []string
	for _, id := range ids {
		it, ok := byID[id]
		switch {
		case !ok:
			missing = append(missing, id)
		case !it.Available:
			unavailable = append(unavailable, it.Name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: platos inexistentes: %s", domain.ErrNotFound, strings.Join(missing, ", "))
	}
	if len(unavailable) > 0 {
		return nil, fmt.Errorf("%w: platos no disponibles: %s", domain.ErrConflict, strings.Join(unavailable, ", "))
	}
	return byID, nil
}

func (uc *OrderUseCase) publishCreated(ctx context.Context, order *entity.Order, lines []entity.OrderLine, payment *entity.Payment) {
	evt := OrderCreatedEvent{
		OrderID:       order.ID,
		UserID:        order.UserID,
		Total:         order.Total,
		PaymentMethod: string(payment.Method),
		Items:         make([]EventItem, 0, len(lines)),
		CreatedAt:     order.CreatedAt,
	}
	for _, l := range lines {
		evt.Items = append(evt.Items, EventItem{MenuItemID: l.MenuItemID, Name: l.MenuItem.Name, Quantity: l.Quantity})
	}
	if err := uc.publisher.PublishOrderCreated(ctx, evt); err != nil {
		uc.log.Warn().Err(err).Str("order_id", order.ID).Msg("publicar order.created")
	}
}

package ordering

import (
	"context"
	"fmt"

	"github.com/jhoicas/restaurante-api/internal/application/auth"
	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
)

// UpdateStatus cambia el estado de un pedido (solo ADMIN). Solo toca status y updated_at.
//
// Con StrictTransitions las transiciones fuera del grafo (p. ej. DELIVERED → PENDING) fallan
// con ErrValidation; sin él se aplica el estado pedido sin comprobar el grafo.
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, principal *entity.Principal, orderID string, in dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error) {
	if err := auth.Authorize(principal, auth.TierAdmin); err != nil {
		return nil, err
	}
	target, ok := entity.ParseOrderStatus(in.Status)
	if !ok {
		return nil, fmt.Errorf("%w: estado %q desconocido", domain.ErrValidation, in.Status)
	}

	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, domain.Internal("obtener pedido", err)
	}
	if order == nil {
		return nil, fmt.Errorf("%w: pedido %s", domain.ErrNotFound, orderID)
	}

	if uc.opts.StrictTransitions && !order.Status.CanTransitionTo(target) {
		return nil, fmt.Errorf("%w: transición no permitida %s → %s", domain.ErrValidation, order.Status, target)
	}

	previous := order.Status
	now := uc.now()
	if err := uc.orderRepo.UpdateStatus(ctx, order.ID, previous, target, now); err != nil {
		return nil, domain.Internal("actualizar estado", err)
	}
	order.Status = target
	order.UpdatedAt = now

	uc.log.Info().
		Str("order_id", order.ID).
		Str("from", string(previous)).
		Str("to", string(target)).
		Str("by", principal.ID).
		Msg("estado de pedido actualizado")

	evt := OrderStatusChangedEvent{
		OrderID:   order.ID,
		OldStatus: string(previous),
		NewStatus: string(target),
		ChangedBy: principal.ID,
		ChangedAt: now,
	}
	if err := uc.publisher.PublishOrderStatusChanged(ctx, evt); err != nil {
		uc.log.Warn().Err(err).Str("order_id", order.ID).Msg("publicar order.status_changed")
	}
	return toOrderResponse(order), nil
}

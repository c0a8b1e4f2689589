package ordering

import (
	"context"
	"fmt"

	"github.com/jhoicas/restaurante-api/internal/application/auth"
	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
)

// ListOrders lista todos los pedidos (más recientes primero) con usuario y líneas.
func (uc *OrderUseCase) ListOrders(ctx context.Context, principal *entity.Principal) ([]dto.OrderResponse, error) {
	if err := auth.Authorize(principal, auth.TierAdmin); err != nil {
		return nil, err
	}
	details, err := uc.orderRepo.ListDetailed(ctx)
	if err != nil {
		return nil, domain.Internal("listar pedidos", err)
	}
	out := make([]dto.OrderResponse, 0, len(details))
	for _, d := range details {
		resp := toDetailResponse(d)
		// El listado no expone el pago; solo el detalle.
		resp.Payment = nil
		out = append(out, *resp)
	}
	return out, nil
}

// GetOrderDetails devuelve el pedido con usuario, líneas y pago, o (nil, nil) si no existe.
func (uc *OrderUseCase) GetOrderDetails(ctx context.Context, principal *entity.Principal, orderID string) (*dto.OrderResponse, error) {
	if err := auth.Authorize(principal, auth.TierAdmin); err != nil {
		return nil, err
	}
	d, err := uc.orderRepo.GetDetail(ctx, orderID)
	if err != nil {
		return nil, domain.Internal("obtener pedido", err)
	}
	if d == nil {
		return nil, nil
	}
	return toDetailResponse(d), nil
}

// Receipt genera el comprobante PDF del pedido. Devuelve los bytes y el nombre de archivo.
func (uc *OrderUseCase) Receipt(ctx context.Context, principal *entity.Principal, orderID string) ([]byte, string, error) {
	if err := auth.Authorize(principal, auth.TierAdmin); err != nil {
		return nil, "", err
	}
	if uc.receipts == nil {
		return nil, "", fmt.Errorf("%w: generador de comprobantes no configurado", domain.ErrInternal)
	}
	d, err := uc.orderRepo.GetDetail(ctx, orderID)
	if err != nil {
		return nil, "", domain.Internal("obtener pedido", err)
	}
	if d == nil {
		return nil, "", fmt.Errorf("%w: pedido %s", domain.ErrNotFound, orderID)
	}
	pdf, err := uc.receipts.GenerateOrderReceipt(ctx, d)
	if err != nil {
		return nil, "", domain.Internal("generar comprobante", err)
	}
	return pdf, fmt.Sprintf("pedido-%s.pdf", d.ID), nil
}

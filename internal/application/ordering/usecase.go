package ordering

import (
	"time"

	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	"github.com/jhoicas/restaurante-api/internal/domain/repository"
	"github.com/jhoicas/restaurante-api/pkg/logger"
)

// Options reglas configurables del motor de pedidos.
type Options struct {
	// StrictTransitions rechaza cambios de estado fuera del grafo con ErrValidation.
	StrictTransitions bool
}

// OrderUseCase motor de pedidos: checkout transaccional, máquina de estados y vistas de
// back-office. Cada operación recibe el principal explícitamente y pasa por el gate.
type OrderUseCase struct {
	txRunner  TxRunner
	orderRepo repository.OrderRepository
	publisher EventPublisher
	receipts  ReceiptGenerator
	log       *logger.Logger
	opts      Options
	now       func() time.Time
}

// NewOrderUseCase construye el caso de uso. publisher y receipts pueden ser nil.
func NewOrderUseCase(
	txRunner TxRunner,
	orderRepo repository.OrderRepository,
	publisher EventPublisher,
	receipts ReceiptGenerator,
	log *logger.Logger,
	opts Options,
) *OrderUseCase {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &OrderUseCase{
		txRunner:  txRunner,
		orderRepo: orderRepo,
		publisher: publisher,
		receipts:  receipts,
		log:       log.Component("ordering"),
		opts:      opts,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	return &dto.OrderResponse{
		ID:        o.ID,
		UserID:    o.UserID,
		Status:    string(o.Status),
		Address:   o.Address,
		Phone:     o.Phone,
		Total:     o.Total,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func toDetailResponse(d *entity.OrderDetail) *dto.OrderResponse {
	resp := toOrderResponse(&d.Order)
	resp.User = &dto.OrderUserResponse{Name: d.Customer.Name, Email: d.Customer.Email}
	resp.Items = make([]dto.OrderItemResponse, 0, len(d.Items))
	for _, l := range d.Items {
		resp.Items = append(resp.Items, toItemResponse(l.OrderItem, l.MenuItem))
	}
	if d.Payment != nil {
		resp.Payment = toPaymentResponse(d.Payment)
	}
	return resp
}

func toItemResponse(it entity.OrderItem, mi *entity.MenuItem) dto.OrderItemResponse {
	out := dto.OrderItemResponse{
		ID:         it.ID,
		MenuItemID: it.MenuItemID,
		Quantity:   it.Quantity,
		Subtotal:   it.Subtotal,
	}
	if mi != nil {
		out.MenuItem = &dto.MenuItemResponse{
			ID:          mi.ID,
			Name:        mi.Name,
			Description: mi.Description,
			Currency:    mi.Currency,
			Price:       mi.Price,
			Available:   mi.Available,
			Image:       mi.Image,
			CreatedAt:   mi.CreatedAt,
			UpdatedAt:   mi.UpdatedAt,
		}
	}
	return out
}

func toPaymentResponse(p *entity.Payment) *dto.PaymentResponse {
	return &dto.PaymentResponse{
		ID:     p.ID,
		Method: string(p.Method),
		Status: p.Status,
		Amount: p.Amount,
	}
}

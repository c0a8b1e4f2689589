package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/application/ordering"
	"github.com/jhoicas/restaurante-api/internal/application/ports"
	"github.com/jhoicas/restaurante-api/internal/application/usecase"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	"github.com/jhoicas/restaurante-api/internal/domain/repository"
	apphttp "github.com/jhoicas/restaurante-api/internal/interfaces/http"
	"github.com/jhoicas/restaurante-api/pkg/logger"
)

// memOrders guarda solo lo necesario para el checkout; las vistas devuelven vacío.
type memOrders struct {
	orders   map[string]*entity.Order
	items    []entity.OrderItem
	payments []entity.Payment
}

func (m *memOrders) Create(_ context.Context, o *entity.Order) error {
	cp := *o
	m.orders[o.ID] = &cp
	return nil
}

func (m *memOrders) CreateItem(_ context.Context, it *entity.OrderItem) error {
	m.items = append(m.items, *it)
	return nil
}

func (m *memOrders) CreatePayment(_ context.Context, p *entity.Payment) error {
	m.payments = append(m.payments, *p)
	return nil
}

func (m *memOrders) GetByID(_ context.Context, id string) (*entity.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (m *memOrders) UpdateStatus(_ context.Context, id string, _, to entity.OrderStatus, at time.Time) error {
	m.orders[id].Status = to
	m.orders[id].UpdatedAt = at
	return nil
}

func (m *memOrders) ListDetailed(context.Context) ([]*entity.OrderDetail, error) { return nil, nil }

func (m *memOrders) GetDetail(context.Context, string) (*entity.OrderDetail, error) {
	return nil, nil
}

// directTx ejecuta fn sin transacción real.
type directTx struct {
	menu   repository.MenuItemRepository
	orders repository.OrderRepository
}

func (d directTx) RunOrdering(_ context.Context, fn func(repository.MenuItemRepository, repository.OrderRepository) error) error {
	return fn(d.menu, d.orders)
}

func newOrderApp(t *testing.T) (*fiber.App, *memOrders) {
	t.Helper()
	menu := seededMenu()
	orders := &memOrders{orders: map[string]*entity.Order{}}
	orderUC := ordering.NewOrderUseCase(directTx{menu: menu, orders: orders}, orders, nil, nil, logger.Nop(),
		ordering.Options{StrictTransitions: true})

	metrics := apphttp.NewMetrics()
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		MenuUC:    usecase.NewMenuUseCase(menu, noImages{}, ports.NopMenuCache{}, logger.Nop()),
		OrderUC:   orderUC,
		Metrics:   metrics,
		JWTSecret: testJWTSecret,
		Log:       logger.Nop(),
	})
	return app, orders
}

func TestOrderHandler_CheckoutCliente(t *testing.T) {
	app, orders := newOrderApp(t)

	resp, body := call(t, app, http.MethodPost, "/api/orders", tokenForRole(t, "CLIENT"),
		`{"menu_item_ids":["dish-1","dish-1"],"address":"Calle 10 # 5-20","phone":"3001234567","payment_method":"credit-card"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)

	var out dto.OrderResponse
	require.NoError(t, json.Unmarshal([]byte(body), &out))
	assert.Equal(t, testUserID, out.UserID)
	assert.Equal(t, "PENDING", out.Status)
	assert.Equal(t, "70400", out.Total.String())
	require.Len(t, out.Items, 1)
	assert.Equal(t, 2, out.Items[0].Quantity)
	require.NotNil(t, out.Payment)
	assert.Equal(t, "CREDIT_CARD", out.Payment.Method)

	assert.Len(t, orders.orders, 1)
	assert.Len(t, orders.payments, 1)

	_, metrics := call(t, app, http.MethodGet, "/metrics", "", "")
	assert.Contains(t, metrics, `orders_created_total{payment_method="CREDIT_CARD"} 1`)
}

func TestOrderHandler_CheckoutPlatoInexistente(t *testing.T) {
	app, orders := newOrderApp(t)

	resp, body := call(t, app, http.MethodPost, "/api/orders", tokenForRole(t, "CLIENT"),
		`{"menu_item_ids":["no-existe"],"address":"Calle 10 # 5-20","phone":"3001234567","payment_method":"cash"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "NOT_FOUND")
	assert.Empty(t, orders.orders)
}

func TestOrderHandler_CambioDeEstado(t *testing.T) {
	app, orders := newOrderApp(t)
	now := time.Now().UTC()
	orders.orders["o-1"] = &entity.Order{ID: "o-1", UserID: testUserID, Status: entity.OrderStatusDelivered, CreatedAt: now, UpdatedAt: now}

	resp, body := call(t, app, http.MethodPatch, "/api/admin/orders/o-1/status", tokenForRole(t, "ADMIN"), `{"status":"PENDING"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, body)

	resp, _ = call(t, app, http.MethodPatch, "/api/admin/orders/no-existe/status", tokenForRole(t, "ADMIN"), `{"status":"READY"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestOrderHandler_DetalleInexistente(t *testing.T) {
	app, _ := newOrderApp(t)

	resp, body := call(t, app, http.MethodGet, "/api/admin/orders/no-existe", tokenForRole(t, "ADMIN"), "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "null", body)
}

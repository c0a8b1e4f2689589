package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/application/ports"
	"github.com/jhoicas/restaurante-api/internal/application/usecase"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	apphttp "github.com/jhoicas/restaurante-api/internal/interfaces/http"
	"github.com/jhoicas/restaurante-api/pkg/logger"
)

// memMenu repositorio de carta en memoria. failList fuerza un error de almacenamiento.
type memMenu struct {
	items    map[string]*entity.MenuItem
	failList bool
}

func (m *memMenu) Create(_ context.Context, it *entity.MenuItem) error {
	m.items[it.ID] = it
	return nil
}

func (m *memMenu) GetByID(_ context.Context, id string) (*entity.MenuItem, error) {
	it, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (m *memMenu) GetByIDs(ctx context.Context, ids []string) ([]*entity.MenuItem, error) {
	var out []*entity.MenuItem
	for _, id := range ids {
		if it, _ := m.GetByID(ctx, id); it != nil {
			out = append(out, it)
		}
	}
	return out, nil
}

func (m *memMenu) ListPublic(context.Context) ([]*entity.MenuItem, error) {
	if m.failList {
		return nil, errors.New("conexión perdida")
	}
	var out []*entity.MenuItem
	for _, it := range m.items {
		out = append(out, it)
	}
	return out, nil
}

func (m *memMenu) ListAll(ctx context.Context) ([]*entity.MenuItem, error) {
	return m.ListPublic(ctx)
}

func (m *memMenu) Update(_ context.Context, it *entity.MenuItem) error {
	m.items[it.ID] = it
	return nil
}

func (m *memMenu) Delete(_ context.Context, id string) error {
	delete(m.items, id)
	return nil
}

type noImages struct{}

func (noImages) Upload(context.Context, []byte, string) (string, error) {
	return "http://localhost/images/x.png", nil
}
func (noImages) Delete(context.Context, string) error { return nil }

func newRouterApp(t *testing.T, repo *memMenu) *fiber.App {
	t.Helper()
	menuUC := usecase.NewMenuUseCase(repo, noImages{}, ports.NopMenuCache{}, logger.Nop())
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		MenuUC:    menuUC,
		Metrics:   apphttp.NewMetrics(),
		JWTSecret: testJWTSecret,
		Log:       logger.Nop(),
	})
	return app
}

func seededMenu() *memMenu {
	now := time.Now().UTC()
	return &memMenu{items: map[string]*entity.MenuItem{
		"dish-1": {
			ID: "dish-1", Name: "Bandeja paisa", Currency: "COP",
			Price: decimal.RequireFromString("32000"), Available: true,
			CreatedAt: now, UpdatedAt: now,
		},
	}}
}

func call(t *testing.T, app *fiber.App, method, path, authHeader, body string) (*http.Response, string) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(raw)
}

func TestRouter_Health(t *testing.T) {
	resp, body := call(t, newRouterApp(t, seededMenu()), http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "ok")
}

func TestRouter_CartaPublica(t *testing.T) {
	resp, body := call(t, newRouterApp(t, seededMenu()), http.MethodGet, "/api/menu", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var items []dto.MenuItemResponse
	require.NoError(t, json.Unmarshal([]byte(body), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Bandeja paisa", items[0].Name)
}

func TestRouter_DetallePlatoInexistenteDevuelveNull(t *testing.T) {
	resp, body := call(t, newRouterApp(t, seededMenu()), http.MethodGet, "/api/menu/no-existe", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "null", body)
}

func TestRouter_CheckoutSinTokenRetorna401(t *testing.T) {
	resp, body := call(t, newRouterApp(t, seededMenu()), http.MethodPost, "/api/orders", "",
		`{"menu_item_ids":["dish-1"],"address":"Calle 10 # 5-20","phone":"3001234567","payment_method":"cash"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "UNAUTHENTICATED")
}

func TestRouter_RutasAdmin(t *testing.T) {
	app := newRouterApp(t, seededMenu())
	paths := []struct{ method, path string }{
		{http.MethodGet, "/api/admin/menu"},
		{http.MethodDelete, "/api/admin/menu/dish-1"},
		{http.MethodGet, "/api/admin/orders"},
		{http.MethodPatch, "/api/admin/orders/o-1/status"},
		{http.MethodGet, "/api/admin/users"},
	}
	for _, p := range paths {
		resp, _ := call(t, app, p.method, p.path, "", "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "%s %s sin token", p.method, p.path)

		resp, _ = call(t, app, p.method, p.path, tokenForRole(t, "CLIENT"), "")
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, "%s %s como CLIENT", p.method, p.path)
	}
}

func TestRouter_AdminListaCarta(t *testing.T) {
	resp, _ := call(t, newRouterApp(t, seededMenu()), http.MethodGet, "/api/admin/menu", tokenForRole(t, "ADMIN"), "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_CuerpoInvalidoRetorna400(t *testing.T) {
	resp, body := call(t, newRouterApp(t, seededMenu()), http.MethodPost, "/api/admin/menu", tokenForRole(t, "ADMIN"), `{"name":`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, `"code":"VALIDATION"`)
}

func TestRouter_ValidacionRetorna400(t *testing.T) {
	resp, body := call(t, newRouterApp(t, seededMenu()), http.MethodPost, "/api/admin/menu", tokenForRole(t, "ADMIN"),
		`{"name":"","currency":"COP","price":"1000","image":""}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, "VALIDATION")
}

func TestRouter_ActualizarPlatoInexistenteRetorna404(t *testing.T) {
	resp, body := call(t, newRouterApp(t, seededMenu()), http.MethodPut, "/api/admin/menu/no-existe", tokenForRole(t, "ADMIN"),
		`{"name":"Ajiaco","currency":"COP","price":"18000"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "NOT_FOUND")
}

func TestRouter_TogglePlato(t *testing.T) {
	repo := seededMenu()
	resp, body := call(t, newRouterApp(t, repo), http.MethodPatch, "/api/admin/menu/dish-1/availability", tokenForRole(t, "ADMIN"),
		`{"available":false}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.MenuItemResponse
	require.NoError(t, json.Unmarshal([]byte(body), &out))
	assert.False(t, out.Available)
	assert.False(t, repo.items["dish-1"].Available)
}

func TestRouter_ErrorInternoNoFiltraDetalle(t *testing.T) {
	repo := seededMenu()
	repo.failList = true
	resp, body := call(t, newRouterApp(t, repo), http.MethodGet, "/api/menu", "", "")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, body, "INTERNAL")
	assert.NotContains(t, body, "conexión perdida")
}

func TestRouter_Metrics(t *testing.T) {
	metrics := apphttp.NewMetrics()
	app := fiber.New()
	app.Use(metrics.Middleware())
	apphttp.Router(app, apphttp.RouterDeps{
		MenuUC:    usecase.NewMenuUseCase(seededMenu(), noImages{}, ports.NopMenuCache{}, logger.Nop()),
		Metrics:   metrics,
		JWTSecret: testJWTSecret,
		Log:       logger.Nop(),
	})
	call(t, app, http.MethodGet, "/api/menu", "", "")

	resp, body := call(t, app, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "http_requests_total")
	assert.Contains(t, body, "go_goroutines")
}

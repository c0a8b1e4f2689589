package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/restaurante-api/internal/application/auth"
	apphttp "github.com/jhoicas/restaurante-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/restaurante-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "restaurante-api-test"
	testExpMin    = 60
)

// buildTestApp monta ResolvePrincipal + RequireTier delante de un handler que devuelve el
// principal resuelto.
func buildTestApp(tier auth.Tier) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.ResolvePrincipal(testJWTSecret),
		apphttp.RequireTier(tier),
		func(c *fiber.Ctx) error {
			p := apphttp.GetPrincipal(c)
			if p == nil {
				return c.JSON(fiber.Map{"anonymous": true})
			}
			return c.JSON(fiber.Map{"user_id": p.ID, "role": string(p.Role)})
		},
	)
	return app
}

func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, role, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestRequireTier_AdminAccedeRutaAdmin(t *testing.T) {
	resp := doRequest(t, buildTestApp(auth.TierAdmin), tokenForRole(t, "ADMIN"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, "ADMIN", body["role"])
}

func TestRequireTier_ClienteYEmpleadoBloqueadosEnRutaAdmin(t *testing.T) {
	for _, role := range []string{"CLIENT", "EMPLOYEE"} {
		t.Run(role, func(t *testing.T) {
			resp := doRequest(t, buildTestApp(auth.TierAdmin), tokenForRole(t, role))
			defer resp.Body.Close()

			assert.Equal(t, http.StatusForbidden, resp.StatusCode)
			body, _ := io.ReadAll(resp.Body)
			assert.Contains(t, string(body), "FORBIDDEN")
		})
	}
}

func TestRequireTier_SinToken_Retorna401(t *testing.T) {
	for _, tier := range []auth.Tier{auth.TierAuthenticated, auth.TierAdmin} {
		t.Run(tier.String(), func(t *testing.T) {
			resp := doRequest(t, buildTestApp(tier), "")
			defer resp.Body.Close()

			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			body, _ := io.ReadAll(resp.Body)
			assert.Contains(t, string(body), "UNAUTHENTICATED")
		})
	}
}

func TestRequireTier_ClienteAccedeRutaAutenticada(t *testing.T) {
	resp := doRequest(t, buildTestApp(auth.TierAuthenticated), tokenForRole(t, "CLIENT"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestResolvePrincipal_SinHeaderEsAnonimo(t *testing.T) {
	resp := doRequest(t, buildTestApp(auth.TierPublic), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]bool
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body["anonymous"])
}

func TestResolvePrincipal_TokenInvalido_Retorna401(t *testing.T) {
	cases := map[string]string{
		"firma":        "Bearer token.invalido.aqui",
		"formato":      "Token abc",
		"vacío":        "Bearer ",
		"otro secreto": "",
	}
	other, err := pkgjwt.Generate("otro-secreto", testUserID, "ADMIN", testIssuer, testExpMin)
	require.NoError(t, err)
	cases["otro secreto"] = "Bearer " + other

	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			// Incluso en rutas públicas un token presente y roto se rechaza.
			resp := doRequest(t, buildTestApp(auth.TierPublic), header)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			body, _ := io.ReadAll(resp.Body)
			assert.Contains(t, string(body), `"code":"UNAUTHENTICATED"`)
		})
	}
}

func TestResolvePrincipal_RolDesconocido_Retorna401(t *testing.T) {
	resp := doRequest(t, buildTestApp(auth.TierAuthenticated), tokenForRole(t, "bodeguero"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `"code":"UNAUTHENTICATED"`)
}

func TestResolvePrincipal_TokenExpirado_Retorna401(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "ADMIN", testIssuer, -5)
	require.NoError(t, err)

	resp := doRequest(t, buildTestApp(auth.TierAdmin), "Bearer "+tok)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

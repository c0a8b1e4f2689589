package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/restaurante-api/internal/application/auth"
	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	"github.com/jhoicas/restaurante-api/pkg/jwt"
)

// LocalPrincipal key de Fiber Locals con el *entity.Principal de la petición.
const LocalPrincipal = "principal"

// ResolvePrincipal valida el Bearer Token JWT si viene y deja el principal en c.Locals.
// Sin header la petición sigue como anónima; un token mal formado o inválido responde 401.
func ResolvePrincipal(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Next()
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return unauthenticated(c, "formato: Bearer <token>")
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return unauthenticated(c, "token vacío")
		}
		userID, roleClaim, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return unauthenticated(c, "token inválido o expirado")
		}
		role, ok := entity.ParseRole(roleClaim)
		if userID == "" || !ok {
			return unauthenticated(c, "token sin usuario o rol válido")
		}
		c.Locals(LocalPrincipal, &entity.Principal{ID: userID, Role: role})
		return c.Next()
	}
}

func unauthenticated(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: string(domain.KindUnauthenticated), Message: msg})
}

// RequireTier corta la petición antes del handler si el principal no alcanza el nivel.
// Debe usarse DESPUÉS de ResolvePrincipal.
func RequireTier(tier auth.Tier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := auth.Authorize(GetPrincipal(c), tier); err != nil {
			return c.Status(statusFor(domain.KindOf(err))).JSON(dto.ErrorResponse{
				Code:    string(domain.KindOf(err)),
				Message: err.Error(),
			})
		}
		return c.Next()
	}
}

// GetPrincipal devuelve el principal de la petición o nil si es anónima.
func GetPrincipal(c *fiber.Ctx) *entity.Principal {
	p, _ := c.Locals(LocalPrincipal).(*entity.Principal)
	return p
}

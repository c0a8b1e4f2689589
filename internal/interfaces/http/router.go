package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/restaurante-api/internal/application/auth"
	"github.com/jhoicas/restaurante-api/internal/application/ordering"
	"github.com/jhoicas/restaurante-api/internal/application/usecase"
	"github.com/jhoicas/restaurante-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	MenuUC    *usecase.MenuUseCase
	OrderUC   *ordering.OrderUseCase
	AuthUC    *auth.AuthUseCase
	UserUC    *usecase.UserUseCase
	Metrics   *Metrics // opcional
	JWTSecret string
	ImagesDir string // vacío = no se sirven imágenes locales
	Log       *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	if deps.Metrics != nil {
		app.Get("/metrics", deps.Metrics.Handler())
	}
	if deps.ImagesDir != "" {
		app.Static("/images", deps.ImagesDir)
	}

	// Todas las rutas /api resuelven el principal; sin token la petición es anónima.
	api := app.Group("/api", ResolvePrincipal(deps.JWTSecret))

	menuHandler := NewMenuHandler(deps.MenuUC, deps.Log)
	orderHandler := NewOrderHandler(deps.OrderUC, deps.Metrics, deps.Log)
	authHandler := NewAuthHandler(deps.AuthUC, deps.Log)
	userHandler := NewUserHandler(deps.UserUC, deps.Log)

	// Carta (público)
	menu := api.Group("/menu")
	menu.Get("/", menuHandler.ListPublic)
	menu.Get("/:id", menuHandler.GetDetails)

	// Auth (público)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Checkout (cualquier usuario autenticado)
	api.Post("/orders", RequireTier(auth.TierAuthenticated), orderHandler.Create)

	// Back-office (solo ADMIN)
	admin := api.Group("/admin", RequireTier(auth.TierAdmin))

	adminMenu := admin.Group("/menu")
	adminMenu.Get("/", menuHandler.ListAll)
	adminMenu.Post("/", menuHandler.Register)
	adminMenu.Put("/:id", menuHandler.Update)
	adminMenu.Patch("/:id/availability", menuHandler.ToggleAvailability)
	adminMenu.Delete("/:id", menuHandler.Delete)

	orders := admin.Group("/orders")
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetDetails)
	orders.Get("/:id/receipt", orderHandler.Receipt)
	orders.Patch("/:id/status", orderHandler.UpdateStatus)

	users := admin.Group("/users")
	users.Get("/", userHandler.List)
	users.Patch("/:id/role", userHandler.ChangeRole)
	users.Delete("/:id", userHandler.Delete)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/application/usecase"
	"github.com/jhoicas/restaurante-api/pkg/logger"
)

// MenuHandler maneja las peticiones HTTP de la carta.
type MenuHandler struct {
	uc  *usecase.MenuUseCase
	log *logger.Logger
}

// NewMenuHandler construye el handler.
func NewMenuHandler(uc *usecase.MenuUseCase, log *logger.Logger) *MenuHandler {
	return &MenuHandler{uc: uc, log: log}
}

// ListPublic godoc
// @Summary      Carta pública
// @Tags         menu
// @Produce      json
// @Success      200  {array}   dto.MenuItemResponse
// @Router       /api/menu [get]
func (h *MenuHandler) ListPublic(c *fiber.Ctx) error {
	out, err := h.uc.ListPublic(c.UserContext(), GetPrincipal(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetDetails godoc
// @Summary      Detalle de un plato (null si no existe)
// @Tags         menu
// @Produce      json
// @Param        id   path  string  true  "ID del plato"
// @Success      200  {object}  dto.MenuItemResponse
// @Router       /api/menu/{id} [get]
func (h *MenuHandler) GetDetails(c *fiber.Ctx) error {
	out, err := h.uc.GetDetails(c.UserContext(), GetPrincipal(c), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	if out == nil {
		return c.JSON(nil)
	}
	return c.JSON(out)
}

// ListAll godoc
// @Summary      Listar todos los platos (administración)
// @Tags         admin-menu
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.MenuItemResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/menu [get]
func (h *MenuHandler) ListAll(c *fiber.Ctx) error {
	out, err := h.uc.ListAll(c.UserContext(), GetPrincipal(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Register godoc
// @Summary      Registrar plato
// @Tags         admin-menu
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMenuItemRequest  true  "Datos del plato (image como data URI)"
// @Success      201   {object}  dto.MenuItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/admin/menu [post]
func (h *MenuHandler) Register(c *fiber.Ctx) error {
	var in dto.CreateMenuItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Register(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar plato
// @Tags         admin-menu
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del plato"
// @Param        body  body  dto.UpdateMenuItemRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.MenuItemResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/menu/{id} [put]
func (h *MenuHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateMenuItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetPrincipal(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// ToggleAvailability godoc
// @Summary      Marcar plato disponible / agotado
// @Tags         admin-menu
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del plato"
// @Param        body  body  dto.ToggleAvailabilityRequest  true  "Disponibilidad"
// @Success      200   {object}  dto.MenuItemResponse
// @Router       /api/admin/menu/{id}/availability [patch]
func (h *MenuHandler) ToggleAvailability(c *fiber.Ctx) error {
	var in dto.ToggleAvailabilityRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.ToggleAvailability(c.UserContext(), GetPrincipal(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar plato (devuelve el plato eliminado)
// @Tags         admin-menu
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del plato"
// @Success      200  {object}  dto.MenuItemResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/admin/menu/{id} [delete]
func (h *MenuHandler) Delete(c *fiber.Ctx) error {
	out, err := h.uc.Delete(c.UserContext(), GetPrincipal(c), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

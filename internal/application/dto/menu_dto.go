package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMenuItemRequest entrada para registrar un plato. Image es un data URI en base64.
type CreateMenuItemRequest struct {
	Name        string          `json:"name" validate:"required,max=200"`
	Description string          `json:"description" validate:"max=2000"`
	Currency    string          `json:"currency" validate:"required"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image" validate:"required"`
}

// UpdateMenuItemRequest entrada para actualizar un plato. Image vacío conserva la actual.
type UpdateMenuItemRequest struct {
	Name        string          `json:"name" validate:"required,max=200"`
	Description string          `json:"description" validate:"max=2000"`
	Currency    string          `json:"currency" validate:"required"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
}

// ToggleAvailabilityRequest entrada para marcar un plato como disponible o agotado.
type ToggleAvailabilityRequest struct {
	Available bool `json:"available"`
}

// MenuItemResponse salida de un plato.
type MenuItemResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Currency    string          `json:"currency"`
	Price       decimal.Decimal `json:"price"`
	Available   bool            `json:"available"`
	Image       string          `json:"image,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

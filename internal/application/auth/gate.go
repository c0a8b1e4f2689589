package auth

import (
	"fmt"

	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
)

// Tier privilegio mínimo que exige una operación.
type Tier int

const (
	TierPublic Tier = iota
	TierAuthenticated
	TierAdmin
)

func (t Tier) String() string {
	switch t {
	case TierPublic:
		return "public"
	case TierAuthenticated:
		return "authenticated"
	case TierAdmin:
		return "admin"
	}
	return fmt.Sprintf("tier(%d)", int(t))
}

// Authorize decide si el principal cumple el tier. Es una función pura: no lee estado ni
// escribe nada, y debe llamarse antes de cualquier lectura de la operación protegida.
//
//   - TierPublic: siempre pasa (principal opcional).
//   - TierAuthenticated: ErrUnauthenticated si no hay principal.
//   - TierAdmin: ErrUnauthenticated si no hay principal; ErrForbidden si el rol no es ADMIN.
//
// EMPLOYEE no tiene permisos adicionales sobre CLIENT.
func Authorize(principal *entity.Principal, tier Tier) error {
	switch tier {
	case TierPublic:
		return nil
	case TierAuthenticated:
		if principal == nil || principal.ID == "" {
			return fmt.Errorf("%w: se requiere iniciar sesión", domain.ErrUnauthenticated)
		}
		return nil
	case TierAdmin:
		if principal == nil || principal.ID == "" {
			return fmt.Errorf("%w: se requiere iniciar sesión", domain.ErrUnauthenticated)
		}
		if principal.Role != entity.RoleAdmin {
			return fmt.Errorf("%w: se requiere rol ADMIN", domain.ErrForbidden)
		}
		return nil
	}
	// Tier desconocido: se niega por defecto.
	return fmt.Errorf("%w: tier %s no soportado", domain.ErrForbidden, tier)
}

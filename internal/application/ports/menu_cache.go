package ports

import (
	"context"

	"github.com/jhoicas/restaurante-api/internal/application/dto"
)

// MenuCache caché de lectura de la carta pública. Un fallo de caché nunca debe romper
// la lectura: el caso de uso cae a la base de datos.
//
// Las entradas se guardan por versión: InvalidatePublicMenu avanza la versión y una carta
// leída de la base antes de esa invalidación queda guardada bajo una versión que ya nadie
// consulta.
type MenuCache interface {
	// GetPublicMenu devuelve la carta cacheada y la versión vigente; ok=false si no hay entrada
	// para esa versión.
	GetPublicMenu(ctx context.Context) (items []dto.MenuItemResponse, version int64, ok bool, err error)
	// SetPublicMenu guarda items bajo la versión devuelta por GetPublicMenu antes de leer la base.
	SetPublicMenu(ctx context.Context, version int64, items []dto.MenuItemResponse) error
	// InvalidatePublicMenu se llama tras cualquier escritura de administración.
	InvalidatePublicMenu(ctx context.Context) error
}

// NopMenuCache caché deshabilitada (Redis no configurado).
type NopMenuCache struct{}

func (NopMenuCache) GetPublicMenu(context.Context) ([]dto.MenuItemResponse, int64, bool, error) {
	return nil, 0, false, nil
}
func (NopMenuCache) SetPublicMenu(context.Context, int64, []dto.MenuItemResponse) error { return nil }
func (NopMenuCache) InvalidatePublicMenu(context.Context) error                         { return nil }

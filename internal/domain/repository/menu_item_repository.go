package repository

import (
	"context"

	"github.com/jhoicas/restaurante-api/internal/domain/entity"
)

// MenuItemRepository define el puerto de persistencia para la carta (DIP).
// Las lecturas devuelven (nil, nil) cuando el plato no existe.
type MenuItemRepository interface {
	Create(ctx context.Context, item *entity.MenuItem) error
	GetByID(ctx context.Context, id string) (*entity.MenuItem, error)
	// GetByIDs obtiene en una sola consulta los platos pedidos. Dentro de una transacción
	// bloquea las filas en modo compartido hasta el commit.
	GetByIDs(ctx context.Context, ids []string) ([]*entity.MenuItem, error)
	// ListPublic ordena disponibles primero y luego por nombre.
	ListPublic(ctx context.Context) ([]*entity.MenuItem, error)
	// ListAll ordena por fecha de creación descendente (vista de administración).
	ListAll(ctx context.Context) ([]*entity.MenuItem, error)
	Update(ctx context.Context, item *entity.MenuItem) error
	Delete(ctx context.Context, id string) error
}

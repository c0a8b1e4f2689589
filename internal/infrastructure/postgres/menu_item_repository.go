package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	"github.com/jhoicas/restaurante-api/internal/domain/repository"
)

var _ repository.MenuItemRepository = (*MenuItemRepo)(nil)

const menuItemColumns = `id, name, COALESCE(description, ''), currency, price, available, COALESCE(image, ''), created_at, updated_at`

// MenuItemRepo implementación del puerto MenuItemRepository sobre PostgreSQL (usable con pool o tx).
type MenuItemRepo struct {
	q        Querier
	forShare bool
}

// NewMenuItemRepository construye el adaptador de persistencia para la carta. Pasar pool o tx (Querier).
func NewMenuItemRepository(q Querier) *MenuItemRepo {
	return &MenuItemRepo{q: q}
}

// lockingShared devuelve una copia cuyo GetByIDs bloquea las filas con FOR SHARE. Solo
// tiene sentido dentro de una tx: un cambio de disponibilidad concurrente espera al commit.
func (r *MenuItemRepo) lockingShared() *MenuItemRepo {
	return &MenuItemRepo{q: r.q, forShare: true}
}

// Create persiste un nuevo plato.
func (r *MenuItemRepo) Create(ctx context.Context, item *entity.MenuItem) error {
	query := `
		INSERT INTO menu_items (id, name, description, currency, price, available, image, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, NULLIF($7, ''), $8, $9)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.Name, item.Description, item.Currency, item.Price, item.Available, item.Image,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return conflictOr(err, "insert menu item", "ya existe un plato con ese identificador")
	}
	return nil
}

// GetByID obtiene un plato por ID.
func (r *MenuItemRepo) GetByID(ctx context.Context, id string) (*entity.MenuItem, error) {
	query := `SELECT ` + menuItemColumns + ` FROM menu_items WHERE id = $1`
	item, err := scanMenuItem(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get menu item: %w", err)
	}
	return item, nil
}

// GetByIDs obtiene los platos cuyos IDs están en ids, en una sola consulta.
func (r *MenuItemRepo) GetByIDs(ctx context.Context, ids []string) ([]*entity.MenuItem, error) {
	query := `SELECT ` + menuItemColumns + ` FROM menu_items WHERE id = ANY($1)`
	if r.forShare {
		query += ` FOR SHARE`
	}
	return r.list(ctx, "get menu items by ids", query, ids)
}

// ListPublic lista la carta: disponibles primero, luego por nombre.
func (r *MenuItemRepo) ListPublic(ctx context.Context) ([]*entity.MenuItem, error) {
	query := `SELECT ` + menuItemColumns + ` FROM menu_items ORDER BY available DESC, name ASC`
	return r.list(ctx, "list public menu", query)
}

// ListAll lista todos los platos, más recientes primero.
func (r *MenuItemRepo) ListAll(ctx context.Context) ([]*entity.MenuItem, error) {
	query := `SELECT ` + menuItemColumns + ` FROM menu_items ORDER BY created_at DESC`
	return r.list(ctx, "list menu items", query)
}

// Update actualiza todos los campos editables del plato.
func (r *MenuItemRepo) Update(ctx context.Context, item *entity.MenuItem) error {
	query := `
		UPDATE menu_items
		SET name = $2, description = NULLIF($3, ''), currency = $4, price = $5, available = $6,
		    image = NULLIF($7, ''), updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.Name, item.Description, item.Currency, item.Price, item.Available, item.Image, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update menu item: %w", err)
	}
	return nil
}

// Delete elimina un plato por ID. Si hay pedidos que lo referencian devuelve ErrConflict.
func (r *MenuItemRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		return conflictOr(err, "delete menu item", "el plato está referenciado por pedidos")
	}
	return nil
}

func (r *MenuItemRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.MenuItem, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var list []*entity.MenuItem
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan menu item: %w", err)
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

func scanMenuItem(row pgx.Row) (*entity.MenuItem, error) {
	var m entity.MenuItem
	err := row.Scan(
		&m.ID, &m.Name, &m.Description, &m.Currency, &m.Price, &m.Available, &m.Image,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

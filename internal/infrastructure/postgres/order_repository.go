package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	"github.com/jhoicas/restaurante-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de persistencia para pedidos. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste la cabecera del pedido. Si el usuario ya no existe devuelve ErrUnauthenticated.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	query := `
		INSERT INTO orders (id, user_id, status, address, phone, total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.UserID, o.Status, o.Address, o.Phone, o.Total, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		// user_id sin fila: el usuario se eliminó pero su token sigue vigente.
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: el usuario %s ya no existe", domain.ErrUnauthenticated, o.UserID)
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// CreateItem persiste una línea del pedido.
func (r *OrderRepo) CreateItem(ctx context.Context, it *entity.OrderItem) error {
	query := `
		INSERT INTO order_items (id, order_id, menu_item_id, quantity, subtotal)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, it.ID, it.OrderID, it.MenuItemID, it.Quantity, it.Subtotal)
	if err != nil {
		return fmt.Errorf("insert order item: %w", err)
	}
	return nil
}

// CreatePayment persiste el pago del pedido (uno por pedido).
func (r *OrderRepo) CreatePayment(ctx context.Context, p *entity.Payment) error {
	query := `
		INSERT INTO payments (id, order_id, method, status, amount)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, p.ID, p.OrderID, p.Method, p.Status, p.Amount)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera del pedido.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	query := `
		SELECT id, user_id, status, address, phone, total, created_at, updated_at
		FROM orders WHERE id = $1`
	var o entity.Order
	err := r.q.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.UserID, &o.Status, &o.Address, &o.Phone, &o.Total, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return &o, nil
}

// UpdateStatus actualiza status y updated_at solo si el estado sigue siendo from.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id string, from, to entity.OrderStatus, updatedAt time.Time) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE orders SET status = $3, updated_at = $4 WHERE id = $1 AND status = $2`,
		id, from, to, updatedAt,
	)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: el pedido %s cambió de estado durante la actualización", domain.ErrConflict, id)
	}
	return nil
}

const orderDetailQuery = `
	SELECT o.id, o.user_id, o.status, o.address, o.phone, o.total, o.created_at, o.updated_at,
	       u.name, u.email
	FROM orders o
	JOIN users u ON u.id = o.user_id`

// ListDetailed lista los pedidos (más recientes primero) con comprador y líneas.
func (r *OrderRepo) ListDetailed(ctx context.Context) ([]*entity.OrderDetail, error) {
	rows, err := r.q.Query(ctx, orderDetailQuery+` ORDER BY o.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	var (
		list []*entity.OrderDetail
		byID = map[string]*entity.OrderDetail{}
		ids  []string
	)
	for rows.Next() {
		d, err := scanOrderDetail(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, d)
		byID[d.ID] = d
		ids = append(ids, d.ID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	if len(ids) == 0 {
		return list, nil
	}

	lines, err := r.linesFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, l := range lines {
		if d, ok := byID[l.OrderID]; ok {
			d.Items = append(d.Items, l)
		}
	}
	return list, nil
}

// GetDetail devuelve el pedido con comprador, líneas y pago, o (nil, nil).
func (r *OrderRepo) GetDetail(ctx context.Context, id string) (*entity.OrderDetail, error) {
	d, err := scanOrderDetail(r.q.QueryRow(ctx, orderDetailQuery+` WHERE o.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order detail: %w", err)
	}
	if d.Items, err = r.linesFor(ctx, []string{id}); err != nil {
		return nil, err
	}

	var p entity.Payment
	err = r.q.QueryRow(ctx,
		`SELECT id, order_id, method, status, amount FROM payments WHERE order_id = $1`, id,
	).Scan(&p.ID, &p.OrderID, &p.Method, &p.Status, &p.Amount)
	switch {
	case err == nil:
		d.Payment = &p
	case !errors.Is(err, pgx.ErrNoRows):
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return d, nil
}

// linesFor obtiene las líneas de los pedidos indicados con su plato.
func (r *OrderRepo) linesFor(ctx context.Context, orderIDs []string) ([]entity.OrderLine, error) {
	query := `
		SELECT oi.id, oi.order_id, oi.menu_item_id, oi.quantity, oi.subtotal,
		       m.id, m.name, COALESCE(m.description, ''), m.currency, m.price, m.available,
		       COALESCE(m.image, ''), m.created_at, m.updated_at
		FROM order_items oi
		JOIN menu_items m ON m.id = oi.menu_item_id
		WHERE oi.order_id = ANY($1)
		ORDER BY oi.order_id, m.name`
	rows, err := r.q.Query(ctx, query, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	var lines []entity.OrderLine
	for rows.Next() {
		var (
			it entity.OrderItem
			m  entity.MenuItem
		)
		if err := rows.Scan(
			&it.ID, &it.OrderID, &it.MenuItemID, &it.Quantity, &it.Subtotal,
			&m.ID, &m.Name, &m.Description, &m.Currency, &m.Price, &m.Available,
			&m.Image, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		lines = append(lines, entity.OrderLine{OrderItem: it, MenuItem: &m})
	}
	return lines, rows.Err()
}

func scanOrderDetail(row pgx.Row) (*entity.OrderDetail, error) {
	var d entity.OrderDetail
	err := row.Scan(
		&d.ID, &d.UserID, &d.Status, &d.Address, &d.Phone, &d.Total, &d.CreatedAt, &d.UpdatedAt,
		&d.Customer.Name, &d.Customer.Email,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

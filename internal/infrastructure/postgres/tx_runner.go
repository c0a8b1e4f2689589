package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/restaurante-api/internal/application/ordering"
	"github.com/jhoicas/restaurante-api/internal/domain/repository"
)

var _ ordering.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	db TxBeginner
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(db TxBeginner) *TxRunner {
	return &TxRunner{db: db}
}

// RunOrdering inicia una transacción con repos de carta y pedidos (para CreateOrder),
// ejecuta fn y hace Commit o Rollback.
func (r *TxRunner) RunOrdering(ctx context.Context, fn func(
	menuRepo repository.MenuItemRepository,
	orderRepo repository.OrderRepository,
) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	menuRepo := NewMenuItemRepository(tx).lockingShared()
	orderRepo := NewOrderRepository(tx)

	if err := fn(menuRepo, orderRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

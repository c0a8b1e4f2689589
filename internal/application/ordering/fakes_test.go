package ordering_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/restaurante-api/internal/application/ordering"
	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	"github.com/jhoicas/restaurante-api/internal/domain/repository"
)

// memStore almacén en memoria con semántica todo-o-nada: RunOrdering trabaja sobre una
// copia y solo la publica si fn no devuelve error.
type memStore struct {
	mu       sync.Mutex
	menu     map[string]*entity.MenuItem
	orders   map[string]*entity.Order
	items    []entity.OrderItem
	payments []entity.Payment
	users    map[string]entity.OrderCustomer

	catalogReads int
	failPayment  error
}

func newMemStore(items ...*entity.MenuItem) *memStore {
	s := &memStore{
		menu:   map[string]*entity.MenuItem{},
		orders: map[string]*entity.Order{},
		users:  map[string]entity.OrderCustomer{},
	}
	for _, it := range items {
		s.menu[it.ID] = it
	}
	return s
}

func (s *memStore) clone() *memStore {
	c := &memStore{
		menu:        s.menu,
		orders:      make(map[string]*entity.Order, len(s.orders)),
		items:       append([]entity.OrderItem(nil), s.items...),
		payments:    append([]entity.Payment(nil), s.payments...),
		users:       s.users,
		failPayment: s.failPayment,
	}
	for k, v := range s.orders {
		o := *v
		c.orders[k] = &o
	}
	return c
}

func (s *memStore) RunOrdering(_ context.Context, fn func(repository.MenuItemRepository, repository.OrderRepository) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx := s.clone()
	err := fn(&memMenuRepo{s: tx}, &memOrderRepo{s: tx})
	s.catalogReads += tx.catalogReads
	if err != nil {
		return err
	}
	s.orders, s.items, s.payments = tx.orders, tx.items, tx.payments
	return nil
}

func (s *memStore) repo() *memOrderRepo { return &memOrderRepo{s: s} }

type memMenuRepo struct{ s *memStore }

func (r *memMenuRepo) Create(_ context.Context, it *entity.MenuItem) error {
	r.s.menu[it.ID] = it
	return nil
}

func (r *memMenuRepo) GetByID(_ context.Context, id string) (*entity.MenuItem, error) {
	r.s.catalogReads++
	return r.s.menu[id], nil
}

func (r *memMenuRepo) GetByIDs(_ context.Context, ids []string) ([]*entity.MenuItem, error) {
	r.s.catalogReads++
	var out []*entity.MenuItem
	for _, id := range ids {
		if it, ok := r.s.menu[id]; ok {
			cp := *it
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memMenuRepo) ListPublic(context.Context) ([]*entity.MenuItem, error) { return nil, nil }
func (r *memMenuRepo) ListAll(context.Context) ([]*entity.MenuItem, error)    { return nil, nil }
func (r *memMenuRepo) Update(_ context.Context, it *entity.MenuItem) error {
	r.s.menu[it.ID] = it
	return nil
}
func (r *memMenuRepo) Delete(_ context.Context, id string) error {
	delete(r.s.menu, id)
	return nil
}

type memOrderRepo struct{ s *memStore }

func (r *memOrderRepo) Create(_ context.Context, o *entity.Order) error {
	cp := *o
	r.s.orders[o.ID] = &cp
	return nil
}

func (r *memOrderRepo) CreateItem(_ context.Context, it *entity.OrderItem) error {
	r.s.items = append(r.s.items, *it)
	return nil
}

func (r *memOrderRepo) CreatePayment(_ context.Context, p *entity.Payment) error {
	if r.s.failPayment != nil {
		return r.s.failPayment
	}
	r.s.payments = append(r.s.payments, *p)
	return nil
}

func (r *memOrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	o, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *memOrderRepo) UpdateStatus(_ context.Context, id string, from, to entity.OrderStatus, at time.Time) error {
	o, ok := r.s.orders[id]
	if !ok || o.Status != from {
		return fmt.Errorf("%w: el pedido cambió de estado", domain.ErrConflict)
	}
	o.Status = to
	o.UpdatedAt = at
	return nil
}

func (r *memOrderRepo) detail(o *entity.Order) *entity.OrderDetail {
	d := &entity.OrderDetail{Order: *o, Customer: r.s.users[o.UserID]}
	for _, it := range r.s.items {
		if it.OrderID == o.ID {
			d.Items = append(d.Items, entity.OrderLine{OrderItem: it, MenuItem: r.s.menu[it.MenuItemID]})
		}
	}
	for i := range r.s.payments {
		if r.s.payments[i].OrderID == o.ID {
			p := r.s.payments[i]
			d.Payment = &p
		}
	}
	return d
}

func (r *memOrderRepo) ListDetailed(context.Context) ([]*entity.OrderDetail, error) {
	out := make([]*entity.OrderDetail, 0, len(r.s.orders))
	for _, o := range r.s.orders {
		out = append(out, r.detail(o))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memOrderRepo) GetDetail(_ context.Context, id string) (*entity.OrderDetail, error) {
	o, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	return r.detail(o), nil
}

// recordingPublisher guarda los eventos publicados.
type recordingPublisher struct {
	created []ordering.OrderCreatedEvent
	changed []ordering.OrderStatusChangedEvent
	err     error
}

func (p *recordingPublisher) PublishOrderCreated(_ context.Context, e ordering.OrderCreatedEvent) error {
	p.created = append(p.created, e)
	return p.err
}

func (p *recordingPublisher) PublishOrderStatusChanged(_ context.Context, e ordering.OrderStatusChangedEvent) error {
	p.changed = append(p.changed, e)
	return p.err
}

type fakeReceipts struct{ got *entity.OrderDetail }

func (f *fakeReceipts) GenerateOrderReceipt(_ context.Context, d *entity.OrderDetail) ([]byte, error) {
	f.got = d
	return []byte("%PDF-1.3"), nil
}

var errStorage = errors.New("conexión perdida")

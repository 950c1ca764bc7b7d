package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/platepos/api/internal/domain"
)

// MenuRepository round-trips the menu item collection through the KV store.
type MenuRepository struct {
	kv KV
}

func NewMenuRepository(kv KV) *MenuRepository {
	return &MenuRepository{kv: kv}
}

// List returns the full catalog. A never-written record is an empty catalog.
func (r *MenuRepository) List(ctx context.Context) ([]domain.MenuItem, error) {
	b, err := r.kv.Get(ctx, KeyMenuItems)
	if errors.Is(err, ErrNotFound) {
		return []domain.MenuItem{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get menu items: %w", err)
	}

	var items []domain.MenuItem
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("decode menu items: %w", err)
	}
	return items, nil
}

// Get returns a single item by id.
func (r *MenuRepository) Get(ctx context.Context, id int64) (domain.MenuItem, error) {
	items, err := r.List(ctx)
	if err != nil {
		return domain.MenuItem{}, err
	}
	for _, item := range items {
		if item.ID == id {
			return item, nil
		}
	}
	return domain.MenuItem{}, fmt.Errorf("menu item %d: %w", id, ErrNotFound)
}

// Save replaces the whole catalog in one write.
func (r *MenuRepository) Save(ctx context.Context, items []domain.MenuItem) error {
	b, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode menu items: %w", err)
	}
	if err := r.kv.Set(ctx, KeyMenuItems, b); err != nil {
		return fmt.Errorf("set menu items: %w", err)
	}
	return nil
}

// OrderRepository round-trips the order collection through the KV store.
// The collection is kept newest-first.
type OrderRepository struct {
	kv KV
}

func NewOrderRepository(kv KV) *OrderRepository {
	return &OrderRepository{kv: kv}
}

func (r *OrderRepository) List(ctx context.Context) ([]domain.Order, error) {
	b, err := r.kv.Get(ctx, KeyOrders)
	if errors.Is(err, ErrNotFound) {
		return []domain.Order{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get orders: %w", err)
	}

	var orders []domain.Order
	if err := json.Unmarshal(b, &orders); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	return orders, nil
}

func (r *OrderRepository) Get(ctx context.Context, id string) (domain.Order, error) {
	orders, err := r.List(ctx)
	if err != nil {
		return domain.Order{}, err
	}
	for _, o := range orders {
		if o.ID == id {
			return o, nil
		}
	}
	return domain.Order{}, fmt.Errorf("order %s: %w", id, ErrNotFound)
}

// Insert prepends the order so the dashboard lists newest first.
func (r *OrderRepository) Insert(ctx context.Context, o domain.Order) error {
	orders, err := r.List(ctx)
	if err != nil {
		return err
	}
	orders = append([]domain.Order{o}, orders...)
	return r.save(ctx, orders)
}

// Update replaces the stored order with the same id.
func (r *OrderRepository) Update(ctx context.Context, o domain.Order) error {
	orders, err := r.List(ctx)
	if err != nil {
		return err
	}
	for i := range orders {
		if orders[i].ID == o.ID {
			orders[i] = o
			return r.save(ctx, orders)
		}
	}
	return fmt.Errorf("order %s: %w", o.ID, ErrNotFound)
}

// Delete removes the order with the given id, if present.
func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	orders, err := r.List(ctx)
	if err != nil {
		return err
	}
	kept := orders[:0]
	var found bool
	for _, o := range orders {
		if o.ID == id {
			found = true
			continue
		}
		kept = append(kept, o)
	}
	if !found {
		return fmt.Errorf("order %s: %w", id, ErrNotFound)
	}
	return r.save(ctx, kept)
}

func (r *OrderRepository) save(ctx context.Context, orders []domain.Order) error {
	b, err := json.Marshal(orders)
	if err != nil {
		return fmt.Errorf("encode orders: %w", err)
	}
	if err := r.kv.Set(ctx, KeyOrders, b); err != nil {
		return fmt.Errorf("set orders: %w", err)
	}
	return nil
}

// Counter issues sequential order numbers. The read-increment-persist cycle
// runs under a mutex so that a single process is its own serialization
// point; numbers are never reused, even after order deletion.
type Counter struct {
	kv KV
	mu sync.Mutex
}

func NewCounter(kv KV) *Counter {
	return &Counter{kv: kv}
}

// Next increments and persists the counter, returning the new value.
func (c *Counter) Next(ctx context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var n int64
	b, err := c.kv.Get(ctx, KeyOrderCounter)
	switch {
	case errors.Is(err, ErrNotFound):
		// First order ever: counter starts at 0.
	case err != nil:
		return 0, fmt.Errorf("get order counter: %w", err)
	default:
		if err := json.Unmarshal(b, &n); err != nil {
			return 0, fmt.Errorf("decode order counter: %w", err)
		}
	}

	n++
	out, err := json.Marshal(n)
	if err != nil {
		return 0, fmt.Errorf("encode order counter: %w", err)
	}
	if err := c.kv.Set(ctx, KeyOrderCounter, out); err != nil {
		return 0, fmt.Errorf("set order counter: %w", err)
	}
	return n, nil
}

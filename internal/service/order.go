package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/platepos/api/internal/domain"
	"github.com/platepos/api/internal/lifecycle"
	"github.com/platepos/api/internal/store"
)

// Errors returned by the order service.
var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrItemUnavailable = errors.New("menu item is not available")
)

// Event types published to the dashboard.
const (
	EventOrderCreated = "order.created"
	EventOrderUpdated = "order.updated"
	EventOrderDeleted = "order.deleted"
)

// EventSink receives domain events for live dashboard updates.
// Satisfied by *ws.Hub; a nil sink disables publishing.
type EventSink interface {
	Publish(eventType string, payload any)
}

// CreateOrderRequest is the validated input for creating an order.
type CreateOrderRequest struct {
	CustomerName string
	Items        []CreateOrderItemRequest
}

// CreateOrderItemRequest is a single line item in the order, referencing a
// catalog item and the modifier options chosen for it.
type CreateOrderItemRequest struct {
	ItemID      int64
	Quantity    int32
	ModifierIDs []string
	Notes       string
}

// OrderService handles order business logic: building line items from the
// catalog, numbering, lifecycle transitions, and persistence.
type OrderService struct {
	menu    *store.MenuRepository
	orders  *store.OrderRepository
	counter *store.Counter
	sink    EventSink
	now     func() time.Time
}

// NewOrderService creates a new OrderService. sink may be nil.
func NewOrderService(menu *store.MenuRepository, orders *store.OrderRepository, counter *store.Counter, sink EventSink) *OrderService {
	return &OrderService{
		menu:    menu,
		orders:  orders,
		counter: counter,
		sink:    sink,
		now:     time.Now,
	}
}

// CreateOrder validates the request against the catalog, assigns the next
// order number, computes totals, and persists the new order. All validation
// happens before the counter is consumed or anything is written.
func (s *OrderService) CreateOrder(ctx context.Context, req CreateOrderRequest) (domain.Order, error) {
	if len(req.Items) == 0 {
		return domain.Order{}, lifecycle.ErrEmptyOrder
	}

	products := make([]domain.OrderProduct, 0, len(req.Items))
	for i, line := range req.Items {
		if line.Quantity <= 0 {
			return domain.Order{}, fmt.Errorf("items[%d]: %w: quantity must be > 0", i, lifecycle.ErrInvalidLineItem)
		}

		item, err := s.menu.Get(ctx, line.ItemID)
		if errors.Is(err, store.ErrNotFound) {
			return domain.Order{}, fmt.Errorf("items[%d]: %w: %d", i, ErrMenuItemNotFound, line.ItemID)
		}
		if err != nil {
			return domain.Order{}, fmt.Errorf("items[%d]: get menu item: %w", i, err)
		}
		if !item.Available {
			return domain.Order{}, fmt.Errorf("items[%d]: %w: %s", i, ErrItemUnavailable, item.Name)
		}

		selected, err := lifecycle.SelectModifiers(item.ModifierGroups, line.ModifierIDs)
		if err != nil {
			return domain.Order{}, fmt.Errorf("items[%d]: %w", i, err)
		}

		// Copy display fields at order time; later catalog edits must not
		// rewrite existing orders.
		products = append(products, domain.OrderProduct{
			ItemID:            item.ID,
			Name:              item.Name,
			Description:       item.Description,
			ImageURL:          item.ImageURL,
			UnitPrice:         item.Price,
			Quantity:          line.Quantity,
			SelectedModifiers: selected,
			Notes:             line.Notes,
		})
	}

	number, err := s.counter.Next(ctx)
	if err != nil {
		return domain.Order{}, fmt.Errorf("next order number: %w", err)
	}

	order, err := lifecycle.NewOrder(req.CustomerName, products, number, s.now())
	if err != nil {
		return domain.Order{}, err
	}

	if err := s.orders.Insert(ctx, order); err != nil {
		return domain.Order{}, fmt.Errorf("insert order: %w", err)
	}

	s.publish(EventOrderCreated, order)
	return order, nil
}

// List returns all orders, newest first.
func (s *OrderService) List(ctx context.Context) ([]domain.Order, error) {
	return s.orders.List(ctx)
}

// Get returns a single order by id.
func (s *OrderService) Get(ctx context.Context, id string) (domain.Order, error) {
	o, err := s.orders.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Order{}, fmt.Errorf("%w: %s", ErrOrderNotFound, id)
	}
	return o, err
}

// UpdateStatus applies a lifecycle transition and persists the result. The
// updated order is returned so the caller never re-fetches.
func (s *OrderService) UpdateStatus(ctx context.Context, id, target string) (domain.Order, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}

	updated, err := lifecycle.Transition(current, target, s.now())
	if err != nil {
		return domain.Order{}, err
	}

	if err := s.orders.Update(ctx, updated); err != nil {
		return domain.Order{}, fmt.Errorf("update order: %w", err)
	}

	s.publish(EventOrderUpdated, updated)
	return updated, nil
}

// Delete removes an order. Order numbers are never reclaimed.
func (s *OrderService) Delete(ctx context.Context, id string) error {
	err := s.orders.Delete(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrOrderNotFound, id)
	}
	if err != nil {
		return err
	}

	s.publish(EventOrderDeleted, map[string]string{"id": id})
	return nil
}

func (s *OrderService) publish(eventType string, payload any) {
	if s.sink != nil {
		s.sink.Publish(eventType, payload)
	}
}

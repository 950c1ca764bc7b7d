// Package lifecycle implements the order state machine and total computation.
// Every function takes and returns order values; callers own persistence.
package lifecycle

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/platepos/api/internal/domain"
	"github.com/platepos/api/internal/enum"
	"github.com/shopspring/decimal"
)

// Errors returned by lifecycle operations.
var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidLineItem   = errors.New("invalid line item")
	ErrEmptyOrder        = errors.New("order must contain at least one line item")
)

// allowedTransitions defines the legal status transitions.
// COMPLETED and CANCELLED are terminal.
var allowedTransitions = map[string][]string{
	enum.OrderStatusOrdered:   {enum.OrderStatusPreparing, enum.OrderStatusCancelled},
	enum.OrderStatusPreparing: {enum.OrderStatusReady, enum.OrderStatusCancelled},
	enum.OrderStatusReady:     {enum.OrderStatusCompleted},
}

// CanTransition reports whether moving from one status to another is legal.
func CanTransition(from, to string) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Transition returns a copy of the order with the target status applied and
// UpdatedAt set to now. The input order is left untouched. Illegal pairs,
// including any move out of a terminal status, return ErrInvalidTransition.
func Transition(o domain.Order, target string, now time.Time) (domain.Order, error) {
	if !CanTransition(o.Status, target) {
		return domain.Order{}, fmt.Errorf("%w: cannot move from %s to %s", ErrInvalidTransition, o.Status, target)
	}
	o.Status = target
	o.UpdatedAt = now
	return o, nil
}

// LineSubtotal computes quantity × (unit price + Σ selected modifier deltas),
// rounded to 2 decimal places. Non-positive quantities are rejected.
func LineSubtotal(p domain.OrderProduct) (decimal.Decimal, error) {
	if p.Quantity <= 0 {
		return decimal.Decimal{}, fmt.Errorf("%w: quantity must be > 0, got %d", ErrInvalidLineItem, p.Quantity)
	}
	unit := p.UnitPrice
	for _, m := range p.SelectedModifiers {
		unit = unit.Add(m.PriceDelta)
	}
	return unit.Mul(decimal.NewFromInt32(p.Quantity)).Round(2), nil
}

// ComputeTotals recomputes every line subtotal and the order total on a copy
// of the order. Calling it on its own output yields the same values.
func ComputeTotals(o domain.Order) (domain.Order, error) {
	products := make([]domain.OrderProduct, len(o.Products))
	copy(products, o.Products)

	total := decimal.Zero
	for i := range products {
		sub, err := LineSubtotal(products[i])
		if err != nil {
			return domain.Order{}, fmt.Errorf("products[%d]: %w", i, err)
		}
		products[i].Subtotal = sub
		total = total.Add(sub)
	}

	o.Products = products
	o.Total = total.Round(2)
	return o, nil
}

// SelectModifiers resolves selected option ids against an item's modifier
// groups and enforces group exclusivity: an exclusive group contributes at
// most one selection. Unknown ids are rejected.
func SelectModifiers(groups []domain.ModifierGroup, optionIDs []string) ([]domain.Modifier, error) {
	if len(optionIDs) == 0 {
		return nil, nil
	}

	selected := make([]domain.Modifier, 0, len(optionIDs))
	perGroup := make(map[string]int)
	for _, id := range optionIDs {
		var found bool
		for _, g := range groups {
			opt, ok := g.Option(id)
			if !ok {
				continue
			}
			if g.Exclusive || opt.Exclusive {
				perGroup[g.ID]++
				if perGroup[g.ID] > 1 {
					return nil, fmt.Errorf("%w: group %q is single-select", ErrInvalidLineItem, g.Name)
				}
			}
			selected = append(selected, opt)
			found = true
			break
		}
		if !found {
			return nil, fmt.Errorf("%w: unknown modifier %q", ErrInvalidLineItem, id)
		}
	}
	return selected, nil
}

// NewOrder builds a fresh order: opaque UUID id, the supplied sequential
// order number, status ORDERED, computed totals, and both timestamps set to
// now. The caller is responsible for obtaining the order number from the
// counter so that numbers stay strictly increasing per store instance.
func NewOrder(customerName string, products []domain.OrderProduct, orderNumber int64, now time.Time) (domain.Order, error) {
	if len(products) == 0 {
		return domain.Order{}, ErrEmptyOrder
	}

	o := domain.Order{
		ID:           uuid.NewString(),
		OrderNumber:  orderNumber,
		CustomerName: customerName,
		Products:     products,
		Status:       enum.OrderStatusOrdered,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return ComputeTotals(o)
}

package lifecycle_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platepos/api/internal/domain"
	"github.com/platepos/api/internal/enum"
	"github.com/platepos/api/internal/lifecycle"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func burgerLine(qty int32) domain.OrderProduct {
	return domain.OrderProduct{
		ItemID:    1,
		Name:      "Classic Burger",
		UnitPrice: d("12.99"),
		Quantity:  qty,
	}
}

func TestCanTransition(t *testing.T) {
	statuses := []string{
		enum.OrderStatusOrdered,
		enum.OrderStatusPreparing,
		enum.OrderStatusReady,
		enum.OrderStatusCompleted,
		enum.OrderStatusCancelled,
	}

	legal := map[[2]string]bool{
		{enum.OrderStatusOrdered, enum.OrderStatusPreparing}:   true,
		{enum.OrderStatusOrdered, enum.OrderStatusCancelled}:   true,
		{enum.OrderStatusPreparing, enum.OrderStatusReady}:     true,
		{enum.OrderStatusPreparing, enum.OrderStatusCancelled}: true,
		{enum.OrderStatusReady, enum.OrderStatusCompleted}:     true,
	}

	// Every pair outside the table must be rejected, including self
	// transitions and anything out of a terminal status.
	for _, from := range statuses {
		for _, to := range statuses {
			want := legal[[2]string{from, to}]
			assert.Equal(t, want, lifecycle.CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestTransition(t *testing.T) {
	created := time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC)
	now := created.Add(5 * time.Minute)

	original := domain.Order{
		ID:        "ord-1",
		Status:    enum.OrderStatusOrdered,
		CreatedAt: created,
		UpdatedAt: created,
	}

	updated, err := lifecycle.Transition(original, enum.OrderStatusPreparing, now)
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusPreparing, updated.Status)
	assert.True(t, updated.UpdatedAt.Equal(now))
	assert.True(t, updated.CreatedAt.Equal(created))

	// The input value must be untouched.
	assert.Equal(t, enum.OrderStatusOrdered, original.Status)
	assert.True(t, original.UpdatedAt.Equal(created))
}

func TestTransitionRejectsIllegalMove(t *testing.T) {
	now := time.Now()

	o := domain.Order{ID: "ord-1", Status: enum.OrderStatusReady}
	_, err := lifecycle.Transition(o, enum.OrderStatusCancelled, now)
	require.ErrorIs(t, err, lifecycle.ErrInvalidTransition)

	o.Status = enum.OrderStatusCompleted
	_, err = lifecycle.Transition(o, enum.OrderStatusPreparing, now)
	require.ErrorIs(t, err, lifecycle.ErrInvalidTransition)
	assert.Contains(t, err.Error(), "COMPLETED")
}

func TestLineSubtotal(t *testing.T) {
	sub, err := lifecycle.LineSubtotal(burgerLine(2))
	require.NoError(t, err)
	assert.True(t, sub.Equal(d("25.98")), "got %s", sub)
}

func TestLineSubtotalWithModifiers(t *testing.T) {
	line := burgerLine(3)
	line.SelectedModifiers = []domain.Modifier{
		{ID: "extra-cheese", Name: "Extra Cheese", PriceDelta: d("1.50")},
		{ID: "no-onion", Name: "No Onion", PriceDelta: d("0.00")},
	}

	// (12.99 + 1.50) * 3 = 43.47
	sub, err := lifecycle.LineSubtotal(line)
	require.NoError(t, err)
	assert.True(t, sub.Equal(d("43.47")), "got %s", sub)
}

func TestLineSubtotalRejectsNonPositiveQuantity(t *testing.T) {
	for _, qty := range []int32{0, -1} {
		_, err := lifecycle.LineSubtotal(burgerLine(qty))
		require.ErrorIs(t, err, lifecycle.ErrInvalidLineItem, "quantity %d", qty)
	}
}

func TestComputeTotals(t *testing.T) {
	o := domain.Order{
		Products: []domain.OrderProduct{
			burgerLine(2),
			{ItemID: 2, Name: "Caesar Salad", UnitPrice: d("9.99"), Quantity: 1},
		},
	}

	out, err := lifecycle.ComputeTotals(o)
	require.NoError(t, err)
	assert.True(t, out.Products[0].Subtotal.Equal(d("25.98")))
	assert.True(t, out.Products[1].Subtotal.Equal(d("9.99")))
	assert.True(t, out.Total.Equal(d("35.97")), "got %s", out.Total)

	// The input's products must not be mutated.
	assert.True(t, o.Products[0].Subtotal.IsZero())
}

func TestComputeTotalsIsIdempotent(t *testing.T) {
	o := domain.Order{Products: []domain.OrderProduct{burgerLine(2)}}

	once, err := lifecycle.ComputeTotals(o)
	require.NoError(t, err)
	twice, err := lifecycle.ComputeTotals(once)
	require.NoError(t, err)

	assert.True(t, once.Total.Equal(twice.Total))
	assert.True(t, once.Products[0].Subtotal.Equal(twice.Products[0].Subtotal))
}

func TestComputeTotalsNamesOffendingLine(t *testing.T) {
	o := domain.Order{
		Products: []domain.OrderProduct{burgerLine(1), burgerLine(0)},
	}

	_, err := lifecycle.ComputeTotals(o)
	require.ErrorIs(t, err, lifecycle.ErrInvalidLineItem)
	assert.Contains(t, err.Error(), "products[1]")
}

func TestSelectModifiers(t *testing.T) {
	groups := []domain.ModifierGroup{
		{
			ID:        "size",
			Name:      "Size",
			Exclusive: true,
			Options: []domain.Modifier{
				{ID: "regular", Name: "Regular", PriceDelta: d("0.00")},
				{ID: "large", Name: "Large", PriceDelta: d("2.00")},
			},
		},
		{
			ID:   "extras",
			Name: "Extras",
			Options: []domain.Modifier{
				{ID: "bacon", Name: "Bacon", PriceDelta: d("1.75")},
				{ID: "avocado", Name: "Avocado", PriceDelta: d("1.25")},
			},
		},
	}

	selected, err := lifecycle.SelectModifiers(groups, []string{"large", "bacon", "avocado"})
	require.NoError(t, err)
	require.Len(t, selected, 3)
	assert.Equal(t, "large", selected[0].ID)

	// Two picks from an exclusive group are rejected.
	_, err = lifecycle.SelectModifiers(groups, []string{"regular", "large"})
	require.ErrorIs(t, err, lifecycle.ErrInvalidLineItem)
	assert.Contains(t, err.Error(), "single-select")

	// Unknown ids are rejected.
	_, err = lifecycle.SelectModifiers(groups, []string{"truffle"})
	require.ErrorIs(t, err, lifecycle.ErrInvalidLineItem)

	// No selection is fine.
	selected, err = lifecycle.SelectModifiers(groups, nil)
	require.NoError(t, err)
	assert.Empty(t, selected)
}

func TestNewOrder(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 30, 0, 0, time.UTC)

	o, err := lifecycle.NewOrder("Dana", []domain.OrderProduct{burgerLine(2)}, 17, now)
	require.NoError(t, err)

	assert.NotEmpty(t, o.ID)
	assert.Equal(t, int64(17), o.OrderNumber)
	assert.Equal(t, "Dana", o.CustomerName)
	assert.Equal(t, enum.OrderStatusOrdered, o.Status)
	assert.True(t, o.Total.Equal(d("25.98")))
	assert.True(t, o.CreatedAt.Equal(now))
	assert.True(t, o.UpdatedAt.Equal(now))
}

func TestNewOrderRejectsEmptyOrder(t *testing.T) {
	_, err := lifecycle.NewOrder("Dana", nil, 1, time.Now())
	require.ErrorIs(t, err, lifecycle.ErrEmptyOrder)
}

func TestNewOrderIDsAreUnique(t *testing.T) {
	now := time.Now()
	a, err := lifecycle.NewOrder("A", []domain.OrderProduct{burgerLine(1)}, 1, now)
	require.NoError(t, err)
	b, err := lifecycle.NewOrder("B", []domain.OrderProduct{burgerLine(1)}, 2, now)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/platepos/api/internal/domain"
	"github.com/platepos/api/internal/enum"
	"github.com/platepos/api/internal/store"
)

func testOrder(id string, number int64) domain.Order {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	return domain.Order{
		ID:           id,
		OrderNumber:  number,
		CustomerName: "Dana",
		Status:       enum.OrderStatusOrdered,
		Total:        decimal.RequireFromString("25.98"),
		CreatedAt:    now,
		UpdatedAt:    now,
		Products: []domain.OrderProduct{
			{
				ItemID:    1,
				Name:      "Classic Burger",
				UnitPrice: decimal.RequireFromString("12.99"),
				Quantity:  2,
				Subtotal:  decimal.RequireFromString("25.98"),
				SelectedModifiers: []domain.Modifier{
					{ID: "extra-cheese", Name: "Extra Cheese", PriceDelta: decimal.RequireFromString("1.50")},
				},
				Notes: "no pickles",
			},
		},
	}
}

func TestOrderRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := store.NewOrderRepository(store.NewMemory())

	want := testOrder("ord-1", 1)
	if err := repo.Insert(ctx, want); err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, err := repo.Get(ctx, "ord-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if got.ID != want.ID {
		t.Errorf("id: got %q, want %q", got.ID, want.ID)
	}
	if got.OrderNumber != want.OrderNumber {
		t.Errorf("order number: got %d, want %d", got.OrderNumber, want.OrderNumber)
	}
	if got.CustomerName != want.CustomerName {
		t.Errorf("customer name: got %q, want %q", got.CustomerName, want.CustomerName)
	}
	if got.Status != want.Status {
		t.Errorf("status: got %q, want %q", got.Status, want.Status)
	}
	if !got.Total.Equal(want.Total) {
		t.Errorf("total: got %s, want %s", got.Total, want.Total)
	}
	if !got.CreatedAt.Equal(want.CreatedAt) {
		t.Errorf("created at: got %v, want %v", got.CreatedAt, want.CreatedAt)
	}
	if len(got.Products) != 1 {
		t.Fatalf("products: got %d, want 1", len(got.Products))
	}
	p := got.Products[0]
	if !p.Subtotal.Equal(want.Products[0].Subtotal) {
		t.Errorf("subtotal: got %s, want %s", p.Subtotal, want.Products[0].Subtotal)
	}
	if len(p.SelectedModifiers) != 1 || p.SelectedModifiers[0].ID != "extra-cheese" {
		t.Errorf("modifiers not preserved: %+v", p.SelectedModifiers)
	}
	if p.Notes != "no pickles" {
		t.Errorf("notes: got %q", p.Notes)
	}
}

func TestOrderRepositoryListNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := store.NewOrderRepository(store.NewMemory())

	for i, id := range []string{"ord-1", "ord-2", "ord-3"} {
		if err := repo.Insert(ctx, testOrder(id, int64(i+1))); err != nil {
			t.Fatalf("insert %s: %v", id, err)
		}
	}

	orders, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(orders) != 3 {
		t.Fatalf("list: got %d orders, want 3", len(orders))
	}
	for i, want := range []string{"ord-3", "ord-2", "ord-1"} {
		if orders[i].ID != want {
			t.Errorf("orders[%d]: got %q, want %q", i, orders[i].ID, want)
		}
	}
}

func TestOrderRepositoryListEmpty(t *testing.T) {
	repo := store.NewOrderRepository(store.NewMemory())

	orders, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(orders) != 0 {
		t.Errorf("list: got %d orders, want 0", len(orders))
	}
}

func TestOrderRepositoryUpdate(t *testing.T) {
	ctx := context.Background()
	repo := store.NewOrderRepository(store.NewMemory())

	o := testOrder("ord-1", 1)
	if err := repo.Insert(ctx, o); err != nil {
		t.Fatalf("insert: %v", err)
	}

	o.Status = enum.OrderStatusPreparing
	if err := repo.Update(ctx, o); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := repo.Get(ctx, "ord-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != enum.OrderStatusPreparing {
		t.Errorf("status: got %q, want %q", got.Status, enum.OrderStatusPreparing)
	}

	if err := repo.Update(ctx, testOrder("missing", 99)); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("update missing: got %v, want ErrNotFound", err)
	}
}

func TestOrderRepositoryDelete(t *testing.T) {
	ctx := context.Background()
	repo := store.NewOrderRepository(store.NewMemory())

	if err := repo.Insert(ctx, testOrder("ord-1", 1)); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := repo.Delete(ctx, "ord-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Get(ctx, "ord-1"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("get deleted: got %v, want ErrNotFound", err)
	}
	if err := repo.Delete(ctx, "ord-1"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("delete missing: got %v, want ErrNotFound", err)
	}
}

func TestMenuRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := store.NewMenuRepository(store.NewMemory())

	items := []domain.MenuItem{
		{ID: 1, Name: "Classic Burger", Price: decimal.RequireFromString("12.99"), Available: true},
		{ID: 2, Name: "Caesar Salad", Price: decimal.RequireFromString("9.99"), Available: true},
	}
	if err := repo.Save(ctx, items); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := repo.Get(ctx, 2)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Caesar Salad" {
		t.Errorf("name: got %q", got.Name)
	}
	if !got.Price.Equal(decimal.RequireFromString("9.99")) {
		t.Errorf("price: got %s", got.Price)
	}

	if _, err := repo.Get(ctx, 42); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("get missing: got %v, want ErrNotFound", err)
	}
}

func TestMenuRepositoryEmptyCatalog(t *testing.T) {
	repo := store.NewMenuRepository(store.NewMemory())

	items, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("list: got %d items, want 0", len(items))
	}
}

func TestCounterNext(t *testing.T) {
	ctx := context.Background()
	counter := store.NewCounter(store.NewMemory())

	for want := int64(1); want <= 5; want++ {
		n, err := counter.Next(ctx)
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		if n != want {
			t.Errorf("next: got %d, want %d", n, want)
		}
	}
}

func TestCounterPersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()

	first := store.NewCounter(kv)
	for i := 0; i < 3; i++ {
		if _, err := first.Next(ctx); err != nil {
			t.Fatalf("next: %v", err)
		}
	}

	// A fresh counter over the same store continues the sequence.
	second := store.NewCounter(kv)
	n, err := second.Next(ctx)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if n != 4 {
		t.Errorf("next after restart: got %d, want 4", n)
	}
}

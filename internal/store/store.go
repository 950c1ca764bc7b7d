// Package store defines the key-value persistence boundary and the typed
// repositories the services use. The KV contract is deliberately small: the
// system persists a handful of logical records (menu items, orders, order
// counter, revenue snapshot) as JSON documents, and a single Set is atomic
// under the single-writer assumption.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when a key has never been written.
var ErrNotFound = errors.New("key not found")

// KV is the abstract key-value store collaborator. Implementations must make
// one Set durable and atomic; nothing here coordinates concurrent writers.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Logical record keys.
const (
	KeyMenuItems       = "menu_items"
	KeyOrders          = "orders"
	KeyOrderCounter    = "order_counter"
	KeyRevenueSnapshot = "revenue_snapshot"
)

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderProduct is one line item on an order. Display fields are copied from
// the menu item at order time so later catalog edits don't rewrite history.
// Subtotal is always derived; it is never edited independently.
type OrderProduct struct {
	ItemID            int64           `json:"item_id"`
	Name              string          `json:"name"`
	Description       string          `json:"description,omitempty"`
	ImageURL          string          `json:"image_url,omitempty"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	Quantity          int32           `json:"quantity"`
	SelectedModifiers []Modifier      `json:"selected_modifiers,omitempty"`
	Notes             string          `json:"notes,omitempty"`
	Subtotal          decimal.Decimal `json:"subtotal"`
}

// Order is a customer's submitted set of line items with a lifecycle status
// and a computed total. Total always equals the sum of line subtotals;
// UpdatedAt is refreshed on every status or content mutation.
//
// The product slice order is display order only.
type Order struct {
	ID           string          `json:"id"`
	OrderNumber  int64           `json:"order_number"`
	CustomerName string          `json:"customer_name"`
	Products     []OrderProduct  `json:"products"`
	Status       string          `json:"status"`
	Total        decimal.Decimal `json:"total"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

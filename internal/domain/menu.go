package domain

import "github.com/shopspring/decimal"

// MenuItem is a catalog entry. Items are mutated in place by edits and
// availability toggles; they are never hard-deleted.
type MenuItem struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description,omitempty"`
	Price          decimal.Decimal `json:"price"`
	Category       string          `json:"category"`
	ImageURL       string          `json:"image_url,omitempty"`
	Available      bool            `json:"available"`
	ModifierGroups []ModifierGroup `json:"modifier_groups,omitempty"`
}

// ModifierGroup is a named set of customization options on a menu item.
// An exclusive group is single-select; a non-exclusive group is multi-select.
type ModifierGroup struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Options         []Modifier `json:"options"`
	Exclusive       bool       `json:"exclusive,omitempty"`
	DefaultOptionID string     `json:"default_option_id,omitempty"`
}

// Modifier is a single customization option. PriceDelta is added to the
// item's unit price when the option is selected.
type Modifier struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Exclusive  bool            `json:"exclusive"`
	PriceDelta decimal.Decimal `json:"price_delta"`
}

// Option returns the option with the given id, if present in the group.
func (g ModifierGroup) Option(id string) (Modifier, bool) {
	for _, opt := range g.Options {
		if opt.ID == id {
			return opt, true
		}
	}
	return Modifier{}, false
}

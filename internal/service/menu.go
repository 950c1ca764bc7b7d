package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/platepos/api/internal/domain"
	"github.com/platepos/api/internal/store"
	"github.com/shopspring/decimal"
)

// Errors returned by the menu service.
var (
	ErrInvalidMenuItem      = errors.New("invalid menu item")
	ErrInvalidDefaultOption = errors.New("default option does not belong to its group")
	ErrMenuItemNotFound     = errors.New("menu item not found")
)

// MenuService manages the catalog. The store is the source of truth; every
// mutation returns the updated entity so callers never re-fetch.
type MenuService struct {
	repo *store.MenuRepository
}

func NewMenuService(repo *store.MenuRepository) *MenuService {
	return &MenuService{repo: repo}
}

func (s *MenuService) List(ctx context.Context) ([]domain.MenuItem, error) {
	return s.repo.List(ctx)
}

func (s *MenuService) Get(ctx context.Context, id int64) (domain.MenuItem, error) {
	item, err := s.repo.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.MenuItem{}, fmt.Errorf("%w: %d", ErrMenuItemNotFound, id)
	}
	return item, err
}

// Create validates the item, assigns a fresh identifier, and appends it to
// the catalog.
func (s *MenuService) Create(ctx context.Context, item domain.MenuItem) (domain.MenuItem, error) {
	if err := validateMenuItem(item); err != nil {
		return domain.MenuItem{}, err
	}

	items, err := s.repo.List(ctx)
	if err != nil {
		return domain.MenuItem{}, err
	}

	item.ID = nextMenuItemID(items)
	items = append(items, item)
	if err := s.repo.Save(ctx, items); err != nil {
		return domain.MenuItem{}, err
	}
	return item, nil
}

// Update edits an existing item in place.
func (s *MenuService) Update(ctx context.Context, item domain.MenuItem) (domain.MenuItem, error) {
	if err := validateMenuItem(item); err != nil {
		return domain.MenuItem{}, err
	}

	items, err := s.repo.List(ctx)
	if err != nil {
		return domain.MenuItem{}, err
	}
	for i := range items {
		if items[i].ID == item.ID {
			items[i] = item
			if err := s.repo.Save(ctx, items); err != nil {
				return domain.MenuItem{}, err
			}
			return item, nil
		}
	}
	return domain.MenuItem{}, fmt.Errorf("%w: %d", ErrMenuItemNotFound, item.ID)
}

// ToggleAvailability flips the availability flag of an item.
func (s *MenuService) ToggleAvailability(ctx context.Context, id int64) (domain.MenuItem, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return domain.MenuItem{}, err
	}
	for i := range items {
		if items[i].ID == id {
			items[i].Available = !items[i].Available
			if err := s.repo.Save(ctx, items); err != nil {
				return domain.MenuItem{}, err
			}
			return items[i], nil
		}
	}
	return domain.MenuItem{}, fmt.Errorf("%w: %d", ErrMenuItemNotFound, id)
}

// EnsureDefaults seeds the starter catalog when the menu record is empty.
func (s *MenuService) EnsureDefaults(ctx context.Context) error {
	items, err := s.repo.List(ctx)
	if err != nil {
		return err
	}
	if len(items) > 0 {
		return nil
	}
	return s.repo.Save(ctx, defaultMenu())
}

func defaultMenu() []domain.MenuItem {
	return []domain.MenuItem{
		{
			ID:          1,
			Name:        "Classic Burger",
			Description: "1/3 lb beef patty with lettuce, tomato, and cheese",
			Price:       decimal.RequireFromString("12.99"),
			Category:    "Burgers",
			ImageURL:    "https://images.unsplash.com/photo-1568901346375-23c9450c58cd?w=500",
			Available:   true,
		},
		{
			ID:          2,
			Name:        "Caesar Salad",
			Description: "Romaine lettuce, croutons, parmesan cheese",
			Price:       decimal.RequireFromString("9.99"),
			Category:    "Salads",
			ImageURL:    "https://images.unsplash.com/photo-1550304943-4f24f54ddde9?w=500",
			Available:   true,
		},
	}
}

func validateMenuItem(item domain.MenuItem) error {
	if item.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidMenuItem)
	}
	if item.Price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidMenuItem)
	}
	for _, g := range item.ModifierGroups {
		if g.DefaultOptionID == "" {
			continue
		}
		if _, ok := g.Option(g.DefaultOptionID); !ok {
			return fmt.Errorf("%w: group %q has no option %q", ErrInvalidDefaultOption, g.Name, g.DefaultOptionID)
		}
	}
	return nil
}

// nextMenuItemID returns a fresh identifier strictly greater than every
// existing one. Identifiers only grow, so edits and deletes can never cause
// reuse.
func nextMenuItemID(items []domain.MenuItem) int64 {
	var max int64
	for _, item := range items {
		if item.ID > max {
			max = item.ID
		}
	}
	return max + 1
}

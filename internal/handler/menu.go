package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/platepos/api/internal/domain"
	"github.com/platepos/api/internal/service"
	"github.com/shopspring/decimal"
)

// MenuServicer defines the service methods needed by menu handlers.
// Satisfied by *service.MenuService; narrow interface for testability.
type MenuServicer interface {
	List(ctx context.Context) ([]domain.MenuItem, error)
	Get(ctx context.Context, id int64) (domain.MenuItem, error)
	Create(ctx context.Context, item domain.MenuItem) (domain.MenuItem, error)
	Update(ctx context.Context, item domain.MenuItem) (domain.MenuItem, error)
	ToggleAvailability(ctx context.Context, id int64) (domain.MenuItem, error)
}

// MenuHandler handles menu item CRUD endpoints.
type MenuHandler struct {
	svc MenuServicer
}

// NewMenuHandler creates a new MenuHandler.
func NewMenuHandler(svc MenuServicer) *MenuHandler {
	return &MenuHandler{svc: svc}
}

// RegisterRoutes registers menu item endpoints on the given Chi router.
func (h *MenuHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Post("/", h.Create)
	r.Put("/{id}", h.Update)
	r.Post("/{id}/availability", h.ToggleAvailability)
}

// --- Request / Response types ---

type menuItemRequest struct {
	Name           string                 `json:"name"`
	Description    string                 `json:"description"`
	Price          string                 `json:"price"`
	Category       string                 `json:"category"`
	ImageURL       string                 `json:"image_url"`
	Available      *bool                  `json:"available"`
	ModifierGroups []domain.ModifierGroup `json:"modifier_groups"`
}

type menuItemResponse struct {
	ID             int64                  `json:"id"`
	Name           string                 `json:"name"`
	Description    string                 `json:"description,omitempty"`
	Price          string                 `json:"price"`
	Category       string                 `json:"category"`
	ImageURL       string                 `json:"image_url,omitempty"`
	Available      bool                   `json:"available"`
	ModifierGroups []domain.ModifierGroup `json:"modifier_groups,omitempty"`
}

func toMenuItemResponse(item domain.MenuItem) menuItemResponse {
	return menuItemResponse{
		ID:             item.ID,
		Name:           item.Name,
		Description:    item.Description,
		Price:          money(item.Price),
		Category:       item.Category,
		ImageURL:       item.ImageURL,
		Available:      item.Available,
		ModifierGroups: item.ModifierGroups,
	}
}

// --- Handlers ---

// List handles GET /menu-items.
func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context())
	if err != nil {
		log.Printf("ERROR: list menu items: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]menuItemResponse, len(items))
	for i, item := range items {
		resp[i] = toMenuItemResponse(item)
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": resp})
}

// Get handles GET /menu-items/{id}.
func (h *MenuHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseMenuItemID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid menu item ID"})
		return
	}

	item, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrMenuItemNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "menu item not found"})
			return
		}
		log.Printf("ERROR: get menu item: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	writeJSON(w, http.StatusOK, toMenuItemResponse(item))
}

// Create handles POST /menu-items.
func (h *MenuHandler) Create(w http.ResponseWriter, r *http.Request) {
	item, ok := decodeMenuItem(w, r, 0)
	if !ok {
		return
	}

	created, err := h.svc.Create(r.Context(), item)
	if err != nil {
		if isMenuValidationError(err) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		log.Printf("ERROR: create menu item: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	writeJSON(w, http.StatusCreated, toMenuItemResponse(created))
}

// Update handles PUT /menu-items/{id}.
func (h *MenuHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseMenuItemID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid menu item ID"})
		return
	}

	item, ok := decodeMenuItem(w, r, id)
	if !ok {
		return
	}

	updated, err := h.svc.Update(r.Context(), item)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMenuItemNotFound):
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "menu item not found"})
		case isMenuValidationError(err):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		default:
			log.Printf("ERROR: update menu item: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		}
		return
	}
	writeJSON(w, http.StatusOK, toMenuItemResponse(updated))
}

// ToggleAvailability handles POST /menu-items/{id}/availability.
func (h *MenuHandler) ToggleAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := parseMenuItemID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid menu item ID"})
		return
	}

	item, err := h.svc.ToggleAvailability(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrMenuItemNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "menu item not found"})
			return
		}
		log.Printf("ERROR: toggle menu item availability: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	writeJSON(w, http.StatusOK, toMenuItemResponse(item))
}

// --- Helpers ---

func parseMenuItemID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// decodeMenuItem decodes and validates the shared create/update body. It
// writes the error response itself and reports success via ok.
func decodeMenuItem(w http.ResponseWriter, r *http.Request, id int64) (domain.MenuItem, bool) {
	var req menuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return domain.MenuItem{}, false
	}

	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return domain.MenuItem{}, false
	}
	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid price"})
		return domain.MenuItem{}, false
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}

	return domain.MenuItem{
		ID:             id,
		Name:           req.Name,
		Description:    req.Description,
		Price:          price,
		Category:       req.Category,
		ImageURL:       req.ImageURL,
		Available:      available,
		ModifierGroups: req.ModifierGroups,
	}, true
}

func isMenuValidationError(err error) bool {
	return errors.Is(err, service.ErrInvalidMenuItem) ||
		errors.Is(err, service.ErrInvalidDefaultOption)
}

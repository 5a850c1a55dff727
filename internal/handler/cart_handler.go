package handler

import (
	"encoding/json"
	"net/http"

	"donut-store/internal/cart"
	"donut-store/internal/middleware"
	"donut-store/internal/model"
	"donut-store/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// CartHandler handles session cart HTTP requests. Prices and names are
// always taken from the catalogue, never from the client.
type CartHandler struct {
	store    cart.Store
	products service.ProductService
	ledger   *cart.Ledger // nil unless legacy stock tracking is enabled
	logger   zerolog.Logger
}

// NewCartHandler creates a new cart handler. ledger may be nil, which
// disables stock tracking.
func NewCartHandler(store cart.Store, products service.ProductService, ledger *cart.Ledger, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		store:    store,
		products: products,
		ledger:   ledger,
		logger:   logger.With().Str("handler", "cart").Logger(),
	}
}

type cartResponse struct {
	Items []model.CartItem `json:"items"`
	Total int64            `json:"total"`
}

func (h *CartHandler) writeCart(w http.ResponseWriter, c cart.Cart) {
	items := c.Items
	if items == nil {
		items = []model.CartItem{}
	}
	writeJSON(w, http.StatusOK, cartResponse{Items: items, Total: c.Total()})
}

// Get handles GET /api/cart.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.SessionID(r.Context())

	c, err := h.store.Get(r.Context(), sessionID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	h.writeCart(w, c)
}

type addItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// AddItem handles POST /api/cart/items: looks the product up, snapshots its
// price, and merges it into the session cart.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if req.Quantity < 1 {
		writeDomainError(w, model.ErrInvalidQuantity, h.logger)
		return
	}

	product, err := h.products.GetByID(r.Context(), req.ProductID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	if product == nil || !product.Available {
		writeDomainError(w, model.ErrProductNotFound, h.logger)
		return
	}

	if h.ledger != nil {
		if err := h.ledger.Reserve(r.Context(), product.ID, req.Quantity); err != nil {
			writeDomainError(w, err, h.logger)
			return
		}
	}

	sessionID := middleware.SessionID(r.Context())
	c, err := h.store.Get(r.Context(), sessionID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	c, err = c.Add(model.CartItem{
		ID:       product.ID,
		Name:     product.Name,
		Price:    product.Price,
		ImageURL: product.ImageURL,
		Quantity: req.Quantity,
	})
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	if err := h.store.Save(r.Context(), sessionID, c); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	h.writeCart(w, c)
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateItem handles PUT /api/cart/items/{id}. A quantity of zero or below
// removes the line. Unknown IDs are a no-op.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	productID := chi.URLParam(r, "id")
	sessionID := middleware.SessionID(r.Context())

	c, err := h.store.Get(r.Context(), sessionID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	previous := c.Quantity(productID)
	next := c.UpdateQuantity(productID, req.Quantity)

	if h.ledger != nil && previous > 0 {
		if err := h.adjustLedger(r, productID, previous, next.Quantity(productID)); err != nil {
			writeDomainError(w, err, h.logger)
			return
		}
	}

	if err := h.store.Save(r.Context(), sessionID, next); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	h.writeCart(w, next)
}

func (h *CartHandler) adjustLedger(r *http.Request, productID string, previous, current int) error {
	diff := current - previous
	switch {
	case diff > 0:
		return h.ledger.Reserve(r.Context(), productID, diff)
	case diff < 0:
		return h.ledger.Release(r.Context(), productID, -diff)
	}
	return nil
}

// RemoveItem handles DELETE /api/cart/items/{id}.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")
	sessionID := middleware.SessionID(r.Context())

	c, err := h.store.Get(r.Context(), sessionID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	if quantity := c.Quantity(productID); quantity > 0 && h.ledger != nil {
		if err := h.ledger.Release(r.Context(), productID, quantity); err != nil {
			writeDomainError(w, err, h.logger)
			return
		}
	}

	c = c.Remove(productID)
	if err := h.store.Save(r.Context(), sessionID, c); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	h.writeCart(w, c)
}

// Clear handles DELETE /api/cart.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.SessionID(r.Context())

	if h.ledger != nil {
		c, err := h.store.Get(r.Context(), sessionID)
		if err != nil {
			writeDomainError(w, err, h.logger)
			return
		}
		for _, item := range c.Items {
			if err := h.ledger.Release(r.Context(), item.ID, item.Quantity); err != nil {
				writeDomainError(w, err, h.logger)
				return
			}
		}
	}

	if err := h.store.Clear(r.Context(), sessionID); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	h.writeCart(w, cart.Cart{})
}

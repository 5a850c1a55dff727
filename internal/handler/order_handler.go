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

// OrderHandler handles checkout and the admin order surface.
type OrderHandler struct {
	service   service.OrderService
	cartStore cart.Store
	logger    zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, cartStore cart.Store, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service:   service,
		cartStore: cartStore,
		logger:    logger.With().Str("handler", "order").Logger(),
	}
}

// Checkout handles POST /api/checkout. Items come from the session cart,
// never from the request body. The cart is cleared only once the order has
// been durably recorded; a gateway failure after that point still returns
// the order, with the failure in the payment result.
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req model.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	sessionID := middleware.SessionID(r.Context())
	c, err := h.cartStore.Get(r.Context(), sessionID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	req.Items = c.Items

	result, err := h.service.Checkout(r.Context(), &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	// The order exists; the cart must not survive a reload and double it.
	if err := h.cartStore.Clear(r.Context(), sessionID); err != nil {
		h.logger.Warn().
			Err(err).
			Str("order_id", result.Order.ID).
			Msg("failed to clear cart after checkout")
	}

	writeJSON(w, http.StatusCreated, result)
}

// GetByID handles GET /api/admin/orders/{id}.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	order, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	if order == nil {
		writeError(w, http.StatusNotFound, "order not found", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// List handles GET /api/admin/orders with optional status filters.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset, ok := parsePagination(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid pagination parameters", h.logger)
		return
	}

	filter := model.OrderFilter{
		Status:        model.OrderStatus(r.URL.Query().Get("status")),
		PaymentStatus: model.PaymentStatus(r.URL.Query().Get("payment_status")),
		Limit:         limit,
		Offset:        offset,
	}

	orders, err := h.service.List(r.Context(), filter)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	if orders == nil {
		orders = []model.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

type statusRequest struct {
	Status string `json:"status"`
}

// actor identifies the admin user for the audit log. The back-office sends
// it explicitly; requests without it are recorded as "admin".
func actor(r *http.Request) string {
	if a := r.Header.Get("X-Admin-User"); a != "" {
		return a
	}
	return "admin"
}

// SetStatus handles PUT /api/admin/orders/{id}/status.
func (h *OrderHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.service.SetStatus(r.Context(), id, model.OrderStatus(req.Status), actor(r)); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"id": id, "status": req.Status})
}

// SetPaymentStatus handles PUT /api/admin/orders/{id}/payment-status.
func (h *OrderHandler) SetPaymentStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.service.SetPaymentStatus(r.Context(), id, model.PaymentStatus(req.Status), actor(r)); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"id": id, "paymentStatus": req.Status})
}

package handler

import (
	"encoding/json"
	"net/http"

	"donut-store/internal/service"

	"github.com/rs/zerolog"
)

// PaymentHandler handles payment retry and verification requests.
type PaymentHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewPaymentHandler creates a new payment handler.
func NewPaymentHandler(service service.OrderService, logger zerolog.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		logger:  logger.With().Str("handler", "payment").Logger(),
	}
}

type retryRequest struct {
	OrderID string `json:"orderId"`
}

// Create handles POST /api/payment: request a (new) hosted-checkout
// transaction for an existing order. Used when the first attempt at
// checkout failed, or the customer closed the checkout page.
func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req retryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if req.OrderID == "" {
		writeError(w, http.StatusBadRequest, "order ID is required", h.logger)
		return
	}

	result, err := h.service.RetryPayment(r.Context(), req.OrderID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Status handles GET /api/payment/status?transaction_id=. The gateway's
// redirect back to the storefront carries status hints in its query
// parameters; those are never trusted. This endpoint re-verifies against
// the gateway server-side and applies the result to the order.
func (h *PaymentHandler) Status(w http.ResponseWriter, r *http.Request) {
	transactionID := r.URL.Query().Get("transaction_id")
	if transactionID == "" {
		// The Midtrans redirect uses order_id; accept it as an alias.
		transactionID = r.URL.Query().Get("order_id")
	}
	if transactionID == "" {
		writeError(w, http.StatusBadRequest, "transaction ID is required", h.logger)
		return
	}

	result, err := h.service.VerifyPayment(r.Context(), transactionID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

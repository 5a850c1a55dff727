package payment

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"donut-store/internal/config"
	"donut-store/internal/model"

	"github.com/rs/zerolog"
)

const (
	midtransSandboxURL    = "https://api.sandbox.midtrans.com/v2"
	midtransProductionURL = "https://api.midtrans.com/v2"
)

// midtransProvider talks to the Midtrans Snap API: one POST to create a
// hosted-checkout redirect URL, one GET to check a transaction's status.
type midtransProvider struct {
	serverKey string
	baseURL   string
	finishURL string
	client    *http.Client
	logger    zerolog.Logger
}

// NewMidtrans creates the Midtrans provider. A missing server key is not
// fatal here; charge attempts report it as a retryable failure instead.
func NewMidtrans(cfg config.PaymentConfig, logger zerolog.Logger) Provider {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		if cfg.Production {
			baseURL = midtransProductionURL
		} else {
			baseURL = midtransSandboxURL
		}
	}

	logger = logger.With().Str("component", "midtrans").Logger()
	if cfg.ServerKey == "" {
		logger.Warn().Msg("midtrans server key not configured; charge attempts will fail")
	}

	return &midtransProvider{
		serverKey: cfg.ServerKey,
		baseURL:   baseURL,
		finishURL: cfg.FinishURL,
		client:    &http.Client{Timeout: 30 * time.Second},
		logger:    logger,
	}
}

func (p *midtransProvider) Name() string {
	return "Midtrans"
}

// authHeader builds the Basic auth value from the server key, per the
// Midtrans convention of key-colon with an empty password.
func (p *midtransProvider) authHeader() string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(p.serverKey+":"))
}

type midtransChargeRequest struct {
	TransactionDetails struct {
		OrderID     string `json:"order_id"`
		GrossAmount int64  `json:"gross_amount"`
	} `json:"transaction_details"`
	CustomerDetails struct {
		FirstName       string `json:"first_name"`
		LastName        string `json:"last_name"`
		Email           string `json:"email"`
		Phone           string `json:"phone"`
		ShippingAddress struct {
			Address    string `json:"address"`
			City       string `json:"city"`
			PostalCode string `json:"postal_code"`
		} `json:"shipping_address"`
	} `json:"customer_details"`
	ItemDetails []midtransItem `json:"item_details"`
	Callbacks   struct {
		Finish string `json:"finish"`
	} `json:"callbacks"`
}

type midtransItem struct {
	ID       string `json:"id"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
	Name     string `json:"name"`
}

type midtransChargeResponse struct {
	RedirectURL   string `json:"redirect_url"`
	StatusMessage string `json:"status_message"`
}

type midtransStatusResponse struct {
	TransactionStatus string `json:"transaction_status"`
	GrossAmount       string `json:"gross_amount"`
	StatusMessage     string `json:"status_message"`
}

// CreateTransaction requests a hosted checkout page for the given charge.
// Any failure (missing credentials, transport error, rejected payload) is
// reported in the result, never panicked or raised, so the enclosing
// request handler can surface it with a retry option.
func (p *midtransProvider) CreateTransaction(ctx context.Context, tx Transaction) TransactionResult {
	if p.serverKey == "" {
		return TransactionResult{
			Success:       false,
			TransactionID: tx.OrderID,
			Message:       "Midtrans server key not configured",
		}
	}

	var payload midtransChargeRequest
	payload.TransactionDetails.OrderID = tx.OrderID
	payload.TransactionDetails.GrossAmount = tx.Amount
	payload.CustomerDetails.FirstName = tx.Customer.FirstName
	payload.CustomerDetails.LastName = tx.Customer.LastName
	payload.CustomerDetails.Email = tx.Customer.Email
	payload.CustomerDetails.Phone = tx.Customer.Phone
	payload.CustomerDetails.ShippingAddress.Address = tx.Shipping.Address
	payload.CustomerDetails.ShippingAddress.City = tx.Shipping.City
	payload.CustomerDetails.ShippingAddress.PostalCode = tx.Shipping.PostalCode
	payload.Callbacks.Finish = p.finishURL

	payload.ItemDetails = make([]midtransItem, len(tx.Items))
	for i, item := range tx.Items {
		payload.ItemDetails[i] = midtransItem{
			ID:       item.ID,
			Price:    item.Price,
			Quantity: item.Quantity,
			Name:     item.Name,
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		p.logger.Error().Err(err).Str("order_id", tx.OrderID).Msg("failed to encode charge payload")
		return TransactionResult{
			Success:       false,
			TransactionID: tx.OrderID,
			Message:       "Failed to prepare payment request",
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/charge", bytes.NewReader(body))
	if err != nil {
		return TransactionResult{
			Success:       false,
			TransactionID: tx.OrderID,
			Message:       "Failed to prepare payment request",
		}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", p.authHeader())

	resp, err := p.client.Do(req)
	if err != nil {
		p.logger.Error().Err(err).Str("order_id", tx.OrderID).Msg("midtrans charge request failed")
		return TransactionResult{
			Success:       false,
			TransactionID: tx.OrderID,
			Message:       "Payment service temporarily unavailable",
		}
	}
	defer resp.Body.Close()

	var result midtransChargeResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		p.logger.Error().Err(err).Str("order_id", tx.OrderID).Msg("failed to decode charge response")
		return TransactionResult{
			Success:       false,
			TransactionID: tx.OrderID,
			Message:       "Payment service returned an unreadable response",
		}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 && result.RedirectURL != "" {
		p.logger.Info().
			Str("order_id", tx.OrderID).
			Int64("amount", tx.Amount).
			Msg("payment URL created")
		return TransactionResult{
			Success:       true,
			PaymentURL:    result.RedirectURL,
			TransactionID: tx.OrderID,
			Message:       "Payment URL created successfully",
		}
	}

	message := result.StatusMessage
	if message == "" {
		message = "Failed to create payment"
	}
	p.logger.Warn().
		Str("order_id", tx.OrderID).
		Int("status", resp.StatusCode).
		Str("message", message).
		Msg("midtrans rejected charge")

	return TransactionResult{
		Success:       false,
		TransactionID: tx.OrderID,
		Message:       message,
	}
}

// VerifyTransaction queries the gateway for the transaction's status and
// maps it onto the canonical enum. A transport failure defaults the status
// to pending rather than failing the caller.
func (p *midtransProvider) VerifyTransaction(ctx context.Context, transactionID string) VerificationResult {
	pending := VerificationResult{
		Success:       false,
		Status:        model.PaymentStatusPending,
		TransactionID: transactionID,
	}

	if p.serverKey == "" {
		return pending
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/"+transactionID+"/status", nil)
	if err != nil {
		return pending
	}
	req.Header.Set("Authorization", p.authHeader())

	resp, err := p.client.Do(req)
	if err != nil {
		p.logger.Error().Err(err).Str("transaction_id", transactionID).Msg("midtrans status request failed")
		return pending
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		p.logger.Warn().
			Str("transaction_id", transactionID).
			Int("status", resp.StatusCode).
			Msg("midtrans status lookup rejected")
		return pending
	}

	var result midtransStatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		p.logger.Error().Err(err).Str("transaction_id", transactionID).Msg("failed to decode status response")
		return pending
	}

	var amount int64
	if result.GrossAmount != "" {
		// Midtrans reports the amount as a decimal string, e.g. "30000.00".
		if f, err := strconv.ParseFloat(result.GrossAmount, 64); err == nil {
			amount = int64(f)
		}
	}

	status := mapMidtransStatus(result.TransactionStatus)
	p.logger.Debug().
		Str("transaction_id", transactionID).
		Str("provider_status", result.TransactionStatus).
		Str("status", string(status)).
		Msg("transaction verified")

	return VerificationResult{
		Success:       true,
		Status:        status,
		TransactionID: transactionID,
		Amount:        amount,
	}
}

// mapMidtransStatus maps the provider's status vocabulary onto the
// canonical enum. The mapping is many-to-one; anything unrecognised maps
// to pending, never to paid.
func mapMidtransStatus(providerStatus string) model.PaymentStatus {
	switch providerStatus {
	case "capture", "settlement":
		return model.PaymentStatusPaid
	case "pending":
		return model.PaymentStatusPending
	case "deny", "cancel", "expire":
		return model.PaymentStatusCancelled
	case "failure":
		return model.PaymentStatusFailed
	default:
		return model.PaymentStatusPending
	}
}

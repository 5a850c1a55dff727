package payment

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"donut-store/internal/config"
	"donut-store/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTransaction() Transaction {
	return Transaction{
		OrderID: "01JF5XN0ZW8Q6T3V1K2M4R5S6T",
		Amount:  48000,
		Customer: Customer{
			FirstName: "Budi",
			LastName:  "Santoso",
			Email:     "budi@example.com",
			Phone:     "+628123456789",
		},
		Shipping: Shipping{
			Address:    "Jl. Sudirman 1",
			City:       "Jakarta",
			PostalCode: "10110",
		},
		Items: []Item{
			{ID: "donut-glazed", Name: "Classic Glazed", Price: 15000, Quantity: 2},
			{ID: "donut-frosted", Name: "Chocolate Frosted", Price: 18000, Quantity: 1},
		},
	}
}

func newTestProvider(serverKey, baseURL string) Provider {
	return NewMidtrans(config.PaymentConfig{
		Provider:  config.PaymentProviderMidtrans,
		ServerKey: serverKey,
		BaseURL:   baseURL,
		FinishURL: "http://localhost:8080/payment/success",
	}, zerolog.Nop())
}

func TestMidtrans_CreateTransaction_Success(t *testing.T) {
	tx := testTransaction()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/charge", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		expectedAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte("SB-server-key:"))
		assert.Equal(t, expectedAuth, r.Header.Get("Authorization"))

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		details := payload["transaction_details"].(map[string]any)
		assert.Equal(t, tx.OrderID, details["order_id"])
		assert.Equal(t, float64(48000), details["gross_amount"])
		assert.Len(t, payload["item_details"], 2)

		json.NewEncoder(w).Encode(map[string]string{
			"redirect_url": "https://app.sandbox.midtrans.com/snap/v3/redirection/abc123",
		})
	}))
	defer server.Close()

	provider := newTestProvider("SB-server-key", server.URL)
	result := provider.CreateTransaction(context.Background(), tx)

	assert.True(t, result.Success)
	assert.Equal(t, "https://app.sandbox.midtrans.com/snap/v3/redirection/abc123", result.PaymentURL)
	assert.Equal(t, tx.OrderID, result.TransactionID, "transaction ID must be the order ID")
}

func TestMidtrans_CreateTransaction_Rejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{
			"status_message": "Access denied due to unauthorized transaction",
		})
	}))
	defer server.Close()

	provider := newTestProvider("bad-key", server.URL)
	result := provider.CreateTransaction(context.Background(), testTransaction())

	assert.False(t, result.Success)
	assert.Equal(t, "Access denied due to unauthorized transaction", result.Message)
	assert.Empty(t, result.PaymentURL)
}

func TestMidtrans_CreateTransaction_RejectedWithoutMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	provider := newTestProvider("SB-server-key", server.URL)
	result := provider.CreateTransaction(context.Background(), testTransaction())

	assert.False(t, result.Success)
	assert.Equal(t, "Failed to create payment", result.Message)
}

func TestMidtrans_CreateTransaction_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	provider := newTestProvider("SB-server-key", server.URL)
	result := provider.CreateTransaction(context.Background(), testTransaction())

	assert.False(t, result.Success)
	assert.Equal(t, "Payment service temporarily unavailable", result.Message)
	assert.Equal(t, testTransaction().OrderID, result.TransactionID)
}

func TestMidtrans_CreateTransaction_MissingServerKey(t *testing.T) {
	provider := newTestProvider("", "http://localhost:1")
	result := provider.CreateTransaction(context.Background(), testTransaction())

	assert.False(t, result.Success)
	assert.Equal(t, "Midtrans server key not configured", result.Message)
}

func TestMidtrans_CreateTransaction_SuccessStatusWithoutRedirectURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	provider := newTestProvider("SB-server-key", server.URL)
	result := provider.CreateTransaction(context.Background(), testTransaction())

	assert.False(t, result.Success, "2xx without a redirect URL is not a usable payment")
}

func TestMidtrans_VerifyTransaction_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/ORDER-1/status", r.URL.Path)

		json.NewEncoder(w).Encode(map[string]string{
			"transaction_status": "settlement",
			"gross_amount":       "48000.00",
		})
	}))
	defer server.Close()

	provider := newTestProvider("SB-server-key", server.URL)
	result := provider.VerifyTransaction(context.Background(), "ORDER-1")

	assert.True(t, result.Success)
	assert.Equal(t, model.PaymentStatusPaid, result.Status)
	assert.Equal(t, int64(48000), result.Amount)
	assert.Equal(t, "ORDER-1", result.TransactionID)
}

func TestMidtrans_VerifyTransaction_TransportFailureDefaultsToPending(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	provider := newTestProvider("SB-server-key", server.URL)
	result := provider.VerifyTransaction(context.Background(), "ORDER-1")

	assert.False(t, result.Success)
	assert.Equal(t, model.PaymentStatusPending, result.Status)
}

func TestMidtrans_VerifyTransaction_RejectedLookup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"status_message": "Transaction doesn't exist"}`))
	}))
	defer server.Close()

	provider := newTestProvider("SB-server-key", server.URL)
	result := provider.VerifyTransaction(context.Background(), "ORDER-404")

	assert.False(t, result.Success)
	assert.Equal(t, model.PaymentStatusPending, result.Status)
}

func TestMapMidtransStatus(t *testing.T) {
	tests := []struct {
		providerStatus string
		want           model.PaymentStatus
	}{
		{"capture", model.PaymentStatusPaid},
		{"settlement", model.PaymentStatusPaid},
		{"pending", model.PaymentStatusPending},
		{"deny", model.PaymentStatusCancelled},
		{"cancel", model.PaymentStatusCancelled},
		{"expire", model.PaymentStatusCancelled},
		{"failure", model.PaymentStatusFailed},
		{"fraud_review", model.PaymentStatusPending},
		{"", model.PaymentStatusPending},
		{"some_future_status", model.PaymentStatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.providerStatus, func(t *testing.T) {
			got := mapMidtransStatus(tt.providerStatus)
			assert.Equal(t, tt.want, got)
			if tt.want != model.PaymentStatusPaid {
				assert.NotEqual(t, model.PaymentStatusPaid, got, "unknown statuses must never map to paid")
			}
		})
	}
}

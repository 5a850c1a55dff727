// Package payment adapts orders onto hosted-checkout payment gateways.
// Gateway unavailability is a reportable, retryable outcome for the end
// user, so both operations encode failure in their result instead of
// returning an error.
package payment

import (
	"context"
	"fmt"
	"strings"

	"donut-store/internal/config"
	"donut-store/internal/model"

	"github.com/rs/zerolog"
)

// Provider is a payment gateway capable of creating a hosted-checkout
// transaction and verifying a transaction's status.
type Provider interface {
	Name() string
	CreateTransaction(ctx context.Context, tx Transaction) TransactionResult
	VerifyTransaction(ctx context.Context, transactionID string) VerificationResult
}

// Customer identifies the paying customer to the gateway.
type Customer struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// Shipping is the delivery address sent to the gateway.
type Shipping struct {
	Address    string
	City       string
	PostalCode string
}

// Item is one charged line item.
type Item struct {
	ID       string
	Name     string
	Price    int64
	Quantity int
}

// Transaction is a provider-independent charge request. OrderID doubles as
// the idempotency key: the same order must always send the same ID so the
// gateway can dedupe repeated charge attempts.
type Transaction struct {
	OrderID  string
	Amount   int64
	Customer Customer
	Shipping Shipping
	Items    []Item
}

// TransactionResult is the outcome of a charge attempt. When Success is
// false, Message carries a human-readable reason and the caller offers the
// user a retry.
type TransactionResult struct {
	Success       bool   `json:"success"`
	PaymentURL    string `json:"paymentUrl,omitempty"`
	TransactionID string `json:"transactionId"`
	Message       string `json:"message,omitempty"`
}

// VerificationResult is the outcome of a status check. Status is always one
// of the canonical four values; a transport failure yields Success=false
// with Status pending so the caller retries later.
type VerificationResult struct {
	Success       bool                `json:"success"`
	Status        model.PaymentStatus `json:"status"`
	TransactionID string              `json:"transactionId"`
	Amount        int64               `json:"amount,omitempty"`
}

// FromOrder builds the gateway charge request for an order.
func FromOrder(o *model.Order) Transaction {
	first, last := splitName(o.CustomerName)

	items := make([]Item, len(o.Items))
	for i, it := range o.Items {
		items[i] = Item{
			ID:       it.ProductID,
			Name:     it.Name,
			Price:    it.Price,
			Quantity: it.Quantity,
		}
	}

	return Transaction{
		OrderID: o.ID,
		Amount:  o.Total,
		Customer: Customer{
			FirstName: first,
			LastName:  last,
			Email:     o.CustomerEmail,
			Phone:     o.CustomerPhone,
		},
		Shipping: Shipping{
			Address:    o.Address,
			City:       o.City,
			PostalCode: o.PostalCode,
		},
		Items: items,
	}
}

// splitName splits a full name into first and last parts for gateways that
// want them separately.
func splitName(name string) (first, last string) {
	parts := strings.SplitN(strings.TrimSpace(name), " ", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return parts[0], ""
}

// New selects a provider by the configured name. An unrecognised name is a
// construction-time error, not a per-call one; callers fail fast at
// startup.
func New(cfg config.PaymentConfig, logger zerolog.Logger) (Provider, error) {
	switch cfg.Provider {
	case config.PaymentProviderMidtrans:
		return NewMidtrans(cfg, logger), nil
	case config.PaymentProviderXendit:
		return NewXendit(logger), nil
	default:
		return nil, fmt.Errorf("unsupported payment provider: %s", cfg.Provider)
	}
}

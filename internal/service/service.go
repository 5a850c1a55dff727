package service

import (
	"context"
	"time"

	"donut-store/internal/model"
	"donut-store/internal/payment"
)

// ProductService defines operations for catalogue management.
type ProductService interface {
	// List retrieves products with pagination. Storefront callers pass
	// onlyAvailable=true; the admin listing sees everything.
	List(ctx context.Context, onlyAvailable bool, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by ID, or nil when absent.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// Create adds a product to the catalogue, generating an ID when none
	// is supplied.
	Create(ctx context.Context, p *model.Product) error

	// Update replaces a product's mutable fields.
	Update(ctx context.Context, p *model.Product) error

	// Delete removes a product from the catalogue.
	Delete(ctx context.Context, id string) error
}

// CheckoutResult is the outcome of a checkout: the durably recorded order
// plus the gateway's charge attempt. Payment.Success false with a recorded
// order is the recoverable "pay again later" case, not an error.
type CheckoutResult struct {
	Order   *model.Order              `json:"order"`
	Payment payment.TransactionResult `json:"payment"`
}

// OrderService defines operations for the order/payment lifecycle.
type OrderService interface {
	// Checkout builds an order from the request, persists it, and then
	// requests a hosted-checkout transaction. The order is durably
	// recorded before the gateway is contacted; a gateway failure leaves
	// it pending/pending for a later retry.
	Checkout(ctx context.Context, req *model.CheckoutRequest) (*CheckoutResult, error)

	// RetryPayment requests a fresh hosted-checkout transaction for an
	// existing order, reusing the order ID as the idempotency key.
	RetryPayment(ctx context.Context, orderID string) (payment.TransactionResult, error)

	// VerifyPayment re-checks a transaction with the gateway and, when
	// verification succeeds, applies the canonical status to the order's
	// payment status. Order status is never touched.
	VerifyPayment(ctx context.Context, transactionID string) (payment.VerificationResult, error)

	// GetByID retrieves an order with its items, or nil when absent.
	GetByID(ctx context.Context, id string) (*model.Order, error)

	// List retrieves orders for the admin back-office.
	List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error)

	// SetStatus is the admin override for order status. Any valid value is
	// accepted regardless of the current state; the override is logged
	// with the acting user and the previous value.
	SetStatus(ctx context.Context, id string, status model.OrderStatus, actor string) error

	// SetPaymentStatus is the admin override for payment status, with the
	// same audit behaviour as SetStatus.
	SetPaymentStatus(ctx context.Context, id string, status model.PaymentStatus, actor string) error

	// SweepPending cancels orders stuck pending/pending for longer than
	// ttl and returns how many were cancelled.
	SweepPending(ctx context.Context, ttl time.Duration) (int64, error)
}

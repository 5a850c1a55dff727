package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are expected from s.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// PaymentStatus is the payment state of an order. The gateway verification
// flow only ever produces pending, paid, failed or cancelled; refunded is
// reachable through the admin override path alone.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusPaid      PaymentStatus = "paid"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusCancelled PaymentStatus = "cancelled"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// Valid reports whether s is a known payment status.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed,
		PaymentStatusCancelled, PaymentStatusRefunded:
		return true
	}
	return false
}

// Order is a customer order. Items, names and prices are snapshotted at
// creation time; later catalogue changes never alter an existing order.
// Only the two status fields (and the transaction ID) are mutated after
// creation.
type Order struct {
	ID            string        `json:"id" db:"id"`
	CustomerName  string        `json:"customerName" db:"customer_name"`
	CustomerPhone string        `json:"customerPhone" db:"customer_phone"`
	CustomerEmail string        `json:"customerEmail,omitempty" db:"customer_email"`
	Address       string        `json:"address" db:"address"`
	City          string        `json:"city,omitempty" db:"city"`
	PostalCode    string        `json:"postalCode,omitempty" db:"postal_code"`
	Items         []OrderItem   `json:"items"`
	Total         int64         `json:"total" db:"total"`
	Status        OrderStatus   `json:"status" db:"status"`
	PaymentStatus PaymentStatus `json:"paymentStatus" db:"payment_status"`
	TransactionID *string       `json:"transactionId,omitempty" db:"transaction_id"`
	Notes         *string       `json:"notes,omitempty" db:"notes"`
	CreatedAt     time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time     `json:"updatedAt" db:"updated_at"`
}

// OrderItem is a line item snapshotted into an order.
type OrderItem struct {
	ID        uuid.UUID `json:"-" db:"id"`
	OrderID   string    `json:"-" db:"order_id"`
	ProductID string    `json:"productId" db:"product_id"`
	Name      string    `json:"name" db:"name"`
	Price     int64     `json:"price" db:"price"`
	Quantity  int       `json:"quantity" db:"quantity"`
}

// OrderFilter narrows admin order listings.
type OrderFilter struct {
	Status        OrderStatus
	PaymentStatus PaymentStatus
	Limit         int
	Offset        int
}

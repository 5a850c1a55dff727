package repository

import (
	"context"
	"time"

	"donut-store/internal/model"

	"github.com/jackc/pgx/v5"
)

// ProductRepository defines the interface for catalogue data access.
// Storefront callers only read; mutation belongs to the admin surface and
// the seeding tool, plus stock adjustment for the legacy cart mode.
type ProductRepository interface {
	// List retrieves products with pagination. When onlyAvailable is set,
	// unavailable products are filtered out.
	List(ctx context.Context, onlyAvailable bool, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product, or nil when absent.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// GetByIDs retrieves multiple products by their IDs.
	GetByIDs(ctx context.Context, ids []string) ([]model.Product, error)

	// Create inserts a new product.
	Create(ctx context.Context, p *model.Product) error

	// Update replaces the mutable fields of a product.
	// Returns model.ErrProductNotFound when the product does not exist.
	Update(ctx context.Context, p *model.Product) error

	// Delete removes a product.
	// Returns model.ErrProductNotFound when the product does not exist.
	Delete(ctx context.Context, id string) error

	// Upsert inserts the product or refreshes an existing row, used by the
	// catalogue seeder.
	Upsert(ctx context.Context, p *model.Product) error

	// AdjustStock changes available stock by delta. A decrement below zero
	// is rejected with model.ErrInsufficientStock and leaves the row
	// unchanged.
	AdjustStock(ctx context.Context, id string, delta int) error
}

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts the order's line items within the provided
	// transaction.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// GetByID retrieves an order with its items, or nil when absent.
	GetByID(ctx context.Context, id string) (*model.Order, error)

	// List retrieves orders matching the filter, newest first.
	List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error)

	// UpdateStatus sets the order status.
	// Returns model.ErrOrderNotFound when the order does not exist.
	UpdateStatus(ctx context.Context, id string, status model.OrderStatus) error

	// UpdatePaymentStatus sets the payment status.
	// Returns model.ErrOrderNotFound when the order does not exist.
	UpdatePaymentStatus(ctx context.Context, id string, status model.PaymentStatus) error

	// SetTransactionID records the gateway transaction identifier.
	SetTransactionID(ctx context.Context, id, transactionID string) error

	// CancelStalePending cancels orders still pending/pending created
	// before the cutoff and returns how many were affected.
	CancelStalePending(ctx context.Context, before time.Time) (int64, error)
}

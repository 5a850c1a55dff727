package cart

import (
	"context"

	"github.com/rs/zerolog"
)

// StockStore adjusts per-product available stock. A negative delta that
// would take stock below zero must be rejected with
// model.ErrInsufficientStock and leave the stored value unchanged.
type StockStore interface {
	AdjustStock(ctx context.Context, productID string, delta int) error
}

// Ledger moves catalogue stock in step with cart contents: stock is taken
// when items enter a cart and given back when they leave. This is the
// legacy behaviour of the in-memory storefront; the canonical checkout
// flow runs without it. The store is injected rather than ambient so
// concurrent decrements are visible and controllable in tests.
type Ledger struct {
	store  StockStore
	logger zerolog.Logger
}

// NewLedger creates a stock ledger over the given store.
func NewLedger(store StockStore, logger zerolog.Logger) *Ledger {
	return &Ledger{
		store:  store,
		logger: logger.With().Str("component", "stock-ledger").Logger(),
	}
}

// Reserve takes quantity units of the product out of available stock.
func (l *Ledger) Reserve(ctx context.Context, productID string, quantity int) error {
	if quantity < 1 {
		return nil
	}

	if err := l.store.AdjustStock(ctx, productID, -quantity); err != nil {
		l.logger.Warn().
			Err(err).
			Str("product_id", productID).
			Int("quantity", quantity).
			Msg("failed to reserve stock")
		return err
	}

	l.logger.Debug().
		Str("product_id", productID).
		Int("quantity", quantity).
		Msg("stock reserved")

	return nil
}

// Release returns quantity units of the product to available stock.
func (l *Ledger) Release(ctx context.Context, productID string, quantity int) error {
	if quantity < 1 {
		return nil
	}

	if err := l.store.AdjustStock(ctx, productID, quantity); err != nil {
		l.logger.Error().
			Err(err).
			Str("product_id", productID).
			Int("quantity", quantity).
			Msg("failed to release stock")
		return err
	}

	return nil
}

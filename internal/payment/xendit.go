package payment

import (
	"context"

	"donut-store/internal/model"

	"github.com/rs/zerolog"
)

// xenditProvider is a placeholder for the Xendit Invoice API. Both
// operations report not-implemented outcomes so a misconfigured deployment
// degrades to user-visible messages instead of crashing.
type xenditProvider struct {
	logger zerolog.Logger
}

// NewXendit creates the Xendit stub provider.
func NewXendit(logger zerolog.Logger) Provider {
	return &xenditProvider{
		logger: logger.With().Str("component", "xendit").Logger(),
	}
}

func (p *xenditProvider) Name() string {
	return "Xendit"
}

func (p *xenditProvider) CreateTransaction(ctx context.Context, tx Transaction) TransactionResult {
	p.logger.Info().Str("order_id", tx.OrderID).Msg("xendit transaction requested")

	return TransactionResult{
		Success:       false,
		TransactionID: tx.OrderID,
		Message:       "Xendit integration not yet implemented",
	}
}

func (p *xenditProvider) VerifyTransaction(ctx context.Context, transactionID string) VerificationResult {
	p.logger.Info().Str("transaction_id", transactionID).Msg("xendit verification requested")

	return VerificationResult{
		Success:       false,
		Status:        model.PaymentStatusPending,
		TransactionID: transactionID,
	}
}

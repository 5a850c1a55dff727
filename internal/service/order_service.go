package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"donut-store/internal/model"
	"donut-store/internal/payment"
	"donut-store/internal/repository"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo repository.OrderRepository
	provider  payment.Provider
	logger    zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	provider payment.Provider,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		provider:  provider,
		logger:    logger.With().Str("service", "order").Logger(),
	}
}

// newOrderFromCheckout builds an order from a checkout request: validation,
// a fresh ULID identifier, an item snapshot, and the computed total. It has
// no side effects; persistence and cart clearing belong to the caller.
func newOrderFromCheckout(req *model.CheckoutRequest, now time.Time) (*model.Order, error) {
	if req == nil {
		return nil, model.NewValidationError("checkout request is required")
	}
	if len(req.Items) == 0 {
		return nil, model.ErrEmptyCart
	}
	if strings.TrimSpace(req.CustomerName) == "" {
		return nil, model.NewValidationError("customer name is required")
	}
	if strings.TrimSpace(req.CustomerPhone) == "" {
		return nil, model.NewValidationError("customer phone is required")
	}
	if strings.TrimSpace(req.Address) == "" {
		return nil, model.NewValidationError("delivery address is required")
	}

	orderID := ulid.Make().String()

	var total int64
	items := make([]model.OrderItem, len(req.Items))
	for i, item := range req.Items {
		if item.Quantity < 1 {
			return nil, model.ErrInvalidQuantity
		}
		if item.Price < 0 {
			return nil, model.NewValidationError("item price cannot be negative")
		}

		items[i] = model.OrderItem{
			ID:        uuid.New(),
			OrderID:   orderID,
			ProductID: item.ID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		}
		total += item.Price * int64(item.Quantity)
	}

	order := &model.Order{
		ID:            orderID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		Address:       req.Address,
		City:          req.City,
		PostalCode:    req.PostalCode,
		Items:         items,
		Total:         total,
		Status:        model.OrderStatusPending,
		PaymentStatus: model.PaymentStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if strings.TrimSpace(req.Notes) != "" {
		notes := req.Notes
		order.Notes = &notes
	}

	return order, nil
}

// Checkout runs the checkout flow in its required order: build, durably
// persist, then contact the gateway. The order is never rolled back when
// the gateway call fails; it stays pending/pending and the user retries.
func (s *orderService) Checkout(ctx context.Context, req *model.CheckoutRequest) (*CheckoutResult, error) {
	order, err := newOrderFromCheckout(req, time.Now())
	if err != nil {
		return nil, err
	}

	if err := s.persistOrder(ctx, order); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID).Msg("failed to persist order")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Info().
		Str("order_id", order.ID).
		Int64("total", order.Total).
		Int("item_count", len(order.Items)).
		Msg("order created")

	result := s.provider.CreateTransaction(ctx, payment.FromOrder(order))
	if result.Success {
		if err := s.orderRepo.SetTransactionID(ctx, order.ID, result.TransactionID); err != nil {
			// The transaction ID equals the order ID, so losing this write
			// does not orphan the payment; log and move on.
			s.logger.Warn().Err(err).Str("order_id", order.ID).Msg("failed to record transaction ID")
		} else {
			txID := result.TransactionID
			order.TransactionID = &txID
		}
	} else {
		s.logger.Warn().
			Str("order_id", order.ID).
			Str("message", result.Message).
			Msg("gateway transaction failed; order remains pending")
	}

	return &CheckoutResult{
		Order:   order,
		Payment: result,
	}, nil
}

func (s *orderService) persistOrder(ctx context.Context, order *model.Order) (err error) {
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		return err
	}

	if err = s.orderRepo.CreateOrderItems(ctx, tx, order.Items); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return err
	}

	return nil
}

// RetryPayment requests a fresh hosted-checkout transaction for an
// existing order. The order ID is reused so the gateway can dedupe.
func (s *orderService) RetryPayment(ctx context.Context, orderID string) (payment.TransactionResult, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return payment.TransactionResult{}, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return payment.TransactionResult{}, model.ErrOrderNotFound
	}
	if order.PaymentStatus == model.PaymentStatusPaid {
		return payment.TransactionResult{}, model.NewValidationError("order is already paid")
	}

	result := s.provider.CreateTransaction(ctx, payment.FromOrder(order))
	if result.Success && order.TransactionID == nil {
		if err := s.orderRepo.SetTransactionID(ctx, order.ID, result.TransactionID); err != nil {
			s.logger.Warn().Err(err).Str("order_id", order.ID).Msg("failed to record transaction ID")
		}
	}

	s.logger.Info().
		Str("order_id", orderID).
		Bool("success", result.Success).
		Msg("payment retry requested")

	return result, nil
}

// VerifyPayment re-checks the transaction with the gateway. The canonical
// status is applied to the order's payment status only when verification
// succeeded; order status is never coupled to it.
func (s *orderService) VerifyPayment(ctx context.Context, transactionID string) (payment.VerificationResult, error) {
	if transactionID == "" {
		return payment.VerificationResult{}, model.NewValidationError("transaction ID is required")
	}

	result := s.provider.VerifyTransaction(ctx, transactionID)
	if !result.Success {
		s.logger.Warn().
			Str("transaction_id", transactionID).
			Msg("verification unavailable; leaving payment status untouched")
		return result, nil
	}

	// The transaction ID is the order ID.
	if err := s.orderRepo.UpdatePaymentStatus(ctx, transactionID, result.Status); err != nil {
		if errors.Is(err, model.ErrOrderNotFound) {
			return result, model.ErrOrderNotFound
		}
		s.logger.Error().Err(err).Str("transaction_id", transactionID).Msg("failed to apply payment status")
		return result, fmt.Errorf("failed to apply payment status: %w", err)
	}

	s.logger.Info().
		Str("transaction_id", transactionID).
		Str("payment_status", string(result.Status)).
		Msg("payment status verified")

	return result, nil
}

// GetByID retrieves an order with its items.
func (s *orderService) GetByID(ctx context.Context, id string) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return order, nil
}

// List retrieves orders for the admin back-office.
func (s *orderService) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, model.ErrInvalidStatus
	}
	if filter.PaymentStatus != "" && !filter.PaymentStatus.Valid() {
		return nil, model.ErrInvalidStatus
	}

	orders, err := s.orderRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return orders, nil
}

// SetStatus is the admin override for order status. No transition table is
// enforced; the override is audited instead.
func (s *orderService) SetStatus(ctx context.Context, id string, status model.OrderStatus, actor string) error {
	if !status.Valid() {
		return model.ErrInvalidStatus
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return model.ErrOrderNotFound
	}

	if err := s.orderRepo.UpdateStatus(ctx, id, status); err != nil {
		s.logger.Error().Err(err).Str("order_id", id).Msg("failed to update order status")
		return fmt.Errorf("failed to update order status: %w", err)
	}

	s.logger.Info().
		Str("order_id", id).
		Str("actor", actor).
		Str("previous_status", string(order.Status)).
		Str("status", string(status)).
		Msg("order status overridden by admin")

	return nil
}

// SetPaymentStatus is the admin override for payment status.
func (s *orderService) SetPaymentStatus(ctx context.Context, id string, status model.PaymentStatus, actor string) error {
	if !status.Valid() {
		return model.ErrInvalidStatus
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return model.ErrOrderNotFound
	}

	if err := s.orderRepo.UpdatePaymentStatus(ctx, id, status); err != nil {
		s.logger.Error().Err(err).Str("order_id", id).Msg("failed to update payment status")
		return fmt.Errorf("failed to update payment status: %w", err)
	}

	s.logger.Info().
		Str("order_id", id).
		Str("actor", actor).
		Str("previous_payment_status", string(order.PaymentStatus)).
		Str("payment_status", string(status)).
		Msg("payment status overridden by admin")

	return nil
}

// SweepPending cancels orders abandoned before payment.
func (s *orderService) SweepPending(ctx context.Context, ttl time.Duration) (int64, error) {
	if ttl <= 0 {
		return 0, nil
	}

	cutoff := time.Now().Add(-ttl)
	count, err := s.orderRepo.CancelStalePending(ctx, cutoff)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to sweep pending orders")
		return 0, fmt.Errorf("failed to sweep pending orders: %w", err)
	}

	if count > 0 {
		s.logger.Info().
			Int64("count", count).
			Time("cutoff", cutoff).
			Msg("stale pending orders cancelled")
	}

	return count, nil
}

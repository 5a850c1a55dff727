package handler

import (
	"context"
	"time"

	"donut-store/internal/model"
	"donut-store/internal/payment"
	"donut-store/internal/service"

	"github.com/stretchr/testify/mock"
)

// MockProductService is a mock implementation of service.ProductService.
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) List(ctx context.Context, onlyAvailable bool, limit, offset int) ([]model.Product, error) {
	args := m.Called(ctx, onlyAvailable, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductService) GetByID(ctx context.Context, id string) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) Create(ctx context.Context, p *model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductService) Update(ctx context.Context, p *model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockOrderService is a mock implementation of service.OrderService.
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) Checkout(ctx context.Context, req *model.CheckoutRequest) (*service.CheckoutResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CheckoutResult), args.Error(1)
}

func (m *MockOrderService) RetryPayment(ctx context.Context, orderID string) (payment.TransactionResult, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(payment.TransactionResult), args.Error(1)
}

func (m *MockOrderService) VerifyPayment(ctx context.Context, transactionID string) (payment.VerificationResult, error) {
	args := m.Called(ctx, transactionID)
	return args.Get(0).(payment.VerificationResult), args.Error(1)
}

func (m *MockOrderService) GetByID(ctx context.Context, id string) (*model.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderService) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderService) SetStatus(ctx context.Context, id string, status model.OrderStatus, actor string) error {
	args := m.Called(ctx, id, status, actor)
	return args.Error(0)
}

func (m *MockOrderService) SetPaymentStatus(ctx context.Context, id string, status model.PaymentStatus, actor string) error {
	args := m.Called(ctx, id, status, actor)
	return args.Error(0)
}

func (m *MockOrderService) SweepPending(ctx context.Context, ttl time.Duration) (int64, error) {
	args := m.Called(ctx, ttl)
	return args.Get(0).(int64), args.Error(1)
}

package handler

import (
	"context"

	"coffee-server/internal/domain/donation"
	"coffee-server/internal/domain/parent"

	"github.com/stretchr/testify/mock"
)

// MockCheckoutGateway モック決済ゲートウェイ
type MockCheckoutGateway struct {
	mock.Mock
}

func (m *MockCheckoutGateway) CreateCheckout(ctx context.Context, userID string, req *parent.CheckoutSessionRequest) (*parent.CheckoutSession, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parent.CheckoutSession), args.Error(1)
}

// MockStatusGateway モックステータスゲートウェイ
type MockStatusGateway struct {
	mock.Mock
}

func (m *MockStatusGateway) CheckStatus(ctx context.Context, userID, projectID string) (*parent.StatusResult, error) {
	args := m.Called(ctx, userID, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parent.StatusResult), args.Error(1)
}

// MockCheckoutRecordRepository モック決済記録リポジトリ
type MockCheckoutRecordRepository struct {
	mock.Mock
}

func (m *MockCheckoutRecordRepository) Save(ctx context.Context, record *donation.CheckoutRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockCheckoutRecordRepository) Stats(ctx context.Context) (donation.Stats, error) {
	args := m.Called(ctx)
	return args.Get(0).(donation.Stats), args.Error(1)
}

// MockHealthChecker モックヘルスチェッカー
type MockHealthChecker struct {
	mock.Mock
}

func (m *MockHealthChecker) HealthCheck(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

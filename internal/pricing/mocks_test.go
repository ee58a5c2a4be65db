package pricing

import (
	"context"
	"time"

	"kitedesk/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockServiceRepository is a mock implementation of repository.ServiceRepository.
type MockServiceRepository struct {
	mock.Mock
}

func (m *MockServiceRepository) GetAll(ctx context.Context, limit, offset int) ([]model.Service, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Service), args.Error(1)
}

func (m *MockServiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Service), args.Error(1)
}

func (m *MockServiceRepository) GetLessonConfig(ctx context.Context, serviceID uuid.UUID) (*model.LessonConfig, error) {
	args := m.Called(ctx, serviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LessonConfig), args.Error(1)
}

func (m *MockServiceRepository) GetRentalConfig(ctx context.Context, serviceID uuid.UUID) (*model.RentalConfig, error) {
	args := m.Called(ctx, serviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RentalConfig), args.Error(1)
}

func (m *MockServiceRepository) GetStorageConfig(ctx context.Context, serviceID uuid.UUID) (*model.StorageConfig, error) {
	args := m.Called(ctx, serviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.StorageConfig), args.Error(1)
}

func (m *MockServiceRepository) GetPricingTiers(ctx context.Context, serviceID uuid.UUID) ([]model.PricingTier, error) {
	args := m.Called(ctx, serviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PricingTier), args.Error(1)
}

// MockOrderRepository is a mock implementation of repository.OrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) GetAll(ctx context.Context, limit, offset int) ([]model.Order, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderRepository) GetKind(ctx context.Context, orderID uuid.UUID) (model.OrderKind, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(model.OrderKind), args.Error(1)
}

func (m *MockOrderRepository) GetLessonDetail(ctx context.Context, orderID uuid.UUID) (*model.LessonDetail, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LessonDetail), args.Error(1)
}

func (m *MockOrderRepository) GetRentalDetail(ctx context.Context, orderID uuid.UUID) (*model.RentalDetail, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RentalDetail), args.Error(1)
}

func (m *MockOrderRepository) GetStorageDetail(ctx context.Context, orderID uuid.UUID) (*model.StorageDetail, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.StorageDetail), args.Error(1)
}

func (m *MockOrderRepository) ListServiceScope(ctx context.Context, serviceID, customerID uuid.UUID) ([]model.ScopedOrder, error) {
	args := m.Called(ctx, serviceID, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ScopedOrder), args.Error(1)
}

func (m *MockOrderRepository) ListGroupScope(ctx context.Context, groupID, customerID uuid.UUID) ([]model.ScopedOrder, error) {
	args := m.Called(ctx, groupID, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ScopedOrder), args.Error(1)
}

func (m *MockOrderRepository) ListCustomerScope(ctx context.Context, customerID uuid.UUID) ([]model.ScopedOrder, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ScopedOrder), args.Error(1)
}

func (m *MockOrderRepository) ListGroupLessonOrders(ctx context.Context, groupID uuid.UUID) ([]model.PendingOrder, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PendingOrder), args.Error(1)
}

func (m *MockOrderRepository) ListCustomerLessonOrders(ctx context.Context, customerID uuid.UUID) ([]model.PendingOrder, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PendingOrder), args.Error(1)
}

func (m *MockOrderRepository) ListMissingPrices(ctx context.Context, customerID *uuid.UUID) ([]model.PendingOrder, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PendingOrder), args.Error(1)
}

func (m *MockOrderRepository) UpdateCalculatedPrice(ctx context.Context, orderID uuid.UUID, price, pricePerHour, hours float64, at time.Time) error {
	args := m.Called(ctx, orderID, price, pricePerHour, hours, at)
	return args.Error(0)
}

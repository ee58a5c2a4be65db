package pricing

import (
	"context"
	"errors"
	"testing"
	"time"

	"kitedesk/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var calcTime = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestEngine(services *MockServiceRepository, orders *MockOrderRepository) *Engine {
	e := NewEngine(services, orders, zerolog.Nop())
	e.now = func() time.Time { return calcTime }
	return e
}

func lessonWindow(orderID uuid.UUID, hours float64) *model.LessonDetail {
	start := time.Date(2026, 6, 10, 9, 0, 0, 0, time.UTC)
	return &model.LessonDetail{
		OrderID:  orderID,
		Starting: start,
		Ending:   start.Add(time.Duration(hours * float64(time.Hour))),
	}
}

func scoped(orderID uuid.UUID, hours float64) model.ScopedOrder {
	start := time.Date(2026, 6, 10, 9, 0, 0, 0, time.UTC)
	return model.ScopedOrder{
		OrderID:  orderID,
		Starting: start,
		Ending:   start.Add(time.Duration(hours * float64(time.Hour))),
	}
}

func TestCalculateLessonPrice_FlatRate(t *testing.T) {
	ctx := context.Background()
	orderID, serviceID, customerID := uuid.New(), uuid.New(), uuid.New()

	services := new(MockServiceRepository)
	orders := new(MockOrderRepository)
	engine := newTestEngine(services, orders)

	services.On("GetLessonConfig", ctx, serviceID).Return(&model.LessonConfig{
		ServiceID:        serviceID,
		TierScope:        model.ScopeServiceOnly,
		BasePricePerHour: 50,
	}, nil)
	orders.On("GetLessonDetail", ctx, orderID).Return(lessonWindow(orderID, 2), nil)
	orders.On("UpdateCalculatedPrice", ctx, orderID, 100.0, 50.0, 2.0, calcTime).Return(nil)

	result, err := engine.CalculateLessonPrice(ctx, orderID, serviceID, customerID)

	require.NoError(t, err)
	assert.Equal(t, 100.0, result.Price)
	assert.Equal(t, 50.0, result.PricePerHour)
	assert.Equal(t, 2.0, result.TotalHours)
	assert.Nil(t, result.Tier)

	services.AssertExpectations(t)
	orders.AssertExpectations(t)
}

func TestCalculateLessonPrice_TieredServiceScope(t *testing.T) {
	ctx := context.Background()
	orderID, serviceID, customerID := uuid.New(), uuid.New(), uuid.New()
	siblingID := uuid.New()

	services := new(MockServiceRepository)
	orders := new(MockOrderRepository)
	engine := newTestEngine(services, orders)

	services.On("GetLessonConfig", ctx, serviceID).Return(&model.LessonConfig{
		ServiceID:              serviceID,
		RequiresPackagePricing: true,
		TierScope:              model.ScopeServiceOnly,
		BasePricePerHour:       50,
	}, nil)
	orders.On("GetLessonDetail", ctx, orderID).Return(lessonWindow(orderID, 3), nil)
	orders.On("ListServiceScope", ctx, serviceID, customerID).Return([]model.ScopedOrder{
		scoped(orderID, 3),
		scoped(siblingID, 3),
	}, nil)
	services.On("GetPricingTiers", ctx, serviceID).Return([]model.PricingTier{
		{FromHours: 0, ToHours: ptr(5), PricePerHour: 45},
		{FromHours: 5, ToHours: nil, PricePerHour: 40},
	}, nil)
	// 6 aggregate hours land in the second tier; only the current order is
	// written because service_only scopes never cascade.
	orders.On("UpdateCalculatedPrice", ctx, orderID, 120.0, 40.0, 3.0, calcTime).Return(nil)

	result, err := engine.CalculateLessonPrice(ctx, orderID, serviceID, customerID)

	require.NoError(t, err)
	assert.Equal(t, 120.0, result.Price)
	assert.Equal(t, 40.0, result.PricePerHour)
	assert.Equal(t, 6.0, result.TotalHours)
	require.NotNil(t, result.Tier)
	assert.Equal(t, 40.0, result.Tier.PricePerHour)

	orders.AssertNumberOfCalls(t, "UpdateCalculatedPrice", 1)
	services.AssertExpectations(t)
	orders.AssertExpectations(t)
}

func TestCalculateLessonPrice_GroupCascade(t *testing.T) {
	ctx := context.Background()
	orderID, serviceID, customerID := uuid.New(), uuid.New(), uuid.New()
	siblingID, groupID := uuid.New(), uuid.New()

	services := new(MockServiceRepository)
	orders := new(MockOrderRepository)
	engine := newTestEngine(services, orders)

	services.On("GetLessonConfig", ctx, serviceID).Return(&model.LessonConfig{
		ServiceID:              serviceID,
		RequiresPackagePricing: true,
		TierScope:              model.ScopeOrderGroup,
		BasePricePerHour:       10,
	}, nil)
	orders.On("GetLessonDetail", ctx, orderID).Return(lessonWindow(orderID, 2), nil)
	orders.On("GetByID", ctx, orderID).Return(&model.Order{
		ID:         orderID,
		CustomerID: customerID,
		ServiceID:  serviceID,
		GroupID:    &groupID,
	}, nil)
	orders.On("ListGroupScope", ctx, groupID, customerID).Return([]model.ScopedOrder{
		scoped(orderID, 2),
		scoped(siblingID, 2),
	}, nil)
	services.On("GetPricingTiers", ctx, serviceID).Return([]model.PricingTier{
		{FromHours: 0, ToHours: ptr(4), PricePerHour: 10},
		{FromHours: 4, ToHours: nil, PricePerHour: 8},
	}, nil)
	// Both orders land at the aggregate rate of 8/hr.
	orders.On("UpdateCalculatedPrice", ctx, orderID, 16.0, 8.0, 2.0, calcTime).Return(nil)
	orders.On("UpdateCalculatedPrice", ctx, siblingID, 16.0, 8.0, 2.0, calcTime).Return(nil)

	result, err := engine.CalculateLessonPrice(ctx, orderID, serviceID, customerID)

	require.NoError(t, err)
	assert.Equal(t, 16.0, result.Price)
	assert.Equal(t, 8.0, result.PricePerHour)
	assert.Equal(t, 4.0, result.TotalHours)

	orders.AssertNumberOfCalls(t, "UpdateCalculatedPrice", 2)
	services.AssertExpectations(t)
	orders.AssertExpectations(t)
}

func TestCalculateLessonPrice_UngroupedOrderAggregatesAlone(t *testing.T) {
	ctx := context.Background()
	orderID, serviceID, customerID := uuid.New(), uuid.New(), uuid.New()

	services := new(MockServiceRepository)
	orders := new(MockOrderRepository)
	engine := newTestEngine(services, orders)

	services.On("GetLessonConfig", ctx, serviceID).Return(&model.LessonConfig{
		ServiceID:              serviceID,
		RequiresPackagePricing: true,
		TierScope:              model.ScopeOrderGroup,
		BasePricePerHour:       10,
	}, nil)
	orders.On("GetLessonDetail", ctx, orderID).Return(lessonWindow(orderID, 2), nil)
	orders.On("GetByID", ctx, orderID).Return(&model.Order{
		ID:         orderID,
		CustomerID: customerID,
		ServiceID:  serviceID,
	}, nil)
	services.On("GetPricingTiers", ctx, serviceID).Return([]model.PricingTier{
		{FromHours: 0, ToHours: ptr(4), PricePerHour: 10},
		{FromHours: 4, ToHours: nil, PricePerHour: 8},
	}, nil)
	orders.On("UpdateCalculatedPrice", ctx, orderID, 20.0, 10.0, 2.0, calcTime).Return(nil)

	result, err := engine.CalculateLessonPrice(ctx, orderID, serviceID, customerID)

	require.NoError(t, err)
	assert.Equal(t, 2.0, result.TotalHours)
	assert.Equal(t, 10.0, result.PricePerHour)

	orders.AssertNumberOfCalls(t, "UpdateCalculatedPrice", 1)
	orders.AssertExpectations(t)
}

func TestCalculateLessonPrice_CustomerScope(t *testing.T) {
	ctx := context.Background()
	orderID, serviceID, customerID := uuid.New(), uuid.New(), uuid.New()
	siblingID := uuid.New()

	services := new(MockServiceRepository)
	orders := new(MockOrderRepository)
	engine := newTestEngine(services, orders)

	services.On("GetLessonConfig", ctx, serviceID).Return(&model.LessonConfig{
		ServiceID:              serviceID,
		RequiresPackagePricing: true,
		TierScope:              model.ScopeCustomerAll,
		BasePricePerHour:       30,
	}, nil)
	orders.On("GetLessonDetail", ctx, orderID).Return(lessonWindow(orderID, 1.5), nil)
	orders.On("ListCustomerScope", ctx, customerID).Return([]model.ScopedOrder{
		scoped(orderID, 1.5),
		scoped(siblingID, 2.5),
	}, nil)
	services.On("GetPricingTiers", ctx, serviceID).Return([]model.PricingTier{
		{FromHours: 0, ToHours: ptr(3), PricePerHour: 30},
		{FromHours: 3, ToHours: nil, PricePerHour: 25},
	}, nil)
	orders.On("UpdateCalculatedPrice", ctx, orderID, 37.5, 25.0, 1.5, calcTime).Return(nil)
	orders.On("UpdateCalculatedPrice", ctx, siblingID, 62.5, 25.0, 2.5, calcTime).Return(nil)

	result, err := engine.CalculateLessonPrice(ctx, orderID, serviceID, customerID)

	require.NoError(t, err)
	assert.Equal(t, 4.0, result.TotalHours)
	assert.Equal(t, 25.0, result.PricePerHour)
	orders.AssertExpectations(t)
}

func TestCalculateLessonPrice_BaseRateWhenNoTierMatches(t *testing.T) {
	ctx := context.Background()
	orderID, serviceID, customerID := uuid.New(), uuid.New(), uuid.New()

	services := new(MockServiceRepository)
	orders := new(MockOrderRepository)
	engine := newTestEngine(services, orders)

	services.On("GetLessonConfig", ctx, serviceID).Return(&model.LessonConfig{
		ServiceID:              serviceID,
		RequiresPackagePricing: true,
		TierScope:              model.ScopeServiceOnly,
		BasePricePerHour:       55,
	}, nil)
	orders.On("GetLessonDetail", ctx, orderID).Return(lessonWindow(orderID, 2), nil)
	orders.On("ListServiceScope", ctx, serviceID, customerID).Return([]model.ScopedOrder{
		scoped(orderID, 2),
	}, nil)
	// Empty tier table: the service's base rate applies instead of zero.
	services.On("GetPricingTiers", ctx, serviceID).Return([]model.PricingTier{}, nil)
	orders.On("UpdateCalculatedPrice", ctx, orderID, 110.0, 55.0, 2.0, calcTime).Return(nil)

	result, err := engine.CalculateLessonPrice(ctx, orderID, serviceID, customerID)

	require.NoError(t, err)
	assert.Equal(t, 55.0, result.PricePerHour)
	assert.Nil(t, result.Tier)
	orders.AssertExpectations(t)
}

func TestCalculateLessonPrice_ServiceConfigNotFound(t *testing.T) {
	ctx := context.Background()
	orderID, serviceID, customerID := uuid.New(), uuid.New(), uuid.New()

	services := new(MockServiceRepository)
	orders := new(MockOrderRepository)
	engine := newTestEngine(services, orders)

	services.On("GetLessonConfig", ctx, serviceID).Return(nil, nil)

	result, err := engine.CalculateLessonPrice(ctx, orderID, serviceID, customerID)

	require.ErrorIs(t, err, model.ErrServiceConfigNotFound)
	assert.Nil(t, result)
	orders.AssertNotCalled(t, "UpdateCalculatedPrice")
}

func TestCalculateLessonPrice_MissingDetailWritesNothing(t *testing.T) {
	ctx := context.Background()
	orderID, serviceID, customerID := uuid.New(), uuid.New(), uuid.New()

	services := new(MockServiceRepository)
	orders := new(MockOrderRepository)
	engine := newTestEngine(services, orders)

	services.On("GetLessonConfig", ctx, serviceID).Return(&model.LessonConfig{
		ServiceID:        serviceID,
		BasePricePerHour: 50,
	}, nil)
	orders.On("GetLessonDetail", ctx, orderID).Return(nil, nil)

	result, err := engine.CalculateLessonPrice(ctx, orderID, serviceID, customerID)

	require.ErrorIs(t, err, model.ErrOrderDetailNotFound)
	assert.Nil(t, result)
	orders.AssertNotCalled(t, "UpdateCalculatedPrice")
}

func TestCalculateLessonPrice_Idempotent(t *testing.T) {
	ctx := context.Background()
	orderID, serviceID, customerID := uuid.New(), uuid.New(), uuid.New()

	services := new(MockServiceRepository)
	orders := new(MockOrderRepository)
	engine := newTestEngine(services, orders)

	services.On("GetLessonConfig", ctx, serviceID).Return(&model.LessonConfig{
		ServiceID:        serviceID,
		TierScope:        model.ScopeServiceOnly,
		BasePricePerHour: 50,
	}, nil)
	orders.On("GetLessonDetail", ctx, orderID).Return(lessonWindow(orderID, 2), nil)
	orders.On("UpdateCalculatedPrice", ctx, orderID, 100.0, 50.0, 2.0, calcTime).Return(nil)

	first, err := engine.CalculateLessonPrice(ctx, orderID, serviceID, customerID)
	require.NoError(t, err)
	second, err := engine.CalculateLessonPrice(ctx, orderID, serviceID, customerID)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	orders.AssertNumberOfCalls(t, "UpdateCalculatedPrice", 2)
}

func TestCalculateLessonPrice_CascadeWriteFailureSurfaces(t *testing.T) {
	ctx := context.Background()
	orderID, serviceID, customerID := uuid.New(), uuid.New(), uuid.New()
	siblingID, groupID := uuid.New(), uuid.New()

	services := new(MockServiceRepository)
	orders := new(MockOrderRepository)
	engine := newTestEngine(services, orders)

	services.On("GetLessonConfig", ctx, serviceID).Return(&model.LessonConfig{
		ServiceID:              serviceID,
		RequiresPackagePricing: true,
		TierScope:              model.ScopeOrderGroup,
		BasePricePerHour:       10,
	}, nil)
	orders.On("GetLessonDetail", ctx, orderID).Return(lessonWindow(orderID, 2), nil)
	orders.On("GetByID", ctx, orderID).Return(&model.Order{ID: orderID, GroupID: &groupID}, nil)
	orders.On("ListGroupScope", ctx, groupID, customerID).Return([]model.ScopedOrder{
		scoped(orderID, 2),
		scoped(siblingID, 2),
	}, nil)
	services.On("GetPricingTiers", ctx, serviceID).Return([]model.PricingTier{
		{FromHours: 0, ToHours: nil, PricePerHour: 10},
	}, nil)
	orders.On("UpdateCalculatedPrice", ctx, orderID, 20.0, 10.0, 2.0, calcTime).Return(nil)
	orders.On("UpdateCalculatedPrice", ctx, siblingID, 20.0, 10.0, 2.0, calcTime).
		Return(errors.New("connection reset"))

	result, err := engine.CalculateLessonPrice(ctx, orderID, serviceID, customerID)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "cascade")
	assert.Nil(t, result)
}

func TestRecalculateGroupPrices_ContinuesOnFailure(t *testing.T) {
	ctx := context.Background()
	groupID, customerID := uuid.New(), uuid.New()
	badService, goodService := uuid.New(), uuid.New()
	badOrder, goodOrder := uuid.New(), uuid.New()

	services := new(MockServiceRepository)
	orders := new(MockOrderRepository)
	engine := newTestEngine(services, orders)

	orders.On("ListGroupLessonOrders", ctx, groupID).Return([]model.PendingOrder{
		{OrderID: badOrder, ServiceID: badService, CustomerID: customerID},
		{OrderID: goodOrder, ServiceID: goodService, CustomerID: customerID},
	}, nil)

	// First order's service has no lesson config; second prices normally.
	services.On("GetLessonConfig", ctx, badService).Return(nil, nil)
	services.On("GetLessonConfig", ctx, goodService).Return(&model.LessonConfig{
		ServiceID:        goodService,
		TierScope:        model.ScopeServiceOnly,
		BasePricePerHour: 40,
	}, nil)
	orders.On("GetLessonDetail", ctx, goodOrder).Return(lessonWindow(goodOrder, 1), nil)
	orders.On("UpdateCalculatedPrice", ctx, goodOrder, 40.0, 40.0, 1.0, calcTime).Return(nil)

	result, err := engine.RecalculateGroupPrices(ctx, groupID)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Processed)
	require.Len(t, result.Outcomes, 2)
	assert.Equal(t, badOrder, result.Outcomes[0].OrderID)
	assert.NotEmpty(t, result.Outcomes[0].Err)
	assert.Equal(t, goodOrder, result.Outcomes[1].OrderID)
	assert.Empty(t, result.Outcomes[1].Err)
}

func TestRecalculateCustomerPrices(t *testing.T) {
	ctx := context.Background()
	customerID, serviceID := uuid.New(), uuid.New()
	orderID := uuid.New()

	services := new(MockServiceRepository)
	orders := new(MockOrderRepository)
	engine := newTestEngine(services, orders)

	orders.On("ListCustomerLessonOrders", ctx, customerID).Return([]model.PendingOrder{
		{OrderID: orderID, ServiceID: serviceID, CustomerID: customerID},
	}, nil)
	services.On("GetLessonConfig", ctx, serviceID).Return(&model.LessonConfig{
		ServiceID:        serviceID,
		TierScope:        model.ScopeServiceOnly,
		BasePricePerHour: 60,
	}, nil)
	orders.On("GetLessonDetail", ctx, orderID).Return(lessonWindow(orderID, 2), nil)
	orders.On("UpdateCalculatedPrice", ctx, orderID, 120.0, 60.0, 2.0, calcTime).Return(nil)

	result, err := engine.RecalculateCustomerPrices(ctx, customerID)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Processed)
}

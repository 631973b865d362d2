package commands_test

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPlaceOrderRepository struct{ mock.Mock }

func (m *MockPlaceOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}
func (m *MockPlaceOrderRepository) Update(_ context.Context, _ *order.Order) error {
	return errors.New("not implemented in mock")
}
func (m *MockPlaceOrderRepository) Get(_ context.Context, _ kernel.UUID) (*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}

type MockPlaceOrderUoW struct{ mock.Mock }

func (m *MockPlaceOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockPlaceOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockPlaceOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPlaceOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockPlaceOrderUoWFactory struct{ mock.Mock }

func (m *MockPlaceOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockPlaceDispatcher struct{ mock.Mock }

func (m *MockPlaceDispatcher) Dispatch(notification ports.Notification) {
	m.Called(notification)
}

func TestPlaceOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	customerID := kernel.NewUUID()
	supplierID := kernel.NewUUID()
	cmd, err := commands.NewPlaceOrderCommand(
		orderID, customerID, supplierID,
		fixtureItems(t), fixtureAddress(t), cents(t, 200), cents(t, 100))
	require.NoError(t, err)

	var added *order.Order
	repo := new(MockPlaceOrderRepository)
	uow := new(MockPlaceOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", ctx, mock.AnythingOfType("*order.Order")).
			Run(func(args mock.Arguments) { added = args.Get(1).(*order.Order) }).
			Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPlaceOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	dispatcher := new(MockPlaceDispatcher)
	dispatcher.On("Dispatch", mock.MatchedBy(func(n ports.Notification) bool {
		return n.OrderID == orderID && n.CustomerID == customerID &&
			n.SupplierID == supplierID && n.Status == order.Placed
	})).Once()

	h := commands.NewPlaceOrderCommandHandler(factory, dispatcher)
	require.NoError(t, h.Handle(ctx, cmd))

	require.NotNil(t, added)
	assert.Equal(t, order.Placed, added.Status())
	assert.Equal(t, 1, added.Version())
	assert.Equal(t, int64(999), added.Subtotal().Cents())
	assert.Equal(t, int64(1099), added.Total().Cents())

	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
	dispatcher.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	factory := new(MockPlaceOrderUoWFactory)
	h := commands.NewPlaceOrderCommandHandler(factory, new(MockPlaceDispatcher))
	err := h.Handle(ctx, commands.PlaceOrderCommand{})
	require.ErrorIs(t, err, commands.ErrPlaceOrderCommandIsNotConstructed)
}

func TestPlaceOrderCommandHandler_Handle_ExcessiveDiscount(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewPlaceOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		fixtureItems(t), fixtureAddress(t), cents(t, 0), cents(t, 5000))
	require.NoError(t, err)

	factory := new(MockPlaceOrderUoWFactory)
	dispatcher := new(MockPlaceDispatcher)
	h := commands.NewPlaceOrderCommandHandler(factory, dispatcher)
	err = h.Handle(ctx, cmd)
	require.Error(t, err)

	// The aggregate rejects the discount before any storage work starts.
	factory.AssertExpectations(t)
	dispatcher.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewPlaceOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		fixtureItems(t), fixtureAddress(t), cents(t, 0), cents(t, 0))
	require.NoError(t, err)

	uow := new(MockPlaceOrderUoW)
	factory := new(MockPlaceOrderUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	h := commands.NewPlaceOrderCommandHandler(factory, new(MockPlaceDispatcher))
	require.Error(t, h.Handle(ctx, cmd))
}

func TestPlaceOrderCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewPlaceOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		fixtureItems(t), fixtureAddress(t), cents(t, 0), cents(t, 0))
	require.NoError(t, err)

	repo := new(MockPlaceOrderRepository)
	uow := new(MockPlaceOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(errors.New("add error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPlaceOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	dispatcher := new(MockPlaceDispatcher)
	h := commands.NewPlaceOrderCommandHandler(factory, dispatcher)
	require.Error(t, h.Handle(ctx, cmd))
	dispatcher.AssertExpectations(t)
}

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockMarkOrderRepository struct{ mock.Mock }

func (m *MockMarkOrderRepository) Add(_ context.Context, _ *order.Order) error {
	return errors.New("not implemented in mock")
}
func (m *MockMarkOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}
func (m *MockMarkOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockMarkOrderUoW struct{ mock.Mock }

func (m *MockMarkOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockMarkOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockMarkOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockMarkOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockMarkOrderUoWFactory struct{ mock.Mock }

func (m *MockMarkOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockMarkStream struct{ mock.Mock }

func (m *MockMarkStream) Publish(ctx context.Context, update ports.OrderUpdate) error {
	args := m.Called(ctx, update)
	return args.Error(0)
}
func (m *MockMarkStream) Subscribe(_ context.Context, _ kernel.UUID) (<-chan ports.OrderUpdate, error) {
	return nil, errors.New("not implemented in mock")
}

func pickingOrder(t *testing.T, items []order.Item) *order.Order {
	t.Helper()
	aggregate := placedOrder(t, items)
	by := supplier(t)
	now := time.Now().UTC()
	require.NoError(t, aggregate.TransitionTo(order.Confirmed, by, "", now))
	require.NoError(t, aggregate.TransitionTo(order.Picking, by, "", now))
	return aggregate
}

func TestMarkLineCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	items := fixtureItems(t)
	aggregate := pickingOrder(t, items)
	cmd, err := commands.NewMarkLineCommand(
		aggregate.ID(), items[0].ProductID(), commands.StagePicked, supplier(t), 3)
	require.NoError(t, err)

	repo := new(MockMarkOrderRepository)
	uow := new(MockMarkOrderUoW)
	stream := new(MockMarkStream)
	factory := new(MockMarkOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()
	repo.On("Update", ctx, aggregate).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	stream.On("Publish", ctx, mock.MatchedBy(func(u ports.OrderUpdate) bool {
		return u.OrderID == aggregate.ID() && u.Status == order.Picking && u.Version == 4
	})).Return(nil).Once()

	h := commands.NewMarkLineCommandHandler(factory, stream)
	require.NoError(t, h.Handle(ctx, cmd))
	assert.True(t, aggregate.Items()[0].IsPicked())
	assert.False(t, aggregate.Items()[1].IsPicked())
	assert.Equal(t, 4, aggregate.Version())

	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
	stream.AssertExpectations(t)
}

func TestMarkLineCommandHandler_Handle_StaleVersion(t *testing.T) {
	ctx := t.Context()
	items := fixtureItems(t)
	aggregate := pickingOrder(t, items)
	cmd, err := commands.NewMarkLineCommand(
		aggregate.ID(), items[0].ProductID(), commands.StagePicked, supplier(t), 2)
	require.NoError(t, err)

	repo := new(MockMarkOrderRepository)
	uow := new(MockMarkOrderUoW)
	factory := new(MockMarkOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	h := commands.NewMarkLineCommandHandler(factory, new(MockMarkStream))
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, ports.ErrVersionConflict)
	assert.False(t, aggregate.Items()[0].IsPicked())
	uow.AssertExpectations(t)
}

func TestMarkLineCommandHandler_Handle_PackedBeforePicking(t *testing.T) {
	ctx := t.Context()
	items := fixtureItems(t)
	aggregate := pickingOrder(t, items)
	cmd, err := commands.NewMarkLineCommand(
		aggregate.ID(), items[0].ProductID(), commands.StagePacked, supplier(t), 3)
	require.NoError(t, err)

	repo := new(MockMarkOrderRepository)
	uow := new(MockMarkOrderUoW)
	factory := new(MockMarkOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	h := commands.NewMarkLineCommandHandler(factory, new(MockMarkStream))
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, order.ErrInvalidTransition)
	uow.AssertExpectations(t)
}

func TestMarkLineCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	h := commands.NewMarkLineCommandHandler(new(MockMarkOrderUoWFactory), new(MockMarkStream))
	err := h.Handle(ctx, commands.MarkLineCommand{})
	require.ErrorIs(t, err, commands.ErrMarkLineCommandIsNotConstructed)
}

func TestMarkLineCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewMarkLineCommand(
		kernel.NewUUID(), kernel.NewUUID(), commands.StagePicked, supplier(t), 1)
	require.NoError(t, err)

	uow := new(MockMarkOrderUoW)
	factory := new(MockMarkOrderUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	h := commands.NewMarkLineCommandHandler(factory, new(MockMarkStream))
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, ports.ErrTransientStorage)
}

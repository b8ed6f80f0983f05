package commands_test

import (
	"testing"
	"time"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// expectModify prepares the load → update → commit sequence of a successful change.
func expectModify(t *testing.T, current *order.Order, updated any) (*MockOrderUoWFactory, *MockOrderRepository) {
	t.Helper()
	ctx := t.Context()
	factory, uow, repo := newMocks()
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, current.ID()).Return(current, nil).Once(),
		repo.On("Update", ctx, updated).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	return factory, repo
}

func TestUpdateShippingCommand(t *testing.T) {
	t.Run("requires an address or a fee", func(t *testing.T) {
		_, err := commands.NewUpdateShippingCommand(order.NewOrderID(), nil, nil)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects unconstructed values", func(t *testing.T) {
		_, err := commands.NewUpdateShippingCommand(order.NewOrderID(), &order.ShippingAddress{}, &kernel.Money{})

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrShippingAddressIsNotConstructed)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestUpdateShippingCommandHandler_Handle(t *testing.T) {
	t.Run("applies address and fee together", func(t *testing.T) {
		current := pendingOrder(t)
		address, err := order.NewShippingAddress("B", "0987654321", "1 Hai Ba Trung", "Ho Chi Minh", "Quan 1", "Ben Nghe")
		require.NoError(t, err)
		fee := vnd(t, 25000)
		cmd, err := commands.NewUpdateShippingCommand(current.ID(), &address, &fee)
		require.NoError(t, err)

		factory, repo := expectModify(t, current, mock.MatchedBy(func(o *order.Order) bool {
			return o.ShippingAddress().IsEqual(address) && o.TotalAmount().IsEqual(vnd(t, 125000))
		}))

		h := commands.NewUpdateShippingCommandHandler(factory)
		require.NoError(t, h.Handle(t.Context(), cmd))
		repo.AssertExpectations(t)
	})

	t.Run("fee change on a confirmed order writes nothing", func(t *testing.T) {
		ctx := t.Context()
		current, err := pendingOrder(t).Confirm()
		require.NoError(t, err)
		fee := vnd(t, 1)
		cmd, err := commands.NewUpdateShippingCommand(current.ID(), nil, &fee)
		require.NoError(t, err)

		factory, uow, repo := newMocks()
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("OrderRepository").Return(repo).Once()
		repo.On("Get", ctx, current.ID()).Return(current, nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		h := commands.NewUpdateShippingCommandHandler(factory)
		err = h.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrInvalidState)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestOrderDetailCommandHandler(t *testing.T) {
	t.Run("add returns the new line id", func(t *testing.T) {
		current := pendingOrder(t)
		cmd, err := commands.NewAddOrderDetailCommand(current.ID(), validItem(t, "S2", 1, 5000))
		require.NoError(t, err)

		factory, repo := expectModify(t, current, mock.MatchedBy(func(o *order.Order) bool {
			return len(o.OrderDetails()) == 2 && o.TotalAmount().IsEqual(vnd(t, 115000))
		}))

		h := commands.NewOrderDetailCommandHandler(factory)
		id, err := h.HandleAdd(t.Context(), cmd)

		require.NoError(t, err)
		require.NoError(t, id.Validate())
		repo.AssertExpectations(t)
	})

	t.Run("remove of the last line is rejected", func(t *testing.T) {
		ctx := t.Context()
		current := pendingOrder(t)
		cmd, err := commands.NewRemoveOrderDetailCommand(current.ID(), current.OrderDetails()[0].ID())
		require.NoError(t, err)

		factory, uow, repo := newMocks()
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("OrderRepository").Return(repo).Once()
		repo.On("Get", ctx, current.ID()).Return(current, nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		h := commands.NewOrderDetailCommandHandler(factory)
		err = h.HandleRemove(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrInvalidState)
	})

	t.Run("quantity update recomputes the total", func(t *testing.T) {
		current := pendingOrder(t)
		line := current.OrderDetails()[0]
		cmd, err := commands.NewUpdateOrderDetailQuantityCommand(current.ID(), line.ID(), 3)
		require.NoError(t, err)

		factory, repo := expectModify(t, current, mock.MatchedBy(func(o *order.Order) bool {
			return o.TotalAmount().IsEqual(vnd(t, 160000))
		}))

		h := commands.NewOrderDetailCommandHandler(factory)
		require.NoError(t, h.HandleUpdateQuantity(t.Context(), cmd))
		repo.AssertExpectations(t)
	})

	t.Run("commands reject unconstructed ids", func(t *testing.T) {
		_, err := commands.NewRemoveOrderDetailCommand(order.OrderID{}, order.OrderDetailID{})
		require.ErrorIs(t, err, order.ErrOrderIDIsNotConstructed)
		require.ErrorIs(t, err, order.ErrOrderDetailIDIsNotConstructed)

		_, err = commands.NewAddOrderDetailCommand(order.NewOrderID(), commands.OrderItem{})
		require.ErrorIs(t, err, order.ErrProductDetailIsNotConstructed)
	})
}

func TestExpirePendingOrdersCommand(t *testing.T) {
	_, err := commands.NewExpirePendingOrdersCommand(time.Time{}, 0)

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestExpirePendingOrdersCommandHandler_Handle(t *testing.T) {
	cutoff := time.Now().Add(-time.Hour)

	t.Run("cancels every stale order in one transaction", func(t *testing.T) {
		ctx := t.Context()
		stale := []*order.Order{pendingOrder(t), pendingOrder(t)}
		cmd, err := commands.NewExpirePendingOrdersCommand(cutoff, 10)
		require.NoError(t, err)

		factory, uow, repo := newMocks()
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("OrderRepository").Return(repo).Once()
		repo.On("ListPendingUnpaidCreatedBefore", ctx, cmd.Cutoff(), 10).Return(stale, nil).Once()
		repo.On("Update", ctx, orderWith(order.StatusCancelled, order.PaymentStatusPending)).Return(nil).Twice()
		uow.On("Commit", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		h := commands.NewExpirePendingOrdersCommandHandler(factory)
		n, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, 2, n)
		repo.AssertExpectations(t)
		uow.AssertExpectations(t)
	})

	t.Run("nothing to expire skips the commit", func(t *testing.T) {
		ctx := t.Context()
		cmd, err := commands.NewExpirePendingOrdersCommand(cutoff, 10)
		require.NoError(t, err)

		factory, uow, repo := newMocks()
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("OrderRepository").Return(repo).Once()
		repo.On("ListPendingUnpaidCreatedBefore", ctx, cmd.Cutoff(), 10).Return([]*order.Order{}, nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		h := commands.NewExpirePendingOrdersCommandHandler(factory)
		n, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Zero(t, n)
		uow.AssertNotCalled(t, "Commit", ctx)
	})
}

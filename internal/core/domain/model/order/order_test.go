package order_test

import (
	"testing"
	"time"

	"storefront/internal/core/domain/model/actor"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(t *testing.T, cents int64) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoney(cents)
	require.NoError(t, err)
	return m
}

func testAddress(t *testing.T) order.Address {
	t.Helper()
	address, err := order.NewAddress("12 Baker St", "Springfield", "+15550100")
	require.NoError(t, err)
	return address
}

func testItems(t *testing.T) []order.Item {
	t.Helper()
	first, err := order.NewItem(kernel.NewUUID(), "Oat milk 1L", money(t, 250), 2)
	require.NoError(t, err)
	second, err := order.NewItem(kernel.NewUUID(), "Sourdough loaf", money(t, 499), 1)
	require.NoError(t, err)
	return []order.Item{first, second}
}

func placedOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		testItems(t), testAddress(t),
		money(t, 200), money(t, 100),
		time.Now().UTC(),
	)
	require.NoError(t, err)
	return o
}

func supplierActor(t *testing.T) actor.Actor {
	t.Helper()
	a, err := actor.NewActor(kernel.NewUUID(), actor.RoleSupplier)
	require.NoError(t, err)
	return a
}

// advance drives an order along the happy path to the wanted status, marking
// lines as needed to satisfy the stage gates.
func advance(t *testing.T, o *order.Order, to order.Status) {
	t.Helper()
	by := supplierActor(t)
	now := time.Now().UTC()

	steps := []order.Status{
		order.Confirmed, order.Picking, order.Packing, order.Ready,
		order.OutForDelivery, order.Delivered,
	}
	for _, step := range steps {
		if o.Status() == to {
			return
		}
		if o.Status() == order.Picking && step == order.Packing {
			for _, item := range o.Items() {
				require.NoError(t, o.MarkPicked(item.ProductID(), by))
			}
		}
		if o.Status() == order.Packing && step == order.Ready {
			for _, item := range o.Items() {
				require.NoError(t, o.MarkPacked(item.ProductID(), by))
			}
		}
		require.NoError(t, o.TransitionTo(step, by, "", now))
	}
}

func TestNewOrder(t *testing.T) {
	t.Run("should place order with computed totals", func(t *testing.T) {
		items := testItems(t)

		o, err := order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			items, testAddress(t),
			money(t, 200), money(t, 100),
			time.Now().UTC(),
		)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.Equal(t, order.Placed, o.Status())
		assert.Equal(t, 1, o.Version())
		// 2*250 + 1*499 = 999; total = 999 + 200 - 100.
		assert.Equal(t, int64(999), o.Subtotal().Cents())
		assert.Equal(t, int64(1099), o.Total().Cents())

		history := o.History()
		require.Len(t, history, 1)
		assert.Equal(t, order.Placed, history[0].Status())
		assert.Equal(t, actor.RoleCustomer, history[0].Role())
	})

	t.Run("should fail with no items", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			nil, testAddress(t),
			money(t, 200), money(t, 0),
			time.Now().UTC(),
		)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "items")
	})

	t.Run("should fail when discount exceeds subtotal plus fee", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			testItems(t), testAddress(t),
			money(t, 200), money(t, 100000),
			time.Now().UTC(),
		)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "discount")
	})

	t.Run("should fail with zero placement time", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			testItems(t), testAddress(t),
			money(t, 200), money(t, 0),
			time.Time{},
		)

		require.Error(t, err)
	})

	t.Run("should fail with invalid identifiers", func(t *testing.T) {
		var blank kernel.UUID

		_, err := order.NewOrder(
			blank, kernel.NewUUID(), kernel.NewUUID(),
			testItems(t), testAddress(t),
			money(t, 200), money(t, 0),
			time.Now().UTC(),
		)

		require.Error(t, err)
	})
}

func TestOrderTransitionTo(t *testing.T) {
	t.Run("should confirm placed order and record history", func(t *testing.T) {
		o := placedOrder(t)
		by := supplierActor(t)

		err := o.TransitionTo(order.Confirmed, by, "stock checked", time.Now().UTC())

		require.NoError(t, err)
		assert.Equal(t, order.Confirmed, o.Status())
		assert.Equal(t, 2, o.Version())

		history := o.History()
		require.Len(t, history, 2)
		assert.Equal(t, order.Confirmed, history[1].Status())
		assert.Equal(t, "stock checked", history[1].Note())
		assert.True(t, history[1].ActorID().IsEqual(by.ID()))
	})

	t.Run("should reject skipping states", func(t *testing.T) {
		o := placedOrder(t)

		err := o.TransitionTo(order.Packing, supplierActor(t), "", time.Now().UTC())

		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, order.Placed, o.Status())
		assert.Equal(t, 1, o.Version())
	})

	t.Run("should reject wrong role without mutating", func(t *testing.T) {
		o := placedOrder(t)
		advance(t, o, order.Confirmed)
		customer, err := actor.NewActor(kernel.NewUUID(), actor.RoleCustomer)
		require.NoError(t, err)

		err = o.TransitionTo(order.Picking, customer, "", time.Now().UTC())

		require.ErrorIs(t, err, order.ErrForbidden)
		assert.Equal(t, order.Confirmed, o.Status())
		assert.Equal(t, 2, o.Version())
	})

	t.Run("should reject unconstructed actor", func(t *testing.T) {
		o := placedOrder(t)
		var nobody actor.Actor

		err := o.TransitionTo(order.Confirmed, nobody, "", time.Now().UTC())

		require.Error(t, err)
	})

	t.Run("should gate packing on all lines picked", func(t *testing.T) {
		o := placedOrder(t)
		advance(t, o, order.Picking)
		by := supplierActor(t)

		err := o.TransitionTo(order.Packing, by, "", time.Now().UTC())
		require.ErrorIs(t, err, order.ErrLinesNotPicked)

		items := o.Items()
		require.NoError(t, o.MarkPicked(items[0].ProductID(), by))

		err = o.TransitionTo(order.Packing, by, "", time.Now().UTC())
		require.ErrorIs(t, err, order.ErrLinesNotPicked)

		require.NoError(t, o.MarkPicked(items[1].ProductID(), by))
		require.NoError(t, o.TransitionTo(order.Packing, by, "", time.Now().UTC()))
	})

	t.Run("should gate ready on all lines packed", func(t *testing.T) {
		o := placedOrder(t)
		advance(t, o, order.Packing)
		by := supplierActor(t)

		err := o.TransitionTo(order.Ready, by, "", time.Now().UTC())
		require.ErrorIs(t, err, order.ErrLinesNotPacked)

		for _, item := range o.Items() {
			require.NoError(t, o.MarkPacked(item.ProductID(), by))
		}
		require.NoError(t, o.TransitionTo(order.Ready, by, "", time.Now().UTC()))
	})

	t.Run("should reject transitions out of a delivered order", func(t *testing.T) {
		o := placedOrder(t)
		advance(t, o, order.Delivered)

		err := o.TransitionTo(order.Cancelled, supplierActor(t), "", time.Now().UTC())

		require.ErrorIs(t, err, order.ErrInvalidTransition)
	})

	t.Run("customer may cancel a placed order", func(t *testing.T) {
		o := placedOrder(t)
		customer, err := actor.NewActor(o.CustomerID(), actor.RoleCustomer)
		require.NoError(t, err)

		require.NoError(t, o.TransitionTo(order.Cancelled, customer, "changed my mind", time.Now().UTC()))
		assert.Equal(t, order.Cancelled, o.Status())
	})

	t.Run("customer may not cancel after confirmation", func(t *testing.T) {
		o := placedOrder(t)
		advance(t, o, order.Confirmed)
		customer, err := actor.NewActor(o.CustomerID(), actor.RoleCustomer)
		require.NoError(t, err)

		err = o.TransitionTo(order.Cancelled, customer, "", time.Now().UTC())

		require.ErrorIs(t, err, order.ErrForbidden)
	})
}

func TestOrderMarkLine(t *testing.T) {
	t.Run("should reject picking outside the picking stage", func(t *testing.T) {
		o := placedOrder(t)

		err := o.MarkPicked(o.Items()[0].ProductID(), supplierActor(t))

		require.ErrorIs(t, err, order.ErrInvalidTransition)
	})

	t.Run("should reject non-supplier roles", func(t *testing.T) {
		o := placedOrder(t)
		advance(t, o, order.Picking)
		dispatch, err := actor.NewActor(kernel.NewUUID(), actor.RoleDispatch)
		require.NoError(t, err)

		err = o.MarkPicked(o.Items()[0].ProductID(), dispatch)

		require.ErrorIs(t, err, order.ErrForbidden)
	})

	t.Run("should reject unknown product", func(t *testing.T) {
		o := placedOrder(t)
		advance(t, o, order.Picking)

		err := o.MarkPicked(kernel.NewUUID(), supplierActor(t))

		require.Error(t, err)
	})

	t.Run("should bump version per marked line", func(t *testing.T) {
		o := placedOrder(t)
		advance(t, o, order.Picking)
		before := o.Version()

		require.NoError(t, o.MarkPicked(o.Items()[0].ProductID(), supplierActor(t)))

		assert.Equal(t, before+1, o.Version())
		assert.True(t, o.Items()[0].IsPicked())
		assert.False(t, o.AllPicked())
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("should restore a mutated order faithfully", func(t *testing.T) {
		original := placedOrder(t)
		advance(t, original, order.Packing)

		restored, err := order.RestoreOrder(
			original.ID(), original.CustomerID(), original.SupplierID(),
			original.Items(), original.DeliveryAddress(),
			original.Subtotal(), original.DeliveryFee(), original.Discount(), original.Total(),
			original.Status(), original.History(),
			original.CreatedAt(), original.Version(),
		)

		require.NoError(t, err)
		assert.True(t, restored.IsEqual(original))
		assert.Equal(t, original.Status(), restored.Status())
		assert.Equal(t, original.Version(), restored.Version())
		assert.True(t, restored.AllPicked())
		assert.Len(t, restored.History(), len(original.History()))
	})

	t.Run("should reject history tail not matching status", func(t *testing.T) {
		original := placedOrder(t)

		_, err := order.RestoreOrder(
			original.ID(), original.CustomerID(), original.SupplierID(),
			original.Items(), original.DeliveryAddress(),
			original.Subtotal(), original.DeliveryFee(), original.Discount(), original.Total(),
			order.Confirmed, original.History(),
			original.CreatedAt(), original.Version(),
		)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "status history")
	})

	t.Run("should reject non-positive version", func(t *testing.T) {
		original := placedOrder(t)

		_, err := order.RestoreOrder(
			original.ID(), original.CustomerID(), original.SupplierID(),
			original.Items(), original.DeliveryAddress(),
			original.Subtotal(), original.DeliveryFee(), original.Discount(), original.Total(),
			original.Status(), original.History(),
			original.CreatedAt(), 0,
		)

		require.Error(t, err)
	})

	t.Run("should reject empty history", func(t *testing.T) {
		original := placedOrder(t)

		_, err := order.RestoreOrder(
			original.ID(), original.CustomerID(), original.SupplierID(),
			original.Items(), original.DeliveryAddress(),
			original.Subtotal(), original.DeliveryFee(), original.Discount(), original.Total(),
			original.Status(), nil,
			original.CreatedAt(), original.Version(),
		)

		require.Error(t, err)
	})
}

func TestOrderValidate(t *testing.T) {
	t.Run("should fail for nil and zero value orders", func(t *testing.T) {
		var o *order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)

		require.ErrorIs(t, (&order.Order{}).Validate(), order.ErrOrderIsNotConstructed)
	})
}

package commands

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
)

// PlaceOrderCommandHandler handles the business logic for order placement.
// Builds the order aggregate (freezing the monetary and address snapshots),
// persists it transactionally, and notifies the supplier of the new order.
//
// Example:
//
//	handler := NewPlaceOrderCommandHandler(uowFactory, dispatcher)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order placement failed: %w", err)
//	}
type PlaceOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	dispatcher ports.NotificationDispatcher
}

// NewPlaceOrderCommandHandler creates a handler for order placement.
// Requires an OrderUoWFactory for transactional persistence and a dispatcher
// for the placement notification.
func NewPlaceOrderCommandHandler(
	uowFactory OrderUoWFactory,
	dispatcher ports.NotificationDispatcher,
) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle processes the order placement command.
// The order starts in placed status with version 1. A notification is enqueued
// after the commit; failure to notify does not affect the placement.
func (h PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		cmd.CustomerID(),
		cmd.SupplierID(),
		cmd.Items(),
		cmd.Address(),
		cmd.DeliveryFee(),
		cmd.Discount(),
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.dispatcher.Dispatch(ports.Notification{
		OrderID:    newOrder.ID(),
		CustomerID: newOrder.CustomerID(),
		SupplierID: newOrder.SupplierID(),
		Status:     newOrder.Status(),
		At:         newOrder.CreatedAt(),
	})

	return nil
}

package commands

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/core/ports"
)

// MarkLineCommandHandler records picking/packing progress on an order line.
// Uses the same optimistic-concurrency protocol as transitions: the caller's
// expected version must match, and a conflicting write loses with
// ports.ErrVersionConflict.
type MarkLineCommandHandler struct {
	uowFactory OrderUoWFactory
	stream     ports.OrderStream
}

// NewMarkLineCommandHandler creates a handler for line-progress updates.
func NewMarkLineCommandHandler(uowFactory OrderUoWFactory, stream ports.OrderStream) MarkLineCommandHandler {
	return MarkLineCommandHandler{
		uowFactory: uowFactory,
		stream:     stream,
	}
}

// Handle sets the requested stage flag on the line and bumps the order
// version. Line progress is only legal in the matching lifecycle stage and
// only for the supplier; the aggregate enforces both.
func (h MarkLineCommandHandler) Handle(ctx context.Context, cmd MarkLineCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("%w: %w", ports.ErrTransientStorage, err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if aggregate.Version() != cmd.ExpectedVersion() {
		return fmt.Errorf("%w: expected version %d, order is at %d",
			ports.ErrVersionConflict, cmd.ExpectedVersion(), aggregate.Version())
	}

	switch cmd.Stage() {
	case StagePacked:
		err = aggregate.MarkPacked(cmd.ProductID(), cmd.Actor())
	default:
		err = aggregate.MarkPicked(cmd.ProductID(), cmd.Actor())
	}
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return fmt.Errorf("%w: %w", ports.ErrTransientStorage, err)
	}

	_ = h.stream.Publish(ctx, ports.OrderUpdate{
		OrderID: aggregate.ID(),
		Status:  aggregate.Status(),
		Version: aggregate.Version(),
		At:      time.Now().UTC(),
	})

	return nil
}

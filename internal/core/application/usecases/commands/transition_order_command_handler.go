package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/internal/core/domain/model/inventory"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
)

// TransitionResult is the outcome of a transition call. Replayed is true when
// the idempotency token matched an earlier success and the stored outcome was
// returned without re-applying anything.
type TransitionResult struct {
	OrderID  kernel.UUID
	Status   order.Status
	Version  int
	Replayed bool
}

// TransitionOrderCommandHandler is the single authorized entry point for order
// status changes. It enforces the lifecycle edges and role permissions of the
// order aggregate, applies the inventory side effect of the edge in the same
// transaction as the status update, records the idempotency receipt, and, only
// after the transaction commits, pushes a notification and a stream update.
//
// Concurrency: the expected version supplied by the caller is compared against
// the loaded order before mutating, and the repository re-checks it on write,
// so of two racing conflicting transitions exactly one wins; the loser gets
// ports.ErrVersionConflict and must re-read before retrying.
type TransitionOrderCommandHandler struct {
	uowFactory FulfillmentUoWFactory
	dispatcher ports.NotificationDispatcher
	stream     ports.OrderStream
}

// NewTransitionOrderCommandHandler creates the transition handler.
func NewTransitionOrderCommandHandler(
	uowFactory FulfillmentUoWFactory,
	dispatcher ports.NotificationDispatcher,
	stream ports.OrderStream,
) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		stream:     stream,
	}
}

// Handle processes one transition request.
//
// Failure modes: order.ErrInvalidTransition for edges not in the lifecycle,
// order.ErrForbidden for disallowed roles, ports.ErrVersionConflict for stale
// versions, inventory.ErrInsufficientStock (as a ShortageError naming every
// short line) for failed reservations, and errs.ErrObjectNotFound for unknown
// orders. None of these leave partial state behind: the status update, the
// stock mutation, and the receipt commit or roll back as one transaction.
func (h TransitionOrderCommandHandler) Handle(
	ctx context.Context, cmd TransitionOrderCommand,
) (TransitionResult, error) {
	if err := cmd.Validate(); err != nil {
		return TransitionResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return TransitionResult{}, fmt.Errorf("%w: %w", ports.ErrTransientStorage, err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if cmd.IdempotencyKey() != "" {
		receipt, err := uow.ReceiptRepository().Find(ctx, cmd.IdempotencyKey())
		if err == nil {
			return TransitionResult{
				OrderID:  receipt.OrderID,
				Status:   receipt.Status,
				Version:  receipt.Version,
				Replayed: true,
			}, nil
		}
		if !errors.Is(err, errs.ErrObjectNotFound) {
			return TransitionResult{}, err
		}
	}

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return TransitionResult{}, err
	}

	if aggregate.Version() != cmd.ExpectedVersion() {
		return TransitionResult{}, fmt.Errorf("%w: expected version %d, order is at %d",
			ports.ErrVersionConflict, cmd.ExpectedVersion(), aggregate.Version())
	}

	from := aggregate.Status()
	now := time.Now().UTC()
	if err = aggregate.TransitionTo(cmd.Target(), cmd.Actor(), cmd.Note(), now); err != nil {
		return TransitionResult{}, err
	}

	if err = h.applyInventoryEffect(ctx, uow.InventoryRepository(), aggregate, from, cmd.Target()); err != nil {
		return TransitionResult{}, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return TransitionResult{}, err
	}

	if cmd.IdempotencyKey() != "" {
		receipt := ports.Receipt{
			Token:   cmd.IdempotencyKey(),
			OrderID: aggregate.ID(),
			Status:  aggregate.Status(),
			Version: aggregate.Version(),
		}
		if err = uow.ReceiptRepository().Save(ctx, receipt); err != nil {
			return TransitionResult{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return TransitionResult{}, fmt.Errorf("%w: %w", ports.ErrTransientStorage, err)
	}

	h.dispatcher.Dispatch(ports.Notification{
		OrderID:    aggregate.ID(),
		CustomerID: aggregate.CustomerID(),
		SupplierID: aggregate.SupplierID(),
		Status:     aggregate.Status(),
		Note:       cmd.Note(),
		At:         now,
	})

	// Stream delivery is best-effort: a subscriber that misses an update
	// repairs by re-reading the order.
	_ = h.stream.Publish(ctx, ports.OrderUpdate{
		OrderID: aggregate.ID(),
		Status:  aggregate.Status(),
		Version: aggregate.Version(),
		At:      now,
	})

	return TransitionResult{
		OrderID: aggregate.ID(),
		Status:  aggregate.Status(),
		Version: aggregate.Version(),
	}, nil
}

// applyInventoryEffect runs the stock mutation of the edge inside the open
// transaction. A failed reservation collects every short line before giving
// up, so the caller can name all out-of-stock products at once.
func (h TransitionOrderCommandHandler) applyInventoryEffect(
	ctx context.Context,
	invRepo ports.InventoryRepository,
	aggregate *order.Order,
	from, target order.Status,
) error {
	switch from.InventoryEffectOf(target) {
	case order.EffectReserve:
		return h.reserveAll(ctx, invRepo, aggregate)

	case order.EffectRelease:
		for _, item := range aggregate.Items() {
			if err := invRepo.Release(ctx, item.ProductID(), item.Quantity()); err != nil {
				return err
			}
		}
		return nil

	case order.EffectCommit:
		for _, item := range aggregate.Items() {
			if err := invRepo.CommitStock(ctx, item.ProductID(), item.Quantity()); err != nil {
				return err
			}
		}
		return nil

	default:
		return nil
	}
}

func (h TransitionOrderCommandHandler) reserveAll(
	ctx context.Context,
	invRepo ports.InventoryRepository,
	aggregate *order.Order,
) error {
	var shortages []inventory.Shortage

	for _, item := range aggregate.Items() {
		err := invRepo.Reserve(ctx, item.ProductID(), item.Quantity())
		if err == nil {
			continue
		}
		if !errors.Is(err, inventory.ErrInsufficientStock) && !errors.Is(err, errs.ErrObjectNotFound) {
			return err
		}

		available := 0
		if ledger, getErr := invRepo.Get(ctx, item.ProductID()); getErr == nil {
			available = ledger.Available()
		}
		shortages = append(shortages, inventory.Shortage{
			ProductID: item.ProductID(),
			Name:      item.Name(),
			Requested: item.Quantity(),
			Available: available,
		})
	}

	if len(shortages) > 0 {
		return &inventory.ShortageError{Shortages: shortages}
	}
	return nil
}

package commands

import (
	"context"
	"fmt"

	"storefront/internal/core/ports"
)

// ReplenishStockCommandHandler adds delivered stock to a product ledger.
type ReplenishStockCommandHandler struct {
	uowFactory InventoryUoWFactory
}

// NewReplenishStockCommandHandler creates a handler for stock replenishment.
func NewReplenishStockCommandHandler(uowFactory InventoryUoWFactory) ReplenishStockCommandHandler {
	return ReplenishStockCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle atomically increases onHand for the product.
func (h ReplenishStockCommandHandler) Handle(ctx context.Context, cmd ReplenishStockCommand) error {
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

	if err := uow.InventoryRepository().Replenish(ctx, cmd.ProductID(), cmd.Quantity()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

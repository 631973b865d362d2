package commands

import (
	"context"
	"fmt"

	"storefront/internal/core/domain/model/inventory"
	"storefront/internal/core/ports"
)

// ListProductCommandHandler creates stock ledger entries for new products.
type ListProductCommandHandler struct {
	uowFactory InventoryUoWFactory
}

// NewListProductCommandHandler creates a handler for product listing.
func NewListProductCommandHandler(uowFactory InventoryUoWFactory) ListProductCommandHandler {
	return ListProductCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle creates the ledger entry with the opening stock and no reservations.
func (h ListProductCommandHandler) Handle(ctx context.Context, cmd ListProductCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	ledger, err := inventory.NewLedger(cmd.ProductID(), cmd.InitialStock())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return fmt.Errorf("%w: %w", ports.ErrTransientStorage, err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.InventoryRepository().Add(ctx, ledger); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

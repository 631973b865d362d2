package ports

import (
	"context"

	"storefront/internal/core/domain/model/inventory"
	"storefront/internal/core/domain/model/kernel"
)

// InventoryRepository defines the persistence contract for stock ledgers.
//
// Reserve, Release, CommitStock, and Replenish mutate stock with single
// guarded statements so that concurrent callers on the same product cannot
// oversell, and they participate in the surrounding unit-of-work transaction
// so stock and order status commit or roll back together.
type InventoryRepository interface {
	// Add persists the ledger entry for a newly listed product.
	Add(ctx context.Context, ledger *inventory.Ledger) error

	// Get retrieves the ledger entry for a product.
	Get(ctx context.Context, productID kernel.UUID) (*inventory.Ledger, error)

	// Reserve atomically holds quantity units if available stock suffices.
	// Returns inventory.ErrInsufficientStock otherwise, leaving the ledger
	// unchanged.
	Reserve(ctx context.Context, productID kernel.UUID, quantity int) error

	// Release atomically returns quantity units of a reservation, flooring
	// reserved at zero.
	Release(ctx context.Context, productID kernel.UUID, quantity int) error

	// CommitStock atomically deducts quantity units from both onHand and
	// reserved. Returns inventory.ErrInsufficientStock when reserved is short.
	CommitStock(ctx context.Context, productID kernel.UUID, quantity int) error

	// Replenish atomically adds quantity units to onHand.
	Replenish(ctx context.Context, productID kernel.UUID, quantity int) error

	// GetAll retrieves every ledger entry. Used by the reconciliation job.
	GetAll(ctx context.Context) ([]*inventory.Ledger, error)
}

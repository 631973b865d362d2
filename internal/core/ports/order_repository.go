// Package ports defines the contracts between the application core and
// infrastructure: repositories, the unit of work, the notification dispatcher,
// and the order update stream. These interfaces enable dependency inversion
// and testability.
package ports

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate with its lines and initial history.
	// The order must be valid and not already exist.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order using optimistic
	// concurrency: the write succeeds only when the stored version equals the
	// aggregate's version minus the mutations applied in memory. Returns
	// ErrVersionConflict when another writer got there first; in that case no
	// state was changed.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate with its lines and full status history.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}

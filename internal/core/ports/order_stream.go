package ports

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
)

// OrderUpdate is the read-side projection pushed on every committed version
// increment of an order. It backs the customer-facing live tracking view.
type OrderUpdate struct {
	OrderID kernel.UUID
	Status  order.Status
	Version int
	At      time.Time
}

// OrderStream publishes and delivers order updates. Publishing happens after
// the transaction commits, so subscribers only ever see committed state; a
// missed publish is repaired by the subscriber re-reading the order.
type OrderStream interface {
	// Publish pushes an update to all subscribers of the order.
	Publish(ctx context.Context, update OrderUpdate) error

	// Subscribe delivers subsequent updates for one order until ctx is done.
	// The returned channel is closed when the subscription ends.
	Subscribe(ctx context.Context, orderID kernel.UUID) (<-chan OrderUpdate, error)
}

package ports

import (
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
)

// Notification describes one order status change for delivery to the external
// notification service. The service fans out to the customer's and supplier's
// channels with at-least-once semantics; no delivery guarantee is surfaced
// back to the workflow.
type Notification struct {
	OrderID    kernel.UUID
	CustomerID kernel.UUID
	SupplierID kernel.UUID
	Status     order.Status
	Note       string
	At         time.Time
}

// NotificationDispatcher enqueues order notifications fire-and-forget.
// Dispatch never blocks the calling transition and a failed delivery never
// rolls it back; implementations log and drop on overflow.
type NotificationDispatcher interface {
	Dispatch(notification Notification)
}

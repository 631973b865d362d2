package queries

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"
)

var ErrWatchOrderQueryIsNotConstructed = errors.New(
	"WatchOrderQuery must be created via NewWatchOrderQuery constructor",
)

// WatchOrderQuery subscribes to live status updates of one order.
type WatchOrderQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewWatchOrderQuery creates an order watch query.
func NewWatchOrderQuery(orderID kernel.UUID) (WatchOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return WatchOrderQuery{}, err
	}
	return WatchOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q WatchOrderQuery) Validate() error {
	return q.guard.Validate(ErrWatchOrderQueryIsNotConstructed)
}

// OrderID returns the order to watch.
func (q WatchOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Package queries contains the read-side projections of the fulfillment
// workflow: supplier and customer order lists, order detail with history,
// stock levels, and the live order watch. Query handlers read committed state
// directly from the database and never mutate anything.
package queries

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/guard"
)

var ErrGetSupplierOrdersQueryIsNotConstructed = errors.New(
	"GetSupplierOrdersQuery must be created via NewGetSupplierOrdersQuery constructor",
)

// GetSupplierOrdersQuery retrieves a supplier's orders, newest first, with an
// optional status filter. Populates the supplier's fulfillment board columns.
//
// Example:
//
//	status := order.Placed
//	query, _ := NewGetSupplierOrdersQuery(supplierID, &status)
//	rows, err := handler.Handle(ctx, query)
type GetSupplierOrdersQuery struct { //nolint:recvcheck //using for validation
	supplierID   kernel.UUID
	statusFilter *order.Status

	guard guard.ConstructorGuard
}

// NewGetSupplierOrdersQuery creates a supplier order list query.
// statusFilter may be nil to list all statuses.
func NewGetSupplierOrdersQuery(supplierID kernel.UUID, statusFilter *order.Status) (GetSupplierOrdersQuery, error) {
	if err := supplierID.Validate(); err != nil {
		return GetSupplierOrdersQuery{}, err
	}
	if statusFilter != nil {
		if err := statusFilter.Validate(); err != nil {
			return GetSupplierOrdersQuery{}, err
		}
	}
	return GetSupplierOrdersQuery{
		supplierID:   supplierID,
		statusFilter: statusFilter,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetSupplierOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetSupplierOrdersQueryIsNotConstructed)
}

// SupplierID returns the supplier whose orders are listed.
func (q GetSupplierOrdersQuery) SupplierID() kernel.UUID {
	return q.supplierID
}

// StatusFilter returns the optional status filter, which may be nil.
func (q GetSupplierOrdersQuery) StatusFilter() *order.Status {
	return q.statusFilter
}

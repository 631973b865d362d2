package queries

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"
)

var ErrGetStockQueryIsNotConstructed = errors.New(
	"GetStockQuery must be created via NewGetStockQuery constructor",
)

// GetStockQuery reads stock levels for one product.
type GetStockQuery struct { //nolint:recvcheck //using for validation
	productID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetStockQuery creates a stock levels query.
func NewGetStockQuery(productID kernel.UUID) (GetStockQuery, error) {
	if err := productID.Validate(); err != nil {
		return GetStockQuery{}, err
	}
	return GetStockQuery{
		productID: productID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetStockQuery) Validate() error {
	return q.guard.Validate(ErrGetStockQueryIsNotConstructed)
}

// ProductID returns the product to read stock for.
func (q GetStockQuery) ProductID() kernel.UUID {
	return q.productID
}

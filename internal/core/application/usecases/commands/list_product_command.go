package commands

import (
	"errors"
	"fmt"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrListProductCommandIsNotConstructed = errors.New(
	"ListProductCommand must be created via NewListProductCommand constructor",
)

// ListProductCommand creates the stock ledger entry for a newly listed
// product. Catalog data (name, price, images) lives with the storefront;
// the fulfillment core only tracks countable stock.
type ListProductCommand struct { //nolint:recvcheck //using for validation
	productID    kernel.UUID
	initialStock int

	guard guard.ConstructorGuard
}

// NewListProductCommand creates a command to start tracking a product's stock.
// Initial stock must be non-negative.
func NewListProductCommand(productID kernel.UUID, initialStock int) (ListProductCommand, error) {
	cmd := ListProductCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setProductID(productID),
		cmd.setInitialStock(initialStock),
	); err != nil {
		return ListProductCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ListProductCommand) Validate() error {
	return c.guard.Validate(ErrListProductCommandIsNotConstructed)
}

// ProductID returns the product to start tracking.
func (c ListProductCommand) ProductID() kernel.UUID {
	return c.productID
}

// InitialStock returns the opening onHand count.
func (c ListProductCommand) InitialStock() int {
	return c.initialStock
}

func (c *ListProductCommand) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	c.productID = productID
	return nil
}

func (c *ListProductCommand) setInitialStock(initialStock int) error {
	if initialStock < 0 {
		return errs.NewValueIsInvalidErrorWithCause("initialStock",
			fmt.Errorf("%d is negative", initialStock))
	}
	c.initialStock = initialStock
	return nil
}

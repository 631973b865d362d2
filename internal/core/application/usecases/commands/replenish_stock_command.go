package commands

import (
	"errors"
	"fmt"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrReplenishStockCommandIsNotConstructed = errors.New(
	"ReplenishStockCommand must be created via NewReplenishStockCommand constructor",
)

// ReplenishStockCommand adds delivered supplier stock to a product's ledger.
type ReplenishStockCommand struct { //nolint:recvcheck //using for validation
	productID kernel.UUID
	quantity  int

	guard guard.ConstructorGuard
}

// NewReplenishStockCommand creates a command to add stock.
// Quantity must be positive.
func NewReplenishStockCommand(productID kernel.UUID, quantity int) (ReplenishStockCommand, error) {
	cmd := ReplenishStockCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setProductID(productID),
		cmd.setQuantity(quantity),
	); err != nil {
		return ReplenishStockCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReplenishStockCommand) Validate() error {
	return c.guard.Validate(ErrReplenishStockCommandIsNotConstructed)
}

// ProductID returns the product to replenish.
func (c ReplenishStockCommand) ProductID() kernel.UUID {
	return c.productID
}

// Quantity returns the number of units to add.
func (c ReplenishStockCommand) Quantity() int {
	return c.quantity
}

func (c *ReplenishStockCommand) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	c.productID = productID
	return nil
}

func (c *ReplenishStockCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	c.quantity = quantity
	return nil
}

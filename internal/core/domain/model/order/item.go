package order

import (
	"fmt"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

// ErrItemIsNotConstructed is returned when validating a zero-value Item.
var ErrItemIsNotConstructed = errs.NewValueIsRequiredError(
	"item must be created via NewItem or RestoreItem constructors")

// Item is one order line. Name and unit price are snapshots taken at placement
// time, not live product references, so the order stays historically accurate
// when the catalog changes. The picked and packed flags track fulfillment
// progress during the picking and packing stages.
type Item struct { //nolint:recvcheck //using for validation
	productID kernel.UUID
	name      string
	unitPrice kernel.Money
	quantity  int
	picked    bool
	packed    bool
	guard     guard.ConstructorGuard
}

// NewItem creates a validated order line with the given product snapshot.
// Quantity must be positive and name non-empty.
func NewItem(productID kernel.UUID, name string, unitPrice kernel.Money, quantity int) (Item, error) {
	if err := productID.Validate(); err != nil {
		return Item{}, err
	}
	if name == "" {
		return Item{}, errs.NewValueIsRequiredError("item name")
	}
	if err := unitPrice.Validate(); err != nil {
		return Item{}, err
	}
	if quantity <= 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	return Item{
		productID: productID,
		name:      name,
		unitPrice: unitPrice,
		quantity:  quantity,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// RestoreItem reconstructs a line from persistence including its pick state.
func RestoreItem(
	productID kernel.UUID, name string, unitPrice kernel.Money, quantity int, picked, packed bool,
) (Item, error) {
	item, err := NewItem(productID, name, unitPrice, quantity)
	if err != nil {
		return Item{}, err
	}
	item.picked = picked
	item.packed = packed
	return item, nil
}

// Validate ensures the Item was properly constructed.
func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// ProductID returns the identifier of the ordered product.
func (i Item) ProductID() kernel.UUID {
	return i.productID
}

// Name returns the product name snapshot.
func (i Item) Name() string {
	return i.name
}

// UnitPrice returns the price snapshot per unit.
func (i Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

// Quantity returns the ordered quantity.
func (i Item) Quantity() int {
	return i.quantity
}

// IsPicked reports whether the line was collected during picking.
func (i Item) IsPicked() bool {
	return i.picked
}

// IsPacked reports whether the line was packed.
func (i Item) IsPacked() bool {
	return i.packed
}

// Subtotal returns unit price times quantity.
func (i Item) Subtotal() (kernel.Money, error) {
	return i.unitPrice.MulInt(i.quantity)
}

package commands

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/guard"
)

var (
	ErrPlaceOrderCommandIsNotConstructed = errors.New(
		"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
	)
	ErrItemsAreRequired = errors.New("at least one item is required")
)

// PlaceOrderCommand represents a customer's request to place a new order.
// Line items carry the product snapshot (name, unit price) taken by the caller
// at placement time; the monetary totals are recomputed by the domain, never
// trusted from the request.
//
// Example:
//
//	items := []order.Item{item}
//	cmd, err := NewPlaceOrderCommand(orderID, customerID, supplierID, items, address, fee, discount)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to place order: %w", err)
//	}
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	customerID  kernel.UUID
	supplierID  kernel.UUID
	items       []order.Item
	address     order.Address
	deliveryFee kernel.Money
	discount    kernel.Money

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand creates a command to place a new order.
// All identifiers, the address, the fee, the discount, and every item must be
// valid; the item list must be non-empty.
func NewPlaceOrderCommand(
	orderID, customerID, supplierID kernel.UUID,
	items []order.Item,
	address order.Address,
	deliveryFee, discount kernel.Money,
) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerID(customerID),
		cmd.setSupplierID(supplierID),
		cmd.setItems(items),
		cmd.setAddress(address),
		cmd.setDeliveryFee(deliveryFee),
		cmd.setDiscount(discount),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to create.
func (c PlaceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the placing customer's identifier.
func (c PlaceOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// SupplierID returns the fulfilling supplier's identifier.
func (c PlaceOrderCommand) SupplierID() kernel.UUID {
	return c.supplierID
}

// Items returns the order lines.
func (c PlaceOrderCommand) Items() []order.Item {
	return append([]order.Item(nil), c.items...)
}

// Address returns the delivery address snapshot.
func (c PlaceOrderCommand) Address() order.Address {
	return c.address
}

// DeliveryFee returns the delivery fee to freeze on the order.
func (c PlaceOrderCommand) DeliveryFee() kernel.Money {
	return c.deliveryFee
}

// Discount returns the discount to freeze on the order.
func (c PlaceOrderCommand) Discount() kernel.Money {
	return c.discount
}

func (c *PlaceOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *PlaceOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	c.customerID = customerID
	return nil
}

func (c *PlaceOrderCommand) setSupplierID(supplierID kernel.UUID) error {
	if err := supplierID.Validate(); err != nil {
		return err
	}
	c.supplierID = supplierID
	return nil
}

func (c *PlaceOrderCommand) setItems(items []order.Item) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	c.items = append([]order.Item(nil), items...)
	return nil
}

func (c *PlaceOrderCommand) setAddress(address order.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	c.address = address
	return nil
}

func (c *PlaceOrderCommand) setDeliveryFee(fee kernel.Money) error {
	if err := fee.Validate(); err != nil {
		return err
	}
	c.deliveryFee = fee
	return nil
}

func (c *PlaceOrderCommand) setDiscount(discount kernel.Money) error {
	if err := discount.Validate(); err != nil {
		return err
	}
	c.discount = discount
	return nil
}

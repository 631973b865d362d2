package order

import (
	"errors"
	"fmt"
	"time"

	"storefront/internal/core/domain/model/actor"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructors")

	// ErrLinesNotPicked is returned when moving to packing while some line items
	// have not been marked picked.
	ErrLinesNotPicked = errors.New("all line items must be picked before packing")

	// ErrLinesNotPacked is returned when moving to ready while some line items
	// have not been marked packed.
	ErrLinesNotPacked = errors.New("all line items must be packed before ready")
)

// Order is the aggregate root of the fulfillment workflow. It owns the status
// state machine, the append-only status history, the frozen monetary snapshot,
// and the per-line pick state.
//
// Invariants:
//   - items is non-empty and immutable after placement (only pick state changes)
//   - statusHistory is never empty and its last entry's status equals status
//   - total == subtotal + deliveryFee - discount, all non-negative
//   - version increases by exactly 1 per mutation; the persistence layer uses
//     it for optimistic concurrency
type Order struct {
	id         kernel.UUID
	customerID kernel.UUID
	supplierID kernel.UUID

	items   []Item
	address Address

	subtotal    kernel.Money
	deliveryFee kernel.Money
	discount    kernel.Money
	total       kernel.Money

	status  Status
	history []HistoryEntry

	createdAt time.Time
	version   int

	isConstructed bool
}

// NewOrder places a new order on behalf of the customer. The monetary snapshot
// is computed here, never trusted from the caller: subtotal is the sum of line
// subtotals and total is subtotal + deliveryFee - discount. A discount larger
// than subtotal + deliveryFee is rejected.
//
// The order starts in Placed with a single history entry attributed to the
// customer and version 1.
func NewOrder(
	id, customerID, supplierID kernel.UUID,
	items []Item,
	address Address,
	deliveryFee, discount kernel.Money,
	now time.Time,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		customerID.Validate(),
		supplierID.Validate(),
		address.Validate(),
		deliveryFee.Validate(),
		discount.Validate(),
	); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errs.NewValueIsRequiredError("items")
	}
	if now.IsZero() {
		return nil, errs.NewValueIsRequiredError("placement time")
	}

	subtotal, err := kernel.NewMoney(0)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if err = item.Validate(); err != nil {
			return nil, err
		}
		lineTotal, lineErr := item.Subtotal()
		if lineErr != nil {
			return nil, lineErr
		}
		subtotal, err = subtotal.Add(lineTotal)
		if err != nil {
			return nil, err
		}
	}

	gross, err := subtotal.Add(deliveryFee)
	if err != nil {
		return nil, err
	}
	total, err := gross.Sub(discount)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("discount",
			fmt.Errorf("discount %s exceeds subtotal plus delivery fee %s", discount, gross))
	}

	placedEntry, err := NewHistoryEntry(Placed, customerID, actor.RoleCustomer, "", now)
	if err != nil {
		return nil, err
	}

	return &Order{
		id:            id,
		customerID:    customerID,
		supplierID:    supplierID,
		items:         append([]Item(nil), items...),
		address:       address,
		subtotal:      subtotal,
		deliveryFee:   deliveryFee,
		discount:      discount,
		total:         total,
		status:        Placed,
		history:       []HistoryEntry{placedEntry},
		createdAt:     now,
		version:       1,
		isConstructed: true,
	}, nil
}

// RestoreOrder reconstructs an order from persistence. It re-validates the
// structural invariants: non-empty items and history, history tail matching the
// current status, and a positive version.
func RestoreOrder(
	id, customerID, supplierID kernel.UUID,
	items []Item,
	address Address,
	subtotal, deliveryFee, discount, total kernel.Money,
	status Status,
	history []HistoryEntry,
	createdAt time.Time,
	version int,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		customerID.Validate(),
		supplierID.Validate(),
		address.Validate(),
		subtotal.Validate(),
		deliveryFee.Validate(),
		discount.Validate(),
		total.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errs.NewValueIsRequiredError("items")
	}
	if len(history) == 0 {
		return nil, errs.NewValueIsRequiredError("status history")
	}
	if last := history[len(history)-1].Status(); last != status {
		return nil, errs.NewValueIsInvalidErrorWithCause("status history",
			fmt.Errorf("last history status %s does not match order status %s", last, status))
	}
	if version < 1 {
		return nil, errs.NewVersionIsInvalidError("order version",
			fmt.Errorf("%d is not a positive version", version))
	}

	return &Order{
		id:            id,
		customerID:    customerID,
		supplierID:    supplierID,
		items:         append([]Item(nil), items...),
		address:       address,
		subtotal:      subtotal,
		deliveryFee:   deliveryFee,
		discount:      discount,
		total:         total,
		status:        status,
		history:       append([]HistoryEntry(nil), history...),
		createdAt:     createdAt,
		version:       version,
		isConstructed: true,
	}, nil
}

// Validate ensures the Order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the placing customer's identifier.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// SupplierID returns the fulfilling supplier's identifier.
func (o *Order) SupplierID() kernel.UUID {
	return o.supplierID
}

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	return append([]Item(nil), o.items...)
}

// DeliveryAddress returns the frozen delivery address.
func (o *Order) DeliveryAddress() Address {
	return o.address
}

// Subtotal returns the sum of line subtotals.
func (o *Order) Subtotal() kernel.Money {
	return o.subtotal
}

// DeliveryFee returns the delivery fee frozen at placement.
func (o *Order) DeliveryFee() kernel.Money {
	return o.deliveryFee
}

// Discount returns the discount frozen at placement.
func (o *Order) Discount() kernel.Money {
	return o.discount
}

// Total returns subtotal + deliveryFee - discount.
func (o *Order) Total() kernel.Money {
	return o.total
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// History returns a copy of the append-only status history.
func (o *Order) History() []HistoryEntry {
	return append([]HistoryEntry(nil), o.history...)
}

// CreatedAt returns the placement time.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Version returns the optimistic-concurrency counter.
func (o *Order) Version() int {
	return o.version
}

// TransitionTo moves the order to target on behalf of the given actor.
//
// The edge must exist in the lifecycle (ErrInvalidTransition), the actor's role
// must be permitted on it (ErrForbidden), and stage completeness gates apply:
// picking → packing requires every line picked, packing → ready requires every
// line packed. On success one history entry is appended, the status changes,
// and the version increments by 1. The caller applies the inventory side effect
// reported by Status.InventoryEffectOf atomically with persisting the change.
func (o *Order) TransitionTo(target Status, by actor.Actor, note string, now time.Time) error {
	if err := by.Validate(); err != nil {
		return err
	}
	if err := o.status.ValidateTransition(target); err != nil {
		return err
	}
	if err := o.status.AuthorizeTransition(target, by.Role()); err != nil {
		return err
	}
	if o.status == Picking && target == Packing && !o.AllPicked() {
		return ErrLinesNotPicked
	}
	if o.status == Packing && target == Ready && !o.AllPacked() {
		return ErrLinesNotPacked
	}

	entry, err := NewHistoryEntry(target, by.ID(), by.Role(), note, now)
	if err != nil {
		return err
	}

	o.history = append(o.history, entry)
	o.status = target
	o.version++
	return nil
}

// MarkPicked marks one line as collected. Only the supplier may pick, and only
// while the order is in Picking. Increments the version.
func (o *Order) MarkPicked(productID kernel.UUID, by actor.Actor) error {
	return o.markLine(productID, by, Picking, func(item *Item) { item.picked = true })
}

// MarkPacked marks one picked line as packed. Only the supplier may pack, and
// only while the order is in Packing. Increments the version.
func (o *Order) MarkPacked(productID kernel.UUID, by actor.Actor) error {
	return o.markLine(productID, by, Packing, func(item *Item) { item.packed = true })
}

func (o *Order) markLine(productID kernel.UUID, by actor.Actor, stage Status, apply func(*Item)) error {
	if err := by.Validate(); err != nil {
		return err
	}
	if by.Role() != actor.RoleSupplier {
		return fmt.Errorf("%w: role %s cannot update line state", ErrForbidden, by.Role())
	}
	if o.status != stage {
		return fmt.Errorf("%w: line state is updatable only in %s, order is %s",
			ErrInvalidTransition, stage, o.status)
	}
	if err := productID.Validate(); err != nil {
		return err
	}

	for i := range o.items {
		if o.items[i].productID.IsEqual(productID) {
			apply(&o.items[i])
			o.version++
			return nil
		}
	}
	return errs.NewObjectNotFoundError("productId", productID.String())
}

// AllPicked reports whether every line has been marked picked.
func (o *Order) AllPicked() bool {
	for _, item := range o.items {
		if !item.picked {
			return false
		}
	}
	return true
}

// AllPacked reports whether every line has been marked packed.
func (o *Order) AllPacked() bool {
	for _, item := range o.items {
		if !item.packed {
			return false
		}
	}
	return true
}

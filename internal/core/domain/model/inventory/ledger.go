// Package inventory contains the per-product stock ledger. Each ledger entry
// tracks physical stock (onHand) and the portion soft-held for unfulfilled
// orders (reserved); available stock is onHand - reserved and is never
// negative. Entries are created when a product is listed and mutated by order
// transitions: reserve on confirmation, release on cancellation, commit on
// delivery.
package inventory

import (
	"errors"
	"fmt"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

var (
	// ErrLedgerIsNotConstructed is returned when a Ledger was not created
	// through NewLedger or RestoreLedger.
	ErrLedgerIsNotConstructed = errors.New("Ledger must be created via NewLedger or RestoreLedger constructors")

	// ErrInsufficientStock is returned when a reservation or commit asks for
	// more units than the ledger can supply.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Shortage names one line that could not be reserved: what was asked for and
// what was actually available at the time.
type Shortage struct {
	ProductID kernel.UUID
	Name      string
	Requested int
	Available int
}

// ShortageError reports every out-of-stock line of a failed reservation, so
// the actor sees which products to fix instead of a generic failure.
type ShortageError struct {
	Shortages []Shortage
}

func (e *ShortageError) Error() string {
	parts := make([]string, 0, len(e.Shortages))
	for _, s := range e.Shortages {
		name := s.Name
		if name == "" {
			name = s.ProductID.String()
		}
		parts = append(parts, fmt.Sprintf("%s (requested %d, available %d)", name, s.Requested, s.Available))
	}
	return fmt.Sprintf("%v: %s", ErrInsufficientStock, strings.Join(parts, ", "))
}

func (e *ShortageError) Unwrap() error {
	return ErrInsufficientStock
}

// Ledger is the stock record for a single product.
//
// Invariant: 0 <= reserved <= onHand at all times.
type Ledger struct {
	productID kernel.UUID
	onHand    int
	reserved  int

	isConstructed bool
}

// NewLedger creates a ledger entry for a newly listed product.
// Initial stock must be non-negative; nothing is reserved yet.
func NewLedger(productID kernel.UUID, onHand int) (*Ledger, error) {
	if err := productID.Validate(); err != nil {
		return nil, err
	}
	if onHand < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("onHand",
			fmt.Errorf("%d is negative", onHand))
	}
	return &Ledger{
		productID:     productID,
		onHand:        onHand,
		isConstructed: true,
	}, nil
}

// RestoreLedger reconstructs a ledger entry from persistence, re-validating
// the reserved <= onHand invariant.
func RestoreLedger(productID kernel.UUID, onHand, reserved int) (*Ledger, error) {
	ledger, err := NewLedger(productID, onHand)
	if err != nil {
		return nil, err
	}
	if reserved < 0 || reserved > onHand {
		return nil, errs.NewValueIsOutOfRangeError("reserved", reserved, 0, onHand)
	}
	ledger.reserved = reserved
	return ledger, nil
}

// Validate ensures the Ledger was created through a constructor.
func (l *Ledger) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrLedgerIsNotConstructed
	}
	return nil
}

// ProductID returns the product this ledger tracks.
func (l *Ledger) ProductID() kernel.UUID {
	return l.productID
}

// OnHand returns the physical stock count.
func (l *Ledger) OnHand() int {
	return l.onHand
}

// Reserved returns the quantity soft-held for unfulfilled orders.
func (l *Ledger) Reserved() int {
	return l.reserved
}

// Available returns the stock open for new reservations.
func (l *Ledger) Available() int {
	return l.onHand - l.reserved
}

// Reserve places a soft hold on quantity units.
// Fails with ErrInsufficientStock when available stock is short; the ledger is
// left unchanged in that case.
func (l *Ledger) Reserve(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	if l.Available() < quantity {
		return fmt.Errorf("%w: product %s has %d available, %d requested",
			ErrInsufficientStock, l.productID, l.Available(), quantity)
	}
	l.reserved += quantity
	return nil
}

// Release returns quantity units of a reservation, flooring reserved at zero.
// The floor is never reached while the ledger invariants hold.
func (l *Ledger) Release(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	l.reserved -= quantity
	if l.reserved < 0 {
		l.reserved = 0
	}
	return nil
}

// Commit permanently deducts quantity delivered units from both onHand and
// reserved. Fails without applying anything when reserved is short.
func (l *Ledger) Commit(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	if l.reserved < quantity {
		return fmt.Errorf("%w: product %s has %d reserved, cannot commit %d",
			ErrInsufficientStock, l.productID, l.reserved, quantity)
	}
	l.onHand -= quantity
	l.reserved -= quantity
	return nil
}

// Replenish adds delivered supplier stock to onHand.
func (l *Ledger) Replenish(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	l.onHand += quantity
	return nil
}

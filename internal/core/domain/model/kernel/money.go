package kernel

import (
	"fmt"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

// ErrMoneyIsNotConstructed is returned when validating a zero-value Money.
// Money must be created via NewMoney or derived from existing Money values.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError(
	"money must be created via NewMoney constructor")

// Money is an immutable non-negative amount stored in minor currency units
// (cents). Monetary fields on an order are snapshots frozen at placement time,
// so Money carries no currency code; the store operates in a single currency.
//
// Example:
//
//	price, err := kernel.NewMoney(1250) // 12.50
//	total, err := price.MulInt(3)
type Money struct { //nolint:recvcheck //using for validation
	cents int64
	guard guard.ConstructorGuard
}

// NewMoney creates a Money amount from minor units.
// Returns an error if cents is negative.
func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money",
			fmt.Errorf("%d is negative", cents))
	}
	return Money{cents: cents, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the Money value was properly constructed.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// Cents returns the amount in minor currency units.
func (m Money) Cents() int64 {
	return m.cents
}

// IsEqual reports whether two amounts are the same.
func (m Money) IsEqual(other Money) bool {
	return m.cents == other.cents
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) (Money, error) {
	if err := other.Validate(); err != nil {
		return Money{}, err
	}
	return NewMoney(m.cents + other.cents)
}

// Sub returns m minus other.
// Returns an error if the result would be negative.
func (m Money) Sub(other Money) (Money, error) {
	if err := other.Validate(); err != nil {
		return Money{}, err
	}
	return NewMoney(m.cents - other.cents)
}

// MulInt returns the amount multiplied by a non-negative factor.
func (m Money) MulInt(factor int) (Money, error) {
	if factor < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("factor",
			fmt.Errorf("%d is negative", factor))
	}
	return NewMoney(m.cents * int64(factor))
}

// String formats the amount as a decimal value, e.g. "12.50".
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.cents/100, m.cents%100)
}

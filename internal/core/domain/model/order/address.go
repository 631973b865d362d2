package order

import (
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

// ErrAddressIsNotConstructed is returned when validating a zero-value Address.
var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError(
	"address must be created via NewAddress constructor")

// Address is the delivery destination frozen at placement time. It is a copy of
// the customer's address-book entry, not a reference to it, so later edits to
// the address book do not change where an in-flight order is delivered.
type Address struct {
	street string
	city   string
	phone  string
	guard  guard.ConstructorGuard
}

// NewAddress creates a validated delivery address.
// Street and city are required; phone is optional.
func NewAddress(street, city, phone string) (Address, error) {
	if street == "" {
		return Address{}, errs.NewValueIsRequiredError("street")
	}
	if city == "" {
		return Address{}, errs.NewValueIsRequiredError("city")
	}
	return Address{
		street: street,
		city:   city,
		phone:  phone,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Address was properly constructed.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

// Street returns the street line of the address.
func (a Address) Street() string {
	return a.street
}

// City returns the city of the address.
func (a Address) City() string {
	return a.city
}

// Phone returns the contact phone, which may be empty.
func (a Address) Phone() string {
	return a.phone
}

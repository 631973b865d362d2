package order

import (
	"errors"
	"fmt"

	"storefront/internal/core/domain/model/actor"
)

var (
	// ErrInvalidTransition is returned when the requested status change is not
	// an edge of the order lifecycle.
	ErrInvalidTransition = errors.New("invalid order status transition")

	// ErrForbidden is returned when the acting role is not permitted to perform
	// an otherwise valid transition.
	ErrForbidden = errors.New("actor is not permitted to perform this transition")
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	placed ──> confirmed ──> picking ──> packing ──> ready ──> out_for_delivery ──> delivered
//	   │                                                                │
//	   ├──> rejected          (every non-terminal state) ──> cancelled ─┘
//
// delivered, cancelled, and rejected are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Placed is the initial status set when a customer places an order.
	Placed

	// Confirmed means the supplier accepted the order and stock was reserved.
	Confirmed

	// Picking means the supplier is collecting the line items.
	Picking

	// Packing means all lines are picked and are being packed.
	Packing

	// Ready means the order is packed and awaiting handover to delivery.
	Ready

	// OutForDelivery means the order left the store.
	OutForDelivery

	// Delivered is the terminal success state; stock is committed.
	Delivered

	// Cancelled is the terminal state for orders withdrawn before delivery.
	Cancelled

	// Rejected is the terminal state for orders the supplier declined.
	Rejected
)

// InventoryEffect describes the stock mutation a transition carries.
type InventoryEffect int

const (
	// EffectNone leaves the inventory ledger untouched.
	EffectNone InventoryEffect = iota

	// EffectReserve places a soft hold on each ordered quantity.
	EffectReserve

	// EffectRelease returns a previously held reservation.
	EffectRelease

	// EffectCommit permanently deducts delivered stock.
	EffectCommit
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "unknown",
		Placed:         "placed",
		Confirmed:      "confirmed",
		Picking:        "picking",
		Packing:        "packing",
		Ready:          "ready",
		OutForDelivery: "out_for_delivery",
		Delivered:      "delivered",
		Cancelled:      "cancelled",
		Rejected:       "rejected",
	}
}

// StatusFromString parses a status name as carried on the wire.
// Returns an error for unrecognized names and for "unknown".
func StatusFromString(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, fmt.Errorf("%w: %q is not a valid status", ErrInvalidTransition, s)
}

// String returns the wire name of the status, or "unknown" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Validate reports whether the status is one of the defined lifecycle states.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == Unknown {
		return fmt.Errorf("%w: %d is not a valid status", ErrInvalidTransition, s)
	}
	return nil
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled || s == Rejected
}

type transitionRule struct {
	roles  []actor.Role
	effect InventoryEffect
}

// HoldsReservation reports whether an order in this status holds a stock
// reservation that must be released on cancellation.
func (s Status) HoldsReservation() bool {
	switch s {
	case Confirmed, Picking, Packing, Ready, OutForDelivery:
		return true
	default:
		return false
	}
}

func (s Status) transitionRule(target Status) (transitionRule, bool) {
	supplierOnly := []actor.Role{actor.RoleSupplier}
	deliveryLeg := []actor.Role{actor.RoleSupplier, actor.RoleDispatch}

	type edge struct{ from, to Status }
	rules := map[edge]transitionRule{
		{Placed, Confirmed}:         {roles: supplierOnly, effect: EffectReserve},
		{Placed, Rejected}:          {roles: supplierOnly, effect: EffectNone},
		{Confirmed, Picking}:        {roles: supplierOnly, effect: EffectNone},
		{Picking, Packing}:          {roles: supplierOnly, effect: EffectNone},
		{Packing, Ready}:            {roles: supplierOnly, effect: EffectNone},
		{Ready, OutForDelivery}:     {roles: deliveryLeg, effect: EffectNone},
		{OutForDelivery, Delivered}: {roles: deliveryLeg, effect: EffectCommit},
	}

	if target == Cancelled && !s.IsTerminal() && s != Unknown {
		// Customers may back out only before the supplier confirms.
		roles := []actor.Role{actor.RoleSupplier, actor.RoleAdmin}
		if s == Placed {
			roles = append(roles, actor.RoleCustomer)
		}
		effect := EffectNone
		if s.HoldsReservation() {
			effect = EffectRelease
		}
		return transitionRule{roles: roles, effect: effect}, true
	}

	rule, ok := rules[edge{s, target}]
	return rule, ok
}

// ValidateTransition checks that s → target is an edge of the lifecycle.
// Returns an error wrapping ErrInvalidTransition otherwise.
func (s Status) ValidateTransition(target Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if _, ok := s.transitionRule(target); !ok {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, target)
	}
	return nil
}

// AuthorizeTransition checks that role may drive the transition s → target.
// The transition itself must already be valid.
// Returns an error wrapping ErrForbidden when the role is not permitted.
func (s Status) AuthorizeTransition(target Status, role actor.Role) error {
	rule, ok := s.transitionRule(target)
	if !ok {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, target)
	}
	for _, allowed := range rule.roles {
		if role == allowed {
			return nil
		}
	}
	return fmt.Errorf("%w: role %s cannot transition %s -> %s", ErrForbidden, role, s, target)
}

// InventoryEffectOf returns the stock side effect of the transition s → target,
// or EffectNone when the transition is not a lifecycle edge.
func (s Status) InventoryEffectOf(target Status) InventoryEffect {
	rule, ok := s.transitionRule(target)
	if !ok {
		return EffectNone
	}
	return rule.effect
}

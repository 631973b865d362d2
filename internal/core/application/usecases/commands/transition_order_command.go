package commands

import (
	"errors"
	"fmt"

	"storefront/internal/core/domain/model/actor"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var (
	ErrTransitionOrderCommandIsNotConstructed = errors.New(
		"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
	)
)

// TransitionOrderCommand represents a request to move an order to a new
// lifecycle status. It carries the acting identity, the version the caller
// last read (optimistic concurrency), and an optional client-supplied
// idempotency token for safe retries.
//
// Example:
//
//	cmd, err := NewTransitionOrderCommand(orderID, order.Confirmed, supplier, 1, token, "")
//	if err != nil {
//	    return fmt.Errorf("invalid transition request: %w", err)
//	}
//	result, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ports.ErrVersionConflict):
//	    // re-read the order and retry with the fresh version
//	case errors.Is(err, inventory.ErrInsufficientStock):
//	    // surface the out-of-stock lines to the supplier
//	case err != nil:
//	    return err
//	}
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	target          order.Status
	by              actor.Actor
	expectedVersion int
	idempotencyKey  string
	note            string

	guard guard.ConstructorGuard
}

// NewTransitionOrderCommand creates a validated transition request.
// The target must be a defined status, the actor must be constructed, and the
// expected version must be positive. The idempotency key may be empty, in
// which case retries are not deduplicated.
func NewTransitionOrderCommand(
	orderID kernel.UUID,
	target order.Status,
	by actor.Actor,
	expectedVersion int,
	idempotencyKey string,
	note string,
) (TransitionOrderCommand, error) {
	cmd := TransitionOrderCommand{
		idempotencyKey: idempotencyKey,
		note:           note,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTarget(target),
		cmd.setActor(by),
		cmd.setExpectedVersion(expectedVersion),
	); err != nil {
		return TransitionOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to transition.
func (c TransitionOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the requested lifecycle status.
func (c TransitionOrderCommand) Target() order.Status {
	return c.target
}

// Actor returns the acting identity.
func (c TransitionOrderCommand) Actor() actor.Actor {
	return c.by
}

// ExpectedVersion returns the order version the caller last read.
func (c TransitionOrderCommand) ExpectedVersion() int {
	return c.expectedVersion
}

// IdempotencyKey returns the client-supplied retry token, which may be empty.
func (c TransitionOrderCommand) IdempotencyKey() string {
	return c.idempotencyKey
}

// Note returns the optional note recorded in the status history.
func (c TransitionOrderCommand) Note() string {
	return c.note
}

func (c *TransitionOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *TransitionOrderCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	c.target = target
	return nil
}

func (c *TransitionOrderCommand) setActor(by actor.Actor) error {
	if err := by.Validate(); err != nil {
		return err
	}
	c.by = by
	return nil
}

func (c *TransitionOrderCommand) setExpectedVersion(version int) error {
	if version < 1 {
		return errs.NewVersionIsInvalidError("expectedVersion",
			fmt.Errorf("%d is not a positive version", version))
	}
	c.expectedVersion = version
	return nil
}

package commands

import (
	"errors"
	"fmt"

	"storefront/internal/core/domain/model/actor"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrMarkLineCommandIsNotConstructed = errors.New(
	"MarkLineCommand must be created via NewMarkLineCommand constructor",
)

// LineStage identifies which fulfillment checkbox a MarkLineCommand sets.
type LineStage int

const (
	// StageUnknown represents an invalid stage.
	StageUnknown LineStage = iota

	// StagePicked marks a line as collected during picking.
	StagePicked

	// StagePacked marks a picked line as packed.
	StagePacked
)

// String returns the wire name of the stage.
func (s LineStage) String() string {
	switch s {
	case StagePicked:
		return "picked"
	case StagePacked:
		return "packed"
	default:
		return "unknown"
	}
}

// Validate reports whether the stage is defined.
func (s LineStage) Validate() error {
	if s != StagePicked && s != StagePacked {
		return errs.NewValueIsInvalidErrorWithCause("stage",
			fmt.Errorf("%d is not a valid line stage", s))
	}
	return nil
}

// MarkLineCommand records picking/packing progress on one order line.
// The picking → packing and packing → ready transitions are gated on every
// line reaching the corresponding stage.
type MarkLineCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	productID       kernel.UUID
	stage           LineStage
	by              actor.Actor
	expectedVersion int

	guard guard.ConstructorGuard
}

// NewMarkLineCommand creates a validated line-progress command.
func NewMarkLineCommand(
	orderID, productID kernel.UUID,
	stage LineStage,
	by actor.Actor,
	expectedVersion int,
) (MarkLineCommand, error) {
	cmd := MarkLineCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setProductID(productID),
		cmd.setStage(stage),
		cmd.setActor(by),
		cmd.setExpectedVersion(expectedVersion),
	); err != nil {
		return MarkLineCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkLineCommand) Validate() error {
	return c.guard.Validate(ErrMarkLineCommandIsNotConstructed)
}

// OrderID returns the order the line belongs to.
func (c MarkLineCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ProductID returns the line's product identifier.
func (c MarkLineCommand) ProductID() kernel.UUID {
	return c.productID
}

// Stage returns which checkbox to set.
func (c MarkLineCommand) Stage() LineStage {
	return c.stage
}

// Actor returns the acting identity.
func (c MarkLineCommand) Actor() actor.Actor {
	return c.by
}

// ExpectedVersion returns the order version the caller last read.
func (c MarkLineCommand) ExpectedVersion() int {
	return c.expectedVersion
}

func (c *MarkLineCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *MarkLineCommand) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	c.productID = productID
	return nil
}

func (c *MarkLineCommand) setStage(stage LineStage) error {
	if err := stage.Validate(); err != nil {
		return err
	}
	c.stage = stage
	return nil
}

func (c *MarkLineCommand) setActor(by actor.Actor) error {
	if err := by.Validate(); err != nil {
		return err
	}
	c.by = by
	return nil
}

func (c *MarkLineCommand) setExpectedVersion(version int) error {
	if version < 1 {
		return errs.NewVersionIsInvalidError("expectedVersion",
			fmt.Errorf("%d is not a positive version", version))
	}
	c.expectedVersion = version
	return nil
}

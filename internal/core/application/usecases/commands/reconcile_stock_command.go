package commands

import (
	"errors"

	"storefront/internal/pkg/guard"
)

var ErrReconcileStockCommandIsNotConstructed = errors.New(
	"ReconcileStockCommand must be created via NewReconcileStockCommand constructor",
)

// ReconcileStockCommand triggers one reconciliation sweep: the reserved count
// of every ledger entry is recomputed from the lines of orders that currently
// hold a reservation, and drifted entries are repaired. Drift should never
// happen while transitions and stock mutations share a transaction; the sweep
// exists to detect and heal it if it does.
type ReconcileStockCommand struct {
	guard guard.ConstructorGuard
}

// NewReconcileStockCommand creates a new command to trigger a reconciliation sweep.
func NewReconcileStockCommand() ReconcileStockCommand {
	return ReconcileStockCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *ReconcileStockCommand) Validate() error {
	return c.guard.Validate(
		ErrReconcileStockCommandIsNotConstructed,
	)
}

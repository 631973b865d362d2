package order

import (
	"time"

	"storefront/internal/core/domain/model/actor"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

// ErrHistoryEntryIsNotConstructed is returned when validating a zero-value HistoryEntry.
var ErrHistoryEntryIsNotConstructed = errs.NewValueIsRequiredError(
	"history entry must be created via NewHistoryEntry constructor")

// HistoryEntry records one status change: who moved the order, to which status,
// when, and an optional note. The order's history is append-only and is never
// reordered; it is the audit trail of the fulfillment workflow.
type HistoryEntry struct {
	status  Status
	actorID kernel.UUID
	role    actor.Role
	note    string
	at      time.Time
	guard   guard.ConstructorGuard
}

// NewHistoryEntry creates a validated audit record for a status change.
func NewHistoryEntry(status Status, actorID kernel.UUID, role actor.Role, note string, at time.Time) (HistoryEntry, error) {
	if err := status.Validate(); err != nil {
		return HistoryEntry{}, err
	}
	if err := actorID.Validate(); err != nil {
		return HistoryEntry{}, err
	}
	if err := role.Validate(); err != nil {
		return HistoryEntry{}, err
	}
	if at.IsZero() {
		return HistoryEntry{}, errs.NewValueIsRequiredError("timestamp")
	}
	return HistoryEntry{
		status:  status,
		actorID: actorID,
		role:    role,
		note:    note,
		at:      at,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the HistoryEntry was properly constructed.
func (h HistoryEntry) Validate() error {
	return h.guard.Validate(ErrHistoryEntryIsNotConstructed)
}

// Status returns the status the order entered.
func (h HistoryEntry) Status() Status {
	return h.status
}

// ActorID returns the identifier of the actor who drove the change.
func (h HistoryEntry) ActorID() kernel.UUID {
	return h.actorID
}

// Role returns the role of the acting party.
func (h HistoryEntry) Role() actor.Role {
	return h.role
}

// Note returns the optional free-form note attached to the change.
func (h HistoryEntry) Note() string {
	return h.note
}

// At returns when the change happened.
func (h HistoryEntry) At() time.Time {
	return h.at
}

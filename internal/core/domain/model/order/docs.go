// Package order contains the order aggregate and its lifecycle state machine.
//
// An order moves through
//
//	placed → confirmed → picking → packing → ready → out_for_delivery → delivered
//
// with cancelled reachable from every non-terminal state and rejected reachable
// only from placed. Every transition is authorized against the acting role and
// may carry an inventory side effect (reserve on confirmation, commit on
// delivery, release on cancellation after a reservation was made). The
// aggregate keeps an append-only status history and a version counter used for
// optimistic concurrency by the persistence layer.
package order

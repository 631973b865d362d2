package ports

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
)

// Receipt records the outcome of a successfully applied transition, keyed by
// the client-supplied idempotency token. A retried call with the same token
// gets the stored outcome back instead of re-applying the transition, which
// prevents duplicate inventory commits from retried delivery confirmations.
type Receipt struct {
	Token   string
	OrderID kernel.UUID
	Status  order.Status
	Version int
}

// ReceiptRepository defines the persistence contract for transition receipts.
// Receipts are written in the same transaction as the transition they record.
type ReceiptRepository interface {
	// Find retrieves the receipt stored under token.
	// Returns errs.ErrObjectNotFound when the token was never used.
	Find(ctx context.Context, token string) (*Receipt, error)

	// Save persists a receipt. The token is unique; saving a duplicate fails.
	Save(ctx context.Context, receipt Receipt) error
}

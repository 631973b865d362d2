package queries

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"

	"gorm.io/gorm"
)

// WatchOrderQueryHandler streams status updates of one order. The first
// update on the channel is a snapshot of the committed row, followed by live
// updates published after the subscription started. Updates at or below the
// snapshot version are dropped, so a consumer never observes the status
// moving backwards.
type WatchOrderQueryHandler struct {
	db     *gorm.DB
	stream ports.OrderStream
}

// NewWatchOrderQueryHandler creates a handler for live order watches.
func NewWatchOrderQueryHandler(db *gorm.DB, stream ports.OrderStream) WatchOrderQueryHandler {
	return WatchOrderQueryHandler{db: db, stream: stream}
}

// Handle returns a channel of order updates. The channel closes when ctx is
// done or when the order reaches a terminal status.
func (h WatchOrderQueryHandler) Handle(ctx context.Context, query WatchOrderQuery) (<-chan ports.OrderUpdate, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	// Subscribe before reading the snapshot so updates committed between the
	// two steps are not lost, only deduplicated by version.
	live, err := h.stream.Subscribe(ctx, query.OrderID())
	if err != nil {
		return nil, err
	}

	snapshot, err := h.loadSnapshot(ctx, query)
	if err != nil {
		return nil, err
	}

	out := make(chan ports.OrderUpdate, 1)
	out <- snapshot

	go func() {
		defer close(out)
		if snapshot.Status.IsTerminal() {
			return
		}
		lastVersion := snapshot.Version
		for {
			select {
			case <-ctx.Done():
				return
			case update, ok := <-live:
				if !ok {
					return
				}
				if update.Version <= lastVersion {
					continue
				}
				lastVersion = update.Version
				select {
				case out <- update:
				case <-ctx.Done():
					return
				}
				if update.Status.IsTerminal() {
					return
				}
			}
		}
	}()

	return out, nil
}

func (h WatchOrderQueryHandler) loadSnapshot(ctx context.Context, query WatchOrderQuery) (ports.OrderUpdate, error) {
	row := h.db.WithContext(ctx).Raw(`
		SELECT status, version, created_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	var (
		status, version int
		createdAt       time.Time
	)
	if err := row.Scan(&status, &version, &createdAt); err != nil {
		return ports.OrderUpdate{}, errs.NewObjectNotFoundErrorWithCause("order", query.OrderID().String(), err)
	}

	return ports.OrderUpdate{
		OrderID: query.OrderID(),
		Status:  order.Status(status),
		Version: version,
		At:      createdAt,
	}, nil
}

// Package redisstream implements the order update stream on Redis pub/sub.
// Each order has its own channel, so a watch subscribes to exactly the
// updates it cares about. Delivery is best-effort: a subscriber that misses
// an update repairs itself by re-reading the order row.
package redisstream

import (
	"context"
	"encoding/json"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const channelPrefix = "order.updates:"

// updateMessage is the wire format published on the per-order channel.
type updateMessage struct {
	OrderID string    `json:"order_id"`
	Status  string    `json:"status"`
	Version int       `json:"version"`
	At      time.Time `json:"at"`
}

// Stream implements ports.OrderStream using Redis pub/sub.
type Stream struct {
	client *redis.Client
	log    *logger.Logger
}

// NewStream creates an order update stream on the given Redis client.
func NewStream(client *redis.Client, log *logger.Logger) *Stream {
	return &Stream{client: client, log: log}
}

// Publish pushes an update to the order's channel.
func (s *Stream) Publish(ctx context.Context, update ports.OrderUpdate) error {
	body, err := json.Marshal(updateMessage{
		OrderID: update.OrderID.String(),
		Status:  update.Status.String(),
		Version: update.Version,
		At:      update.At,
	})
	if err != nil {
		return err
	}

	return s.client.Publish(ctx, channelPrefix+update.OrderID.String(), body).Err()
}

// Subscribe delivers subsequent updates for one order until ctx is done.
// Malformed messages are logged and skipped.
func (s *Stream) Subscribe(ctx context.Context, orderID kernel.UUID) (<-chan ports.OrderUpdate, error) {
	sub := s.client.Subscribe(ctx, channelPrefix+orderID.String())

	// Force the subscription onto the wire before returning, so updates
	// published after this call are guaranteed to be delivered.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, err
	}

	out := make(chan ports.OrderUpdate)
	go func() {
		defer close(out)
		defer sub.Close()

		messages := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}
				update, err := s.decode(msg.Payload)
				if err != nil {
					s.log.Warn("skipping malformed order update",
						zap.Error(err),
						zap.String("order_id", orderID.String()),
					)
					continue
				}
				select {
				case out <- update:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

func (s *Stream) decode(payload string) (ports.OrderUpdate, error) {
	var msg updateMessage
	if err := json.Unmarshal([]byte(payload), &msg); err != nil {
		return ports.OrderUpdate{}, err
	}

	orderID, err := kernel.UUIDFromString(msg.OrderID)
	if err != nil {
		return ports.OrderUpdate{}, err
	}
	status, err := order.StatusFromString(msg.Status)
	if err != nil {
		return ports.OrderUpdate{}, err
	}

	return ports.OrderUpdate{
		OrderID: orderID,
		Status:  status,
		Version: msg.Version,
		At:      msg.At,
	}, nil
}

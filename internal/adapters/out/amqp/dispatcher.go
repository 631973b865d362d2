// Package amqp delivers order notifications to RabbitMQ. Dispatch is
// fire-and-forget: a buffered queue decouples the publishing worker from the
// transition path, and a full queue drops the notification with a log line
// instead of blocking or failing the transition.
package amqp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"storefront/internal/core/ports"
	"storefront/internal/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const publishTimeout = 5 * time.Second

// notificationMessage is the wire format published to the notification exchange.
type notificationMessage struct {
	OrderID    string    `json:"order_id"`
	CustomerID string    `json:"customer_id"`
	SupplierID string    `json:"supplier_id"`
	Status     string    `json:"status"`
	Note       string    `json:"note,omitempty"`
	At         time.Time `json:"at"`
}

// Dispatcher implements ports.NotificationDispatcher on top of a RabbitMQ
// topic exchange. Messages are routed by "order.status.<status>" so the
// notification service can bind per-status queues.
type Dispatcher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	queue    chan ports.Notification
	done     chan struct{}
	log      *logger.Logger
}

// NewDispatcher connects to RabbitMQ, declares the exchange, and starts the
// publishing worker. bufferSize bounds the number of notifications queued
// between the transition path and the worker.
func NewDispatcher(url, exchange string, bufferSize int, log *logger.Logger) (*Dispatcher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	d := &Dispatcher{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
		queue:    make(chan ports.Notification, bufferSize),
		done:     make(chan struct{}),
		log:      log,
	}
	go d.run()

	return d, nil
}

// Dispatch enqueues a notification for publishing. Never blocks; when the
// queue is full the notification is dropped and logged.
func (d *Dispatcher) Dispatch(notification ports.Notification) {
	select {
	case d.queue <- notification:
	default:
		d.log.Warn("notification queue full, dropping",
			zap.String("order_id", notification.OrderID.String()),
			zap.String("status", notification.Status.String()),
		)
	}
}

// Close drains the queue, stops the worker, and closes the connection.
func (d *Dispatcher) Close() error {
	close(d.queue)
	<-d.done

	d.channel.Close()
	return d.conn.Close()
}

func (d *Dispatcher) run() {
	defer close(d.done)

	for notification := range d.queue {
		d.publish(notification)
	}
}

func (d *Dispatcher) publish(notification ports.Notification) {
	body, err := json.Marshal(notificationMessage{
		OrderID:    notification.OrderID.String(),
		CustomerID: notification.CustomerID.String(),
		SupplierID: notification.SupplierID.String(),
		Status:     notification.Status.String(),
		Note:       notification.Note,
		At:         notification.At,
	})
	if err != nil {
		d.log.Error("failed to marshal notification", zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	routingKey := "order.status." + notification.Status.String()
	err = d.channel.PublishWithContext(
		ctx,
		d.exchange, // exchange
		routingKey, // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    notification.At,
		},
	)
	if err != nil {
		d.log.Error("failed to publish notification",
			zap.Error(err),
			zap.String("order_id", notification.OrderID.String()),
			zap.String("routing_key", routingKey),
		)
		return
	}

	d.log.Debug("notification published",
		zap.String("order_id", notification.OrderID.String()),
		zap.String("routing_key", routingKey),
	)
}

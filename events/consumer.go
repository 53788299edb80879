// File: events/consumer.go
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"studiolink/utils"
)

// Handler processes one booking change event. Returning an error causes the
// delivery to be requeued, so handlers must stay idempotent.
type Handler func(ctx context.Context, event BookingChanged) error

// StartBookingConsumer connects to RabbitMQ, declares the booking.changed
// queue and feeds every delivery to the handler. It runs a reconnect loop
// with exponential backoff and never returns under normal operation; each
// event is acked on success and requeued on handler failure so the
// at-least-once contract holds across restarts.
func StartBookingConsumer(url string, handler Handler) {
	logger := utils.GetLogger()
	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			utils.SetConsumerUp(false)
			logger.Warn("booking-consumer: failed to dial broker",
				zap.Error(err), zap.Duration("retryIn", backoff))
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect
		utils.SetConsumerUp(true)

		if err := consumeLoop(conn, handler); err != nil {
			utils.SetConsumerUp(false)
			logger.Warn("booking-consumer: consume loop ended, reconnecting", zap.Error(err))
			_ = conn.Close()
			time.Sleep(2 * time.Second)
		}
	}
}

func consumeLoop(conn *amqp.Connection, handler Handler) error {
	logger := utils.GetLogger()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(10, 0, false); err != nil {
		logger.Warn("booking-consumer: set QoS failed", zap.Error(err))
	}

	if _, err := ch.QueueDeclare(QueueBookingChanged, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(QueueBookingChanged, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		var event BookingChanged
		if err := json.Unmarshal(d.Body, &event); err != nil {
			logger.Error("booking-consumer: malformed event dropped", zap.Error(err))
			_ = d.Nack(false, false) // unparseable, requeueing cannot help
			continue
		}

		if err := handler(context.Background(), event); err != nil {
			logger.Error("booking-consumer: handler failed, requeueing",
				zap.String("bookingId", event.BookingID), zap.Error(err))
			// Short pause keeps a persistently failing event from spinning hot.
			time.Sleep(time.Second)
			_ = d.Nack(false, true)
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

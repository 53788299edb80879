// File: events/publisher.go
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"studiolink/utils"
)

// Publisher emits booking change events for the availability synchronizer.
type Publisher interface {
	PublishBookingChanged(ctx context.Context, event BookingChanged) error
}

// AMQPPublisher publishes persistent messages onto the booking.changed
// queue. Publish errors are logged and returned so callers can decide
// whether to interrupt the request flow.
type AMQPPublisher struct {
	URL string
}

func NewAMQPPublisher(url string) *AMQPPublisher {
	return &AMQPPublisher{URL: url}
}

func (p *AMQPPublisher) PublishBookingChanged(ctx context.Context, event BookingChanged) error {
	logger := utils.GetLogger()

	conn, err := amqp.Dial(p.URL)
	if err != nil {
		logger.Error("rabbitmq: dial failed", zap.Error(err))
		return fmt.Errorf("rabbitmq dial failed: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("rabbitmq: channel open failed", zap.Error(err))
		return fmt.Errorf("rabbitmq channel open failed: %w", err)
	}
	defer func() { _ = ch.Close() }()

	// Idempotent declare; durable so events survive broker restarts.
	if _, err := ch.QueueDeclare(QueueBookingChanged, true, false, false, false, nil); err != nil {
		logger.Error("rabbitmq: queue declare failed", zap.Error(err))
		return fmt.Errorf("rabbitmq queue declare failed: %w", err)
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal booking change event: %w", err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		MessageId:    event.BookingID,
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx, "", QueueBookingChanged, false, false, pub); err != nil {
		logger.Error("rabbitmq: publish failed",
			zap.String("bookingId", event.BookingID), zap.Error(err))
		return fmt.Errorf("rabbitmq publish failed: %w", err)
	}
	return nil
}

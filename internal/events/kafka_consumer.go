package events

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// BookingConfirmer is the slice of the booking service the payment consumer
// needs: confirming a booking once its advance is paid.
type BookingConfirmer interface {
	ConfirmBookingPayment(ctx context.Context, bookingID uuid.UUID) error
}

// PaymentEventConsumer listens to payment events and confirms bookings whose
// advance payment was received.
type PaymentEventConsumer struct {
	consumer *Consumer
	service  BookingConfirmer
	logger   *zap.Logger
}

// NewPaymentEventConsumer creates a new PaymentEventConsumer.
func NewPaymentEventConsumer(
	brokers []string,
	groupID string,
	service BookingConfirmer,
	logger *zap.Logger,
) *PaymentEventConsumer {
	consumer := NewConsumer(brokers, groupID, TopicPaymentEvents, logger)
	return &PaymentEventConsumer{
		consumer: consumer,
		service:  service,
		logger:   logger,
	}
}

// Start begins consuming payment events. This blocks until the context is cancelled.
func (c *PaymentEventConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

// Close closes the underlying Kafka consumer.
func (c *PaymentEventConsumer) Close() error {
	return c.consumer.Close()
}

func (c *PaymentEventConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	var cloudEvent CloudEvent
	if err := json.Unmarshal(msg.Value, &cloudEvent); err != nil {
		c.logger.Error("failed to parse cloud event from payment topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return nil // Don't retry malformed messages
	}

	switch cloudEvent.Type {
	case PaymentAdvanceReceived:
		return c.handleAdvanceReceived(ctx, cloudEvent)
	default:
		c.logger.Debug("ignoring unhandled payment event type",
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}
}

func (c *PaymentEventConsumer) handleAdvanceReceived(ctx context.Context, cloudEvent CloudEvent) error {
	var evt AdvanceReceivedEvent
	if err := cloudEvent.ParseData(&evt); err != nil {
		c.logger.Error("failed to parse AdvanceReceivedEvent data",
			zap.Error(err),
		)
		return nil // Don't retry malformed data
	}

	c.logger.Info("processing advance payment event",
		zap.String("booking_id", evt.BookingID.String()),
		zap.String("payment_ref", evt.PaymentRef),
	)

	if err := c.service.ConfirmBookingPayment(ctx, evt.BookingID); err != nil {
		c.logger.Error("failed to confirm booking after advance payment",
			zap.String("booking_id", evt.BookingID.String()),
			zap.Error(err),
		)
		return err
	}

	c.logger.Info("booking confirmed after advance payment",
		zap.String("booking_id", evt.BookingID.String()),
	)
	return nil
}

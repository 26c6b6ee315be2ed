package notifier

import (
	"context"
	"fmt"

	"staybook/pkg/events"
	"staybook/pkg/kafka"
	"staybook/pkg/logger"
)

// Worker turns booking events into customer notifications. It is the message
// handler given to the Kafka consumer; unknown event types are acknowledged
// and skipped so schema evolution never wedges the partition.
type Worker struct {
	sender Sender
	log    *logger.Logger
}

func NewWorker(sender Sender, log *logger.Logger) *Worker {
	return &Worker{
		sender: sender,
		log:    log,
	}
}

func (w *Worker) HandleMessage(ctx context.Context, msg kafka.Message) error {
	switch msg.EventType() {
	case events.TypeBookingCreated:
		return w.handleBookingCreated(ctx, msg)
	default:
		w.log.Warn("Skipping unknown event type",
			"event_id", msg.EventID(),
			"event_type", msg.EventType(),
			"topic", msg.Topic,
		)
		return nil
	}
}

func (w *Worker) handleBookingCreated(ctx context.Context, msg kafka.Message) error {
	var event events.BookingCreated
	if err := msg.DecodeValue(&event); err != nil {
		return fmt.Errorf("failed to decode booking.created event: %w", err)
	}

	if err := w.sender.SendBookingCreated(ctx, event); err != nil {
		return fmt.Errorf("failed to send booking notification: %w", err)
	}

	w.log.Debug("Booking notification sent",
		"event_id", msg.EventID(),
		"booking_id", event.BookingID,
	)
	return nil
}

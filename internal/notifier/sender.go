package notifier

import (
	"context"

	"staybook/pkg/events"
	"staybook/pkg/logger"
)

// Sender delivers a booking notification to the customer. The log sender is
// the default; an email or messaging provider plugs in behind the same
// interface.
type Sender interface {
	SendBookingCreated(ctx context.Context, event events.BookingCreated) error
}

type LogSender struct {
	log *logger.Logger
}

func NewLogSender(log *logger.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) SendBookingCreated(_ context.Context, event events.BookingCreated) error {
	s.log.Info("Booking notification",
		"booking_id", event.BookingID,
		"product_id", event.ProductID,
		"customer_id", event.CustomerID,
		"start_date", event.StartDate.String(),
		"end_date", event.EndDate.String(),
		"status", event.Status,
	)
	return nil
}

package events

import "staybook/pkg/model"

const (
	TopicBookingCreated = "booking.created"

	TypeBookingCreated = "booking.created.v1"
)

// BookingCreated is published after a booking commits. Delivery is
// fire-and-forget: the notifier picks it up, the booking transaction never
// waits on it.
type BookingCreated struct {
	BookingID  string              `json:"booking_id"`
	ProductID  string              `json:"product_id"`
	CustomerID string              `json:"customer_id"`
	StartDate  model.Date          `json:"start_date"`
	EndDate    model.Date          `json:"end_date"`
	Status     model.BookingStatus `json:"status"`
}

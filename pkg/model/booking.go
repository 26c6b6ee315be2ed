package model

import (
	"time"
)

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// DefaultBookingStatus is the status assigned at creation. Fixed per
// deployment; tests assert it.
const DefaultBookingStatus = StatusPending

func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// Blocks reports whether a booking in this status occupies its date range
// for overlap and blocked-date computation. Cancelled bookings are retained
// for history but never block.
func (s BookingStatus) Blocks() bool {
	return s == StatusPending || s == StatusConfirmed
}

// CanTransitionTo encodes the lifecycle state machine: pending may confirm
// or cancel, confirmed may cancel, cancelled is terminal.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCancelled
	}
	return false
}

// Booking reserves an inclusive [StartDate, EndDate] range of a product for
// a customer. For any product, non-cancelled bookings are pairwise
// non-overlapping; that invariant is enforced at creation time and is the
// source of truth for availability.
type Booking struct {
	ID         string        `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	ProductID  string        `json:"product_id" bson:"product_id" validate:"required,mongodb"`
	CustomerID string        `json:"customer_id" bson:"customer_id" validate:"required,min=1,max=64"`
	StartDate  Date          `json:"start_date" bson:"start_date" validate:"-"`
	EndDate    Date          `json:"end_date" bson:"end_date" validate:"-"`
	Status     BookingStatus `json:"status" bson:"status" validate:"required,oneof=pending confirmed cancelled"`
	CreatedAt  time.Time     `json:"created_at,omitempty" bson:"created_at" validate:"omitempty"`
}

// Overlaps reports whether two inclusive date ranges intersect. Adjacent
// ranges sharing a single day do intersect.
func Overlaps(start1, end1, start2, end2 Date) bool {
	return !start1.After(end2.Time) && !end1.Before(start2.Time)
}

// OverlapsRange reports whether the booking's range intersects [start, end].
func (b *Booking) OverlapsRange(start, end Date) bool {
	return Overlaps(b.StartDate, b.EndDate, start, end)
}

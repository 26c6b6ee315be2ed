package service

import (
	"context"
	"sort"

	apperrors "staybook/pkg/errors"
	"staybook/pkg/model"
)

// Cap on bookings folded into one blocked-dates response. Far beyond any
// realistic calendar window.
const maxBlockedFetch = 1000

// BlockedDates returns the sorted, de-duplicated set of days covered by the
// product's active bookings, as YYYY-MM-DD strings. A window bound given in
// the wrong order is swapped rather than rejected, and booking ranges are
// clipped to the window so only days inside it are reported.
func (s *bookingService) BlockedDates(ctx context.Context, productID string, from, to *model.Date) ([]string, error) {
	if productID == "" {
		return nil, apperrors.InvalidInput("Product ID cannot be empty")
	}

	if from != nil && to != nil && from.After(to.Time) {
		from, to = to, from
	}

	bookings, err := s.repo.FindOverlapping(ctx, productID, from, to, maxBlockedFetch)
	if err != nil {
		s.cfg.Log.Error("Failed to load bookings for calendar", "product_id", productID, "error", err)
		return nil, apperrors.Internal("Failed to compute blocked dates", err)
	}
	if len(bookings) >= maxBlockedFetch {
		s.cfg.Log.Warn("Blocked-date query hit the booking fetch cap, calendar may be incomplete",
			"product_id", productID,
			"cap", maxBlockedFetch,
		)
	}

	blocked := make(map[string]struct{})
	for _, b := range bookings {
		start, end := clipRange(b.StartDate, b.EndDate, from, to)
		for d := start; !d.After(end.Time); d = d.AddDays(1) {
			blocked[d.String()] = struct{}{}
		}
	}

	dates := make([]string, 0, len(blocked))
	for d := range blocked {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	return dates, nil
}

// clipRange intersects a booking's range with the optional window bounds.
// The repository only returns bookings intersecting the window, so the
// clipped range is never empty.
func clipRange(start, end model.Date, from, to *model.Date) (model.Date, model.Date) {
	if from != nil && start.Before(from.Time) {
		start = *from
	}
	if to != nil && end.After(to.Time) {
		end = *to
	}
	return start, end
}

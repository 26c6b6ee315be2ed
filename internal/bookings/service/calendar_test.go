package service

import (
	"bytes"
	"context"
	"reflect"
	"strings"
	"testing"

	"staybook/internal/bookings/validator"
	apperrors "staybook/pkg/errors"
	"staybook/pkg/logger"
	"staybook/pkg/model"
)

func fixtureBookings(t *testing.T) []*model.Booking {
	t.Helper()
	return []*model.Booking{
		{
			ID:        "64f000000000000000000051",
			ProductID: testProductID,
			StartDate: mustDate(t, "2025-09-10"),
			EndDate:   mustDate(t, "2025-09-12"),
			Status:    model.StatusConfirmed,
		},
		{
			ID:        "64f000000000000000000052",
			ProductID: testProductID,
			StartDate: mustDate(t, "2025-09-20"),
			EndDate:   mustDate(t, "2025-09-21"),
			Status:    model.StatusPending,
		},
	}
}

func calendarService(t *testing.T, bookings []*model.Booking) *bookingService {
	t.Helper()
	repo := &mockBookingRepository{
		findOverlappingFunc: func(_ context.Context, _ string, start, end *model.Date, _ int) ([]*model.Booking, error) {
			var out []*model.Booking
			for _, b := range bookings {
				if start != nil && b.EndDate.Before(start.Time) {
					continue
				}
				if end != nil && b.StartDate.After(end.Time) {
					continue
				}
				out = append(out, b)
			}
			return out, nil
		},
	}
	return newTestService(repo, nil, nil)
}

func TestBlockedDates_UnionOfRanges(t *testing.T) {
	svc := calendarService(t, fixtureBookings(t))

	dates, err := svc.BlockedDates(context.Background(), testProductID, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"2025-09-10", "2025-09-11", "2025-09-12", "2025-09-20", "2025-09-21"}
	if !reflect.DeepEqual(dates, want) {
		t.Errorf("blocked dates = %v, want %v", dates, want)
	}
}

func TestBlockedDates_WindowClipsRanges(t *testing.T) {
	svc := calendarService(t, fixtureBookings(t))

	from := mustDate(t, "2025-09-11")
	to := mustDate(t, "2025-09-20")
	dates, err := svc.BlockedDates(context.Background(), testProductID, &from, &to)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"2025-09-11", "2025-09-12", "2025-09-20"}
	if !reflect.DeepEqual(dates, want) {
		t.Errorf("blocked dates = %v, want %v", dates, want)
	}
}

func TestBlockedDates_ReversedWindowSwapped(t *testing.T) {
	svc := calendarService(t, fixtureBookings(t))

	from := mustDate(t, "2025-09-20")
	to := mustDate(t, "2025-09-11")
	dates, err := svc.BlockedDates(context.Background(), testProductID, &from, &to)
	if err != nil {
		t.Fatalf("reversed window must not error, got: %v", err)
	}

	want := []string{"2025-09-11", "2025-09-12", "2025-09-20"}
	if !reflect.DeepEqual(dates, want) {
		t.Errorf("blocked dates = %v, want %v", dates, want)
	}
}

func TestBlockedDates_OverlappingBookingsDeduplicated(t *testing.T) {
	bookings := []*model.Booking{
		{
			ID:        "64f000000000000000000061",
			ProductID: testProductID,
			StartDate: mustDate(t, "2025-09-10"),
			EndDate:   mustDate(t, "2025-09-12"),
			Status:    model.StatusConfirmed,
		},
		{
			ID:        "64f000000000000000000062",
			ProductID: testProductID,
			StartDate: mustDate(t, "2025-09-12"),
			EndDate:   mustDate(t, "2025-09-13"),
			Status:    model.StatusPending,
		},
	}
	svc := calendarService(t, bookings)

	dates, err := svc.BlockedDates(context.Background(), testProductID, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"2025-09-10", "2025-09-11", "2025-09-12", "2025-09-13"}
	if !reflect.DeepEqual(dates, want) {
		t.Errorf("blocked dates = %v, want %v", dates, want)
	}
}

func TestBlockedDates_Idempotent(t *testing.T) {
	svc := calendarService(t, fixtureBookings(t))
	ctx := context.Background()

	first, err := svc.BlockedDates(ctx, testProductID, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 0; i < 4; i++ {
		dates, err := svc.BlockedDates(ctx, testProductID, nil, nil)
		if err != nil {
			t.Fatalf("iteration %d: unexpected error: %v", i, err)
		}
		if !reflect.DeepEqual(dates, first) {
			t.Fatalf("iteration %d: repeated read changed its answer: %v vs %v", i, dates, first)
		}
	}
}

func TestBlockedDates_FetchCapLogged(t *testing.T) {
	base := mustDate(t, "2025-01-01")
	capped := make([]*model.Booking, maxBlockedFetch)
	for i := range capped {
		day := base.AddDays(i)
		capped[i] = &model.Booking{
			ID:        "64f000000000000000000071",
			ProductID: testProductID,
			StartDate: day,
			EndDate:   day,
			Status:    model.StatusConfirmed,
		}
	}
	repo := &mockBookingRepository{
		findOverlappingFunc: func(context.Context, string, *model.Date, *model.Date, int) ([]*model.Booking, error) {
			return capped, nil
		},
	}

	var logBuf bytes.Buffer
	cfg := testConfig()
	cfg.Log = logger.New(logger.Config{
		Level:   logger.LevelWarn,
		Format:  logger.FormatJSON,
		Output:  &logBuf,
		Service: "test",
	})
	svc := &bookingService{
		repo:      repo,
		lockRepo:  newMockLockRepository(),
		validator: validator.NewBookingValidator(cfg.Log),
		catalog:   &mockCatalog{},
		identity:  &mockCustomerDirectory{},
		cfg:       cfg,
	}

	dates, err := svc.BlockedDates(context.Background(), testProductID, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dates) != maxBlockedFetch {
		t.Errorf("expected %d blocked dates, got %d", maxBlockedFetch, len(dates))
	}
	if !strings.Contains(logBuf.String(), "fetch cap") {
		t.Error("expected a warning when the booking fetch cap is hit")
	}
}

func TestBlockedDates_EmptyCalendar(t *testing.T) {
	svc := calendarService(t, nil)

	dates, err := svc.BlockedDates(context.Background(), testProductID, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dates) != 0 {
		t.Errorf("expected no blocked dates, got %v", dates)
	}
}

func TestBlockedDates_EmptyProductID(t *testing.T) {
	svc := calendarService(t, nil)

	_, err := svc.BlockedDates(context.Background(), "", nil, nil)
	if err == nil {
		t.Fatal("expected error for empty product ID")
	}
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeInvalidInput {
		t.Errorf("expected code %s, got %s", apperrors.CodeInvalidInput, appErr.Code)
	}
}

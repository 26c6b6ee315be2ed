package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	bookingserrors "staybook/internal/bookings/errors"
	"staybook/internal/bookings/repository"
	"staybook/internal/bookings/validator"
	"staybook/pkg/client"
	"staybook/pkg/config"
	apperrors "staybook/pkg/errors"
	"staybook/pkg/events"
	"staybook/pkg/kafka"
	"staybook/pkg/model"
)

const (
	// Upper bound on conflicts returned with a CONFLICT error. Enough to show
	// the caller what is in the way without paging the whole calendar.
	maxConflictDetails = 30

	publishTimeout = 5 * time.Second

	eventSource = "bookings-service"
)

// EventPublisher is the slice of the Kafka producer the service needs.
type EventPublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type BookingService interface {
	Create(ctx context.Context, booking *model.Booking) error
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	GetByProduct(ctx context.Context, productID string, limit int, offset int64) ([]*model.Booking, int64, error)
	CheckAvailability(ctx context.Context, productID string, start, end model.Date) (bool, error)
	BlockedDates(ctx context.Context, productID string, from, to *model.Date) ([]string, error)
	UpdateStatus(ctx context.Context, id string, next model.BookingStatus) (*model.Booking, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	lockRepo  repository.BookingLockRepository
	validator *validator.BookingValidator
	catalog   client.ProductCatalog
	identity  client.CustomerDirectory
	publisher EventPublisher
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	lockRepo repository.BookingLockRepository,
	validator *validator.BookingValidator,
	catalog client.ProductCatalog,
	identity client.CustomerDirectory,
	publisher EventPublisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		lockRepo:  lockRepo,
		validator: validator,
		catalog:   catalog,
		identity:  identity,
		publisher: publisher,
		cfg:       cfg,
	}
}

// Create inserts a booking after proving no active booking of the product
// overlaps its inclusive date range. An advisory lock serializes creates per
// product and the overlap re-check runs inside the insert transaction, so two
// concurrent overlapping requests can never both commit.
func (s *bookingService) Create(ctx context.Context, booking *model.Booking) error {
	s.applyDefaults(booking)
	if err := s.validate(booking); err != nil {
		return err
	}

	exists, err := s.catalog.Exists(ctx, booking.ProductID)
	if err != nil {
		s.cfg.Log.Error("Catalog lookup failed", "product_id", booking.ProductID, "error", err)
		return apperrors.Unavailable("product catalog", err)
	}
	if !exists {
		return apperrors.NotFoundWithID("Product", booking.ProductID)
	}

	known, err := s.identity.Exists(ctx, booking.CustomerID)
	if err != nil {
		s.cfg.Log.Error("Identity lookup failed", "customer_id", booking.CustomerID, "error", err)
		return apperrors.Unavailable("identity service", err)
	}
	if !known {
		return apperrors.NotFoundWithID("Customer", booking.CustomerID)
	}

	lock, err := s.acquireProductLock(ctx, booking.ProductID)
	if err != nil {
		return err
	}
	defer func() {
		if releaseErr := s.releaseProductLock(ctx, lock); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release booking lock", "lock_id", lock.ID, "error", releaseErr)
		}
	}()

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.verifyNoOverlap(sessCtx, booking); err != nil {
			return err
		}
		if err := s.repo.Insert(sessCtx, booking); err != nil {
			return apperrors.Internal("Failed to create booking", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create booking", "error", err)
		return err
	}

	s.publishCreated(booking)

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"product_id", booking.ProductID,
		"customer_id", booking.CustomerID,
		"start_date", booking.StartDate.String(),
		"end_date", booking.EndDate.String(),
		"status", booking.Status,
	)
	return nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid booking ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}

	return booking, nil
}

func (s *bookingService) GetByProduct(ctx context.Context, productID string, limit int, offset int64) ([]*model.Booking, int64, error) {
	if productID == "" {
		return nil, 0, apperrors.InvalidInput("Product ID cannot be empty")
	}

	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.CountByProduct(ctx, productID)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count bookings", "product_id", productID, "error", errCount)
			errCount = apperrors.Internal("Failed to count bookings", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		bookings, errFind = s.repo.FindByProduct(ctx, productID, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list bookings", "product_id", productID, "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve bookings", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return bookings, count, nil
}

// CheckAvailability reports whether [start, end] is free of active bookings.
// A reversed range can never be booked, so it reports unavailable rather than
// erroring; availability checks are advisory and Create revalidates anyway.
func (s *bookingService) CheckAvailability(ctx context.Context, productID string, start, end model.Date) (bool, error) {
	if productID == "" {
		return false, apperrors.InvalidInput("Product ID cannot be empty")
	}
	if start.IsZero() || end.IsZero() {
		return false, apperrors.InvalidInput("Both start_date and end_date are required")
	}
	if start.After(end.Time) {
		return false, nil
	}

	count, err := s.repo.CountOverlapping(ctx, productID, start, end)
	if err != nil {
		s.cfg.Log.Error("Failed to check availability", "product_id", productID, "error", err)
		return false, apperrors.Internal("Failed to check availability", err)
	}

	return count == 0, nil
}

// UpdateStatus moves a booking through its lifecycle. The repository update
// is guarded by the observed current status, so a concurrent transition makes
// this one fail with a conflict instead of silently overwriting it.
func (s *bookingService) UpdateStatus(ctx context.Context, id string, next model.BookingStatus) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}
	if err := s.validator.ValidateStatus(next); err != nil {
		return nil, apperrors.Validation("Invalid status", map[string]any{"error": err.Error()})
	}

	booking, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !booking.Status.CanTransitionTo(next) {
		return nil, apperrors.InvalidTransition(string(booking.Status), string(next))
	}

	if err := s.repo.UpdateStatus(ctx, id, booking.Status, next); err != nil {
		if errors.Is(err, bookingserrors.ErrStatusChanged) {
			return nil, apperrors.Conflict("Booking status changed concurrently, retry the request")
		}
		s.cfg.Log.Error("Failed to update booking status", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to update booking status", err)
	}

	booking.Status = next
	s.cfg.Log.Info("Booking status updated", "id", id, "status", next)
	return booking, nil
}

// --- Helpers ---

func (s *bookingService) applyDefaults(b *model.Booking) {
	if b.Status == "" {
		b.Status = model.DefaultBookingStatus
	}
}

func (s *bookingService) validate(booking *model.Booking) error {
	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

// verifyNoOverlap re-checks inside the transaction that the range is still
// free, and on conflict reports which bookings are in the way.
func (s *bookingService) verifyNoOverlap(ctx context.Context, booking *model.Booking) error {
	count, err := s.repo.CountOverlapping(ctx, booking.ProductID, booking.StartDate, booking.EndDate)
	if err != nil {
		return apperrors.Internal("Failed to check existing bookings", err)
	}
	if count == 0 {
		return nil
	}

	conflicting, err := s.repo.FindOverlapping(ctx, booking.ProductID, &booking.StartDate, &booking.EndDate, maxConflictDetails)
	if err != nil {
		return apperrors.Internal("Failed to load conflicting bookings", err)
	}

	conflicts := make([]map[string]any, 0, len(conflicting))
	for _, b := range conflicting {
		conflicts = append(conflicts, map[string]any{
			"booking_id": b.ID,
			"start_date": b.StartDate.String(),
			"end_date":   b.EndDate.String(),
		})
	}

	return apperrors.Conflict("Booking dates overlap with an existing booking").
		WithDetails(map[string]any{"conflicts": conflicts})
}

// acquireProductLock serializes creates per product. The lock document's _id
// is derived from the product, so a second concurrent create hits a duplicate
// key error and is told to retry.
func (s *bookingService) acquireProductLock(ctx context.Context, productID string) (*model.BookingLock, error) {
	lock := &model.BookingLock{
		ID:        "booking_lock_" + productID,
		Owner:     uuid.New().String(),
		ExpiresAt: time.Now().Add(s.cfg.BookingLockTTL),
	}

	if _, err := s.lockRepo.Create(ctx, lock); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.Conflict("This product is currently being booked by another request. Please try again.")
		}
		return nil, apperrors.Internal("Failed to acquire booking lock", err)
	}

	return lock, nil
}

func (s *bookingService) releaseProductLock(ctx context.Context, lock *model.BookingLock) error {
	return s.lockRepo.Delete(ctx, lock.ID, lock.Owner)
}

// publishCreated emits the booking.created event without blocking the caller.
// The booking is already committed; a failed publish is logged, not surfaced.
func (s *bookingService) publishCreated(booking *model.Booking) {
	if s.publisher == nil {
		return
	}

	payload := events.BookingCreated{
		BookingID:  booking.ID,
		ProductID:  booking.ProductID,
		CustomerID: booking.CustomerID,
		StartDate:  booking.StartDate,
		EndDate:    booking.EndDate,
		Status:     booking.Status,
	}

	msg, err := kafka.NewEventMessage(booking.ProductID, events.TypeBookingCreated, eventSource, payload)
	if err != nil {
		s.cfg.Log.Error("Failed to build booking.created event", "booking_id", booking.ID, "error", err)
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()

		if err := s.publisher.Publish(ctx, msg); err != nil {
			s.cfg.Log.Error("Failed to publish booking.created event", "booking_id", booking.ID, "error", err)
		}
	}()
}

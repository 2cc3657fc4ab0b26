package service

import (
	"errors"
	"strings"
	"time"

	"github.com/deskhive/deskhive-backend/internal/domain"
	"github.com/deskhive/deskhive-backend/internal/events"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BookingService is the booking engine: it decides whether a proposed or
// modified reservation is admissible, resolves its price, and commits the
// state transition. All time comparisons go through the injected clock.
type BookingService struct {
	ledger    domain.BookingLedger
	catalog   domain.PriceCatalog
	spaceRepo domain.SpaceRepository
	clock     domain.Clock
	publisher events.Publisher
}

// NewBookingService creates a new BookingService. clock and publisher may be
// nil; they default to the system clock and a no-op publisher.
func NewBookingService(ledger domain.BookingLedger, catalog domain.PriceCatalog, spaceRepo domain.SpaceRepository, clock domain.Clock, publisher events.Publisher) *BookingService {
	if clock == nil {
		clock = domain.SystemClock()
	}
	if publisher == nil {
		publisher = events.Nop()
	}
	return &BookingService{
		ledger:    ledger,
		catalog:   catalog,
		spaceRepo: spaceRepo,
		clock:     clock,
		publisher: publisher,
	}
}

// CreateBookingInput holds the input for proposing a new booking. Price is
// optional; when absent it is resolved from the space's price set.
type CreateBookingInput struct {
	SpaceID   int32
	UserID    uuid.UUID
	StartTime time.Time
	EndTime   time.Time
	Tier      domain.PriceTier
	Price     *decimal.Decimal
	Note      *string
}

// CreateBooking validates a proposed reservation and inserts it as processing.
// Checks run in a fixed order and stop at the first failure, so callers get a
// deterministic rejection kind.
func (s *BookingService) CreateBooking(input CreateBookingInput) (*domain.Booking, error) {
	space, err := s.spaceRepo.GetByID(input.SpaceID)
	if err != nil {
		if errors.Is(err, domain.ErrSpaceNotFound) {
			return nil, domain.ErrSpaceUnavailable
		}
		return nil, err
	}
	if !space.IsApproved {
		return nil, domain.ErrSpaceUnavailable
	}

	if !input.StartTime.Before(input.EndTime) {
		return nil, domain.ErrInvalidTimeRange
	}
	if !input.StartTime.After(s.clock.Now()) {
		return nil, domain.ErrPastStartTime
	}

	price, err := s.resolvePrice(input.SpaceID, input.Tier, input.Price)
	if err != nil {
		return nil, err
	}

	overlapping, err := s.ledger.FindOverlapping(input.SpaceID, input.StartTime, input.EndTime, nil)
	if err != nil {
		return nil, err
	}
	if len(overlapping) > 0 {
		return nil, domain.ErrTimeSlotOverlap
	}

	booking := &domain.Booking{
		ID:        uuid.New(),
		SpaceID:   input.SpaceID,
		UserID:    input.UserID,
		StartTime: input.StartTime.UTC(),
		EndTime:   input.EndTime.UTC(),
		Status:    domain.BookingProcessing,
		Tier:      input.Tier,
		Price:     price,
		Note:      trimNote(input.Note),
	}

	// The ledger re-verifies the window inside its transaction, so a
	// concurrent create for an intersecting window loses here.
	created, err := s.ledger.Insert(booking)
	if err != nil {
		return nil, err
	}

	s.publisher.BookingCreated(created)
	return created, nil
}

// UpdateBookingInput holds a partial edit; nil fields keep current values.
type UpdateBookingInput struct {
	StartTime *time.Time
	EndTime   *time.Time
	Tier      *domain.PriceTier
	Price     *decimal.Decimal
	Note      *string
}

// UpdateBooking merges the supplied fields into the stored booking and
// re-validates the merged candidate. A succeeded booking whose start has
// elapsed is immutable. The overlap search excludes the booking's own id, so
// edits that keep the window cannot trip over themselves.
func (s *BookingService) UpdateBooking(id uuid.UUID, input UpdateBookingInput) (*domain.Booking, error) {
	current, err := s.ledger.GetByID(id)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if current.Status == domain.BookingSucceeded && !current.StartTime.After(now) {
		return nil, domain.ErrCannotModifyCompleted
	}

	start := current.StartTime
	end := current.EndTime
	windowChanged := false
	if input.StartTime != nil && !input.StartTime.Equal(start) {
		start = input.StartTime.UTC()
		windowChanged = true
	}
	if input.EndTime != nil && !input.EndTime.Equal(end) {
		end = input.EndTime.UTC()
		windowChanged = true
	}

	if !start.Before(end) {
		return nil, domain.ErrInvalidTimeRange
	}
	if windowChanged && !start.After(now) {
		return nil, domain.ErrPastStartTime
	}

	tier := current.Tier
	if input.Tier != nil {
		tier = *input.Tier
	}

	price := current.Price
	switch {
	case input.Price != nil:
		if input.Price.LessThan(domain.MinPrice) {
			return nil, domain.ErrInvalidPrice
		}
		price = *input.Price
	case tier != current.Tier:
		price, err = s.catalog.Resolve(current.SpaceID, tier)
		if err != nil {
			return nil, err
		}
	}

	overlapping, err := s.ledger.FindOverlapping(current.SpaceID, start, end, &current.ID)
	if err != nil {
		return nil, err
	}
	if len(overlapping) > 0 {
		return nil, domain.ErrTimeSlotOverlap
	}

	note := current.Note
	if input.Note != nil {
		note = trimNote(input.Note)
	}

	updated, err := s.ledger.Update(id, &domain.BookingUpdate{
		StartTime: start,
		EndTime:   end,
		Tier:      tier,
		Price:     price,
		Note:      note,
	})
	if err != nil {
		return nil, err
	}

	s.publisher.BookingUpdated(updated)
	return updated, nil
}

// CancelBooking moves a booking to canceled. Canceled is terminal and a
// booking whose start has elapsed can no longer be canceled.
func (s *BookingService) CancelBooking(id uuid.UUID) (*domain.Booking, error) {
	booking, err := s.ledger.GetByID(id)
	if err != nil {
		return nil, err
	}

	if booking.Status == domain.BookingCanceled {
		return nil, domain.ErrAlreadyCancelled
	}
	if !booking.StartTime.After(s.clock.Now()) {
		return nil, domain.ErrCannotCancelPast
	}
	if !domain.CanTransition(booking.Status, domain.BookingCanceled) {
		return nil, domain.ErrInvalidStatusTransition
	}

	canceled, err := s.ledger.SetStatus(id, domain.BookingCanceled)
	if err != nil {
		return nil, err
	}

	s.publisher.BookingCanceled(canceled)
	return canceled, nil
}

// MarkSucceeded flips a processing booking to succeeded. Called by the payment
// flow once collection completes.
func (s *BookingService) MarkSucceeded(id uuid.UUID) (*domain.Booking, error) {
	booking, err := s.ledger.GetByID(id)
	if err != nil {
		return nil, err
	}

	if !domain.CanTransition(booking.Status, domain.BookingSucceeded) {
		return nil, domain.ErrInvalidStatusTransition
	}

	updated, err := s.ledger.SetStatus(id, domain.BookingSucceeded)
	if err != nil {
		return nil, err
	}

	s.publisher.BookingSucceeded(updated)
	return updated, nil
}

// DeleteBooking removes a booking record. Only allowed while the start time is
// still in the future.
func (s *BookingService) DeleteBooking(id uuid.UUID) error {
	booking, err := s.ledger.GetByID(id)
	if err != nil {
		return err
	}
	if !booking.StartTime.After(s.clock.Now()) {
		return domain.ErrCannotCancelPast
	}
	return s.ledger.Delete(id)
}

// GetBooking retrieves a booking by ID.
func (s *BookingService) GetBooking(id uuid.UUID) (*domain.Booking, error) {
	return s.ledger.GetByID(id)
}

// ListBookings retrieves bookings matching the filters.
func (s *BookingService) ListBookings(filters *domain.BookingFilters) ([]*domain.Booking, error) {
	return s.ledger.List(filters)
}

func (s *BookingService) resolvePrice(spaceID int32, tier domain.PriceTier, explicit *decimal.Decimal) (decimal.Decimal, error) {
	if explicit != nil {
		if explicit.LessThan(domain.MinPrice) {
			return decimal.Decimal{}, domain.ErrInvalidPrice
		}
		return *explicit, nil
	}
	return s.catalog.Resolve(spaceID, tier)
}

func trimNote(note *string) *string {
	if note == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*note)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

package testutil

import (
	"sync"
	"time"

	"github.com/deskhive/deskhive-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FixedClock is a domain.Clock pinned to a chosen instant, advanceable from
// tests.
type FixedClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFixedClock creates a FixedClock pinned to now.
func NewFixedClock(now time.Time) *FixedClock {
	return &FixedClock{now: now}
}

// Now returns the pinned instant.
func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the pinned instant forward.
func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// MockSpaceRepository is a mock implementation of domain.SpaceRepository.
type MockSpaceRepository struct {
	Spaces map[int32]*domain.Space
	NextID int32
}

// NewMockSpaceRepository creates a new MockSpaceRepository.
func NewMockSpaceRepository() *MockSpaceRepository {
	return &MockSpaceRepository{
		Spaces: make(map[int32]*domain.Space),
		NextID: 1,
	}
}

// Create inserts a new space.
func (m *MockSpaceRepository) Create(space *domain.Space) (*domain.Space, error) {
	space.ID = m.NextID
	m.NextID++
	space.CreatedAt = time.Now()
	space.UpdatedAt = space.CreatedAt
	m.Spaces[space.ID] = space
	return space, nil
}

// GetByID retrieves a space by ID.
func (m *MockSpaceRepository) GetByID(id int32) (*domain.Space, error) {
	if space, ok := m.Spaces[id]; ok {
		return space, nil
	}
	return nil, domain.ErrSpaceNotFound
}

// SetApproved updates the approval flag.
func (m *MockSpaceRepository) SetApproved(id int32, approved bool) (*domain.Space, error) {
	space, ok := m.Spaces[id]
	if !ok {
		return nil, domain.ErrSpaceNotFound
	}
	space.IsApproved = approved
	if approved {
		space.Status = domain.SpaceStatusActivated
	}
	space.UpdatedAt = time.Now()
	return space, nil
}

// ListByWorkingSpace retrieves the spaces of one working space.
func (m *MockSpaceRepository) ListByWorkingSpace(workingSpaceID int32) ([]*domain.Space, error) {
	var spaces []*domain.Space
	for _, space := range m.Spaces {
		if space.WorkingSpaceID == workingSpaceID {
			spaces = append(spaces, space)
		}
	}
	return spaces, nil
}

// AddSpace adds a space to the mock repository (helper for tests).
func (m *MockSpaceRepository) AddSpace(space *domain.Space) {
	if space.ID >= m.NextID {
		m.NextID = space.ID + 1
	}
	m.Spaces[space.ID] = space
}

// MockPriceCatalog is a mock implementation of domain.PriceCatalog.
type MockPriceCatalog struct {
	Prices     map[int32]map[domain.PriceTier]decimal.Decimal
	ReplaceErr error
}

// NewMockPriceCatalog creates a new MockPriceCatalog.
func NewMockPriceCatalog() *MockPriceCatalog {
	return &MockPriceCatalog{
		Prices: make(map[int32]map[domain.PriceTier]decimal.Decimal),
	}
}

// Resolve returns the stored price for a (space, tier) pair.
func (m *MockPriceCatalog) Resolve(spaceID int32, tier domain.PriceTier) (decimal.Decimal, error) {
	if tiers, ok := m.Prices[spaceID]; ok {
		if price, ok := tiers[tier]; ok {
			return price, nil
		}
	}
	return decimal.Decimal{}, domain.ErrPriceNotFound
}

// ListBySpace retrieves a space's price rows.
func (m *MockPriceCatalog) ListBySpace(spaceID int32) ([]*domain.SpacePrice, error) {
	var prices []*domain.SpacePrice
	for _, tier := range domain.RequiredTiers {
		if price, ok := m.Prices[spaceID][tier]; ok {
			prices = append(prices, &domain.SpacePrice{
				SpaceID: spaceID,
				Tier:    tier,
				Price:   price,
			})
		}
	}
	return prices, nil
}

// ReplaceForSpace swaps the space's whole price set.
func (m *MockPriceCatalog) ReplaceForSpace(spaceID int32, entries []domain.PriceEntry) error {
	if m.ReplaceErr != nil {
		return m.ReplaceErr
	}
	tiers := make(map[domain.PriceTier]decimal.Decimal, len(entries))
	for _, e := range entries {
		tiers[e.Tier] = e.Price
	}
	m.Prices[spaceID] = tiers
	return nil
}

// SetPrice stores one price directly (helper for tests).
func (m *MockPriceCatalog) SetPrice(spaceID int32, tier domain.PriceTier, price decimal.Decimal) {
	if m.Prices[spaceID] == nil {
		m.Prices[spaceID] = make(map[domain.PriceTier]decimal.Decimal)
	}
	m.Prices[spaceID][tier] = price
}

// MockBookingLedger is an in-memory implementation of domain.BookingLedger.
// Insert and Update hold the mutex across the overlap check and the write, so
// it honors the same atomicity contract as the postgres ledger and can back
// concurrency tests.
type MockBookingLedger struct {
	mu       sync.Mutex
	Bookings map[uuid.UUID]*domain.Booking
}

// NewMockBookingLedger creates a new MockBookingLedger.
func NewMockBookingLedger() *MockBookingLedger {
	return &MockBookingLedger{
		Bookings: make(map[uuid.UUID]*domain.Booking),
	}
}

// GetByID retrieves a booking by ID.
func (m *MockBookingLedger) GetByID(id uuid.UUID) (*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if booking, ok := m.Bookings[id]; ok {
		return booking, nil
	}
	return nil, domain.ErrBookingNotFound
}

// List retrieves bookings matching the filters.
func (m *MockBookingLedger) List(filters *domain.BookingFilters) ([]*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var bookings []*domain.Booking
	for _, b := range m.Bookings {
		if filters != nil {
			if filters.SpaceID != nil && b.SpaceID != *filters.SpaceID {
				continue
			}
			if filters.UserID != nil && b.UserID != *filters.UserID {
				continue
			}
			if filters.Status != nil && b.Status != *filters.Status {
				continue
			}
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

// FindOverlapping returns the active bookings intersecting [start, end).
func (m *MockBookingLedger) FindOverlapping(spaceID int32, start, end time.Time, excludeID *uuid.UUID) ([]*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.overlappingLocked(spaceID, start, end, excludeID), nil
}

func (m *MockBookingLedger) overlappingLocked(spaceID int32, start, end time.Time, excludeID *uuid.UUID) []*domain.Booking {
	var overlapping []*domain.Booking
	for _, b := range m.Bookings {
		if b.SpaceID != spaceID || !b.Active() {
			continue
		}
		if excludeID != nil && b.ID == *excludeID {
			continue
		}
		if b.Overlaps(start, end) {
			overlapping = append(overlapping, b)
		}
	}
	return overlapping
}

// Insert re-checks the window and writes the booking atomically.
func (m *MockBookingLedger) Insert(booking *domain.Booking) (*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.overlappingLocked(booking.SpaceID, booking.StartTime, booking.EndTime, nil)) > 0 {
		return nil, domain.ErrTimeSlotOverlap
	}
	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now
	m.Bookings[booking.ID] = booking
	return booking, nil
}

// Update re-checks the window excluding the booking itself and persists the
// edit atomically.
func (m *MockBookingLedger) Update(id uuid.UUID, update *domain.BookingUpdate) (*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	booking, ok := m.Bookings[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	if len(m.overlappingLocked(booking.SpaceID, update.StartTime, update.EndTime, &id)) > 0 {
		return nil, domain.ErrTimeSlotOverlap
	}
	booking.StartTime = update.StartTime
	booking.EndTime = update.EndTime
	booking.Tier = update.Tier
	booking.Price = update.Price
	booking.Note = update.Note
	booking.UpdatedAt = time.Now()
	return booking, nil
}

// SetStatus updates only the booking's status.
func (m *MockBookingLedger) SetStatus(id uuid.UUID, status domain.BookingStatus) (*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	booking, ok := m.Bookings[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	booking.Status = status
	booking.UpdatedAt = time.Now()
	return booking, nil
}

// Delete removes a booking.
func (m *MockBookingLedger) Delete(id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Bookings[id]; !ok {
		return domain.ErrBookingNotFound
	}
	delete(m.Bookings, id)
	return nil
}

// AddBooking adds a booking to the ledger (helper for tests).
func (m *MockBookingLedger) AddBooking(booking *domain.Booking) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Bookings[booking.ID] = booking
}

// RecordingPublisher captures published events for assertions.
type RecordingPublisher struct {
	mu        sync.Mutex
	Created   []*domain.Booking
	Updated   []*domain.Booking
	Canceled  []*domain.Booking
	Succeeded []*domain.Booking
}

// NewRecordingPublisher creates a new RecordingPublisher.
func NewRecordingPublisher() *RecordingPublisher {
	return &RecordingPublisher{}
}

// BookingCreated records a created event.
func (p *RecordingPublisher) BookingCreated(b *domain.Booking) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Created = append(p.Created, b)
}

// BookingUpdated records an updated event.
func (p *RecordingPublisher) BookingUpdated(b *domain.Booking) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Updated = append(p.Updated, b)
}

// BookingCanceled records a canceled event.
func (p *RecordingPublisher) BookingCanceled(b *domain.Booking) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Canceled = append(p.Canceled, b)
}

// BookingSucceeded records a succeeded event.
func (p *RecordingPublisher) BookingSucceeded(b *domain.Booking) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Succeeded = append(p.Succeeded, b)
}

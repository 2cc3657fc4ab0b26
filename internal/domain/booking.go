package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingProcessing BookingStatus = "processing"
	BookingSucceeded  BookingStatus = "succeeded"
	BookingCanceled   BookingStatus = "canceled"
)

// ActiveStatuses are the statuses that occupy a time slot for overlap checks.
var ActiveStatuses = []BookingStatus{BookingProcessing, BookingSucceeded}

// statusTransitions is the booking lifecycle: current status mapped to the
// statuses reachable from it. canceled is terminal.
var statusTransitions = map[BookingStatus]map[BookingStatus]bool{
	BookingProcessing: {BookingSucceeded: true, BookingCanceled: true},
	BookingSucceeded:  {BookingCanceled: true},
	BookingCanceled:   {},
}

// CanTransition reports whether a booking may move from one status to another.
func CanTransition(from, to BookingStatus) bool {
	return statusTransitions[from][to]
}

// Booking is a reservation of a space for a [start, end) time window.
type Booking struct {
	ID        uuid.UUID       `json:"id"`
	SpaceID   int32           `json:"spaceId"`
	UserID    uuid.UUID       `json:"userId"`
	StartTime time.Time       `json:"startTime"`
	EndTime   time.Time       `json:"endTime"`
	Status    BookingStatus   `json:"status"`
	Tier      PriceTier       `json:"tier"`
	Price     decimal.Decimal `json:"price"`
	Note      *string         `json:"note,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Overlaps reports whether the booking's [start, end) window intersects the
// given one. End times are exclusive, so abutting windows do not overlap.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.StartTime.Before(end) && b.EndTime.After(start)
}

// Active reports whether the booking currently occupies its time slot.
func (b *Booking) Active() bool {
	return b.Status == BookingProcessing || b.Status == BookingSucceeded
}

// BookingUpdate carries the persisted fields of an in-place edit.
type BookingUpdate struct {
	StartTime time.Time
	EndTime   time.Time
	Tier      PriceTier
	Price     decimal.Decimal
	Note      *string
}

// BookingFilters narrows List results. Pagination belongs to the caller.
type BookingFilters struct {
	SpaceID *int32
	UserID  *uuid.UUID
	Status  *BookingStatus
}

// BookingLedger defines persistence for bookings. Insert and Update perform
// the overlap check and the write inside a single transaction: a concurrent
// writer that would double-book the space loses with ErrTimeSlotOverlap.
// The ledger does no other business validation.
type BookingLedger interface {
	GetByID(id uuid.UUID) (*Booking, error)
	List(filters *BookingFilters) ([]*Booking, error)
	FindOverlapping(spaceID int32, start, end time.Time, excludeID *uuid.UUID) ([]*Booking, error)
	Insert(booking *Booking) (*Booking, error)
	Update(id uuid.UUID, update *BookingUpdate) (*Booking, error)
	SetStatus(id uuid.UUID, status BookingStatus) (*Booking, error)
	Delete(id uuid.UUID) error
}

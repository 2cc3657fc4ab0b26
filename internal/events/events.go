package events

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/deskhive/deskhive-backend/internal/domain"
	"github.com/google/uuid"
)

const (
	EventBookingCreated   = "BookingCreated"
	EventBookingUpdated   = "BookingUpdated"
	EventBookingCanceled  = "BookingCanceled"
	EventBookingSucceeded = "BookingSucceeded"
)

const (
	TopicBookingCreated   = "booking.created"
	TopicBookingUpdated   = "booking.updated"
	TopicBookingCanceled  = "booking.canceled"
	TopicBookingSucceeded = "booking.succeeded"
)

// Envelope wraps every published event.
type Envelope struct {
	EventID      string          `json:"event_id"`
	EventType    string          `json:"event_type"`
	EventVersion int             `json:"event_version"`
	OccurredAt   time.Time       `json:"occurred_at"`
	Producer     string          `json:"producer"`
	Payload      json.RawMessage `json:"payload"`
}

// BookingPayload is the event body shared by all booking lifecycle events.
type BookingPayload struct {
	BookingID string    `json:"booking_id"`
	SpaceID   int32     `json:"space_id"`
	UserID    string    `json:"user_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    string    `json:"status"`
	Tier      string    `json:"tier"`
	Price     string    `json:"price"`
}

// NewBookingEnvelope builds a versioned envelope for a booking event.
func NewBookingEnvelope(eventType, producer string, booking *domain.Booking) (Envelope, error) {
	payload, err := json.Marshal(BookingPayload{
		BookingID: booking.ID.String(),
		SpaceID:   booking.SpaceID,
		UserID:    booking.UserID.String(),
		StartTime: booking.StartTime,
		EndTime:   booking.EndTime,
		Status:    string(booking.Status),
		Tier:      string(booking.Tier),
		Price:     booking.Price.StringFixed(2),
	})
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{
		EventID:      uuid.NewString(),
		EventType:    eventType,
		EventVersion: 1,
		OccurredAt:   time.Now().UTC(),
		Producer:     producer,
		Payload:      payload,
	}, nil
}

// PartitionKey keys messages by space so all events for one space stay ordered.
func PartitionKey(spaceID int32) []byte {
	return []byte(strconv.FormatInt(int64(spaceID), 10))
}

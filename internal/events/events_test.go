package events

import (
	"encoding/json"
	"testing"

	"github.com/deskhive/deskhive-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBookingEnvelope(t *testing.T) {
	booking := &domain.Booking{
		ID:      uuid.New(),
		SpaceID: 42,
		UserID:  uuid.New(),
		Status:  domain.BookingProcessing,
		Tier:    domain.TierDay,
		Price:   decimal.RequireFromString("60"),
	}

	env, err := NewBookingEnvelope(EventBookingCreated, "deskhive-backend", booking)
	require.NoError(t, err)

	assert.Equal(t, EventBookingCreated, env.EventType)
	assert.Equal(t, 1, env.EventVersion)
	assert.Equal(t, "deskhive-backend", env.Producer)
	assert.NotEmpty(t, env.EventID)
	assert.False(t, env.OccurredAt.IsZero())

	var payload BookingPayload
	require.NoError(t, json.Unmarshal(env.Payload, &payload))
	assert.Equal(t, booking.ID.String(), payload.BookingID)
	assert.Equal(t, int32(42), payload.SpaceID)
	assert.Equal(t, "processing", payload.Status)
	assert.Equal(t, "60.00", payload.Price)
}

func TestPartitionKey(t *testing.T) {
	assert.Equal(t, []byte("42"), PartitionKey(42))
	// Same space always lands on the same partition.
	assert.Equal(t, PartitionKey(7), PartitionKey(7))
}

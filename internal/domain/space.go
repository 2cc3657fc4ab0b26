package domain

import "time"

type SpaceStatus string

const (
	SpaceStatusWaiting   SpaceStatus = "waiting"
	SpaceStatusBlocked   SpaceStatus = "blocked"
	SpaceStatusActivated SpaceStatus = "activated"
)

type SpaceType string

const (
	SpaceTypePrivateOffice SpaceType = "private_office"
	SpaceTypeWorkingDesk   SpaceType = "working_desk"
)

// Space is a bookable unit inside a working space. Bookings and prices
// reference it but are owned by their own aggregates.
type Space struct {
	ID             int32       `json:"id"`
	WorkingSpaceID int32       `json:"workingSpaceId"`
	Name           string      `json:"name"`
	Status         SpaceStatus `json:"status"`
	SpaceType      SpaceType   `json:"spaceType"`
	Capacity       int32       `json:"capacity"`
	Description    string      `json:"description,omitempty"`
	Location       string      `json:"location"`
	OpenTime       string      `json:"openTime"`
	CloseTime      string      `json:"closeTime"`
	IsApproved     bool        `json:"isApproved"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

// ParseTimeOfDay parses an "HH:MM" (or "HH:MM:SS") wall-clock value.
func ParseTimeOfDay(s string) (time.Time, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		t, err = time.Parse("15:04:05", s)
	}
	return t, err
}

// SpaceWithPrices is a space joined with its current price set for display.
type SpaceWithPrices struct {
	Space  *Space        `json:"space"`
	Prices []*SpacePrice `json:"prices"`
}

// SpaceRepository defines the interface for space persistence operations.
type SpaceRepository interface {
	Create(space *Space) (*Space, error)
	GetByID(id int32) (*Space, error)
	SetApproved(id int32, approved bool) (*Space, error)
	ListByWorkingSpace(workingSpaceID int32) ([]*Space, error)
}

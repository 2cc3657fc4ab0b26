package service

import (
	"strings"

	"github.com/deskhive/deskhive-backend/internal/domain"
)

// SpaceService handles space registration and approval. A space is always
// created together with its complete three-tier price set.
type SpaceService struct {
	spaceRepo domain.SpaceRepository
	catalog   domain.PriceCatalog
}

// NewSpaceService creates a new SpaceService.
func NewSpaceService(spaceRepo domain.SpaceRepository, catalog domain.PriceCatalog) *SpaceService {
	return &SpaceService{
		spaceRepo: spaceRepo,
		catalog:   catalog,
	}
}

// CreateSpaceInput holds the input for registering a space.
type CreateSpaceInput struct {
	WorkingSpaceID int32
	Name           string
	SpaceType      domain.SpaceType
	Capacity       int32
	Description    string
	Location       string
	OpenTime       string
	CloseTime      string
	Prices         []domain.PriceEntry
}

// CreateSpace validates and registers a space with its price set. New spaces
// start unapproved and cannot be booked until approved.
func (s *SpaceService) CreateSpace(input CreateSpaceInput) (*domain.Space, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if input.Capacity < 1 {
		return nil, domain.ErrInvalidCapacity
	}

	open, err := domain.ParseTimeOfDay(input.OpenTime)
	if err != nil {
		return nil, domain.ErrInvalidOpenHours
	}
	closeTime, err := domain.ParseTimeOfDay(input.CloseTime)
	if err != nil {
		return nil, domain.ErrInvalidOpenHours
	}
	if !open.Before(closeTime) {
		return nil, domain.ErrInvalidOpenHours
	}

	if err := domain.ValidatePriceSet(input.Prices); err != nil {
		return nil, err
	}

	spaceType := input.SpaceType
	if spaceType == "" {
		spaceType = domain.SpaceTypeWorkingDesk
	}

	space, err := s.spaceRepo.Create(&domain.Space{
		WorkingSpaceID: input.WorkingSpaceID,
		Name:           name,
		Status:         domain.SpaceStatusWaiting,
		SpaceType:      spaceType,
		Capacity:       input.Capacity,
		Description:    strings.TrimSpace(input.Description),
		Location:       strings.TrimSpace(input.Location),
		OpenTime:       input.OpenTime,
		CloseTime:      input.CloseTime,
		IsApproved:     false,
	})
	if err != nil {
		return nil, err
	}

	if err := s.catalog.ReplaceForSpace(space.ID, input.Prices); err != nil {
		return nil, err
	}

	return space, nil
}

// ApproveSpace marks a space bookable.
func (s *SpaceService) ApproveSpace(id int32) (*domain.Space, error) {
	return s.spaceRepo.SetApproved(id, true)
}

// GetSpace retrieves a space by ID.
func (s *SpaceService) GetSpace(id int32) (*domain.Space, error) {
	return s.spaceRepo.GetByID(id)
}

// GetSpaceWithPrices retrieves a space joined with its current price set.
func (s *SpaceService) GetSpaceWithPrices(id int32) (*domain.SpaceWithPrices, error) {
	space, err := s.spaceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	prices, err := s.catalog.ListBySpace(id)
	if err != nil {
		return nil, err
	}
	return &domain.SpaceWithPrices{Space: space, Prices: prices}, nil
}

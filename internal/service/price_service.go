package service

import (
	"github.com/deskhive/deskhive-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// PriceService handles the per-space price catalog.
type PriceService struct {
	catalog   domain.PriceCatalog
	spaceRepo domain.SpaceRepository
}

// NewPriceService creates a new PriceService.
func NewPriceService(catalog domain.PriceCatalog, spaceRepo domain.SpaceRepository) *PriceService {
	return &PriceService{
		catalog:   catalog,
		spaceRepo: spaceRepo,
	}
}

// ResolvePrice returns the stored price for a (space, tier) pair.
func (s *PriceService) ResolvePrice(spaceID int32, tier domain.PriceTier) (decimal.Decimal, error) {
	return s.catalog.Resolve(spaceID, tier)
}

// GetPrices lists a space's current price set.
func (s *PriceService) GetPrices(spaceID int32) ([]*domain.SpacePrice, error) {
	return s.catalog.ListBySpace(spaceID)
}

// SetPrices replaces a space's entire price set. The supplied entries must
// cover the hour, day and month tiers exactly once; the write is all-or-nothing
// so a space is never left with a partial set.
func (s *PriceService) SetPrices(spaceID int32, entries []domain.PriceEntry) error {
	if _, err := s.spaceRepo.GetByID(spaceID); err != nil {
		return err
	}
	if err := domain.ValidatePriceSet(entries); err != nil {
		return err
	}
	return s.catalog.ReplaceForSpace(spaceID, entries)
}

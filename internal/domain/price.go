package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceTier is the granularity a space is priced at. Every bookable space
// carries exactly one price per tier.
type PriceTier string

const (
	TierHour  PriceTier = "hour"
	TierDay   PriceTier = "day"
	TierMonth PriceTier = "month"
)

// RequiredTiers is the complete set of tiers a space must be priced for.
var RequiredTiers = []PriceTier{TierHour, TierDay, TierMonth}

// MinPrice is the smallest admissible price for any tier.
var MinPrice = decimal.RequireFromString("0.01")

// Valid reports whether the tier is one of the known granularities.
func (t PriceTier) Valid() bool {
	switch t {
	case TierHour, TierDay, TierMonth:
		return true
	}
	return false
}

// SpacePrice is one stored (space, tier) price row.
type SpacePrice struct {
	ID        int32           `json:"id"`
	SpaceID   int32           `json:"spaceId"`
	Tier      PriceTier       `json:"tier"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// PriceEntry is one (tier, price) element of a replace-set write.
type PriceEntry struct {
	Tier  PriceTier
	Price decimal.Decimal
}

// ValidatePriceSet checks that a replace-set write covers each required tier
// exactly once with admissible prices.
func ValidatePriceSet(entries []PriceEntry) error {
	if len(entries) != len(RequiredTiers) {
		return ErrIncompletePriceSet
	}
	seen := make(map[PriceTier]bool, len(entries))
	for _, e := range entries {
		if !e.Tier.Valid() || seen[e.Tier] {
			return ErrIncompletePriceSet
		}
		seen[e.Tier] = true
		if e.Price.LessThan(MinPrice) {
			return ErrInvalidPrice
		}
	}
	return nil
}

// PriceCatalog defines the interface for space price persistence.
// ReplaceForSpace swaps a space's whole price set atomically; readers never
// observe a partial set.
type PriceCatalog interface {
	Resolve(spaceID int32, tier PriceTier) (decimal.Decimal, error)
	ListBySpace(spaceID int32) ([]*SpacePrice, error)
	ReplaceForSpace(spaceID int32, entries []PriceEntry) error
}

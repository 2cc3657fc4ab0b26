package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidatePriceSet(t *testing.T) {
	hour := PriceEntry{Tier: TierHour, Price: decimal.RequireFromString("10.00")}
	day := PriceEntry{Tier: TierDay, Price: decimal.RequireFromString("60.00")}
	month := PriceEntry{Tier: TierMonth, Price: decimal.RequireFromString("900.00")}

	tests := []struct {
		name    string
		entries []PriceEntry
		wantErr error
	}{
		{"complete set", []PriceEntry{hour, day, month}, nil},
		{"order does not matter", []PriceEntry{month, hour, day}, nil},
		{"empty", nil, ErrIncompletePriceSet},
		{"two tiers", []PriceEntry{hour, day}, ErrIncompletePriceSet},
		{"four entries", []PriceEntry{hour, day, month, hour}, ErrIncompletePriceSet},
		{"duplicate tier", []PriceEntry{hour, hour, day}, ErrIncompletePriceSet},
		{"unknown tier", []PriceEntry{hour, day, {Tier: "week", Price: decimal.RequireFromString("200.00")}}, ErrIncompletePriceSet},
		{"zero price", []PriceEntry{hour, day, {Tier: TierMonth, Price: decimal.Zero}}, ErrInvalidPrice},
		{"minimum price accepted", []PriceEntry{hour, day, {Tier: TierMonth, Price: MinPrice}}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePriceSet(tt.entries)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidatePriceSet() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPriceTierValid(t *testing.T) {
	for _, tier := range RequiredTiers {
		if !tier.Valid() {
			t.Errorf("Expected tier %s to be valid", tier)
		}
	}
	if PriceTier("week").Valid() {
		t.Error("Expected tier week to be invalid")
	}
}

package service

import (
	"errors"
	"testing"

	"github.com/deskhive/deskhive-backend/internal/domain"
	"github.com/deskhive/deskhive-backend/internal/testutil"
	"github.com/shopspring/decimal"
)

func newPriceFixture() (*PriceService, *testutil.MockPriceCatalog, *testutil.MockSpaceRepository) {
	catalog := testutil.NewMockPriceCatalog()
	spaceRepo := testutil.NewMockSpaceRepository()
	spaceRepo.AddSpace(&domain.Space{ID: 1, Name: "Desk A", IsApproved: true})
	return NewPriceService(catalog, spaceRepo), catalog, spaceRepo
}

func fullPriceSet() []domain.PriceEntry {
	return []domain.PriceEntry{
		{Tier: domain.TierHour, Price: decimal.RequireFromString("10.00")},
		{Tier: domain.TierDay, Price: decimal.RequireFromString("60.00")},
		{Tier: domain.TierMonth, Price: decimal.RequireFromString("900.00")},
	}
}

func TestSetPrices_ReplacesWholeSet(t *testing.T) {
	svc, catalog, _ := newPriceFixture()

	if err := svc.SetPrices(1, fullPriceSet()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	price, err := catalog.Resolve(1, domain.TierDay)
	if err != nil {
		t.Fatalf("Expected resolved price, got %v", err)
	}
	if !price.Equal(decimal.RequireFromString("60.00")) {
		t.Errorf("Expected 60.00, got %s", price.String())
	}
}

func TestSetPrices_IncompleteSetLeavesNothingBehind(t *testing.T) {
	svc, catalog, _ := newPriceFixture()

	entries := []domain.PriceEntry{
		{Tier: domain.TierHour, Price: decimal.RequireFromString("10.00")},
		{Tier: domain.TierDay, Price: decimal.RequireFromString("60.00")},
	}
	if err := svc.SetPrices(1, entries); !errors.Is(err, domain.ErrIncompletePriceSet) {
		t.Fatalf("Expected ErrIncompletePriceSet, got %v", err)
	}

	// All-or-nothing: the rejected write must not leave partial rows.
	prices, err := catalog.ListBySpace(1)
	if err != nil {
		t.Fatalf("ListBySpace failed: %v", err)
	}
	if len(prices) != 0 {
		t.Errorf("Expected no price rows, got %d", len(prices))
	}
}

func TestSetPrices_DuplicateTierRejected(t *testing.T) {
	svc, _, _ := newPriceFixture()

	entries := []domain.PriceEntry{
		{Tier: domain.TierHour, Price: decimal.RequireFromString("10.00")},
		{Tier: domain.TierHour, Price: decimal.RequireFromString("11.00")},
		{Tier: domain.TierDay, Price: decimal.RequireFromString("60.00")},
	}
	if err := svc.SetPrices(1, entries); !errors.Is(err, domain.ErrIncompletePriceSet) {
		t.Fatalf("Expected ErrIncompletePriceSet, got %v", err)
	}
}

func TestSetPrices_PriceBelowMinimum(t *testing.T) {
	svc, _, _ := newPriceFixture()

	entries := fullPriceSet()
	entries[1].Price = decimal.RequireFromString("0.00")
	if err := svc.SetPrices(1, entries); !errors.Is(err, domain.ErrInvalidPrice) {
		t.Fatalf("Expected ErrInvalidPrice, got %v", err)
	}
}

func TestSetPrices_UnknownSpace(t *testing.T) {
	svc, _, _ := newPriceFixture()

	if err := svc.SetPrices(99, fullPriceSet()); !errors.Is(err, domain.ErrSpaceNotFound) {
		t.Fatalf("Expected ErrSpaceNotFound, got %v", err)
	}
}

func TestResolvePrice_Missing(t *testing.T) {
	svc, _, _ := newPriceFixture()

	_, err := svc.ResolvePrice(1, domain.TierMonth)
	if !errors.Is(err, domain.ErrPriceNotFound) {
		t.Fatalf("Expected ErrPriceNotFound, got %v", err)
	}
}

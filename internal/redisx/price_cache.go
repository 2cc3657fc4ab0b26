package redisx

import (
	"context"
	"fmt"

	"github.com/deskhive/deskhive-backend/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// CachedPriceCatalog wraps a domain.PriceCatalog with a redis read-through
// cache for Resolve. Replace-set writes invalidate the space's cached tiers.
// Cache failures are logged and fall back to the inner catalog; they never
// surface to the booking engine.
type CachedPriceCatalog struct {
	inner domain.PriceCatalog
	rdb   *redis.Client
	log   zerolog.Logger
}

// NewCachedPriceCatalog creates a caching decorator around inner.
func NewCachedPriceCatalog(inner domain.PriceCatalog, rdb *redis.Client, log zerolog.Logger) *CachedPriceCatalog {
	return &CachedPriceCatalog{inner: inner, rdb: rdb, log: log}
}

// Resolve returns the cached price when present, otherwise reads through.
func (c *CachedPriceCatalog) Resolve(spaceID int32, tier domain.PriceTier) (decimal.Decimal, error) {
	ctx := context.Background()
	key := fmt.Sprintf(KeySpacePrice, spaceID, tier)

	if cached, err := c.rdb.Get(ctx, key).Result(); err == nil {
		if price, perr := decimal.NewFromString(cached); perr == nil {
			return price, nil
		}
	} else if err != redis.Nil {
		c.log.Warn().Err(err).Str("key", key).Msg("price cache read failed")
	}

	price, err := c.inner.Resolve(spaceID, tier)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if err := c.rdb.Set(ctx, key, price.String(), TTLSpacePrice).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("price cache write failed")
	}
	return price, nil
}

// ListBySpace passes through to the inner catalog.
func (c *CachedPriceCatalog) ListBySpace(spaceID int32) ([]*domain.SpacePrice, error) {
	return c.inner.ListBySpace(spaceID)
}

// ReplaceForSpace writes through and drops the space's cached tiers.
func (c *CachedPriceCatalog) ReplaceForSpace(spaceID int32, entries []domain.PriceEntry) error {
	if err := c.inner.ReplaceForSpace(spaceID, entries); err != nil {
		return err
	}

	ctx := context.Background()
	keys := make([]string, 0, len(domain.RequiredTiers))
	for _, tier := range domain.RequiredTiers {
		keys = append(keys, fmt.Sprintf(KeySpacePrice, spaceID, tier))
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn().Err(err).Int32("space_id", spaceID).Msg("price cache invalidation failed")
	}
	return nil
}

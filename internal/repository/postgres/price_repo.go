package postgres

import (
	"context"
	"errors"

	"github.com/deskhive/deskhive-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PriceRepository implements domain.PriceCatalog using PostgreSQL.
type PriceRepository struct {
	pool *pgxpool.Pool
}

// NewPriceRepository creates a new PriceRepository.
func NewPriceRepository(pool *pgxpool.Pool) *PriceRepository {
	return &PriceRepository{pool: pool}
}

// Resolve returns the stored price for a (space, tier) pair.
func (r *PriceRepository) Resolve(spaceID int32, tier domain.PriceTier) (decimal.Decimal, error) {
	ctx := context.Background()
	var price string
	err := r.pool.QueryRow(ctx, `
		SELECT price::text FROM space_prices WHERE space_id = $1 AND tier = $2`,
		spaceID, string(tier)).Scan(&price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Decimal{}, domain.ErrPriceNotFound
		}
		return decimal.Decimal{}, err
	}
	return decimal.NewFromString(price)
}

// ListBySpace retrieves a space's price rows.
func (r *PriceRepository) ListBySpace(spaceID int32) ([]*domain.SpacePrice, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT id, space_id, tier, price::text, created_at, updated_at
		FROM space_prices WHERE space_id = $1
		ORDER BY CASE tier WHEN 'hour' THEN 1 WHEN 'day' THEN 2 ELSE 3 END`, spaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var prices []*domain.SpacePrice
	for rows.Next() {
		var (
			p     domain.SpacePrice
			tier  string
			price string
		)
		if err := rows.Scan(&p.ID, &p.SpaceID, &tier, &price, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		p.Tier = domain.PriceTier(tier)
		p.Price, err = decimal.NewFromString(price)
		if err != nil {
			return nil, err
		}
		prices = append(prices, &p)
	}
	return prices, rows.Err()
}

// ReplaceForSpace swaps the space's whole price set in one transaction
// (delete-then-insert), so readers never observe a partial set.
func (r *PriceRepository) ReplaceForSpace(spaceID int32, entries []domain.PriceEntry) error {
	ctx := context.Background()

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM space_prices WHERE space_id = $1`, spaceID); err != nil {
		return err
	}
	for _, e := range entries {
		if _, err := tx.Exec(ctx, `
			INSERT INTO space_prices (space_id, tier, price) VALUES ($1, $2, $3)`,
			spaceID, string(e.Tier), e.Price.String()); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

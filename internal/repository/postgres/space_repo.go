package postgres

import (
	"context"
	"errors"

	"github.com/deskhive/deskhive-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SpaceRepository implements domain.SpaceRepository using PostgreSQL.
type SpaceRepository struct {
	pool *pgxpool.Pool
}

// NewSpaceRepository creates a new SpaceRepository.
func NewSpaceRepository(pool *pgxpool.Pool) *SpaceRepository {
	return &SpaceRepository{pool: pool}
}

const spaceColumns = `id, working_space_id, name, status, space_type, capacity, description, location,
	to_char(open_time, 'HH24:MI'), to_char(close_time, 'HH24:MI'), is_approved, created_at, updated_at`

func scanSpace(row pgx.Row) (*domain.Space, error) {
	var (
		s         domain.Space
		status    string
		spaceType string
	)
	err := row.Scan(&s.ID, &s.WorkingSpaceID, &s.Name, &status, &spaceType, &s.Capacity,
		&s.Description, &s.Location, &s.OpenTime, &s.CloseTime, &s.IsApproved, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	s.Status = domain.SpaceStatus(status)
	s.SpaceType = domain.SpaceType(spaceType)
	return &s, nil
}

// Create inserts a new space.
func (r *SpaceRepository) Create(space *domain.Space) (*domain.Space, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO spaces (working_space_id, name, status, space_type, capacity, description, location, open_time, close_time, is_approved)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+spaceColumns,
		space.WorkingSpaceID, space.Name, string(space.Status), string(space.SpaceType),
		space.Capacity, space.Description, space.Location, space.OpenTime, space.CloseTime, space.IsApproved)
	return scanSpace(row)
}

// GetByID retrieves a space by ID.
func (r *SpaceRepository) GetByID(id int32) (*domain.Space, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `SELECT `+spaceColumns+` FROM spaces WHERE id = $1`, id)
	space, err := scanSpace(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSpaceNotFound
		}
		return nil, err
	}
	return space, nil
}

// SetApproved updates the approval flag; approving also activates the space.
func (r *SpaceRepository) SetApproved(id int32, approved bool) (*domain.Space, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		UPDATE spaces
		SET is_approved = $2,
		    status = CASE WHEN $2 THEN 'activated' ELSE status END,
		    updated_at = now()
		WHERE id = $1
		RETURNING `+spaceColumns, id, approved)
	space, err := scanSpace(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSpaceNotFound
		}
		return nil, err
	}
	return space, nil
}

// ListByWorkingSpace retrieves the spaces of one working space.
func (r *SpaceRepository) ListByWorkingSpace(workingSpaceID int32) ([]*domain.Space, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT `+spaceColumns+` FROM spaces WHERE working_space_id = $1 ORDER BY name`, workingSpaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var spaces []*domain.Space
	for rows.Next() {
		space, err := scanSpace(rows)
		if err != nil {
			return nil, err
		}
		spaces = append(spaces, space)
	}
	return spaces, rows.Err()
}

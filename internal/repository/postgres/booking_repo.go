package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/deskhive/deskhive-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// BookingRepository implements domain.BookingLedger using PostgreSQL.
//
// Insert and Update take a row lock on the space before checking the window,
// so two writers racing for intersecting slots on the same space serialize.
// The bookings_no_overlap exclusion constraint backstops anything that slips
// through; a violation surfaces as domain.ErrTimeSlotOverlap.
type BookingRepository struct {
	pool *pgxpool.Pool
}

// NewBookingRepository creates a new BookingRepository.
func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

const bookingColumns = `id, space_id, user_id, start_time, end_time, status, tier, price::text, note, created_at, updated_at`

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var (
		b      domain.Booking
		status string
		tier   string
		price  string
	)
	err := row.Scan(&b.ID, &b.SpaceID, &b.UserID, &b.StartTime, &b.EndTime, &status, &tier, &price, &b.Note, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	b.Status = domain.BookingStatus(status)
	b.Tier = domain.PriceTier(tier)
	b.Price, err = decimal.NewFromString(price)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// GetByID retrieves a booking by its ID.
func (r *BookingRepository) GetByID(id uuid.UUID) (*domain.Booking, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
	booking, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

// List retrieves bookings matching the filters, newest first.
func (r *BookingRepository) List(filters *domain.BookingFilters) ([]*domain.Booking, error) {
	ctx := context.Background()

	query := `SELECT ` + bookingColumns + ` FROM bookings
		WHERE ($1::int IS NULL OR space_id = $1)
		  AND ($2::uuid IS NULL OR user_id = $2)
		  AND ($3::text IS NULL OR status = $3)
		ORDER BY created_at DESC`

	var (
		spaceID *int32
		userID  *uuid.UUID
		status  *string
	)
	if filters != nil {
		spaceID = filters.SpaceID
		userID = filters.UserID
		if filters.Status != nil {
			s := string(*filters.Status)
			status = &s
		}
	}

	rows, err := r.pool.Query(ctx, query, spaceID, userID, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectBookings(rows)
}

// FindOverlapping returns the active bookings whose [start, end) window
// intersects the given one, optionally excluding one booking id.
func (r *BookingRepository) FindOverlapping(spaceID int32, start, end time.Time, excludeID *uuid.UUID) ([]*domain.Booking, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx, `
		SELECT `+bookingColumns+` FROM bookings
		WHERE space_id = $1
		  AND status IN ('processing', 'succeeded')
		  AND start_time < $3 AND end_time > $2
		  AND ($4::uuid IS NULL OR id <> $4)
		ORDER BY start_time`, spaceID, start, end, excludeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectBookings(rows)
}

// Insert writes a validated booking. The overlap check and the insert run in
// one transaction under a space-level row lock.
func (r *BookingRepository) Insert(booking *domain.Booking) (*domain.Booking, error) {
	ctx := context.Background()

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := lockSpace(ctx, tx, booking.SpaceID); err != nil {
		return nil, err
	}
	free, err := windowFree(ctx, tx, booking.SpaceID, booking.StartTime, booking.EndTime, nil)
	if err != nil {
		return nil, err
	}
	if !free {
		return nil, domain.ErrTimeSlotOverlap
	}

	row := tx.QueryRow(ctx, `
		INSERT INTO bookings (id, space_id, user_id, start_time, end_time, status, tier, price, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+bookingColumns,
		booking.ID, booking.SpaceID, booking.UserID, booking.StartTime, booking.EndTime,
		string(booking.Status), string(booking.Tier), booking.Price.String(), booking.Note)
	created, err := scanBooking(row)
	if err != nil {
		return nil, overlapOr(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, overlapOr(err)
	}
	return created, nil
}

// Update persists an edit under the same lock-and-recheck discipline as
// Insert, excluding the booking's own row from the window check.
func (r *BookingRepository) Update(id uuid.UUID, update *domain.BookingUpdate) (*domain.Booking, error) {
	ctx := context.Background()

	current, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := lockSpace(ctx, tx, current.SpaceID); err != nil {
		return nil, err
	}
	free, err := windowFree(ctx, tx, current.SpaceID, update.StartTime, update.EndTime, &id)
	if err != nil {
		return nil, err
	}
	if !free {
		return nil, domain.ErrTimeSlotOverlap
	}

	row := tx.QueryRow(ctx, `
		UPDATE bookings
		SET start_time = $2, end_time = $3, tier = $4, price = $5, note = $6, updated_at = now()
		WHERE id = $1
		RETURNING `+bookingColumns,
		id, update.StartTime, update.EndTime, string(update.Tier), update.Price.String(), update.Note)
	updated, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, overlapOr(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, overlapOr(err)
	}
	return updated, nil
}

// SetStatus updates only the booking's status.
func (r *BookingRepository) SetStatus(id uuid.UUID, status domain.BookingStatus) (*domain.Booking, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		UPDATE bookings SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+bookingColumns, id, string(status))
	booking, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

// Delete removes a booking row.
func (r *BookingRepository) Delete(id uuid.UUID) error {
	ctx := context.Background()
	ct, err := r.pool.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

func collectBookings(rows pgx.Rows) ([]*domain.Booking, error) {
	var bookings []*domain.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}
	return bookings, rows.Err()
}

func lockSpace(ctx context.Context, tx pgx.Tx, spaceID int32) error {
	var id int32
	err := tx.QueryRow(ctx, `SELECT id FROM spaces WHERE id = $1 FOR UPDATE`, spaceID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrSpaceNotFound
	}
	return err
}

func windowFree(ctx context.Context, tx pgx.Tx, spaceID int32, start, end time.Time, excludeID *uuid.UUID) (bool, error) {
	var n int
	err := tx.QueryRow(ctx, `
		SELECT COUNT(*) FROM bookings
		WHERE space_id = $1
		  AND status IN ('processing', 'succeeded')
		  AND start_time < $3 AND end_time > $2
		  AND ($4::uuid IS NULL OR id <> $4)`, spaceID, start, end, excludeID).Scan(&n)
	return n == 0, err
}

// overlapOr maps an exclusion-constraint violation to the business rejection;
// anything else stays a storage fault.
func overlapOr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23P01" && pgErr.ConstraintName == "bookings_no_overlap" {
		return domain.ErrTimeSlotOverlap
	}
	return err
}

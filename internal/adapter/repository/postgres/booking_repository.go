package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hash/fnv"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/srgjo27/hotel_booking/internal/core/domain"
)

const (
	pqExclusionViolation = "23P01"
	pqUniqueViolation    = "23505"
)

const bookingColumns = `id, hotel_id, room_id, user_id, check_in, check_out, total_amount, booking_date, status, created_at, updated_at`

type BookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// CreateBookings inserts the whole batch in one transaction. Advisory locks
// on every (hotel, room) pair are taken in key order before the overlap
// re-check, so two requests racing for the same room run one after the other.
// The bookings_no_overlap exclusion constraint backs this up.
func (r *BookingRepository) CreateBookings(ctx context.Context, bookings []*domain.Booking) error {
	if len(bookings) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(k) FROM unnest($1::bigint[]) AS k`, pq.Array(roomLockKeys(bookings)))
	if err != nil {
		return fmt.Errorf("failed to lock rooms: %w", err)
	}

	queryOverlap := `
	SELECT id FROM bookings
	WHERE hotel_id = $1 AND room_id = $2 AND status <> 'CANCELLED'
		AND check_in < $3 AND check_out > $4
	LIMIT 1
	`

	for _, b := range bookings {
		var existing uuid.UUID
		err := tx.QueryRowContext(ctx, queryOverlap, b.HotelID, b.RoomID, b.CheckOut, b.CheckIn).Scan(&existing)
		if err == nil {
			return domain.Conflictf("room %d is not available", b.RoomID)
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("failed to check overlap for room %d: %w", b.RoomID, err)
		}
	}

	queryInsert := `
	INSERT INTO bookings (` + bookingColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	stmt, err := tx.PrepareContext(ctx, queryInsert)
	if err != nil {
		return fmt.Errorf("failed to prepare booking statement: %w", err)
	}

	defer stmt.Close()

	for _, b := range bookings {
		_, err := stmt.ExecContext(ctx, b.ID, b.HotelID, b.RoomID, b.UserID, b.CheckIn, b.CheckOut,
			b.TotalAmount, b.BookingDate, b.Status, b.CreatedAt, b.UpdatedAt)
		if err != nil {
			if conflict := conflictFromPQ(err, b.RoomID); conflict != nil {
				return conflict
			}
			return fmt.Errorf("failed to insert booking for room %d: %w", b.RoomID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		if conflict := conflictFromPQ(err, bookings[0].RoomID); conflict != nil {
			return conflict
		}
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, bookingID uuid.UUID) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	b, err := scanBooking(r.db.QueryRowContext(ctx, query, bookingID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFoundf("booking %s not found", bookingID)
		}
		return nil, err
	}

	return b, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status domain.BookingStatus) (*domain.Booking, error) {
	query := `
	UPDATE bookings
	SET status = $1, updated_at = NOW()
	WHERE id = $2
	RETURNING ` + bookingColumns

	b, err := scanBooking(r.db.QueryRowContext(ctx, query, status, bookingID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFoundf("booking %s not found", bookingID)
		}
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqExclusionViolation {
			return nil, domain.Conflictf("booking %s overlaps a live booking for the same room", bookingID)
		}
		return nil, err
	}

	return b, nil
}

// Cancel only touches rows that are still live, so concurrent cancels of the
// same booking see exactly one change.
func (r *BookingRepository) Cancel(ctx context.Context, bookingID uuid.UUID) (*domain.Booking, bool, error) {
	query := `
	UPDATE bookings
	SET status = 'CANCELLED', updated_at = NOW()
	WHERE id = $1 AND status <> 'CANCELLED'
	RETURNING ` + bookingColumns

	b, err := scanBooking(r.db.QueryRowContext(ctx, query, bookingID))
	if err == nil {
		return b, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, err
	}

	current, err := r.GetByID(ctx, bookingID)
	if err != nil {
		return nil, false, err
	}
	return current, false, nil
}

func (r *BookingRepository) FindOverlapping(ctx context.Context, hotelID, roomID int64, checkIn, checkOut time.Time) ([]domain.Booking, error) {
	query := `
	SELECT ` + bookingColumns + `
	FROM bookings
	WHERE hotel_id = $1 AND room_id = $2 AND status <> 'CANCELLED'
		AND check_in < $3 AND check_out > $4
	ORDER BY check_in
	`
	return r.list(ctx, query, hotelID, roomID, checkOut, checkIn)
}

func (r *BookingRepository) FindBookedRoomIDs(ctx context.Context, hotelID int64, checkIn, checkOut time.Time) ([]int64, error) {
	query := `
	SELECT DISTINCT room_id FROM bookings
	WHERE hotel_id = $1 AND status <> 'CANCELLED'
		AND check_in < $2 AND check_out > $3
	ORDER BY room_id
	`

	rows, err := r.db.QueryContext(ctx, query, hotelID, checkOut, checkIn)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}

		ids = append(ids, id)
	}

	return ids, rows.Err()
}

func (r *BookingRepository) ListByHotel(ctx context.Context, hotelID int64) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE hotel_id = $1 ORDER BY check_in, created_at`
	return r.list(ctx, query, hotelID)
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id = $1 ORDER BY check_in, created_at`
	return r.list(ctx, query, userID)
}

func (r *BookingRepository) ListByDateRange(ctx context.Context, start, end time.Time) ([]domain.Booking, error) {
	query := `
	SELECT ` + bookingColumns + `
	FROM bookings
	WHERE check_in <= $1 AND check_out >= $2 AND status <> 'CANCELLED'
	ORDER BY check_in, created_at
	`
	return r.list(ctx, query, end, start)
}

func (r *BookingRepository) ListAll(ctx context.Context) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings ORDER BY check_in, created_at`
	return r.list(ctx, query)
}

func (r *BookingRepository) GetExpiredPending(ctx context.Context, createdBefore time.Time, limit int) ([]uuid.UUID, error) {
	query := `
	SELECT id FROM bookings
	WHERE status = 'PENDING' AND created_at < $1
	ORDER BY created_at
	LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, createdBefore, limit)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}

		ids = append(ids, id)
	}

	return ids, rows.Err()
}

func (r *BookingRepository) list(ctx context.Context, query string, args ...any) ([]domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}

		bookings = append(bookings, *b)
	}

	return bookings, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var status string

	err := row.Scan(
		&b.ID,
		&b.HotelID,
		&b.RoomID,
		&b.UserID,
		&b.CheckIn,
		&b.CheckOut,
		&b.TotalAmount,
		&b.BookingDate,
		&status,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.Status = domain.BookingStatus(status)

	return &b, nil
}

func conflictFromPQ(err error, roomID int64) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return nil
	}

	switch pqErr.Code {
	case pqExclusionViolation:
		return domain.Conflictf("room %d is not available", roomID)
	case pqUniqueViolation:
		return domain.Conflictf("booking for room %d already exists", roomID)
	}

	return nil
}

// roomLockKeys returns one advisory lock key per distinct (hotel, room),
// sorted so every transaction acquires them in the same order.
func roomLockKeys(bookings []*domain.Booking) []int64 {
	seen := make(map[int64]struct{}, len(bookings))
	keys := make([]int64, 0, len(bookings))

	for _, b := range bookings {
		k := RoomLockKey(b.HotelID, b.RoomID)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	return keys
}

func RoomLockKey(hotelID, roomID int64) int64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "room:%d:%d", hotelID, roomID)
	return int64(h.Sum64())
}

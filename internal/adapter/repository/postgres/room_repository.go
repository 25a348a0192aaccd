package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/srgjo27/hotel_booking/internal/core/domain"
)

const roomColumns = `hotel_id, room_id, room_type, price_per_night, max_occupancy, status, updated_at`

type RoomRepository struct {
	db *sql.DB
}

func NewRoomRepository(db *sql.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	if room.Status == "" {
		room.Status = domain.RoomAvailable
	}
	if room.UpdatedAt.IsZero() {
		room.UpdatedAt = time.Now().UTC()
	}

	query := `INSERT INTO rooms (` + roomColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query, room.HotelID, room.RoomID, room.RoomType,
		room.PricePerNight, room.MaxOccupancy, room.Status, room.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return domain.Conflictf("room %d already exists in hotel %d", room.RoomID, room.HotelID)
		}
		return err
	}

	return nil
}

func (r *RoomRepository) Get(ctx context.Context, hotelID, roomID int64) (*domain.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE hotel_id = $1 AND room_id = $2`

	room, err := scanRoom(r.db.QueryRowContext(ctx, query, hotelID, roomID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFoundf("room %d not found in hotel %d", roomID, hotelID)
		}
		return nil, err
	}

	return room, nil
}

func (r *RoomRepository) ListByHotel(ctx context.Context, hotelID int64) ([]domain.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE hotel_id = $1 ORDER BY room_id`

	rows, err := r.db.QueryContext(ctx, query, hotelID)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	rooms := make([]domain.Room, 0)
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}

		rooms = append(rooms, *room)
	}

	return rooms, rows.Err()
}

// Transition locks the room row, asks fn for the next status and stores it.
// An error from fn aborts the transaction and is returned unchanged.
func (r *RoomRepository) Transition(ctx context.Context, hotelID, roomID int64, fn func(domain.RoomStatus) (domain.RoomStatus, error)) (*domain.Room, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	defer tx.Rollback()

	query := `SELECT ` + roomColumns + ` FROM rooms WHERE hotel_id = $1 AND room_id = $2 FOR UPDATE`

	room, err := scanRoom(tx.QueryRowContext(ctx, query, hotelID, roomID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFoundf("room %d not found in hotel %d", roomID, hotelID)
		}
		return nil, err
	}

	next, err := fn(room.Status)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	queryUpdate := `UPDATE rooms SET status = $1, updated_at = $2 WHERE hotel_id = $3 AND room_id = $4`

	if _, err := tx.ExecContext(ctx, queryUpdate, next, now, hotelID, roomID); err != nil {
		return nil, fmt.Errorf("failed to update room status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	room.Status = next
	room.UpdatedAt = now

	return room, nil
}

func scanRoom(row rowScanner) (*domain.Room, error) {
	var room domain.Room
	var roomType, status string

	err := row.Scan(
		&room.HotelID,
		&room.RoomID,
		&roomType,
		&room.PricePerNight,
		&room.MaxOccupancy,
		&status,
		&room.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	room.RoomType = domain.RoomType(roomType)
	room.Status = domain.RoomStatus(status)

	return &room, nil
}

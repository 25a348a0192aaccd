package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

var migrations = []string{
	`CREATE EXTENSION IF NOT EXISTS btree_gist`,
	`CREATE TABLE IF NOT EXISTS rooms (
		hotel_id        BIGINT NOT NULL,
		room_id         BIGINT NOT NULL,
		room_type       TEXT NOT NULL,
		price_per_night NUMERIC(12, 2) NOT NULL CHECK (price_per_night > 0),
		max_occupancy   INTEGER NOT NULL CHECK (max_occupancy > 0),
		status          TEXT NOT NULL DEFAULT 'AVAILABLE',
		updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (hotel_id, room_id)
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id           UUID PRIMARY KEY,
		hotel_id     BIGINT NOT NULL,
		room_id      BIGINT NOT NULL,
		user_id      BIGINT NOT NULL,
		check_in     DATE NOT NULL,
		check_out    DATE NOT NULL,
		total_amount NUMERIC(12, 2) NOT NULL,
		booking_date DATE NOT NULL,
		status       TEXT NOT NULL,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT bookings_stay_chk CHECK (check_out > check_in),
		CONSTRAINT bookings_no_overlap EXCLUDE USING gist (
			hotel_id WITH =,
			room_id WITH =,
			daterange(check_in, check_out, '[)') WITH &&
		) WHERE (status <> 'CANCELLED')
	)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_hotel ON bookings (hotel_id, check_in)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_user ON bookings (user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_pending ON bookings (created_at) WHERE status = 'PENDING'`,
}

// Migrate creates the schema if it does not exist yet. Every statement is
// idempotent so it runs on each start.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}

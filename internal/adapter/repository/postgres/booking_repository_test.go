package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/hotel_booking/internal/core/domain"
)

var bookingRowColumns = []string{
	"id", "hotel_id", "room_id", "user_id", "check_in", "check_out",
	"total_amount", "booking_date", "status", "created_at", "updated_at",
}

func newMockDB(t *testing.T) (*BookingRepository, *RoomRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewBookingRepository(db), NewRoomRepository(db), mock
}

func day(d int) time.Time {
	return time.Date(2025, time.March, d, 0, 0, 0, 0, time.UTC)
}

func testBooking(roomID int64) *domain.Booking {
	now := time.Date(2025, time.February, 1, 10, 0, 0, 0, time.UTC)
	return &domain.Booking{
		ID:          uuid.New(),
		HotelID:     1,
		RoomID:      roomID,
		UserID:      7,
		CheckIn:     day(10),
		CheckOut:    day(12),
		TotalAmount: 200,
		BookingDate: domain.DateOnly(now),
		Status:      domain.BookingPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func bookingRow(rows *sqlmock.Rows, b *domain.Booking) *sqlmock.Rows {
	return rows.AddRow(b.ID.String(), b.HotelID, b.RoomID, b.UserID, b.CheckIn, b.CheckOut,
		b.TotalAmount, b.BookingDate, string(b.Status), b.CreatedAt, b.UpdatedAt)
}

func expectInsert(prep *sqlmock.ExpectedPrepare, b *domain.Booking) {
	prep.ExpectExec().
		WithArgs(b.ID, b.HotelID, b.RoomID, b.UserID, b.CheckIn, b.CheckOut,
			b.TotalAmount, b.BookingDate, b.Status, b.CreatedAt, b.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
}

func TestCreateBookings_Success(t *testing.T) {
	repo, _, mock := newMockDB(t)
	first, second := testBooking(101), testBooking(102)

	mock.ExpectBegin()
	mock.ExpectExec(`SELECT pg_advisory_xact_lock`).WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT id FROM bookings`).WithArgs(int64(1), int64(101), day(12), day(10)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT id FROM bookings`).WithArgs(int64(1), int64(102), day(12), day(10)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	prep := mock.ExpectPrepare(`INSERT INTO bookings`)
	expectInsert(prep, first)
	expectInsert(prep, second)
	mock.ExpectCommit()

	err := repo.CreateBookings(context.Background(), []*domain.Booking{first, second})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookings_OverlapRollsBack(t *testing.T) {
	repo, _, mock := newMockDB(t)
	first, second := testBooking(101), testBooking(102)

	mock.ExpectBegin()
	mock.ExpectExec(`SELECT pg_advisory_xact_lock`).WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT id FROM bookings`).WithArgs(int64(1), int64(101), day(12), day(10)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT id FROM bookings`).WithArgs(int64(1), int64(102), day(12), day(10)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))
	mock.ExpectRollback()

	err := repo.CreateBookings(context.Background(), []*domain.Booking{first, second})

	assert.True(t, domain.IsConflict(err))
	assert.Contains(t, err.Error(), "room 102 is not available")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookings_ExclusionViolationIsConflict(t *testing.T) {
	repo, _, mock := newMockDB(t)
	b := testBooking(101)

	mock.ExpectBegin()
	mock.ExpectExec(`SELECT pg_advisory_xact_lock`).WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT id FROM bookings`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectPrepare(`INSERT INTO bookings`).ExpectExec().
		WillReturnError(&pq.Error{Code: pqExclusionViolation})
	mock.ExpectRollback()

	err := repo.CreateBookings(context.Background(), []*domain.Booking{b})

	assert.True(t, domain.IsConflict(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookings_Empty(t *testing.T) {
	repo, _, mock := newMockDB(t)

	assert.NoError(t, repo.CreateBookings(context.Background(), nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomLockKeys_SortedAndUnique(t *testing.T) {
	keys := roomLockKeys([]*domain.Booking{testBooking(3), testBooking(1), testBooking(3), testBooking(2)})

	require.Len(t, keys, 3)
	assert.IsNonDecreasing(t, keys)
	assert.Equal(t, RoomLockKey(1, 3), RoomLockKey(1, 3))
	assert.NotEqual(t, RoomLockKey(1, 3), RoomLockKey(3, 1))
}

func TestGetByID(t *testing.T) {
	repo, _, mock := newMockDB(t)
	b := testBooking(101)

	mock.ExpectQuery(`SELECT .+ FROM bookings WHERE id = \$1`).WithArgs(b.ID).
		WillReturnRows(bookingRow(sqlmock.NewRows(bookingRowColumns), b))

	got, err := repo.GetByID(context.Background(), b.ID)

	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)
	assert.Equal(t, domain.BookingPending, got.Status)
	assert.Equal(t, int64(101), got.RoomID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	repo, _, mock := newMockDB(t)
	id := uuid.New()

	mock.ExpectQuery(`SELECT .+ FROM bookings WHERE id = \$1`).WithArgs(id).
		WillReturnRows(sqlmock.NewRows(bookingRowColumns))

	_, err := repo.GetByID(context.Background(), id)

	assert.True(t, domain.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus(t *testing.T) {
	repo, _, mock := newMockDB(t)
	b := testBooking(101)
	b.Status = domain.BookingConfirmed

	mock.ExpectQuery(`UPDATE bookings`).WithArgs(domain.BookingConfirmed, b.ID).
		WillReturnRows(bookingRow(sqlmock.NewRows(bookingRowColumns), b))

	got, err := repo.UpdateStatus(context.Background(), b.ID, domain.BookingConfirmed)

	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, got.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus_Errors(t *testing.T) {
	t.Run("missing booking", func(t *testing.T) {
		repo, _, mock := newMockDB(t)
		id := uuid.New()

		mock.ExpectQuery(`UPDATE bookings`).WithArgs(domain.BookingConfirmed, id).
			WillReturnRows(sqlmock.NewRows(bookingRowColumns))

		_, err := repo.UpdateStatus(context.Background(), id, domain.BookingConfirmed)
		assert.True(t, domain.IsNotFound(err))
	})

	t.Run("revive into taken dates", func(t *testing.T) {
		repo, _, mock := newMockDB(t)
		id := uuid.New()

		mock.ExpectQuery(`UPDATE bookings`).WithArgs(domain.BookingPending, id).
			WillReturnError(&pq.Error{Code: pqExclusionViolation})

		_, err := repo.UpdateStatus(context.Background(), id, domain.BookingPending)
		assert.True(t, domain.IsConflict(err))
	})
}

func TestCancel(t *testing.T) {
	t.Run("live booking", func(t *testing.T) {
		repo, _, mock := newMockDB(t)
		b := testBooking(101)
		b.Status = domain.BookingCancelled

		mock.ExpectQuery(`WHERE id = \$1 AND status <> 'CANCELLED'`).WithArgs(b.ID).
			WillReturnRows(bookingRow(sqlmock.NewRows(bookingRowColumns), b))

		got, changed, err := repo.Cancel(context.Background(), b.ID)

		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, domain.BookingCancelled, got.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already cancelled", func(t *testing.T) {
		repo, _, mock := newMockDB(t)
		b := testBooking(101)
		b.Status = domain.BookingCancelled

		mock.ExpectQuery(`WHERE id = \$1 AND status <> 'CANCELLED'`).WithArgs(b.ID).
			WillReturnRows(sqlmock.NewRows(bookingRowColumns))
		mock.ExpectQuery(`FROM bookings WHERE id = \$1`).WithArgs(b.ID).
			WillReturnRows(bookingRow(sqlmock.NewRows(bookingRowColumns), b))

		got, changed, err := repo.Cancel(context.Background(), b.ID)

		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, b.ID, got.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing booking", func(t *testing.T) {
		repo, _, mock := newMockDB(t)
		id := uuid.New()

		mock.ExpectQuery(`WHERE id = \$1 AND status <> 'CANCELLED'`).WithArgs(id).
			WillReturnRows(sqlmock.NewRows(bookingRowColumns))
		mock.ExpectQuery(`FROM bookings WHERE id = \$1`).WithArgs(id).
			WillReturnRows(sqlmock.NewRows(bookingRowColumns))

		_, _, err := repo.Cancel(context.Background(), id)

		assert.True(t, domain.IsNotFound(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestFindBookedRoomIDs(t *testing.T) {
	repo, _, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT DISTINCT room_id FROM bookings`).WithArgs(int64(1), day(12), day(10)).
		WillReturnRows(sqlmock.NewRows([]string{"room_id"}).AddRow(int64(101)).AddRow(int64(103)))

	ids, err := repo.FindBookedRoomIDs(context.Background(), 1, day(10), day(12))

	require.NoError(t, err)
	assert.Equal(t, []int64{101, 103}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByDateRange(t *testing.T) {
	repo, _, mock := newMockDB(t)
	b := testBooking(101)

	mock.ExpectQuery(`WHERE check_in <= \$1 AND check_out >= \$2 AND status <> 'CANCELLED'`).
		WithArgs(day(31), day(1)).
		WillReturnRows(bookingRow(sqlmock.NewRows(bookingRowColumns), b))

	got, err := repo.ListByDateRange(context.Background(), day(1), day(31))

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, b.ID, got[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetExpiredPending(t *testing.T) {
	repo, _, mock := newMockDB(t)
	id := uuid.New()
	cutoff := day(5)

	mock.ExpectQuery(`WHERE status = 'PENDING' AND created_at < \$1`).WithArgs(cutoff, 50).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(id.String()))

	ids, err := repo.GetExpiredPending(context.Background(), cutoff, 50)

	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{id}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

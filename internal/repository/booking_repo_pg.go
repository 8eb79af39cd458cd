package repository

import (
	"context"
	"time"

	"github.com/campuslib/roombooking/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BookingRepository reads confirmed bookings. Bookings are written by the
// approval workflow, never by this service. Queries only narrow by window;
// the occupancy and overlap decisions belong to domain predicates.
type BookingRepository interface {
	ListInWindow(ctx context.Context, from, to time.Time) ([]domain.Booking, error)
	ListForRoom(ctx context.Context, roomID int64, from, to time.Time) ([]domain.Booking, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

// ListInWindow returns bookings touching [from, to), ordered by room then
// start time.
func (r *PGBookingRepository) ListInWindow(ctx context.Context, from, to time.Time) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT id, room_id, student_id, start_time, end_time FROM bookings
		WHERE start_time < $2 AND end_time > $1
		ORDER BY room_id, start_time`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

// ListForRoom returns one room's bookings touching [from, to), ordered by
// start time.
func (r *PGBookingRepository) ListForRoom(ctx context.Context, roomID int64, from, to time.Time) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT id, room_id, student_id, start_time, end_time FROM bookings
		WHERE room_id = $1 AND start_time < $3 AND end_time > $2
		ORDER BY start_time`, roomID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

type bookingRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanBookings(rows bookingRows) ([]domain.Booking, error) {
	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(&b.ID, &b.RoomID, &b.StudentID, &b.StartTime, &b.EndTime); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

var _ BookingRepository = (*PGBookingRepository)(nil)

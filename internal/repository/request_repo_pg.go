package repository

import (
	"context"
	"errors"
	"time"

	"github.com/campuslib/roombooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RequestRepository interface {
	CreatePending(ctx context.Context, req *domain.BookingRequest) error
	ListPendingForRoom(ctx context.Context, roomID int64, from, to time.Time) ([]domain.BookingRequest, error)
	RejectStaleBefore(ctx context.Context, deadline time.Time) ([]domain.BookingRequest, error)
}

type PGRequestRepository struct {
	db *pgxpool.Pool
}

func NewRequestRepository(db *pgxpool.Pool) RequestRepository {
	return &PGRequestRepository{db: db}
}

// CreatePending runs the conflict check and the insert in one transaction.
// The room row is locked FOR UPDATE first, so submissions for the same room
// serialize and two overlapping requests can never both pass the check.
func (r *PGRequestRepository) CreatePending(ctx context.Context, req *domain.BookingRequest) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var roomID int64
	if err := tx.QueryRow(ctx, `SELECT id FROM rooms WHERE id=$1 FOR UPDATE`, req.RoomID).Scan(&roomID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrInvalidRoom
		}
		return err
	}

	var booked bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (
			SELECT 1 FROM bookings WHERE room_id=$1 AND start_time < $3 AND end_time > $2
		)`, req.RoomID, req.StartTime, req.EndTime).Scan(&booked); err != nil {
		return err
	}
	if booked {
		return domain.ErrRoomAlreadyBooked
	}

	var pending bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (
			SELECT 1 FROM booking_requests WHERE room_id=$1 AND status=$2 AND start_time < $4 AND end_time > $3
		)`, req.RoomID, domain.RequestStatusPending, req.StartTime, req.EndTime).Scan(&pending); err != nil {
		return err
	}
	if pending {
		return domain.ErrPendingRequestConflict
	}

	req.Status = domain.RequestStatusPending
	if err := tx.QueryRow(ctx, `INSERT INTO booking_requests (id, room_id, student_id, start_time, end_time, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`, req.ID, req.RoomID, req.StudentID, req.StartTime, req.EndTime, req.Status).
		Scan(&req.CreatedAt, &req.UpdatedAt); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// ListPendingForRoom returns one room's pending requests touching [from, to),
// ordered by start time.
func (r *PGRequestRepository) ListPendingForRoom(ctx context.Context, roomID int64, from, to time.Time) ([]domain.BookingRequest, error) {
	rows, err := r.db.Query(ctx, `SELECT id, room_id, student_id, start_time, end_time, status, created_at, updated_at
		FROM booking_requests
		WHERE room_id = $1 AND status = $2 AND start_time < $4 AND end_time > $3
		ORDER BY start_time`, roomID, domain.RequestStatusPending, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]domain.BookingRequest, 0)
	for rows.Next() {
		var req domain.BookingRequest
		if err := rows.Scan(&req.ID, &req.RoomID, &req.StudentID, &req.StartTime, &req.EndTime, &req.Status, &req.CreatedAt, &req.UpdatedAt); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

// RejectStaleBefore marks pending requests whose start has passed as rejected
// and returns them.
func (r *PGRequestRepository) RejectStaleBefore(ctx context.Context, deadline time.Time) ([]domain.BookingRequest, error) {
	rows, err := r.db.Query(ctx, `UPDATE booking_requests SET status=$1, updated_at=now()
		WHERE status=$2 AND start_time <= $3
		RETURNING id, room_id, student_id, start_time, end_time, status, created_at, updated_at`,
		domain.RequestStatusRejected, domain.RequestStatusPending, deadline)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stale []domain.BookingRequest
	for rows.Next() {
		var req domain.BookingRequest
		if err := rows.Scan(&req.ID, &req.RoomID, &req.StudentID, &req.StartTime, &req.EndTime, &req.Status, &req.CreatedAt, &req.UpdatedAt); err != nil {
			return nil, err
		}
		stale = append(stale, req)
	}
	return stale, rows.Err()
}

var _ RequestRepository = (*PGRequestRepository)(nil)

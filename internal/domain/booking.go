package domain

import "time"

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "PENDING"
	RequestStatusApproved RequestStatus = "APPROVED"
	RequestStatusRejected RequestStatus = "REJECTED"
)

// Booking is a confirmed occupancy record, created by the librarian approval
// workflow. This service only reads bookings.
type Booking struct {
	ID        int64
	RoomID    int64
	StudentID string
	StartTime time.Time
	EndTime   time.Time
}

// OccupiedAt reports whether the booking covers t, endpoints included.
func (b Booking) OccupiedAt(t time.Time) bool {
	return !b.StartTime.After(t) && !b.EndTime.Before(t)
}

// BookingRequest is a student proposal. Created here as PENDING; the
// approval workflow moves it to APPROVED or REJECTED.
type BookingRequest struct {
	ID        string
	RoomID    int64
	StudentID string
	StartTime time.Time
	EndTime   time.Time
	Status    RequestStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Overlaps reports whether [s1, e1) and [s2, e2) intersect.
// Touching endpoints do not conflict.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

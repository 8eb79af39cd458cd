package domain

import "errors"

var (
	ErrMissingFields     = errors.New("all fields are required")
	ErrInvalidStudentID  = errors.New("student id must be 6 or 7 digits")
	ErrInvalidDuration   = errors.New("duration must be between 30 and 120 minutes")
	ErrInvalidStartTime  = errors.New("start time must be HH:MM")
	ErrInvalidRoom       = errors.New("room not found")
	ErrInactiveRoom      = errors.New("room is not active")
	ErrStartTimeInPast   = errors.New("start time must be in the future")
	ErrEndsAfterMidnight = errors.New("booking must end by midnight")

	ErrRoomAlreadyBooked      = errors.New("room is already booked for this time")
	ErrPendingRequestConflict = errors.New("a pending request already covers this time")

	ErrDataUnavailable = errors.New("data unavailable")
)

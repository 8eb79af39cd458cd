package request

import (
	"context"
	"log"
	"regexp"
	"time"

	"github.com/campuslib/roombooking/internal/domain"
	"github.com/campuslib/roombooking/internal/kafka"
	"github.com/campuslib/roombooking/internal/repository"
	"github.com/google/uuid"
)

const (
	MinDurationMinutes = 30
	MaxDurationMinutes = 120
)

var studentIDPattern = regexp.MustCompile(`^[0-9]{6,7}$`)

type RequestUseCase interface {
	Submit(ctx context.Context, input SubmitInput) (*domain.BookingRequest, error)
	RejectStaleRequests(ctx context.Context) ([]domain.BookingRequest, error)
}

type Cache interface {
	AcquireRoomLock(ctx context.Context, roomID int64, ttl time.Duration) (bool, error)
	ReleaseRoomLock(ctx context.Context, roomID int64) error
	InvalidateViews(ctx context.Context, date string) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type SubmitInput struct {
	StudentID       string
	RoomID          int64
	StartClock      string
	DurationMinutes int
	// Now is the submission instant; its calendar date fixes the booking day.
	Now time.Time
}

type RequestService struct {
	rooms              repository.RoomRepository
	bookings           repository.BookingRepository
	requests           repository.RequestRepository
	cache              Cache
	producer           Producer
	requestTopic       string
	notificationsTopic string
	lockTTL            time.Duration
}

type RequestServiceOption func(*RequestService)

func WithNotificationsTopic(topic string) RequestServiceOption {
	return func(s *RequestService) {
		s.notificationsTopic = topic
	}
}

func NewRequestService(
	rooms repository.RoomRepository,
	bookings repository.BookingRepository,
	requests repository.RequestRepository,
	cache Cache,
	producer Producer,
	requestTopic string,
	lockTTL time.Duration,
	opts ...RequestServiceOption,
) *RequestService {
	service := &RequestService{
		rooms:        rooms,
		bookings:     bookings,
		requests:     requests,
		cache:        cache,
		producer:     producer,
		requestTopic: requestTopic,
		lockTTL:      lockTTL,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Submit validates a booking request and persists it as pending. The rules
// run in a fixed order and the first failure decides the rejection reason.
// The overlap checks and the insert are atomic in the repository; overlapping
// pending requests are rejected outright.
func (s *RequestService) Submit(ctx context.Context, input SubmitInput) (*domain.BookingRequest, error) {
	if input.StudentID == "" || input.RoomID == 0 || input.StartClock == "" || input.DurationMinutes == 0 {
		return nil, domain.ErrMissingFields
	}
	if !studentIDPattern.MatchString(input.StudentID) {
		return nil, domain.ErrInvalidStudentID
	}
	if input.DurationMinutes < MinDurationMinutes || input.DurationMinutes > MaxDurationMinutes {
		return nil, domain.ErrInvalidDuration
	}

	room, err := s.rooms.GetByID(ctx, input.RoomID)
	if err != nil {
		return nil, err
	}
	if !room.Active {
		return nil, domain.ErrInactiveRoom
	}

	clock, err := time.Parse("15:04", input.StartClock)
	if err != nil {
		return nil, domain.ErrInvalidStartTime
	}
	// Same-day only: the clock is combined with the server's current date,
	// in the server's location. No caller-supplied date exists.
	now := input.Now
	start := time.Date(now.Year(), now.Month(), now.Day(), clock.Hour(), clock.Minute(), 0, 0, now.Location())
	end := start.Add(time.Duration(input.DurationMinutes) * time.Minute)
	if !start.After(now) {
		return nil, domain.ErrStartTimeInPast
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.Add(24 * time.Hour)
	// Same-day only: the slot must close by midnight. An end exactly at
	// midnight stays within the day under the half-open interval.
	if end.After(dayEnd) {
		return nil, domain.ErrEndsAfterMidnight
	}

	booked, err := s.bookings.ListForRoom(ctx, input.RoomID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	for _, b := range booked {
		if domain.Overlaps(b.StartTime, b.EndTime, start, end) {
			return nil, domain.ErrRoomAlreadyBooked
		}
	}

	pending, err := s.requests.ListPendingForRoom(ctx, input.RoomID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	for _, p := range pending {
		if domain.Overlaps(p.StartTime, p.EndTime, start, end) {
			return nil, domain.ErrPendingRequestConflict
		}
	}

	if s.cache != nil {
		ok, err := s.cache.AcquireRoomLock(ctx, input.RoomID, s.lockTTL)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.ErrPendingRequestConflict
		}
		defer func() {
			_ = s.cache.ReleaseRoomLock(ctx, input.RoomID)
		}()
	}

	req := &domain.BookingRequest{
		ID:        uuid.NewString(),
		RoomID:    input.RoomID,
		StudentID: input.StudentID,
		StartTime: start,
		EndTime:   end,
	}

	if err := s.requests.CreatePending(ctx, req); err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.InvalidateViews(ctx, start.Format("2006-01-02"))
	}
	if err := s.publish(ctx, "request_submitted", room.Name, req); err != nil {
		log.Printf("publish request_submitted for %s failed: %v", req.ID, err)
	}
	return req, nil
}

// RejectStaleRequests rejects pending requests whose start instant has
// already passed; they can no longer be approved meaningfully.
func (s *RequestService) RejectStaleRequests(ctx context.Context) ([]domain.BookingRequest, error) {
	stale, err := s.requests.RejectStaleBefore(ctx, time.Now())
	if err != nil {
		return nil, err
	}
	for _, req := range stale {
		if err := s.publish(ctx, "request_rejected_stale", "", &req); err != nil {
			log.Printf("publish request_rejected_stale for %s failed: %v", req.ID, err)
		}
	}
	return stale, nil
}

func (s *RequestService) publish(ctx context.Context, eventType, roomName string, req *domain.BookingRequest) error {
	if s.producer == nil || s.requestTopic == "" {
		return nil
	}
	event := kafka.RequestEvent{
		Type:      eventType,
		RequestID: req.ID,
		RoomID:    req.RoomID,
		RoomName:  roomName,
		StudentID: req.StudentID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Status:    string(req.Status),
	}
	if err := s.producer.Publish(ctx, s.requestTopic, req.ID, event); err != nil {
		return err
	}
	if s.notificationsTopic != "" {
		return s.producer.Publish(ctx, s.notificationsTopic, req.ID, event)
	}
	return nil
}

var _ RequestUseCase = (*RequestService)(nil)

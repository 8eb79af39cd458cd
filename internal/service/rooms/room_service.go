package rooms

import (
	"context"
	"fmt"
	"time"

	"github.com/campuslib/roombooking/internal/domain"
	"github.com/campuslib/roombooking/internal/repository"
)

type RoomUseCase interface {
	ListRooms(ctx context.Context, now time.Time) ([]domain.RoomAvailability, error)
	ListSchedule(ctx context.Context, day time.Time) (*domain.DaySchedule, error)
}

type Cache interface {
	GetAvailability(ctx context.Context) ([]domain.RoomAvailability, error)
	SetAvailability(ctx context.Context, rooms []domain.RoomAvailability) error
	GetSchedule(ctx context.Context, date string) (*domain.DaySchedule, error)
	SetSchedule(ctx context.Context, schedule *domain.DaySchedule) error
}

// Window is the schedule display span, as offsets from midnight.
type Window struct {
	Start time.Duration
	End   time.Duration
}

// ParseWindow builds a Window from two "HH:MM" clocks.
func ParseWindow(start, end string) (Window, error) {
	s, err := parseClock(start)
	if err != nil {
		return Window{}, fmt.Errorf("window start: %w", err)
	}
	e, err := parseClock(end)
	if err != nil {
		return Window{}, fmt.Errorf("window end: %w", err)
	}
	if e <= s {
		return Window{}, fmt.Errorf("window end %s is not after start %s", end, start)
	}
	return Window{Start: s, End: e}, nil
}

func parseClock(clock string) (time.Duration, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return 0, err
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

type RoomService struct {
	rooms    repository.RoomRepository
	bookings repository.BookingRepository
	cache    Cache
	window   Window
}

func NewRoomService(rooms repository.RoomRepository, bookings repository.BookingRepository, cache Cache, window Window) *RoomService {
	return &RoomService{rooms: rooms, bookings: bookings, cache: cache, window: window}
}

// ListRooms returns every active room in ascending id order with its
// availability at `now`. A room is unavailable iff a confirmed booking covers
// the instant. Read failures surface as ErrDataUnavailable with no partial
// result.
func (s *RoomService) ListRooms(ctx context.Context, now time.Time) ([]domain.RoomAvailability, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetAvailability(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	active, err := s.rooms.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDataUnavailable, err)
	}

	// fetch the whole day and let the domain predicate decide occupancy
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	bookings, err := s.bookings.ListInWindow(ctx, dayStart, dayStart.Add(24*time.Hour))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDataUnavailable, err)
	}

	occupied := make(map[int64]struct{})
	for _, b := range bookings {
		if b.OccupiedAt(now) {
			occupied[b.RoomID] = struct{}{}
		}
	}

	result := make([]domain.RoomAvailability, 0, len(active))
	for _, room := range active {
		_, busy := occupied[room.ID]
		result = append(result, domain.RoomAvailability{
			ID:          room.ID,
			Name:        room.Name,
			IsAvailable: !busy,
		})
	}

	if s.cache != nil {
		_ = s.cache.SetAvailability(ctx, result)
	}
	return result, nil
}

// ListSchedule returns every active room with its bookings overlapping the
// display window of `day`, ordered by start time. Student identity is never
// part of the payload.
func (s *RoomService) ListSchedule(ctx context.Context, day time.Time) (*domain.DaySchedule, error) {
	date := day.Format("2006-01-02")

	if s.cache != nil {
		if cached, err := s.cache.GetSchedule(ctx, date); err == nil && cached != nil {
			return cached, nil
		}
	}

	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	from := midnight.Add(s.window.Start)
	to := midnight.Add(s.window.End)

	active, err := s.rooms.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDataUnavailable, err)
	}
	bookings, err := s.bookings.ListInWindow(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDataUnavailable, err)
	}

	perRoom := make(map[int64][]domain.ScheduleEntry, len(active))
	for _, b := range bookings {
		perRoom[b.RoomID] = append(perRoom[b.RoomID], domain.ScheduleEntry{
			StartTime: b.StartTime.Format("15:04"),
			EndTime:   b.EndTime.Format("15:04"),
		})
	}

	schedule := &domain.DaySchedule{Date: date, Rooms: make([]domain.RoomSchedule, 0, len(active))}
	for _, room := range active {
		entries := perRoom[room.ID]
		if entries == nil {
			entries = []domain.ScheduleEntry{}
		}
		schedule.Rooms = append(schedule.Rooms, domain.RoomSchedule{
			ID:       room.ID,
			Name:     room.Name,
			Bookings: entries,
		})
	}

	if s.cache != nil {
		_ = s.cache.SetSchedule(ctx, schedule)
	}
	return schedule, nil
}

var _ RoomUseCase = (*RoomService)(nil)

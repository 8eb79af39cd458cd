package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/campuslib/roombooking/config"
	"github.com/campuslib/roombooking/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client   *redis.Client
	viewsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, viewsTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:   redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		viewsTTL: viewsTTL,
	}
}

func (c *RedisCache) GetAvailability(ctx context.Context) ([]domain.RoomAvailability, error) {
	data, err := c.client.Get(ctx, availabilityKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var rooms []domain.RoomAvailability
	if err := json.Unmarshal(data, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

func (c *RedisCache) SetAvailability(ctx context.Context, rooms []domain.RoomAvailability) error {
	payload, err := json.Marshal(rooms)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, availabilityKey(), payload, c.viewsTTL).Err()
}

func (c *RedisCache) GetSchedule(ctx context.Context, date string) (*domain.DaySchedule, error) {
	data, err := c.client.Get(ctx, scheduleKey(date)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var schedule domain.DaySchedule
	if err := json.Unmarshal(data, &schedule); err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (c *RedisCache) SetSchedule(ctx context.Context, schedule *domain.DaySchedule) error {
	payload, err := json.Marshal(schedule)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, scheduleKey(schedule.Date), payload, c.viewsTTL).Err()
}

// InvalidateViews drops the cached availability and the schedule for the
// given date after a write.
func (c *RedisCache) InvalidateViews(ctx context.Context, date string) error {
	return c.client.Del(ctx, availabilityKey(), scheduleKey(date)).Err()
}

// AcquireRoomLock takes a short advisory lock for one room while a submission
// is in flight. The storage transaction remains the authority; this only
// fast-fails obvious races.
func (c *RedisCache) AcquireRoomLock(ctx context.Context, roomID int64, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, roomLockKey(roomID), "locked", ttl).Result()
}

func (c *RedisCache) ReleaseRoomLock(ctx context.Context, roomID int64) error {
	return c.client.Del(ctx, roomLockKey(roomID)).Err()
}

func availabilityKey() string {
	return "cache:rooms:availability"
}

func scheduleKey(date string) string {
	return fmt.Sprintf("cache:schedule:%s", date)
}

func roomLockKey(roomID int64) string {
	return fmt.Sprintf("lock:room:%d", roomID)
}

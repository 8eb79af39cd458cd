package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/campuslib/roombooking/config"
	"github.com/campuslib/roombooking/internal/bootstrap"
	"github.com/campuslib/roombooking/internal/cache"
	"github.com/campuslib/roombooking/internal/kafka"
	"github.com/campuslib/roombooking/internal/repository"
	"github.com/campuslib/roombooking/internal/service/request"
	"github.com/campuslib/roombooking/internal/service/rooms"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	window, err := rooms.ParseWindow(cfg.Booking.DisplayWindowStart, cfg.Booking.DisplayWindowEnd)
	if err != nil {
		log.Fatalf("display window: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.ViewsCacheTTL)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	roomRepo := repository.NewRoomRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	requestRepo := repository.NewRequestRepository(pool)

	roomService := rooms.NewRoomService(roomRepo, bookingRepo, redisCache, window)
	requestService := request.NewRequestService(
		roomRepo,
		bookingRepo,
		requestRepo,
		redisCache,
		producer,
		cfg.Kafka.RequestTopic,
		time.Duration(cfg.Booking.SlotLockTTL)*time.Second,
		request.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)

	if err := bootstrap.Run(ctx, cfg, roomService, requestService); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/srgjo27/hotel_booking/internal/adapter/client"
	"github.com/srgjo27/hotel_booking/internal/adapter/handler"
	"github.com/srgjo27/hotel_booking/internal/adapter/notify"
	"github.com/srgjo27/hotel_booking/internal/adapter/repository/memory"
	"github.com/srgjo27/hotel_booking/internal/adapter/repository/postgres"
	"github.com/srgjo27/hotel_booking/internal/core/ports"
	"github.com/srgjo27/hotel_booking/internal/core/services"
	"github.com/srgjo27/hotel_booking/internal/platform/config"
	"github.com/srgjo27/hotel_booking/internal/platform/database"
	"github.com/srgjo27/hotel_booking/internal/platform/logger"
	"github.com/srgjo27/hotel_booking/internal/platform/scheduler"
	"github.com/srgjo27/hotel_booking/internal/platform/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("invalid configuration: %v", err)
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := telemetry.InitTracer(ctx, cfg.ServiceName, cfg.OTLPEndpoint)
	if err != nil {
		log.Fatalf("failed to init tracer: %v", err)
	}

	var (
		bookingRepo ports.BookingRepository
		roomRepo    ports.RoomRepository
	)

	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := database.NewPostgresDB(ctx, database.Config{
			Host:            cfg.DBHost,
			Port:            cfg.DBPort,
			User:            cfg.DBUser,
			Password:        cfg.DBPassword,
			DBName:          cfg.DBName,
			SSLMode:         cfg.DBSSLMode,
			MaxOpenConns:    cfg.DBMaxConns,
			MaxIdleConns:    cfg.DBMaxConns,
			ConnMaxLifetime: 5 * time.Minute,
		}, log)
		if err != nil {
			log.Fatalf("failed to connect to db after retries: %v", err)
		}
		defer db.Close()

		if err := postgres.Migrate(ctx, db); err != nil {
			log.Fatalf("failed to migrate schema: %v", err)
		}

		bookingRepo = postgres.NewBookingRepository(db)
		roomRepo = postgres.NewRoomRepository(db)
	default:
		log.Warn("using in-memory storage, data is lost on restart")
		bookingRepo = memory.NewBookingRepository()
		roomRepo = memory.NewRoomRepository()
	}

	var cache *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		cache = redis.NewClient(opts)
		if err := cache.Ping(ctx).Err(); err != nil {
			log.WithError(err).Warn("redis unreachable, availability cache will miss until it recovers")
		} else {
			log.Info("redis connected")
		}
		defer cache.Close()
	}

	roomService := services.NewRoomService(roomRepo, log).WithAvailabilityCache(cache)

	var rooms ports.RoomProvider = services.NewLocalRoomProvider(roomService)
	if cfg.RoomServiceURL != "" {
		rooms = client.NewRoomClient(cfg.RoomServiceURL, cfg.CollaboratorTimeout)
	}

	if cfg.UserServiceURL == "" {
		log.Warn("USER_SERVICE_URL not set, booking listings will carry no contact details")
	}
	users := client.NewUserClient(cfg.UserServiceURL, cfg.CollaboratorTimeout)

	sinks := []notify.Sink{notify.NewLogSink(log)}
	if cfg.NotificationServiceURL != "" {
		sinks = append(sinks, client.NewNotificationClient(cfg.NotificationServiceURL, cfg.CollaboratorTimeout))
	}
	if cfg.RabbitURL != "" {
		publisher, err := notify.NewPublisher(cfg.RabbitURL, cfg.BookingExchange)
		if err != nil {
			log.WithError(err).Warn("rabbitmq unavailable, booking events will not be published")
		} else {
			defer publisher.Close()
			sinks = append(sinks, publisher)
		}
	}

	dispatcher := notify.NewDispatcher(notify.Config{
		Workers:     cfg.NotifyWorkers,
		Buffer:      cfg.NotifyBuffer,
		SendTimeout: cfg.CollaboratorTimeout,
	}, log, sinks...)
	dispatcher.Start()

	bookingService := services.NewBookingService(bookingRepo, rooms, users, dispatcher, cache, log).
		WithCacheTTL(cfg.AvailabilityCacheTTL)

	jobs, err := scheduler.New(log)
	if err != nil {
		log.Fatalf("failed to create scheduler: %v", err)
	}
	if cfg.PendingTTL > 0 {
		worker := services.NewExpiryWorker(bookingRepo, bookingService, cfg.PendingTTL, log)
		if err := jobs.Every("expire-pending-bookings", cfg.ExpiryInterval, func(ctx context.Context) {
			worker.ProcessExpiredBookings(ctx)
		}); err != nil {
			log.Fatalf("failed to schedule expiry job: %v", err)
		}
	}
	jobs.Start()

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := handler.NewRouter(
		handler.NewBookingHandler(bookingService, log),
		handler.NewRoomHandler(roomService, log),
		log,
	)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Infof("server starting on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server startup failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("server forced to shutdown")
	}
	if err := jobs.Shutdown(); err != nil {
		log.WithError(err).Warn("scheduler shutdown failed")
	}
	if err := dispatcher.Stop(shutdownCtx); err != nil {
		log.WithError(err).Warn("pending notifications dropped on shutdown")
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		log.WithError(err).Warn("tracer shutdown failed")
	}

	log.Info("server exiting")
}

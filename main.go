package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foodieride-api/config"
	"foodieride-api/events"
	"foodieride-api/geo"
	"foodieride-api/handlers"
	"foodieride-api/logger"
	"foodieride-api/middleware"
	"foodieride-api/routes"
	"foodieride-api/services"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Init(logger.Options{Pretty: true}).Fatal().Err(err).Msg("failed to load configuration")
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	gin.SetMode(cfg.GinMode)

	db, err := config.OpenDB(cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	log.Info().Str("path", cfg.DB.Path).Bool("reset", cfg.DB.Reset).Msg("database ready")

	revocations, closeRedis := revocationStore(ctx, cfg.Redis)
	defer closeRedis()

	var publisher events.Publisher = events.Nop{}
	if cfg.AMQP.URL != "" {
		rabbit, err := events.DialRabbit(cfg.AMQP.URL, cfg.AMQP.Exchange)
		if err != nil {
			log.Warn().Err(err).Msg("RabbitMQ unavailable, order events disabled")
		} else {
			publisher = rabbit
		}
	}
	defer publisher.Close()

	geoClient := geo.NewClient(geo.Options{
		OverpassURL:  cfg.Geo.OverpassURL,
		NominatimURL: cfg.Geo.NominatimURL,
		UserAgent:    cfg.Geo.UserAgent,
		Timeout:      cfg.Geo.Timeout,
		RadiusMeters: cfg.Geo.RadiusMeters,
		DefaultLat:   cfg.Geo.DefaultLat,
		DefaultLon:   cfg.Geo.DefaultLon,
	})

	sessions := middleware.NewSessionManager(cfg.Session.JWTSecret, cfg.Session.TTL, revocations)
	notifier := services.NewNotifier(db, publisher)
	h := handlers.New(
		services.NewAuthService(db, 0),
		services.NewOrderService(db, geoClient, notifier),
		notifier,
		sessions,
	)

	r := gin.New()
	r.Use(middleware.RequestLogger(), gin.Recovery(), middleware.CORS(cfg.CORSOrigin))
	routes.SetupRoutes(r, h, sessions)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info().Str("addr", "http://localhost:"+cfg.Port).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}

// revocationStore uses Redis when configured and reachable, memory otherwise.
func revocationStore(ctx context.Context, cfg config.RedisConfig) (middleware.RevocationStore, func()) {
	if cfg.Addr == "" {
		return middleware.NewMemoryRevocations(), func() {}
	}
	log := logger.Get()
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", cfg.Addr).Msg("Redis unavailable, keeping session revocations in memory")
		_ = client.Close()
		return middleware.NewMemoryRevocations(), func() {}
	}
	log.Info().Str("addr", cfg.Addr).Msg("session revocations stored in Redis")
	return middleware.NewRedisRevocations(client), func() { _ = client.Close() }
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/goldenhour-reservation/internal/config"
	"github.com/iliyamo/goldenhour-reservation/internal/handler"
	"github.com/iliyamo/goldenhour-reservation/internal/middleware"
	"github.com/iliyamo/goldenhour-reservation/internal/queue"
	"github.com/iliyamo/goldenhour-reservation/internal/router"
	"github.com/iliyamo/goldenhour-reservation/internal/service"
	"github.com/iliyamo/goldenhour-reservation/internal/slots"
	"github.com/iliyamo/goldenhour-reservation/internal/store"
)

func main() {
	if err := config.LoadEnvFile(".env"); err != nil {
		panic(err)
	}
	cfg := config.Load()

	var zl *zap.Logger
	var err error
	if cfg.Production() {
		zl, err = zap.NewProduction()
	} else {
		zl, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	defer zl.Sync()
	logger := zl.Sugar()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	demo := config.LoadDemoConfig()
	loc := demo.Location()

	// redis backs the cache and the rate limiter; both degrade to
	// pass-through without it
	rdb, err := config.NewRedisClient(ctx, config.LoadRedisConfig())
	if err != nil {
		logger.Warnw("redis unavailable, cache and rate limit disabled", "error", err)
	} else {
		defer rdb.Close()
	}

	eventsCfg := config.LoadEventsConfig()
	broker, err := queue.ConnectWithRetry(ctx, eventsCfg, eventsCfg.ConnectAttempts, logger)
	if err != nil {
		logger.Warnw("event broker unavailable, events will be dropped", "driver", eventsCfg.Driver, "error", err)
		broker = queue.NopBroker{}
	}
	defer broker.Close()

	consumer := queue.NewLogConsumer(demo.ReservationLogPath, logger)
	if err := consumer.Start(ctx, broker, eventsCfg.Queue); err != nil {
		logger.Warnw("reservation log consumer not started", "queue", eventsCfg.Queue, "error", err)
	}

	initial, err := store.SeedState()
	if err != nil {
		logger.Fatalw("load seed data", "error", err)
	}
	reducer := store.NewReducer(slots.NewGenerator(slots.RandomClosure{Rate: demo.ClosureRate}))
	st := store.New(initial, reducer, logger.Named("store"))

	svc := service.New(st, service.Options{
		Broker:       broker,
		EventsQueue:  eventsCfg.Queue,
		Now:          func() time.Time { return time.Now().In(loc) },
		SubmitDelay:  demo.SubmitDelay,
		PaymentDelay: demo.PaymentDelay,
		JWTSecret:    cfg.JWTSecret,
		SessionTTL:   cfg.SessionTTL,
		Logger:       logger.Named("service"),
	})

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	router.RegisterRoutes(e)
	router.RegisterAPI(e, router.Handlers{
		State:        handler.NewStateHandler(svc),
		Reservations: handler.NewReservationHandler(svc),
		Staff:        handler.NewStaffHandler(svc),
	}, router.Middleware{
		Logger:    logger.Named("http"),
		JWTSecret: cfg.JWTSecret,
		RateLimit: middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb, logger),
		Cache:     middleware.NewRedisCache(config.LoadCacheConfig(), rdb, logger),
	})

	addr := ":" + cfg.Port
	go func() {
		logger.Infow("listening", "addr", addr, "env", cfg.Env, "events", eventsCfg.Driver, "redis", rdb != nil)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorw("server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Infow("shutting down", "timeout", cfg.ShutdownTimeout)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Errorw("graceful shutdown failed", "error", err)
	}
}

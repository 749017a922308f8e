/**
 * @description
 * This is the main entry point for the commerce service.
 * It initializes and wires together all the components of the application:
 * configuration, database connection, event producer, rate limiter, the
 * application services, the HTTP router and the cron scheduler. Finally, it
 * starts the HTTP server and waits for a termination signal.
 */
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/roastline/commerce-service/internal/api"
	"github.com/roastline/commerce-service/internal/app"
	"github.com/roastline/commerce-service/internal/config"
	"github.com/roastline/commerce-service/internal/store"
	"github.com/roastline/commerce-service/pkg/rabbitmq"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// Load .env for local development; in production the variables come from
	// the environment directly.
	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file found, using environment variables")
	}

	// Load application configuration from environment variables
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Create a context that can be cancelled
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up channel to listen for OS signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	// Establish connection to the PostgreSQL database with connection pool configuration
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		logger.Error("unable to parse database URL", "error", err)
		os.Exit(1)
	}

	// Configure connection pool for high-traffic scenarios
	poolConfig.MaxConns = 100
	poolConfig.MinConns = 20
	poolConfig.MaxConnLifetime = 30 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute

	// Use simple protocol so the service works behind PgBouncer transaction
	// pooling without statement cache errors (SQLSTATE 42P05).
	poolConfig.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	dbpool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		logger.Error("unable to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbpool.Close()
	logger.Info("database connection established")

	// Event producer is optional: without AMQP the service still serves
	// checkouts, it just skips the notification events.
	var producer app.EventPublisher
	if cfg.AMQPURL != "" {
		eventProducer, err := rabbitmq.NewEventProducer(cfg.AMQPURL)
		if err != nil {
			logger.Error("failed to connect to RabbitMQ", "error", err)
			os.Exit(1)
		}
		defer eventProducer.Close()
		producer = eventProducer
		logger.Info("event producer connected", "exchange", rabbitmq.Exchange)
	} else {
		logger.Warn("AMQP_URL not set, event publishing disabled")
	}

	// Redis-backed login rate limiter is optional as well.
	var limiter app.RateLimiter
	if cfg.RedisURL != "" {
		redisOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Error("unable to parse redis URL", "error", err)
			os.Exit(1)
		}
		redisClient := redis.NewClient(redisOpts)
		defer redisClient.Close()
		limiter = app.NewRedisRateLimiter(redisClient, "")
		logger.Info("redis rate limiter enabled")
	} else {
		logger.Warn("REDIS_URL not set, login rate limiting disabled")
	}

	// Initialize application layers
	repository := store.NewPostgresRepository(dbpool)

	// Ensure required tables exist (idempotent)
	if err := repository.EnsureSchema(ctx); err != nil {
		logger.Warn("failed ensuring tables (may already exist)", "error", err)
	}

	checkoutService := app.NewCheckoutService(repository, producer, logger)
	subscriptionService := app.NewSubscriptionService(repository, producer, logger)
	accountService := app.NewAccountService(repository)
	authService := app.NewAuthService(repository, producer, limiter, logger, cfg.JWTSecret)
	profileService := app.NewProfileService(repository)
	handler := api.NewHandler(checkoutService, subscriptionService, accountService, authService, profileService)
	router := api.NewRouter(handler, cfg.JWTSecret, cfg.AllowedOrigin)

	// Start the delivery advance cron job
	jobs := app.NewJobs(repository, logger)
	scheduler := app.NewScheduler(jobs, logger, cfg.DeliveryJobSchedule)
	scheduler.Start()

	// Configure and start the HTTP server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.ServerPort),
		Handler: router,
	}

	go func() {
		logger.Info("starting server", "port", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for an OS signal
	<-sigCh
	logger.Info("shutdown signal received, gracefully shutting down")

	// Create a context with a timeout for shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	// Attempt to gracefully shut down the server
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}

	// Stop the scheduler and wait for running jobs to finish
	<-scheduler.Stop().Done()

	logger.Info("server stopped")
}

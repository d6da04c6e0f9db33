package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"routehub/cmd"
	"routehub/internal/adapters/out/amqp"
	"routehub/internal/adapters/out/email"
	"routehub/internal/adapters/out/notify"
	"routehub/internal/adapters/out/postgres/migrations"
	"routehub/internal/adapters/out/redis"
	"routehub/internal/core/ports"
	"routehub/internal/pkg/logging"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	configs, err := cmd.LoadConfig(os.Getenv)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := logging.New(configs.LogLevel, configs.LogFormat)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = migrations.Up(ctx, configs.DSN()); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	gormDB, err := gorm.Open(gormpostgres.Open(configs.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	redisClient := redis.NewClient(configs.RedisAddr, configs.RedisPassword, 0, logger)
	limiter, err := redis.NewAttemptLimiter(redisClient, configs.ChallengeMaxAttempts, configs.ChallengeAttemptWindow)
	if err != nil {
		log.Fatalf("Invalid attempt limiter settings: %v", err)
	}

	sender, closeSender := pushSender(configs, logger)
	dispatcher := notify.NewAsyncDispatcher(sender, notify.DefaultWorkers, notify.DefaultQueueSize, logger)
	dispatcher.Start()

	app, err := cmd.NewCompositionRoot(configs, gormDB, cmd.Adapters{
		Dispatcher: dispatcher,
		Mailer:     emailSender(configs, logger),
		Limiter:    limiter,
	}, logger)
	if err != nil {
		log.Fatalf("Failed to build application: %v", err)
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}

	e := startWebServer(app, configs.HTTPPort)

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err = e.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP shutdown failed", "error", err)
	}
	jobManager.StopAll()
	if err = dispatcher.Close(shutdownCtx); err != nil {
		logger.Warn("Pending push notifications dropped", "error", err)
	}
	closeSender()
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if sqlDB, dbErr := gormDB.DB(); dbErr == nil {
		_ = sqlDB.Close()
	}
}

// pushSender publishes to RabbitMQ when AMQP_URL is set and the broker is
// reachable, and logs notifications otherwise.
func pushSender(configs cmd.Config, logger *slog.Logger) (ports.PushSender, func()) {
	if configs.AMQPURL == "" {
		return notify.NewLogSender(logger), func() {}
	}

	publisher, err := amqp.NewPushPublisher(configs.AMQPURL, configs.PushQueue)
	if err != nil {
		logger.Warn("RabbitMQ unavailable, push notifications are logged only", "error", err)
		return notify.NewLogSender(logger), func() {}
	}
	return publisher, func() { _ = publisher.Close() }
}

func emailSender(configs cmd.Config, logger *slog.Logger) ports.EmailSender {
	if configs.SMTPHost == "" {
		return email.NewLogSender(logger)
	}
	return email.NewSMTPSender(email.SMTPConfig{
		Host:     configs.SMTPHost,
		Port:     configs.SMTPPort,
		Username: configs.SMTPUser,
		Password: configs.SMTPPassword,
		From:     configs.SMTPFrom,
	})
}

func startWebServer(app cmd.CompositionRoot, port string) *echo.Echo {
	server, err := app.CreateHTTPServer()
	if err != nil {
		log.Fatalf("Failed to build HTTP server: %v", err)
	}

	e := echo.New()
	e.HideBanner = true
	server.Register(e)

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()
	return e
}

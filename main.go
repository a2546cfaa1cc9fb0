package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Kusalkumar06/eventia/config"
	"github.com/Kusalkumar06/eventia/internal/auth"
	"github.com/Kusalkumar06/eventia/internal/consumer"
	"github.com/Kusalkumar06/eventia/internal/mailer"
	"github.com/Kusalkumar06/eventia/internal/notification"
	"github.com/Kusalkumar06/eventia/internal/service"
	"github.com/Kusalkumar06/eventia/pkg/database"
	"github.com/Kusalkumar06/eventia/pkg/logger"
	"github.com/Kusalkumar06/eventia/pkg/rabbitmq"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

const emailQueue = "eventia.email"

func main() {
	cfg, err := config.Load()
	if err != nil {
		l := logger.New("info", "json")
		l.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	db, err := openDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DBDriver).Msg("failed to open database")
	}

	var (
		notifier service.Notifier         = notification.NewLogNotifier(&log)
		cache    service.CacheInvalidator = notification.NewLogNotifier(&log)
	)
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
	if err != nil {
		log.Warn().Err(err).Msg("RabbitMQ unavailable, notifications will only be logged")
	} else {
		defer publisher.Close()
		notifier = notification.NewEmailDispatcher(publisher, &log)
		cache = notification.NewCacheBus(publisher, &log)

		if cfg.NotifyWorker {
			stop := startMailWorker(cfg, &log)
			defer stop()
		}
	}

	svcs := newApp(db, notifier, cache, &log)

	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 10*time.Second)
	if err := svcs.categories.SeedDefaults(seedCtx); err != nil {
		log.Fatal().Err(err).Msg("failed to seed categories")
	}
	cancelSeed()

	e := newServer(svcs, auth.NewJWTProvider(cfg.JWTSecret, cfg.JWTIssuer), &log)

	go func() {
		log.Info().Str("port", cfg.ServerPort).Msg("Eventia starting")
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("Eventia stopped")
}

func openDB(cfg *config.Config) (*gorm.DB, error) {
	if cfg.DBDriver == "sqlite" {
		return database.NewSQLiteDB(cfg.SQLitePath)
	}
	return database.NewPostgresDB(cfg.DSN())
}

// startMailWorker consumes queued email and delivers it over SMTP. The
// returned func closes the consumer and waits for in-flight messages.
func startMailWorker(cfg *config.Config, log *zerolog.Logger) func() {
	mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL, emailQueue, notification.RoutingKeyEmail)
	if err != nil {
		log.Error().Err(err).Msg("mail worker disabled: consumer setup failed")
		return func() {}
	}

	msgs, err := mqConsumer.Consume()
	if err != nil {
		mqConsumer.Close()
		log.Error().Err(err).Msg("mail worker disabled: failed to start consuming")
		return func() {}
	}

	smtpMailer := mailer.NewSMTPMailer(mailer.Config{
		Addr:     cfg.SMTPAddr(),
		Host:     cfg.SMTPHost,
		User:     cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	}, log)
	done := consumer.NewNotificationConsumer(smtpMailer, log).Start(msgs)
	log.Info().Str("queue", mqConsumer.Queue()).Msg("mail worker started")

	return func() {
		mqConsumer.Close()
		<-done
	}
}

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"esports-registration/config"
	"esports-registration/database"
	"esports-registration/handlers"
	"esports-registration/notifier"
	"esports-registration/repository"
	"esports-registration/services"
	"esports-registration/utils"
	"esports-registration/validation"
	"esports-registration/workers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}
	config.SetupLogging(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The server starts even when the database is down; the probe keeps
	// retrying and data routes fail until it connects.
	db := database.NewManager(cfg.DatabaseDriver, cfg.DatabaseURL, cfg.DBSlowQueryLimit)
	if err := db.Connect(ctx); err != nil {
		slog.Warn("database unavailable at startup, running degraded", "err", err)
	}
	defer db.Close()

	probe, err := workers.StartDatabaseProbe(ctx, db, cfg.DBProbeInterval)
	if err != nil {
		slog.Error("failed to start database probe", "err", err)
		os.Exit(1)
	}

	sink, sinkNames := buildSinks(ctx, cfg)
	dispatcher := workers.NewNotificationDispatcher(sink, cfg.NotifyWorkers, cfg.NotifyQueueSize, cfg.NotifyTimeout)
	// Queued notifications are still delivered during shutdown.
	dispatcher.Start(context.WithoutCancel(ctx))

	v := validation.New()
	contactRepo := repository.NewContactRepository(db)
	registrationRepo := repository.NewRegistrationRepository(db)
	creds := services.NewCredentialStore(repository.NewAdminRepository(db))
	tokens := services.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)
	auth := services.NewAuthService(creds, tokens, v)

	app := handlers.NewApp(cfg.AllowedOrigins)
	handlers.SetupRoutes(app,
		handlers.NewPublicHandler(
			services.NewContactService(contactRepo, v, dispatcher),
			services.NewRegistrationService(registrationRepo, v, dispatcher),
		),
		handlers.NewAdminHandler(auth, services.NewAdminService(contactRepo, registrationRepo, creds)),
		handlers.NewHealthHandler(db, sinkNames),
		auth,
		handlers.RateLimits{
			Window:  cfg.RateLimitWindow,
			General: cfg.RateLimitMax,
			Login:   cfg.LoginRateLimitMax,
		},
	)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server error", "err", err)
			stop()
		}
	}()
	slog.Info("server running", "port", cfg.Port, "origins", cfg.AllowedOrigins, "notifiers", sinkNames)

	<-ctx.Done()
	slog.Info("shutting down")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("server shutdown", "err", err)
	}
	if err := probe.Shutdown(); err != nil {
		slog.Error("probe shutdown", "err", err)
	}
	dispatcher.Stop()
}

// buildSinks assembles the notification transports that are configured.
// Without any, notifications are only logged.
func buildSinks(ctx context.Context, cfg *config.Config) (notifier.Sink, []string) {
	var sinks notifier.MultiSink

	if cfg.EmailEnabled() {
		email := notifier.NewEmailSink(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom, cfg.AdminEmail)
		if err := email.Verify(); err != nil {
			slog.Warn("smtp verification failed, emails may not be delivered", "err", err)
		}
		sinks = append(sinks, email)
	}

	if cfg.ArchiveEnabled() {
		r2, err := utils.NewR2Client(ctx, utils.R2Config{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			AccessKeySecret: cfg.R2AccessKeySecret,
			Bucket:          cfg.R2Bucket,
		})
		if err != nil {
			slog.Warn("notification archive disabled", "err", err)
		} else {
			if err := r2.Ready(ctx); err != nil {
				slog.Warn("r2 bucket not reachable", "err", err)
			}
			sinks = append(sinks, notifier.NewArchiveSink(r2, "notifications"))
		}
	}

	if len(sinks) == 0 {
		sinks = append(sinks, notifier.LogSink{Logger: slog.With("component", "notifier")})
	}

	names := make([]string, len(sinks))
	for i, s := range sinks {
		names[i] = s.Name()
	}
	return sinks, names
}

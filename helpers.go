package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/muhammadolammi/careerpath/internal/config"
	"github.com/muhammadolammi/careerpath/internal/notify"
	"github.com/muhammadolammi/careerpath/internal/state"
	"github.com/muhammadolammi/careerpath/internal/storage"
)

// newAppConfig connects every backing service the configuration enables.
// Whatever was opened before a failure is closed again.
func newAppConfig(ctx context.Context, cfg *config.Config) (app *AppConfig, err error) {
	app = &AppConfig{Config: cfg}
	defer func() {
		if err != nil {
			app.Close()
			app = nil
		}
	}()

	app.Store, err = openStore(ctx, cfg)
	if err != nil {
		return app, err
	}

	app.Advisor, err = newAdvisor(ctx, cfg)
	if err != nil {
		return app, err
	}

	if cfg.R2.Enabled() {
		app.Documents, err = storage.NewR2(ctx, storage.Config{
			AccountID: cfg.R2.AccountID,
			Bucket:    cfg.R2.Bucket,
			AccessKey: cfg.R2.AccessKey,
			SecretKey: cfg.R2.SecretKey,
		})
		if err != nil {
			return app, err
		}
		slog.Info("Resume document storage enabled", "bucket", cfg.R2.Bucket)
	}

	if cfg.RabbitMQURL != "" {
		app.Rabbit, err = notify.Dial(cfg.RabbitMQURL)
		if err != nil {
			return app, err
		}
		slog.Info("Session updates enabled", "exchange", notify.Exchange)
	}

	return app, nil
}

// openStore uses Postgres when DB_URL is set and memory otherwise.
func openStore(ctx context.Context, cfg *config.Config) (state.Store, error) {
	if cfg.DBURL == "" {
		slog.Info("DB_URL not set, keeping sessions in memory")
		return state.NewMemoryStore(), nil
	}
	store, err := state.OpenPostgres(ctx, cfg.DBURL)
	if err != nil {
		return nil, fmt.Errorf("error opening db: %w", err)
	}
	slog.Info("Database connected")
	return store, nil
}

func (app *AppConfig) Close() error {
	var errs []error
	if app.Rabbit != nil {
		errs = append(errs, app.Rabbit.Close())
	}
	if app.Store != nil {
		errs = append(errs, app.Store.Close())
	}
	return errors.Join(errs...)
}

// expireSession releases what an idle session still holds outside the store.
func (app *AppConfig) expireSession(ctx context.Context, s *state.Session) {
	if app.Documents == nil || s.ResumeKey == "" {
		return
	}
	if err := app.Documents.Delete(ctx, s.ResumeKey); err != nil {
		slog.Warn("Failed to delete expired resume document", "session_id", s.ID, "key", s.ResumeKey, "error", err)
	}
}

// reaperInterval checks often enough that no session outlives its TTL by
// more than half again.
func reaperInterval(ttl time.Duration) time.Duration {
	if half := ttl / 2; half < time.Minute {
		return max(half, time.Second)
	}
	return time.Minute
}

// Package auth собирает сервис аутентификации: хранилище, миграции, выдачу токенов и HTTP-сервер.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/magabrotheeeer/content-platform/internal/config"
	"github.com/magabrotheeeer/content-platform/internal/lib/google"
	"github.com/magabrotheeeer/content-platform/internal/lib/jwt"
	"github.com/magabrotheeeer/content-platform/internal/lib/sl"
	"github.com/magabrotheeeer/content-platform/internal/migrations"
	authservice "github.com/magabrotheeeer/content-platform/internal/services/auth"
	"github.com/magabrotheeeer/content-platform/internal/storage/repository"
)

const shutdownTimeout = 15 * time.Second

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.auth.New"

	db, err := repository.New(ctx, cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if cfg.UsesDefaultSecret() {
		logger.Warn("JWT_SECRET is not set, using the default development secret")
	}
	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	// Без client id google_auth доверяет телу запроса.
	var verifier authservice.GoogleVerifier
	if cfg.ClientID != "" {
		verifier = google.NewVerifier(cfg.ClientID)
	} else {
		logger.Warn("GOOGLE_CLIENT_ID is not set, id_token verification is disabled")
	}

	authService := authservice.NewAuthService(db, jwtMaker, verifier, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, prometheus.NewRegistry(), authService, db)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("Auth HTTP service listening on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	var err error
	select {
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down auth HTTP server gracefully")
		err = a.server.Shutdown(timeoutCtx)
	case err = <-errCh:
	}

	if cerr := a.db.Close(); cerr != nil {
		a.logger.Error("failed to close database", sl.Err(cerr))
	}
	return err
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/realsushi-official/barinsta/internal/api"
	"github.com/realsushi-official/barinsta/internal/config"
	"github.com/realsushi-official/barinsta/internal/direct"
	"github.com/realsushi-official/barinsta/internal/handlers"
	"github.com/realsushi-official/barinsta/internal/session"
	"github.com/realsushi-official/barinsta/internal/store"
	"github.com/realsushi-official/barinsta/internal/transport"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	var logger zerolog.Logger
	if cfg.IsDevelopment() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			With().
			Timestamp().
			Logger()
	} else {
		logger = zerolog.New(os.Stdout).
			With().
			Timestamp().
			Logger()
	}

	ctx := context.Background()

	// Open the local credential store
	credStore, err := store.NewSQLiteStore(ctx, cfg.SessionDBPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("credential store open failed")
	}
	defer credStore.Close()

	// Build the session context. A missing or incomplete login is a
	// precondition failure: nothing in this daemon is usable without it.
	cookie, err := credStore.GetCookie(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("cookie load failed")
	}
	deviceID, err := credStore.DeviceID(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("device id load failed")
	}
	sess, err := session.New(cookie, deviceID)
	if err != nil {
		logger.Fatal().Err(err).Msg("no valid login session; log in first")
	}
	logger.Info().Int64("viewer_id", sess.ViewerID).Msg("session loaded")

	// Transport client and the inbox manager
	client := transport.NewClient(cfg.APIBaseURL, sess, logger)
	manager := direct.NewManager(sess, client, logger)

	// Warm both inboxes in the background
	go func() {
		if err := manager.Inbox.Refresh(ctx); err != nil {
			logger.Error().Err(err).Msg("initial inbox load failed")
		}
	}()
	go func() {
		if err := manager.PendingInbox.Refresh(ctx); err != nil {
			logger.Error().Err(err).Msg("initial pending inbox load failed")
		}
	}()

	// Create router
	h := handlers.NewHandler(manager, logger)
	router := api.NewRouter(logger, h, cfg.UIOrigins)

	// Create server; the bridge only serves the local UI
	srv := &http.Server{
		Addr:         "127.0.0.1:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info().
			Str("port", cfg.Port).
			Str("env", cfg.Env).
			Msg("starting direct inbox bridge")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server...")

	// Graceful shutdown with 30 second timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server stopped")
}

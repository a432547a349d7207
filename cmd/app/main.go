// Package main runs the RPGBot dice API.
//
//	@title						RPGBot API
//	@version					1.0
//	@description				Dice roll evaluation for Telegram, Discord and stream overlays.
//	@BasePath					/api/v1
//	@securityDefinitions.apikey	ApiKeyAuth
//	@in							header
//	@name						X-API-Key
package main

//go:generate swag init -g cmd/app/main.go -d ../../ -o ../../docs

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/navelogic/rpgbot/internal/bootstrap"
	"github.com/navelogic/rpgbot/internal/config"
	"github.com/navelogic/rpgbot/internal/roll"
	"github.com/navelogic/rpgbot/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		// Keep running on stdout only
		bootstrap.InitLogger(cfg, os.Stdout)
		slog.Warn("File logging disabled", "error", err)
	}

	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		slog.Error("Environment validation failed", "error", err)
		os.Exit(1)
	}
	for _, w := range warnings {
		slog.Warn("Configuration warning", "warning", w)
	}

	ctx, cancelEvents := context.WithCancel(context.Background())
	defer cancelEvents()
	events := bootstrap.InitializeEventSystem(ctx, cfg)

	rollService := roll.NewService(
		bootstrap.NewDiceSource(cfg),
		roll.CacheConfig{Size: cfg.RollCacheSize, TTL: cfg.RollCacheTTL},
		events.Bus,
	)

	srv := server.NewServer(cfg, rollService, events.Hub)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop
	slog.Info("Received shutdown signal", "signal", sig.String())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:            srv,
		StreamerbotAlerts: events.StreamerbotAlerts,
		Streamerbot:       events.Streamerbot,
		LogFile:           logFile,
	})
}

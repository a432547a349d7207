package bootstrap

import (
	"context"
	"log/slog"
	"os"

	"github.com/navelogic/rpgbot/internal/server"
	"github.com/navelogic/rpgbot/internal/streamerbot"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server            *server.Server
	StreamerbotAlerts *streamerbot.Subscriber
	Streamerbot       *streamerbot.Client
	LogFile           *os.File
}

// GracefulShutdown stops the HTTP server (which ends open roll streams
// first), flushes queued Streamer.bot alerts and disconnects once no more
// rolls can arrive, and then closes the session log. Errors are logged but do not stop
// the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.StreamerbotAlerts != nil {
		components.StreamerbotAlerts.Stop()
	}

	if components.Streamerbot != nil {
		slog.Info(LogMsgStoppingStreamerbot)
		components.Streamerbot.Stop()
	}

	slog.Info(LogMsgServerStopped)

	if components.LogFile != nil {
		slog.Debug(LogMsgClosingLogFile, "file", components.LogFile.Name())
		_ = components.LogFile.Close()
	}
}

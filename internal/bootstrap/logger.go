package bootstrap

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/navelogic/rpgbot/internal/config"
	"github.com/navelogic/rpgbot/internal/logger"
)

// SetupLogger initializes the application logger with file and stdout output.
// It creates the log directory, cleans up old logs and installs the slog
// default through logger.InitLoggerWithWriter so every record carries the
// service attributes. Returns the log file handle (caller must close).
func SetupLogger(cfg *config.Config) (*os.File, error) {
	if err := os.MkdirAll(cfg.LogDir, DirPermission); err != nil {
		return nil, fmt.Errorf("%s: %w", LogMsgFailedCreateLogsDir, err)
	}

	cleanupLogs(cfg.LogDir)

	timestamp := time.Now().Format(LogFileTimestampFormat)
	logFileName := filepath.Join(cfg.LogDir, fmt.Sprintf(LogFileNamePattern, timestamp))

	logFile, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, LogFilePermission)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", LogMsgFailedOpenLogFile, err)
	}

	InitLogger(cfg, io.MultiWriter(os.Stdout, logFile))

	slog.Info(LogMsgStartingRPGBot,
		"environment", cfg.Environment,
		"log_level", cfg.LogLevel,
		"log_format", cfg.LogFormat,
		"version", cfg.Version)

	slog.Debug(LogMsgConfigurationLoaded,
		"port", cfg.Port,
		"roll_cache_size", cfg.RollCacheSize,
		"roll_cache_ttl", cfg.RollCacheTTL,
		"secure_random", cfg.SecureRandom,
		"trusted_proxies", len(cfg.TrustedProxies))

	return logFile, nil
}

// InitLogger installs the default logger for cfg writing to w. The
// environment decides whether source locations are added.
func InitLogger(cfg *config.Config, w io.Writer) {
	loggerConfig := logger.ForEnvironment(cfg.Environment)
	loggerConfig.ServiceName = cfg.ServiceName
	loggerConfig.Version = cfg.Version
	if cfg.LogLevel != "" {
		loggerConfig.Level = cfg.LogLevel
	}
	if cfg.LogFormat != "" {
		loggerConfig.Format = cfg.LogFormat
	}
	logger.InitLoggerWithWriter(loggerConfig, w)

	slog.Info(LogMsgLoggingInitialized, "level", loggerConfig.LogLevel())
}

// cleanupLogs removes the oldest session logs once LogFileRetentionLimit is
// reached, keeping LogFileRetentionCount.
func cleanupLogs(logDir string) {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		return
	}

	var logFiles []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), LogFileExtension) {
			logFiles = append(logFiles, entry.Name())
		}
	}

	if len(logFiles) < LogFileRetentionLimit {
		return
	}

	// Timestamped names sort chronologically
	slices.Sort(logFiles)
	for _, name := range logFiles[:len(logFiles)-LogFileRetentionCount] {
		if err := os.Remove(filepath.Join(logDir, name)); err != nil {
			slog.Warn(LogMsgFailedDeleteOldLog, "file", name, "error", err)
		}
	}
}

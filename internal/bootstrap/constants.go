package bootstrap

// Session log files: one per process start, named so they sort by time
const (
	DirPermission     = 0755
	LogFilePermission = 0666

	LogFileTimestampFormat = "2006-01-02_15-04-05"
	LogFileNamePattern     = "session_%s.log"
	LogFileExtension       = ".log"

	// Once LogFileRetentionLimit files exist, the oldest are pruned down to
	// LogFileRetentionCount before the new session file is opened
	LogFileRetentionLimit = 10
	LogFileRetentionCount = 9
)

const (
	DiceSourceSecure  = "crypto/rand"
	DiceSourceDefault = "math/rand"
)

const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingRPGBot      = "Starting RPGBot"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgDiceSourceSelected  = "Dice source selected"
	LogMsgFailedCreateLogsDir = "failed to create logs directory"
	LogMsgFailedOpenLogFile   = "failed to open log file"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file"

	LogMsgEventSystemInitialized = "Event system initialized"
	LogMsgSSESubscriberReady     = "Roll feed subscribed to event bus"
	LogMsgStreamerbotReady       = "Streamer.bot alerts subscribed to event bus"

	LogMsgShuttingDownServer   = "Shutting down server"
	LogMsgServerStopped        = "Server stopped"
	LogMsgServerForcedShutdown = "Server forced to shutdown"
	LogMsgStoppingStreamerbot  = "Disconnecting from Streamer.bot"
	LogMsgClosingLogFile       = "Closing log file"
)

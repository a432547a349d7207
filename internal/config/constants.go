package config

import "time"

// Defaults applied when the variable is unset
const (
	DefaultPort            = "8080"
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "text"
	DefaultLogDir          = "logs"
	DefaultServiceName     = "rpgbot"
	DefaultVersion         = "dev"
	DefaultEnvironment     = "dev"
	DefaultMaxRequestBytes = 1 << 20 // 1 MB
	DefaultRollCacheSize   = 512
	DefaultRollCacheTTL    = 10 * time.Minute
	DefaultShutdownTimeout = 10 * time.Second

	DefaultStreamerbotCriticalSuccess = "RPGBot_CriticalSuccess"
	DefaultStreamerbotCriticalFailure = "RPGBot_CriticalFailure"
)

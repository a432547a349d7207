package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	LogDir      string
	ServiceName string
	Version     string
	Environment string
	APIKey      string // API key for authentication

	TrustedProxies  []string // Proxy IPs whose X-Forwarded-For is honoured
	MaxRequestBytes int64

	RollCacheSize   int
	RollCacheTTL    time.Duration
	SecureRandom    bool // Use crypto/rand for dice instead of math/rand
	ShutdownTimeout time.Duration

	// Streamer.bot alerts; disabled when StreamerbotURL is empty
	StreamerbotURL             string
	StreamerbotPassword        string
	StreamerbotCriticalSuccess string
	StreamerbotCriticalFailure string
	StreamerbotRollAction      string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFormat:   getEnv("LOG_FORMAT", DefaultLogFormat),
		LogDir:      getEnv("LOG_DIR", DefaultLogDir),
		ServiceName: getEnv("SERVICE_NAME", DefaultServiceName),
		Version:     getEnv("VERSION", DefaultVersion),
		Environment: getEnv("ENVIRONMENT", DefaultEnvironment),
		APIKey:      getEnv("API_KEY", ""),

		TrustedProxies:  getEnvAsList("TRUSTED_PROXIES"),
		MaxRequestBytes: int64(getEnvAsInt("MAX_REQUEST_BYTES", DefaultMaxRequestBytes)),

		RollCacheSize:   getEnvAsInt("ROLL_CACHE_SIZE", DefaultRollCacheSize),
		RollCacheTTL:    getEnvAsDuration("ROLL_CACHE_TTL", DefaultRollCacheTTL),
		SecureRandom:    getEnvAsBool("DICE_SECURE_RANDOM", false),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", DefaultShutdownTimeout),

		StreamerbotURL:             getEnv("STREAMERBOT_URL", ""),
		StreamerbotPassword:        getEnv("STREAMERBOT_PASSWORD", ""),
		StreamerbotCriticalSuccess: getEnv("STREAMERBOT_CRITICAL_SUCCESS_ACTION", DefaultStreamerbotCriticalSuccess),
		StreamerbotCriticalFailure: getEnv("STREAMERBOT_CRITICAL_FAILURE_ACTION", DefaultStreamerbotCriticalFailure),
		StreamerbotRollAction:      getEnv("STREAMERBOT_ROLL_ACTION", ""),
	}

	portStr := getEnv("PORT", DefaultPort)
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	// Validate API key is set
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAs parses key with parse, falling back to defaultValue when the
// variable is unset or malformed
func getEnvAs[T any](key string, defaultValue T, parse func(string) (T, error)) T {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	value, err := parse(strings.TrimSpace(raw))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	return getEnvAs(key, defaultValue, strconv.Atoi)
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	return getEnvAs(key, defaultValue, time.ParseDuration)
}

func getEnvAsBool(key string, defaultValue bool) bool {
	return getEnvAs(key, defaultValue, strconv.ParseBool)
}

// getEnvAsList splits a comma separated variable, dropping empty entries.
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

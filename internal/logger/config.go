package logger

import (
	"log/slog"
	"strings"
)

const (
	FormatJSON = "json"
	FormatText = "text"

	DefaultServiceName = "rpgbot"
	DefaultVersion     = "dev"
)

// Attribute keys stamped on every record
const (
	AttrKeyService     = "service"
	AttrKeyVersion     = "version"
	AttrKeyEnvironment = "environment"
	AttrKeyRequestID   = "request_id"
)

// Config selects the handler and the attributes every record carries
type Config struct {
	Level       string // debug, info, warn(ing), error
	Format      string // json or text
	ServiceName string
	Version     string
	Environment string
	AddSource   bool
}

// NewConfig creates a config from explicit values
func NewConfig(level, format, serviceName, version, environment string, addSource bool) Config {
	return Config{
		Level:       level,
		Format:      format,
		ServiceName: serviceName,
		Version:     version,
		Environment: environment,
		AddSource:   addSource,
	}
}

// DefaultConfig is used when nothing is configured: info level text logs
func DefaultConfig() Config {
	return NewConfig("info", FormatText, DefaultServiceName, DefaultVersion, "dev", false)
}

// ForEnvironment returns the defaults for env. Production logs JSON at info
// level; anything else logs text at debug level with source locations.
func ForEnvironment(env string) Config {
	switch strings.ToLower(env) {
	case "prod", "production":
		return NewConfig("info", FormatJSON, DefaultServiceName, DefaultVersion, env, false)
	default:
		return NewConfig("debug", FormatText, DefaultServiceName, DefaultVersion, env, true)
	}
}

// LogLevel parses Level, accepting "warning" for warn. Unknown values mean info.
func (c Config) LogLevel() slog.Level {
	name := strings.TrimSpace(c.Level)
	if strings.EqualFold(name, "warning") {
		return slog.LevelWarn
	}

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// IsJSON reports whether records are written as JSON
func (c Config) IsJSON() bool {
	return strings.EqualFold(c.Format, FormatJSON)
}

func (c Config) baseAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String(AttrKeyService, c.ServiceName),
		slog.String(AttrKeyVersion, c.Version),
		slog.String(AttrKeyEnvironment, c.Environment),
	}
}

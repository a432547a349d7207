package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
)

// ExpectedEnvSchemaVersion is bumped whenever .env gains or renames a variable
const ExpectedEnvSchemaVersion = "1.0"

// ExampleAPIKey is the placeholder shipped in .env.example
const ExampleAPIKey = "generate_with_openssl_rand_hex_32"

var (
	ErrSchemaVersionUnset    = errors.New("ENV_SCHEMA_VERSION is not set")
	ErrSchemaVersionMismatch = errors.New("ENV_SCHEMA_VERSION mismatch")
	ErrMissingEnv            = errors.New("missing required environment variables")
)

// RequiredEnvVars must be non-empty for the API server
var RequiredEnvVars = []string{
	"ENV_SCHEMA_VERSION",
	"API_KEY",
}

// DiscordRequiredEnvVars are needed by the Discord bot in addition to
// RequiredEnvVars
var DiscordRequiredEnvVars = []string{
	"DISCORD_TOKEN",
	"DISCORD_APP_ID",
	"API_URL",
}

// ValidateEnv checks the schema version and the server's required variables
func ValidateEnv() error {
	return validateEnv(RequiredEnvVars)
}

// ValidateDiscordEnv is ValidateEnv for the Discord bot process.
func ValidateDiscordEnv() error {
	return validateEnv(slices.Concat(RequiredEnvVars, DiscordRequiredEnvVars))
}

func validateEnv(required []string) error {
	switch got := os.Getenv("ENV_SCHEMA_VERSION"); got {
	case ExpectedEnvSchemaVersion:
	case "":
		return fmt.Errorf("%w (expected %s), add it to your .env", ErrSchemaVersionUnset, ExpectedEnvSchemaVersion)
	default:
		return fmt.Errorf("%w: expected %s, got %s, your .env may be outdated", ErrSchemaVersionMismatch, ExpectedEnvSchemaVersion, got)
	}

	missing := slices.DeleteFunc(slices.Clone(required), func(key string) bool {
		return os.Getenv(key) != ""
	})
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingEnv, strings.Join(missing, ", "))
	}
	return nil
}

// envWarnings flag settings that work but should not reach production
var envWarnings = []struct {
	applies func() bool
	message string
}{
	{
		applies: func() bool { return os.Getenv("API_KEY") == ExampleAPIKey },
		message: "API_KEY is still the example value, generate one with: openssl rand -hex 32",
	},
	{
		applies: func() bool { return os.Getenv("ENVIRONMENT") == "prod" && os.Getenv("DICE_SECURE_RANDOM") == "" },
		message: "DICE_SECURE_RANDOM is not set in prod, dice use math/rand",
	},
}

// ValidateEnvWithWarnings runs ValidateEnv and then lists non fatal issues
func ValidateEnvWithWarnings() ([]string, error) {
	if err := ValidateEnv(); err != nil {
		return nil, err
	}

	var warnings []string
	for _, w := range envWarnings {
		if w.applies() {
			warnings = append(warnings, w.message)
		}
	}
	return warnings, nil
}

// Command discord runs the Discord front end of the dice bot. It forwards
// slash commands to the API and posts critical rolls from the roll feed.
package main

import (
	"cmp"
	"errors"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/navelogic/rpgbot/internal/config"
	"github.com/navelogic/rpgbot/internal/discord"
	"github.com/navelogic/rpgbot/internal/logger"
)

const (
	defaultInternalPort = "8082"
	defaultAPIURL       = "http://localhost:8080"
)

func main() {
	_ = godotenv.Load()
	setupLogger()

	if err := run(); err != nil {
		slog.Error("Discord bot stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.ValidateDiscordEnv(); err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	bot, err := discord.New(cfg)
	if err != nil {
		return err
	}

	probes := discord.NewHTTPServer(env("DISCORD_WEBHOOK_PORT", defaultInternalPort), bot)
	probes.Start()
	defer probes.Stop()

	bot.Registry.RegisterAll(discord.DefaultCommands())
	force := envBool("DISCORD_FORCE_COMMAND_UPDATE", false)
	if err := bot.RegisterCommands(bot.Registry, force); err != nil {
		// Commands registered by an earlier run keep working
		slog.Error("Failed to register commands", "error", err, "force", force)
	}

	return bot.Run()
}

// setupLogger applies the environment's defaults, then LOG_LEVEL and
// LOG_FORMAT
func setupLogger() {
	cfg := logger.ForEnvironment(env("ENVIRONMENT", "dev"))
	cfg.ServiceName = "rpgbot-discord"
	cfg.Version = env("VERSION", logger.DefaultVersion)
	cfg.Level = env("LOG_LEVEL", cfg.Level)
	cfg.Format = env("LOG_FORMAT", cfg.Format)
	logger.InitLogger(cfg)
}

func loadConfig() (discord.Config, error) {
	cfg := discord.Config{
		Token:                 os.Getenv("DISCORD_TOKEN"),
		AppID:                 os.Getenv("DISCORD_APP_ID"),
		APIURL:                env("API_URL", defaultAPIURL),
		APIKey:                os.Getenv("API_KEY"),
		NotificationChannelID: os.Getenv("DISCORD_NOTIFICATION_CHANNEL_ID"),
		MessageCommands:       envBool("DISCORD_MESSAGE_COMMANDS", true),
	}
	switch {
	case cfg.Token == "":
		return cfg, errors.New("DISCORD_TOKEN is required")
	case cfg.AppID == "":
		return cfg, errors.New("DISCORD_APP_ID is required")
	}

	if cfg.APIKey == "" {
		slog.Warn("API_KEY not set, API calls will be rejected")
	}
	slog.Info("Discord bot configured",
		"api_url", cfg.APIURL,
		"notification_channel", cfg.NotificationChannelID,
		"message_commands", cfg.MessageCommands)
	return cfg, nil
}

func env(key, fallback string) string {
	return cmp.Or(os.Getenv(key), fallback)
}

func envBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
)

// Bot is the Discord front end. Rolls are evaluated by the API through
// Client; the bot only relays them.
type Bot struct {
	Session  *discordgo.Session
	Client   *APIClient
	AppID    string
	Registry *CommandRegistry

	notificationChannelID string
	messageCommands       bool
	feed                  *SSEClient
}

// Config holds the bot configuration
type Config struct {
	Token  string
	AppID  string
	APIURL string
	APIKey string

	// NotificationChannelID receives critical roll announcements. Empty
	// disables the roll feed subscription.
	NotificationChannelID string

	// MessageCommands answers "/r 2d6" typed as a plain channel message.
	// Requires the privileged message content intent.
	MessageCommands bool
}

func New(cfg Config) (*Bot, error) {
	s, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}
	s.Identify.Intents = intents(cfg.MessageCommands)

	return &Bot{
		Session:               s,
		Client:                NewAPIClient(cfg.APIURL, cfg.APIKey),
		AppID:                 cfg.AppID,
		Registry:              NewCommandRegistry(),
		notificationChannelID: cfg.NotificationChannelID,
		messageCommands:       cfg.MessageCommands,
	}, nil
}

func intents(messageCommands bool) discordgo.Intent {
	if !messageCommands {
		return discordgo.IntentsGuilds
	}
	return discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsMessageContent
}

// ErrNoNotificationChannel is returned by SendNotification when the bot
// was configured without DISCORD_NOTIFICATION_CHANNEL_ID
var ErrNoNotificationChannel = errors.New("no notification channel configured")

// Start opens the gateway connection and, when a notification channel is
// configured, follows the API's critical roll feed.
func (b *Bot) Start(ctx context.Context) error {
	b.Session.AddHandler(b.ready)
	b.Session.AddHandler(b.interactionCreate)
	if b.messageCommands {
		b.Session.AddHandler(b.messageCreate)
	}
	if err := b.Session.Open(); err != nil {
		return fmt.Errorf("error opening connection: %w", err)
	}

	if b.notificationChannelID != "" {
		b.feed = NewSSEClient(b.Client.BaseURL, b.Client.APIKey, []string{SSEEventTypeCritical})
		NewCriticalNotifier(b.Session, b.notificationChannelID).RegisterHandlers(b.feed)
		b.feed.Start(ctx)
	}

	slog.Info("Discord bot running",
		"app_id", b.AppID,
		"critical_feed", b.feed != nil,
		"message_commands", b.messageCommands)
	return nil
}

// Stop ends the roll feed, then the gateway session
func (b *Bot) Stop() {
	if b.feed != nil {
		b.feed.Stop()
	}
	if err := b.Session.Close(); err != nil {
		slog.Warn("Failed to close Discord session", "error", err)
	}
}

// Run blocks until SIGINT or SIGTERM
func (b *Bot) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := b.Start(ctx); err != nil {
		return err
	}
	defer b.Stop()

	<-ctx.Done()
	slog.Info("Shutting down Discord bot")
	return nil
}

// SendNotification posts an embed to the notification channel
func (b *Bot) SendNotification(embed *discordgo.MessageEmbed) error {
	if b.notificationChannelID == "" {
		return ErrNoNotificationChannel
	}
	_, err := b.Session.ChannelMessageSendEmbed(b.notificationChannelID, embed)
	return err
}

// IsConnected reports whether the gateway session is ready
func (b *Bot) IsConnected() bool {
	return b.Session != nil && b.Session.DataReady
}

func (b *Bot) ready(s *discordgo.Session, r *discordgo.Ready) {
	slog.Info("Bot is ready", "user", r.User.Username)
}

func (b *Bot) interactionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if b.Registry != nil {
		b.Registry.Handle(s, i, b.Client)
	}
}

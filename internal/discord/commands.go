package discord

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/navelogic/rpgbot/internal/metrics"
)

// CommandHandler handles a slash command
type CommandHandler func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient)

// CommandFactory creates a Discord command and its handler
type CommandFactory func() (*discordgo.ApplicationCommand, CommandHandler)

// CommandRegistry holds the registered commands
type CommandRegistry struct {
	Commands map[string]*discordgo.ApplicationCommand
	Handlers map[string]CommandHandler
}

// NewCommandRegistry creates a new registry
func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{
		Commands: make(map[string]*discordgo.ApplicationCommand),
		Handlers: make(map[string]CommandHandler),
	}
}

// Register adds a command to the registry
func (r *CommandRegistry) Register(cmd *discordgo.ApplicationCommand, handler CommandHandler) {
	r.Commands[cmd.Name] = cmd
	r.Handlers[cmd.Name] = handler
}

// RegisterAll builds and registers each factory's command
func (r *CommandRegistry) RegisterAll(factories []CommandFactory) {
	for _, build := range factories {
		r.Register(build())
	}
}

// Handle processes an interaction
func (r *CommandRegistry) Handle(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	name := i.ApplicationCommandData().Name
	h, ok := r.Handlers[name]
	if !ok {
		slog.Warn("Unknown slash command", "command", name)
		return
	}
	RecordCommand()
	metrics.DiscordCommands.WithLabelValues(name).Inc()
	h(s, i, client)
}

// DefaultCommands lists every slash command the bot offers
func DefaultCommands() []CommandFactory {
	return []CommandFactory{
		RollCommand,
		RolarCommand,
		StartCommand,
		ComandosCommand,
		PingCommand,
	}
}

// RegisterCommands pushes the registry to Discord. The bulk overwrite is
// rate limited, so it is skipped when Discord already holds the same set
// unless forceUpdate is set.
func (b *Bot) RegisterCommands(registry *CommandRegistry, forceUpdate bool) error {
	current, err := b.Session.ApplicationCommands(b.AppID, "")
	if err != nil {
		return fmt.Errorf("failed to fetch existing commands: %w", err)
	}

	desired := slices.SortedFunc(maps.Values(registry.Commands), byName)
	if !forceUpdate && commandsEqual(current, desired) {
		slog.Info("Slash commands already up to date", "count", len(current))
		return nil
	}

	if _, err := b.Session.ApplicationCommandBulkOverwrite(b.AppID, "", desired); err != nil {
		return fmt.Errorf("failed to update commands: %w", err)
	}
	slog.Info("Slash commands synced",
		"force", forceUpdate,
		"previous", len(current),
		"count", len(desired))
	return nil
}

func byName(a, b *discordgo.ApplicationCommand) int {
	return strings.Compare(a.Name, b.Name)
}

// commandsEqual compares two command sets regardless of order
func commandsEqual(existing, desired []*discordgo.ApplicationCommand) bool {
	return slices.EqualFunc(
		slices.SortedFunc(slices.Values(existing), byName),
		slices.SortedFunc(slices.Values(desired), byName),
		commandEqual)
}

// commandEqual compares only the fields we set. Discord fills in IDs and
// versions on its side.
func commandEqual(a, b *discordgo.ApplicationCommand) bool {
	if a.Name != b.Name || a.Description != b.Description {
		return false
	}
	pa, pb := a.DefaultMemberPermissions, b.DefaultMemberPermissions
	if (pa == nil) != (pb == nil) || (pa != nil && *pa != *pb) {
		return false
	}
	return slices.EqualFunc(a.Options, b.Options, optionEqual)
}

func optionEqual(a, b *discordgo.ApplicationCommandOption) bool {
	return a.Type == b.Type &&
		a.Name == b.Name &&
		a.Description == b.Description &&
		a.Required == b.Required &&
		slices.EqualFunc(a.Choices, b.Choices, func(x, y *discordgo.ApplicationCommandOptionChoice) bool {
			return x.Name == y.Name && x.Value == y.Value
		})
}

// deferResponse acknowledges the interaction so slow API calls do not hit
// Discord's three second limit. Returns false if deferral failed.
func deferResponse(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}); err != nil {
		slog.Error("Failed to send deferred response", "error", err)
		return false
	}
	return true
}

// respondText answers an interaction immediately with plain content
func respondText(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
		},
	}); err != nil {
		slog.Error("Failed to respond to interaction", "error", err)
	}
}

// editResponse replaces a deferred response with content
func editResponse(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content: &content,
	}); err != nil {
		slog.Error("Failed to edit interaction response", "error", err)
	}
}

// getInteractionUser returns the invoking user in guilds and DMs alike
func getInteractionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

// displayName addresses a Discord user the way the chat replies do
func displayName(u *discordgo.User) string {
	if u == nil {
		return ""
	}
	return "@" + u.Username
}

// optionString returns the named string option, or "" when absent
func optionString(i *discordgo.InteractionCreate, name string) string {
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == name && opt.Type == discordgo.ApplicationCommandOptionString {
			return opt.StringValue()
		}
	}
	return ""
}

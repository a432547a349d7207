package discord

import (
	"context"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/navelogic/rpgbot/internal/dice"
	"github.com/navelogic/rpgbot/internal/domain"
	"github.com/navelogic/rpgbot/internal/metrics"
)

// textCommandReply answers a plain channel message written in the chat
// syntax ("/r 2d6+1", "/rolar d20", "/comandos"). ok is false for messages
// that are not commands, which the bot ignores.
func textCommandReply(ctx context.Context, client *APIClient, username, content string) (reply string, command string, ok bool) {
	fields := strings.Fields(content)
	if len(fields) == 0 {
		return "", "", false
	}

	keyword := strings.ToLower(fields[0])
	// "/r@RPGBot" style mentions address the bot explicitly
	if at := strings.IndexByte(keyword, '@'); at > 0 {
		keyword = keyword[:at]
	}

	switch {
	case dice.IsRollKeyword(keyword):
		return rollReply(ctx, client, username, "@"+username, content), strings.TrimPrefix(keyword, "/"), true
	case keyword == textCommandStart:
		return domain.StartMessage, CommandNameStart, true
	case keyword == textCommandComandos || keyword == textCommandComandosAlt:
		return domain.CommandsMessage, CommandNameComandos, true
	default:
		return "", "", false
	}
}

func (b *Bot) messageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}

	reply, command, ok := textCommandReply(context.Background(), b.Client, m.Author.Username, m.Content)
	if !ok {
		return
	}
	RecordCommand()
	metrics.DiscordCommands.WithLabelValues(command).Inc()

	if _, err := s.ChannelMessageSendReply(m.ChannelID, reply, m.Reference()); err != nil {
		slog.Error("Failed to reply to text command", "channel_id", m.ChannelID, "error", err)
	}
}

package discord

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/navelogic/rpgbot/internal/domain"
	"github.com/navelogic/rpgbot/internal/sse"
)

// CriticalNotifier announces natural 20s and natural 1s from every platform
// in a Discord channel
type CriticalNotifier struct {
	session            *discordgo.Session
	notificationChanID string
}

// NewCriticalNotifier creates a new critical roll notifier
func NewCriticalNotifier(session *discordgo.Session, notificationChanID string) *CriticalNotifier {
	return &CriticalNotifier{
		session:            session,
		notificationChanID: notificationChanID,
	}
}

// RegisterHandlers registers all SSE event handlers with the client
func (n *CriticalNotifier) RegisterHandlers(client *SSEClient) {
	client.OnEvent(SSEEventTypeCritical, n.handleCritical)
}

func (n *CriticalNotifier) handleCritical(event SSEEvent) error {
	if n.notificationChanID == "" {
		return nil
	}

	var payload sse.RollPayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		slog.Warn(sseLogMsgParseError, "error", err, "event_type", event.Type)
		return nil
	}

	embed := criticalEmbed(payload, time.Unix(event.Timestamp, 0))
	if _, err := n.session.ChannelMessageSendEmbed(n.notificationChanID, embed); err != nil {
		slog.Error(sseLogMsgNotificationError, "error", err, "event_type", event.Type)
		return fmt.Errorf("failed to send critical notification: %w", err)
	}

	slog.Info(sseLogMsgNotificationSent,
		"event_type", event.Type,
		"username", payload.Username,
		"critical", payload.Critical)
	return nil
}

// criticalEmbed renders a critical roll; green for a natural 20, red for a natural 1
func criticalEmbed(payload sse.RollPayload, at time.Time) *discordgo.MessageEmbed {
	color := ColorCriticalSuccess
	if payload.Critical == domain.CriticalFailure {
		color = ColorCriticalFailure
	}

	return &discordgo.MessageEmbed{
		Title:       MsgCriticalTitle,
		Description: fmt.Sprintf("**%s** rolou `%s`\n%s = **%d**\n%s", payload.Username, payload.Expression, payload.Visual, payload.Total, payload.CriticalMessage),
		Color:       color,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Plataforma",
				Value:  payload.Platform,
				Inline: true,
			},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: FooterRPGBot,
		},
		Timestamp: at.Format(time.RFC3339),
	}
}

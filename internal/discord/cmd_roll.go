package discord

import (
	"context"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// RollCommand returns the /r command definition and handler
func RollCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	return newRollCommand(CommandNameRoll, "Rola dados, ex: 2d20m1+3")
}

// RolarCommand returns /rolar, the long form of /r
func RolarCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	return newRollCommand(CommandNameRolar, "Rola dados, ex: 4d6sm1")
}

func newRollCommand(name, description string) (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        name,
		Description: description,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        OptionExpression,
				Description: "Expressão de dados, ex: 2d20m1 + 3",
				Required:    true,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		expr := strings.TrimSpace(optionString(i, OptionExpression))
		if expr == "" {
			respondText(s, i, MsgMissingExpr)
			return
		}

		if !deferResponse(s, i) {
			return
		}

		user := getInteractionUser(i)
		if user == nil {
			editResponse(s, i, MsgGenericError)
			return
		}
		editResponse(s, i, rollReply(context.Background(), client, user.Username, displayName(user), "/"+name+" "+expr))
	}

	return cmd, handler
}

// rollReply evaluates command through the API and renders the answer,
// successful or not.
func rollReply(ctx context.Context, client *APIClient, username, display, command string) string {
	resp, err := client.Roll(ctx, username, command)
	if err != nil {
		slog.Warn("Roll failed", "username", username, "command", command, "error", err)
		return FormatRollError(display, err)
	}
	return FormatRollMessage(display, resp)
}

package discord

import (
	"github.com/bwmarrin/discordgo"

	"github.com/navelogic/rpgbot/internal/domain"
)

// StartCommand greets the user and points at the command list
func StartCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        CommandNameStart,
		Description: "Apresenta o bot",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, _ *APIClient) {
		respondText(s, i, domain.StartMessage)
	}

	return cmd, handler
}

// ComandosCommand lists the dice syntax
func ComandosCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        CommandNameComandos,
		Description: "Lista os comandos e a sintaxe de dados",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, _ *APIClient) {
		respondText(s, i, domain.CommandsMessage)
	}

	return cmd, handler
}

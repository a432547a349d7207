package discord

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
)

// pingAPITimeout keeps /ping inside Discord's three second reply window
const pingAPITimeout = time.Second

// PingCommand answers with the gateway latency and whether the dice API is up
func PingCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        CommandNamePing,
		Description: "Verifica se o bot e a API de dados estão respondendo",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		respondText(s, i, pingReport(s.HeartbeatLatency(), apiLatency(client)))
	}
	return cmd, handler
}

// apiLatency times a health check; negative means the API did not answer
func apiLatency(client *APIClient) time.Duration {
	if client == nil {
		return -1
	}
	ctx, cancel := context.WithTimeout(context.Background(), pingAPITimeout)
	defer cancel()

	start := time.Now()
	if err := client.HealthCheck(ctx); err != nil {
		return -1
	}
	return time.Since(start)
}

func pingReport(gateway, api time.Duration) string {
	apiStatus := MsgAPIUnavailable
	if api >= 0 {
		apiStatus = fmt.Sprintf("%dms", api.Milliseconds())
	}
	return fmt.Sprintf("%s\nGateway: %dms\nAPI: %s", MsgPong, max(gateway, 0).Milliseconds(), apiStatus)
}

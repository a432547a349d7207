package discord

import "time"

// API client configuration
const (
	apiRequestTimeout = 10 * time.Second
	apiMaxRetries     = 3
	apiRetryDelay     = 500 * time.Millisecond
	apiHealthTimeout  = 2 * time.Second
)

// Slash command names
const (
	CommandNameRoll     = "r"
	CommandNameRolar    = "rolar"
	CommandNameStart    = "start"
	CommandNameComandos = "comandos"
	CommandNamePing     = "ping"

	// OptionExpression is the dice expression argument of /r and /rolar
	OptionExpression = "expressao"
)

// Text commands understood in plain channel messages
const (
	textCommandStart       = "/start"
	textCommandComandos    = "/comandos"
	textCommandComandosAlt = "/c"
)

// Embed colors
const (
	ColorRoll            = 0x3498db
	ColorCriticalSuccess = 0x2ecc71
	ColorCriticalFailure = 0xe74c3c
	ColorAnnouncement    = 0x00FF00
)

// FooterRPGBot is the standard footer for bot embeds
const FooterRPGBot = "RPGBot"

package discord

import (
	"fmt"
	"strings"

	"github.com/navelogic/rpgbot/internal/domain"
	"github.com/navelogic/rpgbot/internal/handler"
)

// Friendly message constants for Discord responses
const (
	MsgRollFailed      = "❌ Não foi possível rolar os dados agora. Tente novamente em instantes."
	MsgMissingExpr     = "Informe uma expressão, por exemplo: 2d20m1+3"
	MsgPong            = "Pong! 🏓"
	MsgAPIUnavailable  = "indisponível"
	MsgGenericError    = "❌ Algo deu errado."
	MsgCriticalTitle   = "🎲 Rolagem crítica!"
	MsgAnnouncementFtr = "Aviso do sistema"
)

// FormatRollMessage renders a roll for Discord: the total in bold, the
// breakdown below it and the critical annotation last.
func FormatRollMessage(displayName string, resp *handler.RollResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🎲 %s rolou:\n**%d**\n\n%s", displayName, resp.Total, resp.Visual)
	if resp.CriticalMessage != "" {
		b.WriteString("\n")
		b.WriteString(resp.CriticalMessage)
	}
	return b.String()
}

// FormatRollError renders a failed roll the same way the chat reply does
func FormatRollError(displayName string, err error) string {
	return domain.FormatErrorMessage(displayName, userMessage(err))
}

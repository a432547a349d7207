package domain

import (
	"fmt"
	"strings"
)

// DisplayName picks how a chat user is addressed: "@username" when the
// platform exposes one, otherwise the plain name.
func DisplayName(username, name string) string {
	if username = strings.TrimPrefix(strings.TrimSpace(username), "@"); username != "" {
		return "@" + username
	}
	return name
}

// FormatReply renders a roll as the plain-text chat reply
// "<user> rolou: \n<visual> = <total>", with the critical annotation on a
// line of its own when there is one.
func FormatReply(displayName string, result *RollResult) string {
	reply := fmt.Sprintf("%s rolou: \n%s = %d", displayName, result.Visual, result.Total)
	if result.CriticalMessage != "" {
		reply += "\n" + result.CriticalMessage
	}
	return reply
}

// FormatErrorReply renders a failed command. Evaluation errors carry their own
// message; anything else is reported generically.
func FormatErrorReply(displayName string, err error) string {
	return FormatErrorMessage(displayName, UserMessage(err))
}

// FormatErrorMessage renders a failure whose user-facing text is already known,
// e.g. one relayed from the API.
func FormatErrorMessage(displayName, message string) string {
	return fmt.Sprintf("%s, aconteceu um erro interno...\n%s", displayName, message)
}

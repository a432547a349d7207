package discord

import "time"

// Roll feed reconnection
const (
	sseInitialBackoff    = time.Second
	sseMaxBackoff        = 30 * time.Second
	sseBackoffMultiplier = 2.0

	// sseBufferSize caps a single stream line
	sseBufferSize = 64 * 1024

	sseStreamPath = "/api/v1/rolls/stream"
)

// Roll feed event types
const (
	SSEEventTypeRoll     = "roll"
	SSEEventTypeCritical = "roll.critical"

	sseEventTypeConnected = "connected"
	sseEventTypeKeepalive = "keepalive"
)

const (
	sseLogMsgClientConnected   = "Following roll feed"
	sseLogMsgClientStopped     = "Stopped following roll feed"
	sseLogMsgConnectionFailed  = "Roll feed connection lost"
	sseLogMsgParseError        = "Failed to parse roll feed event"
	sseLogMsgHandlerError      = "Roll feed handler failed"
	sseLogMsgNotificationSent  = "Critical roll announced"
	sseLogMsgNotificationError = "Failed to announce critical roll"
)

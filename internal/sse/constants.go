package sse

import "time"

const (
	// BroadcastBufferSize bounds events waiting for fan-out
	BroadcastBufferSize = 100

	// ClientEventBuffer bounds events waiting for one slow connection
	ClientEventBuffer = 50
)

const (
	KeepaliveInterval = 30 * time.Second

	// ReconnectHint is sent as the "retry:" field so browser overlays back
	// off before reconnecting
	ReconnectHint = 3 * time.Second
)

// Feed event types
const (
	// EventTypeRoll carries every evaluated roll
	EventTypeRoll = "roll"

	// EventTypeCritical repeats a roll with a natural 20 or natural 1
	EventTypeCritical = "roll.critical"

	EventTypeConnected = "connected"
	EventTypeKeepalive = "keepalive"
)

const ErrMsgStreamingUnsupported = "streaming not supported"

// Log messages
const (
	LogMsgClientConnected    = "Roll feed client connected"
	LogMsgClientDisconnected = "Roll feed client disconnected"
	LogMsgEventBroadcast     = "Broadcasting roll feed event"
	LogMsgEventDropped       = "Roll feed queue full, event dropped"
	LogMsgWriteError         = "Failed to write roll feed event"
	LogMsgInvalidPayload     = "Invalid roll event payload"
)

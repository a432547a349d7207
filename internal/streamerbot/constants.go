package streamerbot

import "time"

// DefaultURL is where Streamer.bot's WebSocket server listens out of the box
const DefaultURL = "ws://127.0.0.1:8080/"

// Connection tuning
const (
	DefaultReconnectDelay = time.Second
	MaxReconnectDelay     = 30 * time.Second
	ReconnectMultiplier   = 2.0

	// MaxConsecutiveFailures failed dials put the client to sleep until the
	// next DoAction
	MaxConsecutiveFailures = 10

	HandshakeTimeout = 2 * time.Second
	WriteTimeout     = 10 * time.Second

	ReadBufferSize  = 4096
	WriteBufferSize = 4096
)

const (
	RequestDoAction     = "DoAction"
	RequestAuthenticate = "Authenticate"

	StatusOK    = "ok"
	StatusError = "error"
)

// Actions the bot triggers. Streamers bind them to alerts or sounds inside
// Streamer.bot.
const (
	ActionCriticalSuccess = "RPGBot_CriticalSuccess"
	ActionCriticalFailure = "RPGBot_CriticalFailure"
	ActionRoll            = "RPGBot_Roll"
)

// Arguments passed with every action
const (
	ArgUsername   = "username"
	ArgPlatform   = "platform"
	ArgExpression = "expression"
	ArgTotal      = "total"
	ArgVisual     = "visual"
	ArgMessage    = "message"
)

const (
	ErrMsgDormant      = "Streamer.bot is dormant, reconnection triggered"
	ErrMsgNotConnected = "not connected to Streamer.bot"
	ErrMsgNoConnection = "no connection"
)

const (
	LogMsgConnecting    = "Connecting to Streamer.bot"
	LogMsgConnected     = "Connected to Streamer.bot"
	LogMsgReconnecting  = "Streamer.bot connection failed, retrying"
	LogMsgRestored      = "Streamer.bot connection restored"
	LogMsgAuthRequired  = "Streamer.bot requires authentication"
	LogMsgAuthSuccess   = "Authenticated with Streamer.bot"
	LogMsgSendingAction = "Sending Streamer.bot action"
	LogMsgActionSent    = "Streamer.bot action sent"
	LogMsgActionFailed  = "Streamer.bot action failed"
	LogMsgReadError     = "Streamer.bot connection read failed"
	LogMsgClientStopped = "Streamer.bot client stopped"
	LogMsgEventReceived = "Forwarding roll to Streamer.bot"
	LogMsgGivingUp      = "Streamer.bot unreachable, going dormant until the next roll"
	LogMsgWakingUp      = "Streamer.bot client waking up"
	LogMsgDormantRetry  = "Streamer.bot dormant, waking it for this roll"
	LogMsgSubscribed    = "Streamer.bot subscriber registered"
	LogMsgQueueFull     = "Streamer.bot action queue full, dropping roll"
)

package handler

// Client-facing error text. Internal error details never reach the body.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	ErrMsgGatherMetricsFailed = "Failed to gather metrics"
	ErrMsgInvalidPayloadJSON  = "Invalid payload JSON"
)

const (
	MsgCacheCleared     = "Expression cache cleared"
	MsgEventBroadcasted = "Event broadcasted successfully"
)

const (
	LogMsgDecodeFailed     = "Failed to decode request body"
	LogMsgValidationFailed = "Request failed validation"
	LogMsgReadinessFailed  = "Readiness check failed"
	LogMsgEncodeFailed     = "Failed to encode JSON response"
	LogMsgWriteFailed      = "Failed to write response"
)

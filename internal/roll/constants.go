package roll

import "time"

// Cache defaults
const (
	DefaultCacheSize = 512
	DefaultCacheTTL  = 10 * time.Minute
)

const healthCheckExpression = "1d1"

// Log messages
const (
	LogMsgRollEvaluated = "Roll evaluated"
	LogMsgRollRejected  = "Roll rejected"
	LogMsgRollFailed    = "Roll failed with unexpected error"
	LogMsgCacheCleared  = "Expression cache cleared"
	LogMsgPublishFailed = "Failed to publish roll event"
)

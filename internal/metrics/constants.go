package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Dice metric names
const (
	MetricNameRollsTotal      = "dice_rolls_total"
	MetricNameRollErrors      = "dice_roll_errors_total"
	MetricNameDiceSampled     = "dice_sampled_total"
	MetricNameCriticals       = "dice_criticals_total"
	MetricNameRollDuration    = "dice_roll_duration_seconds"
	MetricNameExpressionCache = "dice_expression_cache_total"
	MetricNameDiscordCommands = "discord_commands_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Dice metric help text
const (
	HelpTextRollsTotal      = "Total number of successfully evaluated roll commands"
	HelpTextRollErrors      = "Total number of rejected roll commands by error kind"
	HelpTextDiceSampled     = "Total number of individual dice rolled"
	HelpTextCriticals       = "Total number of critical d20 results"
	HelpTextRollDuration    = "Roll evaluation latency in seconds"
	HelpTextExpressionCache = "Expression cache lookups by outcome"
	HelpTextDiscordCommands = "Total number of Discord commands received"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelPlatform = "platform"
	LabelKind     = "kind"
	LabelType     = "type"
	LabelOutcome  = "outcome"
	LabelCommand  = "command"
)

// Cache outcome label values
const (
	CacheOutcomeHit  = "hit"
	CacheOutcomeMiss = "miss"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds. These buckets range from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// RollLatencyBuckets covers evaluation times from 1µs to 50ms; a 1000 die
// group sits near the top.
var RollLatencyBuckets = []float64{.000001, .00001, .0001, .0005, .001, .005, .01, .05}

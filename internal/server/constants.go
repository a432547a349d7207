package server

import "time"

// HTTP error messages for middleware responses
const (
	ErrMsgUnauthorized    = "Unauthorized"
	ErrMsgTooManyRequests = "Too Many Requests"
)

// Security alert message templates
const (
	SecurityAlertFailedAuth = "⚠️ SECURITY ALERT: Multiple failed authentication attempts"
	SecurityAlertHighRate   = "⚠️ SECURITY ALERT: Blocking high request rate"
)

// Log messages for server lifecycle and request handling
const (
	LogMsgServerStarting   = "Server starting"
	LogMsgRequestStarted   = "Request started"
	LogMsgRequestCompleted = "Request completed"
	LogMsgRequestHeaders   = "Request headers"
	LogMsgAuthFailed       = "Authentication failed"
)

// HTTP header names
const (
	HeaderAPIKey         = "X-API-Key"
	HeaderAuthorization  = "Authorization"
	HeaderForwardedFor   = "X-Forwarded-For"
	HeaderContentType    = "X-Content-Type-Options"
	HeaderFrameOptions   = "X-Frame-Options"
	HeaderXSSProtection  = "X-XSS-Protection"
	HeaderReferrerPolicy = "Referrer-Policy"
)

// Security header values
const (
	HeaderValueNoSniff              = "nosniff"
	HeaderValueSameOrigin           = "SAMEORIGIN"
	HeaderValueXSSBlock             = "1; mode=block"
	HeaderValueReferrerStrictOrigin = "strict-origin-when-cross-origin"
)

// Route paths
const (
	PathHealthz    = "/healthz"
	PathReadyz     = "/readyz"
	PathVersion    = "/version"
	PathMetrics    = "/metrics"
	PathSwagger    = "/swagger/"
	PathRollStream = "/api/v1/rolls/stream"
)

// PublicPaths are path prefixes that bypass authentication. The roll feed is
// public so stream overlays (browser sources) can subscribe without headers.
var PublicPaths = []string{
	PathSwagger,
	PathHealthz,
	PathReadyz,
	PathVersion,
	PathMetrics,
	PathRollStream,
}

// quietPaths are not logged per request; probes and scrapes would drown the log.
var quietPaths = []string{
	PathHealthz,
	PathReadyz,
	PathMetrics,
}

// Rate limiting window for the suspicious activity detector
const (
	DetectorWindow             = 5 * time.Minute
	DetectorMaxRequests        = 1000
	DetectorFailedAuthAlert    = 5
	DetectorHighRateLogEvery   = 100
	DefaultReadHeaderTimeout   = 5 * time.Second
	DefaultMaxRequestBodyBytes = 1 << 20
)

// Header redaction marker
const (
	RedactedValue = "[REDACTED]"
)

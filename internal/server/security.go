package server

import (
	"crypto/subtle"
	"log/slog"
	"net"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/navelogic/rpgbot/internal/logger"
)

// AuthMiddleware requires the X-API-Key header outside PublicPaths. Failed
// attempts are reported to detector.
func AuthMiddleware(apiKey string, trustedProxies []string, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	want := []byte(apiKey)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if hasPathPrefix(r.URL.Path, PublicPaths) {
				next.ServeHTTP(w, r)
				return
			}

			got := r.Header.Get(HeaderAPIKey)
			if subtle.ConstantTimeCompare([]byte(got), want) == 1 {
				next.ServeHTTP(w, r)
				return
			}

			ip := extractIP(r, trustedProxies)
			attempts := detector.RecordFailedAuth(ip)
			logger.FromContext(r.Context()).Warn(LogMsgAuthFailed,
				"ip", ip,
				"path", r.URL.Path,
				"has_key", got != "",
				"attempts", attempts)

			http.Error(w, ErrMsgUnauthorized, http.StatusUnauthorized)
		})
	}
}

// RequestSizeLimitMiddleware caps request bodies at maxBytes (1MB when not
// positive).
func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxRequestBodyBytes
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

type clientActivity struct {
	requests   int
	failedAuth int
}

// SuspiciousActivityDetector counts requests and failed logins per client IP
// over a fixed window. A client over DetectorMaxRequests is refused until
// the window rolls over.
type SuspiciousActivityDetector struct {
	mu          sync.Mutex
	window      time.Duration
	windowStart time.Time
	now         func() time.Time
	clients     map[string]*clientActivity
}

func NewSuspiciousActivityDetector() *SuspiciousActivityDetector {
	d := &SuspiciousActivityDetector{
		window: DetectorWindow,
		now:    time.Now,
	}
	d.rollover(d.now())
	return d
}

// client returns the counters for ip in the current window. Caller holds mu.
func (d *SuspiciousActivityDetector) client(ip string) *clientActivity {
	if now := d.now(); now.Sub(d.windowStart) > d.window {
		d.rollover(now)
	}
	c, ok := d.clients[ip]
	if !ok {
		c = &clientActivity{}
		d.clients[ip] = c
	}
	return c
}

func (d *SuspiciousActivityDetector) rollover(now time.Time) {
	d.clients = make(map[string]*clientActivity)
	d.windowStart = now
}

// RecordFailedAuth counts a rejected API key and returns the attempts so far
// in this window
func (d *SuspiciousActivityDetector) RecordFailedAuth(ip string) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	c := d.client(ip)
	c.failedAuth++
	if c.failedAuth >= DetectorFailedAuthAlert {
		slog.Warn(SecurityAlertFailedAuth, "ip", ip, "count", c.failedAuth)
	}
	return c.failedAuth
}

// RecordRequest counts a request and reports whether ip is still under the limit
func (d *SuspiciousActivityDetector) RecordRequest(ip string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	c := d.client(ip)
	c.requests++
	if c.requests <= DetectorMaxRequests {
		return true
	}
	if c.requests%DetectorHighRateLogEvery == 0 {
		slog.Warn(SecurityAlertHighRate, "ip", ip, "count_in_window", c.requests)
	}
	return false
}

// Activity returns the counters for ip in the current window
func (d *SuspiciousActivityDetector) Activity(ip string) (requests, failedAuth int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if c, ok := d.clients[ip]; ok {
		return c.requests, c.failedAuth
	}
	return 0, 0
}

// SecurityLoggingMiddleware refuses clients the detector has flagged for
// excessive traffic
func SecurityLoggingMiddleware(trustedProxies []string, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !detector.RecordRequest(extractIP(r, trustedProxies)) {
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// extractIP identifies the client. X-Forwarded-For is honored only when the
// direct peer is a trusted proxy, and then only its last hop, which the proxy
// itself appended.
func extractIP(r *http.Request, trustedProxies []string) string {
	peer, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		peer = r.RemoteAddr
	}
	if !slices.Contains(trustedProxies, peer) {
		return peer
	}

	forwarded := r.Header.Get(HeaderForwardedFor)
	if forwarded == "" {
		return peer
	}
	if i := strings.LastIndexByte(forwarded, ','); i >= 0 {
		forwarded = forwarded[i+1:]
	}
	return strings.TrimSpace(forwarded)
}

var securityHeaders = [][2]string{
	{HeaderContentType, HeaderValueNoSniff},
	{HeaderFrameOptions, HeaderValueSameOrigin},
	{HeaderXSSProtection, HeaderValueXSSBlock},
	{HeaderReferrerPolicy, HeaderValueReferrerStrictOrigin},
}

// SecurityHeadersMiddleware sets the browser hardening headers on every response
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			for _, kv := range securityHeaders {
				h.Set(kv[0], kv[1])
			}
			next.ServeHTTP(w, r)
		})
	}
}

func hasPathPrefix(path string, prefixes []string) bool {
	return slices.ContainsFunc(prefixes, func(p string) bool {
		return strings.HasPrefix(path, p)
	})
}

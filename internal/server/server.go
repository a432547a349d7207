package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/navelogic/rpgbot/internal/config"
	"github.com/navelogic/rpgbot/internal/handler"
	"github.com/navelogic/rpgbot/internal/logger"
	"github.com/navelogic/rpgbot/internal/metrics"
	"github.com/navelogic/rpgbot/internal/roll"
	"github.com/navelogic/rpgbot/internal/sse"
)

type Server struct {
	httpServer  *http.Server
	rollService roll.Service
	sseHub      *sse.Hub
}

// NewServer creates a new Server instance
func NewServer(cfg *config.Config, rollService roll.Service, sseHub *sse.Hub) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           newRouter(cfg, rollService, sseHub),
			ReadHeaderTimeout: DefaultReadHeaderTimeout,
		},
		rollService: rollService,
		sseHub:      sseHub,
	}
}

// newRouter builds the chi router with the full middleware stack
func newRouter(cfg *config.Config, rollService roll.Service, sseHub *sse.Hub) chi.Router {
	r := chi.NewRouter()

	// Outermost first. Auth and rate limiting share one detector so failed
	// keys and floods are counted per client together.
	detector := NewSuspiciousActivityDetector()

	r.Use(middleware.Recoverer)
	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(cfg.APIKey, cfg.TrustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(cfg.TrustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(cfg.MaxRequestBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Public, unversioned
	r.Get(PathHealthz, handler.HandleHealthz())
	r.Get(PathReadyz, handler.HandleReadyz(rollService))
	r.Get(PathVersion, handler.HandleVersion(cfg.ServiceName))
	r.Handle(PathMetrics, promhttp.Handler())
	r.Get(PathSwagger+"*", httpSwagger.WrapHandler)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/roll", func(r chi.Router) {
			r.Post("/", handler.HandleRoll(rollService))
			r.Post("/validate", handler.HandleValidateRoll(rollService))
			r.Get("/help", handler.HandleRollHelp())
		})

		// Live roll feed for stream overlays
		r.Get("/rolls/stream", sse.Handler(sseHub))

		r.Route("/admin", func(r chi.Router) {
			cache := handler.NewAdminCacheHandler(rollService)
			r.Get("/cache/stats", cache.HandleGetCacheStats)
			r.Delete("/cache", cache.HandleClearCache)

			r.Get("/metrics", handler.NewAdminMetricsHandler(sseHub).HandleGetMetrics)
			r.Post("/sse/broadcast", handler.NewAdminSSEHandler(sseHub).HandleBroadcast)
		})
	})

	return r
}

// redactHeaders copies h with credentials masked
func redactHeaders(h http.Header) http.Header {
	out := h.Clone()
	for _, name := range []string{HeaderAPIKey, HeaderAuthorization} {
		if out.Get(name) != "" {
			out.Set(name, RedactedValue)
		}
	}
	return out
}

// loggingMiddleware tags the request with an ID and logs start and end.
// Probe and scrape paths are skipped.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hasPathPrefix(r.URL.Path, quietPaths) {
			next.ServeHTTP(w, r)
			return
		}

		ctx := logger.WithRequestID(r.Context(), logger.GenerateRequestID())
		r = r.WithContext(ctx)
		log := logger.FromContext(ctx).With("method", r.Method, "path", r.URL.Path)

		log.Info(LogMsgRequestStarted,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())
		log.Debug(LogMsgRequestHeaders, "headers", redactHeaders(r.Header))

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		elapsed := time.Since(start)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		log.Info(LogMsgRequestCompleted,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration_ms", elapsed.Milliseconds())
	})
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully. The SSE hub is stopped first so open
// streams end and Shutdown does not wait on them until the deadline.
func (s *Server) Stop(ctx context.Context) error {
	if s.sseHub != nil {
		s.sseHub.Stop()
	}
	return s.httpServer.Shutdown(ctx)
}

package discord

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	internalReadHeaderTimeout = 5 * time.Second
	internalShutdownTimeout   = 5 * time.Second
)

// HTTPServer is the bot's internal endpoint for probes, scrapes and
// operator announcements. It is not meant to be exposed publicly.
type HTTPServer struct {
	server   *http.Server
	bot      *Bot
	validate *validator.Validate
}

// NewHTTPServer wires the internal routes on port
func NewHTTPServer(port string, bot *Bot) *HTTPServer {
	srv := &HTTPServer{
		bot:      bot,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/health", srv.HandleHealth)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	r.Post("/admin/announce", srv.handleAnnounce)

	srv.server = &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadHeaderTimeout: internalReadHeaderTimeout,
	}
	return srv
}

// Start serves in the background
func (s *HTTPServer) Start() {
	go func() {
		slog.Info("Starting Discord internal HTTP server", "addr", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Discord internal HTTP server failed", "error", err)
		}
	}()
}

// Stop drains in-flight requests
func (s *HTTPServer) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), internalShutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		slog.Error("Discord internal HTTP server shutdown failed", "error", err)
	}
}

// AnnounceRequest is posted by operators, e.g. to open a game session.
// Limits follow Discord's embed limits.
type AnnounceRequest struct {
	Title       string `json:"title" validate:"required,max=256"`
	Description string `json:"description" validate:"max=4096"`
	Color       int    `json:"color" validate:"min=0,max=16777215"`
}

func (s *HTTPServer) handleAnnounce(w http.ResponseWriter, r *http.Request) {
	var req AnnounceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeStatus(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeStatus(w, http.StatusBadRequest, err.Error())
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:       req.Title,
		Description: req.Description,
		Color:       cmp.Or(req.Color, ColorAnnouncement),
		Footer:      &discordgo.MessageEmbedFooter{Text: MsgAnnouncementFtr},
		Timestamp:   time.Now().Format(time.RFC3339),
	}

	if err := s.bot.SendNotification(embed); err != nil {
		slog.Error("Failed to send announcement", "error", err)
		writeStatus(w, http.StatusInternalServerError, "failed to send to Discord")
		return
	}
	writeStatus(w, http.StatusOK, "")
}

// writeStatus answers {"status":"ok"} on success or {"error":msg} otherwise
func writeStatus(w http.ResponseWriter, code int, msg string) {
	body := map[string]string{"status": "ok"}
	if code >= http.StatusBadRequest {
		body = map[string]string{"error": msg}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}

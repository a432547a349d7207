package discord

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleAnnounce(t *testing.T) {
	t.Run("posts embed to the notification channel", func(t *testing.T) {
		tc := SetupTestContext(t)
		srv := NewHTTPServer("0", &Bot{Session: tc.Session, notificationChannelID: "chan1"})

		rec := httptest.NewRecorder()
		srv.server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/announce",
			strings.NewReader(`{"title":"Sessão hoje","description":"Às 20h no canal de voz"}`)))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

		calls := tc.CallsTo("/channels/chan1/messages")
		require.Len(t, calls, 1)
		var msg discordgo.MessageSend
		require.NoError(t, json.Unmarshal([]byte(calls[0].Body), &msg))
		require.Len(t, msg.Embeds, 1)
		assert.Equal(t, "Sessão hoje", msg.Embeds[0].Title)
		assert.Equal(t, ColorAnnouncement, msg.Embeds[0].Color)
		assert.Equal(t, MsgAnnouncementFtr, msg.Embeds[0].Footer.Text)
	})

	t.Run("no channel configured", func(t *testing.T) {
		tc := SetupTestContext(t)
		srv := NewHTTPServer("0", &Bot{Session: tc.Session})

		rec := httptest.NewRecorder()
		srv.server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/announce",
			strings.NewReader(`{"title":"x"}`)))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Empty(t, tc.Calls())
	})

	t.Run("missing title", func(t *testing.T) {
		tc := SetupTestContext(t)
		srv := NewHTTPServer("0", &Bot{Session: tc.Session, notificationChannelID: "chan1"})

		rec := httptest.NewRecorder()
		srv.server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/announce",
			strings.NewReader(`{"description":"sem título","color":255}`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Title")
		assert.Empty(t, tc.Calls())
	})

	t.Run("bad body", func(t *testing.T) {
		tc := SetupTestContext(t)
		srv := NewHTTPServer("0", &Bot{Session: tc.Session, notificationChannelID: "chan1"})

		rec := httptest.NewRecorder()
		srv.server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/announce",
			strings.NewReader(`{`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHTTPServer_Routes(t *testing.T) {
	srv := NewHTTPServer("0", &Bot{})

	rec := httptest.NewRecorder()
	srv.server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	srv.server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/announce", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

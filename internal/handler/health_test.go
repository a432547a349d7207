package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestHandleHealthz(t *testing.T) {
	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()

	handler := HandleHealthz()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"status":"ok"}`+"\n", w.Body.String())
}

func TestHandleReadyz(t *testing.T) {
	t.Run("Dice source working", func(t *testing.T) {
		svc := &MockRollService{}
		svc.On("CheckHealth", mock.Anything).Return(nil)

		w := httptest.NewRecorder()
		HandleReadyz(svc).ServeHTTP(w, httptest.NewRequest("GET", "/readyz", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"ok"`)
		svc.AssertExpectations(t)
	})

	t.Run("Dice source failing", func(t *testing.T) {
		svc := &MockRollService{}
		svc.On("CheckHealth", mock.Anything).Return(assert.AnError)

		w := httptest.NewRecorder()
		HandleReadyz(svc).ServeHTTP(w, httptest.NewRequest("GET", "/readyz", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"unavailable"`)
		assert.Contains(t, w.Body.String(), `"message":"dice source check failed"`)
		svc.AssertExpectations(t)
	})

	t.Run("Timeout", func(t *testing.T) {
		svc := &MockRollService{}
		svc.On("CheckHealth", mock.Anything).Return(context.DeadlineExceeded)

		w := httptest.NewRecorder()
		HandleReadyz(svc).ServeHTTP(w, httptest.NewRequest("GET", "/readyz", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		svc.AssertExpectations(t)
	})
}

func TestHandleVersion(t *testing.T) {
	t.Setenv("VERSION", "2.1.0")

	w := httptest.NewRecorder()
	HandleVersion("rpgbot").ServeHTTP(w, httptest.NewRequest("GET", "/version", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var info VersionInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, "rpgbot", info.Service)
	assert.Equal(t, "2.1.0", info.Version)
	assert.NotEmpty(t, info.GoVersion)
}

func TestBuildInfo_LinkTimeVersionWins(t *testing.T) {
	t.Setenv("VERSION", "from-env")
	old := Version
	Version = "3.0.0"
	t.Cleanup(func() { Version = old })

	assert.Equal(t, "3.0.0", buildInfo("rpgbot").Version)

	Version = "dev"
	assert.Equal(t, "from-env", buildInfo("rpgbot").Version)

	t.Setenv("VERSION", "")
	assert.Equal(t, "dev", buildInfo("rpgbot").Version)
}

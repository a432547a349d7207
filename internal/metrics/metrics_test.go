package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/navelogic/rpgbot/internal/domain"
)

func TestRecordRoll(t *testing.T) {
	before := testutil.ToFloat64(RollsTotal.WithLabelValues(domain.PlatformDiscord))
	sampledBefore := testutil.ToFloat64(DiceSampled)
	critBefore := testutil.ToFloat64(Criticals.WithLabelValues(domain.CriticalSuccess))

	RecordRoll(domain.PlatformDiscord, &domain.RollResult{
		Total:           23,
		CriticalMessage: domain.CriticalSuccessMessage,
		Terms: []domain.TermResult{
			{Operator: "+", Rolled: []int{20, 4}, Kept: []int{20}, Value: 20},
			{Operator: "+", Value: 3},
		},
	}, time.Millisecond)

	assert.Equal(t, before+1, testutil.ToFloat64(RollsTotal.WithLabelValues(domain.PlatformDiscord)))
	assert.Equal(t, sampledBefore+2, testutil.ToFloat64(DiceSampled))
	assert.Equal(t, critBefore+1, testutil.ToFloat64(Criticals.WithLabelValues(domain.CriticalSuccess)))
}

func TestRecordRollError(t *testing.T) {
	kind := domain.ErrorKindDivisionByZero
	before := testutil.ToFloat64(RollErrors.WithLabelValues(kind))

	RecordRollError(domain.ErrDivisionByZero)
	RecordRollError(errors.Join(errors.New("context"), domain.ErrDivisionByZero))

	assert.Equal(t, before+2, testutil.ToFloat64(RollErrors.WithLabelValues(kind)))
}

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/items/{id}", "418"))

	req := httptest.NewRequest(http.MethodGet, "/items/42", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/items/{id}", "418")))
}

func TestMiddleware_UnmatchedRoute(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/known", func(w http.ResponseWriter, r *http.Request) {})

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, unmatchedRoute, "404"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/wp-login.php", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, unmatchedRoute, "404")))
}

func TestMiddleware_ImplicitOK(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/silent", func(w http.ResponseWriter, r *http.Request) {})

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/silent", "200"))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/silent", nil))
	assert.Equal(t, before+1, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/silent", "200")))
}

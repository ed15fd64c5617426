package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"eightify/config"
	"eightify/handler"
	"eightify/middleware"
	"eightify/services"
	"eightify/test/testutils"
	"eightify/usecase"
	"eightify/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	utils.InitValidator()

	store := testutils.NewMemoryStore()
	clock := utils.NewManualClock(time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC))
	tokens, err := utils.NewTokenIssuer("test-secret", "eightify-test", time.Hour)
	require.NoError(t, err)

	registry := usecase.NewRegistry(usecase.TrackerOptions{
		Guest:          services.NewMemoryGuestStore(),
		Durable:        store,
		Events:         services.NoopActivityPublisher{},
		Clock:          clock,
		Location:       time.UTC,
		GuestKeyPrefix: "timeTrackerData",
	}, time.Hour)

	return setupRouter(&server{
		cfg:      config.AppConfig{AllowedOrigins: []string{"https://eightify.app"}},
		clock:    clock,
		users:    usecase.NewUserService(store, tokens, services.NewMemoryTokenBlacklist()),
		stats:    usecase.NewStatsService(store, store),
		circles:  usecase.NewCircleService(store, store, store, store, clock),
		registry: registry,
		checks:   map[string]handler.HealthCheck{},
	})
}

func TestRouterRoutes(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"health", http.MethodGet, "/api/health", "", http.StatusOK},
		{"guest timer", http.MethodGet, "/api/timer", "", http.StatusOK},
		{"guest totals", http.MethodGet, "/api/totals", "", http.StatusOK},
		{"guest start", http.MethodPost, "/api/timer/start", `{"category":"sleep"}`, http.StatusOK},
		{"stats need a token", http.MethodGet, "/api/stats/daily", "", http.StatusUnauthorized},
		{"circles need a token", http.MethodGet, "/api/circles/mine", "", http.StatusUnauthorized},
		{"signout needs a token", http.MethodPost, "/api/auth/signout", "", http.StatusUnauthorized},
		{"unknown route", http.MethodGet, "/api/notes", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set(middleware.ClientIDHeader, "router-test")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}
}

func TestRouterMiddlewareStack(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/timer", nil)
	req.Header.Set("Origin", "https://eightify.app")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://eightify.app", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
	assert.Contains(t, w.Header().Get("Set-Cookie"), middleware.ClientCookieName)

	req = httptest.NewRequest(http.MethodGet, "/api/timer", nil)
	req.Header.Set(middleware.ClientIDHeader, "not valid!")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}

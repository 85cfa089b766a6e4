package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"medimate/config"
	"medimate/infras/otel/mocks"
	"medimate/internal/handlers/health"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func up(context.Context) error { return nil }

func newRouter(state *health.State, checkers map[string]health.Checker) http.Handler {
	cfg := &config.Config{}
	cfg.App.Name = "medimate"
	cfg.App.Version = "1.2.0"

	handler := health.NewWithCheckers(cfg, state, mocks.NewOtel(), checkers)

	router := chi.NewRouter()
	handler.Router(router)

	return router
}

func TestWelcome(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(health.NewState(), nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data health.Welcome `json:"data"`
	}

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, health.Welcome{Name: "medimate", Version: "1.2.0"}, body.Data)
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name     string
		drain    bool
		checkers map[string]health.Checker
		wantCode int
	}{
		{
			name:     "all dependencies up",
			checkers: map[string]health.Checker{"postgres": health.CheckerFunc(up), "redis": health.CheckerFunc(up)},
			wantCode: http.StatusOK,
		},
		{
			name: "redis down",
			checkers: map[string]health.Checker{
				"postgres": health.CheckerFunc(up),
				"redis":    health.CheckerFunc(func(context.Context) error { return errors.New("connection refused") }),
			},
			wantCode: http.StatusServiceUnavailable,
		},
		{
			name:     "draining",
			drain:    true,
			checkers: map[string]health.Checker{"postgres": health.CheckerFunc(up)},
			wantCode: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := health.NewState()
			if tt.drain {
				state.Drain()
			}

			rec := httptest.NewRecorder()
			newRouter(state, tt.checkers).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

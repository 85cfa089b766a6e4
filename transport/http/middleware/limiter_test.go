package middleware_test

import (
	"context"
	"errors"
	"medimate/config"
	"medimate/infras/otel/mocks"
	cacheMocks "medimate/shared/cache/mocks"
	"medimate/transport/http/middleware"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func limited(t *testing.T, cache *cacheMocks.MockRedisCache, maxRequests int) http.Handler {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = true
	cfg.App.RateLimiter.MaxRequests = maxRequests
	cfg.App.RateLimiter.WindowSeconds = 60

	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return middleware.NewAppMiddleware(mocks.NewOtel(), cfg, cache).RateLimit()(ok)
}

func TestRateLimit(t *testing.T) {
	tests := []struct {
		name       string
		setupMock  func(m *cacheMocks.MockRedisCache)
		wantStatus int
		wantLeft   string
	}{
		{
			name: "first request in the window",
			setupMock: func(m *cacheMocks.MockRedisCache) {
				m.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(redis.Nil)
				m.EXPECT().Save(gomock.Any(), gomock.Any(), 1, 60).Return(nil)
			},
			wantStatus: http.StatusOK,
			wantLeft:   "2",
		},
		{
			name: "over the budget",
			setupMock: func(m *cacheMocks.MockRedisCache) {
				m.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, _ string, out any) error {
					*out.(*int) = 3

					return nil
				})
				m.EXPECT().Save(gomock.Any(), gomock.Any(), 4, 60).Return(nil)
			},
			wantStatus: http.StatusTooManyRequests,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			cache := cacheMocks.NewMockRedisCache(ctrl)
			tt.setupMock(cache)

			rec := httptest.NewRecorder()
			limited(t, cache, 3).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/doctors", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantLeft, rec.Header().Get("X-RateLimit-Remaining"))
		})
	}
}

func TestRateLimit_FallsBackWhenCacheIsDown(t *testing.T) {
	ctrl := gomock.NewController(t)
	cache := cacheMocks.NewMockRedisCache(ctrl)

	cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("connection refused")).Times(3)

	handler := limited(t, cache, 2)

	codes := make([]int, 0, 3)

	for range 3 {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/doctors", nil))
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

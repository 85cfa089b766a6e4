package middleware_test

import (
	"medimate/config"
	"medimate/infras/jwt"
	jwtMocks "medimate/infras/jwt/mocks"
	"medimate/infras/otel/mocks"
	"medimate/permissions"
	"medimate/shared/caller"
	"medimate/shared/role"
	"medimate/transport/http/middleware"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

const table = `{"endpoints":[
	{"method":"POST","path":"/v1/auth/login","skip":true},
	{"method":"GET","path":"/v1/bookings","roles":["staff"]},
	{"method":"GET","path":"/v1/bookings/{id}","roles":["staff","doctor","patient"]}
]}`

func newRouter(t *testing.T, jwtService jwt.JWT, cfg *config.Config) http.Handler {
	t.Helper()

	data, err := permissions.Parse([]byte(table))
	assert.NoError(t, err)

	mw := middleware.NewAuthRoleMiddleware(jwtService, mocks.NewOtel(), data, cfg)

	echo := func(w http.ResponseWriter, r *http.Request) {
		c, _ := caller.FromContext(r.Context())
		w.Header().Set("X-Caller", c.UserID)
		w.WriteHeader(http.StatusOK)
	}

	router := chi.NewRouter()
	router.Use(mw.APIKey, mw.Auth, mw.RBAC)
	router.Route("/v1", func(r chi.Router) {
		r.Post("/auth/login", echo)
		r.Get("/bookings", echo)
		r.Get("/bookings/{id}", echo)
	})

	return router
}

func TestAuthRole(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.APIKey = "internal-key"

	tests := []struct {
		name       string
		method     string
		path       string
		header     map[string]string
		setupMock  func(m *jwtMocks.MockJWT)
		wantStatus int
		wantCaller string
	}{
		{
			name:       "public route",
			method:     http.MethodPost,
			path:       "/v1/auth/login",
			setupMock:  func(*jwtMocks.MockJWT) {},
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing token",
			method:     http.MethodGet,
			path:       "/v1/bookings/b1",
			setupMock:  func(*jwtMocks.MockJWT) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "malformed header",
			method:     http.MethodGet,
			path:       "/v1/bookings/b1",
			header:     map[string]string{"Authorization": "Token abc"},
			setupMock:  func(*jwtMocks.MockJWT) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "expired token",
			method: http.MethodGet,
			path:   "/v1/bookings/b1",
			header: map[string]string{"Authorization": "Bearer abc"},
			setupMock: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken(gomock.Any(), "abc", jwt.AccessToken).Return(nil, jwt.ErrExpiredToken)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "patient reads a booking",
			method: http.MethodGet,
			path:   "/v1/bookings/b1",
			header: map[string]string{"Authorization": "Bearer abc"},
			setupMock: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken(gomock.Any(), "abc", jwt.AccessToken).Return(&jwt.Claims{UserID: "p1", Role: role.Patient}, nil)
			},
			wantStatus: http.StatusOK,
			wantCaller: "p1",
		},
		{
			name:   "patient lists every booking",
			method: http.MethodGet,
			path:   "/v1/bookings",
			header: map[string]string{"Authorization": "Bearer abc"},
			setupMock: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken(gomock.Any(), "abc", jwt.AccessToken).Return(&jwt.Claims{UserID: "p1", Role: role.Patient}, nil)
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name:   "token with unknown role",
			method: http.MethodGet,
			path:   "/v1/bookings",
			header: map[string]string{"Authorization": "Bearer abc"},
			setupMock: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken(gomock.Any(), "abc", jwt.AccessToken).Return(&jwt.Claims{UserID: "x", Role: role.Role("admin")}, nil)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "internal key",
			method:     http.MethodGet,
			path:       "/v1/bookings",
			header:     map[string]string{"X-API-Key": "internal-key"},
			setupMock:  func(*jwtMocks.MockJWT) {},
			wantStatus: http.StatusOK,
			wantCaller: "system",
		},
		{
			name:       "wrong internal key",
			method:     http.MethodGet,
			path:       "/v1/bookings",
			header:     map[string]string{"X-API-Key": "guess"},
			setupMock:  func(*jwtMocks.MockJWT) {},
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			jwtService := jwtMocks.NewMockJWT(ctrl)
			tt.setupMock(jwtService)

			req := httptest.NewRequest(tt.method, tt.path, nil)
			for key, value := range tt.header {
				req.Header.Set(key, value)
			}

			rec := httptest.NewRecorder()

			newRouter(t, jwtService, cfg).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCaller, rec.Header().Get("X-Caller"))
		})
	}
}

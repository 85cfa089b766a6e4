package middleware

import (
	"context"
	"errors"
	"medimate/config"
	"medimate/infras/jwt"
	"medimate/infras/otel"
	"medimate/permissions"
	"medimate/shared/caller"
	"medimate/shared/constant"
	"medimate/shared/failure"
	"medimate/shared/role"
	"medimate/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type SkipAuthKey string

// Auth defines the interface for authentication middleware
type Auth interface {
	Auth(http.Handler) http.Handler
	APIKey(http.Handler) http.Handler
}

// Role defines the interface for role-based access control middleware
type Role interface {
	RBAC(http.Handler) http.Handler
}

// AuthRole combines all middleware interfaces
type AuthRole interface {
	Auth
	Role
}

type authRoleImpl struct {
	jwtService jwt.JWT
	otel       otel.Otel
	permission *permissions.PermissionData
	cfg        *config.Config
}

func NewAuthRoleMiddleware(jwtService jwt.JWT, otel otel.Otel, permissions *permissions.PermissionData, cfg *config.Config) AuthRole {
	return &authRoleImpl{
		jwtService: jwtService,
		otel:       otel,
		permission: permissions,
		cfg:        cfg,
	}
}

// route resolves the chi pattern the request will be served by, before the router has matched it.
func (m *authRoleImpl) route(request *http.Request) (string, permissions.Permission) {
	rctx := chi.RouteContext(request.Context())
	if rctx == nil || rctx.Routes == nil {
		return request.URL.Path, permissions.Permission{}
	}

	path := rctx.Routes.Find(chi.NewRouteContext(), request.Method, request.URL.Path)

	if m.permission == nil {
		return path, permissions.Permission{}
	}

	return path, m.permission.FindPermissions(path, request.Method)
}

func skipped(ctx context.Context) bool {
	skip, _ := ctx.Value(SkipAuthKey("skip")).(bool)

	return skip
}

// Auth validates the bearer access token and stores the caller in the request context.
// Public routes and internal calls authenticated by APIKey pass through.
func (m *authRoleImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "auth.middleware")
		defer scope.End()

		path, permission := m.route(request)

		if skipped(ctx) || permission.Skip {
			next.ServeHTTP(writer, request)

			return
		}

		scope.SetAttributes(map[string]any{
			"middleware.type": "auth",
			"http.path":       path,
			"http.method":     request.Method,
		})

		fail := func(err error) {
			scope.TraceError(err)
			response.WithError(writer, err)
		}

		authHeader := request.Header.Get(constant.RequestHeaderAuthorization)
		if authHeader == "" {
			fail(failure.Unauthorized("Missing authorization header"))

			return
		}

		tokenString, err := jwt.ExtractTokenFromHeader(authHeader)
		if err != nil {
			fail(failure.Unauthorized("Invalid authorization header format"))

			return
		}

		claims, err := m.jwtService.ValidateToken(ctx, tokenString, jwt.AccessToken)
		if err != nil {
			var message string

			switch {
			case errors.Is(err, jwt.ErrExpiredToken):
				message = "Token has expired"
			case errors.Is(err, jwt.ErrInvalidToken):
				message = "Invalid token"
			case errors.Is(err, jwt.ErrInvalidClaim):
				message = "Invalid token claims"
			default:
				message = "Token validation failed"
			}

			fail(failure.Unauthorized(message))

			return
		}

		if claims.UserID == "" || !claims.Role.Valid() {
			log.Error().Str("userID", claims.UserID).Str("role", claims.Role.String()).Msg("JWT claims incomplete")
			fail(failure.Unauthorized("Invalid token claims"))

			return
		}

		ctx = caller.WithCaller(ctx, caller.Caller{
			UserID: claims.UserID,
			Email:  claims.Email,
			Role:   claims.Role,
		})
		ctx = context.WithValue(ctx, constant.ContextKeyTokenID, claims.TokenID)

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// RBAC rejects callers whose role is not listed for the route. It needs Auth in front of it.
func (m *authRoleImpl) RBAC(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "rbac.middleware")
		defer scope.End()

		if skipped(ctx) {
			next.ServeHTTP(writer, request)

			return
		}

		if m.permission == nil {
			response.WithError(writer, failure.ForbiddenError)

			return
		}

		_, permission := m.route(request)

		if m.permission.Skip || permission.Skip {
			next.ServeHTTP(writer, request)

			return
		}

		current, _ := caller.FromContext(ctx)

		if !permission.Allows(current.Role) {
			err := failure.ForbiddenError

			scope.TraceError(err)
			scope.SetAttributes(map[string]any{
				"user_role":     current.Role.String(),
				"allowed_roles": fmtRoles(permission),
				"reason":        "role_not_allowed",
			})

			response.WithError(writer, err)

			return
		}

		next.ServeHTTP(writer, request)
	})
}

func fmtRoles(permission permissions.Permission) []string {
	roles := make([]string, len(permission.Roles))
	for i, r := range permission.Roles {
		roles[i] = r.String()
	}

	return roles
}

// APIKey lets internal services skip user authentication with the shared key.
func (m *authRoleImpl) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "api_key.middleware")
		defer scope.End()

		apiKey := request.Header.Get(constant.RequestHeaderAPIKey)

		if apiKey == "" {
			scope.SetAttribute("http.source", "client")
			next.ServeHTTP(writer, request)

			return
		}

		scope.SetAttribute("http.source", "internal")

		if m.cfg.App.APIKey == "" || apiKey != m.cfg.App.APIKey {
			err := failure.ForbiddenError

			scope.TraceError(err)
			response.WithError(writer, err)

			return
		}

		ctx = caller.WithCaller(ctx, caller.Caller{UserID: constant.ContextSystem, Role: role.Staff})
		ctx = context.WithValue(ctx, SkipAuthKey("skip"), true)

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

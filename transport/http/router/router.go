package router

import (
	"medimate/internal/handlers/auth"
	"medimate/internal/handlers/booking"
	"medimate/internal/handlers/doctor"
	"medimate/internal/handlers/health"
	"medimate/internal/handlers/patient"
	"medimate/internal/handlers/staff"
	"medimate/internal/handlers/user"
	"medimate/transport/http/middleware"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type DomainHandlers struct {
	Auth    auth.Handler
	User    user.Handler
	Booking booking.Handler
	Doctor  doctor.Handler
	Patient patient.Handler
	Staff   staff.Handler
	Health  health.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	app            middleware.AppMiddleware
	authRole       middleware.AuthRole
}

func New(domainHandlers DomainHandlers, app middleware.AppMiddleware, authRole middleware.AuthRole) Router {
	return Router{
		DomainHandlers: domainHandlers,
		app:            app,
		authRole:       authRole,
	}
}

// SetupRoutes installs the middleware chain and every route. Auth and RBAC run on all
// routes and consult the permission table, so public routes are declared there.
func (r *Router) SetupRoutes(router chi.Router) {
	router.Use(
		chiMiddleware.RequestID,
		chiMiddleware.RealIP,
		chiMiddleware.Recoverer,
		r.app.Tracing,
		r.app.RateLimit(),
		r.authRole.APIKey,
		r.authRole.Auth,
		r.authRole.RBAC,
	)

	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.DomainHandlers.Health.Router(router)

	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Doctor.Router(routerGroup)
		r.DomainHandlers.Patient.Router(routerGroup)
		r.DomainHandlers.Staff.Router(routerGroup)
	})
}

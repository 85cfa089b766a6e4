//go:build wireinject
// +build wireinject

package di

import (
	"medimate/config"
	"medimate/infras/jwt"
	"medimate/infras/kafka"
	"medimate/infras/otel"
	"medimate/infras/postgres"
	"medimate/infras/redis"
	"medimate/internal/domains/profile/access"
	"medimate/permissions"
	"medimate/shared/cache"
	"medimate/transport/http"
	"medimate/transport/http/middleware"
	"medimate/transport/http/router"

	"github.com/google/wire"

	authService "medimate/internal/domains/auth/service"
	bookingRepository "medimate/internal/domains/booking/repository"
	bookingService "medimate/internal/domains/booking/service"
	profileRepository "medimate/internal/domains/profile/repository"
	profileService "medimate/internal/domains/profile/service"
	userRepository "medimate/internal/domains/user/repository"
	userService "medimate/internal/domains/user/service"
	authHandler "medimate/internal/handlers/auth"
	bookingHandler "medimate/internal/handlers/booking"
	doctorHandler "medimate/internal/handlers/doctor"
	healthHandler "medimate/internal/handlers/health"
	patientHandler "medimate/internal/handlers/patient"
	staffHandler "medimate/internal/handlers/staff"
	userHandler "medimate/internal/handlers/user"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var authDomain = wire.NewSet(
	authService.New,
)

var profileDomain = wire.NewSet(
	profileRepository.NewDoctor,
	profileRepository.NewPatient,
	profileRepository.NewStaff,
	profileService.NewDoctor,
	profileService.NewPatient,
	profileService.NewStaff,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
	wire.Bind(new(access.Linker), new(bookingService.Booking)),
)

var domains = wire.NewSet(
	userDomain,
	authDomain,
	profileDomain,
	bookingDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	healthHandler.NewState,
	healthHandler.New,
	authHandler.New,
	userHandler.New,
	bookingHandler.New,
	doctorHandler.New,
	patientHandler.New,
	staffHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

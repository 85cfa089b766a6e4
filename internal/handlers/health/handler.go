package health

import (
	"context"
	"medimate/config"
	"medimate/infras/otel"
	"medimate/infras/postgres"
	"medimate/shared/constant"
	"medimate/transport/http/response"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const pingTimeout = 2 * time.Second

// Checker is a dependency the service cannot run without.
type Checker interface {
	Ping(ctx context.Context) error
}

type CheckerFunc func(ctx context.Context) error

func (f CheckerFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

type Welcome struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type Status struct {
	Status       string            `json:"status"`
	Dependencies map[string]string `json:"dependencies"`
}

type Handler struct {
	config   *config.Config
	state    *State
	checkers map[string]Checker
	otel     otel.Otel
}

func New(cfg *config.Config, db *postgres.Connection, rdb *goRedis.Client, state *State, otel otel.Otel) Handler {
	return NewWithCheckers(cfg, state, otel, map[string]Checker{
		"postgres": db,
		"redis": CheckerFunc(func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}),
	})
}

func NewWithCheckers(cfg *config.Config, state *State, otel otel.Otel, checkers map[string]Checker) Handler {
	return Handler{
		config:   cfg,
		state:    state,
		checkers: checkers,
		otel:     otel,
	}
}

// Router mounts the unversioned probes.
func (handler *Handler) Router(router chi.Router) {
	router.Get("/", handler.Welcome)
	router.Get("/health", handler.Health)
}

// Welcome identifies the running service.
// @Summary Service info
// @Tags Health
// @Produce json
// @Success 200 {object} response.Data[Welcome]
// @Router / [get]
func (handler *Handler) Welcome(writer http.ResponseWriter, _ *http.Request) {
	response.WithJSON(writer, http.StatusOK, Welcome{
		Name:    handler.config.App.Name,
		Version: handler.config.App.Version,
	})
}

// Health reports readiness. It answers 503 while draining or when a dependency is down.
// @Summary Readiness probe
// @Tags Health
// @Produce json
// @Success 200 {object} response.Data[Status]
// @Failure 503 {object} response.Message
// @Router /health [get]
func (handler *Handler) Health(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Health")
	defer scope.End()

	if handler.state.Draining() {
		response.WithPreparingShutdown(writer)

		return
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	names := make([]string, 0, len(handler.checkers))
	for name := range handler.checkers {
		names = append(names, name)
	}

	sort.Strings(names)

	status := Status{Status: "ok", Dependencies: map[string]string{}}

	for _, name := range names {
		if err := handler.checkers[name].Ping(ctx); err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Str("dependency", name).Msg("health check failed")

			response.WithUnhealthy(writer)

			return
		}

		status.Dependencies[name] = "ok"
	}

	response.WithJSON(writer, http.StatusOK, status)
}

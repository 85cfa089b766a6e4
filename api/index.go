package handler

import (
	"medimate/config"
	"medimate/di"
	"medimate/shared/logger"
	"net/http"
	"sync"
)

var (
	once    sync.Once
	service http.Handler
)

// Handler is the serverless entry point. The dependency graph is built on the first request only.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()

		logger.SetLogLevel(cfg)

		service = di.InitializeService()
	})

	service.ServeHTTP(w, r)
}

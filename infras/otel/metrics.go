package otel

import (
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// Int64Counter registers a counter on meter, falling back to a no-op counter when the
// instrument cannot be created.
func Int64Counter(meter metric.Meter, name, description string) metric.Int64Counter {
	counter, err := meter.Int64Counter(name, metric.WithDescription(description))
	if err != nil {
		log.Error().Err(err).Str("instrument", name).Msg("failed to create counter")

		return noop.Int64Counter{}
	}

	return counter
}

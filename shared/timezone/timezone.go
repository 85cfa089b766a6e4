package timezone

import (
	"medimate/config"
	"time"

	"github.com/rs/zerolog/log"
)

// Clock returns the current instant. Services take one so tests can pin "now".
type Clock func() time.Time

var (
	appLocation *time.Location
)

func init() {
	cfg := config.Get()

	if cfg.App.Timezone == "" {
		log.Warn().Msg("No timezone configured, using UTC as default")
		cfg.App.Timezone = "UTC"
	}

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Error().
			Err(err).
			Str("timezone", cfg.App.Timezone).
			Msg("Failed to load timezone, falling back to UTC")

		appLocation = time.UTC

		return
	}

	appLocation = loc
	log.Info().
		Str("timezone", cfg.App.Timezone).
		Str("location", loc.String()).
		Msg("Application timezone initialized")
}

// Now returns the current time in the application timezone
func Now() time.Time {
	return time.Now().In(GetLocation())
}

// ToAppTime converts a time to the application timezone
func ToAppTime(t time.Time) time.Time {
	return t.In(GetLocation())
}

// GetLocation returns the current application timezone location
func GetLocation() *time.Location {
	if appLocation == nil {
		return time.UTC
	}

	return appLocation
}

// Parse parses a time string in the application timezone
func Parse(layout, value string) (time.Time, error) {
	t, err := time.ParseInLocation(layout, value, GetLocation())
	if err != nil {
		return time.Time{}, err //nolint:wrapcheck
	}

	return t, nil
}

// Format formats a time in the application timezone
func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}

// FormatPtr formats an optional time, returning nil when it is unset.
func FormatPtr(t *time.Time, layout string) *string {
	if t == nil {
		return nil
	}

	formatted := Format(*t, layout)

	return &formatted
}

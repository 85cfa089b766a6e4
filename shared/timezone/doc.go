// Package timezone pins every timestamp the service produces to the configured APP_TIMEZONE.
//
//	now := timezone.Now()
//	local := timezone.ToAppTime(booking.DatetimeStart)
//	formatted := timezone.Format(booking.DatetimeStart, time.RFC3339)
//
// Use IANA names ("UTC", "Asia/Jakarta", "Europe/London"). The location is loaded once when the
// package is imported and falls back to UTC when the name cannot be resolved.
package timezone

package middleware

import (
	"errors"
	"medimate/shared"
	"medimate/shared/cache"
	"medimate/shared/constant"
	"medimate/transport/http/response"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	cacheKeyRateLimit = "limiter"
)

// RateLimit counts requests per client and user agent in fixed Redis windows. When Redis fails
// the request is judged by an in-process token bucket with the same budget instead.
func (a *appMiddleware) RateLimit() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !a.config.App.RateLimiter.Enable {
				next.ServeHTTP(w, r)

				return
			}

			maxReqs := a.config.App.RateLimiter.MaxRequests
			windowSecs := a.config.App.RateLimiter.WindowSeconds
			clientKey := shared.BuildCacheKey(cacheKeyRateLimit, a.getClientIP(r), a.getUA(r))

			count, err := a.countRequest(r, clientKey, windowSecs)
			if err != nil {
				log.Warn().Err(err).Str("client", clientKey).Msg("rate limit cache unavailable, using local limiter")

				if !a.localLimiter(clientKey, maxReqs, windowSecs).Allow() {
					response.WithRequestLimitExceeded(w)

					return
				}

				next.ServeHTTP(w, r)

				return
			}

			if count > maxReqs {
				response.WithRequestLimitExceeded(w)

				return
			}

			w.Header().Set(constant.RequestHeaderRateLimit, strconv.Itoa(maxReqs))
			w.Header().Set(constant.RequestHeaderRateLimitRemaining, strconv.Itoa(max(0, maxReqs-count)))
			w.Header().Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(windowSecs))

			next.ServeHTTP(w, r)
		})
	}
}

func (a *appMiddleware) countRequest(r *http.Request, cacheKey string, windowSecs int) (int, error) {
	var count int

	err := a.cache.Get(r.Context(), cacheKey, &count)

	switch {
	case errors.Is(err, cache.Nil):
		count = 1
	case err != nil:
		return 0, err
	default:
		count++
	}

	if err := a.cache.Save(r.Context(), cacheKey, count, windowSecs); err != nil {
		return 0, err
	}

	return count, nil
}

func (a *appMiddleware) localLimiter(clientKey string, maxReqs, windowSecs int) *rate.Limiter {
	a.mu.Lock()
	defer a.mu.Unlock()

	limiter, ok := a.limiters[clientKey]
	if !ok {
		every := time.Duration(windowSecs) * time.Second / time.Duration(max(1, maxReqs))
		limiter = rate.NewLimiter(rate.Every(every), max(1, maxReqs))
		a.limiters[clientKey] = limiter
	}

	return limiter
}

func (a *appMiddleware) getUA(r *http.Request) string {
	ua := r.Header.Get(constant.RequestHeaderUserAgent)
	if ua == "" {
		ua = "unknown"
	}

	return ua
}

func (a *appMiddleware) getClientIP(r *http.Request) string {
	if xff := r.Header.Get(constant.RequestHeaderForwardedFor); xff != "" {
		// first hop is the client
		if client, _, found := strings.Cut(xff, ","); found {
			return strings.TrimSpace(client)
		}

		return strings.TrimSpace(xff)
	}

	if xri := r.Header.Get(constant.RequestHeaderRealIP); xri != "" {
		return strings.TrimSpace(xri)
	}

	return r.RemoteAddr
}

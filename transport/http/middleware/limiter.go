package middleware

import (
	"errors"
	"garage/shared"
	"garage/shared/cache"
	"garage/shared/constant"
	"garage/transport/http/response"
	"net"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"
)

const cacheKeyRateLimit = "limiter"

// Booking writes and browsing reads are counted in separate buckets.
const (
	bucketBooking = "booking"
	bucketBrowse  = "browse"
)

// RateLimit counts requests per client address and bucket in a fixed window. A cache outage lets
// requests through.
func (a *appMiddleware) RateLimit() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			limits := a.config.App.RateLimiter
			if !limits.Enable {
				next.ServeHTTP(w, r)

				return
			}

			cacheKey := shared.BuildCacheKey(cacheKeyRateLimit, requestBucket(r), clientAddr(r))

			var count int

			switch err := a.cache.Get(r.Context(), cacheKey, &count); {
			case err == nil:
				count++
			case errors.Is(err, cache.Nil):
				count = 1
			default:
				log.Warn().Err(err).Str("key", cacheKey).Msg("rate limiter cache unavailable, allowing request")
				next.ServeHTTP(w, r)

				return
			}

			if count > limits.MaxRequests {
				response.WithRequestLimitExceeded(w)

				return
			}

			if err := a.cache.Save(r.Context(), cacheKey, count, limits.WindowSeconds); err != nil {
				log.Warn().Err(err).Str("key", cacheKey).Msg("failed to record rate limit hit, allowing request")
				next.ServeHTTP(w, r)

				return
			}

			w.Header().Set(constant.RequestHeaderRateLimit, strconv.Itoa(limits.MaxRequests))
			w.Header().Set(constant.RequestHeaderRateLimitRemaining, strconv.Itoa(max(0, limits.MaxRequests-count)))
			w.Header().Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(limits.WindowSeconds))

			next.ServeHTTP(w, r)
		})
	}
}

func requestBucket(r *http.Request) string {
	switch r.Method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return bucketBrowse
	default:
		return bucketBooking
	}
}

// clientAddr is the host part of RemoteAddr, which chi's RealIP has already resolved from proxy headers.
func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}

func userAgent(r *http.Request) string {
	if ua := r.Header.Get(constant.RequestHeaderUserAgent); ua != "" {
		return ua
	}

	return "unknown"
}

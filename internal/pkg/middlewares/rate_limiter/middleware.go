package rate_limiter

import (
	"encoding/json"
	"net/http"
	"strconv"

	"parcel-locker/internal/generated/dto"
	"parcel-locker/internal/pkg/middlewares/metrics"
	"parcel-locker/pkg/logger"
)

// Middleware limit попадает в X-RateLimit-Limit, сам лимит задаёт rlimiter.
func Middleware(log handlerLogger, limit int, rlimiter Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if rlimiter.Allow() {
				next.ServeHTTP(w, r)
				return
			}

			route := metrics.RouteTemplate(r)
			log.Warn("rate limit exceeded",
				logger.NewField("method", r.Method),
				logger.NewField("route", route),
				logger.NewField("remote_addr", r.RemoteAddr),
			)
			RateLimitExceededTotal.WithLabelValues(r.Method, route).Inc()

			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)

			err := json.NewEncoder(w).Encode(dto.Error{
				Error:   "rate_limited",
				Message: "rate limit exceeded, try again later",
			})
			if err != nil {
				log.Error("failed to write rate limit response",
					logger.NewField("error", err),
					logger.NewField("path", r.URL.Path),
				)
			}
		})
	}
}

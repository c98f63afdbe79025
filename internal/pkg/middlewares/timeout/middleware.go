package timeout

import (
	"context"
	"net/http"
	"time"
)

// Middleware дедлайн на запрос, сервисы видят его через ctx.
// timeout <= 0 отключает ограничение.
func Middleware(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if timeout <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// родитель ongoingCtx из BaseContext, SIGTERM его не отменяет
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

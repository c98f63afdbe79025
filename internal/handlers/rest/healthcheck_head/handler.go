package healthcheck_head

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"
)

const probeTimeout = time.Second

// Pinger зависимость, без которой реплика не может обслуживать посылки.
// *pgxpool.Pool подходит как есть.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	isShuttingDown *atomic.Bool
	deps           []Pinger
}

func New(isShuttingDown *atomic.Bool, deps ...Pinger) *Handler {
	return &Handler{
		isShuttingDown: isShuttingDown,
		deps:           deps,
	}
}

// ServeHTTP 204 пока реплика принимает трафик. Во время остановки или при
// недоступной зависимости 503, чтобы балансировщик вывел её из ротации.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.isShuttingDown.Load() {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), probeTimeout)
	defer cancel()

	for _, dep := range h.deps {
		if err := dep.Ping(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
	}

	w.WriteHeader(http.StatusNoContent)
}

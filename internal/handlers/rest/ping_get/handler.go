package ping_get

import (
	"encoding/json"
	"net/http"
	"time"

	"parcel-locker/internal/generated/dto"
	"parcel-locker/pkg/logger"
)

const pong = "pong"

// SystemClock часы процесса.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

type Handler struct {
	log   handlerLogger
	clock clock
}

func New(log handlerLogger, clock clock) *Handler {
	return &Handler{
		log:   log.With(logger.NewField("handler", "ping_get")),
		clock: clock,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	message := pong
	now := h.clock.Now().UTC().Truncate(time.Second)

	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(dto.PingResponse{
		Message:    &message,
		ServerTime: &now,
	})
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}

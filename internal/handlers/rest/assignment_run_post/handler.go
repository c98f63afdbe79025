package assignment_run_post

import (
	"net/http"

	"parcel-locker/internal/handlers/rest/converters"
	"parcel-locker/internal/handlers/rest/httpx"
	"parcel-locker/pkg/logger"
)

// Handler внеочередной прогон назначения водителей. Вызов во время идущего
// прогона не ждёт его окончания, в ответе coalesced=true.
type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With(logger.NewField("handler", "assignment_run_post"))

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.RunOnce(r.Context())
	if err != nil {
		httpx.Error(w, h.log, http.StatusInternalServerError, err)
		return
	}

	h.log.Info("assignment run requested",
		logger.NewField("assigned", result.Assigned),
		logger.NewField("unmatched", result.Unmatched),
		logger.NewField("coalesced", result.Coalesced),
	)

	httpx.JSON(w, h.log, http.StatusOK, converters.FromAssignmentResult(result))
}

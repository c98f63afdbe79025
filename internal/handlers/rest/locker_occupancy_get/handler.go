package locker_occupancy_get

import (
	"errors"
	"net/http"

	"parcel-locker/internal/handlers/rest/converters"
	"parcel-locker/internal/handlers/rest/httpx"
	"parcel-locker/internal/service/cabinet"
	"parcel-locker/internal/service/geo"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.Error(w, h.log, http.StatusBadRequest, err)
		return
	}

	occupancy, err := h.service.Occupancy(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, cabinet.ErrInvalidLockerID):
			httpx.Error(w, h.log, http.StatusBadRequest, err)
		case errors.Is(err, geo.ErrLockerNotFound):
			httpx.Error(w, h.log, http.StatusNotFound, err)
		default:
			httpx.Error(w, h.log, http.StatusInternalServerError, err)
		}
		return
	}

	httpx.JSON(w, h.log, http.StatusOK, converters.FromOccupancy(occupancy))
}

package parcel_get

import (
	"errors"
	"net/http"

	"parcel-locker/internal/handlers/rest/converters"
	"parcel-locker/internal/handlers/rest/httpx"
	"parcel-locker/internal/service/parcel"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With()

	return &Handler{
		service: service,
		log:     handlerLog,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.Error(w, h.log, http.StatusBadRequest, err)
		return
	}

	view, err := h.service.Get(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, parcel.ErrInvalidParcelID):
			httpx.Error(w, h.log, http.StatusBadRequest, err)
		case errors.Is(err, parcel.ErrParcelNotFound):
			httpx.Error(w, h.log, http.StatusNotFound, err)
		default:
			httpx.Error(w, h.log, http.StatusInternalServerError, err)
		}
		return
	}

	httpx.JSON(w, h.log, http.StatusOK, converters.FromParcelView(view))
}

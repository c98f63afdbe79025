package parcel_progress_post

import (
	"encoding/json"
	"errors"
	"net/http"

	"parcel-locker/internal/entities"
	"parcel-locker/internal/generated/dto"
	"parcel-locker/internal/handlers/rest/converters"
	"parcel-locker/internal/handlers/rest/httpx"
	"parcel-locker/internal/service/assignment"
	"parcel-locker/internal/service/parcel"
	"parcel-locker/internal/service/progress"
	"parcel-locker/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With(logger.NewField("handler", "parcel_progress_post"))

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

	var req dto.DriverProgress
	err = json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		httpx.BadRequest(w, h.log, "invalid JSON body")
		return
	}

	p, err := h.service.Apply(r.Context(), entities.DriverProgress{
		ParcelID: id,
		DriverID: req.DriverID,
		Status:   entities.ParcelStatus(req.Status),
		LockerID: req.LockerID,
	})
	if err != nil {
		switch {
		case errors.Is(err, progress.ErrUndefinedStatus),
			errors.Is(err, progress.ErrInvalidProgress):
			httpx.Error(w, h.log, http.StatusBadRequest, err)
		case errors.Is(err, parcel.ErrParcelNotFound),
			errors.Is(err, parcel.ErrLockerNotFound),
			errors.Is(err, assignment.ErrDriverNotFound):
			httpx.Error(w, h.log, http.StatusNotFound, err)
		case errors.Is(err, parcel.ErrInvalidStateTransition),
			errors.Is(err, parcel.ErrUnknownDriverContext):
			httpx.Error(w, h.log, http.StatusUnprocessableEntity, err)
		case errors.Is(err, parcel.ErrNoCabinetAvailable):
			httpx.Error(w, h.log, http.StatusServiceUnavailable, err)
		case parcel.IsTransient(err):
			httpx.Error(w, h.log, http.StatusConflict, err)
		default:
			httpx.Error(w, h.log, http.StatusInternalServerError, err)
		}
		return
	}

	h.log.Info("driver progress applied",
		logger.NewField("parcel_id", p.ID),
		logger.NewField("driver_id", req.DriverID),
		logger.NewField("status", p.Status.String()),
	)

	response := converters.FromParcel(p)
	if p.Status == entities.ParcelDeliveredToLocker {
		response.RecipientCode = converters.FromCode(p.RecipientCode)
	}
	httpx.JSON(w, h.log, http.StatusOK, response)
}

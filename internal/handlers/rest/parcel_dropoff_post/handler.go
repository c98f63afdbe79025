package parcel_dropoff_post

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"parcel-locker/internal/generated/dto"
	"parcel-locker/internal/handlers/rest/converters"
	"parcel-locker/internal/handlers/rest/httpx"
	"parcel-locker/internal/service/parcel"
	"parcel-locker/internal/service/txcode"
	"parcel-locker/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With(logger.NewField("handler", "parcel_dropoff_post"))

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

	var req dto.CodeRequest
	err = json.NewDecoder(r.Body).Decode(&req)
	if err != nil || strings.TrimSpace(req.Code) == "" {
		httpx.BadRequest(w, h.log, "code is required")
		return
	}

	p, err := h.service.DropOff(r.Context(), id, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, parcel.ErrParcelNotFound):
			httpx.Error(w, h.log, http.StatusNotFound, err)
		case errors.Is(err, txcode.ErrCodeExpired),
			errors.Is(err, txcode.ErrCodeAlreadyConsumed):
			httpx.Error(w, h.log, http.StatusGone, err)
		case errors.Is(err, txcode.ErrCodeMismatch),
			errors.Is(err, txcode.ErrCodeNotIssued),
			errors.Is(err, parcel.ErrInvalidStateTransition):
			httpx.Error(w, h.log, http.StatusUnprocessableEntity, err)
		case parcel.IsTransient(err):
			httpx.Error(w, h.log, http.StatusConflict, err)
		default:
			httpx.Error(w, h.log, http.StatusInternalServerError, err)
		}
		return
	}

	h.log.Info("parcel dropped off",
		logger.NewField("parcel_id", p.ID),
	)

	httpx.JSON(w, h.log, http.StatusOK, converters.FromParcel(p))
}

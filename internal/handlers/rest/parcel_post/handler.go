package parcel_post

import (
	"encoding/json"
	"errors"
	"net/http"

	"parcel-locker/internal/generated/dto"
	"parcel-locker/internal/handlers/rest/converters"
	"parcel-locker/internal/handlers/rest/httpx"
	"parcel-locker/internal/service/parcel"
	"parcel-locker/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With(logger.NewField("handler", "parcel_post"))

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req dto.ParcelCreate
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		httpx.BadRequest(w, h.log, "invalid JSON body")
		return
	}

	// заголовок имеет приоритет над полем тела
	if key := r.Header.Get("Idempotency-Key"); key != "" {
		req.IdempotencyKey = key
	}

	p, err := h.service.Create(r.Context(), converters.ToParcelCreate(req))
	if err != nil {
		switch {
		case errors.Is(err, parcel.ErrMissingRequiredFields),
			errors.Is(err, parcel.ErrInvalidDimensions):
			httpx.Error(w, h.log, http.StatusBadRequest, err)
		case errors.Is(err, parcel.ErrCustomerNotFound),
			errors.Is(err, parcel.ErrLockerNotFound):
			httpx.Error(w, h.log, http.StatusNotFound, err)
		case errors.Is(err, parcel.ErrDuplicateIdempotencyKey):
			httpx.Error(w, h.log, http.StatusUnprocessableEntity, err)
		case errors.Is(err, parcel.ErrNoCabinetAvailable),
			errors.Is(err, parcel.ErrNoLockerAvailable):
			httpx.Error(w, h.log, http.StatusServiceUnavailable, err)
		case parcel.IsTransient(err):
			httpx.Error(w, h.log, http.StatusConflict, err)
		default:
			httpx.Error(w, h.log, http.StatusInternalServerError, err)
		}
		return
	}

	response := converters.FromParcel(p)
	response.SenderCode = converters.FromCode(p.SenderCode)

	httpx.JSON(w, h.log, http.StatusCreated, response)
}

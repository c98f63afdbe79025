package parcel_recipient_code_post

import (
	"errors"
	"net/http"

	"parcel-locker/internal/handlers/rest/converters"
	"parcel-locker/internal/handlers/rest/httpx"
	"parcel-locker/internal/service/parcel"
	"parcel-locker/pkg/logger"
)

// Handler перевыпуск кода получателя оператором.
type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With(logger.NewField("handler", "parcel_recipient_code_post"))

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

	p, err := h.service.ReissueRecipientCode(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, parcel.ErrParcelNotFound):
			httpx.Error(w, h.log, http.StatusNotFound, err)
		case errors.Is(err, parcel.ErrInvalidStateTransition):
			httpx.Error(w, h.log, http.StatusUnprocessableEntity, err)
		case parcel.IsTransient(err):
			httpx.Error(w, h.log, http.StatusConflict, err)
		default:
			httpx.Error(w, h.log, http.StatusInternalServerError, err)
		}
		return
	}

	h.log.Info("recipient code reissued",
		logger.NewField("parcel_id", p.ID),
	)

	response := converters.FromParcel(p)
	response.RecipientCode = converters.FromCode(p.RecipientCode)
	httpx.JSON(w, h.log, http.StatusOK, response)
}

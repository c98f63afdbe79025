package lockers_nearest_get

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/paulmach/orb"

	"parcel-locker/internal/handlers/rest/converters"
	"parcel-locker/internal/handlers/rest/httpx"
	"parcel-locker/internal/service/geo"
)

const (
	defaultK = 5
	maxK     = 50
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
	query := r.URL.Query()

	lat, err := strconv.ParseFloat(query.Get("lat"), 64)
	if err != nil {
		httpx.BadRequest(w, h.log, "lat must be a number")
		return
	}
	lon, err := strconv.ParseFloat(query.Get("lon"), 64)
	if err != nil {
		httpx.BadRequest(w, h.log, "lon must be a number")
		return
	}

	k := defaultK
	if raw := query.Get("k"); raw != "" {
		k, err = strconv.Atoi(raw)
		if err != nil || k <= 0 || k > maxK {
			httpx.BadRequest(w, h.log, "k must be between 1 and 50")
			return
		}
	}

	lockers, err := h.service.FindNearest(r.Context(), orb.Point{lon, lat}, k)
	if err != nil {
		switch {
		case errors.Is(err, geo.ErrInvalidPoint):
			httpx.Error(w, h.log, http.StatusBadRequest, err)
		default:
			httpx.Error(w, h.log, http.StatusInternalServerError, err)
		}
		return
	}

	httpx.JSON(w, h.log, http.StatusOK, converters.FromLockerDistances(lockers))
}

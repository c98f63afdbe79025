package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"parcel-locker/internal/generated/dto"
	"parcel-locker/internal/service/assignment"
	"parcel-locker/internal/service/cabinet"
	"parcel-locker/internal/service/geo"
	"parcel-locker/internal/service/parcel"
	"parcel-locker/internal/service/progress"
	"parcel-locker/internal/service/txcode"
	"parcel-locker/pkg/logger"
)

var ErrInvalidPathID = errors.New("invalid path id")

type errorLogger interface {
	Error(msg string, fields ...logger.Field)
}

// kinds порядок важен: первое совпадение по errors.Is определяет kind.
var kinds = []struct {
	err  error
	kind string
}{
	{parcel.ErrMissingRequiredFields, "missing_required_fields"},
	{parcel.ErrInvalidDimensions, "invalid_dimensions"},
	{parcel.ErrInvalidParcelID, "invalid_parcel_id"},
	{geo.ErrInvalidPoint, "invalid_point"},
	{cabinet.ErrInvalidLockerID, "invalid_locker_id"},
	{progress.ErrUndefinedStatus, "undefined_status"},
	{progress.ErrInvalidProgress, "invalid_progress"},
	{ErrInvalidPathID, "invalid_id"},
	{parcel.ErrParcelNotFound, "parcel_not_found"},
	{parcel.ErrCustomerNotFound, "customer_not_found"},
	{geo.ErrLockerNotFound, "locker_not_found"},
	{cabinet.ErrCabinetNotFound, "cabinet_not_found"},
	{assignment.ErrDriverNotFound, "driver_not_found"},
	{txcode.ErrCodeMismatch, "code_mismatch"},
	{txcode.ErrCodeExpired, "code_expired"},
	{txcode.ErrCodeAlreadyConsumed, "code_already_consumed"},
	{txcode.ErrCodeNotIssued, "code_not_issued"},
	{parcel.ErrInvalidStateTransition, "invalid_state_transition"},
	{parcel.ErrUnknownDriverContext, "unknown_driver_context"},
	{parcel.ErrDuplicateIdempotencyKey, "duplicate_idempotency_key"},
	{parcel.ErrNoLockerAvailable, "no_locker_available"},
	{cabinet.ErrNoCabinetAvailable, "no_cabinet_available"},
	{parcel.ErrConcurrentUpdate, "concurrent_update"},
	{txcode.ErrCodeCollision, "code_collision"},
}

func Kind(err error) string {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return "internal"
}

func JSON(w http.ResponseWriter, log errorLogger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("encode JSON response", logger.NewField("error", err))
	}
}

// Error ответ {"error": kind, "message": text}. Для 5xx текст ошибки наружу не отдаётся.
func Error(w http.ResponseWriter, log errorLogger, status int, err error) {
	message := err.Error()
	if status >= http.StatusInternalServerError {
		log.Error("request failed",
			logger.NewField("status", status),
			logger.NewField("error", err),
		)
		if Kind(err) == "internal" {
			message = http.StatusText(status)
		}
	}

	JSON(w, log, status, dto.Error{
		Error:   Kind(err),
		Message: message,
	})
}

// BadRequest ошибка разбора запроса до вызова сервиса.
func BadRequest(w http.ResponseWriter, log errorLogger, message string) {
	JSON(w, log, http.StatusBadRequest, dto.Error{
		Error:   "invalid_request",
		Message: message,
	})
}

func PathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidPathID
	}
	return id, nil
}

// IsRetryable конфликт или нехватка ресурсов, клиент может повторить запрос позже.
func IsRetryable(err error) bool {
	return parcel.IsTransient(err) ||
		errors.Is(err, cabinet.ErrNoCabinetAvailable) ||
		errors.Is(err, parcel.ErrNoLockerAvailable)
}

package api

import (
	"net/http"

	"go.uber.org/zap"

	"inventory/m/domain"
	"inventory/m/internal/logger"
)

var kindStatus = map[domain.ErrorKind]int{
	domain.KindValidation:   http.StatusBadRequest,
	domain.KindBusinessRule: http.StatusBadRequest,
	domain.KindUnauthorized: http.StatusUnauthorized,
	domain.KindNotFound:     http.StatusNotFound,
	domain.KindConflict:     http.StatusConflict,
	domain.KindUnavailable:  http.StatusServiceUnavailable,
}

// statusFor maps an error to its HTTP status.
func statusFor(err error) int {
	if status, ok := kindStatus[domain.KindOf(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// fail writes err as {"error": msg}. Unexpected errors are logged and hidden.
func fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	switch status {
	case http.StatusInternalServerError:
		logger.FromContext(r.Context()).Error("request failed", zap.Error(err))
		respondError(w, status, "internal server error")
		return
	case http.StatusServiceUnavailable:
		logger.FromContext(r.Context()).Warn("retryable failure", zap.Error(err))
		w.Header().Set("Retry-After", "1")
	}
	respondError(w, status, err.Error())
}

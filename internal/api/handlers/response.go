package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/mhbaltimore/directory/internal/infrastructure/observability"
	apperrors "github.com/mhbaltimore/directory/pkg/errors"
)

type dataEnvelope struct {
	Data interface{} `json:"data"`
}

type errorBody struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details []apperrors.FieldError `json:"details,omitempty"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondWithData(w http.ResponseWriter, statusCode int, data interface{}) {
	respondWithJSON(w, statusCode, dataEnvelope{Data: data})
}

func statusFor(appErr *apperrors.AppError) int {
	switch appErr.Type {
	case apperrors.ErrorTypeValidation:
		return http.StatusBadRequest
	case apperrors.ErrorTypeNotFound:
		return http.StatusNotFound
	case apperrors.ErrorTypeConflict:
		return http.StatusConflict
	case apperrors.ErrorTypeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// respondWithError writes the error envelope for err. Anything that is not a
// client error is logged and answered with a generic message.
func respondWithError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := apperrors.As(err)
	if !ok {
		appErr = apperrors.NewInternalError("internal server error", err)
	}

	status := statusFor(appErr)
	body := errorBody{Code: appErr.Code(), Message: appErr.Message, Details: appErr.Details}
	if status >= http.StatusInternalServerError {
		observability.LoggerFromContext(r.Context()).Error().
			Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("request failed")
		body = errorBody{Code: apperrors.CodeInternal, Message: "internal server error"}
	}

	respondWithJSON(w, status, errorEnvelope{Error: body})
}

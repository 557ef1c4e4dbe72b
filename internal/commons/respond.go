package commons

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	apperrors "github.com/JunasVee/dynamits-driver/internal/errors"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type ValidationErrorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func WriteJSON(w http.ResponseWriter, logger *zap.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}

func WriteValidationError(w http.ResponseWriter, logger *zap.Logger, message string, details ...apperrors.ValidationDetail) {
	WriteJSON(w, logger, http.StatusBadRequest, ValidationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

// WriteError maps the error taxonomy to HTTP statuses. Remote-service and
// unexpected failures are logged here with the caller's trace-scoped
// logger; client errors carry their message through untouched.
func WriteError(w http.ResponseWriter, logger *zap.Logger, op string, err error) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		WriteValidationError(w, logger, ve.Message, ve.Details...)
		return
	}
	if ce, ok := apperrors.IsCoordinateError(err); ok {
		WriteJSON(w, logger, http.StatusBadRequest, ErrorResponse{Error: "COORDINATE_ERROR", Message: ce.Message})
		return
	}
	if _, ok := apperrors.IsSessionError(err); ok {
		WriteJSON(w, logger, http.StatusUnauthorized, ErrorResponse{Error: "SESSION_ERROR", Message: "not authenticated"})
		return
	}
	if nf, ok := apperrors.IsNotFoundError(err); ok {
		WriteJSON(w, logger, http.StatusNotFound, ErrorResponse{Error: "NOT_FOUND", Message: nf.Message})
		return
	}
	if cf, ok := apperrors.IsConflictError(err); ok {
		WriteJSON(w, logger, http.StatusConflict, ErrorResponse{Error: "CONFLICT", Message: cf.Message})
		return
	}
	if ge, ok := apperrors.IsGatewayError(err); ok {
		logger.Error(op, zap.String("remoteOp", ge.Op), zap.Int("remoteStatus", ge.Status), zap.Error(err))
		WriteJSON(w, logger, http.StatusBadGateway, ErrorResponse{Error: "GATEWAY_ERROR", Message: "the delivery service could not complete the request"})
		return
	}
	logger.Error(op, zap.Error(err))
	WriteJSON(w, logger, http.StatusInternalServerError, ErrorResponse{Error: "INTERNAL_ERROR", Message: "an unexpected error occurred"})
}

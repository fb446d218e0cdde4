package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/agentforge-ai/agentforge-engine/pkg/apperrors"
)

// writeServiceError maps a service error onto the HTTP surface: not-found
// becomes 404, conflicts and rejected input values become 400, everything
// else 500. notFoundCode and notFoundMessage name the missing resource.
func writeServiceError(w http.ResponseWriter, logger *zap.Logger, err error, notFoundCode, notFoundMessage string) {
	var writeErr error
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		writeErr = ErrorResponse(w, http.StatusNotFound, notFoundCode, notFoundMessage)
	case errors.Is(err, apperrors.ErrConflict):
		writeErr = ErrorResponse(w, http.StatusBadRequest, "conflict", err.Error())
	case errors.Is(err, apperrors.ErrInvalidRating):
		writeErr = ErrorResponse(w, http.StatusBadRequest, "invalid_rating", err.Error())
	case errors.Is(err, apperrors.ErrInvalidStatus):
		writeErr = ErrorResponse(w, http.StatusBadRequest, "invalid_status", err.Error())
	case errors.Is(err, apperrors.ErrInvalidPlan):
		writeErr = ErrorResponse(w, http.StatusBadRequest, "invalid_plan", err.Error())
	default:
		writeErr = ErrorResponse(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
	if writeErr != nil {
		logger.Error("Failed to write error response", zap.Error(writeErr))
	}
}

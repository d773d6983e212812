package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/smartbridge/smartbridge/core/infrastructure/logging"
	"github.com/smartbridge/smartbridge/core/infrastructure/transport/http/dto"
	"github.com/smartbridge/smartbridge/core/infrastructure/transport/http/middleware"
	sharederrors "github.com/smartbridge/smartbridge/core/shared/errors"
)

// BaseHandler provides common functionality for all handlers
type BaseHandler struct {
	logger logging.Logger
}

// NewBaseHandler creates a new base handler
func NewBaseHandler(tag string) *BaseHandler {
	return &BaseHandler{
		logger: logging.New(tag),
	}
}

// WriteJSON writes a JSON response
func (h *BaseHandler) WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Errorf("Failed to encode JSON response: %v", err)
	}
}

// WriteError writes an error response with the status of its AppError code.
// Anything that is not an AppError is reported as an internal error.
func (h *BaseHandler) WriteError(w http.ResponseWriter, err error) {
	var fieldErr *middleware.FieldError
	if errors.As(err, &fieldErr) {
		h.WriteJSON(w, fieldErr.Status, dto.ErrorResponse{
			Error:   fieldErr.Message,
			Detail:  fieldErr.Message,
			Details: fieldErr.Details,
		})
		return
	}

	appErr, ok := sharederrors.As(err)
	if !ok {
		appErr = sharederrors.Internal(err)
	}
	if appErr.Status >= http.StatusInternalServerError {
		h.logger.PrintError(string(appErr.Code), err)
	}

	h.WriteJSON(w, appErr.Status, dto.ErrorResponse{
		Error:  appErr.Message,
		Detail: appErr.Message,
	})
}

// WriteSuccess writes a success response
func (h *BaseHandler) WriteSuccess(w http.ResponseWriter, data any) {
	h.WriteJSON(w, http.StatusOK, data)
}

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/streamhub/backend/internal/logging"
	"github.com/streamhub/backend/internal/repositories"
)

// apiResponse is the uniform envelope wrapping every operation result.
type apiResponse struct {
	Status  int    `json:"status"`
	Data    any    `json:"data"`
	Message string `json:"message"`
}

func respondData(ctx context.Context, w http.ResponseWriter, status int, data any, message string) {
	respondJSON(ctx, w, status, apiResponse{Status: status, Data: data, Message: message})
}

func respondError(ctx context.Context, w http.ResponseWriter, status int, message string) {
	respondJSON(ctx, w, status, apiResponse{Status: status, Data: nil, Message: message})
}

// respondStoreError maps a repository failure onto the envelope, using the
// provided message for the common not-found case.
func respondStoreError(ctx context.Context, w http.ResponseWriter, err error, notFoundMessage string) {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		respondError(ctx, w, http.StatusNotFound, notFoundMessage)
	case errors.Is(err, repositories.ErrForbidden):
		respondError(ctx, w, http.StatusForbidden, "you do not own this resource")
	case errors.Is(err, repositories.ErrConflict):
		respondError(ctx, w, http.StatusConflict, "resource already exists")
	case errors.Is(err, repositories.ErrSelfSubscription):
		respondError(ctx, w, http.StatusBadRequest, "cannot subscribe to your own channel")
	case errors.Is(err, context.DeadlineExceeded):
		respondError(ctx, w, http.StatusServiceUnavailable, "storage timed out")
	default:
		logging.FromContext(ctx).Error("store operation failed", "error", err)
		respondError(ctx, w, http.StatusInternalServerError, "internal error")
	}
}

func respondJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.FromContext(ctx).Error("encode response body", "status", status, "error", err)
		return
	}

	logger := logging.FromContext(ctx)
	switch {
	case status >= http.StatusInternalServerError:
		logger.Error("request failed", "status", status, "response", payload)
	case status >= http.StatusBadRequest:
		logger.Warn("request returned client error", "status", status, "response", payload)
	}
}

package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/ueser-furina/noote-website/internal/ctxtr"
	"github.com/ueser-furina/noote-website/internal/entity"
	"github.com/ueser-furina/noote-website/pkg/logger/slogx"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slogx.Error(context.Background(), "encode response", slogx.Err(err))
	}
}

// writeError maps domain sentinels onto HTTP statuses. Unknown errors are
// not exposed to the client.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, entity.ErrUnauthenticated),
		errors.Is(err, ctxtr.ErrUserNotFound):
		status = http.StatusUnauthorized
		message = err.Error()

	case errors.Is(err, entity.ErrForbidden):
		status = http.StatusForbidden
		message = err.Error()

	case errors.Is(err, entity.ErrUserNotFound),
		errors.Is(err, entity.ErrNoteNotFound),
		errors.Is(err, entity.ErrCollectionNotFound),
		errors.Is(err, entity.ErrNoteNotInCollection):
		status = http.StatusNotFound
		message = err.Error()

	case errors.Is(err, entity.ErrInvalidRequest),
		errors.Is(err, entity.ErrNoIntegrableNotes),
		errors.Is(err, entity.ErrNoteAlreadyInCollection),
		errors.Is(err, entity.ErrUserAlreadyExists):
		status = http.StatusBadRequest
		message = err.Error()

	case errors.Is(err, entity.ErrMissingAPIKey),
		errors.Is(err, entity.ErrProvider):
		message = err.Error()
	}

	if status == http.StatusInternalServerError {
		slogx.Error(ctx, "request failed", slogx.Err(err))
	}

	writeJSON(w, status, errorResponse{Error: message})
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: malformed json body", entity.ErrInvalidRequest)
	}
	return nil
}

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ueser-furina/noote-website/internal/ctxtr"
	"github.com/ueser-furina/noote-website/internal/entity"
)

// authRequired rejects requests without a valid bearer token.
func (h *Handler) authRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := bearerToken(r)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}

		user, err := h.auth.Authenticate(r.Context(), token)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(ctxtr.WithUserID(r.Context(), user.ID)))
	})
}

// authOptional resolves a bearer token when present; anonymous requests
// pass through untouched. A token that is present but invalid is rejected.
func (h *Handler) authOptional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			next.ServeHTTP(w, r)
			return
		}

		token, err := bearerToken(r)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}

		user, err := h.auth.Authenticate(r.Context(), token)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(ctxtr.WithUserID(r.Context(), user.ID)))
	})
}

func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return "", fmt.Errorf("%w: missing bearer token", entity.ErrUnauthenticated)
	}

	return token, nil
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", entity.ErrInvalidRequest, name)
	}

	return id, nil
}

func queryUint(r *http.Request, name string, def uint64) uint64 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}

	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return def
	}

	return v
}

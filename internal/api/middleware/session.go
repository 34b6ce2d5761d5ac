package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Rrens/support-assistant/internal/api/response"
)

type contextKey string

const SessionHandleKey contextKey = "sessionHandle"

// GetSessionHandle gets the client session handle from context
func GetSessionHandle(ctx context.Context) (uuid.UUID, bool) {
	handle, ok := ctx.Value(SessionHandleKey).(uuid.UUID)
	return handle, ok
}

// SessionContext extracts the session handle from the URL and adds it to context
func SessionContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := chi.URLParam(r, "sessionHandle")
		if raw == "" {
			response.BadRequest(w, "missing session handle")
			return
		}

		handle, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(w, "invalid session handle")
			return
		}

		ctx := context.WithValue(r.Context(), SessionHandleKey, handle)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

package server

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/quiz-cms/internal/logging"
	httperrors "github.com/gokatarajesh/quiz-cms/pkg/http/errors"
)

// secretHeader carries the shared write/reveal secret.
const secretHeader = "X-Quiz-Secret"

// withRequestLog tags every request with an id, injects a request-scoped
// logger into the context, and logs completion with timing.
func withRequestLog(logger zerolog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		reqLogger := logger.With().
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Logger()

		w.Header().Set("X-Request-ID", requestID)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		start := time.Now()
		next.ServeHTTP(rec, r.WithContext(logging.IntoContext(r.Context(), reqLogger)))

		reqLogger.Info().
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("request completed")
	})
}

// requireSecret gates content-write routes behind the shared secret header.
// An unset secret rejects all writes rather than leaving them open.
func requireSecret(secret string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if secret == "" {
			httperrors.RespondError(w, http.StatusForbidden, httperrors.ErrCodeForbidden,
				"content writes are disabled")
			return
		}
		provided := r.Header.Get(secretHeader)
		if provided == "" ||
			subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
			httperrors.RespondUnauthorized(w, httperrors.ErrCodeUnauthorized,
				"invalid or missing "+secretHeader+" header")
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

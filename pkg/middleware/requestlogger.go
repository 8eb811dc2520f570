package middleware

import (
	"log/slog"
	"net/http"

	"github.com/utafrali/catalog-indexer/pkg/logger"
)

// RequestLogger stores a request-scoped logger in the context, enriched
// with correlation id, user id, and the active trace/span ids. Handlers
// pick it up with logger.FromContext.
//
// Mount it after RequestLogging (correlation id) and Tracing (span
// context) so those fields are populated.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			// The user id comes from the auth middleware when it ran, or
			// from the X-User-ID header on routes without auth.
			userID := UserIDFromContext(ctx)
			if userID == "" {
				userID = r.Header.Get("X-User-ID")
			}
			if userID != "" {
				ctx = logger.WithUserID(ctx, userID)
			}

			ctx = logger.NewContext(ctx, logger.WithContext(ctx, base))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

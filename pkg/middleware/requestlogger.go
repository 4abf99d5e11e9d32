package middleware

import (
	"log/slog"
	"net/http"

	"github.com/Roselynepj1/Flowerpower/pkg/logger"
)

// RequestLogger stores a request-scoped logger in the context, enriched with
// correlation_id, shopper_id, trace_id and span_id. Handlers retrieve it with
// logger.FromContext.
//
// Mount it after RequestLogging, Tracing and Shopper.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			ctx = logger.NewContext(ctx, logger.WithContext(ctx, base))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

package middleware

import (
	"net/http"

	sharedctx "github.com/smartbridge/smartbridge/core/shared/context"
)

// RequestID reuses an incoming X-Request-Id or generates one, stores it in
// the request context and echoes it on the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if id := r.Header.Get(sharedctx.RequestIDHeader); id != "" {
			ctx = sharedctx.WithRequestID(ctx, id)
		}
		ctx, id := sharedctx.EnsureRequestID(ctx)
		w.Header().Set(sharedctx.RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

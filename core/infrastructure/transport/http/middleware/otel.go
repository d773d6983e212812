package middleware

import (
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/smartbridge/smartbridge/core/observability"
	sharedctx "github.com/smartbridge/smartbridge/core/shared/context"
)

// Tracing middleware for OpenTelemetry tracing
func Tracing(next http.Handler) http.Handler {
	return otelhttp.NewHandler(
		annotate(next),
		"smartbridge.http",
		otelhttp.WithPropagators(otel.GetTextMapPropagator()),
		otelhttp.WithTracerProvider(otel.GetTracerProvider()),
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)
}

// annotate tags the server span with the request id.
func annotate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := sharedctx.GetRequestID(r.Context()); id != "" {
			trace.SpanFromContext(r.Context()).SetAttributes(attribute.String(observability.AttrRequestID, id))
		}
		next.ServeHTTP(w, r)
	})
}

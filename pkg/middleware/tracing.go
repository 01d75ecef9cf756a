package middleware

import (
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/vfg2006/donor-analytics/pkg/middleware"

// Tracing abre um span por requisição, continuando o trace recebido nos cabeçalhos.
// Sem telemetria configurada o provider global é noop.
func Tracing() func(http.Handler) http.Handler {
	tracer := otel.Tracer(tracerName)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
			ctx, span := tracer.Start(ctx, r.Method+" "+r.URL.Path,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("http.request.method", r.Method),
					attribute.String("url.path", r.URL.Path),
				),
			)
			defer span.End()

			lrw := newLoggingResponseWriter(w)
			next.ServeHTTP(lrw, r.WithContext(ctx))

			span.SetAttributes(attribute.Int("http.response.status_code", lrw.statusCode))
			if lrw.statusCode >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, http.StatusText(lrw.statusCode))
			}
		})
	}
}

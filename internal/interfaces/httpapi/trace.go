package httpapi

import (
	"context"

	"github.com/edsoncmach/cartola-paranaense/internal/platform/tracing"
	"go.opentelemetry.io/otel/trace"
)

// Middleware and response helpers share the request span opened by otelhttp;
// only handlers get a span of their own.
var apiTracer = tracing.New("cartola-paranaense/internal/interfaces/httpapi", "httpapi.Handler.")

func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return apiTracer.Start(ctx, name)
}

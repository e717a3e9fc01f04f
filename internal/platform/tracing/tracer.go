package tracing

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var noopSpan = trace.SpanFromContext(context.Background())

// Tracer opens child spans for one layer of the service. It never starts a
// root span, so untraced requests such as health probes stay span free.
type Tracer struct {
	scope  string
	prefix string
}

// New returns a tracer that only emits spans whose name starts with prefix.
// An empty prefix accepts every non-empty name.
func New(scope, prefix string) Tracer {
	return Tracer{scope: scope, prefix: prefix}
}

func (t Tracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	if !t.Accepts(name) {
		return ctx, noopSpan
	}
	if !trace.SpanFromContext(ctx).SpanContext().IsValid() {
		return ctx, noopSpan
	}
	// Resolved per call so a provider installed after package init is used.
	return otel.Tracer(t.scope).Start(ctx, name, opts...)
}

func (t Tracer) Accepts(name string) bool {
	if strings.TrimSpace(name) == "" {
		return false
	}
	return strings.HasPrefix(name, t.prefix)
}

// RecordError marks span as failed. A nil err is ignored.
func RecordError(span trace.Span, err error) {
	if err == nil || span == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

package usecase

import (
	"context"

	"github.com/edsoncmach/cartola-paranaense/internal/platform/tracing"
	"go.opentelemetry.io/otel/trace"
)

var usecaseTracer = tracing.New("cartola-paranaense/internal/usecase", "usecase.")

func startUsecaseSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return usecaseTracer.Start(ctx, name)
}

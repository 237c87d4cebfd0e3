package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dukex/rocklms/pkg/otelhelper"
)

// NewTracing installs the OTLP tracer provider when enabled. The returned
// function flushes and shuts it down; it is a no-op when tracing is disabled.
func NewTracing(ctx context.Context, enabled bool, serviceName string, logger *slog.Logger) (func(context.Context) error, error) {
	if !enabled {
		return func(context.Context) error { return nil }, nil
	}

	provider, err := otelhelper.NewTracerProvider(ctx, serviceName)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracer: %w", err)
	}

	logger.InfoContext(ctx, "Tracing enabled", "service", serviceName)

	return provider.Shutdown, nil
}

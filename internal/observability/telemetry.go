// Package observability starts the tracing and profiling side channels of the
// API process and stops them in reverse order.
package observability

import (
	"context"
	"errors"
	"fmt"

	"github.com/edsoncmach/cartola-paranaense/internal/config"
	"github.com/edsoncmach/cartola-paranaense/internal/platform/logging"
)

type stopFunc func(context.Context) error

type component struct {
	name  string
	start func(config.Config, *logging.Logger) (stopFunc, error)
}

// Telemetry holds whatever Start enabled.
type Telemetry struct {
	logger  *logging.Logger
	names   []string
	stopFns []stopFunc
}

// Start brings up Uptrace tracing, Pyroscope profiling and the pprof listener,
// each only when its config flag is set. On failure the already started parts
// are stopped before returning.
func Start(cfg config.Config, logger *logging.Logger) (*Telemetry, error) {
	if logger == nil {
		logger = logging.Default()
	}
	t := &Telemetry{logger: logger}

	components := []component{
		{name: "uptrace", start: startUptrace},
		{name: "pyroscope", start: startPyroscope},
		{name: "pprof", start: startPprof},
	}
	for _, c := range components {
		stop, err := c.start(cfg, logger)
		if err != nil {
			if stopErr := t.Shutdown(context.Background()); stopErr != nil {
				logger.Warn("stop telemetry after failed start", "error", stopErr)
			}
			return nil, fmt.Errorf("start %s: %w", c.name, err)
		}
		if stop != nil {
			t.names = append(t.names, c.name)
			t.stopFns = append(t.stopFns, stop)
		}
	}
	return t, nil
}

// Enabled lists the running components in start order.
func (t *Telemetry) Enabled() []string {
	return append([]string(nil), t.names...)
}

func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error
	for i := len(t.stopFns) - 1; i >= 0; i-- {
		if err := t.stopFns[i](ctx); err != nil {
			errs = append(errs, fmt.Errorf("stop %s: %w", t.names[i], err))
			continue
		}
		t.logger.Info("telemetry stopped", "component", t.names[i])
	}
	t.names, t.stopFns = nil, nil
	return errors.Join(errs...)
}

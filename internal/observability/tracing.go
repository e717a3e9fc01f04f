package observability

import (
	"strings"

	"github.com/edsoncmach/cartola-paranaense/internal/config"
	"github.com/edsoncmach/cartola-paranaense/internal/platform/logging"
	"github.com/uptrace/uptrace-go/uptrace"
)

// startUptrace installs the global OpenTelemetry providers that otelhttp,
// otelsql and the handler spans report to.
func startUptrace(cfg config.Config, logger *logging.Logger) (stopFunc, error) {
	if !cfg.UptraceEnabled {
		logger.Info("uptrace disabled", "reason", "UPTRACE_ENABLED=false")
		return nil, nil
	}
	if strings.TrimSpace(cfg.UptraceDSN) == "" {
		logger.Info("uptrace disabled", "reason", "UPTRACE_DSN empty")
		return nil, nil
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
		uptrace.WithLoggingEnabled(cfg.UptraceLogsEnabled),
	)
	logger.Info("uptrace enabled", "logs_enabled", cfg.UptraceLogsEnabled)

	return uptrace.Shutdown, nil
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/edsoncmach/cartola-paranaense/internal/domain/money"
	"github.com/edsoncmach/cartola-paranaense/internal/platform/logging"
	"github.com/joho/godotenv"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                     string
	ServiceName                string
	ServiceVersion             string
	HTTPAddr                   string
	ReadTimeout                time.Duration
	WriteTimeout               time.Duration
	ShutdownTimeout            time.Duration
	LogLevel                   logging.Level
	DBURL                      string
	DBDisablePreparedBinary    bool
	DBSeedOnStart              bool
	CacheEnabled               bool
	CacheTTL                   time.Duration
	CORSAllowedOrigins         []string
	JWTSecret                  string
	JWTIssuer                  string
	AdminToken                 string
	RedisURL                   string
	RedisPoolSize              int
	RedisTimeout               time.Duration
	RedisKeyPrefix             string
	RedisCircuitEnabled        bool
	RedisCircuitFailureCount   int
	RedisCircuitOpenTimeout    time.Duration
	RedisCircuitHalfOpenMaxReq int
	ConfirmationTTL            time.Duration
	ConfirmationSweepInterval  time.Duration
	RosterSessionIdleTTL       time.Duration
	StandingsRefreshInterval   time.Duration
	SettlementWorkers          int
	InitialBalance             money.Amount
	PprofEnabled               bool
	PprofAddr                  string
	UptraceEnabled             bool
	UptraceDSN                 string
	UptraceLogsEnabled         bool
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
}

// Load reads the environment, after merging an optional dotenv file. Variables
// already set in the process win over the file.
func Load() (Config, error) {
	if err := loadDotEnv(); err != nil {
		return Config{}, err
	}

	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:                     appEnv,
		ServiceName:                getEnv("APP_SERVICE_NAME", "cartola-paranaense-api"),
		ServiceVersion:             getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                   getEnv("APP_HTTP_ADDR", ":8080"),
		LogLevel:                   logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")),
		DBURL:                      strings.TrimSpace(getEnv("DB_URL", "")),
		CORSAllowedOrigins:         splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		JWTSecret:                  strings.TrimSpace(getEnv("AUTH_JWT_SECRET", "")),
		JWTIssuer:                  strings.TrimSpace(getEnv("AUTH_JWT_ISSUER", "")),
		AdminToken:                 strings.TrimSpace(getEnv("ADMIN_TOKEN", "")),
		RedisURL:                   strings.TrimSpace(getEnv("REDIS_URL", "")),
		RedisKeyPrefix:             strings.TrimSpace(getEnv("REDIS_KEY_PREFIX", "cartola:confirmation")),
		PprofAddr:                  strings.TrimSpace(getEnv("PPROF_ADDR", ":6060")),
		PyroscopeServerAddress:     strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", "")),
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("AUTH_JWT_SECRET is required")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}
	if appEnv == EnvProd && cfg.DBURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required when APP_ENV=%s", EnvProd)
	}

	durations := []struct {
		key      string
		fallback string
		dst      *time.Duration
	}{
		{"APP_READ_TIMEOUT", "10s", &cfg.ReadTimeout},
		{"APP_WRITE_TIMEOUT", "15s", &cfg.WriteTimeout},
		{"APP_SHUTDOWN_TIMEOUT", "10s", &cfg.ShutdownTimeout},
		{"CACHE_TTL", "60s", &cfg.CacheTTL},
		{"REDIS_TIMEOUT", "3s", &cfg.RedisTimeout},
		{"REDIS_CIRCUIT_OPEN_TIMEOUT", "15s", &cfg.RedisCircuitOpenTimeout},
		{"CONFIRMATION_TTL", "2m", &cfg.ConfirmationTTL},
		{"CONFIRMATION_SWEEP_INTERVAL", "1m", &cfg.ConfirmationSweepInterval},
		{"ROSTER_SESSION_IDLE_TTL", "30m", &cfg.RosterSessionIdleTTL},
		{"STANDINGS_REFRESH_INTERVAL", "5m", &cfg.StandingsRefreshInterval},
		{"PYROSCOPE_UPLOAD_RATE", "15s", &cfg.PyroscopeUploadRate},
	}
	for _, d := range durations {
		value, err := time.ParseDuration(getEnv(d.key, d.fallback))
		if err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", d.key, err)
		}
		if value <= 0 {
			return Config{}, fmt.Errorf("%s must be > 0", d.key)
		}
		*d.dst = value
	}

	flags := []struct {
		key      string
		fallback string
		dst      *bool
	}{
		{"DB_DISABLE_PREPARED_BINARY_RESULT", "true", &cfg.DBDisablePreparedBinary},
		{"DB_SEED_ON_START", strconv.FormatBool(appEnv == EnvDev), &cfg.DBSeedOnStart},
		{"CACHE_ENABLED", "true", &cfg.CacheEnabled},
		{"REDIS_CIRCUIT_ENABLED", "true", &cfg.RedisCircuitEnabled},
		{"PPROF_ENABLED", "false", &cfg.PprofEnabled},
		{"UPTRACE_ENABLED", "false", &cfg.UptraceEnabled},
		{"UPTRACE_LOGS_ENABLED", "true", &cfg.UptraceLogsEnabled},
		{"PYROSCOPE_ENABLED", "false", &cfg.PyroscopeEnabled},
	}
	for _, f := range flags {
		value, err := strconv.ParseBool(getEnv(f.key, f.fallback))
		if err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", f.key, err)
		}
		*f.dst = value
	}

	ints := []struct {
		key      string
		fallback int
		min      int
		dst      *int
	}{
		{"REDIS_POOL_SIZE", 10, 1, &cfg.RedisPoolSize},
		{"REDIS_CIRCUIT_FAILURE_COUNT", 5, 1, &cfg.RedisCircuitFailureCount},
		{"REDIS_CIRCUIT_HALF_OPEN_MAX_REQ", 1, 1, &cfg.RedisCircuitHalfOpenMaxReq},
		{"SETTLEMENT_WORKERS", 8, 1, &cfg.SettlementWorkers},
	}
	for _, n := range ints {
		value, err := getEnvAsInt(n.key, n.fallback)
		if err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", n.key, err)
		}
		if value < n.min {
			return Config{}, fmt.Errorf("%s must be >= %d", n.key, n.min)
		}
		*n.dst = value
	}

	initialBalance, err := money.Parse(getEnv("INITIAL_BALANCE", "100.00"))
	if err != nil {
		return Config{}, fmt.Errorf("parse INITIAL_BALANCE: %w", err)
	}
	cfg.InitialBalance = initialBalance

	cfg.UptraceDSN = strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if cfg.UptraceDSN == "" {
		cfg.UptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if cfg.UptraceEnabled && cfg.UptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	if cfg.PprofEnabled && cfg.PprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}
	if cfg.PyroscopeEnabled && cfg.PyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}

	return cfg, nil
}

// loadDotEnv merges ENV_FILE when set, or ./.env when present.
func loadDotEnv() error {
	if path := strings.TrimSpace(os.Getenv("ENV_FILE")); path != "" {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load ENV_FILE %s: %w", path, err)
		}
		return nil
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

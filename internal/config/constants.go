package config

const (
	envPort            = "PORT"
	envDefaultTarget   = "DREAD_DEFAULT_TARGET"
	envStoreBackend    = "DREAD_STORE_BACKEND"
	envStorePath       = "DREAD_STORE_PATH"
	envArchiveDir      = "DREAD_ARCHIVE_DIR"
	envArchiveWeeks    = "DREAD_ARCHIVE_RETENTION_WEEKS"
	envMetricsPort     = "METRICS_PORT"
	envMetricsOn       = "METRICS_ENABLED"
	envOtelEndpoint    = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService     = "OTEL_SERVICE_NAME"
	envOtelInsecure    = "OTEL_EXPORTER_OTLP_INSECURE"
	envLogLevel        = "LOG_LEVEL"
	envLogFormat       = "LOG_FORMAT"
	envShutdownTimeout = "SHUTDOWN_TIMEOUT"

	defaultPort          = "4000"
	defaultTarget        = 50
	defaultStorePath     = "data/dread-tracker.json"
	defaultArchiveDir    = "data/weeks"
	defaultMetricsPort   = "9090"
	defaultServiceName   = "dread-tracker"
	defaultLogLevel      = "info"
	defaultLogFormat     = "text"
	defaultShutdownGrace = "5s"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendBolt   = "bolt"
	BackendSQLite = "sqlite"
)

package config

import "time"

const (
	envPort           = "PORT"
	envLogLevel       = "LOG_LEVEL"
	envLogFormat      = "LOG_FORMAT"
	envRosterSource   = "ROSTER_SOURCE"
	envRosterPath     = "ROSTER_PATH"
	envRosterAttempts = "ROSTER_LOAD_ATTEMPTS"
	envRosterBackoff  = "ROSTER_RETRY_BACKOFF"
	envAdminToken     = "ADMIN_TOKEN"
	envCORSOrigins    = "CORS_ALLOWED_ORIGINS"
	envPreset         = "SIMILARITY_PRESET"
	envNeighborCount  = "NEIGHBOR_COUNT"
	envClusterCount   = "CLUSTER_COUNT"
	envClusterSeed    = "CLUSTER_SEED"
	envClusterMaxIter = "CLUSTER_MAX_ITERATIONS"
	envProjWorkers    = "PROJECTION_WORKERS"
	envMCPEnabled     = "MCP_ENABLED"
	envMetricsPort    = "METRICS_PORT"
	envMetricsOn      = "METRICS_ENABLED"
	envOtelEndpoint   = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService    = "OTEL_SERVICE_NAME"
	envOtelInsecure   = "OTEL_EXPORTER_OTLP_INSECURE"

	defaultPort      = "4000"
	defaultLogLevel  = "info"
	defaultLogFormat = "text"

	SourceFixture = "fixture"
	SourceCSV     = "csv"
	SourceSQLite  = "sqlite"

	defaultRosterSource   = SourceFixture
	defaultRosterAttempts = 3
	defaultRosterBackoff  = 200 * time.Millisecond

	defaultPreset         = "profile"
	defaultNeighborCount  = 5
	defaultClusterCount   = 5
	defaultClusterSeed    = 42
	defaultClusterMaxIter = 100

	defaultMCPEnabled  = true
	defaultMetricsPort = "9090"
	defaultServiceName = "nba-player-analytics"
)

package config

// Config holds runtime configuration for the server.
type Config struct {
	Port        string
	Log         LogConfig
	Roster      RosterConfig
	Analytics   AnalyticsConfig
	AdminToken  string
	CORSOrigins []string
	MCPEnabled  bool
	Metrics     MetricsConfig
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port: envOrDefault(envPort, defaultPort),
		Log: LogConfig{
			Level:  envOrDefault(envLogLevel, defaultLogLevel),
			Format: envOrDefault(envLogFormat, defaultLogFormat),
		},
		Roster:      loadRoster(),
		Analytics:   loadAnalytics(),
		AdminToken:  envOrDefault(envAdminToken, ""),
		CORSOrigins: listEnvOrDefault(envCORSOrigins, nil),
		MCPEnabled:  boolEnvOrDefault(envMCPEnabled, defaultMCPEnabled),
		Metrics:     loadMetrics(),
	}
}

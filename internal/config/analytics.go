package config

import "runtime"

// AnalyticsConfig holds request defaults for the analytics endpoints.
type AnalyticsConfig struct {
	Preset               string
	NeighborCount        int
	ClusterCount         int
	ClusterSeed          int64
	ClusterMaxIterations int
	ProjectionWorkers    int
}

func loadAnalytics() AnalyticsConfig {
	return AnalyticsConfig{
		Preset:               envOrDefault(envPreset, defaultPreset),
		NeighborCount:        intEnvOrDefault(envNeighborCount, defaultNeighborCount),
		ClusterCount:         intEnvOrDefault(envClusterCount, defaultClusterCount),
		ClusterSeed:          int64EnvOrDefault(envClusterSeed, defaultClusterSeed),
		ClusterMaxIterations: intEnvOrDefault(envClusterMaxIter, defaultClusterMaxIter),
		ProjectionWorkers:    intEnvOrDefault(envProjWorkers, runtime.GOMAXPROCS(0)),
	}
}

package metrics

import (
	"sync"
	"time"
)

type callStats struct {
	calls          int
	errors         int
	retries        int
	lastRetryDelay time.Duration
	lastLatency    time.Duration
}

// Recorder captures lightweight, in-memory metrics about roster fetches and
// analytics operations, and mirrors them to OpenTelemetry when configured.
type Recorder struct {
	mu         sync.Mutex
	providers  map[string]*callStats
	operations map[string]*callStats
	fallbacks  map[string]int
	rosterSize int
	clusters   ClusterStats
	otel       *otelInstruments
}

// ClusterStats summarizes k-means runs.
type ClusterStats struct {
	Runs           int
	Unconverged    int
	LastIterations int
	LastK          int
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		providers:  make(map[string]*callStats),
		operations: make(map[string]*callStats),
		fallbacks:  make(map[string]int),
		otel:       otel,
	}
}

// RecordProviderAttempt increments counters for a roster fetch and stores the last observed latency.
func (r *Recorder) RecordProviderAttempt(provider string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := ensure(r.providers, provider)
	stats.calls++
	stats.lastLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordProviderAttempt(provider, duration, err)
	}
}

// RecordRetry tracks that a roster fetch will be retried after delay.
func (r *Recorder) RecordRetry(provider string, delay time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := ensure(r.providers, provider)
	stats.retries++
	if delay > 0 {
		stats.lastRetryDelay = delay
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRetry(provider, delay)
	}
}

// RecordRosterLoaded stores the size of the pool most recently swapped in.
func (r *Recorder) RecordRosterLoaded(source string, count int) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.rosterSize = count
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRosterLoad(source, count)
	}
}

// RecordOperation tracks one analytics call (similar, project, cluster, ...).
func (r *Recorder) RecordOperation(op string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := ensure(r.operations, op)
	stats.calls++
	stats.lastLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordOperation(op, duration, err)
	}
}

// RecordProjectionFallback counts a projected stat that fell back to the age curve.
func (r *Recorder) RecordProjectionFallback(stat string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.fallbacks[stat]++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordFallback(stat)
	}
}

// RecordClusterRun tracks iterations used by a k-means run.
func (r *Recorder) RecordClusterRun(k, iterations int, converged bool) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.clusters.Runs++
	r.clusters.LastIterations = iterations
	r.clusters.LastK = k
	if !converged {
		r.clusters.Unconverged++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordClusterRun(k, iterations, converged)
	}
}

// ProviderCalls returns the total attempts recorded for a provider.
func (r *Recorder) ProviderCalls(provider string) int {
	return r.Snapshot(provider).Calls
}

// ProviderErrors returns the total failed attempts recorded for a provider.
func (r *Recorder) ProviderErrors(provider string) int {
	return r.Snapshot(provider).Errors
}

// ProviderRetries returns how many retries were scheduled for a provider.
func (r *Recorder) ProviderRetries(provider string) int {
	return r.Snapshot(provider).Retries
}

// LastCallLatency returns the last recorded latency for a provider call.
func (r *Recorder) LastCallLatency(provider string) time.Duration {
	return r.Snapshot(provider).LastLatency
}

// ProjectionFallbacks returns the fallback count for one projected stat.
func (r *Recorder) ProjectionFallbacks(stat string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fallbacks[stat]
}

// RosterSize returns the size of the last loaded roster.
func (r *Recorder) RosterSize() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rosterSize
}

// Clusters returns a copy of the k-means counters.
func (r *Recorder) Clusters() ClusterStats {
	if r == nil {
		return ClusterStats{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clusters
}

// Snapshot returns a copy of the current stats for a provider or operation.
type Snapshot struct {
	Calls          int
	Errors         int
	Retries        int
	LastRetryDelay time.Duration
	LastLatency    time.Duration
}

func (r *Recorder) Snapshot(provider string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	return r.snapshot(r.providers, provider)
}

// Operation returns a copy of the stats for an analytics operation.
func (r *Recorder) Operation(op string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	return r.snapshot(r.operations, op)
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

func (r *Recorder) snapshot(table map[string]*callStats, key string) Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := table[key]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:          stats.calls,
		Errors:         stats.errors,
		Retries:        stats.retries,
		LastRetryDelay: stats.lastRetryDelay,
		LastLatency:    stats.lastLatency,
	}
}

// ensure must be called with the recorder lock held.
func ensure(table map[string]*callStats, key string) *callStats {
	stats, ok := table[key]
	if !ok {
		stats = &callStats{}
		table[key] = stats
	}
	return stats
}

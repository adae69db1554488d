package metrics

import (
	"errors"
	"testing"
	"time"
)

func TestRecorderTracksProviderAttemptsAndErrors(t *testing.T) {
	rec := NewRecorder()
	rec.RecordProviderAttempt("csv", 10*time.Millisecond, nil)
	rec.RecordProviderAttempt("csv", 15*time.Millisecond, errors.New("boom"))

	if got := rec.ProviderCalls("csv"); got != 2 {
		t.Fatalf("expected 2 calls, got %d", got)
	}
	if got := rec.ProviderErrors("csv"); got != 1 {
		t.Fatalf("expected 1 error, got %d", got)
	}
	if got := rec.LastCallLatency("csv"); got != 15*time.Millisecond {
		t.Fatalf("expected last latency to be 15ms, got %s", got)
	}

	snap := rec.Snapshot("csv")
	if snap.Calls != 2 || snap.Errors != 1 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}

func TestRecorderTracksRetries(t *testing.T) {
	rec := NewRecorder()
	rec.RecordRetry("sqlite", 5*time.Second)
	rec.RecordRetry("sqlite", 0)

	if got := rec.ProviderRetries("sqlite"); got != 2 {
		t.Fatalf("expected 2 retries, got %d", got)
	}
	if got := rec.Snapshot("sqlite").LastRetryDelay; got != 5*time.Second {
		t.Fatalf("expected last retry delay to be 5s, got %s", got)
	}
}

func TestRecorderTracksAnalytics(t *testing.T) {
	rec := NewRecorder()
	rec.RecordOperation("similar", time.Millisecond, nil)
	rec.RecordOperation("similar", time.Millisecond, errors.New("missing feature"))
	rec.RecordProjectionFallback("points")
	rec.RecordProjectionFallback("points")
	rec.RecordClusterRun(5, 7, true)
	rec.RecordClusterRun(3, 100, false)
	rec.RecordRosterLoaded("fixture", 25)

	if op := rec.Operation("similar"); op.Calls != 2 || op.Errors != 1 {
		t.Fatalf("unexpected operation snapshot %+v", op)
	}
	if got := rec.ProjectionFallbacks("points"); got != 2 {
		t.Fatalf("expected 2 fallbacks, got %d", got)
	}
	if got := rec.Clusters(); got.Runs != 2 || got.Unconverged != 1 || got.LastIterations != 100 || got.LastK != 3 {
		t.Fatalf("unexpected cluster stats %+v", got)
	}
	if got := rec.RosterSize(); got != 25 {
		t.Fatalf("expected roster size 25, got %d", got)
	}
	if rec.Operation("unknown") != (Snapshot{}) {
		t.Fatalf("expected empty snapshot for unknown operation")
	}
}

func TestNilRecorderIsSafe(t *testing.T) {
	var rec *Recorder
	rec.RecordProviderAttempt("csv", time.Millisecond, nil)
	rec.RecordRetry("csv", time.Second)
	rec.RecordOperation("project", time.Millisecond, nil)
	rec.RecordProjectionFallback("points")
	rec.RecordClusterRun(1, 1, true)
	rec.RecordRosterLoaded("csv", 1)
	rec.RecordHTTPRequest("GET", "/health", 200, time.Millisecond)

	if rec.ProviderCalls("csv") != 0 || rec.RosterSize() != 0 || rec.Clusters().Runs != 0 {
		t.Fatalf("nil recorder should report zero values")
	}
}

package server

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/preston-bernstein/nba-player-analytics/internal/config"
	"github.com/preston-bernstein/nba-player-analytics/internal/images"
	"github.com/preston-bernstein/nba-player-analytics/internal/providers"
	"github.com/preston-bernstein/nba-player-analytics/internal/providers/csvfile"
	"github.com/preston-bernstein/nba-player-analytics/internal/providers/fixture"
	"github.com/preston-bernstein/nba-player-analytics/internal/testutil"
)

func TestProviderFactoryWrapsFixtureWithRetry(t *testing.T) {
	factory := newProviderFactory(nil, nil)
	prov, closer, err := factory.build(context.Background(), config.RosterConfig{Source: config.SourceFixture})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if closer != nil {
		t.Fatalf("fixture source should not need closing")
	}
	if got := providers.NameOf(prov, ""); got != fixture.Name {
		t.Fatalf("expected wrapped provider to keep fixture name, got %q", got)
	}
	records, err := prov.FetchRoster(context.Background())
	if err != nil || len(records) == 0 {
		t.Fatalf("expected fixture roster, got %d records err=%v", len(records), err)
	}
}

func TestSelectProviderFallsBackToFixture(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	prov, _, err := selectProvider(context.Background(), config.RosterConfig{Source: "ftp"}, nil, logger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := prov.(*fixture.Provider); !ok {
		t.Fatalf("expected fixture fallback, got %T", prov)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected fallback to be logged")
	}
}

func TestSelectProviderChoosesCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "players.csv")
	if err := os.WriteFile(path, fixture.CSV(), 0o600); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	prov, _, err := selectProvider(context.Background(), config.RosterConfig{Source: config.SourceCSV, Path: path}, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := prov.(*csvfile.Provider); !ok {
		t.Fatalf("expected csv provider, got %T", prov)
	}
}

func TestSelectProviderRequiresPath(t *testing.T) {
	for _, source := range []string{config.SourceCSV, config.SourceSQLite} {
		_, _, err := selectProvider(context.Background(), config.RosterConfig{Source: source}, nil, nil)
		if !errors.Is(err, errRosterPathRequired) {
			t.Fatalf("%s: expected path error, got %v", source, err)
		}
	}
}

type stubCloser struct{ closed int }

func (c *stubCloser) Close() error {
	c.closed++
	return nil
}

func TestSelectProviderSQLiteReturnsCloser(t *testing.T) {
	orig := sqliteOpen
	defer func() { sqliteOpen = orig }()

	closer := &stubCloser{}
	var gotPath string
	sqliteOpen = func(ctx context.Context, path string, resolver images.Resolver) (providers.RosterProvider, io.Closer, error) {
		if _, ok := ctx.Deadline(); !ok {
			t.Fatalf("expected open to be bounded by a deadline")
		}
		gotPath = path
		return testutil.StaticProvider{}, closer, nil
	}

	_, c, err := selectProvider(context.Background(), config.RosterConfig{Source: config.SourceSQLite, Path: "players.db"}, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "players.db" || c != closer {
		t.Fatalf("expected sqlite open with path and closer passthrough")
	}
}

func TestProviderFactoryPropagatesOpenError(t *testing.T) {
	orig := sqliteOpen
	defer func() { sqliteOpen = orig }()

	boom := errors.New("disk gone")
	sqliteOpen = func(context.Context, string, images.Resolver) (providers.RosterProvider, io.Closer, error) {
		return nil, nil, boom
	}

	_, _, err := newProviderFactory(nil, nil).build(context.Background(), config.RosterConfig{Source: config.SourceSQLite, Path: "x.db"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected open error, got %v", err)
	}
}

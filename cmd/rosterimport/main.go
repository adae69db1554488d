// Command rosterimport loads a roster CSV (or the embedded fixture) into a
// SQLite database that the server can read with ROSTER_SOURCE=sqlite.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/preston-bernstein/nba-player-analytics/internal/images"
	"github.com/preston-bernstein/nba-player-analytics/internal/providers"
	"github.com/preston-bernstein/nba-player-analytics/internal/providers/csvfile"
	"github.com/preston-bernstein/nba-player-analytics/internal/providers/fixture"
	"github.com/preston-bernstein/nba-player-analytics/internal/providers/sqlite"
)

var errNoDatabase = errors.New("-db is required")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "rosterimport: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("rosterimport", flag.ContinueOnError)
	var (
		csvPath = fs.String("csv", "", "roster CSV to import (empty = embedded fixture)")
		dbPath  = fs.String("db", "", "SQLite database to write")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *dbPath == "" {
		return errNoDatabase
	}

	resolver := images.NewDefaultResolver()
	var source providers.RosterProvider = fixture.New(resolver)
	if *csvPath != "" {
		source = csvfile.New(*csvPath, resolver)
	}

	records, err := source.FetchRoster(ctx)
	if err != nil {
		return fmt.Errorf("read roster: %w", err)
	}

	db, err := sql.Open("sqlite", *dbPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", *dbPath, err)
	}
	defer db.Close()

	if err := sqlite.Import(ctx, db, records); err != nil {
		return err
	}
	fmt.Fprintf(out, "imported %d players from %s into %s\n", len(records), providers.NameOf(source, "source"), *dbPath)
	return nil
}

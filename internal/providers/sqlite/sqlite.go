// Package sqlite loads the roster from a SQLite database through the pure-Go
// glebarez driver.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	_ "github.com/glebarez/go-sqlite"

	"github.com/preston-bernstein/nba-player-analytics/internal/domain/players"
	"github.com/preston-bernstein/nba-player-analytics/internal/images"
	"github.com/preston-bernstein/nba-player-analytics/internal/providers"
)

const (
	// Name identifies the SQLite provider in logs and metrics.
	Name       = "sqlite"
	driverName = "sqlite"

	busyRetryAfter = 250 * time.Millisecond
)

// Schema creates the players table. Nullable REAL columns hold missing stats.
const Schema = `CREATE TABLE IF NOT EXISTS players (
	position          INTEGER PRIMARY KEY,
	name              TEXT NOT NULL,
	team              TEXT NOT NULL DEFAULT '',
	age               REAL,
	height            REAL,
	weight            REAL,
	college           TEXT NOT NULL DEFAULT '',
	country           TEXT NOT NULL DEFAULT '',
	country_code      TEXT NOT NULL DEFAULT '',
	draft_year        REAL,
	draft_round       TEXT NOT NULL DEFAULT '',
	draft_number      TEXT NOT NULL DEFAULT '',
	games_played      REAL,
	points            REAL,
	rebounds          REAL,
	assists           REAL,
	net_rating        REAL,
	off_reb_pct       REAL,
	def_reb_pct       REAL,
	usage_pct         REAL,
	true_shooting_pct REAL,
	assist_pct        REAL
)`

const columns = `name, team, age, height, weight, college, country, country_code,
	draft_year, draft_round, draft_number, games_played, points, rebounds, assists,
	net_rating, off_reb_pct, def_reb_pct, usage_pct, true_shooting_pct, assist_pct`

// Provider reads the players table ordered by position.
type Provider struct {
	db       *sql.DB
	source   string
	resolver images.Resolver
	owned    bool
}

// Open opens the database at path and verifies the connection.
func Open(ctx context.Context, path string, resolver images.Resolver) (*Provider, error) {
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite %s: %w", path, err)
	}
	p := New(db, resolver)
	p.source = path
	p.owned = true
	return p, nil
}

// New wraps an existing handle; the caller keeps ownership of db.
func New(db *sql.DB, resolver images.Resolver) *Provider {
	if resolver == nil {
		resolver = images.NewDefaultResolver()
	}
	return &Provider{db: db, source: "db", resolver: resolver}
}

func (p *Provider) Name() string {
	return Name
}

// Close releases the handle when the provider opened it.
func (p *Provider) Close() error {
	if p == nil || !p.owned || p.db == nil {
		return nil
	}
	return p.db.Close()
}

// FetchRoster reads every row and assigns dense IDs in position order.
func (p *Provider) FetchRoster(ctx context.Context) ([]players.Record, error) {
	rows, err := p.db.QueryContext(ctx, "SELECT "+columns+" FROM players ORDER BY position")
	if err != nil {
		return nil, p.classify(err)
	}
	defer rows.Close()

	var out []players.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, providers.Permanent(Name, p.source, err)
		}
		rec.ID = len(out)
		rec.ImageURL = p.resolver.Resolve(rec.Name)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, p.classify(err)
	}
	if len(out) == 0 {
		return nil, providers.Permanent(Name, p.source, errors.New("players table is empty"))
	}
	return out, nil
}

// Import replaces the players table with records inside one transaction.
func Import(ctx context.Context, db *sql.DB, records []players.Record) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM players"); err != nil {
		return fmt.Errorf("clear players: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, "INSERT INTO players (position, "+columns+
		") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		_, err := stmt.ExecContext(ctx, i,
			r.Name, r.Team, nullable(r.Age), nullable(r.Height), nullable(r.Weight),
			r.College, r.Country, r.CountryCode,
			nullable(r.Draft.Year), r.Draft.Round, r.Draft.Number,
			nullable(r.GamesPlayed), nullable(r.Points), nullable(r.Rebounds), nullable(r.Assists),
			nullable(r.NetRating), nullable(r.OffRebPct), nullable(r.DefRebPct),
			nullable(r.UsagePct), nullable(r.TrueShootingPct), nullable(r.AssistPct),
		)
		if err != nil {
			return fmt.Errorf("insert %s: %w", r.Name, err)
		}
	}
	return tx.Commit()
}

var (
	errNotFinite = errors.New("stat is not a finite number")
	errEmptyName = errors.New("player name is empty")
)

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (players.Record, error) {
	var (
		rec   players.Record
		stats [14]sql.NullFloat64
	)
	err := row.Scan(
		&rec.Name, &rec.Team, &stats[0], &stats[1], &stats[2],
		&rec.College, &rec.Country, &rec.CountryCode,
		&stats[3], &rec.Draft.Round, &rec.Draft.Number,
		&stats[4], &stats[5], &stats[6], &stats[7],
		&stats[8], &stats[9], &stats[10], &stats[11], &stats[12], &stats[13],
	)
	if err != nil {
		return players.Record{}, fmt.Errorf("scan player: %w", err)
	}
	targets := []*players.Stat{
		&rec.Age, &rec.Height, &rec.Weight, &rec.Draft.Year,
		&rec.GamesPlayed, &rec.Points, &rec.Rebounds, &rec.Assists,
		&rec.NetRating, &rec.OffRebPct, &rec.DefRebPct, &rec.UsagePct, &rec.TrueShootingPct, &rec.AssistPct,
	}
	for i, dst := range targets {
		*dst = fromNull(stats[i])
		if dst.Valid && (math.IsNaN(dst.Value) || math.IsInf(dst.Value, 0)) {
			return players.Record{}, fmt.Errorf("player %q: %w", rec.Name, errNotFinite)
		}
	}
	rec.Name = strings.TrimSpace(rec.Name)
	if rec.Name == "" {
		return players.Record{}, errEmptyName
	}
	return rec, nil
}

func fromNull(v sql.NullFloat64) players.Stat {
	if !v.Valid {
		return players.Missing()
	}
	return players.Known(v.Float64)
}

func nullable(s players.Stat) sql.NullFloat64 {
	return sql.NullFloat64{Float64: s.Value, Valid: s.Valid}
}

// classify marks lock contention as retryable and schema problems as permanent.
func (p *Provider) classify(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "database is locked"), strings.Contains(msg, "sqlite_busy"):
		return &providers.SourceError{Provider: Name, Source: p.source, Temporary: true, RetryAfter: busyRetryAfter, Err: err}
	case strings.Contains(msg, "no such table"), strings.Contains(msg, "no such column"):
		return providers.Permanent(Name, p.source, err)
	default:
		return providers.Temporary(Name, p.source, err)
	}
}

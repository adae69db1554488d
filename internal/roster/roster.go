// Package roster turns delimited player data into an immutable record pool.
package roster

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/preston-bernstein/nba-player-analytics/internal/domain/players"
	"github.com/preston-bernstein/nba-player-analytics/internal/images"
)

// Column headers understood by Parse. Only ColumnPlayer is required.
const (
	ColumnPlayer      = "PLAYER"
	ColumnTeam        = "TEAM"
	ColumnAge         = "AGE"
	ColumnHeight      = "HEIGHT"
	ColumnWeight      = "WEIGHT"
	ColumnCollege     = "COLLEGE"
	ColumnCountry     = "COUNTRY"
	ColumnDraftYear   = "DRAFT YEAR"
	ColumnDraftRound  = "DRAFT ROUND"
	ColumnDraftNumber = "DRAFT NUMBER"
	ColumnGamesPlayed = "GP"
	ColumnPoints      = "PTS"
	ColumnRebounds    = "REB"
	ColumnAssists     = "AST"
	ColumnNetRating   = "NETRTG"
	ColumnOffRebPct   = "OREB%"
	ColumnDefRebPct   = "DREB%"
	ColumnUsagePct    = "USG%"
	ColumnTrueShoot   = "TS%"
	ColumnAssistPct   = "AST%"
	ColumnCountryCode = "COUN_CODE"
)

// Columns lists every header in canonical order.
var Columns = []string{
	ColumnPlayer, ColumnTeam, ColumnAge, ColumnHeight, ColumnWeight, ColumnCollege,
	ColumnCountry, ColumnDraftYear, ColumnDraftRound, ColumnDraftNumber, ColumnGamesPlayed,
	ColumnPoints, ColumnRebounds, ColumnAssists, ColumnNetRating, ColumnOffRebPct,
	ColumnDefRebPct, ColumnUsagePct, ColumnTrueShoot, ColumnAssistPct, ColumnCountryCode,
}

var (
	// ErrMissingHeader is returned when a required column is absent.
	ErrMissingHeader = errors.New("missing required column")
	// ErrEmptyRoster is returned when the source has a header but no rows.
	ErrEmptyRoster = errors.New("roster has no players")
)

// ParseError points at the offending cell.
type ParseError struct {
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("roster line %d column %s: %q: %v", e.Line, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

var errNotFinite = errors.New("value is not a finite number")

// Parse reads a header-driven CSV roster. IDs are assigned densely in row
// order; empty cells become missing stats and a trailing "%" is stripped from
// rate columns. resolver may be nil, leaving ImageURL empty.
func Parse(r io.Reader, resolver images.Resolver) ([]players.Record, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %s", ErrMissingHeader, ColumnPlayer)
		}
		return nil, fmt.Errorf("read roster header: %w", err)
	}
	index := headerIndex(header)
	if _, ok := index[ColumnPlayer]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingHeader, ColumnPlayer)
	}

	var out []players.Record
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read roster row: %w", err)
		}
		if blankRow(row) {
			continue
		}
		line, _ := reader.FieldPos(0)
		rec, err := parseRow(row, index, line)
		if err != nil {
			return nil, err
		}
		rec.ID = len(out)
		if resolver != nil {
			rec.ImageURL = resolver.Resolve(rec.Name)
		}
		out = append(out, rec)
	}
	if len(out) == 0 {
		return nil, ErrEmptyRoster
	}
	return out, nil
}

// Reindex returns a copy of records with IDs reassigned 0..N-1 in slice order.
func Reindex(records []players.Record) []players.Record {
	out := make([]players.Record, len(records))
	for i, r := range records {
		r.ID = i
		out[i] = r
	}
	return out
}

type rowReader struct {
	row   []string
	index map[string]int
	line  int
	err   error
}

func parseRow(row []string, index map[string]int, line int) (players.Record, error) {
	rr := &rowReader{row: row, index: index, line: line}
	rec := players.Record{
		Name:        rr.text(ColumnPlayer),
		Team:        rr.text(ColumnTeam),
		Age:         rr.number(ColumnAge),
		Height:      rr.number(ColumnHeight),
		Weight:      rr.number(ColumnWeight),
		College:     rr.text(ColumnCollege),
		Country:     rr.text(ColumnCountry),
		CountryCode: rr.text(ColumnCountryCode),
		Draft: players.Draft{
			Year:   rr.number(ColumnDraftYear),
			Round:  rr.draftSlot(ColumnDraftRound),
			Number: rr.draftSlot(ColumnDraftNumber),
		},
		GamesPlayed:     rr.number(ColumnGamesPlayed),
		Points:          rr.number(ColumnPoints),
		Rebounds:        rr.number(ColumnRebounds),
		Assists:         rr.number(ColumnAssists),
		NetRating:       rr.number(ColumnNetRating),
		OffRebPct:       rr.number(ColumnOffRebPct),
		DefRebPct:       rr.number(ColumnDefRebPct),
		UsagePct:        rr.number(ColumnUsagePct),
		TrueShootingPct: rr.number(ColumnTrueShoot),
		AssistPct:       rr.number(ColumnAssistPct),
	}
	if rr.err != nil {
		return players.Record{}, rr.err
	}
	if rec.Name == "" {
		return players.Record{}, &ParseError{Line: line, Column: ColumnPlayer, Err: errors.New("player name is empty")}
	}
	return rec, nil
}

func (rr *rowReader) text(column string) string {
	i, ok := rr.index[column]
	if !ok || i >= len(rr.row) {
		return ""
	}
	return strings.TrimSpace(rr.row[i])
}

// number keeps the first error; later calls after a failure are no-ops.
// The undrafted sentinel reads as missing so it can sit in the draft year column.
func (rr *rowReader) number(column string) players.Stat {
	if rr.err != nil {
		return players.Missing()
	}
	raw := strings.TrimSuffix(rr.text(column), "%")
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, players.Undrafted) {
		return players.Missing()
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err == nil && (math.IsNaN(v) || math.IsInf(v, 0)) {
		err = errNotFinite
	}
	if err != nil {
		rr.err = &ParseError{Line: rr.line, Column: column, Value: raw, Err: err}
		return players.Missing()
	}
	return players.Known(v)
}

func (rr *rowReader) draftSlot(column string) string {
	v := rr.text(column)
	if strings.EqualFold(v, players.Undrafted) {
		return players.Undrafted
	}
	return v
}

func headerIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.ToUpper(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, seen := index[h]; !seen {
			index[h] = i
		}
	}
	return index
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/preston-bernstein/nba-player-analytics/internal/analytics"
	"github.com/preston-bernstein/nba-player-analytics/internal/app/players"
)

// rangeParams maps the dashboard's filter params onto features.
var rangeParams = []struct {
	min, max string
	feature  analytics.Feature
}{
	{"minPts", "maxPts", analytics.FeaturePoints},
	{"minReb", "maxReb", analytics.FeatureRebounds},
	{"minAst", "maxAst", analytics.FeatureAssists},
}

func badParam(name, raw string) error {
	return fmt.Errorf("%w: invalid %s %q", players.ErrInvalidArgument, name, raw)
}

func pathID(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil || id < 0 {
		return 0, badParam("player id", raw)
	}
	return id, nil
}

// intParam returns def when the param is absent.
func intParam(q url.Values, name string, def int) (int, error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, badParam(name, raw)
	}
	return v, nil
}

func requiredIntParam(q url.Values, name string) (int, error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return 0, fmt.Errorf("%w: %s is required", players.ErrInvalidArgument, name)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, badParam(name, raw)
	}
	return v, nil
}

func floatParam(q url.Values, name string) (*float64, error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, badParam(name, raw)
	}
	return &v, nil
}

func parseQuery(q url.Values) (players.Query, error) {
	query := players.Query{
		Search: q.Get("search"),
		Team:   q.Get("team"),
		SortBy: q.Get("sort"),
	}
	switch strings.ToLower(q.Get("order")) {
	case "", "asc":
	case "desc":
		query.Desc = true
	default:
		return players.Query{}, badParam("order", q.Get("order"))
	}

	var err error
	if query.Limit, err = intParam(q, "limit", 0); err != nil {
		return players.Query{}, err
	}
	if query.Offset, err = intParam(q, "offset", 0); err != nil {
		return players.Query{}, err
	}
	for _, rp := range rangeParams {
		lo, err := floatParam(q, rp.min)
		if err != nil {
			return players.Query{}, err
		}
		hi, err := floatParam(q, rp.max)
		if err != nil {
			return players.Query{}, err
		}
		if lo != nil || hi != nil {
			query.Ranges = append(query.Ranges, players.Range{Feature: rp.feature, Min: lo, Max: hi})
		}
	}
	return query, nil
}

func parseClusterRequest(q url.Values) (players.ClusterRequest, error) {
	var req players.ClusterRequest
	var err error
	if req.K, err = intParam(q, "k", 0); err != nil {
		return req, err
	}
	if q.Has("k") && req.K <= 0 {
		return req, badParam("k", q.Get("k"))
	}
	if req.MaxIterations, err = intParam(q, "maxIterations", 0); err != nil {
		return req, err
	}
	if raw := strings.TrimSpace(q.Get("seed")); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return req, badParam("seed", raw)
		}
		req.Seed = &seed
	}
	if raw := strings.TrimSpace(q.Get("features")); raw != "" {
		for _, name := range strings.Split(raw, ",") {
			f, err := analytics.ParseFeature(strings.TrimSpace(name))
			if err != nil {
				return req, fmt.Errorf("%w: %w", players.ErrInvalidArgument, err)
			}
			req.Features = append(req.Features, f)
		}
	}
	return req, nil
}

package players

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/preston-bernstein/nba-player-analytics/internal/analytics"
	domainplayers "github.com/preston-bernstein/nba-player-analytics/internal/domain/players"
	"github.com/preston-bernstein/nba-player-analytics/internal/metrics"
)

var (
	// ErrPlayerNotFound is returned when an ID is not in the current pool.
	ErrPlayerNotFound = errors.New("player not found")
	// ErrInvalidArgument wraps caller mistakes such as a negative k or an unknown sort key.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrEmptyRoster is returned when a reload produces no players.
	ErrEmptyRoster = errors.New("roster is empty")
)

// Store defines the contract for holding the player pool.
type Store interface {
	ListPlayers() []domainplayers.Record
	GetPlayer(id int) (domainplayers.Record, bool)
	SetPlayers(records []domainplayers.Record) error
	Len() int
}

// Defaults are applied when a request leaves a parameter unset.
type Defaults struct {
	Preset            string
	NeighborCount     int
	ClusterCount      int
	ClusterSeed       int64
	MaxIterations     int
	ProjectionWorkers int
}

// DefaultDefaults mirrors the dashboard's behavior.
func DefaultDefaults() Defaults {
	return Defaults{
		Preset:            analytics.DefaultPresetName,
		NeighborCount:     5,
		ClusterCount:      analytics.DefaultClusterCount,
		ClusterSeed:       analytics.DefaultClusterSeed,
		MaxIterations:     analytics.DefaultClusterMaxIterations,
		ProjectionWorkers: runtime.GOMAXPROCS(0),
	}
}

// Service coordinates analytics over the current pool held in a Store.
type Service struct {
	store     Store
	recorder  *metrics.Recorder
	projector analytics.Projector
	defaults  Defaults
}

// Option customizes a Service.
type Option func(*Service)

// WithRecorder records per-operation metrics.
func WithRecorder(rec *metrics.Recorder) Option {
	return func(s *Service) { s.recorder = rec }
}

// WithProjector overrides the trend projector.
func WithProjector(p analytics.Projector) Option {
	return func(s *Service) { s.projector = p }
}

// WithClusterSeed sets the default k-means seed. Zero is a valid seed here.
func WithClusterSeed(seed int64) Option {
	return func(s *Service) { s.defaults.ClusterSeed = seed }
}

// WithDefaults overrides request defaults; zero fields keep the built-in value.
// Use WithClusterSeed to select seed 0.
func WithDefaults(d Defaults) Option {
	return func(s *Service) {
		if d.Preset != "" {
			s.defaults.Preset = d.Preset
		}
		if d.NeighborCount > 0 {
			s.defaults.NeighborCount = d.NeighborCount
		}
		if d.ClusterCount > 0 {
			s.defaults.ClusterCount = d.ClusterCount
		}
		if d.ClusterSeed != 0 {
			s.defaults.ClusterSeed = d.ClusterSeed
		}
		if d.MaxIterations > 0 {
			s.defaults.MaxIterations = d.MaxIterations
		}
		if d.ProjectionWorkers > 0 {
			s.defaults.ProjectionWorkers = d.ProjectionWorkers
		}
	}
}

// NewService constructs a Service with the provided Store.
func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store:     store,
		projector: analytics.NewProjector(),
		defaults:  DefaultDefaults(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Defaults returns the effective request defaults.
func (s *Service) Defaults() Defaults {
	return s.defaults
}

// Players returns the current pool in ID order.
func (s *Service) Players() []domainplayers.Record {
	return s.store.ListPlayers()
}

// PlayerByID returns a single player or ErrPlayerNotFound.
func (s *Service) PlayerByID(id int) (domainplayers.Record, error) {
	p, ok := s.store.GetPlayer(id)
	if !ok {
		return domainplayers.Record{}, fmt.Errorf("%w: id %d", ErrPlayerNotFound, id)
	}
	return p, nil
}

// Ready reports whether a non-empty pool is loaded.
func (s *Service) Ready() bool {
	return s.store.Len() > 0
}

// ReplacePlayers swaps the in-memory pool with a new snapshot.
func (s *Service) ReplacePlayers(records []domainplayers.Record) error {
	if len(records) == 0 {
		return ErrEmptyRoster
	}
	return s.store.SetPlayers(records)
}

// Presets lists the similarity presets callers may choose from.
func (s *Service) Presets() []analytics.SimilarityConfig {
	return analytics.Presets()
}

// Summary aggregates the pool for the dashboard cards.
func (s *Service) Summary(top int) analytics.Summary {
	start := time.Now()
	out := analytics.Summarize(s.store.ListPlayers(), top)
	s.observe("summary", start, nil)
	return out
}

// SimilarResult is a ranked neighbor list for one player.
type SimilarResult struct {
	Player    domainplayers.Record `json:"player"`
	Preset    string               `json:"preset"`
	Neighbors []analytics.Neighbor `json:"neighbors"`
}

// Similar ranks the pool against player id and keeps the k best matches.
// An empty preset selects the configured default.
func (s *Service) Similar(id, k int, preset string) (res SimilarResult, err error) {
	defer s.track("similar", time.Now(), &err)

	target, err := s.PlayerByID(id)
	if err != nil {
		return SimilarResult{}, err
	}
	cfg, err := s.preset(preset)
	if err != nil {
		return SimilarResult{}, err
	}
	neighbors, err := analytics.NearestNeighbors(target, s.store.ListPlayers(), k, cfg)
	if err != nil {
		return SimilarResult{}, classify(err)
	}
	return SimilarResult{Player: target, Preset: cfg.Name, Neighbors: neighbors}, nil
}

// Project projects one player one season ahead.
func (s *Service) Project(id int) (proj analytics.Projection, err error) {
	defer s.track("project", time.Now(), &err)

	p, err := s.PlayerByID(id)
	if err != nil {
		return analytics.Projection{}, err
	}
	proj = s.projector.Project(p)
	s.recordFallbacks(proj)
	return proj, nil
}

// ProjectAll projects every player, spreading work over ProjectionWorkers goroutines.
// Results are in ID order.
func (s *Service) ProjectAll(ctx context.Context) (out []analytics.Projection, err error) {
	defer s.track("project_all", time.Now(), &err)

	pool := s.store.ListPlayers()
	out = make([]analytics.Projection, len(pool))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, s.defaults.ProjectionWorkers))
	for i := range pool {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = s.projector.Project(pool[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for _, p := range out {
		s.recordFallbacks(p)
	}
	return out, nil
}

// ClusterRequest carries optional k-means parameters. A nil Seed uses the default.
type ClusterRequest struct {
	K             int
	Seed          *int64
	MaxIterations int
	Features      []analytics.Feature
}

// ClusterGroup is one cluster with its member records.
type ClusterGroup struct {
	Index    int                    `json:"index"`
	Centroid []float64              `json:"centroid"`
	Players  []domainplayers.Record `json:"players"`
}

// ClusterView is a k-means result with members resolved to records.
type ClusterView struct {
	analytics.ClusterResult
	K      int            `json:"k"`
	Seed   int64          `json:"seed"`
	Groups []ClusterGroup `json:"groups"`
}

// Cluster runs k-means over the pool.
func (s *Service) Cluster(req ClusterRequest) (view ClusterView, err error) {
	defer s.track("cluster", time.Now(), &err)

	cfg := analytics.ClusterConfig{
		K:             req.K,
		Seed:          s.defaults.ClusterSeed,
		MaxIterations: req.MaxIterations,
		Features:      req.Features,
	}
	if cfg.K == 0 {
		cfg.K = s.defaults.ClusterCount
	}
	if req.Seed != nil {
		cfg.Seed = *req.Seed
	}
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = s.defaults.MaxIterations
	}

	pool := s.store.ListPlayers()
	if cfg.K > len(pool) && len(pool) > 0 && req.K == 0 {
		cfg.K = len(pool)
	}
	result, err := analytics.Cluster(pool, cfg)
	if err != nil {
		return ClusterView{}, classify(err)
	}
	s.recorder.RecordClusterRun(cfg.K, result.Iterations, result.Converged)

	groups := make([]ClusterGroup, len(result.Centroids))
	for c := range groups {
		groups[c] = ClusterGroup{Index: c, Centroid: result.Centroids[c]}
		for _, id := range result.Members(c) {
			groups[c].Players = append(groups[c].Players, pool[id])
		}
	}
	return ClusterView{ClusterResult: result, K: cfg.K, Seed: cfg.Seed, Groups: groups}, nil
}

// PredictPoints runs the pool-trained age and usage model for one player.
func (s *Service) PredictPoints(id int) (pred analytics.PointsPrediction, err error) {
	defer s.track("points_model", time.Now(), &err)

	target, err := s.PlayerByID(id)
	if err != nil {
		return analytics.PointsPrediction{}, err
	}
	pred, err = analytics.PredictPoints(target, s.store.ListPlayers())
	if err != nil {
		return analytics.PointsPrediction{}, classify(err)
	}
	return pred, nil
}

func (s *Service) preset(name string) (analytics.SimilarityConfig, error) {
	if name == "" {
		name = s.defaults.Preset
	}
	cfg, err := analytics.PresetByName(name)
	if err != nil {
		return analytics.SimilarityConfig{}, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	return cfg, nil
}

func (s *Service) recordFallbacks(p analytics.Projection) {
	for stat, sp := range map[string]analytics.StatProjection{
		"points":   p.Points,
		"rebounds": p.Rebounds,
		"assists":  p.Assists,
	} {
		if sp.Method == analytics.MethodAgeCurve {
			s.recorder.RecordProjectionFallback(stat)
		}
	}
}

func (s *Service) observe(op string, start time.Time, err error) {
	s.recorder.RecordOperation(op, time.Since(start), err)
}

// track is deferred with a pointer to the named error so it sees the final value.
func (s *Service) track(op string, start time.Time, err *error) {
	s.observe(op, start, *err)
}

// classify tags caller mistakes so transports can map them without knowing analytics internals.
func classify(err error) error {
	switch {
	case errors.Is(err, analytics.ErrInvalidNeighborCount),
		errors.Is(err, analytics.ErrInvalidClusterCount),
		errors.Is(err, analytics.ErrUnknownPreset),
		errors.Is(err, analytics.ErrInvalidConfig):
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	default:
		return err
	}
}

package analytics

import (
	"math/rand/v2"
	"slices"

	"gonum.org/v1/gonum/floats"

	"github.com/preston-bernstein/nba-player-analytics/internal/domain/players"
)

const (
	DefaultClusterCount         = 5
	DefaultClusterSeed          = 42
	DefaultClusterMaxIterations = 100
)

// pcgStream is the fixed second PCG word; only the seed varies between runs.
const pcgStream = 0x9e3779b97f4a7c15

// ClusterConfig parameterizes a k-means run.
type ClusterConfig struct {
	K             int       `json:"k"`
	Seed          int64     `json:"seed"`
	MaxIterations int       `json:"maxIterations"`
	Features      []Feature `json:"features"`
}

// ClusterResult is the final partition of the pool.
type ClusterResult struct {
	Assignments map[int]int `json:"assignments"`
	Centroids   [][]float64 `json:"centroids"`
	Sizes       []int       `json:"sizes"`
	Iterations  int         `json:"iterations"`
	Converged   bool        `json:"converged"`
	Features    []Feature   `json:"features"`
}

// Members lists the player IDs assigned to cluster c in ascending order.
func (r ClusterResult) Members(c int) []int {
	var ids []int
	for id, assigned := range r.Assignments {
		if assigned == c {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

// Cluster partitions pool into cfg.K groups with k-means. The same pool, seed
// and k always produce the same result.
func Cluster(pool []players.Record, cfg ClusterConfig) (ClusterResult, error) {
	features := cfg.Features
	if len(features) == 0 {
		features = DefaultFeatures
	}
	features = slices.Clone(features)
	maxIterations := cfg.MaxIterations
	if maxIterations <= 0 {
		maxIterations = DefaultClusterMaxIterations
	}

	if len(pool) == 0 {
		return ClusterResult{
			Assignments: map[int]int{},
			Centroids:   [][]float64{},
			Sizes:       []int{},
			Converged:   true,
			Features:    features,
		}, nil
	}
	if cfg.K < 1 || cfg.K > len(pool) {
		return ClusterResult{}, &InvalidClusterCountError{K: cfg.K, PoolSize: len(pool)}
	}

	points := make([][]float64, len(pool))
	for i, r := range pool {
		v, err := vector(r, features)
		if err != nil {
			return ClusterResult{}, err
		}
		points[i] = v
	}

	rng := rand.New(rand.NewPCG(uint64(cfg.Seed), pcgStream))
	centroids := seedCentroids(points, cfg.K, rng)
	assign := make([]int, len(points))

	var (
		previous   []int
		iterations int
		converged  bool
	)
	for iterations < maxIterations {
		iterations++
		assignNearest(points, centroids, assign)
		repairEmpty(points, centroids, assign, cfg.K)
		centroids = clusterMeans(points, assign, cfg.K)
		if previous != nil && slices.Equal(previous, assign) {
			converged = true
			break
		}
		previous = slices.Clone(assign)
	}

	result := ClusterResult{
		Assignments: make(map[int]int, len(pool)),
		Centroids:   centroids,
		Sizes:       make([]int, cfg.K),
		Iterations:  iterations,
		Converged:   converged,
		Features:    features,
	}
	for i, r := range pool {
		result.Assignments[r.ID] = assign[i]
		result.Sizes[assign[i]]++
	}
	return result, nil
}

// seedCentroids runs k-means++ initialization. When every remaining point
// coincides with a chosen centroid it takes the lowest unchosen index.
func seedCentroids(points [][]float64, k int, rng *rand.Rand) [][]float64 {
	chosen := make([]bool, len(points))
	first := rng.IntN(len(points))
	chosen[first] = true
	centroids := [][]float64{slices.Clone(points[first])}

	weights := make([]float64, len(points))
	for len(centroids) < k {
		var total float64
		for i, p := range points {
			weights[i] = 0
			if chosen[i] {
				continue
			}
			best := squaredDistance(p, centroids[0])
			for _, c := range centroids[1:] {
				best = min(best, squaredDistance(p, c))
			}
			weights[i] = best
			total += best
		}

		next := -1
		if total > 0 {
			target := rng.Float64() * total
			var cumulative float64
			for i, w := range weights {
				if w == 0 {
					continue
				}
				cumulative += w
				next = i
				if cumulative > target {
					break
				}
			}
		} else {
			next = slices.Index(chosen, false)
		}
		chosen[next] = true
		centroids = append(centroids, slices.Clone(points[next]))
	}
	return centroids
}

// assignNearest writes the closest centroid index for each point. Ties go to
// the lower centroid index.
func assignNearest(points, centroids [][]float64, assign []int) {
	for i, p := range points {
		best, bestDist := 0, squaredDistance(p, centroids[0])
		for c := 1; c < len(centroids); c++ {
			if d := squaredDistance(p, centroids[c]); d < bestDist {
				best, bestDist = c, d
			}
		}
		assign[i] = best
	}
}

// repairEmpty gives every empty cluster one point: the point farthest from its
// own centroid among clusters that can spare one, lowest index on ties.
func repairEmpty(points, centroids [][]float64, assign []int, k int) {
	sizes := make([]int, k)
	for _, c := range assign {
		sizes[c]++
	}
	for c := 0; c < k; c++ {
		if sizes[c] > 0 {
			continue
		}
		donor, farthest := -1, -1.0
		for i, p := range points {
			owner := assign[i]
			if sizes[owner] < 2 {
				continue
			}
			if d := squaredDistance(p, centroids[owner]); d > farthest {
				donor, farthest = i, d
			}
		}
		sizes[assign[donor]]--
		assign[donor] = c
		sizes[c]++
	}
}

func clusterMeans(points [][]float64, assign []int, k int) [][]float64 {
	dims := len(points[0])
	means := make([][]float64, k)
	counts := make([]int, k)
	for c := range means {
		means[c] = make([]float64, dims)
	}
	for i, p := range points {
		floats.Add(means[assign[i]], p)
		counts[assign[i]]++
	}
	for c, n := range counts {
		if n > 0 {
			floats.Scale(1/float64(n), means[c])
		}
	}
	return means
}

func squaredDistance(a, b []float64) float64 {
	d := floats.Distance(a, b, 2)
	return d * d
}

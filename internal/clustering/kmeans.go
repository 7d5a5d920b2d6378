// Package clustering partitions candidate texts into groups by embedding
// proximity using k-means.
package clustering

import (
	"context"
	"math"

	"go.uber.org/zap"

	"github.com/talentvec/talentvec/internal/embedding"
	"github.com/talentvec/talentvec/internal/faults"
)

const (
	// MinClusters is the lower bound a requested cluster count is clamped to.
	MinClusters = 2

	maxIterations = 100
)

// Result is the produced partition. Clusters is indexed by cluster id;
// empty clusters are preserved as empty slices, never omitted. Requested
// echoes the caller's count so a clamped value is visible.
type Result struct {
	Requested int        `json:"requested_clusters"`
	Clusters  [][]string `json:"clusters"`
}

// NClusters reports the effective cluster count after clamping.
func (r *Result) NClusters() int { return len(r.Clusters) }

// Grouper clusters texts by their embeddings. Stateless between calls; safe
// for concurrent use.
type Grouper struct {
	provider embedding.Provider
	logger   *zap.Logger
}

func NewGrouper(provider embedding.Provider, logger *zap.Logger) *Grouper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Grouper{provider: provider, logger: logger}
}

// Cluster partitions texts into n groups. The count is clamped to
// [MinClusters, len(texts)] rather than rejected; the requested value is
// echoed in the result so callers can detect the correction. Given identical
// inputs the partition is identical across runs: the initialization is
// deterministic and ties always resolve to the lowest index.
func (g *Grouper) Cluster(ctx context.Context, texts []string, n int) (*Result, error) {
	if len(texts) == 0 {
		return nil, faults.New(faults.InvalidInput, "at least one text is required")
	}

	requested := n
	if n < MinClusters {
		n = MinClusters
	}
	if n > len(texts) {
		n = len(texts)
	}

	if n != requested {
		g.logger.Debug("clamped cluster count",
			zap.Int("requested", requested),
			zap.Int("effective", n),
			zap.Int("texts", len(texts)),
		)
	}

	vectors, err := embedding.EmbedAll(ctx, g.provider, texts)
	if err != nil {
		return nil, faults.Wrap(faults.ProviderFailure, err, "embedding texts")
	}

	assignments := kmeans(vectors, n)

	clusters := make([][]string, n)
	for i := range clusters {
		clusters[i] = []string{}
	}
	for i, cluster := range assignments {
		clusters[cluster] = append(clusters[cluster], texts[i])
	}

	return &Result{Requested: requested, Clusters: clusters}, nil
}

// kmeans assigns each point to one of k clusters. Centroids start with the
// first point and then the point farthest from any chosen centroid, which
// makes the whole procedure deterministic without a seed.
func kmeans(points [][]float32, k int) []int {
	centroids := initialCentroids(points, k)
	assignments := make([]int, len(points))

	for iter := 0; iter < maxIterations; iter++ {
		changed := false
		for i, point := range points {
			nearest := nearestCentroid(point, centroids)
			if assignments[i] != nearest {
				assignments[i] = nearest
				changed = true
			}
		}

		if !changed && iter > 0 {
			break
		}

		recomputeCentroids(points, assignments, centroids)
	}

	return assignments
}

func initialCentroids(points [][]float32, k int) [][]float64 {
	centroids := make([][]float64, 0, k)
	centroids = append(centroids, toFloat64(points[0]))

	for len(centroids) < k {
		bestIdx := 0
		bestDist := -1.0
		for i, point := range points {
			dist := math.Inf(1)
			for _, centroid := range centroids {
				if d := squaredDistance(point, centroid); d < dist {
					dist = d
				}
			}
			if dist > bestDist {
				bestDist = dist
				bestIdx = i
			}
		}
		centroids = append(centroids, toFloat64(points[bestIdx]))
	}

	return centroids
}

func nearestCentroid(point []float32, centroids [][]float64) int {
	nearest := 0
	best := math.Inf(1)
	for i, centroid := range centroids {
		if d := squaredDistance(point, centroid); d < best {
			best = d
			nearest = i
		}
	}
	return nearest
}

// recomputeCentroids replaces each centroid with the mean of its members.
// Empty clusters keep their previous centroid.
func recomputeCentroids(points [][]float32, assignments []int, centroids [][]float64) {
	dim := len(centroids[0])
	sums := make([][]float64, len(centroids))
	counts := make([]int, len(centroids))
	for i := range sums {
		sums[i] = make([]float64, dim)
	}

	for i, point := range points {
		cluster := assignments[i]
		counts[cluster]++
		for d := range point {
			sums[cluster][d] += float64(point[d])
		}
	}

	for i := range centroids {
		if counts[i] == 0 {
			continue
		}
		for d := range centroids[i] {
			centroids[i][d] = sums[i][d] / float64(counts[i])
		}
	}
}

func squaredDistance(point []float32, centroid []float64) float64 {
	var sum float64
	for i := range point {
		diff := float64(point[i]) - centroid[i]
		sum += diff * diff
	}
	return sum
}

func toFloat64(v []float32) []float64 {
	out := make([]float64, len(v))
	for i := range v {
		out[i] = float64(v[i])
	}
	return out
}

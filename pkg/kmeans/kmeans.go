// Package kmeans implementa k-means com inicialização k-means++ e semente explícita
package kmeans

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var (
	ErrInvalidK      = errors.New("kmeans: k must be positive")
	ErrTooFewPoints  = errors.New("kmeans: fewer points than clusters")
	ErrRaggedPoints  = errors.New("kmeans: points must share the same dimension")
	ErrInvalidOption = errors.New("kmeans: invalid option")
)

// Options controla o ajuste do modelo
type Options struct {
	Seed    uint64  // Semente do gerador; mesma semente + mesmos pontos = mesmo resultado
	NInit   int     // Quantidade de inicializações; fica a de menor inércia
	MaxIter int     // Iterações máximas de Lloyd por inicialização
	Tol     float64 // Tolerância relativa à variância média das colunas
}

// DefaultOptions devolve os valores usados pelo painel
func DefaultOptions() Options {
	return Options{
		Seed:    42,
		NInit:   1,
		MaxIter: 300,
		Tol:     1e-4,
	}
}

// Result é o modelo ajustado
type Result struct {
	Labels     []int
	Centroids  [][]float64
	Inertia    float64
	Iterations int
}

// Fit agrupa os pontos em k clusters
func Fit(points [][]float64, k int, opts Options) (*Result, error) {
	if k <= 0 {
		return nil, ErrInvalidK
	}
	if len(points) < k {
		return nil, fmt.Errorf("%w: %d points for k=%d", ErrTooFewPoints, len(points), k)
	}
	if opts.NInit <= 0 || opts.MaxIter <= 0 || opts.Tol < 0 {
		return nil, fmt.Errorf("%w: %+v", ErrInvalidOption, opts)
	}

	dim := len(points[0])
	for _, p := range points {
		if len(p) != dim {
			return nil, ErrRaggedPoints
		}
	}

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	tol := scaledTolerance(points, opts.Tol)

	var best *Result
	for run := 0; run < opts.NInit; run++ {
		centroids := seedPlusPlus(points, k, rng)
		result := lloyd(points, centroids, opts.MaxIter, tol)
		if best == nil || result.Inertia < best.Inertia {
			best = result
		}
	}

	return best, nil
}

// Predict devolve o índice do centróide mais próximo
func (r *Result) Predict(point []float64) int {
	label, _ := nearest(point, r.Centroids)
	return label
}

func scaledTolerance(points [][]float64, tol float64) float64 {
	dim := len(points[0])
	column := make([]float64, len(points))
	variances := make([]float64, dim)
	for j := 0; j < dim; j++ {
		for i, p := range points {
			column[i] = p[j]
		}
		_, variances[j] = stat.PopMeanVariance(column, nil)
	}
	return tol * stat.Mean(variances, nil)
}

// seedPlusPlus escolhe os centróides iniciais com probabilidade proporcional à distância ao quadrado
func seedPlusPlus(points [][]float64, k int, rng *rand.Rand) [][]float64 {
	centroids := make([][]float64, 0, k)
	centroids = append(centroids, clone(points[rng.IntN(len(points))]))

	d2 := make([]float64, len(points))
	for i, p := range points {
		d2[i] = sqDist(p, centroids[0])
	}

	for len(centroids) < k {
		total := floats.Sum(d2)

		next := rng.IntN(len(points))
		if total > 0 {
			target := rng.Float64() * total
			cumulative := 0.0
			for i, d := range d2 {
				cumulative += d
				if cumulative >= target && d > 0 {
					next = i
					break
				}
			}
		}

		centroid := clone(points[next])
		centroids = append(centroids, centroid)
		for i, p := range points {
			if d := sqDist(p, centroid); d < d2[i] {
				d2[i] = d
			}
		}
	}

	return centroids
}

func lloyd(points [][]float64, centroids [][]float64, maxIter int, tol float64) *Result {
	labels := assign(points, centroids)

	iterations := 0
	for iterations < maxIter {
		iterations++

		updated := update(points, labels, len(centroids))
		shift := 0.0
		for j := range centroids {
			shift += sqDist(centroids[j], updated[j])
		}
		centroids = updated

		next := assign(points, centroids)
		changed := false
		for i := range next {
			if next[i] != labels[i] {
				changed = true
				break
			}
		}
		labels = next

		if !changed || shift <= tol {
			break
		}
	}

	inertia := 0.0
	for i, p := range points {
		inertia += sqDist(p, centroids[labels[i]])
	}

	return &Result{
		Labels:     labels,
		Centroids:  centroids,
		Inertia:    inertia,
		Iterations: iterations,
	}
}

func assign(points [][]float64, centroids [][]float64) []int {
	labels := make([]int, len(points))
	for i, p := range points {
		labels[i], _ = nearest(p, centroids)
	}
	return labels
}

func nearest(point []float64, centroids [][]float64) (int, float64) {
	best, bestDist := 0, math.Inf(1)
	for j, c := range centroids {
		if d := sqDist(point, c); d < bestDist {
			best, bestDist = j, d
		}
	}
	return best, bestDist
}

// update recalcula os centróides; cluster vazio recebe o ponto mais distante do próprio centróide
func update(points [][]float64, labels []int, k int) [][]float64 {
	dim := len(points[0])
	sums := make([][]float64, k)
	for j := range sums {
		sums[j] = make([]float64, dim)
	}
	counts := make([]int, k)

	for i, p := range points {
		floats.Add(sums[labels[i]], p)
		counts[labels[i]]++
	}

	for j := range sums {
		if counts[j] > 0 {
			floats.Scale(1/float64(counts[j]), sums[j])
		}
	}

	for j := range sums {
		if counts[j] > 0 {
			continue
		}

		farthest, farthestDist := -1, -1.0
		for i, p := range points {
			if counts[labels[i]] <= 1 {
				continue
			}
			if d := sqDist(p, sums[labels[i]]); d > farthestDist {
				farthest, farthestDist = i, d
			}
		}
		if farthest < 0 {
			continue
		}

		counts[labels[farthest]]--
		labels[farthest] = j
		counts[j] = 1
		sums[j] = clone(points[farthest])
	}

	return sums
}

func sqDist(a, b []float64) float64 {
	d := floats.Distance(a, b, 2)
	return d * d
}

func clone(p []float64) []float64 {
	out := make([]float64, len(p))
	copy(out, p)
	return out
}

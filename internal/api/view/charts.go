package view

import (
	"sort"

	"github.com/vfg2006/donor-analytics/internal/domain"
)

// Dimensões do gráfico de dispersão em pixels
const (
	scatterWidth   = 640
	scatterHeight  = 400
	scatterPadding = 24
)

var clusterPalette = []string{
	"#8b5cf6", "#06b6d4", "#22c55e", "#f59e0b", "#ef4444",
	"#14b8a6", "#eab308", "#3b82f6", "#d946ef", "#f97316",
}

// ClusterColor devolve uma cor estável para o cluster
func ClusterColor(clusterID int) string {
	if clusterID < 0 {
		return "#71717a"
	}
	return clusterPalette[clusterID%len(clusterPalette)]
}

type ScatterPoint struct {
	X       float64
	Y       float64
	Color   string
	DonorID string
	Cluster int
	Segment domain.Segment
}

type Scatter struct {
	Width  int
	Height int
	Points []ScatterPoint
	Legend []LegendEntry
}

type LegendEntry struct {
	Cluster int
	Color   string
	Segment domain.Segment
}

// NewScatter converte a projeção PCA para coordenadas do SVG (eixo y invertido)
func NewScatter(points []domain.ProjectedPoint) Scatter {
	scatter := Scatter{Width: scatterWidth, Height: scatterHeight}
	if len(points) == 0 {
		return scatter
	}

	minX, maxX := points[0].PC1, points[0].PC1
	minY, maxY := points[0].PC2, points[0].PC2
	for _, p := range points[1:] {
		minX, maxX = min(minX, p.PC1), max(maxX, p.PC1)
		minY, maxY = min(minY, p.PC2), max(maxY, p.PC2)
	}

	scale := func(v, lo, hi float64, size int) float64 {
		span := float64(size - 2*scatterPadding)
		if hi == lo {
			return scatterPadding + span/2
		}
		return scatterPadding + (v-lo)/(hi-lo)*span
	}

	legend := make(map[int]domain.Segment)
	scatter.Points = make([]ScatterPoint, len(points))
	for i, p := range points {
		scatter.Points[i] = ScatterPoint{
			X:       scale(p.PC1, minX, maxX, scatterWidth),
			Y:       float64(scatterHeight) - scale(p.PC2, minY, maxY, scatterHeight),
			Color:   ClusterColor(p.ClusterID),
			DonorID: p.DonorID,
			Cluster: p.ClusterID,
			Segment: p.Segment,
		}
		legend[p.ClusterID] = p.Segment
	}

	for cluster, segment := range legend {
		scatter.Legend = append(scatter.Legend, LegendEntry{Cluster: cluster, Color: ClusterColor(cluster), Segment: segment})
	}
	sort.Slice(scatter.Legend, func(i, j int) bool {
		return scatter.Legend[i].Cluster < scatter.Legend[j].Cluster
	})

	return scatter
}

type Bar struct {
	Segment domain.Segment
	Count   int
	Percent float64 // Largura relativa ao maior segmento
}

func NewBars(sizes []domain.SegmentSize) []Bar {
	largest := 0
	for _, s := range sizes {
		largest = max(largest, s.Count)
	}

	bars := make([]Bar, len(sizes))
	for i, s := range sizes {
		bars[i] = Bar{Segment: s.Segment, Count: s.Count}
		if largest > 0 {
			bars[i].Percent = float64(s.Count) / float64(largest) * 100
		}
	}
	return bars
}

package segmenting

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/donor-analytics/internal/domain"
)

func TestQuantile(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		q      float64
		want   float64
	}{
		{name: "p33 com interpolação", values: []float64{4, 1, 3, 2}, q: 0.33, want: 1.99},
		{name: "p67 com interpolação", values: []float64{1, 2, 3, 4}, q: 0.67, want: 3.01},
		{name: "valor único", values: []float64{7}, q: 0.67, want: 7},
		{name: "dois valores", values: []float64{0, 730}, q: 0.33, want: 240.9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Quantile(tt.values, tt.q), 1e-9)
		})
	}

	assert.True(t, math.IsNaN(Quantile(nil, 0.5)))
}

func TestSummarizeClusters(t *testing.T) {
	rows := []domain.DonorFeatureRow{
		featureRow("D1", 10, 1, 9),
		featureRow("D2", 30, 3, 99),
		featureRow("D3", 400, 2, 50),
	}
	labels := []int{1, 1, 0}

	summaries := SummarizeClusters(rows, labels)
	require.Len(t, summaries, 2)

	assert.Equal(t, 0, summaries[0].ClusterID)
	assert.Equal(t, 1, summaries[0].Donors)
	assert.Equal(t, 400.0, summaries[0].RecencyMean)
	assert.InDelta(t, 2, summaries[0].FrequencyMean, 1e-9)
	assert.InDelta(t, 50, summaries[0].MonetaryMean, 1e-9)

	assert.Equal(t, 1, summaries[1].ClusterID)
	assert.Equal(t, 2, summaries[1].Donors)
	assert.Equal(t, 20.0, summaries[1].RecencyMean)
	// Média no espaço log1p: expm1((ln 2 + ln 4) / 2) = sqrt(8) - 1
	assert.InDelta(t, math.Sqrt(8)-1, summaries[1].FrequencyMean, 1e-9)
	// expm1((ln 10 + ln 100) / 2) = sqrt(1000) - 1
	assert.InDelta(t, math.Sqrt(1000)-1, summaries[1].MonetaryMean, 1e-9)
}

func fiveClusterSummary() []domain.ClusterSummary {
	return []domain.ClusterSummary{
		{ClusterID: 0, Donors: 10, RecencyMean: 5, FrequencyMean: 12, MonetaryMean: 900},
		{ClusterID: 1, Donors: 40, RecencyMean: 10, FrequencyMean: 1, MonetaryMean: 30},
		{ClusterID: 2, Donors: 8, RecencyMean: 400, FrequencyMean: 3, MonetaryMean: 1000},
		{ClusterID: 3, Donors: 60, RecencyMean: 500, FrequencyMean: 1, MonetaryMean: 20},
		{ClusterID: 4, Donors: 25, RecencyMean: 100, FrequencyMean: 4, MonetaryMean: 200},
	}
}

func TestLabelClusters_RulesInPriorityOrder(t *testing.T) {
	labeled := LabelClusters(fiveClusterSummary())

	want := map[int]domain.Segment{
		0: domain.SegmentChampions,
		1: domain.SegmentRecentOneTimers,
		2: domain.SegmentLapsedBigDonors,
		3: domain.SegmentLostDonors,
		4: domain.SegmentPotentialLoyalists,
	}

	require.Len(t, labeled, 5)
	for _, s := range labeled {
		assert.Equal(t, want[s.ClusterID], s.Segment, "cluster %d", s.ClusterID)
	}
}

func TestLabelClusters_FirstMatchWins(t *testing.T) {
	// Cluster 0 satisfaz Champions e também "recente"; Champions tem prioridade
	summaries := []domain.ClusterSummary{
		{ClusterID: 0, RecencyMean: 1, FrequencyMean: 20, MonetaryMean: 5000},
		{ClusterID: 1, RecencyMean: 300, FrequencyMean: 1, MonetaryMean: 10},
	}

	labeled := LabelClusters(summaries)
	assert.Equal(t, domain.SegmentChampions, labeled[0].Segment)
	assert.Equal(t, domain.SegmentLostDonors, labeled[1].Segment)
}

func TestLabelClusters_Pure(t *testing.T) {
	input := fiveClusterSummary()

	first := LabelClusters(input)
	second := LabelClusters(input)

	assert.Equal(t, first, second)
	for _, s := range input {
		assert.Empty(t, s.Segment)
	}
}

func TestLabelClusters_SharedLabels(t *testing.T) {
	// Clusters idênticos recebem o mesmo rótulo
	summaries := []domain.ClusterSummary{
		{ClusterID: 0, RecencyMean: 50, FrequencyMean: 2, MonetaryMean: 100},
		{ClusterID: 1, RecencyMean: 50, FrequencyMean: 2, MonetaryMean: 100},
	}

	labeled := LabelClusters(summaries)
	assert.Equal(t, labeled[0].Segment, labeled[1].Segment)
}

package segmenting

import (
	"math"
	"sort"

	"github.com/vfg2006/donor-analytics/internal/domain"
	"gonum.org/v1/gonum/stat"
)

// Percentis usados nas regras de rótulo
const (
	lowerQuantile = 0.33
	upperQuantile = 0.67
)

type thresholds struct {
	low  float64
	high float64
}

func newThresholds(values []float64) thresholds {
	return thresholds{
		low:  Quantile(values, lowerQuantile),
		high: Quantile(values, upperQuantile),
	}
}

// SummarizeClusters agrega as métricas por cluster, ordenado pelo id.
// Frequência e valor são médias no espaço log1p convertidas de volta com expm1.
func SummarizeClusters(rows []domain.DonorFeatureRow, labels []int) []domain.ClusterSummary {
	type accumulator struct {
		donors    int
		recency   []float64
		frequency []float64
		monetary  []float64
	}

	byCluster := make(map[int]*accumulator)
	for i, row := range rows {
		acc, exists := byCluster[labels[i]]
		if !exists {
			acc = &accumulator{}
			byCluster[labels[i]] = acc
		}
		acc.donors++
		acc.recency = append(acc.recency, float64(row.RecencyDays))
		acc.frequency = append(acc.frequency, math.Log1p(float64(row.Frequency)))
		acc.monetary = append(acc.monetary, math.Log1p(row.MonetaryTotal))
	}

	clusterIDs := make([]int, 0, len(byCluster))
	for clusterID := range byCluster {
		clusterIDs = append(clusterIDs, clusterID)
	}
	sort.Ints(clusterIDs)

	summaries := make([]domain.ClusterSummary, 0, len(clusterIDs))
	for _, clusterID := range clusterIDs {
		acc := byCluster[clusterID]
		summaries = append(summaries, domain.ClusterSummary{
			ClusterID:     clusterID,
			Donors:        acc.donors,
			RecencyMean:   stat.Mean(acc.recency, nil),
			FrequencyMean: math.Expm1(stat.Mean(acc.frequency, nil)),
			MonetaryMean:  math.Expm1(stat.Mean(acc.monetary, nil)),
		})
	}

	return summaries
}

// LabelClusters atribui um segmento a cada cluster usando os percentis 33/67 entre clusters.
// A entrada não é alterada.
func LabelClusters(summaries []domain.ClusterSummary) []domain.ClusterSummary {
	recency := make([]float64, len(summaries))
	frequency := make([]float64, len(summaries))
	monetary := make([]float64, len(summaries))
	for i, s := range summaries {
		recency[i] = s.RecencyMean
		frequency[i] = s.FrequencyMean
		monetary[i] = s.MonetaryMean
	}

	rec := newThresholds(recency)
	freq := newThresholds(frequency)
	mon := newThresholds(monetary)

	labeled := make([]domain.ClusterSummary, len(summaries))
	for i, s := range summaries {
		labeled[i] = s
		labeled[i].Segment = labelCluster(s, rec, freq, mon)
	}

	return labeled
}

// labelCluster aplica as regras em ordem fixa; a primeira que casar vence
func labelCluster(s domain.ClusterSummary, rec, freq, mon thresholds) domain.Segment {
	switch {
	// Muito recentes, frequentes e com valor alto
	case s.RecencyMean <= rec.low && s.FrequencyMean >= freq.high && s.MonetaryMean >= mon.high:
		return domain.SegmentChampions
	// Recentes, mas raros
	case s.RecencyMean <= rec.low && s.FrequencyMean <= freq.low:
		return domain.SegmentRecentOneTimers
	// Faz tempo, mas com valor alto
	case s.RecencyMean >= rec.high && s.MonetaryMean >= mon.high:
		return domain.SegmentLapsedBigDonors
	// Faz tempo e raros
	case s.RecencyMean >= rec.high && s.FrequencyMean <= freq.low:
		return domain.SegmentLostDonors
	default:
		return domain.SegmentPotentialLoyalists
	}
}

// Quantile calcula o quantil q com interpolação linear entre as posições vizinhas
func Quantile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	pos := q * float64(len(sorted)-1)
	lower := int(math.Floor(pos))
	upper := int(math.Ceil(pos))
	frac := pos - float64(lower)

	return sorted[lower] + (sorted[upper]-sorted[lower])*frac
}

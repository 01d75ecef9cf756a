package domain

import (
	"fmt"
	"time"
)

// Segment é a categoria de negócio atribuída a um cluster
type Segment string

const (
	SegmentChampions          Segment = "Champions / Core Supporters"
	SegmentRecentOneTimers    Segment = "Recent One-Timers"
	SegmentLapsedBigDonors    Segment = "Lapsed Big Donors"
	SegmentLostDonors         Segment = "Lost Donors"
	SegmentPotentialLoyalists Segment = "Potential Loyalists"
)

// Segments lista os cinco segmentos na ordem de prioridade das regras
var Segments = []Segment{
	SegmentChampions,
	SegmentRecentOneTimers,
	SegmentLapsedBigDonors,
	SegmentLostDonors,
	SegmentPotentialLoyalists,
}

// DefaultTargetSegments são pré-selecionados na lista de outreach quando presentes
var DefaultTargetSegments = []Segment{SegmentChampions, SegmentPotentialLoyalists}

// ParseSegment valida o nome de um segmento
func ParseSegment(name string) (Segment, error) {
	for _, segment := range Segments {
		if string(segment) == name {
			return segment, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSegment, name)
}

// Limites aceitos para a quantidade de clusters
const (
	MinClusters = 2
	MaxClusters = 8
)

// DonorFeatureRow contém as métricas RFM de um doador
type DonorFeatureRow struct {
	DonorID       string    `json:"donor_id"`
	RecencyDays   int       `json:"recency_days"`
	Frequency     int       `json:"frequency"`
	MonetaryTotal float64   `json:"monetary_total"`
	MonetaryAvg   float64   `json:"monetary_avg"`
	FirstDate     time.Time `json:"first_date"`
	LastDate      time.Time `json:"last_date"`
	SpanDays      int       `json:"span_days"`
}

// ClusterAssignment é a linha RFM com o cluster e o segmento atribuídos
type ClusterAssignment struct {
	DonorFeatureRow
	ClusterID int     `json:"cluster_id"`
	Segment   Segment `json:"segment"`
}

// ClusterSummary agrega as métricas de um cluster (frequência e valor na escala original)
type ClusterSummary struct {
	ClusterID     int     `json:"cluster_id"`
	Donors        int     `json:"donors"`
	RecencyMean   float64 `json:"recency_mean"`
	FrequencyMean float64 `json:"frequency_mean"`
	MonetaryMean  float64 `json:"monetary_mean"`
	Segment       Segment `json:"segment"`
}

// ProjectedPoint é a posição de um doador no plano das duas primeiras componentes principais
type ProjectedPoint struct {
	DonorID   string  `json:"donor_id"`
	PC1       float64 `json:"pc1"`
	PC2       float64 `json:"pc2"`
	ClusterID int     `json:"cluster_id"`
	Segment   Segment `json:"segment"`
}

// SegmentSize é a quantidade de doadores em um segmento
type SegmentSize struct {
	Segment Segment `json:"segment"`
	Count   int     `json:"count"`
}

// OutreachTarget é uma linha da lista de contato
type OutreachTarget struct {
	DonorID       string  `json:"donor_id"`
	Segment       Segment `json:"segment"`
	RecencyDays   int     `json:"recency_days"`
	Frequency     int     `json:"frequency"`
	MonetaryTotal float64 `json:"monetary_total"`
	MonetaryAvg   float64 `json:"monetary_avg"`
	SpanDays      int     `json:"span_days"`
}

// SegmentationParams são os parâmetros ajustáveis pelo usuário
type SegmentationParams struct {
	K        int
	Segments []Segment // Vazio = seleção padrão
	Filters  *DonationFilters
}

// SegmentationReport é tudo o que a página de segmentação exibe para uma execução
type SegmentationReport struct {
	RunID            string              `json:"run_id"`
	K                int                 `json:"k"`
	ReferenceDate    time.Time           `json:"reference_date"`
	Transactions     int                 `json:"transactions"`
	DroppedRows      int                 `json:"dropped_rows"`
	Clusters         []ClusterSummary    `json:"clusters"`
	Donors           []ClusterAssignment `json:"-"`
	Projection       []ProjectedPoint    `json:"projection"`
	SegmentSizes     []SegmentSize       `json:"segment_sizes"`
	SegmentOptions   []Segment           `json:"segment_options"`
	SelectedSegments []Segment           `json:"selected_segments"`
	Targets          []OutreachTarget    `json:"targets"`
}

// DataOverview resume o conteúdo da origem de dados para a página inicial
type DataOverview struct {
	Source    string `json:"source"`
	Donors    int    `json:"donors"`
	Donations int    `json:"donations"`
}

package segmenting

import (
	"fmt"
	"math"

	"github.com/vfg2006/donor-analytics/internal/domain"
	"github.com/vfg2006/donor-analytics/pkg/kmeans"
	"gonum.org/v1/gonum/stat"
)

// Clustering guarda o cluster de cada doador e a matriz padronizada usada no ajuste
type Clustering struct {
	Labels []int
	Matrix [][]float64
}

// ValidateClusterCount verifica se k está entre os limites aceitos pelo painel
func ValidateClusterCount(k int) error {
	if k < domain.MinClusters || k > domain.MaxClusters {
		return fmt.Errorf("%w: k=%d, expected %d..%d", domain.ErrInvalidClusterCount, k, domain.MinClusters, domain.MaxClusters)
	}
	return nil
}

// ClusterDonors ajusta k-means sobre recência, log1p(frequência) e log1p(valor total) padronizados
func ClusterDonors(rows []domain.DonorFeatureRow, k int, opts kmeans.Options) (*Clustering, error) {
	if err := ValidateClusterCount(k); err != nil {
		return nil, err
	}

	if len(rows) < k {
		return nil, &domain.InsufficientDataError{Donors: len(rows), K: k}
	}

	matrix := Standardize(TransformFeatures(rows))

	result, err := kmeans.Fit(matrix, k, opts)
	if err != nil {
		return nil, fmt.Errorf("erro ao ajustar k-means: %w", err)
	}

	return &Clustering{
		Labels: result.Labels,
		Matrix: matrix,
	}, nil
}

// TransformFeatures monta a matriz [recência, log1p(frequência), log1p(valor total)]
func TransformFeatures(rows []domain.DonorFeatureRow) [][]float64 {
	matrix := make([][]float64, len(rows))
	for i, row := range rows {
		matrix[i] = []float64{
			float64(row.RecencyDays),
			math.Log1p(float64(row.Frequency)),
			math.Log1p(row.MonetaryTotal),
		}
	}
	return matrix
}

// Standardize centraliza cada coluna e divide pelo desvio padrão populacional.
// Colunas sem variância ficam zeradas.
func Standardize(matrix [][]float64) [][]float64 {
	if len(matrix) == 0 {
		return matrix
	}

	dim := len(matrix[0])
	out := make([][]float64, len(matrix))
	for i := range out {
		out[i] = make([]float64, dim)
	}

	column := make([]float64, len(matrix))
	for j := 0; j < dim; j++ {
		for i, row := range matrix {
			column[i] = row[j]
		}

		mean, variance := stat.PopMeanVariance(column, nil)
		scale := math.Sqrt(variance)
		if scale == 0 {
			scale = 1
		}

		for i, row := range matrix {
			out[i][j] = (row[j] - mean) / scale
		}
	}

	return out
}

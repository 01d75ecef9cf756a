package kmeans

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func blobs() [][]float64 {
	return [][]float64{
		{0, 0}, {0.1, 0.2}, {0.2, 0.1}, {-0.1, 0.1},
		{10, 10}, {10.2, 9.9}, {9.8, 10.1}, {10.1, 10.2},
	}
}

func TestFit_SeparatesBlobs(t *testing.T) {
	result, err := Fit(blobs(), 2, DefaultOptions())
	require.NoError(t, err)

	require.Len(t, result.Labels, 8)
	for i := 1; i < 4; i++ {
		assert.Equal(t, result.Labels[0], result.Labels[i])
	}
	for i := 5; i < 8; i++ {
		assert.Equal(t, result.Labels[4], result.Labels[i])
	}
	assert.NotEqual(t, result.Labels[0], result.Labels[4])
	assert.Less(t, result.Inertia, 1.0)
}

func TestFit_DeterministicWithSameSeed(t *testing.T) {
	points := [][]float64{
		{1, 5}, {2, 3}, {8, 1}, {4, 4}, {9, 9}, {0, 7}, {3, 3}, {6, 2}, {7, 7}, {5, 5},
	}

	opts := DefaultOptions()
	opts.NInit = 3

	first, err := Fit(points, 3, opts)
	require.NoError(t, err)
	second, err := Fit(points, 3, opts)
	require.NoError(t, err)

	assert.Equal(t, first.Labels, second.Labels)
	assert.Equal(t, first.Centroids, second.Centroids)
	assert.Equal(t, first.Inertia, second.Inertia)
}

func TestFit_EveryPointGetsNearestCentroid(t *testing.T) {
	points := [][]float64{
		{1, 5}, {2, 3}, {8, 1}, {4, 4}, {9, 9}, {0, 7}, {3, 3}, {6, 2}, {7, 7}, {5, 5},
	}

	result, err := Fit(points, 4, DefaultOptions())
	require.NoError(t, err)

	for i, p := range points {
		assert.Equal(t, result.Predict(p), result.Labels[i])
	}
}

func TestFit_Errors(t *testing.T) {
	tests := []struct {
		name    string
		points  [][]float64
		k       int
		opts    Options
		wantErr error
	}{
		{
			name:    "k zero",
			points:  blobs(),
			k:       0,
			opts:    DefaultOptions(),
			wantErr: ErrInvalidK,
		},
		{
			name:    "menos pontos que clusters",
			points:  [][]float64{{1}, {2}, {3}},
			k:       4,
			opts:    DefaultOptions(),
			wantErr: ErrTooFewPoints,
		},
		{
			name:    "dimensões diferentes",
			points:  [][]float64{{1, 2}, {3}},
			k:       2,
			opts:    DefaultOptions(),
			wantErr: ErrRaggedPoints,
		},
		{
			name:    "n_init inválido",
			points:  blobs(),
			k:       2,
			opts:    Options{Seed: 1, NInit: 0, MaxIter: 10},
			wantErr: ErrInvalidOption,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Fit(tt.points, tt.k, tt.opts)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, result)
		})
	}
}

func TestFit_DuplicatePointsStillLabelsEveryPoint(t *testing.T) {
	points := [][]float64{{1, 1}, {1, 1}, {1, 1}, {5, 5}}

	result, err := Fit(points, 3, DefaultOptions())
	require.NoError(t, err)
	assert.Len(t, result.Labels, 4)
	for _, label := range result.Labels {
		assert.GreaterOrEqual(t, label, 0)
		assert.Less(t, label, 3)
	}
}

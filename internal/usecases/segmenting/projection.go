package segmenting

import (
	"errors"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

var errProjectionFailed = errors.New("principal component analysis failed")

// Project projeta a matriz padronizada nas duas primeiras componentes principais
func Project(matrix [][]float64) ([][2]float64, error) {
	if len(matrix) == 0 {
		return nil, nil
	}

	rows, cols := len(matrix), len(matrix[0])
	data := mat.NewDense(rows, cols, nil)
	for i, row := range matrix {
		data.SetRow(i, row)
	}

	var pc stat.PC
	if ok := pc.PrincipalComponents(data, nil); !ok {
		return nil, errProjectionFailed
	}

	var vectors mat.Dense
	pc.VectorsTo(&vectors)

	_, available := vectors.Dims()
	components := min(2, available)

	var projected mat.Dense
	projected.Mul(data, vectors.Slice(0, cols, 0, components))

	points := make([][2]float64, rows)
	for i := range points {
		for j := 0; j < components; j++ {
			points[i][j] = projected.At(i, j)
		}
	}

	return points, nil
}

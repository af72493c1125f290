package indicators

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBeta(t *testing.T) {
	benchmark := []float64{0.01, -0.02, 0.015, 0.005, -0.01}

	// A series that is exactly twice the benchmark has beta 2.
	double := make([]float64, len(benchmark))
	for i, v := range benchmark {
		double[i] = 2 * v
	}
	v, err := Beta(double, benchmark)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, v, 1e-12)

	// The benchmark against itself has beta 1.
	v, err = Beta(benchmark, benchmark)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, v, 1e-12)
}

func TestBetaDegenerateBenchmark(t *testing.T) {
	flat := []float64{0.01, 0.01, 0.01}
	v, err := Beta([]float64{0.02, -0.01, 0.03}, flat)
	require.NoError(t, err)
	assert.True(t, math.IsInf(v, 1))
}

func TestBetaErrors(t *testing.T) {
	_, err := Beta([]float64{1, 2}, []float64{1})
	assert.ErrorIs(t, err, ErrSeriesMismatch)

	_, err = Beta(nil, nil)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestPctChange(t *testing.T) {
	changes := PctChange([]float64{100, 110, 99})
	require.Len(t, changes, 2)
	assert.InDelta(t, 0.10, changes[0], 1e-12)
	assert.InDelta(t, -0.10, changes[1], 1e-12)

	assert.Nil(t, PctChange([]float64{100}))
}

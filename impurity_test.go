package cart

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGini(t *testing.T) {
	assert.Equal(t, 0.0, Gini([]int{4, 0}))
	assert.Equal(t, 0.0, Gini([]int{0, 0}))
	assert.InDelta(t, 0.5, Gini([]int{2, 2}), 1e-12)
	assert.InDelta(t, 2.0/3.0, Gini([]int{1, 1, 1}), 1e-12)
	assert.InDelta(t, 4.0/9.0, Gini([]int{1, 2}), 1e-12)
}

func TestWeightedGini(t *testing.T) {
	assert.InDelta(t, 1.0/3.0, WeightedGini([]int{1, 0}, []int{1, 2}), 1e-12)
	assert.Equal(t, 0.0, WeightedGini([]int{2, 0}, []int{0, 2}))
	assert.InDelta(t, 0.5, WeightedGini([]int{0, 0}, []int{2, 2}), 1e-12)
}

func TestThresholds(t *testing.T) {
	assert.Equal(t, []float64{1.5, 2.5, 3.5}, Thresholds([]float64{1, 2, 3, 4}))
	assert.Equal(t, []float64{0.5}, Thresholds([]float64{0, 1}))
	assert.Nil(t, Thresholds([]float64{7}))
	assert.Nil(t, Thresholds(nil))
}

func TestThresholdsOfLargeValues(t *testing.T) {
	thresholds := Thresholds([]float64{1e308, 1.5e308, math.MaxFloat64})
	require.Len(t, thresholds, 2)
	for _, th := range thresholds {
		assert.False(t, math.IsInf(th, 0))
	}
	assert.InEpsilon(t, 1.25e308, thresholds[0], 1e-12)
	assert.Greater(t, thresholds[1], 1.5e308)
	assert.Less(t, thresholds[1], math.MaxFloat64)
	negative := Thresholds([]float64{-1.5e308, -1e308})
	require.Len(t, negative, 1)
	assert.InEpsilon(t, -1.25e308, negative[0], 1e-12)
}

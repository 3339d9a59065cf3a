package cart

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/titigmr/cart/dataset"
	"github.com/titigmr/cart/feature"
)

func newSet(t *testing.T, names []string, X [][]float64, y []string) *dataset.Set {
	s, err := dataset.FromRows(dataset.ContinuousFeatures(names...), feature.NewDiscreteFeature("y", nil), X, y)
	require.NoError(t, err)
	return s
}

func lineSet(t *testing.T) *dataset.Set {
	return newSet(t, []string{"x"}, [][]float64{{3}, {1}, {4}, {2}}, []string{"B", "A", "B", "A"})
}

func TestNewPartition(t *testing.T) {
	s := lineSet(t)

	p := NewPartition(s, 0, 2.5)
	assert.Equal(t, 0.0, p.Impurity)
	assert.Equal(t, []int{2, 0}, p.LeftCounts)
	assert.Equal(t, []int{0, 2}, p.RightCounts)
	left, right := p.Subsets()
	assert.Equal(t, []int{1, 3}, left.Indices())
	assert.Equal(t, []int{0, 2}, right.Indices())
	lc, rc := p.Criteria()
	assert.Equal(t, "x < 2.5", fmt.Sprint(lc))
	assert.Equal(t, "2.5 <= x", fmt.Sprint(rc))

	p = NewPartition(s, 0, 1.5)
	assert.InDelta(t, 1.0/3.0, p.Impurity, 1e-12)
	assert.Equal(t, []int{1, 0}, p.LeftCounts)
	assert.Equal(t, []int{1, 2}, p.RightCounts)

	p = NewPartition(s, 0, 0.5)
	assert.Equal(t, []int{0, 0}, p.LeftCounts)
	assert.InDelta(t, 0.5, p.Impurity, 1e-12)
}

func TestBestPartition(t *testing.T) {
	ctx := context.Background()
	p, err := BestPartition(ctx, lineSet(t))
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "x", p.Feature.Name())
	assert.Equal(t, 2.5, p.Threshold)
	assert.Equal(t, 0.0, p.Impurity)
}

func TestBestPartitionFirstFeatureWinsTies(t *testing.T) {
	ctx := context.Background()
	s := newSet(t, []string{"a", "b"}, [][]float64{{1, 1}, {2, 2}, {3, 3}, {4, 4}}, []string{"A", "A", "B", "B"})
	p, err := BestPartition(ctx, s)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "a", p.Feature.Name())
	assert.Equal(t, 0, p.FeatureIndex)
}

func TestBestPartitionFirstThresholdWinsTies(t *testing.T) {
	ctx := context.Background()
	// 1.5 and 3.5 both isolate one sample of a class with two samples
	s := newSet(t, []string{"x"}, [][]float64{{1}, {2}, {3}, {4}}, []string{"A", "B", "B", "A"})
	p, err := BestPartition(ctx, s)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 1.5, p.Threshold)
}

func TestBestPartitionPureSet(t *testing.T) {
	ctx := context.Background()
	s := newSet(t, []string{"x"}, [][]float64{{1}, {2}, {3}}, []string{"A", "A", "A"})
	p, err := BestPartition(ctx, s)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestBestPartitionSkipsFeaturesWithTwoValues(t *testing.T) {
	ctx := context.Background()
	s := newSet(t, []string{"x"}, [][]float64{{0}, {0}, {1}, {1}}, []string{"A", "A", "B", "B"})
	p, err := BestPartition(ctx, s)
	require.NoError(t, err)
	assert.Nil(t, p)

	s = newSet(t, []string{"x", "z"}, [][]float64{{0, 5}, {0, 6}, {1, 7}, {1, 8}}, []string{"A", "A", "B", "B"})
	p, err = BestPartition(ctx, s)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "z", p.Feature.Name())
	assert.Equal(t, 6.5, p.Threshold)
}

func TestBestPartitionCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := BestPartition(ctx, lineSet(t))
	assert.Equal(t, context.Canceled, err)
}

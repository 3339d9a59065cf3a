package dataset

import (
	"context"
	"math"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/titigmr/cart/feature"
	"gonum.org/v1/gonum/mat"
)

func fourSamples(t *testing.T) *Set {
	s, err := FromRows(
		ContinuousFeatures("x", "z"),
		feature.NewDiscreteFeature("y", nil),
		[][]float64{{3, 0}, {1, 0}, {4, 1}, {2, 1}},
		[]string{"B", "A", "B", "A"},
	)
	require.NoError(t, err)
	return s
}

func TestFromRows(t *testing.T) {
	s := fourSamples(t)
	assert.Equal(t, 4, s.Count())
	assert.Equal(t, []string{"A", "B"}, s.Classes().Values())
	assert.Equal(t, []string{"A", "B"}, s.Label().AvailableValues())
	assert.Equal(t, []int{2, 2}, s.ClassCounts())
	assert.Equal(t, 1, s.Class(0))
	assert.Equal(t, 3.0, s.Value(0, 0))
	assert.Equal(t, []float64{1, 2, 3, 4}, s.DistinctValues(0))
	assert.Equal(t, []float64{0, 1}, s.DistinctValues(1))
}

func TestFromRowsExplicitClasses(t *testing.T) {
	s, err := FromRows(
		ContinuousFeatures("x"),
		feature.NewDiscreteFeature("y", []string{"B", "A", "C"}),
		[][]float64{{1}, {2}},
		[]string{"A", "B"},
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "A", "C"}, s.Classes().Values())
	assert.Equal(t, []int{1, 1, 0}, s.ClassCounts())
}

func TestFromRowsInvalidInput(t *testing.T) {
	label := feature.NewDiscreteFeature("y", nil)
	cases := map[string]func() (*Set, error){
		"no samples": func() (*Set, error) {
			return FromRows(ContinuousFeatures("x"), label, nil, nil)
		},
		"no features": func() (*Set, error) {
			return FromRows(nil, label, [][]float64{{}}, []string{"A"})
		},
		"length mismatch": func() (*Set, error) {
			return FromRows(ContinuousFeatures("x"), label, [][]float64{{1}, {2}}, []string{"A"})
		},
		"ragged": func() (*Set, error) {
			return FromRows(ContinuousFeatures("x", "z"), label, [][]float64{{1, 2}, {2}}, []string{"A", "B"})
		},
		"nan": func() (*Set, error) {
			return FromRows(ContinuousFeatures("x"), label, [][]float64{{math.NaN()}}, []string{"A"})
		},
		"duplicate feature": func() (*Set, error) {
			return FromRows(ContinuousFeatures("x", "x"), label, [][]float64{{1, 1}}, []string{"A"})
		},
		"feature is label": func() (*Set, error) {
			return FromRows(ContinuousFeatures("y"), label, [][]float64{{1}}, []string{"A"})
		},
		"unknown class": func() (*Set, error) {
			return FromRows(ContinuousFeatures("x"), feature.NewDiscreteFeature("y", []string{"A"}), [][]float64{{1}}, []string{"B"})
		},
		"duplicate class": func() (*Set, error) {
			return FromRows(ContinuousFeatures("x"), feature.NewDiscreteFeature("y", []string{"A", "A"}), [][]float64{{1}}, []string{"A"})
		},
	}
	for name, build := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := build()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput), "got %v", err)
		})
	}
}

func TestPartition(t *testing.T) {
	s := fourSamples(t)
	left, right := s.Partition([]bool{false, true, false, true})
	assert.Equal(t, []int{1, 3}, left.Indices())
	assert.Equal(t, []int{0, 2}, right.Indices())
	assert.Equal(t, []int{2, 0}, left.ClassCounts())
	assert.Equal(t, []int{0, 2}, right.ClassCounts())
	assert.Equal(t, left.Count()+right.Count(), s.Count())
	assert.Equal(t, 2.0, left.Value(1, 0))

	ll, lr := left.Partition([]bool{true, false})
	assert.Equal(t, []int{1}, ll.Indices())
	assert.Equal(t, []int{3}, lr.Indices())
}

func TestSamples(t *testing.T) {
	ctx := context.Background()
	s := fourSamples(t)
	samples := s.Samples()
	require.Len(t, samples, 4)
	v, err := samples[2].ValueFor(ctx, feature.NewContinuousFeature("x"))
	require.NoError(t, err)
	assert.Equal(t, 4.0, v)
	l, err := samples[2].ValueFor(ctx, s.Label())
	require.NoError(t, err)
	assert.Equal(t, "B", l)
	_, err = samples[2].ValueFor(ctx, feature.NewContinuousFeature("w"))
	require.Error(t, err)
	assert.Implements(t, (*interface{ StackTrace() errors.StackTrace })(nil), err)

	rebuilt, err := New(ctx, s.Features(), s.Label(), samples)
	require.NoError(t, err)
	assert.Equal(t, s.ClassCounts(), rebuilt.ClassCounts())
	assert.Equal(t, s.DistinctValues(0), rebuilt.DistinctValues(0))
}

func TestNewRejectsMissingValues(t *testing.T) {
	ctx := context.Background()
	samples := []feature.Sample{
		NewSample(map[string]interface{}{"x": 1.0, "y": "A"}),
		NewSample(map[string]interface{}{"y": "B"}),
	}
	_, err := New(ctx, ContinuousFeatures("x"), feature.NewDiscreteFeature("y", nil), samples)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestFromMatrix(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{
		1, 10,
		2, 20,
		3, 30,
	})
	s, err := FromMatrix(X, []string{"a", "b", "a"}, nil, "class")
	require.NoError(t, err)
	assert.Equal(t, "x1", s.Features()[1].Name())
	assert.Equal(t, 20.0, s.Value(1, 1))
	assert.Equal(t, []int{2, 1}, s.ClassCounts())

	_, err = FromMatrix(X, []string{"a", "b", "a"}, []string{"only"}, "class")
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestFromDataFrame(t *testing.T) {
	df := dataframe.LoadRecords([][]string{
		{"length", "species", "width"},
		{"1.5", "setosa", "0.2"},
		{"4.5", "versicolor", "1.5"},
		{"1.4", "setosa", "0.3"},
	})
	s, err := FromDataFrame(df, "species")
	require.NoError(t, err)
	require.Len(t, s.Features(), 2)
	assert.Equal(t, "length", s.Features()[0].Name())
	assert.Equal(t, "width", s.Features()[1].Name())
	assert.Equal(t, 1.5, s.Value(1, 1))
	assert.Equal(t, []string{"setosa", "versicolor"}, s.Classes().Values())

	_, err = FromDataFrame(df, "color")
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

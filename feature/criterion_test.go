package feature

import (
	"context"
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapSample map[string]interface{}

func (ms mapSample) ValueFor(_ context.Context, f Feature) (interface{}, error) {
	return ms[f.Name()], nil
}

func TestContinuousCriterionSatisfiedBy(t *testing.T) {
	ctx := context.Background()
	x := NewContinuousFeature("x")

	below := Below(x, 2.5)
	atLeast := AtLeast(x, 2.5)
	for _, v := range []float64{1, 2, 2.4999} {
		ok, err := below.SatisfiedBy(ctx, mapSample{"x": v})
		require.NoError(t, err)
		assert.True(t, ok, "%v < 2.5", v)
		ok, err = atLeast.SatisfiedBy(ctx, mapSample{"x": v})
		require.NoError(t, err)
		assert.False(t, ok, "%v >= 2.5", v)
	}
	for _, v := range []float64{2.5, 3, 100} {
		ok, err := below.SatisfiedBy(ctx, mapSample{"x": v})
		require.NoError(t, err)
		assert.False(t, ok)
		ok, err = atLeast.SatisfiedBy(ctx, mapSample{"x": v})
		require.NoError(t, err)
		assert.True(t, ok)
	}

	_, err := below.SatisfiedBy(ctx, mapSample{"x": "nope"})
	require.Error(t, err)
	assert.Implements(t, (*interface{ StackTrace() errors.StackTrace })(nil), err)
}

func TestContinuousCriterionString(t *testing.T) {
	x := NewContinuousFeature("petal")
	assert.Equal(t, "petal < 2.45", Below(x, 2.45).(interface{ String() string }).String())
	assert.Equal(t, "2.45 <= petal", AtLeast(x, 2.45).(interface{ String() string }).String())
	a, b := AtLeast(x, 1).Interval()
	assert.Equal(t, 1.0, a)
	assert.True(t, math.IsInf(b, 1))
}

func TestFeatureValid(t *testing.T) {
	x := NewContinuousFeature("x")
	ok, err := x.Valid(1.5)
	assert.True(t, ok)
	assert.NoError(t, err)
	ok, err = x.Valid(math.NaN())
	assert.False(t, ok)
	assert.Error(t, err)

	open := NewDiscreteFeature("y", nil)
	ok, _ = open.Valid("anything")
	assert.True(t, ok)

	closed := NewDiscreteFeature("y", []string{"a", "b"})
	ok, _ = closed.Valid("b")
	assert.True(t, ok)
	ok, err = closed.Valid("c")
	assert.False(t, ok)
	assert.Error(t, err)
}

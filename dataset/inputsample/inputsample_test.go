package inputsample

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/titigmr/cart/feature"
)

type recorder struct {
	requested []string
	rejected  []string
}

func (r *recorder) RequestValueFor(f feature.Feature) error {
	r.requested = append(r.requested, f.Name())
	return nil
}

func (r *recorder) RejectValueFor(f feature.Feature, v interface{}) error {
	r.rejected = append(r.rejected, fmt.Sprintf("%s=%v", f.Name(), v))
	return nil
}

func TestValueFor(t *testing.T) {
	ctx := context.Background()
	petal := feature.NewContinuousFeature("petal")
	sepal := feature.NewContinuousFeature("sepal")
	rec := &recorder{}
	s := New(strings.NewReader("wide\nNaN\n 1.4 \n5\n"), []*feature.ContinuousFeature{petal, sepal}, rec)

	v, err := s.ValueFor(ctx, petal)
	require.NoError(t, err)
	assert.Equal(t, 1.4, v)
	v, err = s.ValueFor(ctx, petal)
	require.NoError(t, err)
	assert.Equal(t, 1.4, v)
	v, err = s.ValueFor(ctx, sepal)
	require.NoError(t, err)
	assert.Equal(t, 5.0, v)

	assert.Equal(t, []string{"petal", "sepal"}, rec.requested)
	assert.Equal(t, []string{"petal=wide", "petal=NaN"}, rec.rejected)

	_, err = s.ValueFor(ctx, feature.NewContinuousFeature("color"))
	assert.Error(t, err)
}

func TestValueForEOF(t *testing.T) {
	petal := feature.NewContinuousFeature("petal")
	s := New(strings.NewReader(""), []*feature.ContinuousFeature{petal}, &recorder{})
	_, err := s.ValueFor(context.Background(), petal)
	assert.Error(t, err)
}

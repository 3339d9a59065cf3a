package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/titigmr/cart/dataset"
	"github.com/titigmr/cart/feature"
	"github.com/titigmr/cart/tree"
	"go.uber.org/zap"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, postgreSQLSource, kindOf("postgresql://localhost/iris"))
	assert.Equal(t, postgreSQLSource, kindOf("postgres://localhost/iris"))
	assert.Equal(t, mongoDBSource, kindOf("mongodb://localhost/iris"))
	assert.Equal(t, sqlite3Source, kindOf("iris.db"))
	assert.Equal(t, csvSource, kindOf("iris.csv"))
	assert.Equal(t, csvSource, kindOf(""))
}

func TestWriteAndReadCSVSet(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop().Sugar()
	features := dataset.ContinuousFeatures("x", "z")
	label := feature.NewDiscreteFeature("y", []string{"A", "B"})
	s, err := dataset.FromRows(features, label, [][]float64{{1, 0.5}, {2, 1.5}}, []string{"B", "A"})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "set.csv")
	w, release, err := openWriter(ctx, logger, path, features, s.Label())
	require.NoError(t, err)
	require.NoError(t, dataset.WriteSet(ctx, w, s))
	require.NoError(t, release())
	assert.Equal(t, 2, w.Count())

	read, err := readSet(ctx, logger, path, features, label)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1}, read.ClassCounts())
	assert.Equal(t, 1.5, read.Value(1, 1))
	assert.Equal(t, 1, read.Class(0))
}

func TestOpenNodeStore(t *testing.T) {
	logger := zap.NewNop().Sugar()
	features := dataset.ContinuousFeatures("x")
	for _, location := range []string{"", "memory", "badger:"} {
		ns, err := openNodeStore(logger, location, "cart", features)
		require.NoError(t, err, location)
		n := &tree.Node{}
		require.NoError(t, ns.Create(context.Background(), n))
		assert.Equal(t, "1", n.ID)
		require.NoError(t, ns.Close(context.Background()))
	}
	_, err := openNodeStore(logger, "cassandra://localhost", "cart", features)
	assert.Error(t, err)
}

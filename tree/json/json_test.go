package json

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/titigmr/cart/dataset"
	"github.com/titigmr/cart/feature"
	"github.com/titigmr/cart/tree"
)

func sampleTree(t *testing.T) *tree.Tree {
	ctx := context.Background()
	x := feature.NewContinuousFeature("x")
	ns := tree.NewMemoryNodeStore()
	tenth := 0.1
	root, left, right := &tree.Node{}, &tree.Node{Depth: 1}, &tree.Node{Depth: 1}
	for _, n := range []*tree.Node{root, left, right} {
		require.NoError(t, ns.Create(ctx, n))
	}
	root.Split = &tree.Split{Feature: x, Threshold: tenth + 0.2, Impurity: 0.25, LeftCounts: []int{3, 1}, RightCounts: []int{0, 4}}
	root.LeftID, root.RightID = left.ID, right.ID
	left.ParentID, right.ParentID = root.ID, root.ID
	left.FeatureCriterion, right.FeatureCriterion = root.Split.Left(), root.Split.Right()
	var err error
	root.Prediction, err = tree.NewPrediction([]int{3, 5})
	require.NoError(t, err)
	left.Prediction, err = tree.NewPrediction(root.Split.LeftCounts)
	require.NoError(t, err)
	right.Prediction, err = tree.NewPrediction(root.Split.RightCounts)
	require.NoError(t, err)
	return tree.New(root.ID, ns, feature.NewDiscreteFeature("species", []string{"setosa", "virginica"}), []*feature.ContinuousFeature{x})
}

func TestWriteReadJSONTree(t *testing.T) {
	ctx := context.Background()
	original := sampleTree(t)
	var b bytes.Buffer
	require.NoError(t, WriteJSONTree(ctx, original, &b))
	assert.Contains(t, b.String(), `{"rootID":"1","label":"species","classes":["setosa","virginica"],"features":["x"],"nodes":[`)
	assert.Contains(t, b.String(), `"th":"0.30000000000000004"`)

	read, err := ReadJSONTree(ctx, tree.NewMemoryNodeStore(), &b)
	require.NoError(t, err)
	assert.Equal(t, original.String(), read.String())
	assert.Equal(t, "species", read.Label.Name())

	tenth := 0.1
	threshold := tenth + 0.2
	rootNode, err := read.Get(ctx, read.RootID)
	require.NoError(t, err)
	assert.Equal(t, threshold, rootNode.Split.Threshold)
	for x, expected := range map[float64]string{0.3: "setosa", threshold: "virginica"} {
		v, err := read.PredictValue(ctx, dataset.NewSample(map[string]interface{}{"x": x}))
		require.NoError(t, err)
		assert.Equal(t, expected, v)
	}
}

func TestReadJSONTreeErrors(t *testing.T) {
	ctx := context.Background()
	for name, doc := range map[string]string{
		"not json":        `{`,
		"no root":         `{"label":"y","classes":["a"],"features":["x"],"nodes":[]}`,
		"no label":        `{"rootID":"1","features":["x"],"nodes":[]}`,
		"unknown feature": `{"rootID":"1","label":"y","classes":["a","b"],"features":["x"],"nodes":[{"id":"1","n":[1,1],"s":{"f":"z","th":"1","i":"0","ln":[1,0],"rn":[0,1]},"l":"2","r":"3"}]}`,
		"orphan split":    `{"rootID":"1","label":"y","classes":["a","b"],"features":["x"],"nodes":[{"id":"1","n":[1,1],"s":{"f":"x","th":"1","i":"0","ln":[1,0],"rn":[0,1]}}]}`,
		"empty counts":    `{"rootID":"1","label":"y","classes":["a","b"],"features":["x"],"nodes":[{"id":"1","n":[0,0]}]}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ReadJSONTree(ctx, tree.NewMemoryNodeStore(), bytes.NewBufferString(doc))
			assert.Error(t, err)
		})
	}
}

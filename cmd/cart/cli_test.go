package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testMetadata = `features:
  x: continuous
  z: continuous
  y: [A, B]
`
	testSet = `x,z,y
1,0,A
2,0,A
3,1,B
4,1,B
`
)

func writeFile(t *testing.T, dir, name, content string) string {
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func execute(t *testing.T, in string, args ...string) string {
	cmd := cliParser()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetIn(strings.NewReader(in))
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func executeFailing(t *testing.T, args ...string) int {
	cmd := cliParser()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	require.Error(t, err)
	return exitCode(err)
}

func TestExitCodes(t *testing.T) {
	dir := t.TempDir()
	metadata := writeFile(t, dir, "metadata.yml", testMetadata)
	data := writeFile(t, dir, "data.csv", testSet)

	assert.Equal(t, 1, executeFailing(t, "tree", "grow", "-m", metadata, "-i", data))
	assert.Equal(t, 1, executeFailing(t, "tree", "grow", "-m", metadata, "-i", data, "-c", "y", "--max-depth=-2"))
	assert.Equal(t, 2, executeFailing(t, "tree", "grow", "-m", filepath.Join(dir, "missing.yml"), "-i", data, "-c", "y"))
	assert.Equal(t, 3, executeFailing(t, "tree", "grow", "-m", metadata, "-i", data, "-c", "w"))
	assert.Equal(t, 4, executeFailing(t, "tree", "grow", "-m", metadata, "-i", filepath.Join(dir, "missing.csv"), "-c", "y"))
	assert.Equal(t, 1, executeFailing(t, "tree"))
	assert.Equal(t, 2, executeFailing(t, "tree", "-t", filepath.Join(dir, "missing.json")))
	assert.Equal(t, 1, executeFailing(t, "tree", "grow", "--unknown-flag"))
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, exitCode(nil))
	assert.Equal(t, 1, exitCode(errors.New("failed")))
	assert.Equal(t, 5, exitCode(errors.Wrap(&exitError{code: 5, err: errors.New("failed")}, "running")))
	assert.EqualError(t, &exitError{code: 5, err: errors.New("failed")}, "failed")
}

func TestGrowShowTestAndPredict(t *testing.T) {
	dir := t.TempDir()
	metadata := writeFile(t, dir, "metadata.yml", testMetadata)
	data := writeFile(t, dir, "data.csv", testSet)
	treePath := filepath.Join(dir, "tree.json")

	execute(t, "", "tree", "grow", "-m", metadata, "-i", data, "-c", "y", "-o", treePath)
	loaded, err := loadTree(context.Background(), treePath)
	require.NoError(t, err)
	root, err := loaded.Get(context.Background(), loaded.RootID)
	require.NoError(t, err)
	require.NotNil(t, root.Split)
	assert.Equal(t, "x", root.Split.Feature.Name())
	assert.Equal(t, 2.5, root.Split.Threshold)

	shown := execute(t, "", "tree", "-t", treePath)
	assert.Contains(t, shown, "split on x at 2.5")
	assert.Contains(t, shown, "depth 1, 2 leaves")

	tested := execute(t, "", "tree", "test", "-t", treePath, "-i", data)
	assert.Contains(t, tested, "1.000000 success rate, failed to make a prediction for 0 samples")

	predicted := execute(t, "one\n1\n", "tree", "predict", "-t", treePath)
	assert.Contains(t, predicted, "Please provide the sample's x")
	assert.Contains(t, predicted, "one is not a valid value for the sample's x")
	assert.Contains(t, predicted, "Predicted y is A, with class counts {A: 2, B: 0}")

	batch := filepath.Join(dir, "predicted.csv")
	execute(t, "", "tree", "predict", "-t", treePath, "-i", writeFile(t, dir, "unlabeled.csv", "x,z\n0.5,3\n3.7,0\n"), "-o", batch)
	content, err := os.ReadFile(batch)
	require.NoError(t, err)
	assert.Equal(t, "x,z,y\n0.5,3,A\n3.7,0,B\n", string(content))
}

func TestGrowWithMaxDepthFromEnvironment(t *testing.T) {
	dir := t.TempDir()
	metadata := writeFile(t, dir, "metadata.yml", testMetadata)
	data := writeFile(t, dir, "data.csv", testSet)
	treePath := filepath.Join(dir, "tree.json")
	t.Setenv("CART_MAX_DEPTH", "0")

	execute(t, "", "tree", "grow", "-m", metadata, "-i", data, "-c", "y", "-o", treePath)
	shown := execute(t, "", "tree", "-t", treePath)
	assert.Contains(t, shown, "depth 0, 1 leaves")
}

func TestGrowOnBadgerNodeStore(t *testing.T) {
	dir := t.TempDir()
	metadata := writeFile(t, dir, "metadata.yml", testMetadata)
	data := writeFile(t, dir, "data.csv", testSet)
	treePath := filepath.Join(dir, "tree.json")

	execute(t, "", "tree", "grow", "-m", metadata, "-i", data, "-c", "y", "-o", treePath, "--node-store", "badger:")
	shown := execute(t, "", "tree", "-t", treePath)
	assert.Contains(t, shown, "split on x at 2.5")
}

func TestSetAndSplit(t *testing.T) {
	dir := t.TempDir()
	metadata := writeFile(t, dir, "metadata.yml", testMetadata)
	data := writeFile(t, dir, "data.csv", "y,z,x\nA,0,1\nA,0,2\nB,1,3\nB,1,4\n")
	copied := filepath.Join(dir, "copy.csv")

	execute(t, "", "set", "-m", metadata, "-c", "y", "-i", data, "-o", copied)
	content, err := os.ReadFile(copied)
	require.NoError(t, err)
	assert.Equal(t, testSet, string(content))

	train := filepath.Join(dir, "train.csv")
	test := filepath.Join(dir, "test.csv")
	execute(t, "", "set", "split", "-m", metadata, "-c", "y", "-i", data, "-o", train, "-s", test, "-p", "100", "--seed", "7")
	content, err = os.ReadFile(test)
	require.NoError(t, err)
	assert.Equal(t, testSet, string(content))
	content, err = os.ReadFile(train)
	require.NoError(t, err)
	assert.Equal(t, "x,z,y\n", string(content))
}

func TestVersion(t *testing.T) {
	assert.Equal(t, "cart v0.1.0\n", execute(t, "", "version"))
}

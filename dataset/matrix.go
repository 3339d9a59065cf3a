package dataset

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/titigmr/cart/feature"
	"gonum.org/v1/gonum/mat"
)

/*
ContinuousFeatures takes a list of names and returns a continuous feature
for each of them.
*/
func ContinuousFeatures(names ...string) []*feature.ContinuousFeature {
	features := make([]*feature.ContinuousFeature, 0, len(names))
	for _, n := range names {
		features = append(features, feature.NewContinuousFeature(n))
	}
	return features
}

// DefaultFeatureNames returns the names x0, x1, ... x(n-1).
func DefaultFeatureNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("x%d", i)
	}
	return names
}

/*
FromMatrix takes a gonum matrix with one row per sample, the labels of
the rows, the names of the matrix columns (nil for x0, x1...) and the name
of the label and returns a Set with them or an error wrapping
ErrInvalidInput.
*/
func FromMatrix(X mat.Matrix, y []string, featureNames []string, labelName string) (*Set, error) {
	r, c := X.Dims()
	if featureNames == nil {
		featureNames = DefaultFeatureNames(c)
	}
	if len(featureNames) != c {
		return nil, errors.Wrapf(ErrInvalidInput, "%d feature names for a matrix with %d columns", len(featureNames), c)
	}
	rows := make([][]float64, r)
	for i := range rows {
		rows[i] = mat.Row(nil, i, X)
	}
	return FromRows(ContinuousFeatures(featureNames...), feature.NewDiscreteFeature(labelName, nil), rows, y)
}

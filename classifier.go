package cart

import (
	"context"

	"github.com/pkg/errors"
	"github.com/titigmr/cart/dataset"
	"github.com/titigmr/cart/feature"
	"github.com/titigmr/cart/tree"
	"go.uber.org/zap"
)

// ErrNotFitted is returned when a Classifier is used
// to predict before it has been fitted.
var ErrNotFitted = errors.New("classifier not fitted")

// labelName is the name of the label of sets built by Fit, extended
// with underscores while it matches a feature name
const labelName = "class"

func labelNameFor(featureNames []string) string {
	taken := make(map[string]bool, len(featureNames))
	for _, n := range featureNames {
		taken[n] = true
	}
	name := labelName
	for taken[name] {
		name += "_"
	}
	return name
}

/*
Classifier is a CART classification tree with a fit/predict interface
over feature matrices. A Classifier is not safe for concurrent use while
fitting; once fitted, predictions may run concurrently.
*/
type Classifier struct {
	maxDepth     int
	featureNames []string
	logger       *zap.Logger
	newNodeStore func() tree.NodeStore

	tree    *tree.Tree
	classes *dataset.ClassSet
}

// Option configures a Classifier
type Option func(*Classifier)

// MaxDepth sets the maximum depth of the trees grown by the classifier.
// A negative depth, the default, means no limit.
func MaxDepth(depth int) Option {
	return func(c *Classifier) {
		c.maxDepth = depth
	}
}

// FeatureNames sets the names of the columns of the matrices the
// classifier is fitted on. They default to x0, x1...
func FeatureNames(names ...string) Option {
	return func(c *Classifier) {
		c.featureNames = names
	}
}

// Logger sets the logger that receives the growth of trees.
func Logger(l *zap.Logger) Option {
	return func(c *Classifier) {
		c.logger = l
	}
}

// NodeStore sets the function providing the store for the nodes of every
// grown tree. It defaults to tree.NewMemoryNodeStore.
func NodeStore(f func() tree.NodeStore) Option {
	return func(c *Classifier) {
		c.newNodeStore = f
	}
}

// New returns an unfitted Classifier configured with the given options.
func New(opts ...Option) *Classifier {
	c := &Classifier{
		maxDepth:     Unbounded,
		logger:       zap.NewNop(),
		newNodeStore: tree.NewMemoryNodeStore,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

/*
Fit takes a context, a feature matrix with a row per sample, the label of
every sample and optional target names and grows the tree of the
classifier. Classes are the sorted distinct labels, compared as numbers when
every label is one and as strings otherwise; when given, target names
replace them in predictions, one per class in that order.

It returns an error wrapping dataset.ErrInvalidInput if the data is
malformed or the number of target names does not match the number of
classes.
*/
func (c *Classifier) Fit(ctx context.Context, X [][]float64, y []string, targetNames []string) error {
	if len(X) == 0 {
		return errors.Wrap(dataset.ErrInvalidInput, "no samples")
	}
	names := c.featureNames
	if names == nil {
		names = dataset.DefaultFeatureNames(len(X[0]))
	}
	s, err := dataset.FromRows(dataset.ContinuousFeatures(names...), feature.NewDiscreteFeature(labelNameFor(names), nil), X, y)
	if err != nil {
		return err
	}
	return c.fit(ctx, s, targetNames)
}

// FitSet takes a context and a training set and grows the tree of the
// classifier on it.
func (c *Classifier) FitSet(ctx context.Context, s *dataset.Set) error {
	return c.fit(ctx, s, nil)
}

func (c *Classifier) fit(ctx context.Context, s *dataset.Set, targetNames []string) error {
	classNames := s.Classes().Values()
	if targetNames != nil {
		if len(targetNames) != len(classNames) {
			return errors.Wrapf(dataset.ErrInvalidInput, "%d target names for %d classes", len(targetNames), len(classNames))
		}
		classNames = append([]string{}, targetNames...)
	}
	label := feature.NewDiscreteFeature(s.Label().Name(), classNames)
	t, err := Grow(ctx, label, s, &Strategy{MaxDepth: c.maxDepth, Logger: c.logger}, c.newNodeStore())
	if err != nil {
		return errors.Wrap(err, "growing tree")
	}
	c.tree = t
	c.classes = s.Classes()
	return nil
}

// Tree returns the tree of a fitted classifier, or nil.
func (c *Classifier) Tree() *tree.Tree {
	return c.tree
}

// Classes returns the class set of a fitted classifier, or nil.
func (c *Classifier) Classes() *dataset.ClassSet {
	return c.classes
}

// Predict takes a context and a feature matrix and returns the class
// predicted for every row, in row order.
func (c *Classifier) Predict(ctx context.Context, X [][]float64) ([]string, error) {
	result := make([]string, 0, len(X))
	for i, row := range X {
		p, err := c.PredictOne(ctx, row)
		if err != nil {
			return nil, errors.Wrapf(err, "row %d", i)
		}
		result = append(result, p)
	}
	return result, nil
}

// PredictOne takes a context and the feature values of a sample and
// returns the class predicted for it.
func (c *Classifier) PredictOne(ctx context.Context, row []float64) (string, error) {
	p, err := c.predict(ctx, row)
	if err != nil {
		return "", err
	}
	return c.tree.ClassName(p.Class()), nil
}

// Score takes a context, a feature matrix and the expected labels and
// returns the proportion of rows whose predicted class is the expected one.
// Labels are compared with the classes seen while fitting, not with the
// target names.
func (c *Classifier) Score(ctx context.Context, X [][]float64, y []string) (float64, error) {
	if len(X) != len(y) {
		return 0.0, errors.Wrapf(dataset.ErrInvalidInput, "%d feature rows but %d labels", len(X), len(y))
	}
	if len(X) == 0 {
		return 0.0, errors.Wrap(dataset.ErrInvalidInput, "no samples")
	}
	var hits int
	for i, row := range X {
		p, err := c.predict(ctx, row)
		if err != nil {
			return 0.0, errors.Wrapf(err, "row %d", i)
		}
		if class, ok := c.classes.Index(y[i]); ok && class == p.Class() {
			hits++
		}
	}
	return float64(hits) / float64(len(X)), nil
}

func (c *Classifier) predict(ctx context.Context, row []float64) (*tree.Prediction, error) {
	if c.tree == nil {
		return nil, ErrNotFitted
	}
	if len(row) != len(c.tree.Features) {
		return nil, errors.Wrapf(dataset.ErrInvalidInput, "%d values for %d features", len(row), len(c.tree.Features))
	}
	values := make(map[string]interface{}, len(row))
	for j, f := range c.tree.Features {
		if ok, err := f.Valid(row[j]); !ok {
			return nil, errors.Wrap(dataset.ErrInvalidInput, err.Error())
		}
		values[f.Name()] = row[j]
	}
	return c.tree.Predict(ctx, dataset.NewSample(values))
}

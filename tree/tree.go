package tree

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/titigmr/cart/dataset"
	"github.com/titigmr/cart/feature"
)

// Tree represents a classification tree. It is composed of a
// NodeStore where all its nodes are stored, the id for the
// root node of the tree, the label it is able to predict,
// whose available values are the names of the classes in
// class index order, and the features it splits on.
type Tree struct {
	NodeStore
	RootID   string
	Label    *feature.DiscreteFeature
	Features []*feature.ContinuousFeature
}

// New takes the ID for the root Node, a NodeStore, a label feature and the
// features of the samples and returns a tree composed of the nodes in the
// NodeStore connected to the node with the given root ID that predicts the
// given label.
func New(rootID string, nodeStore NodeStore, label *feature.DiscreteFeature, features []*feature.ContinuousFeature) *Tree {
	return &Tree{nodeStore, rootID, label, features}
}

// Predict takes a sample and returns a prediction according to the tree and an
// error if the prediction could not be made.
func (t *Tree) Predict(ctx context.Context, s feature.Sample) (*Prediction, error) {
	if t == nil {
		return nil, errors.New("nil tree cannot predict samples")
	}
	n, err := t.node(ctx, t.RootID)
	if err != nil {
		return nil, errors.Wrap(err, "predicting sample")
	}
	for !n.IsLeaf() {
		left, err := n.Split.Left().SatisfiedBy(ctx, s)
		if err != nil {
			return nil, errors.Wrap(err, "predicting sample")
		}
		next := n.RightID
		if left {
			next = n.LeftID
		}
		n, err = t.node(ctx, next)
		if err != nil {
			return nil, errors.Wrap(err, "predicting sample")
		}
	}
	if n.Prediction != nil {
		return n.Prediction, nil
	}
	return nil, ErrCannotPredictFromSample
}

// PredictValue takes a sample and returns the name of the class predicted
// for it.
func (t *Tree) PredictValue(ctx context.Context, s feature.Sample) (string, error) {
	p, err := t.Predict(ctx, s)
	if err != nil {
		return "", err
	}
	return t.ClassName(p.Class()), nil
}

// ClassName returns the name of the class with the given index.
func (t *Tree) ClassName(class int) string {
	values := t.Label.AvailableValues()
	if class < 0 || class >= len(values) {
		return fmt.Sprintf("%d", class)
	}
	return values[class]
}

/*
Test takes a context.Context and a Set whose class indices are those of the
tree label and returns three values:
 * the prediction success rate of the tree over the given Set for the label
 * the number of failing predictions for the dataset because of ErrCannotPredictFromSample errors
 * an error if a prediction could not be made for reasons other than the tree not
   being able to do so. If this is not nil, the other values will be 0.0 and 0
   respectively
*/
func (t *Tree) Test(ctx context.Context, s *dataset.Set) (float64, int, error) {
	if t == nil || s.Count() == 0 {
		return 0.0, 0, nil
	}
	var hits, errCount int
	for i, sample := range s.Samples() {
		p, err := t.Predict(ctx, sample)
		if err != nil {
			if err != ErrCannotPredictFromSample {
				return 0.0, 0, err
			}
			errCount++
			continue
		}
		if p.Class() == s.Class(i) {
			hits++
		}
	}
	return float64(hits) / float64(s.Count()), errCount, nil
}

// Traverse takes a context, bottomup boolean and an
// error-returning function that takes a context and a node
// as parameters, and goes through the tree running the
// function with the context and every traversed node.
// Traverse will call the function with a parent node before
// calling it for its children if bottomup is false, and
// call it after its children if bottomup is true. Left
// children are always traversed before right ones.
// If the given context times out or is cancelled, the context
// error is returned. If a node cannot be retrieved from the
// tree's node store, the obtained error is returned. If the
// call to the function returns an error, the traversing is
// aborted and the error is returned.
func (t *Tree) Traverse(ctx context.Context, bottomup bool, f func(context.Context, *Node) error) error {
	n, err := t.node(ctx, t.RootID)
	if err != nil {
		return err
	}
	return t.traverse(ctx, n, bottomup, f)
}

func (t *Tree) traverse(ctx context.Context, n *Node, bottomup bool, f func(context.Context, *Node) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !bottomup {
		if err := f(ctx, n); err != nil {
			return err
		}
	}
	for _, cID := range n.Children() {
		c, err := t.node(ctx, cID)
		if err != nil {
			return err
		}
		if err = t.traverse(ctx, c, bottomup, f); err != nil {
			return err
		}
	}
	if bottomup {
		return f(ctx, n)
	}
	return nil
}

// Depth returns the number of edges on the longest path from the root of
// the tree to a leaf.
func (t *Tree) Depth(ctx context.Context) (int, error) {
	var depth int
	err := t.Traverse(ctx, false, func(ctx context.Context, n *Node) error {
		if n.Depth > depth {
			depth = n.Depth
		}
		return nil
	})
	return depth, err
}

// Leaves returns the number of leaves of the tree.
func (t *Tree) Leaves(ctx context.Context) (int, error) {
	var leaves int
	err := t.Traverse(ctx, false, func(ctx context.Context, n *Node) error {
		if n.IsLeaf() {
			leaves++
		}
		return nil
	})
	return leaves, err
}

func (t *Tree) node(ctx context.Context, id string) (*Node, error) {
	n, err := t.NodeStore.Get(ctx, id)
	if err != nil {
		return nil, errors.Wrapf(err, "retrieving node %v", id)
	}
	if n == nil {
		return nil, errors.Errorf("node %v not found", id)
	}
	return n, nil
}

func (t *Tree) String() string {
	return t.subtreeString(t.RootID)
}

func (t *Tree) subtreeString(nodeID string) string {
	n, err := t.node(context.TODO(), nodeID)
	if err != nil {
		return fmt.Sprintf("ERROR: %s\n", err.Error())
	}
	var b strings.Builder
	fmt.Fprintf(&b, "[%s]", nodeID)
	if n.FeatureCriterion != nil {
		fmt.Fprintf(&b, " %v", n.FeatureCriterion)
	}
	if n.Prediction != nil {
		fmt.Fprintf(&b, " %s => %s", n.Prediction.Format(t.Label.AvailableValues()), t.ClassName(n.Prediction.Class()))
	}
	b.WriteString("\n")
	if n.IsLeaf() {
		return b.String()
	}
	fmt.Fprintf(&b, "| split on %s at %g (gini %.4f)\n", n.Split.Feature.Name(), n.Split.Threshold, n.Split.Impurity)
	children := n.Children()
	for i, childID := range children {
		for j, line := range strings.Split(t.subtreeString(childID), "\n") {
			if len(line) == 0 {
				continue
			}
			switch {
			case j == 0:
				fmt.Fprintf(&b, "|__%s\n", line)
			case i == len(children)-1:
				fmt.Fprintf(&b, "   %s\n", line)
			default:
				fmt.Fprintf(&b, "|  %s\n", line)
			}
		}
	}
	return b.String()
}

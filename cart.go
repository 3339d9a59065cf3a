/*
Package cart grows binary classification trees with the CART algorithm,
using the Gini impurity to pick the best threshold on numeric features at
every node.

Trees are grown from a work list: Seed creates the root of the tree and
pushes the task to develop it onto a queue, and Work pulls tasks from the
queue and develops them with BranchOut, pushing the tasks for the children
of every split node back. Grow runs the whole process, and Classifier wraps
it in a fit/predict interface.
*/
package cart

import (
	"context"

	"github.com/pkg/errors"
	"github.com/titigmr/cart/dataset"
	"github.com/titigmr/cart/feature"
	"github.com/titigmr/cart/queue"
	"github.com/titigmr/cart/tree"
	"go.uber.org/zap"
)

// Seed takes a context, a label feature, a set, a queue and a node
// store and sets everything up so that a worker that consumes from
// the queue afterwards grows a tree predicting the label on the
// given training set. The available values of the label are the
// names of the classes of the set, in class index order.
// Specifically it will create the root node of the tree on the
// node store and push a task to branch it out on the queue.
// The function returns the tree that can be grown or an error
// if the node cannot be created on the store, or the task pushed
// to the queue.
func Seed(ctx context.Context, label *feature.DiscreteFeature, s *dataset.Set, q queue.Queue, ns tree.NodeStore) (*tree.Tree, error) {
	if len(label.AvailableValues()) != s.Classes().Len() {
		return nil, errors.Wrapf(dataset.ErrInvalidInput, "label %s has %d values for %d classes", label.Name(), len(label.AvailableValues()), s.Classes().Len())
	}
	n := &tree.Node{}
	err := ns.Create(ctx, n)
	if err != nil {
		return nil, errors.Wrap(err, "creating root node")
	}
	t := tree.New(n.ID, ns, label, s.Features())
	err = q.Push(ctx, &queue.Task{Node: n, Set: s})
	if err != nil {
		ns.Delete(ctx, n)
		return nil, errors.Wrap(err, "pushing root task")
	}
	return t, nil
}

// BranchOut takes a context, a task, a tree and a strategy and
// develops the node in the task using the task's set: it sets
// the node prediction and, if the strategy allows the node to
// be split and a partition of the set lowers its impurity, sets
// the node split and creates the two children. It returns the
// tasks to develop the children or an error.
func BranchOut(ctx context.Context, task *queue.Task, t *tree.Tree, st *Strategy) (tasks []*queue.Task, e error) {
	prediction, err := tree.NewPredictionFromSet(task.Set)
	if err != nil {
		return nil, errors.Wrapf(err, "node %s", task.ID())
	}
	task.Node.Prediction = prediction
	defer func() {
		err := t.NodeStore.Store(ctx, task.Node)
		if e == nil && err != nil {
			e = errors.Wrapf(err, "storing node %s", task.ID())
		}
	}()
	log := st.logger().With(
		zap.String("node", task.ID()),
		zap.Int("depth", task.Node.Depth),
		zap.Int("samples", task.Set.Count()),
	)
	if !st.Splits(task.Node.Depth) {
		log.Debug("leaf at maximum depth", zap.String("class", t.ClassName(prediction.Class())))
		return nil, nil
	}
	p, err := BestPartition(ctx, task.Set)
	if err != nil {
		return nil, err
	}
	if p == nil {
		log.Debug("leaf", zap.String("class", t.ClassName(prediction.Class())), zap.Ints("counts", prediction.Counts()))
		return nil, nil
	}
	left, right := p.Subsets()
	lc, rc := p.Criteria()
	tasks = []*queue.Task{
		{Node: &tree.Node{ParentID: task.ID(), Depth: task.Node.Depth + 1, FeatureCriterion: lc}, Set: left},
		{Node: &tree.Node{ParentID: task.ID(), Depth: task.Node.Depth + 1, FeatureCriterion: rc}, Set: right},
	}
	for _, ct := range tasks {
		if err = t.NodeStore.Create(ctx, ct.Node); err != nil {
			return nil, errors.Wrapf(err, "creating child of node %s", task.ID())
		}
	}
	task.Node.Split = &tree.Split{
		Feature:     p.Feature,
		Threshold:   p.Threshold,
		Impurity:    p.Impurity,
		LeftCounts:  p.LeftCounts,
		RightCounts: p.RightCounts,
	}
	task.Node.LeftID, task.Node.RightID = tasks[0].ID(), tasks[1].ID()
	log.Debug("split",
		zap.String("feature", p.Feature.Name()),
		zap.Float64("threshold", p.Threshold),
		zap.Float64("impurity", p.Impurity),
		zap.Int("left", left.Count()),
		zap.Int("right", right.Count()),
	)
	return tasks, nil
}

// Work takes a context, a tree, a queue and a strategy and
// enters a loop in which it:
//   * pulls a task from the queue,
//   * branches its node out into new subnodes using BranchOut
//   * pushes the tasks for the new subnodes into the queue
//   * marks the task as completed on the queue
//
// When no task can be pulled from the queue the worker ends
// returning nil.
//
// Work will return a non-nil error if the given context
// times out or is cancelled, if BranchOut returns a non-nil
// error or if an operation with the given queue returns a
// non-nil error.
func Work(ctx context.Context, t *tree.Tree, q queue.Queue, st *Strategy) error {
	for {
		task, err := q.Pull(ctx)
		if err != nil {
			return err
		}
		if task == nil {
			return nil
		}
		if err = workTask(ctx, task, t, q, st); err != nil {
			return err
		}
	}
}

func workTask(ctx context.Context, task *queue.Task, t *tree.Tree, q queue.Queue, st *Strategy) (e error) {
	defer func() {
		if e != nil {
			q.Drop(ctx, task.ID())
		}
	}()
	tasks, err := BranchOut(ctx, task, t, st)
	if err != nil {
		return err
	}
	for _, ct := range tasks {
		if err = q.Push(ctx, ct); err != nil {
			return err
		}
	}
	return q.Complete(ctx, task.ID())
}

// Grow takes a context, a label feature, a training set, a strategy
// and a node store and returns the tree grown on the node store to
// predict the label on the set, or an error.
func Grow(ctx context.Context, label *feature.DiscreteFeature, s *dataset.Set, st *Strategy, ns tree.NodeStore) (*tree.Tree, error) {
	if st == nil {
		st = DefaultStrategy()
	}
	q := queue.New()
	t, err := Seed(ctx, label, s, q, ns)
	if err != nil {
		return nil, err
	}
	st.logger().Debug("growing tree",
		zap.String("label", label.Name()),
		zap.Int("features", len(s.Features())),
		zap.Int("samples", s.Count()),
		zap.Int("maxDepth", st.MaxDepth),
	)
	if err = Work(ctx, t, q, st); err != nil {
		return nil, err
	}
	return t, nil
}

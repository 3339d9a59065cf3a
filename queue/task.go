package queue

import (
	"fmt"

	"github.com/titigmr/cart/dataset"
	"github.com/titigmr/cart/tree"
)

// Task represents a tree.Node to be developed
// on a tree.Tree.
type Task struct {
	// The node to be developed
	Node *tree.Node
	// The subset of training data with samples
	// satisfying the constraints on the node
	// and its ancestors.
	Set *dataset.Set
}

// ID returns a string that identifies the
// task, the ID of its Node.
func (t *Task) ID() string {
	return t.Node.ID
}

func (t *Task) String() string {
	return fmt.Sprintf("{Task %s depth:%d samples:%d}", t.Node.ID, t.Node.Depth, t.Set.Count())
}

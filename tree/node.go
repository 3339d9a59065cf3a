package tree

import (
	"github.com/titigmr/cart/feature"
)

/*
Node is a node of the tree
*/
type Node struct {
	// An ID to identify the node
	ID string
	// The ID for the parent of the node in the tree
	ParentID string
	// The number of edges from the root of the tree to the node
	Depth int
	// The prediction for samples that satisfied node constraints from the root of the
	// tree up to this node.
	Prediction *Prediction
	// The constraint this node imposes on samples, that is, the side of the
	// parent's split that selects this node. It is nil for the root.
	FeatureCriterion feature.Criterion
	// The split on which samples are routed to the children of the node.
	// A node without split is a leaf.
	Split *Split
	// The IDs of the children of a split node: LeftID for samples whose
	// value on the split feature is below the threshold, RightID for the
	// rest.
	LeftID  string
	RightID string
}

/*
Split describes how a node divides the samples reaching it: samples whose
value for Feature is lower than Threshold go to the left child, the rest to
the right one.
*/
type Split struct {
	Feature   *feature.ContinuousFeature
	Threshold float64
	// Impurity is the weighted Gini impurity of the split
	Impurity float64
	// LeftCounts and RightCounts hold the number of training samples of
	// each class sent to each side, indexed by class index.
	LeftCounts  []int
	RightCounts []int
}

// IsLeaf returns whether the node has no split.
func (n *Node) IsLeaf() bool {
	return n.Split == nil
}

// Children returns the IDs of the left and right children of a split
// node, or nil for a leaf.
func (n *Node) Children() []string {
	if n.IsLeaf() {
		return nil
	}
	return []string{n.LeftID, n.RightID}
}

// Left returns the criterion satisfied by samples sent to the left child.
func (s *Split) Left() feature.ContinuousCriterion {
	return feature.Below(s.Feature, s.Threshold)
}

// Right returns the criterion satisfied by samples sent to the right child.
func (s *Split) Right() feature.ContinuousCriterion {
	return feature.AtLeast(s.Feature, s.Threshold)
}

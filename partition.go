package cart

import (
	"context"

	"github.com/titigmr/cart/dataset"
	"github.com/titigmr/cart/feature"
)

// A feature needs at least this many candidate thresholds to be considered
// for a split, so features taking only two distinct values on a set are
// never split on.
const minCandidateThresholds = 2

/*
Partition represents the division of a set of samples in two by a
threshold on a feature: samples whose value is lower than the threshold
on the left side, the rest on the right side.
*/
type Partition struct {
	Feature      *feature.ContinuousFeature
	FeatureIndex int
	Threshold    float64
	// Impurity is the weighted Gini impurity of the partition.
	Impurity float64
	// LeftCounts and RightCounts hold the number of samples of each class
	// on each side, indexed by class index.
	LeftCounts  []int
	RightCounts []int

	set  *dataset.Set
	mask []bool
}

/*
NewPartition takes a set, the index of one of its features and a threshold
and returns the partition of the set on them. The membership of every sample
is computed once and reused for the class counts and, when requested, the
subsets.
*/
func NewPartition(s *dataset.Set, featureIndex int, threshold float64) *Partition {
	p := &Partition{
		Feature:      s.Features()[featureIndex],
		FeatureIndex: featureIndex,
		Threshold:    threshold,
		LeftCounts:   make([]int, s.Classes().Len()),
		RightCounts:  make([]int, s.Classes().Len()),
		set:          s,
		mask:         make([]bool, s.Count()),
	}
	for i := range p.mask {
		if s.Value(i, featureIndex) < threshold {
			p.mask[i] = true
			p.LeftCounts[s.Class(i)]++
		} else {
			p.RightCounts[s.Class(i)]++
		}
	}
	p.Impurity = WeightedGini(p.LeftCounts, p.RightCounts)
	return p
}

// Subsets returns the subsets of samples on the left and right sides of the
// partition.
func (p *Partition) Subsets() (*dataset.Set, *dataset.Set) {
	return p.set.Partition(p.mask)
}

// Criteria returns the criteria satisfied by samples on the left and right
// sides of the partition.
func (p *Partition) Criteria() (feature.ContinuousCriterion, feature.ContinuousCriterion) {
	return feature.Below(p.Feature, p.Threshold), feature.AtLeast(p.Feature, p.Threshold)
}

/*
BestPartition takes a context.Context and a set and returns the partition of
the set with the lowest weighted Gini impurity, or nil if no partition has
an impurity strictly lower than the Gini impurity of the set itself.

Features are explored in the order of the set and their candidate thresholds
in ascending order, a partition replacing the best one found so far only
when its impurity is strictly lower: among equivalent partitions the first
one explored wins. An error is returned only if the context is done before
all features are explored.
*/
func BestPartition(ctx context.Context, s *dataset.Set) (*Partition, error) {
	best := Gini(s.ClassCounts())
	var selected *Partition
	for j := range s.Features() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		thresholds := Thresholds(s.DistinctValues(j))
		if len(thresholds) < minCandidateThresholds {
			continue
		}
		for _, th := range thresholds {
			p := NewPartition(s, j, th)
			if p.Impurity < best {
				best = p.Impurity
				selected = p
			}
		}
	}
	return selected, nil
}

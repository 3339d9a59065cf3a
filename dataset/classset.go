package dataset

import (
	"math"
	"sort"
	"strconv"

	"github.com/pkg/errors"
)

/*
ClassSet is the ordered, immutable set of values a label can take. The
position of a value in the set is its class index, used to align class
counts across all the nodes of a tree.
*/
type ClassSet struct {
	values []string
	index  map[string]int
}

/*
NewClassSet takes the labels observed on a set of samples and returns the
ClassSet of their distinct values, sorted. Values are sorted as numbers when
all of them parse as one, so "2" comes before "10", and as strings otherwise.
*/
func NewClassSet(labels []string) *ClassSet {
	seen := make(map[string]bool)
	var values []string
	for _, l := range labels {
		if !seen[l] {
			seen[l] = true
			values = append(values, l)
		}
	}
	sortLabels(values)
	return newClassSet(values)
}

func sortLabels(values []string) {
	numbers := make(map[string]float64, len(values))
	for _, v := range values {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(n) {
			sort.Strings(values)
			return
		}
		numbers[v] = n
	}
	sort.Slice(values, func(i, j int) bool {
		a, b := numbers[values[i]], numbers[values[j]]
		if a != b {
			return a < b
		}
		return values[i] < values[j]
	})
}

/*
ExplicitClassSet takes a list of class values and returns a ClassSet keeping
their order. It returns an error wrapping ErrInvalidInput if the list is
empty or has duplicates.
*/
func ExplicitClassSet(values []string) (*ClassSet, error) {
	if len(values) == 0 {
		return nil, errors.Wrap(ErrInvalidInput, "empty class set")
	}
	seen := make(map[string]bool)
	for _, v := range values {
		if seen[v] {
			return nil, errors.Wrapf(ErrInvalidInput, "duplicate class %q", v)
		}
		seen[v] = true
	}
	return newClassSet(append([]string{}, values...)), nil
}

func newClassSet(values []string) *ClassSet {
	index := make(map[string]int, len(values))
	for i, v := range values {
		index[v] = i
	}
	return &ClassSet{values: values, index: index}
}

// Len returns the number of classes.
func (cs *ClassSet) Len() int {
	return len(cs.values)
}

// Index returns the class index of a value and whether it belongs to the set.
func (cs *ClassSet) Index(value string) (int, bool) {
	i, ok := cs.index[value]
	return i, ok
}

// Value returns the class value at index i.
func (cs *ClassSet) Value(i int) string {
	return cs.values[i]
}

// Values returns a copy of the class values in class index order.
func (cs *ClassSet) Values() []string {
	return append([]string{}, cs.values...)
}

package dataset

import (
	"context"
	"sort"

	"github.com/pkg/errors"
	"github.com/titigmr/cart/feature"
)

/*
ErrInvalidInput is the error wrapped by every failure to build a Set (or
use it) because of malformed data: empty sets, ragged rows, non-finite
values, unknown labels...
*/
var ErrInvalidInput = errors.New("invalid input")

/*
Set represents a collection of labeled samples with numeric features.

All subsets obtained from a Set share its feature matrix and label vector
and only hold the list of indices of the samples they contain, so
subsetting never copies sample data. A Set is read-only.
*/
type Set struct {
	features     []*feature.ContinuousFeature
	featureIndex map[string]int
	label        *feature.DiscreteFeature
	classes      *ClassSet
	rows         [][]float64
	y            []int
	inx          []int
}

/*
New takes a context, a slice of continuous features, a label feature and a
slice of samples and returns a Set with them or an error wrapping
ErrInvalidInput.

The class set is the label's available values, in their order, when the
label declares them, or the sorted distinct label values of the samples
otherwise.
*/
func New(ctx context.Context, features []*feature.ContinuousFeature, label *feature.DiscreteFeature, samples []feature.Sample) (*Set, error) {
	X := make([][]float64, 0, len(samples))
	y := make([]string, 0, len(samples))
	for i, s := range samples {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row := make([]float64, len(features))
		for j, f := range features {
			v, err := s.ValueFor(ctx, f)
			if err != nil {
				return nil, errors.Wrapf(err, "sample %d", i)
			}
			fv, ok := v.(float64)
			if !ok {
				return nil, errors.Wrapf(ErrInvalidInput, "sample %d: feature %s: expected float64 value, got %T", i, f.Name(), v)
			}
			row[j] = fv
		}
		X = append(X, row)
		l, err := s.ValueFor(ctx, label)
		if err != nil {
			return nil, errors.Wrapf(err, "sample %d", i)
		}
		ls, ok := l.(string)
		if !ok {
			return nil, errors.Wrapf(ErrInvalidInput, "sample %d: label %s: expected string value, got %T", i, label.Name(), l)
		}
		y = append(y, ls)
	}
	return FromRows(features, label, X, y)
}

/*
FromRows takes a slice of continuous features, a label feature, a feature
matrix (one row per sample, one column per feature) and the label of every
row and returns a Set with them or an error wrapping ErrInvalidInput. The
matrix is copied.
*/
func FromRows(features []*feature.ContinuousFeature, label *feature.DiscreteFeature, X [][]float64, y []string) (*Set, error) {
	if len(features) == 0 {
		return nil, errors.Wrap(ErrInvalidInput, "no features")
	}
	if label == nil {
		return nil, errors.Wrap(ErrInvalidInput, "no label feature")
	}
	if len(X) == 0 {
		return nil, errors.Wrap(ErrInvalidInput, "no samples")
	}
	if len(X) != len(y) {
		return nil, errors.Wrapf(ErrInvalidInput, "%d feature rows but %d labels", len(X), len(y))
	}
	featureIndex := make(map[string]int, len(features))
	for j, f := range features {
		if _, ok := featureIndex[f.Name()]; ok {
			return nil, errors.Wrapf(ErrInvalidInput, "duplicate feature name %s", f.Name())
		}
		if f.Name() == label.Name() {
			return nil, errors.Wrapf(ErrInvalidInput, "feature %s is also the label", f.Name())
		}
		featureIndex[f.Name()] = j
	}
	var classes *ClassSet
	if len(label.AvailableValues()) > 0 {
		var err error
		classes, err = ExplicitClassSet(label.AvailableValues())
		if err != nil {
			return nil, err
		}
	} else {
		classes = NewClassSet(y)
	}
	s := &Set{
		features:     features,
		featureIndex: featureIndex,
		label:        feature.NewDiscreteFeature(label.Name(), classes.Values()),
		classes:      classes,
		rows:         make([][]float64, len(X)),
		y:            make([]int, len(y)),
		inx:          make([]int, len(X)),
	}
	for i, row := range X {
		if len(row) != len(features) {
			return nil, errors.Wrapf(ErrInvalidInput, "row %d has %d values, expected %d", i, len(row), len(features))
		}
		for j, v := range row {
			if ok, err := features[j].Valid(v); !ok {
				return nil, errors.Wrapf(ErrInvalidInput, "row %d: %v", i, err)
			}
		}
		s.rows[i] = append([]float64{}, row...)
		c, ok := classes.Index(y[i])
		if !ok {
			return nil, errors.Wrapf(ErrInvalidInput, "row %d: unknown class %q for label %s", i, y[i], label.Name())
		}
		s.y[i] = c
		s.inx[i] = i
	}
	return s, nil
}

// Count returns the number of samples in the set.
func (s *Set) Count() int {
	return len(s.inx)
}

// Features returns the features of the set samples, in column order.
func (s *Set) Features() []*feature.ContinuousFeature {
	return s.features
}

// Label returns the label feature, whose available values are the class set.
func (s *Set) Label() *feature.DiscreteFeature {
	return s.label
}

// Classes returns the class set of the label.
func (s *Set) Classes() *ClassSet {
	return s.classes
}

// Value returns the value of feature j for the i-th sample of the set.
func (s *Set) Value(i, j int) float64 {
	return s.rows[s.inx[i]][j]
}

// Class returns the class index of the i-th sample of the set.
func (s *Set) Class(i int) int {
	return s.y[s.inx[i]]
}

// Sample returns the i-th sample of the set.
func (s *Set) Sample(i int) feature.Sample {
	return &rowSample{s, s.inx[i]}
}

// Samples returns the samples of the set.
func (s *Set) Samples() []feature.Sample {
	samples := make([]feature.Sample, 0, len(s.inx))
	for _, r := range s.inx {
		samples = append(samples, &rowSample{s, r})
	}
	return samples
}

// Indices returns the indices of the set samples in the set it was
// subset from (the original rows).
func (s *Set) Indices() []int {
	return append([]int{}, s.inx...)
}

// ClassCounts returns the number of samples of each class, indexed by
// class index.
func (s *Set) ClassCounts() []int {
	counts := make([]int, s.classes.Len())
	for _, r := range s.inx {
		counts[s.y[r]]++
	}
	return counts
}

// DistinctValues returns the sorted distinct values feature j takes on
// the set.
func (s *Set) DistinctValues(j int) []float64 {
	values := make([]float64, 0, len(s.inx))
	for _, r := range s.inx {
		values = append(values, s.rows[r][j])
	}
	sort.Float64s(values)
	distinct := values[:0]
	for i, v := range values {
		if i == 0 || v != distinct[len(distinct)-1] {
			distinct = append(distinct, v)
		}
	}
	return distinct
}

/*
Partition takes a membership mask with one entry per sample of the set and
returns the subset of samples whose entry is true and the subset of the
rest, both keeping the set order.
*/
func (s *Set) Partition(mask []bool) (*Set, *Set) {
	var left, right []int
	for i, r := range s.inx {
		if mask[i] {
			left = append(left, r)
		} else {
			right = append(right, r)
		}
	}
	return s.subset(left), s.subset(right)
}

func (s *Set) subset(inx []int) *Set {
	return &Set{
		features:     s.features,
		featureIndex: s.featureIndex,
		label:        s.label,
		classes:      s.classes,
		rows:         s.rows,
		y:            s.y,
		inx:          inx,
	}
}

/*
Package feature defines the features samples are described by, the
samples themselves and the criteria tree nodes impose on them.
*/
package feature

import (
	"math"

	"github.com/pkg/errors"
)

// Feature is a named property of samples that validates the values
// samples take for it.
type Feature interface {
	Name() string
	Valid(interface{}) (bool, error)
}

/*
DiscreteFeature is a feature whose string values belong to a finite set,
such as the label a tree predicts. A DiscreteFeature with no available
values accepts any string, the values being discovered from the data.
*/
type DiscreteFeature struct {
	name            string
	availableValues []string
}

// ContinuousFeature is a feature taking finite float64 values, the only
// kind of feature trees split on.
type ContinuousFeature struct {
	name string
}

// NewDiscreteFeature returns a DiscreteFeature with the given name and
// available values, in class index order for a label.
func NewDiscreteFeature(name string, availableValues []string) *DiscreteFeature {
	return &DiscreteFeature{name, availableValues}
}

// NewContinuousFeature returns a ContinuousFeature with the given name.
func NewContinuousFeature(name string) *ContinuousFeature {
	return &ContinuousFeature{name}
}

func (df *DiscreteFeature) Name() string {
	return df.name
}

/*
Valid returns true and nil when value is a string among the available values
of the feature, or any string if there are none. Otherwise it returns false
and an error describing the reason.
*/
func (df *DiscreteFeature) Valid(value interface{}) (bool, error) {
	vs, ok := value.(string)
	if !ok {
		return false, errors.Errorf("discrete feature %s expects string value, got %T value", df.name, value)
	}
	if len(df.availableValues) == 0 {
		return true, nil
	}
	for _, av := range df.availableValues {
		if av == vs {
			return true, nil
		}
	}
	return false, errors.Errorf("discrete feature %s got unknown value %s", df.name, vs)
}

// AvailableValues returns the values the feature may take.
func (df *DiscreteFeature) AvailableValues() []string {
	return df.availableValues
}

func (df *DiscreteFeature) String() string {
	return df.name
}

func (cf *ContinuousFeature) Name() string {
	return cf.name
}

/*
Valid returns true and nil when value is a float64 that is neither NaN nor
infinite. Otherwise it returns false and an error describing the reason.
*/
func (cf *ContinuousFeature) Valid(value interface{}) (bool, error) {
	v, ok := value.(float64)
	if !ok {
		return false, errors.Errorf("continuous feature %s expects float64 value, got %T value", cf.name, value)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false, errors.Errorf("continuous feature %s got non-finite value %v", cf.name, v)
	}
	return true, nil
}

func (cf *ContinuousFeature) String() string {
	return cf.name
}

package feature

import (
	"context"
	"fmt"
	"math"

	"github.com/pkg/errors"
)

/*
Criterion represents a constraint on a feature

Its SatisfiedBy method takes a sample and returns a boolean indicating if
the given value satisfies the feature criterion.

Its Feature method returns the feature on which the criterion is applied.
*/
type Criterion interface {
	Feature() Feature
	SatisfiedBy(ctx context.Context, sample Sample) (bool, error)
}

/*
Sample is an interface for something that can satisfy a Criterion.

Its ValueFor method returns the value corresponding to the feature
passed as parameter.
*/
type Sample interface {
	ValueFor(context.Context, Feature) (interface{}, error)
}

/*
ContinuousCriterion represents a constraint on a continuous feature, a
half-open range [a, b) that delimits which values it may take. The interval
can be open on one end, thus representing -Infinity or +Infinity

Its Interval method returns the start and end of the interval to which the
feature is constrained as a pair of float64 values.
*/
type ContinuousCriterion interface {
	Criterion
	Interval() (float64, float64)
}

type continuousCriterion struct {
	feature *ContinuousFeature
	a, b    float64
}

/*
NewContinuousCriterion takes a ContinuousFeature feature and a pair of
float64 values indicating the start and the end of an interval and return a
ContinuousCriterion with the feature and interval. The interval can be
open on any end by providing -Inf and/or +Inf.
*/
func NewContinuousCriterion(feature *ContinuousFeature, a float64, b float64) ContinuousCriterion {
	return &continuousCriterion{feature, a, b}
}

/*
Below returns the criterion satisfied by values of the feature lower than
threshold, the left side of a split.
*/
func Below(f *ContinuousFeature, threshold float64) ContinuousCriterion {
	return NewContinuousCriterion(f, math.Inf(-1), threshold)
}

/*
AtLeast returns the criterion satisfied by values of the feature greater or
equal to threshold, the right side of a split.
*/
func AtLeast(f *ContinuousFeature, threshold float64) ContinuousCriterion {
	return NewContinuousCriterion(f, threshold, math.Inf(1))
}

/*
Feature returns the feature to which the constraint applies.
*/
func (cfc *continuousCriterion) Feature() Feature {
	return cfc.feature
}

/*
SatisfiedBy receives a sample as parameter and returns a boolean indicating if the
sample satisfies the criterion. It returns an error if the sample does not
define a float64 value for the feature.
*/
func (cfc *continuousCriterion) SatisfiedBy(ctx context.Context, sample Sample) (bool, error) {
	val, err := sample.ValueFor(ctx, cfc.feature)
	if err != nil {
		return false, err
	}
	floatVal, ok := val.(float64)
	if !ok {
		return false, errors.Errorf("feature %s: expected float64 value, got %T", cfc.feature.Name(), val)
	}
	return (math.IsInf(cfc.a, 0) || cfc.a <= floatVal) && (math.IsInf(cfc.b, 0) || floatVal < cfc.b), nil
}

func (cfc *continuousCriterion) Interval() (float64, float64) {
	return cfc.a, cfc.b
}

func (cfc *continuousCriterion) String() string {
	if math.IsInf(cfc.a, 0) {
		return fmt.Sprintf("%s < %g", cfc.feature.Name(), cfc.b)
	}
	if math.IsInf(cfc.b, 0) {
		return fmt.Sprintf("%g <= %s", cfc.a, cfc.feature.Name())
	}
	return fmt.Sprintf("%g <= %s < %g", cfc.a, cfc.feature.Name(), cfc.b)
}

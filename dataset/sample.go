package dataset

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/titigmr/cart/feature"
)

type sample struct {
	featureValues map[string]interface{}
}

/*
NewSample takes a map of feature string names to values and returns a
feature.Sample.
*/
func NewSample(featureValues map[string]interface{}) feature.Sample {
	return &sample{featureValues}
}

func (s *sample) ValueFor(_ context.Context, f feature.Feature) (interface{}, error) {
	return s.featureValues[f.Name()], nil
}

func (s *sample) String() string {
	return fmt.Sprintf("[%v]", s.featureValues)
}

// rowSample is a sample backed by a row of a Set.
type rowSample struct {
	set *Set
	row int
}

func (rs *rowSample) ValueFor(_ context.Context, f feature.Feature) (interface{}, error) {
	if f.Name() == rs.set.label.Name() {
		return rs.set.classes.Value(rs.set.y[rs.row]), nil
	}
	j, ok := rs.set.featureIndex[f.Name()]
	if !ok {
		return nil, errors.Errorf("sample has no value for feature %s", f.Name())
	}
	return rs.set.rows[rs.row][j], nil
}

func (rs *rowSample) String() string {
	return fmt.Sprintf("[%v %s]", rs.set.rows[rs.row], rs.set.classes.Value(rs.set.y[rs.row]))
}

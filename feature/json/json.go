package json

import (
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"
	"github.com/titigmr/cart/feature"
)

/*
CriteriaEncodeDecoder is an interface for objects
that allow encoding criteria into slices of
bytes and decoding them back to criteria.
*/
type CriteriaEncodeDecoder interface {

	//Encode receives a feature.Criterion
	//and returns a slice of bytes with the criterion
	//encoded or an error if the encoding could not
	//be performed for some reason.
	Encode(feature.Criterion) ([]byte, error)

	//Decode receives a slice of bytes
	//and returns a feature.Criterion decoded from the
	//slice of bytes or an error if the decoding
	//could not be performed for some reason.
	Decode([]byte) (feature.Criterion, error)
}

type jsonCriteriaEncodeDecoder []feature.Feature

type jsonCriterion struct {
	Type    string `json:"t"`
	Feature string `json:"f"`
	A       string `json:"a,omitempty"`
	B       string `json:"b,omitempty"`
}

// NewCriteriaEncodeDecoder takes a slice of feature.Feature and returns a
// CriteriaEncodeDecoder that marshals and unmarshals
// criteria into/from slices of bytes as JSON.
// Criteria are encoded as a JSON object with an "f" property set to the
// name of the feature of the criterion, a "t" property set to "continuous"
// and "a" and "b" properties defining the start and end of the interval
// for the feature, infinite ends being written as "-Inf" and "+Inf".
func NewCriteriaEncodeDecoder(features []feature.Feature) CriteriaEncodeDecoder {
	return jsonCriteriaEncodeDecoder(features)
}

func (jced jsonCriteriaEncodeDecoder) Encode(fc feature.Criterion) ([]byte, error) {
	c, ok := fc.(feature.ContinuousCriterion)
	if !ok {
		return nil, errors.Errorf("unknown type of feature.Criterion %T", fc)
	}
	a, b := c.Interval()
	return json.Marshal(&jsonCriterion{
		Type:    "continuous",
		Feature: c.Feature().Name(),
		A:       strconv.FormatFloat(a, 'g', -1, 64),
		B:       strconv.FormatFloat(b, 'g', -1, 64),
	})
}

func (jced jsonCriteriaEncodeDecoder) Decode(data []byte) (feature.Criterion, error) {
	jc := &jsonCriterion{}
	err := json.Unmarshal(data, jc)
	if err != nil {
		return nil, err
	}
	return jc.Criterion(jced)
}

func (jc *jsonCriterion) Criterion(features []feature.Feature) (feature.Criterion, error) {
	var f feature.Feature
	for _, feat := range features {
		if feat.Name() == jc.Feature {
			f = feat
			break
		}
	}
	if f == nil {
		return nil, errors.Errorf("unknown feature '%s'", jc.Feature)
	}
	if jc.Type != "continuous" {
		return nil, errors.Errorf("unknown feature criterion type '%s'", jc.Type)
	}
	cf, ok := f.(*feature.ContinuousFeature)
	if !ok {
		return nil, errors.Errorf("expected continuous feature for continuous criterion but found %T feature %v", f, f.Name())
	}
	a, err := strconv.ParseFloat(jc.A, 64)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing interval start of criterion on %s", jc.Feature)
	}
	b, err := strconv.ParseFloat(jc.B, 64)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing interval end of criterion on %s", jc.Feature)
	}
	return feature.NewContinuousCriterion(cf, a, b), nil
}

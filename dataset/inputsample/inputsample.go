/*
Package inputsample provides an implementation of feature.Sample whose
values are read from an io.Reader, for interactive predictions.
*/
package inputsample

import (
	"bufio"
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/titigmr/cart/feature"
)

/*
readSample represents a sample whose feature values
are retrieved from a reader. A feature value will be
requested using a FeatureValueRequester before reading it.
*/
type readSample struct {
	obtainedValues        map[string]float64
	scanner               *bufio.Scanner
	featureValueRequester FeatureValueRequester
	features              []*feature.ContinuousFeature
}

/*
FeatureValueRequester represents a way to ask
for feature values and reject the given values.
*/
type FeatureValueRequester interface {
	RequestValueFor(feature.Feature) error
	RejectValueFor(feature.Feature, interface{}) error
}

/*
New takes an io.Reader, a slice of continuous features and a
FeatureValueRequester and returns a Sample.

The returned Sample ValueFor method reads feature values first
requesting them with the given FeatureValueRequester and
then parsing the values from the reader, a value per line.
Lines are read until one holding a finite float64 number is found,
every other line being rejected with the FeatureValueRequester's
RejectValueFor method. Values are only requested once.

Attempting to obtain a value for a feature not in the given
features slice returns an error.
*/
func New(r io.Reader, features []*feature.ContinuousFeature, featureValueRequester FeatureValueRequester) feature.Sample {
	return &readSample{make(map[string]float64), bufio.NewScanner(r), featureValueRequester, features}
}

func (rs *readSample) ValueFor(ctx context.Context, f feature.Feature) (interface{}, error) {
	if value, ok := rs.obtainedValues[f.Name()]; ok {
		return value, nil
	}
	var known *feature.ContinuousFeature
	for _, cf := range rs.features {
		if f.Name() == cf.Name() {
			known = cf
			break
		}
	}
	if known == nil {
		return nil, errors.Errorf("have no information about feature %s, do not know how to read its value", f.Name())
	}
	err := rs.featureValueRequester.RequestValueFor(known)
	if err != nil {
		return nil, err
	}
	for rs.scanner.Scan() {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		line := strings.TrimSpace(rs.scanner.Text())
		value, err := strconv.ParseFloat(line, 64)
		if err == nil {
			if ok, _ := known.Valid(value); ok {
				rs.obtainedValues[known.Name()] = value
				return value, nil
			}
		}
		if err = rs.featureValueRequester.RejectValueFor(known, line); err != nil {
			return nil, err
		}
	}
	if err = rs.scanner.Err(); err != nil {
		return nil, err
	}
	return nil, errors.Errorf("EOF when requesting value for %s", known.Name())
}

/*
Package yaml provides methods to parse feature.Feature specifications
also known as metadata, from YAML documents.
*/
package yaml

import (
	"io/ioutil"

	"github.com/pkg/errors"
	"github.com/titigmr/cart/feature"
	yaml "gopkg.in/yaml.v3"
)

const (
	featuresKey    = "features"
	continuousType = "continuous"
)

/*
ReadFeatures takes a slice of bytes with a feature specification in YML and
returns a slice of features parsed from it or an error.
The YML is expected to be an object containing a features property. The value for this
should be an object with a property for each feature with its name and either a
string value of 'continuous' for continuous features or a list of valid values
for discrete features. Features are returned in document order, which is the
order in which trees consider them for splitting.

Feature names and values are taken verbatim from the document, so names such
as y, n or on are kept as they are written.
*/
func ReadFeatures(md []byte) ([]feature.Feature, error) {
	doc := &yaml.Node{}
	err := yaml.Unmarshal(md, doc)
	if err != nil {
		return nil, errors.Wrap(err, "parsing yml features")
	}
	declarations := lookup(resolve(doc), featuresKey)
	if declarations == nil || declarations.Kind != yaml.MappingNode {
		return nil, errors.New("metadata file has no feature information")
	}
	features := make([]feature.Feature, 0, len(declarations.Content)/2)
	for i := 0; i+1 < len(declarations.Content); i += 2 {
		fn := declarations.Content[i].Value
		value := resolve(declarations.Content[i+1])
		switch {
		case value.Kind == yaml.ScalarNode && value.ShortTag() == "!!str":
			if value.Value != continuousType {
				return nil, errors.Errorf("feature %s: unknown feature type %q", fn, value.Value)
			}
			features = append(features, feature.NewContinuousFeature(fn))
		case value.Kind == yaml.SequenceNode:
			values := make([]string, 0, len(value.Content))
			for _, v := range value.Content {
				v = resolve(v)
				if v.Kind != yaml.ScalarNode {
					return nil, errors.Errorf("feature %s: values must be scalars", fn)
				}
				values = append(values, v.Value)
			}
			features = append(features, feature.NewDiscreteFeature(fn, values))
		default:
			return nil, errors.Errorf("feature %s: invalid feature declaration %q at line %d", fn, value.Value, value.Line)
		}
	}
	return features, nil
}

// resolve returns the node an alias or a document points to.
func resolve(n *yaml.Node) *yaml.Node {
	for n != nil {
		switch {
		case n.Kind == yaml.AliasNode:
			n = n.Alias
		case n.Kind == yaml.DocumentNode && len(n.Content) == 1:
			n = n.Content[0]
		default:
			return n
		}
	}
	return n
}

// lookup returns the value of key on a mapping node, or nil.
func lookup(n *yaml.Node, key string) *yaml.Node {
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return resolve(n.Content[i+1])
		}
	}
	return nil
}

/*
ReadFeaturesFromFile takes a filepath string, reads its contents and uses
ReadFeatures to parse it and return a slice of parsed features or an error.
If the file indicated by the filepath cannot be opened for reading an error
will be returned.
*/
func ReadFeaturesFromFile(filepath string) ([]feature.Feature, error) {
	md, err := ioutil.ReadFile(filepath)
	if err != nil {
		return nil, errors.Wrapf(err, "reading features yml file %s", filepath)
	}
	features, err := ReadFeatures(md)
	if err != nil {
		err = errors.Wrapf(err, "parsing features yml file %s", filepath)
	}
	return features, err
}

/*
SplitLabel takes a slice of features and the name of the label feature and
returns the continuous features the tree may split on and the discrete label
feature. It fails when the label is not declared or not discrete, or when any
other feature is not continuous.
*/
func SplitLabel(features []feature.Feature, labelName string) ([]*feature.ContinuousFeature, *feature.DiscreteFeature, error) {
	var label *feature.DiscreteFeature
	var continuous []*feature.ContinuousFeature
	for _, f := range features {
		if f.Name() == labelName {
			df, ok := f.(*feature.DiscreteFeature)
			if !ok {
				return nil, nil, errors.Errorf("class feature '%s' must be discrete", labelName)
			}
			label = df
			continue
		}
		cf, ok := f.(*feature.ContinuousFeature)
		if !ok {
			return nil, nil, errors.Errorf("feature '%s' is not continuous: only numeric features can be split on", f.Name())
		}
		continuous = append(continuous, cf)
	}
	if label == nil {
		return nil, nil, errors.Errorf("class feature '%s' is not defined", labelName)
	}
	return continuous, label, nil
}

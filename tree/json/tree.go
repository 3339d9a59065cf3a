package json

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/titigmr/cart/feature"
	fjson "github.com/titigmr/cart/feature/json"
	"github.com/titigmr/cart/tree"
)

type jsonTree struct {
	RootID   string             `json:"rootID"`
	Label    string             `json:"label"`
	Classes  []string           `json:"classes"`
	Features []string           `json:"features"`
	Nodes    []*json.RawMessage `json:"nodes"`
}

/*
WriteJSONTree takes a context.Context, a pointer to a tree.Tree
and an io.Writer and serializes the given tree as JSON onto the
io.Writer.
A tree is serialized as a JSON object with the following fields:
* "rootID": a string with the ID of the node at the root of the tree
* "label": a string with the name of the feature the tree predicts
* "classes": an array with the names of the classes in class index order
* "features": an array with the names of the features of the tree
* "nodes": an array containing the nodes that can be traversed on the tree,
  parents before their children.
An error is returned if the tree cannot be traversed, serialized or written
onto the io.Writer.
*/
func WriteJSONTree(ctx context.Context, t *tree.Tree, w io.Writer) error {
	ned := NewNodeEncodeDecoder(fjson.NewCriteriaEncodeDecoder(features(t.Features)), features(t.Features))
	err := writeHeader(t, w)
	if err != nil {
		return err
	}
	var i int
	err = t.Traverse(ctx, false, func(ctx context.Context, n *tree.Node) error {
		if i != 0 {
			if _, err := w.Write([]byte(",")); err != nil {
				return err
			}
		}
		i++
		jn, err := ned.Encode(n)
		if err != nil {
			return err
		}
		_, err = w.Write(jn)
		return err
	})
	if err != nil {
		return err
	}
	_, err = w.Write([]byte(`]}`))
	return err
}

/*
ReadJSONTree takes a context.Context, a tree.NodeStore and an io.Reader
and returns the tree serialized as JSON on the io.Reader, as written by
WriteJSONTree, storing its nodes on the given store.
An error is returned if the JSON cannot be read from the io.Reader,
unmarshalled or stored.
*/
func ReadJSONTree(ctx context.Context, ns tree.NodeStore, r io.Reader) (*tree.Tree, error) {
	jt := &jsonTree{}
	err := json.NewDecoder(r).Decode(jt)
	if err != nil {
		return nil, errors.Wrap(err, "decoding tree")
	}
	if jt.RootID == "" {
		return nil, errors.New("no root node id available")
	}
	if jt.Label == "" || len(jt.Classes) == 0 {
		return nil, errors.New("no label feature defined")
	}
	cfs := make([]*feature.ContinuousFeature, 0, len(jt.Features))
	for _, name := range jt.Features {
		cfs = append(cfs, feature.NewContinuousFeature(name))
	}
	ned := NewNodeEncodeDecoder(fjson.NewCriteriaEncodeDecoder(features(cfs)), features(cfs))
	for _, jn := range jt.Nodes {
		n, err := ned.Decode(*jn)
		if err != nil {
			return nil, err
		}
		err = ns.Store(ctx, n)
		if err != nil {
			return nil, errors.Wrapf(err, "storing node %s", n.ID)
		}
	}
	return tree.New(jt.RootID, ns, feature.NewDiscreteFeature(jt.Label, jt.Classes), cfs), nil
}

func writeHeader(t *tree.Tree, w io.Writer) error {
	names := make([]string, 0, len(t.Features))
	for _, f := range t.Features {
		names = append(names, f.Name())
	}
	fields := []interface{}{t.RootID, t.Label.Name(), t.Label.AvailableValues(), names}
	encoded := make([]interface{}, 0, len(fields))
	for _, f := range fields {
		b, err := json.Marshal(f)
		if err != nil {
			return err
		}
		encoded = append(encoded, string(b))
	}
	header := fmt.Sprintf(`{"rootID":%s,"label":%s,"classes":%s,"features":%s,"nodes":[`, encoded...)
	_, err := w.Write([]byte(header))
	return err
}

func features(cfs []*feature.ContinuousFeature) []feature.Feature {
	fs := make([]feature.Feature, 0, len(cfs))
	for _, f := range cfs {
		fs = append(fs, f)
	}
	return fs
}

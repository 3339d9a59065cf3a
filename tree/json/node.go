package json

import (
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"
	"github.com/titigmr/cart/feature"
	fjson "github.com/titigmr/cart/feature/json"
	"github.com/titigmr/cart/tree"
)

/*
NodeEncodeDecoder is an interface for objects
that allow encoding nodes into slices of
bytes and decoding them back to nodes.
*/
type NodeEncodeDecoder interface {

	//Encode receives a *tree.Node
	//and returns a slice of bytes with the node
	//encoded or an error if the encoding could not
	//be performed for some reason.
	Encode(*tree.Node) ([]byte, error)

	//Decode receives a slice of bytes
	//and returns a *tree.Node decoded from the
	//slice of bytes or an error if the decoding
	//could not be performed for some reason.
	Decode([]byte) (*tree.Node, error)
}

type nodeEncodeDecoder struct {
	fjson.CriteriaEncodeDecoder
	features []feature.Feature
}

type node struct {
	ID               string           `json:"id"`
	ParentID         string           `json:"pId,omitempty"`
	Depth            int              `json:"d,omitempty"`
	FeatureCriterion *json.RawMessage `json:"c,omitempty"`
	Counts           []int            `json:"n,omitempty"`
	Split            *split           `json:"s,omitempty"`
	LeftID           string           `json:"l,omitempty"`
	RightID          string           `json:"r,omitempty"`
}

type split struct {
	Feature     string `json:"f"`
	Threshold   string `json:"th"`
	Impurity    string `json:"i"`
	LeftCounts  []int  `json:"ln"`
	RightCounts []int  `json:"rn"`
}

/*
NewNodeEncodeDecoder returns a NodeEncodeDecoder that uses the
given CriteriaEncodeDecoder to encode/decode nodes' feature criteria
and resolves split features among the given ones.
*/
func NewNodeEncodeDecoder(ced fjson.CriteriaEncodeDecoder, features []feature.Feature) NodeEncodeDecoder {
	return &nodeEncodeDecoder{ced, features}
}

func (ned *nodeEncodeDecoder) Encode(n *tree.Node) ([]byte, error) {
	jn := &node{
		ID:       n.ID,
		ParentID: n.ParentID,
		Depth:    n.Depth,
		LeftID:   n.LeftID,
		RightID:  n.RightID,
	}
	if n.FeatureCriterion != nil {
		fc, err := ned.CriteriaEncodeDecoder.Encode(n.FeatureCriterion)
		if err != nil {
			return nil, errors.Wrapf(err, "encoding node %s", n.ID)
		}
		rfc := json.RawMessage(fc)
		jn.FeatureCriterion = &rfc
	}
	if n.Prediction != nil {
		jn.Counts = n.Prediction.Counts()
	}
	if n.Split != nil {
		jn.Split = &split{
			Feature:     n.Split.Feature.Name(),
			Threshold:   formatFloat(n.Split.Threshold),
			Impurity:    formatFloat(n.Split.Impurity),
			LeftCounts:  n.Split.LeftCounts,
			RightCounts: n.Split.RightCounts,
		}
	}
	return json.Marshal(jn)
}

func (ned *nodeEncodeDecoder) Decode(data []byte) (*tree.Node, error) {
	jn := &node{}
	err := json.Unmarshal(data, jn)
	if err != nil {
		return nil, err
	}
	n := &tree.Node{
		ID:       jn.ID,
		ParentID: jn.ParentID,
		Depth:    jn.Depth,
		LeftID:   jn.LeftID,
		RightID:  jn.RightID,
	}
	if jn.FeatureCriterion != nil {
		n.FeatureCriterion, err = ned.CriteriaEncodeDecoder.Decode(*jn.FeatureCriterion)
		if err != nil {
			return nil, errors.Wrapf(err, "decoding node %s", n.ID)
		}
	}
	if jn.Counts != nil {
		n.Prediction, err = tree.NewPrediction(jn.Counts)
		if err != nil {
			return nil, errors.Wrapf(err, "decoding node %s", n.ID)
		}
	}
	if jn.Split != nil {
		n.Split, err = ned.decodeSplit(jn.Split)
		if err != nil {
			return nil, errors.Wrapf(err, "decoding node %s", n.ID)
		}
		if n.LeftID == "" || n.RightID == "" {
			return nil, errors.Errorf("decoding node %s: split node without children", n.ID)
		}
	}
	return n, nil
}

func (ned *nodeEncodeDecoder) decodeSplit(js *split) (*tree.Split, error) {
	var cf *feature.ContinuousFeature
	for _, f := range ned.features {
		if f.Name() == js.Feature {
			var ok bool
			if cf, ok = f.(*feature.ContinuousFeature); !ok {
				return nil, errors.Errorf("split on non-continuous feature %s", js.Feature)
			}
			break
		}
	}
	if cf == nil {
		return nil, errors.Errorf("unknown feature %s", js.Feature)
	}
	threshold, err := strconv.ParseFloat(js.Threshold, 64)
	if err != nil {
		return nil, errors.Wrap(err, "parsing split threshold")
	}
	impurity, err := strconv.ParseFloat(js.Impurity, 64)
	if err != nil {
		return nil, errors.Wrap(err, "parsing split impurity")
	}
	return &tree.Split{
		Feature:     cf,
		Threshold:   threshold,
		Impurity:    impurity,
		LeftCounts:  js.LeftCounts,
		RightCounts: js.RightCounts,
	}, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

/*
Package mongodataset reads and writes sets of samples on a MongoDB
database, a document per sample on the samples collection of the
session default database.
*/
package mongodataset

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/titigmr/cart/dataset"
	"github.com/titigmr/cart/feature"
	mgo "gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

/*
Dataset is a dataset.Writer to which samples can be added
and from which samples can be sequentially read, in the
order they were written.
*/
type Dataset interface {
	dataset.Writer
	Read(context.Context) (<-chan feature.Sample, <-chan error)
	// Set reads all the samples and returns them as a dataset.Set
	Set(context.Context) (*dataset.Set, error)
}

type mongodataset struct {
	session  *mgo.Session
	features []*feature.ContinuousFeature
	label    *feature.DiscreteFeature
	count    int
}

const (
	samplesCollectionName = "samples"
)

/*
Open takes a MongoDB database session, the continuous features of the
samples and the label feature and returns a Dataset that works on the
default database for that session or an error if the feature names
cannot be used as document fields or the indexes cannot be ensured.
*/
func Open(ctx context.Context, session *mgo.Session, features []*feature.ContinuousFeature, label *feature.DiscreteFeature) (Dataset, error) {
	mds := &mongodataset{session: session, features: features, label: label}
	for _, f := range mds.allFeatures() {
		if err := validateName(f.Name()); err != nil {
			return nil, err
		}
	}
	index := mgo.Index{Key: []string{label.Name()}, Background: true}
	if err := mds.samplesCollection().EnsureIndex(index); err != nil {
		return nil, errors.Wrap(err, "ensuring label index")
	}
	return mds, nil
}

/*
Dial takes a MongoDB URL such as mongodb://localhost/iris and returns a
session with the database in the URL as default database.
*/
func Dial(url string) (*mgo.Session, error) {
	session, err := mgo.Dial(url)
	if err != nil {
		return nil, errors.Wrap(err, "connecting to MongoDB")
	}
	return session, nil
}

func (mds *mongodataset) Write(ctx context.Context, samples []feature.Sample) (int, error) {
	docs := make([]interface{}, 0, len(samples))
	for i, s := range samples {
		doc := bson.D{{Name: "_id", Value: bson.NewObjectId()}}
		for _, f := range mds.allFeatures() {
			value, err := s.ValueFor(ctx, f)
			if err != nil {
				return 0, errors.Wrapf(err, "sample %d", mds.count+i+1)
			}
			if ok, err := f.Valid(value); !ok {
				return 0, errors.Wrapf(err, "sample %d", mds.count+i+1)
			}
			doc = append(doc, bson.DocElem{Name: f.Name(), Value: value})
		}
		docs = append(docs, doc)
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	err := mds.samplesCollection().Insert(docs...)
	if err != nil {
		return 0, errors.Wrap(err, "inserting samples")
	}
	mds.count += len(samples)
	return len(samples), nil
}

func (mds *mongodataset) Count() int {
	return mds.count
}

func (mds *mongodataset) Flush() error {
	return nil
}

func (mds *mongodataset) Read(ctx context.Context) (<-chan feature.Sample, <-chan error) {
	samples := make(chan feature.Sample)
	errs := make(chan error, 1)
	go func() {
		defer close(samples)
		defer close(errs)
		iter := mds.samplesCollection().Find(nil).Sort("_id").Iter()
		var doc bson.M
		for iter.Next(&doc) {
			s, err := mds.sampleFromDoc(doc)
			if err != nil {
				iter.Close()
				errs <- err
				return
			}
			select {
			case <-ctx.Done():
				iter.Close()
				errs <- ctx.Err()
				return
			case samples <- s:
			}
			doc = nil
		}
		if err := iter.Close(); err != nil {
			errs <- err
		}
	}()
	return samples, errs
}

func (mds *mongodataset) Set(ctx context.Context) (*dataset.Set, error) {
	var samples []feature.Sample
	sampleChan, errs := mds.Read(ctx)
	for s := range sampleChan {
		samples = append(samples, s)
	}
	if err := <-errs; err != nil {
		return nil, err
	}
	return dataset.New(ctx, mds.features, mds.label, samples)
}

func (mds *mongodataset) sampleFromDoc(doc bson.M) (feature.Sample, error) {
	values := make(map[string]interface{}, len(mds.features)+1)
	for _, f := range mds.features {
		switch v := doc[f.Name()].(type) {
		case float64:
			values[f.Name()] = v
		case int:
			values[f.Name()] = float64(v)
		case int64:
			values[f.Name()] = float64(v)
		default:
			return nil, errors.Wrapf(dataset.ErrInvalidInput, "document %v: expected number for feature %s, got %T", doc["_id"], f.Name(), v)
		}
	}
	l, ok := doc[mds.label.Name()]
	if !ok || l == nil {
		return nil, errors.Wrapf(dataset.ErrInvalidInput, "document %v: no value for label %s", doc["_id"], mds.label.Name())
	}
	values[mds.label.Name()] = fmt.Sprintf("%v", l)
	return dataset.NewSample(values), nil
}

func (mds *mongodataset) allFeatures() []feature.Feature {
	all := make([]feature.Feature, 0, len(mds.features)+1)
	for _, f := range mds.features {
		all = append(all, f)
	}
	return append(all, mds.label)
}

func (mds *mongodataset) samplesCollection() *mgo.Collection {
	return mds.session.DB("").C(samplesCollectionName)
}

func validateName(name string) error {
	if name == "_id" {
		return errors.Errorf("invalid feature name %q: reserved collection field", "_id")
	}
	if strings.ContainsAny(name, ".$") {
		return errors.Errorf("invalid feature name %q: contains reserved characters %q or %q", name, ".", "$")
	}
	return nil
}

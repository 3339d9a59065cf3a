package main

import (
	"context"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/titigmr/cart/dataset"
	"github.com/titigmr/cart/dataset/csv"
	"github.com/titigmr/cart/dataset/mongodataset"
	"github.com/titigmr/cart/dataset/sqlset"
	"github.com/titigmr/cart/dataset/sqlset/pgadapter"
	"github.com/titigmr/cart/dataset/sqlset/sqlite3adapter"
	"github.com/titigmr/cart/feature"
	"go.uber.org/zap"
)

type sourceKind int

const (
	csvSource sourceKind = iota
	sqlite3Source
	postgreSQLSource
	mongoDBSource
)

const sourceFlagUsage = "path to a CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL (postgresql://) or MongoDB (mongodb://) connection URL"

func kindOf(location string) sourceKind {
	switch {
	case strings.HasPrefix(location, "postgresql://"), strings.HasPrefix(location, "postgres://"):
		return postgreSQLSource
	case strings.HasPrefix(location, "mongodb://"):
		return mongoDBSource
	case strings.HasSuffix(location, ".db"):
		return sqlite3Source
	}
	return csvSource
}

/*
readSet takes a context, a logger, the location of a set of samples, their
continuous features and the label feature and returns the set read from
the location. An empty location means CSV from STDIN.
*/
func readSet(ctx context.Context, logger *zap.SugaredLogger, input string, features []*feature.ContinuousFeature, label *feature.DiscreteFeature) (*dataset.Set, error) {
	switch kindOf(input) {
	case postgreSQLSource:
		logger.Info("Creating PostgreSQL adapter to read set...")
		adapter, err := pgadapter.New(input)
		if err != nil {
			return nil, err
		}
		defer adapter.Close()
		return sqlset.ReadSet(ctx, adapter, features, label)
	case sqlite3Source:
		logger.Infof("Creating SQLite3 adapter for file %s to read set...", input)
		adapter, err := sqlite3adapter.New(input)
		if err != nil {
			return nil, err
		}
		defer adapter.Close()
		return sqlset.ReadSet(ctx, adapter, features, label)
	case mongoDBSource:
		logger.Info("Connecting to MongoDB to read set...")
		session, err := mongodataset.Dial(input)
		if err != nil {
			return nil, err
		}
		defer session.Close()
		ds, err := mongodataset.Open(ctx, session, features, label)
		if err != nil {
			return nil, err
		}
		return ds.Set(ctx)
	}
	if input == "" {
		logger.Info("Reading set from STDIN...")
	} else {
		logger.Infof("Opening %s to read set...", input)
	}
	return csv.ReadSetFromFilePath(ctx, input, features, label)
}

/*
openWriter takes a context, a logger, the location for a set of samples,
their continuous features and the label feature and returns a dataset.Writer
for the location along a function to release it once flushed. An empty
location means CSV to STDOUT.
*/
func openWriter(ctx context.Context, logger *zap.SugaredLogger, output string, features []*feature.ContinuousFeature, label *feature.DiscreteFeature) (dataset.Writer, func() error, error) {
	switch kindOf(output) {
	case postgreSQLSource:
		logger.Info("Creating PostgreSQL adapter to dump set...")
		adapter, err := pgadapter.New(output)
		if err != nil {
			return nil, nil, err
		}
		w, err := sqlset.NewWriter(ctx, adapter, features, label)
		if err != nil {
			adapter.Close()
			return nil, nil, err
		}
		return w, adapter.Close, nil
	case sqlite3Source:
		logger.Infof("Creating SQLite3 adapter for file %s to dump set...", output)
		adapter, err := sqlite3adapter.New(output)
		if err != nil {
			return nil, nil, err
		}
		w, err := sqlset.NewWriter(ctx, adapter, features, label)
		if err != nil {
			adapter.Close()
			return nil, nil, err
		}
		return w, adapter.Close, nil
	case mongoDBSource:
		logger.Info("Connecting to MongoDB to dump set...")
		session, err := mongodataset.Dial(output)
		if err != nil {
			return nil, nil, err
		}
		ds, err := mongodataset.Open(ctx, session, features, label)
		if err != nil {
			session.Close()
			return nil, nil, err
		}
		return ds, func() error { session.Close(); return nil }, nil
	}
	f := os.Stdout
	release := func() error { return nil }
	if output != "" {
		logger.Infof("Creating %s to dump set...", output)
		var err error
		f, err = os.Create(output)
		if err != nil {
			return nil, nil, errors.Wrap(err, "creating output set")
		}
		release = f.Close
	} else {
		logger.Info("Using STDOUT to dump set...")
	}
	w, err := csv.NewWriter(f, withLabel(features, label))
	if err != nil {
		release()
		return nil, nil, err
	}
	return w, release, nil
}

func withLabel(features []*feature.ContinuousFeature, label *feature.DiscreteFeature) []feature.Feature {
	all := asFeatures(features)
	if label != nil {
		all = append(all, label)
	}
	return all
}

func asFeatures(features []*feature.ContinuousFeature) []feature.Feature {
	all := make([]feature.Feature, 0, len(features)+1)
	for _, f := range features {
		all = append(all, f)
	}
	return all
}

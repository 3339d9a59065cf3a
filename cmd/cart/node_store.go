package main

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/titigmr/cart/feature"
	fjson "github.com/titigmr/cart/feature/json"
	"github.com/titigmr/cart/tree"
	"github.com/titigmr/cart/tree/badgerstore"
	tjson "github.com/titigmr/cart/tree/json"
	"github.com/titigmr/cart/tree/redisstore"
	"go.uber.org/zap"
	redis "gopkg.in/redis.v5"
)

const (
	memoryNodeStore   = "memory"
	badgerStorePrefix = "badger:"
)

/*
openNodeStore takes a logger, a node store location, the prefix for its keys
and the features nodes may split on and returns the tree.NodeStore for it:
"memory" (or empty) for the process memory, a redis:// URL for a redis server
or "badger:DIR" for a badger database at DIR ("badger:" alone keeps it in
memory).
*/
func openNodeStore(logger *zap.SugaredLogger, location, prefix string, features []*feature.ContinuousFeature) (tree.NodeStore, error) {
	fs := asFeatures(features)
	ned := tjson.NewNodeEncodeDecoder(fjson.NewCriteriaEncodeDecoder(fs), fs)
	switch {
	case location == "" || location == memoryNodeStore:
		return tree.NewMemoryNodeStore(), nil
	case strings.HasPrefix(location, "redis://"):
		opts, err := redisstore.Options(location)
		if err != nil {
			return nil, err
		}
		logger.Infof("Using redis at %s to store nodes under %s...", opts.Addr, prefix)
		return redisstore.New(redis.NewClient(opts), prefix, ned), nil
	case strings.HasPrefix(location, badgerStorePrefix):
		dir := strings.TrimPrefix(location, badgerStorePrefix)
		if dir == "" {
			logger.Infof("Using in-memory badger to store nodes under %s...", prefix)
		} else {
			logger.Infof("Using badger at %s to store nodes under %s...", dir, prefix)
		}
		return badgerstore.Open(dir, prefix, ned, logger.Desugar())
	}
	return nil, errors.Errorf("unknown node store %q: use memory, a redis:// URL or badger:DIR", location)
}

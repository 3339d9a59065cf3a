package main

import (
	"context"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/titigmr/cart"
	"github.com/titigmr/cart/feature/yaml"
)

type growCmdConfig struct {
	*treeCmdConfig
	dataInput       string
	output          string
	classFeature    string
	maxDepth        int
	nodeStore       string
	nodeStorePrefix string
}

func growCmd(treeConfig *treeCmdConfig) *cobra.Command {
	config := &growCmdConfig{treeCmdConfig: treeConfig}
	cmd := &cobra.Command{
		Use:   "grow",
		Short: "Grow a tree from a set of data",
		Long:  `Grow a classification tree from a set of data to predict a certain discrete feature.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := config.Validate()
			if err != nil {
				return config.exit(1, err)
			}
			logger := config.Logger()
			ctx := config.Context()
			logger.Infof("Reading features from metadata at %s...", config.metadataInput)
			features, err := yaml.ReadFeaturesFromFile(config.metadataInput)
			if err != nil {
				return config.exit(2, err)
			}
			continuous, label, err := yaml.SplitLabel(features, config.classFeature)
			if err != nil {
				return config.exit(3, err)
			}
			trainingSet, err := readSet(ctx, logger, config.dataInput, continuous, label)
			if err != nil {
				return config.exit(4, errors.Wrap(err, "reading training set"))
			}
			ns, err := openNodeStore(logger, config.nodeStore, config.nodeStorePrefix, continuous)
			if err != nil {
				return config.exit(5, err)
			}
			st := &cart.Strategy{MaxDepth: config.maxDepth, Logger: logger.Desugar()}
			logger.Infof("Growing tree from a set with %d samples and %d features to predict %s ...", trainingSet.Count(), len(continuous), label.Name())
			t, err := cart.Grow(ctx, trainingSet.Label(), trainingSet, st, ns)
			if err != nil {
				ns.Close(context.Background())
				return config.exit(6, errors.Wrap(err, "growing the tree"))
			}
			logger.Info("Done")
			logger.Debugf("Grown tree:\n%v", t)
			err = outputTree(ctx, config.output, t)
			if err != nil {
				ns.Close(context.Background())
				return config.exit(7, err)
			}
			err = ns.Close(ctx)
			if err != nil {
				return config.exit(8, errors.Wrap(err, "closing node store"))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&(config.dataInput), "input", "i", "", sourceFlagUsage+" with data to use to grow the tree (defaults to STDIN, interpreted as CSV)")
	cmd.Flags().StringVarP(&(config.output), "output", "o", "", "path to a file to which the generated tree will be written in JSON format (defaults to STDOUT)")
	cmd.Flags().StringVarP(&(config.classFeature), "class-feature", "c", "", "name of the discrete feature the generated tree should predict (required)")
	cmd.Flags().IntVarP(&(config.maxDepth), "max-depth", "d", cart.Unbounded, "maximum depth of the tree, the root being at depth 0 (defaults to -1: unbounded)")
	cmd.Flags().StringVar(&(config.nodeStore), "node-store", memoryNodeStore, "where to keep the nodes while growing the tree: memory, a redis:// URL or badger:DIR")
	cmd.Flags().StringVar(&(config.nodeStorePrefix), "node-store-prefix", "cart", "prefix for the keys of the nodes on redis or badger node stores")
	return cmd
}

func (gcc *growCmdConfig) Validate() error {
	if gcc.metadataInput == "" {
		return errors.New("required metadata flag was not set")
	}
	if gcc.classFeature == "" {
		return errors.New("required class-feature flag was not set")
	}
	if gcc.maxDepth < cart.Unbounded {
		return errors.Errorf("invalid max-depth %d: it must be -1 (unbounded) or greater", gcc.maxDepth)
	}
	return nil
}

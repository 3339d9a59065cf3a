package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/titigmr/cart/dataset"
	"github.com/titigmr/cart/feature"
	"github.com/titigmr/cart/feature/yaml"
)

type setCmdConfig struct {
	*rootCmdConfig
	setInput      string
	metadataInput string
	setOutput     string
	classFeature  string
}

func setCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &setCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Manage sets of data",
		Long:  `Copy sets of data between CSV files, SQLite3 and PostgreSQL databases and MongoDB`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := config.Validate()
			if err != nil {
				return config.exit(1, err)
			}
			ctx := config.Context()
			features, label, err := config.features()
			if err != nil {
				return config.exit(2, err)
			}
			s, err := readSet(ctx, config.Logger(), config.setInput, features, label)
			if err != nil {
				return config.exit(3, errors.Wrap(err, "reading input set"))
			}
			output, release, err := openWriter(ctx, config.Logger(), config.setOutput, features, s.Label())
			if err != nil {
				return config.exit(4, err)
			}
			config.Logger().Infof("Dumping input set with %d samples into output set...", s.Count())
			err = dataset.WriteSet(ctx, output, s)
			if err != nil {
				release()
				return config.exit(5, err)
			}
			err = release()
			if err != nil {
				return config.exit(6, err)
			}
			config.Logger().Info("Done")
			return nil
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.setInput), "input", "i", "", sourceFlagUsage+" with the input set (defaults to STDIN, interpreted as CSV)")
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with metadata describing the features available on the input set (required)")
	cmd.PersistentFlags().StringVarP(&(config.setOutput), "output", "o", "", sourceFlagUsage+" to dump the output set (defaults to STDOUT in CSV)")
	cmd.PersistentFlags().StringVarP(&(config.classFeature), "class-feature", "c", "", "name of the discrete feature holding the class of the samples (required)")
	cmd.AddCommand(splitCmd(config))
	return cmd
}

func (scc *setCmdConfig) Validate() error {
	if scc.metadataInput == "" {
		return errors.New("required metadata flag was not set")
	}
	if scc.classFeature == "" {
		return errors.New("required class-feature flag was not set")
	}
	return nil
}

func (scc *setCmdConfig) features() ([]*feature.ContinuousFeature, *feature.DiscreteFeature, error) {
	scc.Logger().Infof("Reading features from metadata at %s...", scc.metadataInput)
	features, err := yaml.ReadFeaturesFromFile(scc.metadataInput)
	if err != nil {
		return nil, nil, err
	}
	return yaml.SplitLabel(features, scc.classFeature)
}

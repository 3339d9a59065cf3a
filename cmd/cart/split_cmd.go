package main

import (
	"math/rand"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/titigmr/cart/feature"
)

type splitCmdConfig struct {
	*setCmdConfig
	splitOutput      string
	splitProbability int
	seed             int64
}

func splitCmd(setConfig *setCmdConfig) *cobra.Command {
	config := &splitCmdConfig{setCmdConfig: setConfig}
	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split a set into two sets",
		Long:  `Split a set into an output set and a split set, for instance to obtain a training set and a testing set`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := config.Validate()
			if err != nil {
				return config.exit(1, err)
			}
			ctx := config.Context()
			logger := config.Logger()
			features, label, err := config.features()
			if err != nil {
				return config.exit(2, err)
			}
			s, err := readSet(ctx, logger, config.setInput, features, label)
			if err != nil {
				return config.exit(3, errors.Wrap(err, "reading input set"))
			}
			output, releaseOutput, err := openWriter(ctx, logger, config.setOutput, features, s.Label())
			if err != nil {
				return config.exit(4, err)
			}
			splitOutput, releaseSplitOutput, err := openWriter(ctx, logger, config.splitOutput, features, s.Label())
			if err != nil {
				releaseOutput()
				return config.exit(5, err)
			}
			seed := config.seed
			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			logger.Debugf("Splitting with seed %d", seed)
			randomizer := rand.New(rand.NewSource(seed))
			for _, sample := range s.Samples() {
				w := output
				if 100*randomizer.Float64() < float64(config.splitProbability) {
					w = splitOutput
				}
				_, err = w.Write(ctx, []feature.Sample{sample})
				if err != nil {
					break
				}
			}
			if err == nil {
				err = output.Flush()
			}
			if err == nil {
				err = splitOutput.Flush()
			}
			releaseOutput()
			releaseSplitOutput()
			if err != nil {
				return config.exit(6, err)
			}
			logger.Infof("Input set with %d samples was split into sets with %d and %d samples", s.Count(), output.Count(), splitOutput.Count())
			return nil
		},
	}
	cmd.Flags().IntVarP(&(config.splitProbability), "split-probability", "p", 20, "probability as percent integer that a sample of the set will be assigned to the split set")
	cmd.Flags().StringVarP(&(config.splitOutput), "split-output", "s", "", sourceFlagUsage+" to dump the split set (required)")
	cmd.Flags().Int64Var(&(config.seed), "seed", 0, "seed for the random assignment of samples (defaults to 0: a time based seed)")
	return cmd
}

func (scc *splitCmdConfig) Validate() error {
	if err := scc.setCmdConfig.Validate(); err != nil {
		return err
	}
	if scc.splitOutput == "" {
		return errors.New("required split-output flag was not set")
	}
	if scc.splitProbability <= 0 || scc.splitProbability > 100 {
		return errors.New("split-probability flag was set to an invalid value: it must be set to an integer between 1 and 100")
	}
	return nil
}

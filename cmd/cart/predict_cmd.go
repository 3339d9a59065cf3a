package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/titigmr/cart/dataset/csv"
	"github.com/titigmr/cart/dataset/inputsample"
	"github.com/titigmr/cart/feature"
	"github.com/titigmr/cart/tree"
)

type predictCmdConfig struct {
	*treeCmdConfig
	dataInput string
	output    string
}

type stdoutFeatureValueRequester struct {
	w io.Writer
}

// predictedSample adds the predicted label to a sample.
type predictedSample struct {
	feature.Sample
	label *feature.DiscreteFeature
	class string
}

func predictCmd(treeConfig *treeCmdConfig) *cobra.Command {
	config := &predictCmdConfig{treeCmdConfig: treeConfig}
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict the class of samples",
		Long: `Use the loaded tree to predict the class of a sample answering questions about its features,
or of every sample of a CSV input set`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := config.Validate()
			if err != nil {
				return config.exit(1, err)
			}
			ctx := config.Context()
			t, err := loadTree(ctx, config.treeInput)
			if err != nil {
				return config.exit(2, err)
			}
			if config.dataInput == "" {
				sample := inputsample.New(cmd.InOrStdin(), t.Features, &stdoutFeatureValueRequester{cmd.OutOrStdout()})
				p, err := t.Predict(ctx, sample)
				if err != nil {
					return config.exit(3, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Predicted %s is %s, with class counts %s\n", t.Label.Name(), t.ClassName(p.Class()), p.Format(t.Label.AvailableValues()))
				return nil
			}
			count, err := config.predictSet(ctx, t)
			if err != nil {
				return config.exit(4, err)
			}
			config.Logger().Infof("Predicted classes for %d samples", count)
			return nil
		},
	}
	cmd.Flags().StringVarP(&(config.treeInput), "tree", "t", "", "path to a file from which the tree will be read and parsed as JSON (required)")
	cmd.Flags().StringVarP(&(config.dataInput), "input", "i", "", "path to a CSV file with samples whose classes should be predicted (defaults to asking for the values of a single sample)")
	cmd.Flags().StringVarP(&(config.output), "output", "o", "", "path to a CSV file to dump the input samples with their predicted class (defaults to STDOUT)")
	return cmd
}

func (pcc *predictCmdConfig) Validate() error {
	if pcc.treeInput == "" {
		return errors.New("required tree flag was not set")
	}
	return nil
}

func (pcc *predictCmdConfig) predictSet(ctx context.Context, t *tree.Tree) (int, error) {
	f, err := os.Open(pcc.dataInput)
	if err != nil {
		return 0, errors.Wrap(err, "reading input set")
	}
	defer f.Close()
	output, release, err := openWriter(ctx, pcc.Logger(), pcc.output, t.Features, t.Label)
	if err != nil {
		return 0, err
	}
	defer release()
	err = csv.ReadSetBySample(f, asFeatures(t.Features), func(i int, s feature.Sample) (bool, error) {
		class, err := t.PredictValue(ctx, s)
		if err != nil {
			return false, errors.Wrapf(err, "predicting sample %d", i+1)
		}
		_, err = output.Write(ctx, []feature.Sample{&predictedSample{s, t.Label, class}})
		return err == nil, err
	})
	if err != nil {
		return output.Count(), err
	}
	return output.Count(), output.Flush()
}

func (ps *predictedSample) ValueFor(ctx context.Context, f feature.Feature) (interface{}, error) {
	if f.Name() == ps.label.Name() {
		return ps.class, nil
	}
	return ps.Sample.ValueFor(ctx, f)
}

func (sfvr *stdoutFeatureValueRequester) RequestValueFor(f feature.Feature) error {
	if _, ok := f.(*feature.ContinuousFeature); !ok {
		return errors.Errorf("unknown feature type %T", f)
	}
	_, err := fmt.Fprintf(sfvr.w, "Please provide the sample's %s:\n(valid values are real numbers)\n", f.Name())
	return err
}

func (sfvr *stdoutFeatureValueRequester) RejectValueFor(f feature.Feature, value interface{}) error {
	_, err := fmt.Fprintf(sfvr.w, "%v is not a valid value for the sample's %s. Please provide a real number.\n", value, f.Name())
	return err
}

package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type testCmdConfig struct {
	*treeCmdConfig
	dataInput string
}

func testCmd(treeConfig *treeCmdConfig) *cobra.Command {
	config := &testCmdConfig{treeCmdConfig: treeConfig}
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test the performance of a tree",
		Long:  `Test the performance of a tree against a test data set`,
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
			testingSet, err := readSet(ctx, config.Logger(), config.dataInput, t.Features, t.Label)
			if err != nil {
				return config.exit(3, errors.Wrap(err, "reading testing set"))
			}
			config.Logger().Infof("Testing tree against testset with %d samples...", testingSet.Count())
			successRate, errorCount, err := t.Test(ctx, testingSet)
			if err != nil {
				return config.exit(4, errors.Wrap(err, "testing tree"))
			}
			config.Logger().Info("Done")
			fmt.Fprintf(cmd.OutOrStdout(), "%f success rate, failed to make a prediction for %d samples\n", successRate, errorCount)
			return nil
		},
	}
	cmd.Flags().StringVarP(&(config.dataInput), "input", "i", "", sourceFlagUsage+" with data to test the tree against (defaults to STDIN, interpreted as CSV)")
	cmd.Flags().StringVarP(&(config.treeInput), "tree", "t", "", "path to a file from which the tree to test will be read and parsed as JSON (required)")
	return cmd
}

func (tcc *testCmdConfig) Validate() error {
	if tcc.treeInput == "" {
		return errors.New("required tree flag was not set")
	}
	return nil
}

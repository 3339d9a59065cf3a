package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/titigmr/cart/tree"
	tjson "github.com/titigmr/cart/tree/json"
)

type treeCmdConfig struct {
	*rootCmdConfig
	treeInput     string
	metadataInput string
}

func treeCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &treeCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Manage classification trees",
		Long:  `Show classification trees, grow them, test them and use them to predict classes for samples`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := config.Validate()
			if err != nil {
				return config.exit(1, err)
			}
			t, err := loadTree(config.Context(), config.treeInput)
			if err != nil {
				return config.exit(2, err)
			}
			depth, err := t.Depth(config.Context())
			if err != nil {
				return config.exit(3, err)
			}
			leaves, err := t.Leaves(config.Context())
			if err != nil {
				return config.exit(3, err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, t)
			fmt.Fprintf(out, "depth %d, %d leaves\n", depth, leaves)
			return nil
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with metadata describing the features available on an input set")
	cmd.Flags().StringVarP(&(config.treeInput), "tree", "t", "", "path to a file from which the tree to show will be read and parsed as JSON (required)")
	cmd.AddCommand(growCmd(config), testCmd(config), predictCmd(config))
	return cmd
}

func (tcc *treeCmdConfig) Validate() error {
	if tcc.treeInput == "" {
		return errors.New("required tree flag was not set")
	}
	return nil
}

func loadTree(ctx context.Context, filepath string) (*tree.Tree, error) {
	f, err := os.Open(filepath)
	if err != nil {
		return nil, errors.Wrapf(err, "reading tree in JSON from %s", filepath)
	}
	defer f.Close()
	t, err := tjson.ReadJSONTree(ctx, tree.NewMemoryNodeStore(), f)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing tree in JSON from %s", filepath)
	}
	return t, nil
}

func outputTree(ctx context.Context, outputPath string, t *tree.Tree) error {
	f := os.Stdout
	if outputPath != "" {
		var err error
		f, err = os.Create(outputPath)
		if err != nil {
			return errors.Wrap(err, "creating tree output")
		}
		defer f.Close()
	}
	return tjson.WriteJSONTree(ctx, t, f)
}

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flagsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "grow"}
	cmd.Flags().Int("max-depth", -1, "")
	cmd.Flags().String("node-store", "memory", "")
	cmd.Flags().String("config", "", "")
	return cmd
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("CART_MAX_DEPTH", "3")
	cmd := flagsCmd()
	require.NoError(t, loadConfig(cmd, ""))
	v, err := cmd.Flags().GetInt("max-depth")
	require.NoError(t, err)
	assert.Equal(t, 3, v)
	s, err := cmd.Flags().GetString("node-store")
	require.NoError(t, err)
	assert.Equal(t, "memory", s)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max-depth: 2\nnode-store: \"badger:\"\n"), 0644))
	t.Setenv("CART_MAX_DEPTH", "5")
	cmd := flagsCmd()
	require.NoError(t, loadConfig(cmd, path))
	v, err := cmd.Flags().GetInt("max-depth")
	require.NoError(t, err)
	assert.Equal(t, 5, v)
	s, err := cmd.Flags().GetString("node-store")
	require.NoError(t, err)
	assert.Equal(t, "badger:", s)
}

func TestLoadConfigKeepsCommandLine(t *testing.T) {
	t.Setenv("CART_MAX_DEPTH", "3")
	cmd := flagsCmd()
	require.NoError(t, cmd.Flags().Set("max-depth", "1"))
	require.NoError(t, loadConfig(cmd, ""))
	v, err := cmd.Flags().GetInt("max-depth")
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestLoadConfigMissingFile(t *testing.T) {
	err := loadConfig(flagsCmd(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigInvalidValue(t *testing.T) {
	t.Setenv("CART_MAX_DEPTH", "deep")
	err := loadConfig(flagsCmd(), "")
	assert.Error(t, err)
}

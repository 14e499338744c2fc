package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"nounsIndexer/internal/contracts"
)

// chdir keeps viper's "./config.*" lookup away from the working tree.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	require.Equal(t, "./data/index", cfg.IndexDir)
	require.Equal(t, DefaultGenesisBlock, cfg.GenesisBlock)
	require.Equal(t, uint64(1000), cfg.BatchSize)
	require.Equal(t, 5, cfg.MaxRetries)
	require.Equal(t, 500*time.Millisecond, cfg.RetryBackoff)
	require.Equal(t, 30*time.Second, cfg.QueryTimeout)
	require.Equal(t, "latest", cfg.Finality)
	require.Equal(t, 4, cfg.Concurrency)
	require.Equal(t, contracts.MainnetAddresses, cfg.Addresses)
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	cfgFile := filepath.Join(dir, "indexer.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("batch-size: 250\nconcurrency: 2\nfinality: safe\n"), 0o644))
	t.Setenv("INDEXER_CONCURRENCY", "8")
	t.Setenv("INDEXER_TOKEN", "0x1111111111111111111111111111111111111111")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("finality", "latest", "")
	flags.String("rpc", "", "")
	require.NoError(t, flags.Parse([]string{"--finality=finalized", "--rpc=http://localhost:8545"}))

	cfg, err := Load(cfgFile, flags)
	require.NoError(t, err)

	require.Equal(t, uint64(250), cfg.BatchSize)
	require.Equal(t, 8, cfg.Concurrency)
	require.Equal(t, "finalized", cfg.Finality)
	require.Equal(t, "http://localhost:8545", cfg.RPCURL)
	require.Equal(t, "0x1111111111111111111111111111111111111111", cfg.Addresses[contracts.Token])
}

func TestLoadMissingConfigFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Config{IndexDir: "x", BatchSize: 1, Concurrency: 1}
	require.NoError(t, cfg.Validate())

	bad := cfg
	bad.BatchSize = 0
	require.Error(t, bad.Validate())

	bad = cfg
	bad.Concurrency = 0
	require.Error(t, bad.Validate())

	bad = cfg
	bad.IndexDir = ""
	require.Error(t, bad.Validate())
}

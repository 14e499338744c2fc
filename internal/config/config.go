package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"nounsIndexer/internal/contracts"
)

// DefaultGenesisBlock is the deployment block of the Nouns token contract.
const DefaultGenesisBlock uint64 = 13072753

// Config holds configuration values loaded from flags, env, or config file.
type Config struct {
	RPCURL       string
	IndexDir     string
	GenesisBlock uint64
	BatchSize    uint64
	MaxRetries   int
	RetryBackoff time.Duration
	QueryTimeout time.Duration
	Finality     string
	PollInterval time.Duration
	Concurrency  int
	// Addresses maps each contract group to its deployment address.
	Addresses   map[contracts.Group]string
	PGDSN       string
	MetricsAddr string
	LogLevel    string
}

// groupKeys maps config keys to contract groups.
var groupKeys = map[string]contracts.Group{
	"auction-house":   contracts.AuctionHouse,
	"governance":      contracts.GovernanceCore,
	"governance-data": contracts.GovernanceData,
	"token":           contracts.Token,
}

// Load merges config file, environment variables, and flags into Config.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("INDEXER")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("index-dir", "./data/index")
	v.SetDefault("genesis-block", DefaultGenesisBlock)
	v.SetDefault("batch-size", uint64(1000))
	v.SetDefault("max-retries", 5)
	v.SetDefault("retry-backoff", 500*time.Millisecond)
	v.SetDefault("query-timeout", 30*time.Second)
	v.SetDefault("finality", "latest")
	v.SetDefault("poll-interval", 12*time.Second)
	v.SetDefault("concurrency", 4)
	v.SetDefault("log-level", "info")
	for key, group := range groupKeys {
		v.SetDefault(key, contracts.MainnetAddresses[group])
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := Config{
		RPCURL:       v.GetString("rpc"),
		IndexDir:     v.GetString("index-dir"),
		GenesisBlock: v.GetUint64("genesis-block"),
		BatchSize:    v.GetUint64("batch-size"),
		MaxRetries:   v.GetInt("max-retries"),
		RetryBackoff: v.GetDuration("retry-backoff"),
		QueryTimeout: v.GetDuration("query-timeout"),
		Finality:     v.GetString("finality"),
		PollInterval: v.GetDuration("poll-interval"),
		Concurrency:  v.GetInt("concurrency"),
		Addresses:    make(map[contracts.Group]string, len(groupKeys)),
		PGDSN:        v.GetString("pg-dsn"),
		MetricsAddr:  v.GetString("metrics-addr"),
		LogLevel:     v.GetString("log-level"),
	}
	for key, group := range groupKeys {
		if address := strings.TrimSpace(v.GetString(key)); address != "" {
			cfg.Addresses[group] = address
		}
	}

	return cfg, nil
}

// Validate checks the settings every command needs.
func (c Config) Validate() error {
	if c.IndexDir == "" {
		return fmt.Errorf("index dir is required")
	}
	if c.BatchSize == 0 {
		return fmt.Errorf("batch size must be greater than zero")
	}
	if c.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be greater than zero")
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max retries must not be negative")
	}
	return nil
}

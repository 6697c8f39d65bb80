package config

import (
	"github.com/spf13/viper"

	"cleanml/internal/errors"
)

// Config holds the reporter's runtime configuration.
type Config struct {
	// ResultFile is a JSON result store; PostgresDSN selects the
	// Postgres-backed store instead. Exactly one must be set.
	ResultFile  string
	PostgresDSN string

	// DatasetFile points at the dataset metadata YAML.
	DatasetFile string

	// OutputDir is the root of the artifact tree.
	OutputDir string
}

// Load reads configuration from an optional cleanml config file, the
// environment (CLEANML_ prefix) and defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("cleanml")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix("CLEANML")
	v.AutomaticEnv()

	v.SetDefault("output_dir", "./plot")
	v.SetDefault("dataset_file", "./datasets.yaml")

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, errors.Wrap(err, "failed to read config file")
		}
	}

	cfg := &Config{
		ResultFile:  v.GetString("result_file"),
		PostgresDSN: v.GetString("postgres_dsn"),
		DatasetFile: v.GetString("dataset_file"),
		OutputDir:   v.GetString("output_dir"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration is complete and unambiguous.
func (c *Config) Validate() error {
	if c.ResultFile == "" && c.PostgresDSN == "" {
		return errors.ConfigInvalid("either result_file or postgres_dsn must be set")
	}
	if c.ResultFile != "" && c.PostgresDSN != "" {
		return errors.ConfigInvalid("result_file and postgres_dsn are mutually exclusive")
	}
	if c.DatasetFile == "" {
		return errors.ConfigInvalid("dataset_file must be set")
	}
	if c.OutputDir == "" {
		return errors.ConfigInvalid("output_dir must be set")
	}
	return nil
}

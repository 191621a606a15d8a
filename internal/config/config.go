package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/mertcandav/MochaDB-sub001/internal/logger"
)

// EnvPrefix is the prefix of environment variables read into the config
const EnvPrefix = "MHQL_"

// DefaultFile is the config file looked up in the working directory
const DefaultFile = "mhql.yaml"

// Config holds the CLI configuration
type Config struct {
	DataDir string        `mapstructure:"data_dir"`
	Format  string        `mapstructure:"format"`
	Limit   int           `mapstructure:"limit"`
	Workers int           `mapstructure:"workers"`
	Log     logger.Config `mapstructure:"log"`
}

// Default returns the configuration used when nothing is set
func Default() Config {
	return Config{
		DataDir: ".",
		Format:  "table",
		Workers: 4,
		Log:     logger.Config{Level: "WARN", Format: "text"},
	}
}

// Load reads configuration from a file and environment variables.
//
// An empty path reads DefaultFile when it exists. Environment variables such
// as MHQL_DATA_DIR or MHQL_LOG_LEVEL override file values.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !(errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)) {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	for _, envStr := range os.Environ() {
		pair := strings.SplitN(envStr, "=", 2)
		if len(pair) != 2 || !strings.HasPrefix(pair[0], EnvPrefix) {
			continue
		}
		// MHQL_LOG_LEVEL -> log.level, MHQL_DATA_DIR -> data_dir
		v.Set(envKey(strings.TrimPrefix(pair[0], EnvPrefix)), pair[1])
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("data_dir", d.DataDir)
	v.SetDefault("format", d.Format)
	v.SetDefault("limit", d.Limit)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.addsource", d.Log.AddSource)
}

// envKey maps an environment variable suffix onto a config key. The first
// underscore separates a section from its field when the section is known.
func envKey(name string) string {
	key := strings.ToLower(name)
	if section, field, ok := strings.Cut(key, "_"); ok && section == "log" {
		return section + "." + strings.ReplaceAll(field, "_", "")
	}
	return key
}

// Validate checks value ranges
func (c Config) Validate() error {
	if c.Limit < 0 {
		return fmt.Errorf("limit must be non-negative, got %d", c.Limit)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if c.DataDir == "" {
		return errors.New("data_dir must not be empty")
	}
	return nil
}

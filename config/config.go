// Package config loads belgraph configuration through Viper: defaults,
// an optional config file, and BELGRAPH_* environment variables, in
// ascending precedence.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/openbiodata/belgraph/errors"
)

// Config is the belgraph core configuration.
type Config struct {
	Cache   CacheConfig   `mapstructure:"cache"`
	Compile CompileConfig `mapstructure:"compile"`
	Output  OutputConfig  `mapstructure:"output"`
}

// CacheConfig configures the namespace cache database.
type CacheConfig struct {
	Path string `mapstructure:"path"`
}

// CompileConfig configures compilation behavior.
type CompileConfig struct {
	CompleteOrigin  bool `mapstructure:"complete_origin"`
	AllowNakedNames bool `mapstructure:"allow_naked_names"`
}

// OutputConfig configures result rendering.
type OutputConfig struct {
	Format string `mapstructure:"format"`
}

var globalConfig *Config

// Load reads the configuration, caching the result for the process.
func Load() (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	v := viper.New()
	v.SetEnvPrefix("BELGRAPH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	// Project config first, then the user-level fallback.
	v.SetConfigName("belgraph")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".belgraph"))
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "read config file")
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}

	globalConfig = &config
	return globalConfig, nil
}

// LoadWithViper loads configuration using a provided Viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	return &config, nil
}

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("cache.path", defaultCachePath())
	v.SetDefault("compile.complete_origin", false)
	v.SetDefault("compile.allow_naked_names", false)
	v.SetDefault("output.format", "text")
}

// Reset clears the cached configuration (useful for testing)
func Reset() {
	globalConfig = nil
}

func defaultCachePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "belgraph-cache.db"
	}
	return filepath.Join(home, ".belgraph", "cache.db")
}

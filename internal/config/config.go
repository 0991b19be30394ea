// Package config loads seqflow settings from an optional YAML file, an optional
// .env file and SEQFLOW_* environment variables, in increasing precedence.
package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/vnykmshr/seqflow/internal/logger"
	"github.com/vnykmshr/seqflow/pkg/common/validation"
	"github.com/vnykmshr/seqflow/pkg/scheduling/scheduler"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "SEQFLOW"

// Config is the complete seqflow configuration.
type Config struct {
	Log      logger.Config  `mapstructure:"log"`
	Words    WordsConfig    `mapstructure:"words"`
	Parallel ParallelConfig `mapstructure:"parallel"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Watch    WatchConfig    `mapstructure:"watch"`
}

// WordsConfig configures the word counting commands.
type WordsConfig struct {
	// File is the text file to split into words.
	File string `mapstructure:"file"`

	// LongerThan is the letter count a word must exceed to be counted as long.
	LongerThan int `mapstructure:"longer_than" validate:"gte=0"`
}

// ParallelConfig configures parallel reductions.
type ParallelConfig struct {
	Workers int `mapstructure:"workers" validate:"gte=1,lte=1024"`
}

// RedisConfig selects the Redis list used as a word source.
type RedisConfig struct {
	Addr     string `mapstructure:"addr" validate:"required,hostname_port"`
	Key      string `mapstructure:"key" validate:"required"`
	PageSize int64  `mapstructure:"page_size" validate:"gte=1"`
}

// WatchConfig configures periodic re-execution.
type WatchConfig struct {
	// Schedule is a cron expression; empty disables watching.
	Schedule string `mapstructure:"schedule"`
}

type options struct {
	configFile string
	envFile    string
}

// Option customizes Load.
type Option func(*options)

// WithConfigFile reads the YAML file at path. A missing file is an error.
func WithConfigFile(path string) Option {
	return func(o *options) { o.configFile = path }
}

// WithEnvFile loads the .env file at path into the environment. Variables
// already set in the environment win. A missing file is an error.
func WithEnvFile(path string) Option {
	return func(o *options) { o.envFile = path }
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stderr")
	v.SetDefault("log.timestamp", true)
	v.SetDefault("words.file", "")
	v.SetDefault("words.longer_than", 12)
	v.SetDefault("parallel.workers", 4)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.key", "seqflow:words")
	v.SetDefault("redis.page_size", 500)
	v.SetDefault("watch.schedule", "")
}

// Load builds and validates the configuration.
func Load(opts ...Option) (*Config, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	v := viper.New()
	setDefaults(v)

	if o.configFile != "" {
		v.SetConfigFile(o.configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", o.configFile, err)
		}
	}

	if o.envFile != "" {
		if err := godotenv.Load(o.envFile); err != nil {
			return nil, fmt.Errorf("failed to load env file %s: %w", o.envFile, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every section of the configuration.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct("config", c); err != nil {
		return err
	}
	if err := c.Log.Validate(); err != nil {
		return err
	}
	if c.Watch.Schedule != "" {
		if err := scheduler.ValidateCronExpression(c.Watch.Schedule); err != nil {
			return err
		}
	}
	return nil
}

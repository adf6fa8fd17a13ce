package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the textclass job configuration. The input, output and
// model locations are invocation parameters, not configuration.
type Config struct {
	Job      JobConfig      `yaml:"job"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Counters CountersConfig `yaml:"counters"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// JobConfig holds the per-job classification settings consumed by every worker.
type JobConfig struct {
	FeatureName string `yaml:"feature_name"` // metadata entry to write predictions into (default: label)
	Lowercase   bool   `yaml:"lowercase"`    // lowercase normalization during tokenization (default: false)
	Workers     int    `yaml:"workers"`      // local engine parallelism
	Provider    string `yaml:"provider"`     // classifier provider: linear, openai
	ReplicaDir  string `yaml:"replica_dir"`  // worker-local model replica directory; empty = read model path directly
}

// MetricsConfig holds observability server settings.
type MetricsConfig struct {
	Port int `yaml:"port"` // 0 disables the /metrics server
}

// CountersConfig holds optional job-level counter aggregation settings.
// Empty addrs disable the Valkey sink.
type CountersConfig struct {
	Addrs     []string `yaml:"addrs"`
	Password  string   `yaml:"password"`
	KeyPrefix string   `yaml:"key_prefix"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// Load reads configuration from a YAML file. An empty path yields the
// default configuration.
func Load(path string) (Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}

		// Substitute env variables of the form ${VAR}
		data = expandEnvVars(data)

		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.Job.FeatureName == "" {
		c.Job.FeatureName = "label"
	}
	if c.Job.Workers <= 0 {
		c.Job.Workers = 4
	}
	if c.Job.Provider == "" {
		c.Job.Provider = "linear"
	}
	if c.Counters.KeyPrefix == "" {
		c.Counters.KeyPrefix = "textclass:"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	switch c.Job.Provider {
	case "linear", "openai":
		// ok
	default:
		return fmt.Errorf("job.provider must be \"linear\" or \"openai\", got %q", c.Job.Provider)
	}
	if c.Metrics.Port < 0 || c.Metrics.Port > 65535 {
		return fmt.Errorf("metrics.port must be between 0 and 65535, got %d", c.Metrics.Port)
	}
	return nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}

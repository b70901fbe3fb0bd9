// Package config loads and validates the comparison engine's configuration:
// budgets, worker counts, ignore globs, and per-language overrides.
// Modeled directly on the teacher's internal/config/config.go — same
// Default()/Load(path)/Save(path)/Validate() shape and gopkg.in/yaml.v3
// dependency for Save, with Load's file discovery and decoding routed
// through spf13/viper (AutomaticEnv + SetConfigFile/ReadInConfig), the way
// other_examples' codecontext CLI wires its own config discovery, so a
// COMPAREGO_-prefixed environment variable can override any file/default
// value without adding a second config format.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Default configuration values.
const (
	DefaultMatchThreshold         = 0.5
	DefaultMaxFileSizeBytes       = 5 * 1024 * 1024
	DefaultPerFileParseTimeoutMs  = 2000
	DefaultPerPairKernelTimeoutMs = 500
	DefaultComparisonTotalTimeoutMs = 120000
	DefaultWorkerThreads            = 0 // 0 means runtime.NumCPU()
)

// Config represents the complete comparison engine configuration.
type Config struct {
	MatchThreshold           float64           `yaml:"match_threshold" mapstructure:"match_threshold"`
	MaxFileSizeBytes         int64             `yaml:"max_file_size_bytes" mapstructure:"max_file_size_bytes"`
	PerFileParseTimeoutMs    int               `yaml:"per_file_parse_timeout_ms" mapstructure:"per_file_parse_timeout_ms"`
	PerPairKernelTimeoutMs   int               `yaml:"per_pair_kernel_timeout_ms" mapstructure:"per_pair_kernel_timeout_ms"`
	ComparisonTotalTimeoutMs int               `yaml:"comparison_total_timeout_ms" mapstructure:"comparison_total_timeout_ms"`
	WorkerThreads            int               `yaml:"worker_threads" mapstructure:"worker_threads"`
	ExcludeGlobs             []string          `yaml:"exclude_globs" mapstructure:"exclude_globs"`
	LanguageOverrides        map[string]string `yaml:"language_overrides" mapstructure:"language_overrides"` // extension -> language id
	OutputFormat             string            `yaml:"output_format" mapstructure:"output_format"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		MatchThreshold:           DefaultMatchThreshold,
		MaxFileSizeBytes:         DefaultMaxFileSizeBytes,
		PerFileParseTimeoutMs:    DefaultPerFileParseTimeoutMs,
		PerPairKernelTimeoutMs:   DefaultPerPairKernelTimeoutMs,
		ComparisonTotalTimeoutMs: DefaultComparisonTotalTimeoutMs,
		WorkerThreads:            DefaultWorkerThreads,
		ExcludeGlobs: []string{
			"*_test.go",
			"testdata/**",
			"vendor/**",
			".git/**",
			"node_modules/**",
		},
		LanguageOverrides: map[string]string{},
		OutputFormat:      "json",
	}
}

// Load loads configuration from configPath, falling back to
// ".comparego.yaml" in the working directory, then to built-in defaults
// (spec.md §6's discovery order). Once the file (if any) is located,
// reading and decoding goes through viper so a COMPAREGO_-prefixed
// environment variable (e.g. COMPAREGO_MATCH_THRESHOLD) can override
// any individual field on top of the file or the defaults.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("comparego")
	v.AutomaticEnv()
	bindDefaults(v, cfg)

	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" && fileExists(configPath) {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}

	return cfg, nil
}

// bindDefaults seeds v with cfg's zero-state defaults so viper.Unmarshal
// still produces them for any key absent from both the config file and
// the environment.
func bindDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("match_threshold", cfg.MatchThreshold)
	v.SetDefault("max_file_size_bytes", cfg.MaxFileSizeBytes)
	v.SetDefault("per_file_parse_timeout_ms", cfg.PerFileParseTimeoutMs)
	v.SetDefault("per_pair_kernel_timeout_ms", cfg.PerPairKernelTimeoutMs)
	v.SetDefault("comparison_total_timeout_ms", cfg.ComparisonTotalTimeoutMs)
	v.SetDefault("worker_threads", cfg.WorkerThreads)
	v.SetDefault("exclude_globs", cfg.ExcludeGlobs)
	v.SetDefault("language_overrides", cfg.LanguageOverrides)
	v.SetDefault("output_format", cfg.OutputFormat)
}

// Save saves the configuration to a YAML file.
func (c *Config) Save(configPath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if writeErr := os.WriteFile(configPath, data, 0o600); writeErr != nil {
		return fmt.Errorf("failed to write config file %s: %w", configPath, writeErr)
	}

	return nil
}

func findConfigFile() string {
	candidates := []string{".comparego.yaml", ".comparego.yml"}
	for _, candidate := range candidates {
		if fileExists(candidate) {
			return candidate
		}
	}
	return ""
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Validate validates the configuration values (spec.md §6/§7: invalid
// configuration is a user-error, exit code 1).
func (c *Config) Validate() error {
	if c.MatchThreshold < 0.0 || c.MatchThreshold > 1.0 {
		return fmt.Errorf("match_threshold must be between 0.0 and 1.0, got %f", c.MatchThreshold)
	}

	if c.MaxFileSizeBytes <= 0 {
		return fmt.Errorf("max_file_size_bytes must be greater than 0, got %d", c.MaxFileSizeBytes)
	}

	if c.PerFileParseTimeoutMs <= 0 {
		return fmt.Errorf("per_file_parse_timeout_ms must be greater than 0, got %d", c.PerFileParseTimeoutMs)
	}

	if c.PerPairKernelTimeoutMs <= 0 {
		return fmt.Errorf("per_pair_kernel_timeout_ms must be greater than 0, got %d", c.PerPairKernelTimeoutMs)
	}

	if c.ComparisonTotalTimeoutMs <= 0 {
		return fmt.Errorf("comparison_total_timeout_ms must be greater than 0, got %d", c.ComparisonTotalTimeoutMs)
	}

	if c.WorkerThreads < 0 {
		return fmt.Errorf("worker_threads must be >= 0, got %d", c.WorkerThreads)
	}

	if c.OutputFormat != "json" && c.OutputFormat != "yaml" {
		return fmt.Errorf("output_format must be 'json' or 'yaml', got %s", c.OutputFormat)
	}

	return nil
}

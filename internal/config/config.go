package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/caarlos0/env/v11"
)

const envPrefix = "QUICK_MODEL_"

// Schema update strategies understood by the runtime data source
const (
	StrategySkip                 = "skip"
	StrategyCreateIfNoSchema     = "create_if_no_schema"
	StrategyThrowOnPartialSchema = "throw_on_partial_schema"
)

// Config represents the application configuration
type Config struct {
	Output  OutputConfig  `json:"output"`
	Runtime RuntimeConfig `json:"runtime"`
	Logging LoggingConfig `json:"logging"`
	Debug   DebugConfig   `json:"debug"`
}

// OutputConfig controls where generated projects are written
type OutputConfig struct {
	Directory string `json:"directory" env:"OUTPUT_DIR"` // used when the definition has no destination
}

// RuntimeConfig configures the demo data source
type RuntimeConfig struct {
	DataDir        string `json:"data_dir"        env:"DATA_DIR"`
	NodeName       string `json:"node_name"       env:"NODE_NAME"`
	SchemaStrategy string `json:"schema_strategy" env:"SCHEMA_STRATEGY"`
	MaxConnections int    `json:"max_connections" env:"DB_MAX_CONNECTIONS"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level  string `json:"level"  env:"LOG_LEVEL"`  // debug, info, warn, error
	Format string `json:"format" env:"LOG_FORMAT"` // text, json
	Output string `json:"output" env:"LOG_OUTPUT"` // stdout, stderr, file
	File   string `json:"file"   env:"LOG_FILE"`   // log file path when output is file
}

// DebugConfig represents debug configuration
type DebugConfig struct {
	Enabled bool `json:"enabled" env:"DEBUG"`
	Verbose bool `json:"verbose" env:"VERBOSE"`
}

// DefaultConfig returns the configuration defaults without consulting the environment
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Directory: "./quickmodel",
		},
		Runtime: RuntimeConfig{
			DataDir:        "~/.cache/quick-model",
			NodeName:       "testerbest",
			SchemaStrategy: StrategyCreateIfNoSchema,
			MaxConnections: 4,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
			File:   "~/.config/quick-model/logs/app.log",
		},
	}
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig() (*Config, error) {
	return LoadConfigWithOverrides(nil)
}

// LoadConfigWithOverrides loads configuration with optional command-line flag overrides
func LoadConfigWithOverrides(flagOverrides map[string]any) (*Config, error) {
	config := DefaultConfig()

	configPath := getConfigPath()
	if _, err := os.Stat(configPath); err == nil {
		if err := loadConfigFromFile(config, configPath); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	// Defaults live in DefaultConfig; env only touches variables that are set
	if err := env.ParseWithOptions(config, env.Options{
		Prefix: envPrefix,
	}); err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	if flagOverrides != nil {
		applyFlagOverrides(config, flagOverrides)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// loadConfigFromFile loads configuration from a JSON file
func loadConfigFromFile(config *Config, configPath string) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var fileConfig Config
	if err := json.Unmarshal(data, &fileConfig); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	mergeConfigs(config, &fileConfig)

	return nil
}

// applyFlagOverrides applies command-line flag overrides to configuration
func applyFlagOverrides(config *Config, overrides map[string]any) {
	for key, value := range overrides {
		switch key {
		case "dest":
			if str, ok := value.(string); ok && str != "" {
				config.Output.Directory = str
			}
		case "data-dir":
			if str, ok := value.(string); ok && str != "" {
				config.Runtime.DataDir = str
			}
		case "schema-strategy":
			if str, ok := value.(string); ok && str != "" {
				config.Runtime.SchemaStrategy = str
			}
		case "log-level":
			if str, ok := value.(string); ok && str != "" {
				config.Logging.Level = str
			}
		case "verbose":
			if b, ok := value.(bool); ok {
				config.Debug.Verbose = b
			}
		case "debug":
			if b, ok := value.(bool); ok {
				config.Debug.Enabled = b
			}
		}
	}
}

// mergeConfigs merges source configuration into target configuration
func mergeConfigs(target, source *Config) {
	var mergeValues func(t, s reflect.Value)
	mergeValues = func(t, s reflect.Value) {
		if t.Kind() != s.Kind() {
			return
		}

		if t.Kind() == reflect.Struct {
			for i := range s.NumField() {
				mergeValues(t.Field(i), s.Field(i))
			}
		} else if s.Kind() == reflect.Bool {
			t.Set(s)
		} else if !s.IsZero() {
			t.Set(s)
		}
	}

	mergeValues(reflect.ValueOf(target).Elem(), reflect.ValueOf(source).Elem())
}

// validateConfig validates the configuration for common errors
func validateConfig(config *Config) error {
	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[strings.ToLower(config.Logging.Level)] {
		return fmt.Errorf(
			"invalid log level: %s (must be debug, info, warn, or error)",
			config.Logging.Level,
		)
	}

	validLogFormats := map[string]bool{
		"text": true, "json": true,
	}
	if !validLogFormats[strings.ToLower(config.Logging.Format)] {
		return fmt.Errorf("invalid log format: %s (must be text or json)", config.Logging.Format)
	}

	validLogOutputs := map[string]bool{
		"stdout": true, "stderr": true, "file": true,
	}
	if !validLogOutputs[strings.ToLower(config.Logging.Output)] {
		return fmt.Errorf(
			"invalid log output: %s (must be stdout, stderr, or file)",
			config.Logging.Output,
		)
	}

	validStrategies := map[string]bool{
		StrategySkip: true, StrategyCreateIfNoSchema: true, StrategyThrowOnPartialSchema: true,
	}
	if !validStrategies[config.Runtime.SchemaStrategy] {
		return fmt.Errorf(
			"invalid schema strategy: %s (must be %s, %s, or %s)",
			config.Runtime.SchemaStrategy,
			StrategySkip, StrategyCreateIfNoSchema, StrategyThrowOnPartialSchema,
		)
	}

	if config.Runtime.NodeName == "" {
		return fmt.Errorf("runtime node name must not be empty")
	}

	if config.Runtime.MaxConnections <= 0 {
		return fmt.Errorf(
			"runtime max connections must be positive: %d",
			config.Runtime.MaxConnections,
		)
	}

	return nil
}

// getConfigPath returns the path to the configuration file
func getConfigPath() string {
	if configPath := os.Getenv(envPrefix + "CONFIG"); configPath != "" {
		return expandPath(configPath)
	}

	return filepath.Join(GetConfigDir(), "config.json")
}

// expandPath expands ~ to home directory in file paths
func expandPath(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	if path == "~" {
		return homeDir
	}

	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir, path[2:])
	}

	return path
}

// ExpandAllPaths expands all paths in the configuration
func (c *Config) ExpandAllPaths() {
	c.Output.Directory = expandPath(c.Output.Directory)
	c.Runtime.DataDir = expandPath(c.Runtime.DataDir)
	c.Logging.File = expandPath(c.Logging.File)
}

// GetConfigDir returns the configuration directory
func GetConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".config/quick-model"
	}

	return filepath.Join(homeDir, ".config", "quick-model")
}

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultMaxDepth is the default container nesting limit for the parser.
const DefaultMaxDepth = 10000

// Config represents the complete configuration for jsonpeek
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Output  OutputConfig  `yaml:"output"`
	Parser  ParserConfig  `yaml:"parser"`
}

// LoggingConfig controls diagnostic output on stderr
type LoggingConfig struct {
	Level   string `yaml:"level"`
	Format  string `yaml:"format"` // logfmt or json
	NoColor bool   `yaml:"no_color"`
}

// OutputConfig controls how rendered values are written
type OutputConfig struct {
	TrailingNewline bool `yaml:"trailing_newline"`
}

// ParserConfig controls input decoding
type ParserConfig struct {
	// MaxDepth limits container nesting; 0 disables the limit.
	MaxDepth int `yaml:"max_depth"`
}

// Overrides holds the command-line values that take precedence over the file.
type Overrides struct {
	Debug     bool
	LogFormat string
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:   "warn",
			Format:  "logfmt",
			NoColor: false,
		},
		Output: OutputConfig{
			TrailingNewline: true,
		},
		Parser: ParserConfig{
			MaxDepth: DefaultMaxDepth,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}

	return cfg, nil
}

// Validate checks values the YAML decoder cannot.
func (c *Config) Validate() error {
	switch c.Logging.Format {
	case "", "logfmt", "json":
	default:
		return fmt.Errorf("unknown log format '%s'", c.Logging.Format)
	}
	if c.Parser.MaxDepth < 0 {
		return fmt.Errorf("parser.max_depth must not be negative, got %d", c.Parser.MaxDepth)
	}
	return nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".jsonpeek.yml", ".jsonpeek.yaml", "jsonpeek.yml", "jsonpeek.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	// Search up the directory tree
	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if info, err := os.Stat(configPath); err == nil && !info.IsDir() {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// LoadConfigWithCLI loads config with CLI argument precedence.
// An empty configPath means defaults only.
func LoadConfigWithCLI(configPath string, overrides Overrides) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	if overrides.Debug {
		cfg.Logging.Level = "debug"
	}
	if overrides.LogFormat != "" {
		cfg.Logging.Format = overrides.LogFormat
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Package config loads stackcalc settings from an optional YAML or TOML file,
// then applies environment overrides.
//
// Precedence, lowest to highest: built-in defaults, config file, environment,
// command-line flags (applied by the caller).
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultExpression is evaluated by the validate command when no argument is given
	DefaultExpression = "(5+3)*(2+(4-1))"
	// DefaultFactorial is evaluated by the factorial command when no argument is given
	DefaultFactorial = 5
)

// EnvConfigPath names the environment variable consulted when no --config flag is given
const EnvConfigPath = "STACKCALC_CONFIG"

type LogConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
}

type PersistenceConfig struct {
	File             string `yaml:"file" toml:"file"`
	DynamoDBTable    string `yaml:"dynamodb_table" toml:"dynamodb_table"`
	DynamoDBEndpoint string `yaml:"dynamodb_endpoint" toml:"dynamodb_endpoint"`
}

type DefaultsConfig struct {
	Expression string `yaml:"expression" toml:"expression"`
	Factorial  int    `yaml:"factorial" toml:"factorial"`
}

type BatchConfig struct {
	// Concurrency bounds how many inputs are evaluated at once
	Concurrency int `yaml:"concurrency" toml:"concurrency"`
}

// Config is the full set of file-configurable settings
type Config struct {
	Log         LogConfig         `yaml:"log" toml:"log"`
	Persistence PersistenceConfig `yaml:"persistence" toml:"persistence"`
	Defaults    DefaultsConfig    `yaml:"defaults" toml:"defaults"`
	Batch       BatchConfig       `yaml:"batch" toml:"batch"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
		Defaults: DefaultsConfig{
			Expression: DefaultExpression,
			Factorial:  DefaultFactorial,
		},
		Batch: BatchConfig{
			Concurrency: 4,
		},
	}
}

// Load builds a Config from defaults, the file at path (if path is non-empty), and the environment.
// The file format is chosen by extension: .yaml, .yml or .toml.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.decodeFile(path); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) decodeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		// A file with no document (empty or only comments) decodes to io.EOF; keep the defaults
		if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to parse YAML config %s: %w", path, err)
		}
	case ".toml":
		md, err := toml.Decode(string(data), c)
		if err != nil {
			return fmt.Errorf("failed to parse TOML config %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("unknown keys in TOML config %s: %v", path, undecoded)
		}
	default:
		return fmt.Errorf("unsupported config file extension %q (use .yaml, .yml or .toml)", filepath.Ext(path))
	}

	return nil
}

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv("LOG_LEVEL"); ok && v != "" {
		c.Log.Level = v
	}
	if v, ok := os.LookupEnv("LOG_FORMAT"); ok && v != "" {
		c.Log.Format = v
	}
	if v, ok := os.LookupEnv("STACKCALC_FILE"); ok && v != "" {
		c.Persistence.File = v
	}
	if v, ok := os.LookupEnv("DYNAMODB_TABLE"); ok && v != "" {
		c.Persistence.DynamoDBTable = v
	}
	if v, ok := os.LookupEnv("DYNAMODB_ENDPOINT"); ok && v != "" {
		c.Persistence.DynamoDBEndpoint = v
	}
	if v, ok := os.LookupEnv("STACKCALC_CONCURRENCY"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("STACKCALC_CONCURRENCY must be an integer: %w", err)
		}
		c.Batch.Concurrency = n
	}
	return nil
}

// Validate checks settings that have no sensible fallback
func (c Config) Validate() error {
	if c.Batch.Concurrency < 1 {
		return errors.New("batch.concurrency must be at least 1")
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

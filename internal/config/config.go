package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath overrides the config file location.
const EnvConfigPath = "GRID_CONFIG"

// Config represents the CLI configuration
type Config struct {
	// Default output format (text, table, grid, csv, json, ndjson, yaml)
	Output string `yaml:"output,omitempty"`

	// Default color mode (auto, always, never)
	Color string `yaml:"color,omitempty"`

	// Default dataset file used by show, validate and export when --file is absent
	Dataset string `yaml:"dataset,omitempty"`

	// Number of blank rows appended below the data (nil means the built-in default)
	Padding *int `yaml:"padding,omitempty"`

	// Log handler format for --debug output (text, json)
	LogFormat string `yaml:"log_format,omitempty"`
}

// Keys lists the settable configuration keys in display order.
var Keys = []string{"output", "color", "dataset", "padding", "log_format"}

var allowed = map[string][]string{
	"output":     {"text", "table", "grid", "csv", "json", "ndjson", "yaml"},
	"color":      {"auto", "always", "never"},
	"log_format": {"text", "json"},
}

// configPathFunc is the function used to get the default config path
// It can be overridden for testing
var configPathFunc = defaultConfigPath

// SetConfigPathFunc sets the config path function for testing.
// Returns the original function so it can be restored.
func SetConfigPathFunc(fn func() (string, error)) func() (string, error) {
	orig := configPathFunc
	configPathFunc = fn
	return orig
}

// defaultConfigPath returns $GRID_CONFIG or ~/.config/grid-cli/config.yaml
func defaultConfigPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "grid-cli", "config.yaml"), nil
}

// DefaultConfigPath returns the path Load and Save use.
func DefaultConfigPath() (string, error) {
	return configPathFunc()
}

// Load loads config from the default path, returns empty config if not found
func Load() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return &Config{}, nil
	}
	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, nil // Return empty config if file doesn't exist
	}
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}
	return &cfg, nil
}

// Save saves config to the default path
func (c *Config) Save() error {
	path, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	return c.SaveToPath(path)
}

// SaveToPath saves config to a specific path
func (c *Config) SaveToPath(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// GetOutput returns the effective output format (config default or empty)
func (c *Config) GetOutput() string {
	return c.Output
}

// GetColor returns the effective color mode (config default or empty)
func (c *Config) GetColor() string {
	return c.Color
}

// GetPadding returns the configured padding, or def when unset.
func (c *Config) GetPadding(def int) int {
	if c.Padding == nil {
		return def
	}
	return *c.Padding
}

// Get returns the value stored under key as a string. Unset values are "".
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "output":
		return c.Output, nil
	case "color":
		return c.Color, nil
	case "dataset":
		return c.Dataset, nil
	case "padding":
		if c.Padding == nil {
			return "", nil
		}
		return strconv.Itoa(*c.Padding), nil
	case "log_format":
		return c.LogFormat, nil
	default:
		return "", unknownKey(key)
	}
}

// Set validates value and stores it under key. An empty value clears the key.
func (c *Config) Set(key, value string) error {
	value = strings.TrimSpace(value)
	if opts, ok := allowed[key]; ok && value != "" {
		value = strings.ToLower(value)
		if !contains(opts, value) {
			return fmt.Errorf("invalid %s %q (expected %s)", key, value, strings.Join(opts, "|"))
		}
	}

	switch key {
	case "output":
		c.Output = value
	case "color":
		c.Color = value
	case "dataset":
		c.Dataset = value
	case "padding":
		if value == "" {
			c.Padding = nil
			return nil
		}
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid padding %q (expected a non-negative integer)", value)
		}
		c.Padding = &n
	case "log_format":
		c.LogFormat = value
	default:
		return unknownKey(key)
	}
	return nil
}

// Values returns every key with its current value.
func (c *Config) Values() map[string]string {
	out := make(map[string]string, len(Keys))
	for _, k := range Keys {
		v, _ := c.Get(k)
		out[k] = v
	}
	return out
}

func unknownKey(key string) error {
	keys := append([]string(nil), Keys...)
	sort.Strings(keys)
	return fmt.Errorf("unknown config key %q (valid keys: %s)", key, strings.Join(keys, ", "))
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

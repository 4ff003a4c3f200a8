package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"

	preipo "github.com/stupidvibecoder/pre-ipo"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is read when no -config flag is given. It is optional.
const DefaultConfigFile = "pmt.yaml"

// Config is the content of the configuration file. Global flags override its values.
type Config struct {
	Data     string  `yaml:"data"`               // funding events file: .csv, .jsonl, .json or .xlsx
	Sheet    string  `yaml:"sheet,omitempty"`    // xlsx sheet, the first one if empty
	Selector string  `yaml:"selector,omitempty"` // JSONPath of the events in a .json file
	Profiles string  `yaml:"profiles,omitempty"` // profiles YAML file, the embedded ones if empty
	Baseline float64 `yaml:"baseline"`           // baseline annual growth rate
	Currency string  `yaml:"currency"`
	Unit     string  `yaml:"unit"`
	Listen   string  `yaml:"listen"`          // address of the HTTP server
	Model    string  `yaml:"model,omitempty"` // Gemini model of the analyst
	Notes    string  `yaml:"notes,omitempty"` // file where browser notes are kept
}

// DefaultConfig returns the configuration used when there is no configuration file.
func DefaultConfig() Config {
	return Config{
		Data:     "companies.csv",
		Baseline: preipo.DefaultBaselineRate,
		Currency: "USD",
		Unit:     "B",
		Listen:   "localhost:8080",
	}
}

// LoadConfig reads a YAML configuration file on top of DefaultConfig.
// If missingOK is true a non existing file is not an error.
// The result is not validated, call Validate once every override is applied.
func LoadConfig(path string, missingOK bool) (Config, error) {
	c := DefaultConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && missingOK {
		return c, nil
	}
	if err != nil {
		return c, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("failed to parse config from YAML: %w", err)
	}
	return c, nil
}

// Validate performs basic configuration validation
func (c *Config) Validate() error {
	if c.Data == "" {
		return fmt.Errorf("data file cannot be empty")
	}
	if err := preipo.CheckRate(c.Baseline); err != nil {
		return err
	}
	if len(c.Currency) != 3 {
		return fmt.Errorf("invalid currency code %q", c.Currency)
	}
	if _, _, err := net.SplitHostPort(c.Listen); err != nil {
		return fmt.Errorf("invalid listen address %q: %w", c.Listen, err)
	}
	return nil
}

// Save persists the configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config to file '%s': %w", path, err)
	}
	return nil
}

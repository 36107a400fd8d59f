// Package config holds the settings of the callout command and reads them
// from an optional YAML file. Command-line flags override file values.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the resolved configuration of one run.
type Config struct {
	// Document is the HTML file holding the templates.
	Document string `yaml:"document"`
	// Model is a JSON, YAML or HCL file bound as the root frame.
	Model string `yaml:"model"`
	// Templates names the templates to instantiate, by registered name or
	// element id. Empty selects every top-level template.
	Templates []string `yaml:"templates"`
	// Out is the output file; empty writes to stdout.
	Out string `yaml:"out"`

	StripTemplates bool `yaml:"strip_templates"`
	Sanitize       bool `yaml:"sanitize"`
	Interactive    bool `yaml:"interactive"`
	Embargo        bool `yaml:"embargo"`

	BatchSize int    `yaml:"batch"`
	Locale    string `yaml:"locale"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// Hooks maps handler names to pongo2 sources registered before the
	// run, so templates can refer to them by name.
	Hooks map[string]string `yaml:"hooks"`
	// Globals are merged over the model's root object.
	Globals map[string]any `yaml:"globals"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		BatchSize: 20,
		Locale:    "en",
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Load reads path over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Validate normalises case-insensitive fields and reports invalid values.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Document) == "" {
		errs = append(errs, errors.New("document is required"))
	}

	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("invalid log-format %q: must be 'text' or 'json'", c.LogFormat))
	}

	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("invalid log-level %q: must be 'debug', 'info', 'warn', or 'error'", c.LogLevel))
	}

	if c.StripTemplates && c.Embargo {
		errs = append(errs, errors.New("strip-templates and embargo are mutually exclusive"))
	}

	if c.BatchSize < 0 {
		errs = append(errs, fmt.Errorf("invalid batch %d: must not be negative", c.BatchSize))
	}

	for name, source := range c.Hooks {
		if strings.TrimSpace(name) == "" {
			errs = append(errs, errors.New("hook name must not be empty"))
		}
		if strings.TrimSpace(source) == "" {
			errs = append(errs, fmt.Errorf("hook %q has no source", name))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Package config loads bkga settings from a .bkga.yaml file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the configuration file looked up in the working directory.
const DefaultFile = ".bkga.yaml"

// DefaultAPIKeyEnv names the environment variable consulted when api_key is unset.
const DefaultAPIKeyEnv = "BKGA_API_KEY"

// Config holds corrector, filtering and enumeration settings.
type Config struct {
	Enabled       bool          `yaml:"enabled"`
	Endpoint      string        `yaml:"endpoint"`
	APIKey        string        `yaml:"api_key,omitempty"`
	APIKeyEnv     string        `yaml:"api_key_env,omitempty"`
	Timeout       time.Duration `yaml:"timeout"`
	Retries       int           `yaml:"retries"`
	IgnoreEnglish bool          `yaml:"ignore_english"`
	Include       []string      `yaml:"include"`
	Rules         string        `yaml:"rules"`
	Dictionary    string        `yaml:"dictionary,omitempty"`
	Structural    bool          `yaml:"structural"`

	DictionaryEndpoint string `yaml:"dictionary_endpoint,omitempty"`
	DomainName         string `yaml:"domain_name,omitempty"`
}

// Default returns the settings used when no file is present.
func Default() *Config {
	return &Config{
		Enabled:       true,
		APIKeyEnv:     DefaultAPIKeyEnv,
		Timeout:       10 * time.Second,
		Retries:       2,
		IgnoreEnglish: true,
		Include:       []string{"*.md", "*.markdown", "*.txt"},
		Rules:         "builtin",
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative: %s", c.Timeout)
	}
	if c.Retries < 0 {
		return fmt.Errorf("retries must not be negative: %d", c.Retries)
	}
	for _, pattern := range c.Include {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return fmt.Errorf("invalid include pattern %q: %w", pattern, err)
		}
	}
	return nil
}

// ResolveAPIKey returns api_key, or the value of the api_key_env variable.
func (c *Config) ResolveAPIKey() string {
	if c.APIKey != "" {
		return c.APIKey
	}
	env := c.APIKeyEnv
	if env == "" {
		env = DefaultAPIKeyEnv
	}
	return os.Getenv(env)
}

// Included reports whether the base name of path matches an include glob.
// An empty include list accepts every file.
func (c *Config) Included(path string) bool {
	if len(c.Include) == 0 {
		return true
	}
	base := filepath.Base(path)
	for _, pattern := range c.Include {
		if ok, _ := filepath.Match(pattern, base); ok {
			return true
		}
	}
	return false
}

var markdownExts = map[string]bool{
	".md":       true,
	".markdown": true,
	".mdx":      true,
	".mdown":    true,
}

// IsMarkdownPath reports whether path names a Markdown document.
func IsMarkdownPath(path string) bool {
	return markdownExts[strings.ToLower(filepath.Ext(path))]
}

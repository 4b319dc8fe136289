// Package config holds the session controller configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"ocular-go/core/caps"
)

// Duration wraps time.Duration so YAML documents can use the "30s"
// notation.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("config: bad duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// HTTPOptions are transport-level connection options applied at launch.
type HTTPOptions struct {
	// Timeout bounds each wire request. Zero means no timeout.
	Timeout Duration `yaml:"timeout"`
	// KeepAlive controls connection reuse to the remote endpoint.
	KeepAlive bool `yaml:"keepAlive"`
}

// WindowSize is the browser window size to set after session init.
type WindowSize struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Config configures a session controller.
type Config struct {
	// GridURL is the remote automation endpoint address.
	GridURL string `yaml:"gridUrl"`
	// HTTP holds optional transport-level connection options.
	HTTP *HTTPOptions `yaml:"http,omitempty"`
	// WindowSize, when set, resizes the window right after launch.
	WindowSize *WindowSize `yaml:"windowSize,omitempty"`
	// Debug enables the diagnostic trace observers.
	Debug bool `yaml:"debug"`
	// Coverage enables injection of the coverage collection script.
	Coverage bool `yaml:"coverage"`
	// Capabilities are configuration-level capability overrides. They
	// sit between the built-in defaults and session-level capabilities
	// in precedence.
	Capabilities caps.Capabilities `yaml:"capabilities,omitempty"`
}

// Default returns a configuration pointing at a local grid.
func Default() *Config {
	return &Config{
		GridURL: "http://localhost:4444/wd/hub",
	}
}

// Validate checks that required fields are present.
func (c *Config) Validate() error {
	if c.GridURL == "" {
		return fmt.Errorf("config: gridUrl is required")
	}
	if c.WindowSize != nil && (c.WindowSize.Width <= 0 || c.WindowSize.Height <= 0) {
		return fmt.Errorf("config: windowSize must be positive, got %dx%d",
			c.WindowSize.Width, c.WindowSize.Height)
	}
	return nil
}

// Load parses a YAML configuration document.
func Load(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads and parses a YAML configuration file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	return Load(data)
}

package config

import (
	"fmt"
	"net/url"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/lenslab/lens/errors"
)

//go:generate go run ../tools/schema-generator/

// ServerConfig describes the dataset service the client connects to.
type ServerConfig struct {
	URL            string `json:"url" yaml:"url" toml:"url" jsonschema:"description=Base URL of the dataset service"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty" yaml:"timeout_seconds,omitempty" toml:"timeout_seconds,omitempty" jsonschema:"description=Request timeout for dataset queries in seconds (default: 10),minimum=0"`
}

// PluginsConfig controls plugin discovery.
type PluginsConfig struct {
	Dir      string   `json:"dir,omitempty" yaml:"dir,omitempty" toml:"dir,omitempty" jsonschema:"description=Directory containing plugin manifests"`
	Disabled []string `json:"disabled,omitempty" yaml:"disabled,omitempty" toml:"disabled,omitempty" jsonschema:"description=Plugin names to skip during loading"`
	Watch    *bool    `json:"watch,omitempty" yaml:"watch,omitempty" toml:"watch,omitempty" jsonschema:"description=Watch the plugin directory for changes (default: true)"`
}

// TUIConfig holds appearance settings for the terminal UI.
type TUIConfig struct {
	Theme       string `json:"theme,omitempty" yaml:"theme,omitempty" toml:"theme,omitempty" jsonschema:"description=Name of the color theme"`
	ColorScheme string `json:"color_scheme,omitempty" yaml:"color_scheme,omitempty" toml:"color_scheme,omitempty" jsonschema:"description=Preferred color scheme: light or dark,enum=light,enum=dark"`
}

// Config is the root lens configuration, loaded from lens.yml or lens.toml.
type Config struct {
	Version string         `json:"version,omitempty" yaml:"version,omitempty" toml:"version,omitempty" jsonschema:"description=Config format version"`
	Server  ServerConfig   `json:"server" yaml:"server" toml:"server"`
	Plugins *PluginsConfig `json:"plugins,omitempty" yaml:"plugins,omitempty" toml:"plugins,omitempty"`
	TUI     *TUIConfig     `json:"tui,omitempty" yaml:"tui,omitempty" toml:"tui,omitempty"`

	// Extensions captures all other top-level keys for extensibility.
	Extensions map[string]interface{} `json:"-" yaml:",inline" toml:"-" jsonschema:"-"`
}

// UnmarshalYAML implements custom YAML unmarshaling so unknown top-level
// keys land in Extensions instead of failing the decode.
func (c *Config) UnmarshalYAML(node *yaml.Node) error {
	type rawConfig struct {
		Version    string                 `yaml:"version,omitempty"`
		Server     ServerConfig           `yaml:"server"`
		Plugins    *PluginsConfig         `yaml:"plugins,omitempty"`
		TUI        *TUIConfig             `yaml:"tui,omitempty"`
		Extensions map[string]interface{} `yaml:",inline"`
	}

	var raw rawConfig
	if err := node.Decode(&raw); err != nil {
		return err
	}

	c.Version = raw.Version
	c.Server = raw.Server
	c.Plugins = raw.Plugins
	c.TUI = raw.TUI
	c.Extensions = raw.Extensions
	return nil
}

// SetDefaults fills in default values for unset fields.
func (c *Config) SetDefaults() {
	if c.Server.URL == "" {
		c.Server.URL = "http://localhost:5151"
	}
	if c.Server.TimeoutSeconds <= 0 {
		c.Server.TimeoutSeconds = 10
	}
	if c.Plugins == nil {
		c.Plugins = &PluginsConfig{}
	}
	if c.Plugins.Watch == nil {
		watch := true
		c.Plugins.Watch = &watch
	}
	if c.TUI == nil {
		c.TUI = &TUIConfig{}
	}
}

// Validate checks semantic constraints that the schema cannot express.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Server.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.ConfigInvalid(fmt.Sprintf("server.url %q is not a valid URL", c.Server.URL))
	}
	switch u.Scheme {
	case "http", "https":
	default:
		return errors.ConfigInvalid(fmt.Sprintf("server.url scheme %q is not supported", u.Scheme))
	}

	if c.TUI != nil {
		switch c.TUI.ColorScheme {
		case "", "light", "dark":
		default:
			return errors.ConfigInvalid(fmt.Sprintf("tui.color_scheme %q must be 'light' or 'dark'", c.TUI.ColorScheme))
		}
	}

	return nil
}

// UnmarshalExtension decodes a specific extension's configuration from the
// loaded lens.yml into the provided target struct. The target must be a pointer.
// This provides a type-safe way for extensions to access their
// custom configuration sections.
//
// Example:
//
//	var logCfg logging.Config
//	err := cfg.UnmarshalExtension("logging", &logCfg)
func (c *Config) UnmarshalExtension(key string, target interface{}) error {
	extensionConfig, ok := c.Extensions[key]
	if !ok {
		// It's not an error if the key doesn't exist.
		// The target struct will simply remain zero-valued.
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  target,
		TagName: "yaml",
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(extensionConfig); err != nil {
		return fmt.Errorf("failed to decode extension config for '%s': %w", key, err)
	}

	return nil
}

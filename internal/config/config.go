// Package config handles the XDG configuration directory, the optional
// config file, and API endpoint resolution.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	// AppName is the application directory name.
	AppName = "taskman"

	// SessionFile is the stored session filename.
	SessionFile = "session.json"

	// ConfigFile is the optional settings filename.
	ConfigFile = "config.toml"

	// DefaultAPIURL is the task API base URL used when neither the
	// environment nor the config file overrides it.
	DefaultAPIURL = "http://localhost:5000/api"

	// APIURLEnv overrides the base URL when set.
	APIURLEnv = "TASKMAN_API_URL"
)

// Settings are the values read from config.toml. All fields are optional.
type Settings struct {
	APIURL        string `toml:"api_url"`
	DefaultFilter string `toml:"default_filter"`
}

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	settings Settings
}

// New creates a Config with the default or specified config directory
// and loads config.toml if present. A missing file is not an error;
// a malformed one is.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	c := &Config{Dir: dir}
	if err := c.loadSettings(); err != nil {
		return nil, err
	}
	return c, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// SessionPath returns the path to the stored session file.
func (c *Config) SessionPath() string {
	return filepath.Join(c.Dir, SessionFile)
}

// ConfigPath returns the path to the settings file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// APIURL resolves the task API base URL. Precedence: environment
// variable, then config.toml, then the built-in default. A trailing
// slash is trimmed so callers can join paths naively.
func (c *Config) APIURL() string {
	if env := os.Getenv(APIURLEnv); env != "" {
		return strings.TrimRight(env, "/")
	}
	if c.settings.APIURL != "" {
		return strings.TrimRight(c.settings.APIURL, "/")
	}
	return DefaultAPIURL
}

// DefaultFilter returns the configured default task filter, or empty.
func (c *Config) DefaultFilter() string {
	return c.settings.DefaultFilter
}

func (c *Config) loadSettings() error {
	data, err := os.ReadFile(c.ConfigPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return toml.Unmarshal(data, &c.settings)
}

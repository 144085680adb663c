// Package config locates and loads the mak configuration file.
//
// Everything lives under the user config dir (e.g. ~/.config/mak):
// config.yaml with tool settings and data.json with the macro/keybind
// datastore. The MAK_APP_NAME, MAK_CONFIG_NAME, MAK_DATASTORE_NAME and
// MAK_DEBUG_MODE environment variables override the defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Defaults used when the corresponding MAK_* environment variable is unset.
const (
	DefaultAppName       = "mak"
	DefaultConfigName    = "config.yaml"
	DefaultDatastoreName = "data.json"
)

// Config holds the parsed config.yaml. All fields are optional; zero
// values fall back to environment-derived defaults.
type Config struct {
	Shell     string `yaml:"shell"`     // shell binary for spawning steps; default $SHELL, then /bin/sh
	Datastore string `yaml:"datastore"` // datastore file path; default <config dir>/data.json
}

// Dir returns the mak configuration directory, honoring MAK_APP_NAME.
// When the user config dir cannot be determined the current directory
// is used so the tool stays usable in minimal environments.
func Dir() string {
	app := envOr("MAK_APP_NAME", DefaultAppName)
	base, err := os.UserConfigDir()
	if err != nil {
		return app
	}
	return filepath.Join(base, app)
}

// Path returns the full path of the config file, honoring MAK_CONFIG_NAME.
func Path() string {
	return filepath.Join(Dir(), envOr("MAK_CONFIG_NAME", DefaultConfigName))
}

// Load reads and parses the config file at path. A missing file is not
// an error and yields a zero Config; a file that exists but fails to
// parse is reported, never silently ignored.
func Load(path string) (Config, error) {
	var cfg Config

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// DatastorePath returns the datastore file location: the config value if
// set, otherwise <config dir>/<MAK_DATASTORE_NAME or data.json>.
func (c Config) DatastorePath() string {
	if c.Datastore != "" {
		return c.Datastore
	}
	return filepath.Join(Dir(), envOr("MAK_DATASTORE_NAME", DefaultDatastoreName))
}

// DebugFromEnv reports whether MAK_DEBUG_MODE requests debug logging.
func DebugFromEnv() bool {
	return strings.EqualFold(os.Getenv("MAK_DEBUG_MODE"), "true")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds optional user defaults loaded from ~/.config/dotviz/config.toml.
//
// Example:
//
//	template = "/home/me/.config/dotviz/dark.html"
//	addr = ":9000"
type Config struct {
	// Template is a path to a custom HTML template file applied by default.
	// The --template flag overrides it per invocation.
	Template string `toml:"template"`

	// Addr is the default listen address for the preview server.
	Addr string `toml:"addr"`
}

// loadConfig reads the user config file.
// A missing file is not an error and yields the zero Config.
func loadConfig() (Config, error) {
	dir, err := configDir()
	if err != nil {
		return Config{}, nil
	}

	var cfg Config
	if _, err := toml.DecodeFile(filepath.Join(dir, "config.toml"), &cfg); err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, err
	}
	return cfg, nil
}

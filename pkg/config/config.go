// Package config loads the graphclip configuration file.
//
// The file is TOML and lives at $XDG_CONFIG_HOME/graphclip/config.toml
// (falling back to ~/.config/graphclip/config.toml):
//
//	library  = "~/blueprints/library.toml"
//	producer = "my-editor/2.1"
//	store    = "redis://localhost:6379/0"
//
//	[server]
//	addr = ":8080"
//
// A missing file is not an error; [Load] returns [Default] instead.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/graphclip/pkg/errors"
)

// AppName names the per-user config and data directories.
const AppName = "graphclip"

// DefaultAddr is the listen address of the HTTP API.
const DefaultAddr = ":8080"

// Config is the decoded configuration file.
type Config struct {
	// Library is a TOML library merged over the built-in one.
	Library string `toml:"library"`

	// Producer overrides the producerVersion written into documents.
	Producer string `toml:"producer"`

	// Store is the snippet store URL (see store.Open).
	Store string `toml:"store"`

	Server Server `toml:"server"`
}

// Server configures `graphclip serve`.
type Server struct {
	Addr string `toml:"addr"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Store:  "file://" + DataDir(),
		Server: Server{Addr: DefaultAddr},
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName, "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), AppName, "config.toml")
	}
	return filepath.Join(home, ".config", AppName, "config.toml")
}

// DataDir returns the default directory of the file snippet store.
func DataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, AppName, "snippets")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), AppName, "snippets")
	}
	return filepath.Join(home, ".local", "share", AppName, "snippets")
}

// Load reads the file at path over the defaults. An empty path means
// [DefaultPath]. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidPath, err, "read config %s", path)
	}
	return Parse(data, cfg)
}

// Parse decodes TOML data over base.
func Parse(data []byte, base Config) (Config, error) {
	cfg := base
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return base, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return base, errors.New(errors.ErrCodeInvalidFormat, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	cfg.Library = expandHome(cfg.Library)
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = DefaultAddr
	}
	return cfg, nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

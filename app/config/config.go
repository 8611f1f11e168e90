package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
)

// Config carries everything the server needs from its environment.
type Config struct {
	Server     Server     `toml:"server"`
	Store      Store      `toml:"store"`
	Content    Content    `toml:"content"`
	Pages      Pages      `toml:"pages"`
	Moderation Moderation `toml:"moderation"`
	Log        Log        `toml:"log"`
}

type Server struct {
	Addr string `toml:"addr"`
}

type Store struct {
	Path string `toml:"path"`
}

type Content struct {
	// Root is the directory post documents are imported from. Empty
	// disables the loader.
	Root string `toml:"root"`
	// Watch re-imports when files under Root change.
	Watch bool `toml:"watch"`
}

type Pages struct {
	// RevalidateHours is how long a rendered page may be served before the
	// next request re-renders it.
	RevalidateHours int `toml:"revalidate_hours"`
}

type Moderation struct {
	// TokenHash is the bcrypt hash of the admin token that guards the
	// comment approval endpoint. Empty disables the endpoint.
	TokenHash string `toml:"token_hash"`
}

type Log struct {
	Level string `toml:"level"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Server:  Server{Addr: ":8080"},
		Store:   Store{Path: "data/badger"},
		Content: Content{Root: "content", Watch: true},
		Pages:   Pages{RevalidateHours: 24},
		Log:     Log{Level: "info"},
	}
}

// Load reads a TOML configuration file, falling back to defaults for a
// missing file and for any omitted field.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration file: %v", err)
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = "data/badger"
	}
	if cfg.Pages.RevalidateHours <= 0 {
		cfg.Pages.RevalidateHours = 24
	}
	return cfg, nil
}

// Revalidate is the page revalidation interval as a duration.
func (c *Config) Revalidate() time.Duration {
	return time.Duration(c.Pages.RevalidateHours) * time.Hour
}

// ApplyLogLevel sets the global zerolog level from the configuration.
func (c *Config) ApplyLogLevel() {
	switch c.Log.Level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "disabled":
		zerolog.SetGlobalLevel(zerolog.Disabled)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

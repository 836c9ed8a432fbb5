// Package config loads shoplist settings from YAML with environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/shoplist/internal/logging"
	"github.com/idilsaglam/shoplist/internal/store"
	"github.com/idilsaglam/shoplist/internal/ui"
)

// Config holds all shoplist configuration.
type Config struct {
	// Where AddItem puts new entries: "front" or "back".
	Insert string `yaml:"insert"`

	// Items present at startup. Nil means the built-in defaults.
	Seeds []SeedConfig `yaml:"seeds"`

	// Terminal theme: classic, neon or mono.
	Theme string `yaml:"theme"`

	Web     WebConfig      `yaml:"web"`
	Logging logging.Config `yaml:"logging"`
}

type SeedConfig struct {
	Name    string `yaml:"name"`
	Checked bool   `yaml:"checked"`
}

type WebConfig struct {
	Addr string `yaml:"addr"`
}

// Default returns the configuration used without a file.
func Default() Config {
	return Config{
		Insert:  "front",
		Theme:   "classic",
		Web:     WebConfig{Addr: ":8080"},
		Logging: logging.Config{Level: "info"},
	}
}

// Load reads path on top of the defaults and applies env overrides.
// An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}
	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := strings.TrimSpace(os.Getenv("SHOPLIST_ADDR")); v != "" {
		c.Web.Addr = v
	}
	if v := strings.TrimSpace(os.Getenv("SHOPLIST_LOG_LEVEL")); v != "" {
		c.Logging.Level = v
	}
	if v := strings.TrimSpace(os.Getenv("SHOPLIST_THEME")); v != "" {
		c.Theme = v
	}
	if v := strings.TrimSpace(os.Getenv("SHOPLIST_INSERT")); v != "" {
		c.Insert = v
	}
}

// Validate checks enumerated fields.
func (c Config) Validate() error {
	var errs []error
	if _, ok := store.ParseInsertPosition(c.Insert); !ok {
		errs = append(errs, fmt.Errorf("insert: want front or back, got %q", c.Insert))
	}
	if t := strings.ToLower(c.Theme); t != "" && !slices.Contains(ui.Themes, t) {
		errs = append(errs, fmt.Errorf("theme: unknown %q", c.Theme))
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// InsertPosition returns the parsed insert setting. Call after Validate.
func (c Config) InsertPosition() store.InsertPosition {
	p, _ := store.ParseInsertPosition(c.Insert)
	return p
}

// StoreSeeds converts the seed list, falling back to store.DefaultSeeds.
func (c Config) StoreSeeds() []store.Seed {
	if c.Seeds == nil {
		return store.DefaultSeeds()
	}
	out := make([]store.Seed, 0, len(c.Seeds))
	for _, s := range c.Seeds {
		out = append(out, store.Seed{Name: s.Name, Checked: s.Checked})
	}
	return out
}

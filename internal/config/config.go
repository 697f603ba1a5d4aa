// Package config loads the YAML configuration used by the htmlstring CLI.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-htmlstring/pkg/escape"
	"github.com/goliatone/go-htmlstring/pkg/layout"
)

// Engines understood by the render and serve commands.
const (
	EngineLayout = "layout"
	EnginePongo  = "pongo2"
)

// Config is the full CLI configuration.
type Config struct {
	Escaper string       `yaml:"escaper"`
	Engine  string       `yaml:"engine"`
	Layout  LayoutConfig `yaml:"layout"`
	Server  ServerConfig `yaml:"server"`
	Log     LogConfig    `yaml:"log"`
}

// LayoutConfig holds the tag delimiters of the layout engine.
type LayoutConfig struct {
	StartTag string `yaml:"start_tag"`
	EndTag   string `yaml:"end_tag"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// LogConfig selects the slog handler and level.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Escaper: escape.NameEntities,
		Engine:  EngineLayout,
		Layout: LayoutConfig{
			StartTag: layout.DefaultStartTag,
			EndTag:   layout.DefaultEndTag,
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 5 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads path over the defaults. An empty path returns Default.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := Decode(bytes.NewReader(raw), &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Decode decodes YAML from r into cfg, rejecting unknown keys, and validates
// the result.
func Decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode: %w", err)
	}
	return cfg.Validate()
}

// Validate checks enumerated fields.
func (c Config) Validate() error {
	switch c.Engine {
	case EngineLayout, EnginePongo:
	default:
		return fmt.Errorf("config: unknown engine %q", c.Engine)
	}
	if strings.TrimSpace(c.Escaper) == "" {
		return errors.New("config: escaper is required")
	}
	// pongo2 escapes with its own entity encoder.
	if c.Engine == EnginePongo && !strings.EqualFold(strings.TrimSpace(c.Escaper), escape.NameEntities) {
		return fmt.Errorf("config: engine %q only supports the %q escaper, got %q", EnginePongo, escape.NameEntities, c.Escaper)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("config: unknown log format %q", c.Log.Format)
	}
	if c.Server.ShutdownTimeout < 0 {
		return errors.New("config: shutdown_timeout must not be negative")
	}
	return nil
}

// SlogLevel maps the configured level name to a slog.Level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(l.Level))); err != nil {
		return 0, fmt.Errorf("config: log level: %w", err)
	}
	return level, nil
}

// NewLogger builds a slog.Logger writing to w.
func (l LogConfig) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, err := l.SlogLevel()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if l.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

// Package config loads PenBoard settings from TOML or YAML files.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gogpu/gg"
	"gopkg.in/yaml.v3"
)

// Canvas describes the drawing area.
type Canvas struct {
	Width      int    `toml:"width" yaml:"width"`
	Height     int    `toml:"height" yaml:"height"`
	Background string `toml:"background" yaml:"background"` // hex, e.g. "#ffffff"
}

// Pen holds rendering settings for outlines.
type Pen struct {
	Width float64 `toml:"width" yaml:"width"`
}

// Server configures the network host.
type Server struct {
	Port      int    `toml:"port" yaml:"port"`
	Advertise bool   `toml:"advertise" yaml:"advertise"`
	Name      string `toml:"name" yaml:"name"` // mDNS instance name, hostname when empty
}

// Log configures the process logger.
type Log struct {
	Level string `toml:"level" yaml:"level"` // debug, info, warn or error
}

type Config struct {
	Canvas Canvas `toml:"canvas" yaml:"canvas"`
	Pen    Pen    `toml:"pen" yaml:"pen"`
	Server Server `toml:"server" yaml:"server"`
	Log    Log    `toml:"log" yaml:"log"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		Canvas: Canvas{Width: 800, Height: 600, Background: "#ffffff"},
		Pen:    Pen{Width: 2},
		Server: Server{Port: 8888, Advertise: true},
		Log:    Log{Level: "info"},
	}
}

// Load reads path over the defaults. The format follows the extension:
// .toml, .yaml or .yml.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config format %q", ext)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		errs = append(errs, fmt.Errorf("canvas size must be positive, got %dx%d", c.Canvas.Width, c.Canvas.Height))
	}
	if !validHex(c.Canvas.Background) {
		errs = append(errs, fmt.Errorf("invalid background color %q", c.Canvas.Background))
	}
	if c.Pen.Width <= 0 {
		errs = append(errs, fmt.Errorf("pen width must be positive, got %g", c.Pen.Width))
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port %d", c.Server.Port))
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func validHex(s string) bool {
	s = strings.TrimPrefix(s, "#")
	switch len(s) {
	case 3, 4, 6, 8:
	default:
		return false
	}
	for _, r := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return false
		}
	}
	return true
}

// BackgroundColor parses Canvas.Background.
func (c Config) BackgroundColor() color.Color {
	h := gg.Hex(c.Canvas.Background)
	return color.NRGBA{R: to8(h.R), G: to8(h.G), B: to8(h.B), A: to8(h.A)}
}

func to8(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return l, fmt.Errorf("invalid log level %q", s)
	}
	return l, nil
}

// LogLevel returns the configured level, info when it does not parse.
func (c Config) LogLevel() slog.Level {
	l, err := parseLevel(c.Log.Level)
	if err != nil {
		return slog.LevelInfo
	}
	return l
}

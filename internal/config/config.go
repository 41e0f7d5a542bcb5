package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Server configures the SSH gallery.
type Server struct {
	Addr    string `toml:"addr"`
	HostKey string `toml:"host_key"`
}

// Sheet holds the default sheet size and colouring.
type Sheet struct {
	TilesX     int  `toml:"tiles_x"`
	TilesY     int  `toml:"tiles_y"`
	Monochrome bool `toml:"monochrome"`
}

// Export holds the default output format and upscale factor.
type Export struct {
	Format string `toml:"format"`
	Scale  int    `toml:"scale"`
}

// Log holds the minimum level and the color mode.
type Log struct {
	Level string `toml:"level"`
	Color string `toml:"color"`
}

// Config is the on-disk configuration shared by the commands.
type Config struct {
	Server Server `toml:"server"`
	Sheet  Sheet  `toml:"sheet"`
	Export Export `toml:"export"`
	Log    Log    `toml:"log"`
}

// MaxScale is the largest accepted upscale factor.
const MaxScale = 64

var (
	knownFormats = []string{"png", "bmp", "svg", "ansi", "datauri"}
	knownLevels  = []string{"debug", "info", "notice", "warn", "warning", "error", "critical"}
	knownColors  = []string{"", "auto", "on", "always", "off", "never"}
)

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Server: Server{Addr: ":2222", HostKey: "host_key"},
		Sheet:  Sheet{TilesX: 8, TilesY: 8},
		Export: Export{Format: "png", Scale: 1},
		Log:    Log{Level: "info", Color: "auto"},
	}
}

// Load decodes path over the defaults. A missing file yields the defaults.
// An empty path skips the file entirely. PORT, when set, overrides the
// server listen address.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			cfg = Default()
		case err != nil:
			return cfg, fmt.Errorf("decode %s: %w", path, err)
		default:
			if keys := md.Undecoded(); len(keys) > 0 {
				return cfg, fmt.Errorf("%s: unknown key %q", path, keys[0].String())
			}
		}
	}
	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Addr = ":" + port
	}
	return cfg, cfg.Validate()
}

// Validate checks ranges and names, naming the offending section.
func (c Config) Validate() error {
	if c.Sheet.TilesX < 1 || c.Sheet.TilesY < 1 {
		return fmt.Errorf("sheet: tiles must be at least 1, got %dx%d", c.Sheet.TilesX, c.Sheet.TilesY)
	}
	if c.Export.Scale < 1 || c.Export.Scale > MaxScale {
		return fmt.Errorf("export: scale %d out of range 1..%d", c.Export.Scale, MaxScale)
	}
	if !oneOf(c.Export.Format, knownFormats) {
		return fmt.Errorf("export: unknown format %q", c.Export.Format)
	}
	if !oneOf(c.Log.Level, knownLevels) {
		return fmt.Errorf("log: unknown level %q", c.Log.Level)
	}
	if !oneOf(c.Log.Color, knownColors) {
		return fmt.Errorf("log: unknown color mode %q", c.Log.Color)
	}
	if c.Server.Addr == "" {
		return errors.New("server: empty listen address")
	}
	return nil
}

func oneOf(s string, set []string) bool {
	s = strings.ToLower(s)
	for _, v := range set {
		if s == v {
			return true
		}
	}
	return false
}

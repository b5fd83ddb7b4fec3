package rgb565

import (
	"errors"
	"io/fs"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	defaultInterval = 5
	defaultListen   = "127.0.0.1:8080"
)

// Config holds defaults that apply when a value is not given on the command
// line.
type Config struct {
	Width    int    `toml:"width"`
	Height   int    `toml:"height"`
	Interval int    `toml:"interval"`
	Colors   int    `toml:"colors"`
	Label    bool   `toml:"label"`
	Listen   string `toml:"listen"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Interval: defaultInterval,
		Listen:   defaultListen,
	}
}

// LoadConfig reads the TOML configuration in file on top of the defaults.
// A missing file is not an error.
func LoadConfig(file string) (Config, error) {
	c := DefaultConfig()
	if file == "" {
		return c, nil
	}

	if _, err := toml.DecodeFile(file, &c); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return Config{}, err
	}

	if c.Interval <= 0 {
		c.Interval = defaultInterval
	}
	if c.Listen == "" {
		c.Listen = defaultListen
	}

	return c, nil
}

// UpdateInterval returns the delay between re-renders.
func (c Config) UpdateInterval() time.Duration {
	return time.Duration(c.Interval) * time.Second
}

// ParseInterval parses s as a whole number of seconds, falling back to the
// configured interval when s is empty or invalid.
func (c Config) ParseInterval(s string) time.Duration {
	if n, err := strconv.ParseUint(s, 10, 32); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	return c.UpdateInterval()
}

// Size works out the dimensions of the raw file name. Explicit width and
// height strings take priority, followed by a WIDTHxHEIGHT extension on name
// and finally the configured defaults.
func (c Config) Size(name, width, height string) (int, int, error) {
	w, h := SizeFromName(name)
	if width == "" {
		width = w
	}
	if height == "" {
		height = h
	}
	if width == "" && c.Width > 0 {
		width = strconv.Itoa(c.Width)
	}
	if height == "" && c.Height > 0 {
		height = strconv.Itoa(c.Height)
	}
	return ParseSize(width, height)
}

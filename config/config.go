// Package config loads the optional TOML settings file of the tclcodec
// command.
//
// A settings file only needs the keys it changes:
//
//	escape = "literal"
//	mode   = "dict"
//	color  = false
//
//	[serve]
//	host = "0.0.0.0"
//	port = 9000
//	read_only = true
//
// Keys absent from the file keep their defaults, and command-line flags
// override both.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/robinvdvleuten/tclcodec/escape"
	"github.com/robinvdvleuten/tclcodec/loader"
)

// DefaultFilename is looked up in the working directory when no path is given.
const DefaultFilename = ".tclcodec.toml"

// Config holds the resolved settings.
type Config struct {
	Escape escape.Mode
	Mode   loader.Mode
	Color  bool
	Serve  Serve

	// Path is the file the settings were read from, empty for defaults.
	Path string
}

// Serve holds the settings of the HTTP playground.
type Serve struct {
	Host     string
	Port     int
	ReadOnly bool
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Escape: escape.Mnemonic,
		Mode:   loader.ModeList,
		Color:  true,
		Serve: Serve{
			Host: "localhost",
			Port: 8080,
		},
	}
}

type fileConfig struct {
	Escape string `toml:"escape"`
	Mode   string `toml:"mode"`
	Color  bool   `toml:"color"`
	Serve  struct {
		Host     string `toml:"host"`
		Port     int    `toml:"port"`
		ReadOnly bool   `toml:"read_only"`
	} `toml:"serve"`
}

// Load reads the settings at path. With an empty path it reads
// DefaultFilename from the working directory, and a missing default file
// yields the built-in settings.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFilename
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	cfg, err := Decode(string(data))
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Decode parses TOML settings on top of the defaults.
func Decode(data string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.Decode(data, &raw)
	if err != nil {
		return Config{}, err
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return Config{}, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}

	if meta.IsDefined("escape") {
		mode, err := escape.ParseMode(strings.TrimSpace(raw.Escape))
		if err != nil {
			return Config{}, fmt.Errorf("parse escape: %w", err)
		}
		cfg.Escape = mode
	}

	if meta.IsDefined("mode") {
		mode, err := loader.ParseMode(strings.TrimSpace(raw.Mode))
		if err != nil {
			return Config{}, fmt.Errorf("parse mode: %w", err)
		}
		cfg.Mode = mode
	}

	if meta.IsDefined("color") {
		cfg.Color = raw.Color
	}

	if meta.IsDefined("serve", "host") {
		if host := strings.TrimSpace(raw.Serve.Host); host != "" {
			cfg.Serve.Host = host
		}
	}

	if meta.IsDefined("serve", "port") {
		if raw.Serve.Port <= 0 || raw.Serve.Port > 65535 {
			return Config{}, fmt.Errorf("parse serve.port: %d out of range", raw.Serve.Port)
		}
		cfg.Serve.Port = raw.Serve.Port
	}

	if meta.IsDefined("serve", "read_only") {
		cfg.Serve.ReadOnly = raw.Serve.ReadOnly
	}

	return cfg, nil
}

// Package config loads imgsplit settings from defaults, a YAML file, and IMGSPLIT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog/log"

	"github.com/vearutop/imgsplit"
	"github.com/vearutop/imgsplit/internal/logging"
)

const envPrefix = "IMGSPLIT_"

var errInvalidConfig = errors.New("invalid configuration")

// Config holds tool settings.
type Config struct {
	Output struct {
		Dir         string `yaml:"dir"`
		Format      string `yaml:"format"`
		Quality     int    `yaml:"quality"`
		Compression int    `yaml:"compression"`
		Manifest    bool   `yaml:"manifest"`
		Archive     string `yaml:"archive"`
	} `yaml:"output"`

	Decode struct {
		MaxPixels int `yaml:"max_pixels"`
	} `yaml:"decode"`

	Preview struct {
		ThumbSize uint `yaml:"thumb_size"`
		Padding   int  `yaml:"padding"`
	} `yaml:"preview"`

	Workers int `yaml:"workers"`

	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

// SetDefaults populates the configuration with default values.
func (cfg *Config) SetDefaults() {
	cfg.Output.Dir = "."
	cfg.Output.Format = "png"
	cfg.Output.Quality = 95
	cfg.Output.Compression = 0
	cfg.Output.Manifest = false
	cfg.Output.Archive = ""

	cfg.Decode.MaxPixels = 100_000_000

	cfg.Preview.ThumbSize = 256
	cfg.Preview.Padding = 8

	cfg.Workers = 4

	cfg.Log.Level = "info"
	cfg.Log.Format = "console"
}

// Load applies defaults, then the YAML file at path (if any), then environment variables, and validates.
// A non-empty path must exist.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.SetDefaults()

	if err := cfg.readYAML(path); err != nil {
		return nil, err
	}
	if err := cfg.readEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) readYAML(path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path) // #nosec G304 -- Only loading a config file
	if err != nil {
		return fmt.Errorf("read configuration file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse YAML from %s: %w", path, err)
	}

	log.Debug().
		Str("path", path).
		Msg("Loaded configuration")

	return nil
}

func (cfg *Config) readEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(envPrefix + key); ok {
			*dst = v
		}
	}
	num := func(key string, dst *int) error {
		v, ok := lookup(envPrefix + key)
		if !ok {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s%s=%q: %w", errInvalidConfig, envPrefix, key, v, err)
		}
		*dst = n
		return nil
	}

	str("OUTPUT_DIR", &cfg.Output.Dir)
	str("FORMAT", &cfg.Output.Format)
	str("ARCHIVE", &cfg.Output.Archive)
	str("LOG_LEVEL", &cfg.Log.Level)
	str("LOG_FORMAT", &cfg.Log.Format)

	if err := num("QUALITY", &cfg.Output.Quality); err != nil {
		return err
	}
	if err := num("WORKERS", &cfg.Workers); err != nil {
		return err
	}
	if err := num("MAX_PIXELS", &cfg.Decode.MaxPixels); err != nil {
		return err
	}
	return nil
}

// Validate checks value ranges.
func (cfg *Config) Validate() error {
	if !imgsplit.ParseFormat(cfg.Output.Format).CanEncode() {
		return fmt.Errorf("%w: output format %q cannot be encoded", errInvalidConfig, cfg.Output.Format)
	}
	if cfg.Output.Quality < 1 || cfg.Output.Quality > 100 {
		return fmt.Errorf("%w: quality %d not in 1..100", errInvalidConfig, cfg.Output.Quality)
	}
	if cfg.Output.Compression < 0 || cfg.Output.Compression > 3 {
		return fmt.Errorf("%w: compression %d not in 0..3", errInvalidConfig, cfg.Output.Compression)
	}
	if cfg.Workers < 1 {
		return fmt.Errorf("%w: workers must be positive", errInvalidConfig)
	}
	if cfg.Decode.MaxPixels < 0 {
		return fmt.Errorf("%w: max_pixels must not be negative", errInvalidConfig)
	}
	if _, err := logging.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("%w: %w", errInvalidConfig, err)
	}
	if cfg.Log.Format != "console" && cfg.Log.Format != "json" {
		return fmt.Errorf("%w: log format %q", errInvalidConfig, cfg.Log.Format)
	}
	return nil
}

// EncodeOptions returns section encoding options from the output settings.
func (cfg *Config) EncodeOptions() imgsplit.EncodeOptions {
	return imgsplit.EncodeOptions{
		Format:      imgsplit.ParseFormat(cfg.Output.Format),
		Quality:     cfg.Output.Quality,
		Compression: cfg.Output.Compression,
	}
}

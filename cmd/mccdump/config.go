package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"

	"github.com/logicossoftware/go-mcc"
)

type dumpConfig struct {
	Limits      mcc.Limits
	Compression mcc.Compression
	Detect      bool
	LogLevel    zerolog.Level
	Format      string
}

func defaultDumpConfig() dumpConfig {
	return dumpConfig{
		Detect:   true,
		LogLevel: zerolog.InfoLevel,
		Format:   "text",
	}
}

type fileConfig struct {
	MaxInputSize int64  `toml:"max_input_size"`
	MaxLines     int    `toml:"max_lines"`
	MaxLineBytes int    `toml:"max_line_bytes"`
	Compression  string `toml:"compression"`
	LogLevel     string `toml:"log_level"`
	Format       string `toml:"format"`
}

func loadDumpConfig(path string) (dumpConfig, error) {
	cfg := defaultDumpConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return dumpConfig{}, fmt.Errorf("load mccdump config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return dumpConfig{}, fmt.Errorf("load mccdump config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("max_input_size") {
		cfg.Limits.MaxInputSize = raw.MaxInputSize
	}
	if meta.IsDefined("max_lines") {
		cfg.Limits.MaxLines = raw.MaxLines
	}
	if meta.IsDefined("max_line_bytes") {
		cfg.Limits.MaxLineBytes = raw.MaxLineBytes
	}
	if cfg.Limits.MaxInputSize < 0 || cfg.Limits.MaxLines < 0 || cfg.Limits.MaxLineBytes < 0 {
		return dumpConfig{}, fmt.Errorf("load mccdump config: limits must not be negative")
	}

	if meta.IsDefined("compression") {
		name := strings.ToLower(strings.TrimSpace(raw.Compression))
		if name != "auto" {
			comp, ok := mcc.ParseCompression(name)
			if !ok {
				return dumpConfig{}, fmt.Errorf("parse compression: unknown codec %q", raw.Compression)
			}
			cfg.Compression = comp
			cfg.Detect = false
		}
	}

	if meta.IsDefined("log_level") {
		lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(raw.LogLevel)))
		if err != nil {
			return dumpConfig{}, fmt.Errorf("parse log_level: %w", err)
		}
		cfg.LogLevel = lvl
	}

	if meta.IsDefined("format") {
		format := strings.ToLower(strings.TrimSpace(raw.Format))
		if err := validateFormat(format); err != nil {
			return dumpConfig{}, err
		}
		cfg.Format = format
	}

	return cfg, nil
}

func validateFormat(format string) error {
	switch format {
	case "text", "json":
		return nil
	default:
		return fmt.Errorf("parse format: want text or json, got %q", format)
	}
}

func (c dumpConfig) readOptions(logger zerolog.Logger) []mcc.ReadOption {
	opts := []mcc.ReadOption{
		mcc.WithReadLimits(c.Limits),
		mcc.WithLogger(logger),
	}
	if !c.Detect {
		opts = append(opts, mcc.WithCompression(c.Compression))
	}
	return opts
}

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/prtdcd/internal/logging"
	"github.com/danmuck/prtdcd/internal/source"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

var ErrMissingSource = errors.New("config: missing source")

// DecoderConfig is one decode run's settings. Zero-value fields fall back
// to DefaultDecoderConfig.
type DecoderConfig struct {
	Source       string
	Mode         source.Mode
	Format       string
	MetricsAddr  string
	ShowRotor    bool
	MaxLineBytes int
	LogLevel     string
}

type fileConfig struct {
	Source       string `toml:"source"`
	Mode         string `toml:"mode"`
	Format       string `toml:"format"`
	MetricsAddr  string `toml:"metrics_addr"`
	ShowRotor    bool   `toml:"show_rotor"`
	MaxLineBytes int    `toml:"max_line_bytes"`
	LogLevel     string `toml:"log_level"`
}

func DefaultDecoderConfig() DecoderConfig {
	return DecoderConfig{
		Mode:         source.ModeSim,
		Format:       FormatText,
		MaxLineBytes: source.DefaultMaxLine,
	}
}

// LoadDecoderConfig overlays the keys defined in path onto the defaults.
// Unknown keys are rejected.
func LoadDecoderConfig(path string) (DecoderConfig, error) {
	cfg := DefaultDecoderConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return DecoderConfig{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return DecoderConfig{}, fmt.Errorf("config parse failed (%s): unknown keys %s", path, strings.Join(keys, ", "))
	}

	if meta.IsDefined("source") {
		cfg.Source = strings.TrimSpace(raw.Source)
	}
	if meta.IsDefined("mode") {
		mode, err := source.ParseMode(raw.Mode)
		if err != nil {
			return DecoderConfig{}, fmt.Errorf("config parse failed (%s): %w", path, err)
		}
		cfg.Mode = mode
	}
	if meta.IsDefined("format") {
		cfg.Format = strings.ToLower(strings.TrimSpace(raw.Format))
	}
	if meta.IsDefined("metrics_addr") {
		cfg.MetricsAddr = strings.TrimSpace(raw.MetricsAddr)
	}
	if meta.IsDefined("show_rotor") {
		cfg.ShowRotor = raw.ShowRotor
	}
	if meta.IsDefined("max_line_bytes") {
		cfg.MaxLineBytes = raw.MaxLineBytes
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}

	if err := ValidateDecoderConfig(cfg, false); err != nil {
		return DecoderConfig{}, fmt.Errorf("config invalid (%s): %w", path, err)
	}
	return cfg, nil
}

// ValidateDecoderConfig checks field values. The source is only required
// when requireSource is set, so a file may leave it to the command line.
func ValidateDecoderConfig(cfg DecoderConfig, requireSource bool) error {
	if requireSource && strings.TrimSpace(cfg.Source) == "" {
		return ErrMissingSource
	}
	switch cfg.Mode {
	case source.ModeSim, source.ModeSerial:
	default:
		return fmt.Errorf("unknown mode %q", cfg.Mode)
	}
	switch cfg.Format {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("unknown format %q", cfg.Format)
	}
	if cfg.MaxLineBytes <= 0 {
		return fmt.Errorf("max_line_bytes must be positive, got %d", cfg.MaxLineBytes)
	}
	if cfg.LogLevel != "" {
		if _, ok := logging.ParseLevel(cfg.LogLevel); !ok {
			return fmt.Errorf("unknown log_level %q", cfg.LogLevel)
		}
	}
	return nil
}

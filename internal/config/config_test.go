package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/danmuck/prtdcd/internal/source"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDecoderConfigDefaults(t *testing.T) {
	cfg, err := LoadDecoderConfig(writeFile(t, ""))
	require.NoError(t, err)
	require.Equal(t, DefaultDecoderConfig(), cfg)
}

func TestLoadDecoderConfigOverrides(t *testing.T) {
	cfg, err := LoadDecoderConfig(writeFile(t, `
source = " /dev/ttyUSB0 "
mode = "serial"
format = "JSON"
metrics_addr = "127.0.0.1:9108"
show_rotor = true
max_line_bytes = 512
log_level = "debug"
`))
	require.NoError(t, err)
	require.Equal(t, "/dev/ttyUSB0", cfg.Source)
	require.Equal(t, source.ModeSerial, cfg.Mode)
	require.Equal(t, FormatJSON, cfg.Format)
	require.Equal(t, "127.0.0.1:9108", cfg.MetricsAddr)
	require.True(t, cfg.ShowRotor)
	require.Equal(t, 512, cfg.MaxLineBytes)
	require.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadDecoderConfigRejectsUnknownKeys(t *testing.T) {
	_, err := LoadDecoderConfig(writeFile(t, `baud = 9600`))
	require.Error(t, err)
	require.Contains(t, err.Error(), "baud")
}

func TestLoadDecoderConfigRejectsBadValues(t *testing.T) {
	for _, content := range []string{
		`mode = "usb"`,
		`format = "xml"`,
		`max_line_bytes = 0`,
		`log_level = "loud"`,
		`source = [`,
	} {
		_, err := LoadDecoderConfig(writeFile(t, content))
		require.Error(t, err, content)
	}
}

func TestLoadDecoderConfigMissingFile(t *testing.T) {
	_, err := LoadDecoderConfig(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}

func TestValidateRequiresSourceWhenAsked(t *testing.T) {
	cfg := DefaultDecoderConfig()
	require.NoError(t, ValidateDecoderConfig(cfg, false))
	require.ErrorIs(t, ValidateDecoderConfig(cfg, true), ErrMissingSource)
}

func TestTemplatesRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prtdcd.toml")
	require.NoError(t, WriteTemplate(path, "decoder", false))
	require.Error(t, WriteTemplate(path, "decoder", false))
	require.NoError(t, WriteTemplate(path, "decoder", true))

	cfg, err := LoadDecoderConfig(path)
	require.NoError(t, err)
	require.Equal(t, "frames.txt", cfg.Source)

	_, err = Template("ghost")
	require.Error(t, err)
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/jaskcalc/internal/theme"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("JASKCALC_CONFIG", filepath.Join(t.TempDir(), "absent.toml"))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 1, cfg.UI.Theme)
	require.Equal(t, theme.Variant1, cfg.Theme())
	require.Equal(t, 56, cfg.UI.MaxWidth)
	require.True(t, cfg.UI.Mouse)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, "jaskcalc.log", filepath.Base(cfg.Log.Path))
	require.Equal(t, "keys.toml", filepath.Base(cfg.Keys.Path))
}

func TestLoadFromFile(t *testing.T) {
	t.Setenv("JASKCALC_CONFIG", writeConfig(t, `
[ui]
theme = 3
max_width = 40
mouse = false

[log]
path = ""
level = "debug"
`))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, theme.Variant3, cfg.Theme())
	require.Equal(t, 40, cfg.UI.MaxWidth)
	require.False(t, cfg.UI.Mouse)
	require.Empty(t, cfg.Log.Path)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	t.Setenv("JASKCALC_CONFIG", writeConfig(t, "[ui]\ntheme = 3\n"))
	t.Setenv("JASKCALC_UI_THEME", "2")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, theme.Variant2, cfg.Theme())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("JASKCALC_CONFIG", writeConfig(t, `
[ui]
theme = 4
max_width = 10

[log]
level = "loud"
`))

	_, err := Load()
	require.Error(t, err)
	require.ErrorContains(t, err, "ui.theme")
	require.ErrorContains(t, err, "ui.max_width")
	require.ErrorContains(t, err, "log.level")
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	t.Setenv("JASKCALC_CONFIG", writeConfig(t, "[ui\ntheme = 1\n"))

	_, err := Load()
	require.ErrorContains(t, err, "read config")
}

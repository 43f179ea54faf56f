package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)
}

func TestLoadConfigLayers(t *testing.T) {
	dir := t.TempDir()
	user := filepath.Join(dir, "user.toml")
	local := filepath.Join(dir, "local.toml")

	writeFile(t, user, `
mode = "columns"
width = 900
columns = 2
formats = "svg,png"
`)
	writeFile(t, local, `
width = 1400
labels = true
`)

	cfg, err := loadConfig([]string{user, local, filepath.Join(dir, "missing.toml")})
	require.NoError(t, err)

	assert.Equal(t, "columns", cfg.Mode)
	assert.Equal(t, 1400.0, cfg.Width, "later files win")
	assert.Equal(t, 2, cfg.Columns)
	assert.Equal(t, "svg,png", cfg.Formats)
	assert.True(t, cfg.Labels)
	// Untouched keys keep their defaults.
	assert.Equal(t, defaultConfig().TargetRowHeight, cfg.TargetRowHeight)
}

func TestLoadConfigEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	writeFile(t, path, `target_row_height = 180`)

	t.Setenv("GALLERY_TARGET_ROW_HEIGHT", "320")
	t.Setenv("GALLERY_LAST_ROW", "natural")

	cfg, err := loadConfig([]string{path})
	require.NoError(t, err)
	assert.Equal(t, 320.0, cfg.TargetRowHeight)
	assert.Equal(t, "natural", cfg.LastRow)
}

func TestLoadConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.toml")
	writeFile(t, path, `width = [`)

	_, err := loadConfig([]string{path})
	assert.Error(t, err)
}

func TestConfigPipelineOptions(t *testing.T) {
	cfg := defaultConfig()
	cfg.Formats = "svg,json"
	cfg.Columns = 4

	opts := cfg.pipelineOptions()
	assert.Equal(t, []string{"svg", "json"}, opts.Formats)
	assert.Equal(t, 4, opts.Columns)
	assert.Equal(t, cfg.Margin, opts.Margin)
	require.NoError(t, opts.ValidateForLayout())
}

func TestAutoLabel(t *testing.T) {
	assert.Equal(t, "auto", autoLabel(0))
	assert.Equal(t, "12", autoLabel(12))
}

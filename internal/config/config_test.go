package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, "toggles", cfg.TogglesDir)
	assert.Equal(t, "  ", cfg.Indent)
	assert.True(t, cfg.Placeholder.Enabled)
	assert.Equal(t, "<toggled>", cfg.Placeholder.Sentinel)
}

func TestLoadConfig(t *testing.T) {
	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, ".jsontoggle.yml")
	content := `toggles_dir: .hidden
indent: "    "
placeholder:
  sentinel: "[hidden]"
`
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0o644))

	cfg, err := LoadConfig(configFile)
	require.NoError(t, err)

	assert.Equal(t, ".hidden", cfg.TogglesDir)
	assert.Equal(t, "    ", cfg.Indent)
	// Unset fields keep their defaults
	assert.True(t, cfg.Placeholder.Enabled)
	assert.Equal(t, "[hidden]", cfg.Placeholder.Sentinel)
}

func TestLoadConfig_DisablePlaceholder(t *testing.T) {
	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, ".jsontoggle.yml")
	content := `placeholder:
  enabled: false
`
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0o644))

	cfg, err := LoadConfig(configFile)
	require.NoError(t, err)
	assert.False(t, cfg.Placeholder.Enabled)
	// Everything else stays at defaults
	assert.Equal(t, "toggles", cfg.TogglesDir)
}

func TestLoadConfig_Errors(t *testing.T) {
	tempDir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(tempDir, "nope.yml"))
		assert.Error(t, err)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		badFile := filepath.Join(tempDir, "bad.yml")
		require.NoError(t, os.WriteFile(badFile, []byte("toggles_dir: [unclosed"), 0o644))
		_, err := LoadConfig(badFile)
		assert.Error(t, err)
	})

	t.Run("empty toggles_dir", func(t *testing.T) {
		emptyDir := filepath.Join(tempDir, "empty.yml")
		require.NoError(t, os.WriteFile(emptyDir, []byte(`toggles_dir: ""`), 0o644))
		_, err := LoadConfig(emptyDir)
		assert.Error(t, err)
	})
}

func TestFindConfigFile(t *testing.T) {
	tempDir := t.TempDir()
	nested := filepath.Join(tempDir, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	configFile := filepath.Join(tempDir, ".jsontoggle.yml")
	require.NoError(t, os.WriteFile(configFile, []byte("toggles_dir: x\n"), 0o644))

	oldWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(nested))
	t.Cleanup(func() { _ = os.Chdir(oldWD) })

	found := FindConfigFile()
	require.NotEmpty(t, found)
	// Resolve symlinks before comparing; temp dirs may be linked on some systems
	expected, err := filepath.EvalSymlinks(configFile)
	require.NoError(t, err)
	actual, err := filepath.EvalSymlinks(found)
	require.NoError(t, err)
	assert.Equal(t, expected, actual)
}

package e2e_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run invokes the CLI via `go run` against the repository root
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command("go", append([]string{"run", "../.."}, args...)...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func TestCLI_ToggleRoundTrip(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "jsontoggle-e2e")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	docFile := filepath.Join(tempDir, "doc.json")
	togglesDir := filepath.Join(tempDir, "toggles")
	jsonContent := `{
		"settings": {"theme": "dark"},
		"users": [{"id": 1, "name": "Alice"}]
	}`
	require.NoError(t, os.WriteFile(docFile, []byte(jsonContent), 0o644))

	// Toggle a node out
	output, err := run(t, "--file", docFile, "--toggles-dir", togglesDir, "toggle", "settings.theme")
	require.NoError(t, err, "toggle failed: %s", output)
	assert.Contains(t, output, "Toggled out: settings.theme")

	// The record file exists under the encoded name
	_, err = os.Stat(filepath.Join(togglesDir, "ksettings_ktheme.json"))
	require.NoError(t, err)

	// The toggled path shows up in the list
	output, err = run(t, "--file", docFile, "--toggles-dir", togglesDir, "list")
	require.NoError(t, err, "list failed: %s", output)
	assert.Contains(t, output, "settings.theme")

	// The working tree shows the placeholder, the original view the value
	output, err = run(t, "--file", docFile, "--toggles-dir", togglesDir, "show")
	require.NoError(t, err, "show failed: %s", output)
	assert.Contains(t, output, `theme: "<toggled>"`)

	output, err = run(t, "--file", docFile, "--toggles-dir", togglesDir, "show", "--original")
	require.NoError(t, err, "show --original failed: %s", output)
	assert.Contains(t, output, `theme: "dark"`)

	// Toggling again reverts
	output, err = run(t, "--file", docFile, "--toggles-dir", togglesDir, "toggle", "settings.theme")
	require.NoError(t, err, "revert failed: %s", output)
	assert.Contains(t, output, "Reverted: settings.theme")

	_, err = os.Stat(filepath.Join(togglesDir, "ksettings_ktheme.json"))
	assert.True(t, os.IsNotExist(err))

	data, err := os.ReadFile(docFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"theme": "dark"`)
}

func TestCLI_DemoAndShow(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "jsontoggle-e2e")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	demoFile := filepath.Join(tempDir, "demo.json")
	togglesDir := filepath.Join(tempDir, "toggles")

	output, err := run(t, "--toggles-dir", togglesDir, "demo", demoFile)
	require.NoError(t, err, "demo failed: %s", output)
	assert.Contains(t, output, "Demo document written to")

	output, err = run(t, "--file", demoFile, "--toggles-dir", togglesDir, "show")
	require.NoError(t, err, "show failed: %s", output)
	for _, expected := range []string{"featureFlags", "newDashboard: true", `name: "Alice"`} {
		assert.Contains(t, output, expected)
	}
}

func TestCLI_ErrorsAreFriendly(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "jsontoggle-e2e")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	docFile := filepath.Join(tempDir, "doc.json")
	togglesDir := filepath.Join(tempDir, "toggles")
	require.NoError(t, os.WriteFile(docFile, []byte(`{"a": 1}`), 0o644))

	output, err := run(t, "--file", docFile, "--toggles-dir", togglesDir, "toggle", "does.not.exist")
	require.Error(t, err)
	assert.True(t, strings.Contains(output, "Toggle error"), "unexpected output: %s", output)

	output, err = run(t, "--file", filepath.Join(tempDir, "missing.json"), "--toggles-dir", togglesDir, "show")
	require.Error(t, err)
	assert.Contains(t, output, "Document error")
}

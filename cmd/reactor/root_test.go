package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		configPath = ""
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv("REACTOR_CONFIG_DIR", t.TempDir())
	t.Setenv("REACTOR_DATA_DIR", t.TempDir())
}

func writeTestConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reactor.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestGenConfig_PrintsStarter(t *testing.T) {
	isolateEnv(t)

	out, err := executeCommand(t, "genconfig")

	require.NoError(t, err)
	assert.Contains(t, out, "workers")
	assert.Contains(t, out, "[spool]")
}

func TestGenConfig_WriteAndRefuseOverwrite(t *testing.T) {
	isolateEnv(t)

	out, err := executeCommand(t, "genconfig", "--write")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote starter configuration")

	out, err = executeCommand(t, "genconfig", "--write")
	require.NoError(t, err)
	assert.Contains(t, out, "already exists")
}

func TestValidate_AllRulesValid(t *testing.T) {
	isolateEnv(t)
	path := writeTestConfig(t, `
[[rules]]
startswith = "minion/"

[[rules.actions]]
hook = "echo"
`)

	out, err := executeCommand(t, "validate", "--config", path)

	require.NoError(t, err)
	assert.Contains(t, out, "All 1 rules are valid")
}

func TestValidate_ReportsInvalidRules(t *testing.T) {
	isolateEnv(t)
	path := writeTestConfig(t, `
[[rules]]
startswith = "minion/"

[[rules]]
name = "broken"
pattern-kind = "contains"
pattern = "x"
`)

	out, err := executeCommand(t, "validate", "--config", path)

	require.Error(t, err)
	assert.Contains(t, out, "broken")
}

func TestRules_ListsCompiledRules(t *testing.T) {
	isolateEnv(t)
	path := writeTestConfig(t, `
[[rules]]
name = "refresh"
startswith = "minion/"

[[rules.actions]]
hook = "echo"
`)

	out, err := executeCommand(t, "rules", "--config", path, "--format", "text")

	require.NoError(t, err)
	assert.Contains(t, out, "refresh")
	assert.Contains(t, out, "startswith")
	assert.Contains(t, out, "ok")
}

func TestRules_NoRulesConfigured(t *testing.T) {
	isolateEnv(t)

	out, err := executeCommand(t, "rules", "--format", "text")

	require.NoError(t, err)
	assert.Contains(t, out, "No rules configured")
}

func TestHooks_ListsCapabilitySet(t *testing.T) {
	isolateEnv(t)

	out, err := executeCommand(t, "hooks", "--format", "text")

	require.NoError(t, err)
	for _, name := range []string{"module", "module_direct", "returner", "context", "echo"} {
		assert.Contains(t, out, name)
	}
}

func TestVersion(t *testing.T) {
	out, err := executeCommand(t, "version")

	require.NoError(t, err)
	assert.Contains(t, out, "reactor version")
}

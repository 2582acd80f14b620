package hooks_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/arthur-debert/reactor/pkg/errors"
	"github.com/arthur-debert/reactor/pkg/hooks"
	"github.com/arthur-debert/reactor/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeModule(t *testing.T, dir, name, script string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(script), 0o755))
}

func TestExecRunner_Call(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell modules require a POSIX shell")
	}

	dir := t.TempDir()
	writeModule(t, dir, "double", "#!/bin/sh\necho '{\"doubled\": true}'\n")

	runner := hooks.NewExecRunner(dir)
	result, err := runner.Call(context.Background(), "double", types.Call{
		Args: []interface{}{21},
	})

	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"doubled": true}, result)
}

func TestExecRunner_EmptyOutputIsNilResult(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell modules require a POSIX shell")
	}

	dir := t.TempDir()
	writeModule(t, dir, "quiet", "#!/bin/sh\nexit 0\n")

	runner := hooks.NewExecRunner(dir)
	result, err := runner.Call(context.Background(), "quiet", types.Call{})

	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestExecRunner_FailingModule(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell modules require a POSIX shell")
	}

	dir := t.TempDir()
	writeModule(t, dir, "broken", "#!/bin/sh\necho oops >&2\nexit 1\n")

	runner := hooks.NewExecRunner(dir)
	_, err := runner.Call(context.Background(), "broken", types.Call{})

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRunnerExec))
	assert.Contains(t, err.Error(), "oops")
}

func TestExecRunner_RejectsPathTraversal(t *testing.T) {
	runner := hooks.NewExecRunner(t.TempDir())

	for _, name := range []string{"", "../etc/passwd", "a/b"} {
		_, err := runner.Call(context.Background(), name, types.Call{})
		require.Error(t, err, "name %q", name)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	}
}

func TestExecRunner_RunJobUnknownModuleStillQueues(t *testing.T) {
	// RunJob only fails on invalid names; a missing executable fails in
	// the background and is logged, not returned.
	runner := hooks.NewExecRunner(t.TempDir())

	err := runner.RunJob(context.Background(), "missing", types.Call{})

	assert.NoError(t, err)
}

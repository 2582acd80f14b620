package hooks

import (
	"bytes"
	"context"
	"encoding/json"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/reactor/pkg/errors"
	"github.com/arthur-debert/reactor/pkg/logging"
	"github.com/arthur-debert/reactor/pkg/types"
)

// Runner executes named modules on behalf of the module hooks. RunJob
// queues a fire-and-forget job; Call runs the module synchronously and
// returns its result.
type Runner interface {
	RunJob(ctx context.Context, name string, call types.Call) error
	Call(ctx context.Context, name string, call types.Call) (interface{}, error)
}

// runnerPayload is the JSON handed to a module executable on stdin.
type runnerPayload struct {
	Args   []interface{}          `json:"args"`
	Kwargs map[string]interface{} `json:"kwargs"`
}

// ExecRunner maps module names to executables under a directory. The
// call's arguments are passed as JSON on stdin; whatever the executable
// prints on stdout is parsed as its JSON result (empty output means a
// nil result).
type ExecRunner struct {
	dir string
}

// NewExecRunner creates an ExecRunner over the given modules directory.
func NewExecRunner(dir string) *ExecRunner {
	return &ExecRunner{dir: dir}
}

// RunJob starts the module in the background. The outcome is logged,
// not returned; queueing only fails when the job cannot be started.
func (r *ExecRunner) RunJob(ctx context.Context, name string, call types.Call) error {
	logger := logging.GetLogger("hooks.runner")

	path, err := r.modulePath(name)
	if err != nil {
		return err
	}

	go func() {
		// The job deliberately outlives the dispatch timeout; only
		// process shutdown cancels it.
		result, err := runModule(context.WithoutCancel(ctx), path, call)
		if err != nil {
			logger.Error().Err(err).Str("module", name).Msg("background job failed")
			return
		}
		logger.Info().Str("module", name).Interface("result", result).Msg("background job finished")
	}()

	logger.Debug().Str("module", name).Msg("queued background job")
	return nil
}

// Call runs the module synchronously and returns its parsed result.
func (r *ExecRunner) Call(ctx context.Context, name string, call types.Call) (interface{}, error) {
	path, err := r.modulePath(name)
	if err != nil {
		return nil, err
	}
	return runModule(ctx, path, call)
}

// modulePath resolves a module name to an executable path, rejecting
// names that would escape the modules directory.
func (r *ExecRunner) modulePath(name string) (string, error) {
	if name == "" {
		return "", errors.New(errors.ErrInvalidInput, "module name cannot be empty")
	}
	if strings.Contains(name, "/") || strings.Contains(name, "..") {
		return "", errors.Newf(errors.ErrInvalidInput, "invalid module name %q", name)
	}
	return filepath.Join(r.dir, name), nil
}

func runModule(ctx context.Context, path string, call types.Call) (interface{}, error) {
	payload, err := json.Marshal(runnerPayload{Args: call.Args, Kwargs: call.Kwargs})
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrRunnerExec, "failed to encode module payload")
	}

	cmd := exec.CommandContext(ctx, path)
	cmd.Stdin = bytes.NewReader(payload)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, errors.Wrapf(err, errors.ErrRunnerExec,
			"module %s failed: %s", filepath.Base(path), strings.TrimSpace(stderr.String()))
	}

	output := bytes.TrimSpace(stdout.Bytes())
	if len(output) == 0 {
		return nil, nil
	}

	var result interface{}
	if err := json.Unmarshal(output, &result); err != nil {
		return nil, errors.Wrapf(err, errors.ErrRunnerExec,
			"module %s produced invalid JSON", filepath.Base(path))
	}
	return result, nil
}

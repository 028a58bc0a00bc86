package runtime

import (
	"context"
	"fmt"
	"io/fs"
	"os/exec"

	"github.com/kballard/go-shellquote"

	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/config"
	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/errors"
	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/logging"
	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/system"
)

// CommandRuntime implements Runtime by running an external sandbox CLI.
type CommandRuntime struct {
	// Argv is the executable and its leading arguments
	Argv []string

	// NewArgs select a fresh session; ResumeArgs are followed by the session id
	NewArgs    []string
	ResumeArgs []string

	// RouteFileFlag precedes the route file path
	RouteFileFlag string

	// ResultFileFlag precedes the result file path; empty reads stdout
	ResultFileFlag string

	// TempDir holds the result file; empty means the OS default
	TempDir string

	fs   system.FileSystem
	exec system.CommandExecutor
}

// NewCommandRuntime creates a CommandRuntime from the runtime configuration.
func NewCommandRuntime(cfg config.RuntimeConfig, fsys system.FileSystem, executor system.CommandExecutor) (*CommandRuntime, error) {
	argv, err := cfg.Argv()
	if err != nil {
		return nil, err
	}
	return &CommandRuntime{
		Argv:           argv,
		NewArgs:        cfg.NewArgs,
		ResumeArgs:     cfg.ResumeArgs,
		RouteFileFlag:  cfg.RouteFileFlag,
		ResultFileFlag: cfg.ResultFileFlag,
		fs:             fsys,
		exec:           executor,
	}, nil
}

// Name returns the runtime executable.
func (r *CommandRuntime) Name() string {
	return r.Argv[0]
}

// Available reports whether the runtime executable can be found.
func (r *CommandRuntime) Available() error {
	if _, err := exec.LookPath(r.Argv[0]); err != nil {
		return errors.RuntimeFailed("lookup", err)
	}
	return nil
}

// Args builds the argument list following the executable for one run.
func (r *CommandRuntime) Args(opts RunOptions, resultFile string) []string {
	args := append([]string{}, r.Argv[1:]...)
	if opts.Mode() == ModeResume {
		args = append(args, r.ResumeArgs...)
		args = append(args, opts.ResumeID)
	} else {
		args = append(args, r.NewArgs...)
	}
	args = append(args, r.RouteFileFlag, opts.RouteFile)
	if r.ResultFileFlag != "" && resultFile != "" {
		args = append(args, r.ResultFileFlag, resultFile)
	}
	args = append(args, "--")
	return append(args, opts.URLs...)
}

// Run executes one sandbox session and returns its parsed result.
// The private result file is removed on every path.
func (r *CommandRuntime) Run(ctx context.Context, opts RunOptions) (*Result, error) {
	if opts.RouteFile == "" {
		return nil, errors.ValidationError("route file is required")
	}
	if len(opts.URLs) == 0 {
		return nil, errors.ValidationError("at least one URL is required")
	}

	var resultFile string
	if r.ResultFileFlag != "" {
		path, err := r.fs.CreateTemp(r.TempDir, "forage-routes-result-*.json")
		if err != nil {
			return nil, errors.RuntimeFailed(string(opts.Mode()), fmt.Errorf("failed to create result file: %w", err))
		}
		resultFile = path
		defer func() {
			if err := r.fs.Remove(resultFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
				logging.Warn("failed to remove result file", "path", resultFile, "error", err)
			}
		}()
	}

	args := r.Args(opts, resultFile)
	logging.Debug("invoking sandbox runtime",
		"mode", opts.Mode(),
		"command", shellquote.Join(append([]string{r.Argv[0]}, args...)...))

	stdout, err := r.exec.Run(ctx, r.Argv[0], args...)
	if err != nil {
		return nil, errors.RuntimeFailed(string(opts.Mode()), err)
	}

	output := stdout
	if resultFile != "" {
		output, err = r.fs.ReadFile(resultFile)
		if err != nil {
			return nil, errors.RuntimeFailed(string(opts.Mode()), fmt.Errorf("failed to read result file: %w", err))
		}
	}

	result, err := ParseResult(output)
	if err != nil {
		return nil, errors.RuntimeFailed(string(opts.Mode()), err)
	}
	logging.Debug("sandbox session finished", "session", result.SessionID(), "log_dir", result.LogDir)
	return result, nil
}

// Ensure CommandRuntime implements Runtime
var _ Runtime = (*CommandRuntime)(nil)

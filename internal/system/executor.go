package system

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
)

// osExecutor implements CommandExecutor using real OS operations.
type osExecutor struct {
	stderr io.Writer
}

// NewExecutor returns an executor that streams child stderr to w
// (os.Stderr when w is nil).
func NewExecutor(w io.Writer) CommandExecutor {
	return &osExecutor{stderr: w}
}

func (e *osExecutor) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stdin = os.Stdin
	cmd.Stderr = e.stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	err := cmd.Run()
	return stdout.Bytes(), err
}

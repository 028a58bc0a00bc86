package runtime

import (
	"context"
)

// Mode selects between starting a fresh sandbox session and resuming one.
type Mode string

const (
	ModeNew    Mode = "run"
	ModeResume Mode = "resume"
)

// RunOptions holds the inputs of one sandbox invocation.
type RunOptions struct {
	// RouteFile is the path of the route file the sandbox enforces.
	RouteFile string
	// URLs are the target pages, passed through in order.
	URLs []string
	// ResumeID resumes an existing session when non-empty.
	ResumeID string
}

// Mode reports whether the options start a new session or resume one.
func (o RunOptions) Mode() Mode {
	if o.ResumeID != "" {
		return ModeResume
	}
	return ModeNew
}

// Runtime launches sandboxed sessions. Run blocks until the session
// finishes and its result has been read.
type Runtime interface {
	// Name returns the runtime identifier
	Name() string

	// Run executes one sandbox session with the given route file
	Run(ctx context.Context, opts RunOptions) (*Result, error)
}

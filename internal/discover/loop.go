package discover

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/audit"
	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/errors"
	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/hostname"
	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/logging"
	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/netlog"
	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/routes"
	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/runtime"
	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/system"
	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/tui"
)

// DefaultQuestion is asked after every sandbox run.
const DefaultQuestion = "Did the pages render correctly? [y/N]"

// Options are the inputs of one discovery run.
type Options struct {
	// URLs are the target pages. Inputs that do not normalize are skipped.
	URLs []string

	// Destination keeps the route file at this path. When empty a private
	// temporary file is used and removed when the loop ends.
	Destination string

	// ResumeID resumes an existing sandbox session on the first run.
	ResumeID string

	// BlockDefault is the fixed ip-block entry; empty means 0.0.0.0.
	BlockDefault string

	// TempDir holds the temporary route file; empty means the OS default.
	TempDir string
}

// Outcome is the result of a completed discovery run.
type Outcome struct {
	// Routes is the route file the user confirmed.
	Routes *routes.RouteFile

	// Path is the persistent route file, empty when a temporary one was used.
	Path string

	// Session is the id of the last sandbox session.
	Session string

	// Iterations counts the sandbox runs.
	Iterations int

	// Skipped lists the inputs that could not be normalized.
	Skipped []*hostname.InvalidHostError

	// Unapplied holds entries found by the final scan that were not merged
	// because the user accepted the run they came from.
	Unapplied []string
}

// Loop drives sandbox runs until the user confirms the pages work.
type Loop struct {
	fs       system.FileSystem
	runtime  runtime.Runtime
	scanner  *netlog.Scanner
	prompter tui.Prompter
	history  *audit.Logger
	runID    string
	out      io.Writer
	question string
}

// Option configures a Loop.
type Option func(*Loop)

// WithHistory records loop events under runID.
func WithHistory(history *audit.Logger, runID string) Option {
	return func(l *Loop) {
		l.history = history
		l.runID = runID
	}
}

// WithOutput sets where banners and summaries are written. A nil writer
// discards them.
func WithOutput(w io.Writer) Option {
	return func(l *Loop) {
		if w != nil {
			l.out = w
		}
	}
}

// WithQuestion overrides the confirmation question.
func WithQuestion(q string) Option {
	return func(l *Loop) {
		l.question = q
	}
}

// New creates a Loop.
func New(fsys system.FileSystem, rt runtime.Runtime, scanner *netlog.Scanner, prompter tui.Prompter, opts ...Option) *Loop {
	l := &Loop{
		fs:       fsys,
		runtime:  rt,
		scanner:  scanner,
		prompter: prompter,
		out:      io.Discard,
		question: DefaultQuestion,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// run is the state owned by one call to Loop.Run.
type run struct {
	opts    Options
	path    string
	urls    []string
	pending []string
	block   string

	iteration  int
	session    string
	logDir     string
	discovered []string
	current    *routes.RouteFile
	outcome    *Outcome
}

// Run executes the loop. Temporary files are removed on every return path.
func (l *Loop) Run(ctx context.Context, opts Options) (*Outcome, error) {
	r := &run{
		opts:    opts,
		session: opts.ResumeID,
		block:   opts.BlockDefault,
		outcome: &Outcome{Path: opts.Destination},
	}
	if r.block == "" {
		r.block = routes.BlockAllUnresolved
	}

	path, cleanup, err := l.routeFile(opts)
	if err != nil {
		return nil, err
	}
	defer cleanup()
	r.path = path

	state := StateSeed
	for state != StateDone {
		if err := ctx.Err(); err != nil {
			l.record(audit.EventError, r, err.Error())
			return nil, err
		}
		logging.Debug("loop state", "state", state, "iteration", r.iteration)

		affirmative, err := l.step(ctx, state, r)
		if err != nil {
			l.record(audit.EventError, r, err.Error())
			return nil, err
		}
		state = next(state, affirmative)
	}

	final, err := routes.Load(l.fs, r.path)
	if err != nil {
		return nil, err
	}
	r.outcome.Routes = final
	r.outcome.Session = r.session
	r.outcome.Iterations = r.iteration
	r.outcome.Unapplied = unapplied(final, r.discovered)
	l.record(audit.EventDone, r, fmt.Sprintf("%d entries allowed", len(final.Entries(routes.SectionAdd))))
	return r.outcome, nil
}

func (l *Loop) step(ctx context.Context, state State, r *run) (bool, error) {
	switch state {
	case StateSeed:
		return false, l.seed(r)
	case StateBuild:
		return false, l.build(r)
	case StateRun:
		return false, l.invoke(ctx, r)
	case StateScan:
		l.scan(r)
		return false, nil
	case StateAccumulate:
		l.accumulate(r)
		return false, nil
	case StatePrompt:
		return l.prompt(ctx, r)
	}
	return false, fmt.Errorf("unexpected loop state %s", state)
}

// routeFile returns the route file path and the function that releases it.
func (l *Loop) routeFile(opts Options) (string, func(), error) {
	if opts.Destination != "" {
		return opts.Destination, func() {}, nil
	}

	path, err := l.fs.CreateTemp(opts.TempDir, "forage-routes-*.txt")
	if err != nil {
		return "", nil, errors.RouteFileUnwritable("(temporary)", err)
	}
	logging.Debug("using temporary route file", "path", path)

	return path, func() {
		if err := l.fs.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			logging.Warn("failed to remove temporary route file", "path", path, "error", err)
		}
	}, nil
}

func (l *Loop) seed(r *run) error {
	entries, invalid := hostname.Seed(r.opts.URLs)

	skipped := make(map[string]bool, len(invalid))
	for _, hostErr := range invalid {
		skipped[hostErr.Input] = true
		logging.UserWarning("Skipping %v", errors.InvalidHost(hostErr.Input, hostErr.Err))
	}
	for _, raw := range r.opts.URLs {
		if !skipped[raw] {
			r.urls = append(r.urls, raw)
		}
	}
	r.outcome.Skipped = invalid

	if len(entries) == 0 {
		return errors.NoValidHosts(len(r.opts.URLs))
	}
	r.pending = entries
	l.record(audit.EventSeed, r, strings.Join(entries, ","))
	return nil
}

func (l *Loop) build(r *run) error {
	current, err := routes.Load(l.fs, r.path)
	if err != nil {
		return err
	}
	current.Merge(routes.SectionAdd, r.pending...)
	current.Merge(routes.SectionBlock, r.block)

	if err := routes.Save(l.fs, r.path, current); err != nil {
		return err
	}
	r.current = current
	logging.Debug("route file written",
		"path", r.path,
		"allowed", len(current.Entries(routes.SectionAdd)),
		"blocked", len(current.Entries(routes.SectionBlock)))
	return nil
}

func (l *Loop) invoke(ctx context.Context, r *run) error {
	r.iteration++
	fmt.Fprintln(l.out, tui.IterationBanner(r.iteration, r.session))

	opts := runtime.RunOptions{
		RouteFile: r.path,
		URLs:      r.urls,
		ResumeID:  r.session,
	}
	result, err := l.runtime.Run(ctx, opts)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !errors.HasCode(err, errors.ExitRuntimeFailed) {
			err = errors.RuntimeFailed(string(opts.Mode()), err)
		}
		return err
	}

	r.session = result.SessionID()
	r.logDir = result.LogDir
	l.record(audit.EventRun, r, l.runtime.Name())
	return nil
}

func (l *Loop) scan(r *run) {
	var report *netlog.Report
	if r.logDir != "" {
		report = l.scanner.ScanDir(r.logDir)
	} else {
		var err error
		report, err = l.scanner.Scan(r.session)
		if err != nil {
			logging.Warn("cannot scan session logs", "session", r.session, "error", err)
			report = &netlog.Report{}
		}
	}
	r.discovered = report.Blocked
	l.record(audit.EventScan, r, strings.Join(r.discovered, ","))
}

func (l *Loop) accumulate(r *run) {
	added := r.current.Clone().Merge(routes.SectionAdd, r.discovered...)
	r.pending = appendUnique(r.pending, r.discovered...)
	fmt.Fprint(l.out, tui.ScanSummary(r.session, r.discovered, added))
	logging.Debug("accumulated blocked hosts", "found", len(r.discovered), "new", added)
}

func (l *Loop) prompt(ctx context.Context, r *run) (bool, error) {
	answer, err := l.prompter.Ask(ctx, l.question)
	if err != nil {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		return false, errors.PromptFailed(err)
	}
	l.record(audit.EventPrompt, r, answer)
	return tui.IsAffirmative(answer), nil
}

func (l *Loop) record(eventType audit.EventType, r *run, details string) {
	if !l.history.Enabled() {
		return
	}
	if err := l.history.LogEvent(eventType, l.runID, r.iteration, r.session, details); err != nil {
		logging.Warn("failed to record history", "event", eventType, "error", err)
	}
}

// unapplied returns the entries of discovered missing from the ip-add section.
func unapplied(rf *routes.RouteFile, discovered []string) []string {
	have := make(map[string]bool)
	for _, e := range rf.Entries(routes.SectionAdd) {
		have[e] = true
	}
	var missing []string
	for _, e := range discovered {
		if !have[e] {
			missing = append(missing, e)
		}
	}
	return missing
}

func appendUnique(list []string, entries ...string) []string {
	seen := make(map[string]bool, len(list))
	for _, e := range list {
		seen[e] = true
	}
	for _, e := range entries {
		if !seen[e] {
			seen[e] = true
			list = append(list, e)
		}
	}
	return list
}

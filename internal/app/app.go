package app

import (
	"io"
	"os"

	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/audit"
	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/config"
	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/discover"
	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/logging"
	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/netlog"
	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/runtime"
	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/system"
	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/tui"
)

// App holds the application dependencies
type App struct {
	// Config is the loaded configuration
	Config *config.Config

	// FS is the file system used for route files and logs
	FS system.FileSystem

	// Executor runs the sandbox runtime CLI
	Executor system.CommandExecutor

	// Runtime is the sandbox runtime
	Runtime runtime.Runtime

	// Prompter asks the per-iteration question
	Prompter tui.Prompter

	// History records discovery runs
	History *audit.Logger
}

// Option is a function that configures the App
type Option func(*App)

// WithConfig sets a custom configuration
func WithConfig(cfg *config.Config) Option {
	return func(a *App) {
		a.Config = cfg
	}
}

// WithFS sets a custom file system
func WithFS(fsys system.FileSystem) Option {
	return func(a *App) {
		a.FS = fsys
	}
}

// WithExecutor sets a custom command executor
func WithExecutor(e system.CommandExecutor) Option {
	return func(a *App) {
		a.Executor = e
	}
}

// WithRuntime sets a custom runtime
func WithRuntime(r runtime.Runtime) Option {
	return func(a *App) {
		a.Runtime = r
	}
}

// WithPrompter sets a custom prompter
func WithPrompter(p tui.Prompter) Option {
	return func(a *App) {
		a.Prompter = p
	}
}

// WithHistory sets a custom history logger
func WithHistory(h *audit.Logger) Option {
	return func(a *App) {
		a.History = h
	}
}

// New creates a new App with the given options.
// If runtime is not provided via WithRuntime, it is built from the config.
func New(opts ...Option) *App {
	app := &App{}

	for _, opt := range opts {
		opt(app)
	}

	if app.Config == nil {
		app.Config = config.DefaultConfig()
	}
	if app.FS == nil {
		app.FS = system.DefaultFS()
	}
	if app.Executor == nil {
		app.Executor = system.DefaultExecutor()
	}
	if app.History == nil {
		app.History = audit.NewLogger(app.Config.HistoryDir)
	}

	// Initialize runtime if not provided
	if app.Runtime == nil {
		rt, err := runtime.NewCommandRuntime(app.Config.Runtime, app.FS, app.Executor)
		if err != nil {
			logging.Debug("failed to initialize runtime", "error", err)
		} else {
			app.Runtime = rt
		}
	}

	return app
}

// Scanner returns a log scanner over the configured log location.
func (a *App) Scanner() *netlog.Scanner {
	return netlog.NewScanner(a.FS, &a.Config.Logs, a.Config.Logs.Prefix)
}

// Loop returns a discovery loop recording history under runID and writing
// progress to out.
func (a *App) Loop(runID string, out io.Writer) *discover.Loop {
	prompter := a.Prompter
	if prompter == nil {
		prompter = tui.NewPrompter(os.Stdin, os.Stderr)
	}
	return discover.New(a.FS, a.Runtime, a.Scanner(), prompter,
		discover.WithHistory(a.History, runID),
		discover.WithOutput(out))
}

// Default is the default application instance
var Default = New()

// SetDefault sets the default application instance (used for testing)
func SetDefault(app *App) {
	Default = app
}

// ResetDefault resets to the default application instance
func ResetDefault() {
	Default = New()
}
